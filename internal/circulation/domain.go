// internal/circulation/domain.go
package circulation

import (
	"errors"

	"libtrack/internal/ledger"
)

var (
	// ErrItemUnavailable is returned when issuing an item that is on loan.
	ErrItemUnavailable = errors.New("item unavailable")
	// ErrNotEntitled is returned when a user's subscription does not permit
	// issuing.
	ErrNotEntitled = errors.New("not entitled to issue")
)

// FineAssessment itemizes one overdue loan at the configured daily rate.
type FineAssessment struct {
	Record      *ledger.LoanRecord `json:"record"`
	DaysOverdue int                `json:"days_overdue"`
	Amount      float64            `json:"amount"`
}

// FineReview is the payable picture of one user's overdue loans.
type FineReview struct {
	Username string            `json:"username"`
	Items    []*FineAssessment `json:"items"`
	Total    float64           `json:"total"`
}
