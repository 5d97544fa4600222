// internal/ledger/domain.go
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"libtrack/internal/catalog"
)

// ErrNoOpenLoan is returned when no Issued record matches a user and item.
var ErrNoOpenLoan = errors.New("no open loan")

// Status enumerates loan record lifecycle states.
type Status string

const (
	StatusIssued   Status = "Issued"
	StatusReturned Status = "Returned"
)

// LoanRecord links a user to an item for one loan. Records are retained
// after close; Status and ReturnDate carry the history.
type LoanRecord struct {
	ID         uuid.UUID        `json:"id"`
	Username   string           `json:"username"`
	ItemType   catalog.ItemType `json:"item_type"`
	ItemName   string           `json:"item_name"`
	IssueDate  time.Time        `json:"issue_date"`
	DueDate    time.Time        `json:"due_date"`
	ReturnDate *time.Time       `json:"return_date,omitempty"`
	Status     Status           `json:"status"`
}

// OverdueDays reports how many whole days past due the record is at asOf.
// Zero for anything not yet due.
func (r *LoanRecord) OverdueDays(asOf time.Time) int {
	if !asOf.After(r.DueDate) {
		return 0
	}
	return int(asOf.Sub(r.DueDate).Hours() / 24)
}
