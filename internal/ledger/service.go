// internal/ledger/service.go
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"libtrack/internal/catalog"
)

// Service defines the interface for the loan ledger, the sole authority on
// which items are on loan.
type Service interface {
	Open(ctx context.Context, username string, itemType catalog.ItemType, itemName string, issueDate time.Time, period time.Duration) (*LoanRecord, error)
	Close(ctx context.Context, username string, itemType catalog.ItemType, itemName string, returnDate time.Time) (overdueDays int, err error)
	Settle(ctx context.Context, ids []uuid.UUID, asOf time.Time) error
	ListActive(ctx context.Context, username string) ([]*LoanRecord, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]*LoanRecord, error)
	ListAll(ctx context.Context) ([]*LoanRecord, error)
}
