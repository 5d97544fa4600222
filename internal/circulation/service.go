// internal/circulation/service.go
package circulation

import (
	"context"
	"time"

	"libtrack/internal/catalog"
	"libtrack/internal/ledger"
)

// Service defines the interface for the loan lifecycle engine.
type Service interface {
	IssueItem(ctx context.Context, username string, itemType catalog.ItemType, itemName string, asOf time.Time) (*ledger.LoanRecord, error)
	ReturnItem(ctx context.Context, username string, itemType catalog.ItemType, itemName string, asOf time.Time) (overdueDays int, err error)
	ListActiveLoans(ctx context.Context, username string) ([]*ledger.LoanRecord, error)
	ReviewFines(ctx context.Context, username string, asOf time.Time) (*FineReview, error)
	ReviewAllFines(ctx context.Context, asOf time.Time) ([]*FineReview, error)
	PayFines(ctx context.Context, username string, asOf time.Time) (*FineReview, error)
}
