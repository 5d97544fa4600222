// internal/circulation/implementation.go
package circulation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"libtrack/internal/catalog"
	"libtrack/internal/config"
	"libtrack/internal/ledger"
	"libtrack/internal/membership"
)

// service implements the Service interface. It is the only writer allowed to
// touch catalog availability, which it keeps in lockstep with the ledger.
type service struct {
	// mu serializes whole actions so each one is atomic: every precondition
	// is checked before the first mutation.
	mu sync.Mutex

	catalog    catalog.Service
	membership membership.Service
	ledger     ledger.Service
	policy     config.PolicyConfig
	logger     *zap.Logger
}

// NewService creates a new loan lifecycle engine.
func NewService(cat catalog.Service, mem membership.Service, led ledger.Service, policy config.PolicyConfig, logger *zap.Logger) Service {
	return &service{
		catalog:    cat,
		membership: mem,
		ledger:     led,
		policy:     policy,
		logger:     logger,
	}
}

// IssueItem lends an item to a user: Available -> Issued.
func (s *service) IssueItem(ctx context.Context, username string, itemType catalog.ItemType, itemName string, asOf time.Time) (*ledger.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.membership.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !CanIssue(user, asOf) {
		return nil, fmt.Errorf("user %q subscription expired %s: %w", username, user.SubscriptionEnd.Format(time.DateOnly), ErrNotEntitled)
	}

	item, err := s.catalog.GetItem(ctx, itemType, itemName)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if !item.Available {
		return nil, fmt.Errorf("%s %q: %w", itemType, itemName, ErrItemUnavailable)
	}

	// Preconditions hold; mutate ledger then catalog.
	record, err := s.ledger.Open(ctx, username, itemType, itemName, asOf, s.policy.LoanPeriod())
	if err != nil {
		return nil, fmt.Errorf("failed to open loan: %w", err)
	}
	if err := s.catalog.SetAvailability(ctx, itemType, itemName, false); err != nil {
		return nil, fmt.Errorf("failed to flag item unavailable: %w", err)
	}

	s.logger.Info("item issued",
		zap.String("username", username),
		zap.String("item", itemName),
		zap.String("type", string(itemType)),
		zap.Time("due", record.DueDate))

	return record, nil
}

// ReturnItem gives an item back: Issued -> Available. The overdue day count
// is reported to the caller for display; no fine is posted here.
func (s *service) ReturnItem(ctx context.Context, username string, itemType catalog.ItemType, itemName string, asOf time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The item must exist before the ledger record is closed, otherwise the
	// availability flip below could fail after mutation.
	if _, err := s.catalog.GetItem(ctx, itemType, itemName); err != nil {
		return 0, fmt.Errorf("failed to get item: %w", err)
	}

	overdueDays, err := s.ledger.Close(ctx, username, itemType, itemName, asOf)
	if err != nil {
		return 0, err
	}
	if err := s.catalog.SetAvailability(ctx, itemType, itemName, true); err != nil {
		return 0, fmt.Errorf("failed to flag item available: %w", err)
	}

	s.logger.Info("item returned",
		zap.String("username", username),
		zap.String("item", itemName),
		zap.Int("overdue_days", overdueDays))

	return overdueDays, nil
}

// ListActiveLoans reports open loans, optionally for one user.
func (s *service) ListActiveLoans(ctx context.Context, username string) ([]*ledger.LoanRecord, error) {
	return s.ledger.ListActive(ctx, username)
}

// ReviewFines itemizes a user's overdue open loans at the configured daily
// rate and refreshes the stored balance with the computed total.
func (s *service) ReviewFines(ctx context.Context, username string, asOf time.Time) (*FineReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.membership.GetUser(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	review, err := s.assessFines(ctx, username, asOf)
	if err != nil {
		return nil, err
	}
	if err := s.membership.RecordFines(ctx, username, review.Total); err != nil {
		return nil, fmt.Errorf("failed to record fines: %w", err)
	}
	return review, nil
}

// ReviewAllFines builds the overdue report across every user with at least
// one overdue loan, ordered by username.
func (s *service) ReviewAllFines(ctx context.Context, asOf time.Time) ([]*FineReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overdue, err := s.ledger.ListOverdue(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	byUser := make(map[string]*FineReview)
	for _, record := range overdue {
		review, ok := byUser[record.Username]
		if !ok {
			review = &FineReview{Username: record.Username}
			byUser[record.Username] = review
		}
		days := record.OverdueDays(asOf)
		amount := float64(days) * s.policy.FineRatePerDay
		review.Items = append(review.Items, &FineAssessment{Record: record, DaysOverdue: days, Amount: amount})
		review.Total += amount
	}

	reviews := make([]*FineReview, 0, len(byUser))
	for _, review := range byUser {
		reviews = append(reviews, review)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].Username < reviews[j].Username })
	return reviews, nil
}

// PayFines settles a user's overdue fines: covered records become Returned,
// covered items become Available, and the balance resets to zero. The
// settled review is returned for display.
func (s *service) PayFines(ctx context.Context, username string, asOf time.Time) (*FineReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.membership.GetUser(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	review, err := s.assessFines(ctx, username, asOf)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(review.Items))
	for _, assessment := range review.Items {
		ids = append(ids, assessment.Record.ID)
	}
	if err := s.ledger.Settle(ctx, ids, asOf); err != nil {
		return nil, fmt.Errorf("failed to settle loans: %w", err)
	}
	for _, assessment := range review.Items {
		record := assessment.Record
		if err := s.catalog.SetAvailability(ctx, record.ItemType, record.ItemName, true); err != nil {
			return nil, fmt.Errorf("failed to flag item available: %w", err)
		}
	}
	if err := s.membership.SettleFines(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to settle fines: %w", err)
	}

	s.logger.Info("fines paid",
		zap.String("username", username),
		zap.Float64("total", review.Total),
		zap.Int("loans_settled", len(review.Items)))

	return review, nil
}

func (s *service) assessFines(ctx context.Context, username string, asOf time.Time) (*FineReview, error) {
	overdue, err := s.ledger.ListOverdue(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}

	review := &FineReview{Username: username}
	for _, record := range overdue {
		if record.Username != username {
			continue
		}
		days := record.OverdueDays(asOf)
		amount := float64(days) * s.policy.FineRatePerDay
		review.Items = append(review.Items, &FineAssessment{Record: record, DaysOverdue: days, Amount: amount})
		review.Total += amount
	}
	return review, nil
}
