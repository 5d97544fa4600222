// internal/ledger/implementation.go
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"libtrack/internal/catalog"
)

// service implements the Service interface with an in-memory record list.
type service struct {
	mu      sync.RWMutex
	records []*LoanRecord
}

// NewService creates a new loan ledger instance.
func NewService() Service {
	return &service{}
}

// Open creates an Issued record with due date issueDate + period.
func (s *service) Open(ctx context.Context, username string, itemType catalog.ItemType, itemName string, issueDate time.Time, period time.Duration) (*LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &LoanRecord{
		ID:        uuid.New(),
		Username:  username,
		ItemType:  itemType,
		ItemName:  itemName,
		IssueDate: issueDate,
		DueDate:   issueDate.Add(period),
		Status:    StatusIssued,
	}
	s.records = append(s.records, record)

	return copyRecord(record), nil
}

// Close marks the matching Issued record Returned and reports whole days
// overdue at returnDate. The record is retained as history.
func (s *service) Close(ctx context.Context, username string, itemType catalog.ItemType, itemName string, returnDate time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findOpen(username, itemType, itemName)
	if record == nil {
		return 0, fmt.Errorf("%s %q for user %q: %w", itemType, itemName, username, ErrNoOpenLoan)
	}

	overdue := record.OverdueDays(returnDate)
	record.Status = StatusReturned
	rd := returnDate
	record.ReturnDate = &rd

	return overdue, nil
}

// Settle marks each identified record Returned as a side effect of fine
// payment. Records already Returned are left untouched.
func (s *service) Settle(ctx context.Context, ids []uuid.UUID, asOf time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		byID[id] = struct{}{}
	}

	for _, record := range s.records {
		if _, ok := byID[record.ID]; !ok || record.Status != StatusIssued {
			continue
		}
		record.Status = StatusReturned
		rd := asOf
		record.ReturnDate = &rd
	}
	return nil
}

// ListActive returns Issued records, optionally narrowed to one user.
// An empty username matches all users.
func (s *service) ListActive(ctx context.Context, username string) ([]*LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*LoanRecord
	for _, record := range s.records {
		if record.Status != StatusIssued {
			continue
		}
		if username != "" && record.Username != username {
			continue
		}
		records = append(records, copyRecord(record))
	}
	return records, nil
}

// ListOverdue returns Issued records whose due date has passed as of asOf.
func (s *service) ListOverdue(ctx context.Context, asOf time.Time) ([]*LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*LoanRecord
	for _, record := range s.records {
		if record.Status == StatusIssued && record.DueDate.Before(asOf) {
			records = append(records, copyRecord(record))
		}
	}
	return records, nil
}

// ListAll returns the full loan history in issue order.
func (s *service) ListAll(ctx context.Context) ([]*LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*LoanRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, copyRecord(record))
	}
	return records, nil
}

func (s *service) findOpen(username string, itemType catalog.ItemType, itemName string) *LoanRecord {
	for _, record := range s.records {
		if record.Status == StatusIssued &&
			record.Username == username &&
			record.ItemType == itemType &&
			record.ItemName == itemName {
			return record
		}
	}
	return nil
}

func copyRecord(record *LoanRecord) *LoanRecord {
	c := *record
	if record.ReturnDate != nil {
		rd := *record.ReturnDate
		c.ReturnDate = &rd
	}
	return &c
}
