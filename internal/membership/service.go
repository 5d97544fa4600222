// internal/membership/service.go
package membership

import "context"

// Service defines the interface for the membership store.
type Service interface {
	AddUser(ctx context.Context, username, password string, role Role, subscription SubscriptionDuration) (*User, error)
	UpdateUser(ctx context.Context, username, password string, role Role, subscription SubscriptionDuration) error
	Authenticate(ctx context.Context, username, password string) (*User, error)
	GetUser(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	RecordFines(ctx context.Context, username string, amount float64) error
	SettleFines(ctx context.Context, username string) error
}
