// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// service implements the Service interface with an in-memory dataset.
type service struct {
	mu          sync.RWMutex
	users       map[string]*User
	order       []string
	authLimiter *rate.Limiter
	now         func() time.Time
}

// NewService creates a new membership store instance.
func NewService() Service {
	return &service{
		users:       make(map[string]*User),
		authLimiter: rate.NewLimiter(rate.Every(time.Second), 10),
		now:         time.Now,
	}
}

// AddUser creates a new account. The subscription option is converted to an
// absolute expiry at the moment of grant.
func (s *service) AddUser(ctx context.Context, username, password string, role Role, subscription SubscriptionDuration) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, fmt.Errorf("user %q: %w", username, ErrDuplicateUser)
	}

	hash, salt, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &User{
		Username:        username,
		PasswordHash:    hash,
		Salt:            salt,
		Role:            role,
		SubscriptionEnd: subscription.ExpiryFrom(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.users[username] = user
	s.order = append(s.order, username)

	return copyUser(user), nil
}

// UpdateUser replaces an account's credential, role and subscription.
// Re-granting a subscription recomputes the expiry from now.
func (s *service) UpdateUser(ctx context.Context, username, password string, role Role, subscription SubscriptionDuration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	hash, salt, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user.PasswordHash = hash
	user.Salt = salt
	user.Role = role
	user.SubscriptionEnd = subscription.ExpiryFrom(now)
	user.UpdatedAt = now
	return nil
}

// Authenticate verifies credentials and returns the account if successful.
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if !s.authLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[username]
	if !exists {
		return nil, fmt.Errorf("unknown user %q: %w", username, ErrInvalidCredentials)
	}

	ok, err := verifyPassword(password, user.Salt, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("wrong password for %q: %w", username, ErrInvalidCredentials)
	}

	return copyUser(user), nil
}

// GetUser retrieves an account by username.
func (s *service) GetUser(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[username]
	if !exists {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return copyUser(user), nil
}

// ListUsers returns all accounts in registration order.
func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*User, 0, len(s.order))
	for _, username := range s.order {
		users = append(users, copyUser(s.users[username]))
	}
	return users, nil
}

// RecordFines posts the reviewed fine balance for an account. The balance is
// a derived cache of the overdue computation, not an independent tally.
func (s *service) RecordFines(ctx context.Context, username string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("fine amount must be non-negative, got %.2f", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	user.Fines = amount
	user.UpdatedAt = s.now()
	return nil
}

// SettleFines resets an account's fine balance to zero.
func (s *service) SettleFines(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	user.Fines = 0
	user.UpdatedAt = s.now()
	return nil
}

func copyUser(user *User) *User {
	c := *user
	if user.SubscriptionEnd != nil {
		end := *user.SubscriptionEnd
		c.SubscriptionEnd = &end
	}
	return &c
}
