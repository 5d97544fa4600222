// internal/membership/domain.go
package membership

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateUser is returned when a username is already taken.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrNotFound is returned when no user matches the given username.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for any failed authentication. The
	// wrapped detail distinguishes unknown users from wrong passwords for
	// diagnostics only.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Role enumerates the two account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a role string from the presentation layer.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", errors.New("unknown role: " + s)
}

// SubscriptionDuration is the enumerated subscription option set offered at
// grant or renewal time.
type SubscriptionDuration string

const (
	SubscriptionNone     SubscriptionDuration = "None"
	SubscriptionMonth    SubscriptionDuration = "1 Month"
	SubscriptionQuarter  SubscriptionDuration = "3 Months"
	SubscriptionHalfYear SubscriptionDuration = "6 Months"
	SubscriptionYear     SubscriptionDuration = "1 Year"
)

// ParseSubscriptionDuration validates a duration option. An empty string
// means None.
func ParseSubscriptionDuration(s string) (SubscriptionDuration, error) {
	switch SubscriptionDuration(s) {
	case SubscriptionNone, SubscriptionMonth, SubscriptionQuarter, SubscriptionHalfYear, SubscriptionYear:
		return SubscriptionDuration(s), nil
	case "":
		return SubscriptionNone, nil
	}
	return "", errors.New("unknown subscription duration: " + s)
}

// Days returns the day span for a duration option. None is 0.
func (d SubscriptionDuration) Days() int {
	switch d {
	case SubscriptionMonth:
		return 30
	case SubscriptionQuarter:
		return 90
	case SubscriptionHalfYear:
		return 180
	case SubscriptionYear:
		return 365
	}
	return 0
}

// ExpiryFrom converts the option into an absolute expiry at grant time.
// None yields nil.
func (d SubscriptionDuration) ExpiryFrom(now time.Time) *time.Time {
	if d.Days() == 0 {
		return nil
	}
	t := now.AddDate(0, 0, d.Days())
	return &t
}

// User represents an account. SubscriptionEnd carries a single meaning:
// nil means the account has no expiry restriction and is perpetually
// entitled; a set value in the past means issuing is blocked.
type User struct {
	Username        string     `json:"username"`
	PasswordHash    string     `json:"-"`
	Salt            string     `json:"-"`
	Role            Role       `json:"role"`
	SubscriptionEnd *time.Time `json:"subscription_end,omitempty"`
	Fines           float64    `json:"fines"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
