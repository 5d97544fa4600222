// internal/auth/roles.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"libtrack/internal/membership"
)

// ErrForbidden is returned when an authenticated user lacks the required role.
var ErrForbidden = errors.New("forbidden")

// RequireRole is the capability check performed by the request-handling
// layer before any core operation that is role-gated.
func RequireRole(user *membership.User, role membership.Role) error {
	if user == nil {
		return fmt.Errorf("no authenticated user: %w", ErrForbidden)
	}
	if user.Role != role {
		return fmt.Errorf("role %q required, have %q: %w", role, user.Role, ErrForbidden)
	}
	return nil
}

type contextKey struct{}

// ContextWithUser attaches the authenticated user to a request context.
func ContextWithUser(ctx context.Context, user *membership.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext retrieves the authenticated user, if any.
func UserFromContext(ctx context.Context) (*membership.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*membership.User)
	return user, ok
}
