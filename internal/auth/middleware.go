// internal/auth/middleware.go
package auth

import (
	"net/http"

	"libtrack/internal/membership"
)

// Authenticator resolves HTTP Basic credentials through the membership store
// and attaches the user to the request context. The presentation layer
// re-sends credentials per request; no session tokens are issued.
func Authenticator(svc membership.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="libtrack"`)
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			user, err := svc.Authenticate(r.Context(), username, password)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin guards admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(membership.RoleAdmin, next)
}

// RequireUser guards user-only routes.
func RequireUser(next http.Handler) http.Handler {
	return requireRole(membership.RoleUser, next)
}

func requireRole(role membership.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if err := RequireRole(user, role); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
