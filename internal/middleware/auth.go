// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/quadfall/quadfall/internal/auth"
	"github.com/quadfall/quadfall/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireSession rejects any request without a live session before the
// handler runs, so an unauthenticated request can have no side effects. On
// success the resolved identity is attached to the request context.
func RequireSession(sessions *auth.Sessions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := sessions.Authenticate(r.Context(), SessionToken(r))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Authentication required"}`))
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken extracts the session token cookie from r, or "".
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(auth.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// IdentityFrom returns the identity attached by RequireSession.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(models.Identity)
	return ident, ok
}
