package middleware

import (
	"context"
	"net/http"

	"github.com/snippetsapp/snippets/internal/services/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Cookie names. The session cookie carries the signed token; the legacy
// trio is what the previous deployment set.
const (
	SessionCookie        = "session"
	LegacyHashCookie     = "loggedInHash"
	LegacyUserIDCookie   = "userId"
	LegacyUsernameCookie = "username"
)

// GetIdentity retrieves the authenticated identity from the request context.
// Returns nil if the request is anonymous.
func GetIdentity(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityContextKey).(*auth.Identity)
	return identity
}

// RequireAuth returns middleware that requires authentication.
// Anonymous requests are redirected to the homepage.
func RequireAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromCookies(r, authService)
			if identity == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't
// require it. Sets the identity in context if authenticated, nil otherwise.
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromCookies(r, authService)
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFromCookies produces the per-request authentication verdict.
// The signed session cookie is tried first; the legacy cookie trio is a
// fallback for sessions issued before the cutover. A missing cookie reads
// as the empty string and fails closed.
func identityFromCookies(r *http.Request, authService *auth.Service) *auth.Identity {
	if token := cookieValue(r, SessionCookie); token != "" {
		if identity, err := authService.VerifyToken(token); err == nil {
			return identity
		}
	}

	identity, err := authService.VerifyLegacy(
		cookieValue(r, LegacyHashCookie),
		cookieValue(r, LegacyUserIDCookie),
		cookieValue(r, LegacyUsernameCookie),
	)
	if err != nil {
		return nil
	}
	return identity
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
