package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/monkeymesh/monkeymesh/internal/jwt"
	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionReader resolves a session ID to the username it belongs to, empty
// when the session no longer exists.
type SessionReader interface {
	Get(ctx context.Context, sessionID uuid.UUID) (string, error)
}

// SessionMiddleware resolves the requester's identity from the session
// cookie. A missing, invalid or logged-out token leaves the request
// anonymous; it never blocks. Gating is RequireAuthMiddleware's job.
func SessionMiddleware(tokener Tokener, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("invalid session token", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			username, err := sessions.Get(ctx, claims.SessionID)
			if err != nil {
				logger.Log.Errorw("failed to check session", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if username == "" || username != claims.Username {
				// Session was logged out or expired server-side.
				next.ServeHTTP(w, r)
				return
			}

			ctx = SetIdentityToContext(ctx, claims.Username, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthMiddleware gates authenticated-only pages. Anonymous requests
// are redirected to the login page with a transient warning; nothing is
// queued or retried.
func RequireAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUsernameFromContext(r.Context()) == "" {
				web.SetFlash(w, web.LevelError, "You must be logged in to access this page.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// identity is the authenticated requester stored in the request context.
type identity struct {
	username  string
	sessionID uuid.UUID
}

// identityKey is an unexported type for keys in context.
type identityKey struct{}

// SetIdentityToContext stores the authenticated identity in the context.
func SetIdentityToContext(ctx context.Context, username string, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{username: username, sessionID: sessionID})
}

// GetUsernameFromContext returns the authenticated username, empty for
// anonymous requests.
func GetUsernameFromContext(ctx context.Context) string {
	id, _ := ctx.Value(identityKey{}).(identity)
	return id.username
}

// GetSessionIDFromContext returns the session ID of the authenticated
// requester, uuid.Nil for anonymous requests.
func GetSessionIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(identityKey{}).(identity)
	return id.sessionID
}
