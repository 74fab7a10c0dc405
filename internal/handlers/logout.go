package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/middlewares"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler for logout. It works in any
// state: an anonymous request just gets the redirect.
// @Summary Log out
// @Description Destroys the live session, clears the session cookie and redirects home.
// @Tags auth
// @Produce html
// @Success 302 {string} string "Redirect home"
// @Router /logout [get]
func NewLogoutHandler(svc Logouter, cookies CookieBaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID := middlewares.GetSessionIDFromContext(r.Context()); sessionID != uuid.Nil {
			if err := svc.Logout(r.Context(), sessionID); err != nil {
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		http.SetCookie(w, cookies.ClearCookie())
		web.SetFlash(w, web.LevelSuccess, "You were successfully logged out.")
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
