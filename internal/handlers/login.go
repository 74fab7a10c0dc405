package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/middlewares"
	"github.com/monkeymesh/monkeymesh/internal/services"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// CookieBaker wraps a session token in an HTTP cookie.
type CookieBaker interface {
	NewCookie(token string) *http.Cookie
	ClearCookie() *http.Cookie
}

// NewLoginPageHandler returns an HTTP handler for the login form.
// Authenticated users are sent home instead.
// @Summary Login form
// @Tags auth
// @Produce html
// @Success 200 {string} string "Rendered login page"
// @Router /login [get]
func NewLoginPageHandler(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middlewares.GetUsernameFromContext(r.Context()) != "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		rnd.Render(w, http.StatusOK, "login.html", web.Page{
			Flash: web.PopFlash(w, r),
		})
	}
}

// NewLoginHandler returns an HTTP handler for login submissions.
// @Summary User login
// @Description Verifies credentials, sets the session cookie and redirects home. A mismatch re-renders the form with an error message.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce html
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 303 {string} string "Redirect home on success"
// @Router /login [post]
func NewLoginHandler(svc Loginer, cookies CookieBaker, rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middlewares.GetUsernameFromContext(r.Context()) != "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		form, err := DecodeLoginForm(r)
		if err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				rnd.Render(w, http.StatusOK, "login.html", web.Page{
					Flash: &web.Flash{Level: web.LevelError, Message: "Username and password are required."},
				})
				return
			}
			logger.Log.Errorw("failed to decode login form", "err", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		token, err := svc.Login(r.Context(), form.Username, form.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials),
				errors.Is(err, services.ErrUserDoesNotExist):
				// Same message for unknown user and wrong password.
				rnd.Render(w, http.StatusOK, "login.html", web.Page{
					Flash: &web.Flash{Level: web.LevelError, Message: "Invalid username or password."},
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		http.SetCookie(w, cookies.NewCookie(token))
		web.SetFlash(w, web.LevelSuccess, "You were successfully logged in.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
