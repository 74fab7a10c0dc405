package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/services"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

// Registerer defines the interface that the signup service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, avatarName string, avatar io.Reader) error
}

// NewSignupPageHandler returns an HTTP handler for the signup form.
// @Summary Signup form
// @Tags auth
// @Produce html
// @Success 200 {string} string "Rendered signup page"
// @Router /signup [get]
func NewSignupPageHandler(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.Render(w, http.StatusOK, "signup.html", web.Page{
			Flash: web.PopFlash(w, r),
		})
	}
}

// NewSignupHandler returns an HTTP handler for signup submissions.
// @Summary Register a new user
// @Description Creates a user with an optional profile picture. The password is hashed before storing. Duplicate usernames re-render the form with an error message.
// @Tags auth
// @Accept mpfd
// @Produce html
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param image_file formData file false "Profile picture (png, jpg, jpeg, gif)"
// @Success 303 {string} string "Redirect to login on success"
// @Router /signup [post]
func NewSignupHandler(svc Registerer, rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := DecodeSignupForm(r)
		if err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				rnd.Render(w, http.StatusOK, "signup.html", web.Page{
					Flash: &web.Flash{Level: web.LevelError, Message: "Username and password are required."},
				})
				return
			}
			logger.Log.Errorw("failed to decode signup form", "err", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if form.Avatar != nil {
			defer form.Avatar.Close()
		}

		var avatar io.Reader
		if form.Avatar != nil {
			avatar = form.Avatar
		}

		err = svc.Register(r.Context(), form.Username, form.Password, form.AvatarName, avatar)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				rnd.Render(w, http.StatusOK, "signup.html", web.Page{
					Flash: &web.Flash{Level: web.LevelError, Message: "Username already exists, please choose a different one."},
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		web.SetFlash(w, web.LevelSuccess, "User registered successfully.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
