package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/middlewares"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

// PostCreator defines the interface that the post service must implement.
type PostCreator interface {
	Create(ctx context.Context, username, content, imageURL, imageName string, image io.Reader) error
}

// NewPostPageHandler returns an HTTP handler for the post-composition form.
// The route is gated: anonymous requests never reach it.
// @Summary Post-composition form
// @Tags posts
// @Produce html
// @Success 200 {string} string "Rendered post form"
// @Failure 303 {string} string "Redirect to login when anonymous"
// @Router /post [get]
func NewPostPageHandler(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.Render(w, http.StatusOK, "post.html", web.Page{
			Username: middlewares.GetUsernameFromContext(r.Context()),
			Flash:    web.PopFlash(w, r),
		})
	}
}

// NewCreatePostHandler returns an HTTP handler for post submissions.
// @Summary Create a post
// @Description Inserts a post for the authenticated user. An accepted file upload overrides a submitted image URL. The author's profile picture is copied onto the post.
// @Tags posts
// @Accept mpfd
// @Produce html
// @Param content formData string true "Post content"
// @Param image formData string false "External image URL"
// @Param image_file formData file false "Image upload (png, jpg, jpeg, gif)"
// @Success 303 {string} string "Redirect home on success"
// @Failure 303 {string} string "Redirect to login when anonymous"
// @Router /post [post]
func NewCreatePostHandler(svc PostCreator, rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middlewares.GetUsernameFromContext(r.Context())

		form, err := DecodePostForm(r)
		if err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				rnd.Render(w, http.StatusOK, "post.html", web.Page{
					Username: username,
					Flash:    &web.Flash{Level: web.LevelError, Message: "Content is required."},
				})
				return
			}
			logger.Log.Errorw("failed to decode post form", "err", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if form.Image != nil {
			defer form.Image.Close()
		}

		var image io.Reader
		if form.Image != nil {
			image = form.Image
		}

		err = svc.Create(r.Context(), username, form.Content, form.ImageURL, form.ImageName, image)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		web.SetFlash(w, web.LevelSuccess, "Your post has been created successfully.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
