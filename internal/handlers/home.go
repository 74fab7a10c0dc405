package handlers

import (
	"context"
	"net/http"

	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/middlewares"
	"github.com/monkeymesh/monkeymesh/internal/models"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

// FeedReader defines the interface that the feed service must implement.
type FeedReader interface {
	Feed(ctx context.Context) ([]models.PostDB, error)
}

// NewHomeHandler returns an HTTP handler for the shared feed.
// @Summary Shared feed
// @Description Renders every post, newest first. Visible to everyone; shows the username when authenticated.
// @Tags feed
// @Produce html
// @Success 200 {string} string "Rendered feed page"
// @Router / [get]
func NewHomeHandler(svc FeedReader, rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.Feed(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		rnd.Render(w, http.StatusOK, "index.html", web.Page{
			Username: middlewares.GetUsernameFromContext(r.Context()),
			Flash:    web.PopFlash(w, r),
			Data:     posts,
		})
	}
}
