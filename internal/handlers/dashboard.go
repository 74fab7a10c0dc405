package handlers

import (
	"context"
	"net/http"

	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/middlewares"
	"github.com/monkeymesh/monkeymesh/internal/models"
	"github.com/monkeymesh/monkeymesh/internal/web"
)

// DashboardReader defines the interface that the dashboard service must implement.
type DashboardReader interface {
	Dashboard(ctx context.Context, username string) (*models.Dashboard, error)
}

// NewDashboardHandler returns an HTTP handler for the user dashboard.
// The route is gated: anonymous requests never reach it.
// @Summary User dashboard
// @Description Renders the authenticated user's posts, post count and profile picture.
// @Tags dashboard
// @Produce html
// @Success 200 {string} string "Rendered dashboard page"
// @Failure 303 {string} string "Redirect to login when anonymous"
// @Router /dashboard [get]
func NewDashboardHandler(svc DashboardReader, rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middlewares.GetUsernameFromContext(r.Context())

		dash, err := svc.Dashboard(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		rnd.Render(w, http.StatusOK, "dashboard.html", web.Page{
			Username: username,
			Flash:    web.PopFlash(w, r),
			Data:     dash,
		})
	}
}
