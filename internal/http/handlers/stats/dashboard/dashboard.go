// Package dashboard implements the admin overview endpoint: subscriber
// totals, login recency and content access frequency.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/services/stats"
)

// Handler serves GET /stats/dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the stats surface this handler needs.
type Service interface {
	BuildDashboard(ctx context.Context) (*stats.Dashboard, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Admin dashboard
// @Description Returns subscriber totals by state, the most recent login per user and the most opened offers.
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Dashboard aggregations"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /stats/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	board, err := h.service.BuildDashboard(r.Context())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard"))
		return
	}

	log.Info("dashboard built", "users", board.Totals.Users)
	render.JSON(w, r, response.StatusOKWithData(board))
}
