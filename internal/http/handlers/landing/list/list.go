// Package list implements the landing page listing endpoint.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
)

// Handler serves GET /landing-pages.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the catalog surface this handler needs.
type Service interface {
	ListLandingPages(ctx context.Context) ([]*models.LandingPage, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List landing pages
// @Description Returns all landing pages newest first with the titles of their associated entities.
// @Tags LandingPages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Landing page list"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /landing-pages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.landing.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.ListLandingPages(r.Context())
	if err != nil {
		log.Error("failed to list landing pages", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list landing pages"))
		return
	}

	log.Info("landing pages listed", "count", len(result))
	render.JSON(w, r, response.StatusOKWithData(result))
}
