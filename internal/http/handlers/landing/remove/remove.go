// Package remove implements the admin endpoint that deletes a landing page.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
)

// Handler serves DELETE /landing-pages/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the catalog surface this handler needs.
type Service interface {
	DeleteLandingPage(ctx context.Context, id string) (int64, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Delete a landing page
// @Description Removes the landing page row. The associated offer or creative is untouched.
// @Tags LandingPages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Landing page id"
// @Success 200 {object} map[string]any "Number of deleted rows"
// @Failure 404 {object} response.ErrorResponse "Landing page not found"
// @Router /landing-pages/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.landing.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	count, err := h.service.DeleteLandingPage(r.Context(), id)
	if err != nil {
		log.Error("failed to delete landing page", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete landing page"))
		return
	}
	if count == 0 {
		log.Info("landing page not found", "landing_page_id", id)
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("landing page not found"))
		return
	}

	log.Info("landing page deleted", "landing_page_id", id)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": count,
	}))
}
