// Package remove implements the admin endpoint that deletes a creative.
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

// Handler serves DELETE /creatives/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the catalog surface this handler needs.
type Service interface {
	DeleteCreative(ctx context.Context, id string) (int64, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Delete a creative
// @Description Removes the creative. Landing pages pointing at it lose the association.
// @Tags Creatives
// @Produce json
// @Security BearerAuth
// @Param id path string true "Creative id"
// @Success 200 {object} map[string]any "Number of deleted rows"
// @Failure 404 {object} response.ErrorResponse "Creative not found"
// @Router /creatives/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.creatives.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	count, err := h.service.DeleteCreative(r.Context(), id)
	if err != nil {
		log.Error("failed to delete creative", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete creative"))
		return
	}
	if count == 0 {
		log.Info("creative not found", "creative_id", id)
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("creative not found"))
		return
	}

	log.Info("creative deleted", "creative_id", id)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": count,
	}))
}
