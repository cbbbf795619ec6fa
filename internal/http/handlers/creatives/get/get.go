// Package get implements the single creative endpoint.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// Handler serves GET /creatives/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the catalog surface this handler needs.
type Service interface {
	GetCreative(ctx context.Context, id string) (*models.Creative, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Get a creative
// @Description Returns one creative with its linked offer embedded.
// @Tags Creatives
// @Produce json
// @Security BearerAuth
// @Param id path string true "Creative id"
// @Success 200 {object} map[string]any "Creative"
// @Failure 404 {object} response.ErrorResponse "Creative not found"
// @Router /creatives/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.creatives.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	creative, err := h.service.GetCreative(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("creative not found", "creative_id", id)
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("creative not found"))
			return
		}
		log.Error("failed to get creative", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get creative"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(creative))
}
