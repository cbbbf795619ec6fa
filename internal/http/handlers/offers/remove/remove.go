// Package remove implements the admin endpoint that deletes an offer and its
// thumbnail blob.
package remove

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
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// Handler serves DELETE /offers/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the catalog surface this handler needs.
type Service interface {
	DeleteOffer(ctx context.Context, id string) (int64, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Delete an offer
// @Description Removes the offer row and releases its thumbnail blob. Creatives pointing at it lose the association.
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Success 200 {object} map[string]any "Number of deleted rows"
// @Failure 404 {object} response.ErrorResponse "Offer not found"
// @Router /offers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	count, err := h.service.DeleteOffer(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("offer not found", "offer_id", id)
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("offer not found"))
			return
		}
		log.Error("failed to delete offer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete offer"))
		return
	}

	log.Info("offer deleted", "offer_id", id)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": count,
	}))
}
