// Package get implements the single offer endpoint. When a member opens an
// offer the access is recorded for the dashboard.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/middlewarectx"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// Handler serves GET /offers/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
	stats   Recorder
}

// Service is the catalog surface this handler needs.
type Service interface {
	GetOffer(ctx context.Context, id string) (*models.Offer, error)
}

// Recorder appends content access events.
type Recorder interface {
	RecordAccess(ctx context.Context, userID, contentID string) error
}

// New creates a Handler.
func New(log *slog.Logger, service Service, stats Recorder) *Handler {
	return &Handler{
		log:     log,
		service: service,
		stats:   stats,
	}
}

// ServeHTTP godoc
// @Summary Get an offer
// @Description Returns one offer. A member request is recorded as a content access event.
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Success 200 {object} map[string]any "Offer"
// @Failure 404 {object} response.ErrorResponse "Offer not found"
// @Router /offers/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	offer, err := h.service.GetOffer(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("offer not found", "offer_id", id)
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("offer not found"))
			return
		}
		log.Error("failed to get offer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get offer"))
		return
	}

	role, _ := r.Context().Value(middlewarectx.Role).(string)
	userID, _ := r.Context().Value(middlewarectx.UserID).(string)
	if role == models.RoleMember && userID != "" {
		if err := h.stats.RecordAccess(r.Context(), userID, id); err != nil {
			log.Warn("failed to record content access", "offer_id", id, sl.Err(err))
		}
	}

	render.JSON(w, r, response.StatusOKWithData(offer))
}
