// Package update implements the admin endpoint that edits an offer,
// optionally replacing its thumbnail.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/swipefile/swipe-library/internal/http/handlers/offers"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/catalog"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// Handler serves PUT /offers/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the catalog surface this handler needs.
type Service interface {
	UpdateOffer(ctx context.Context, id string, in models.OfferInput, thumb *catalog.Thumbnail) (int64, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Edit an offer
// @Description Replaces the offer fields. A supplied thumbnail file replaces the stored blob.
// @Tags Offers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Param title formData string true "Offer title"
// @Param drive_link formData string true "External asset link"
// @Param thumbnail formData file false "Replacement thumbnail"
// @Success 200 {object} map[string]any "Number of updated rows"
// @Failure 400 {object} response.ErrorResponse "Malformed form"
// @Failure 404 {object} response.ErrorResponse "Offer not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /offers/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	in, thumb, err := offers.ParseForm(r)
	if err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		if errors.Is(err, offers.ErrNotImage) {
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		render.JSON(w, r, response.Error("invalid form data"))
		return
	}
	log.Info("form decoded", "has_thumbnail", thumb != nil)

	if err := h.validate.Struct(in); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id := chi.URLParam(r, "id")
	count, err := h.service.UpdateOffer(r.Context(), id, in, thumb)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("offer not found", "offer_id", id)
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("offer not found"))
			return
		}
		log.Error("failed to update offer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update offer"))
		return
	}

	log.Info("offer updated", "offer_id", id)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated": count,
	}))
}
