// Package create implements the admin endpoint that publishes a new offer.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/swipefile/swipe-library/internal/http/handlers/offers"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/catalog"
)

// Handler serves POST /offers.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the catalog surface this handler needs.
type Service interface {
	CreateOffer(ctx context.Context, in models.OfferInput, thumb *catalog.Thumbnail) (*models.Offer, error)
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
// @Summary Publish an offer
// @Description Stores a new offer. The metadata travels as multipart form fields, the thumbnail as a mandatory image file part.
// @Tags Offers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Offer title"
// @Param drive_link formData string true "External asset link"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 200 {object} map[string]any "Created offer"
// @Failure 400 {object} response.ErrorResponse "Malformed form"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /offers [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.offers.create"
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
	if thumb == nil {
		log.Info("thumbnail part missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("thumbnail is required"))
		return
	}
	log.Info("form decoded")

	if err := h.validate.Struct(in); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	offer, err := h.service.CreateOffer(r.Context(), in, thumb)
	if err != nil {
		if errors.Is(err, catalog.ErrThumbnailRequired) {
			log.Info("offer rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create offer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create offer"))
		return
	}

	log.Info("offer created", "offer_id", offer.ID)
	render.JSON(w, r, response.StatusOKWithData(offer))
}
