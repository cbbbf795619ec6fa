// Package update implements the admin endpoint that edits a creative.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
)

// Handler serves PUT /creatives/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the catalog surface this handler needs.
type Service interface {
	UpdateCreative(ctx context.Context, id string, in models.CreativeInput) (int64, error)
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
// @Summary Edit a creative
// @Description Replaces the creative fields. An empty oferta_id clears the association.
// @Tags Creatives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Creative id"
// @Param request body models.CreativeInput true "New creative fields"
// @Success 200 {object} map[string]any "Number of updated rows"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 404 {object} response.ErrorResponse "Creative not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /creatives/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.creatives.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreativeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id := chi.URLParam(r, "id")
	count, err := h.service.UpdateCreative(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update creative", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update creative"))
		return
	}
	if count == 0 {
		log.Info("creative not found", "creative_id", id)
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("creative not found"))
		return
	}

	log.Info("creative updated", "creative_id", id)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated": count,
	}))
}
