// Package update implements the admin endpoint that edits a landing page.
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

// Handler serves PUT /landing-pages/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the catalog surface this handler needs.
type Service interface {
	UpdateLandingPage(ctx context.Context, id string, in models.LandingPageInput) (int64, error)
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
// @Summary Edit a landing page
// @Description Replaces the landing page fields including its association.
// @Tags LandingPages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Landing page id"
// @Param request body models.LandingPageInput true "New landing page fields"
// @Success 200 {object} map[string]any "Number of updated rows"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or inconsistent association"
// @Failure 404 {object} response.ErrorResponse "Landing page not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /landing-pages/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.landing.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LandingPageInput
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
	if _, err := req.Association(); err != nil {
		log.Error("inconsistent association", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	log.Info("all fields are validated")

	id := chi.URLParam(r, "id")
	count, err := h.service.UpdateLandingPage(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update landing page", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update landing page"))
		return
	}
	if count == 0 {
		log.Info("landing page not found", "landing_page_id", id)
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("landing page not found"))
		return
	}

	log.Info("landing page updated", "landing_page_id", id)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"updated": count,
	}))
}
