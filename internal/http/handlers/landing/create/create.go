// Package create implements the admin endpoint that registers a landing
// page.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
)

// Handler serves POST /landing-pages.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the catalog surface this handler needs.
type Service interface {
	CreateLandingPage(ctx context.Context, in models.LandingPageInput) (*models.LandingPage, error)
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
// @Summary Register a landing page
// @Description Stores a landing page tied to at most one offer or one creative.
// @Tags LandingPages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.LandingPageInput true "New landing page"
// @Success 200 {object} map[string]any "Created landing page"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or inconsistent association"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /landing-pages [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.landing.create"
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

	page, err := h.service.CreateLandingPage(r.Context(), req)
	if err != nil {
		log.Error("failed to create landing page", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create landing page"))
		return
	}

	log.Info("landing page created", "landing_page_id", page.ID)
	render.JSON(w, r, response.StatusOKWithData(page))
}
