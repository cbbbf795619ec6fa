// Package extend implements the admin endpoint that lengthens a subscription
// window by whole months.
package extend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/swipefile/swipe-library/internal/http/handlers/users/userview"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/services/user"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// Handler serves POST /users/{id}/extend.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the account administration surface this handler needs.
type Service interface {
	Extend(ctx context.Context, id string, months int) (*user.Overview, error)
}

// Request is the extension payload.
type Request struct {
	Months int `json:"months" validate:"required,min=1,max=36"`
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
// @Summary Extend a subscription
// @Description Pushes the access window forward by the given number of months. An expired window extends from today, an active one from its current end.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account id"
// @Param request body Request true "Number of months"
// @Success 200 {object} map[string]any "Subscriber after the extension"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 404 {object} response.ErrorResponse "Account not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /users/{id}/extend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.extend"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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
	overview, err := h.service.Extend(r.Context(), id, req.Months)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", "user_id", id)
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to extend subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not extend subscription"))
		return
	}

	log.Info("subscription extended", "user_id", id, "months", req.Months)
	render.JSON(w, r, response.StatusOKWithData(userview.FromOverview(*overview)))
}
