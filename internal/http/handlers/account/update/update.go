// Package update implements the member profile update endpoint. The caller
// edits only their own row.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/swipefile/swipe-library/internal/http/middlewarectx"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/user"
)

// Handler serves PUT /account.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the account surface this handler needs.
type Service interface {
	Update(ctx context.Context, id string, in models.UserInput) (int64, error)
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
// @Summary Update the signed-in account
// @Description Edits the name, email and phone of the caller's own profile.
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UserInput true "Profile fields"
// @Success 200 {object} response.Response "Profile updated"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 401 {object} response.ErrorResponse "Not signed in"
// @Failure 409 {object} response.ErrorResponse "Email already registered"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /account [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.UserInput
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

	count, err := h.service.Update(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			log.Info("profile update rejected, email taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email is already registered"))
			return
		}
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update profile"))
		return
	}
	if count == 0 {
		log.Error("account row missing", "user_id", userID)
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("account not found"))
		return
	}

	log.Info("profile updated", "user_id", userID)
	render.JSON(w, r, response.StatusOKWithData(nil))
}
