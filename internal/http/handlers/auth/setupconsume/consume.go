// Package setupconsume implements the endpoint that sets the account password
// from a setup link and signs the member in.
package setupconsume

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/auth"
)

// Handler serves POST /auth/setup.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the credential flow surface this handler needs.
type Service interface {
	ConsumeSetup(ctx context.Context, token, email, rawPassword, confirmation string) (string, *models.User, error)
}

// Request is the password setup payload.
type Request struct {
	Token        string `json:"setup" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Confirmation string `json:"confirmation" validate:"required"`
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
// @Summary Set the account password from a setup link
// @Description Stores the chosen password, invalidates the setup token and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Setup token, email and chosen password"
// @Success 200 {object} map[string]any "Session token"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or password mismatch"
// @Failure 410 {object} response.ErrorResponse "Invalid or expired link"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /auth/setup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.setupconsume"
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

	token, user, err := h.service.ConsumeSetup(r.Context(), req.Token, req.Email, req.Password, req.Confirmation)
	switch {
	case errors.Is(err, auth.ErrInvalidOrExpiredLink):
		log.Info("setup link rejected")
		w.WriteHeader(http.StatusGone)
		render.JSON(w, r, response.Error("invalid or expired link"))
		return
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordMismatch):
		log.Info("password rejected", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case err != nil:
		log.Error("failed to consume setup link", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not set password"))
		return
	}

	log.Info("password set", "user_id", user.ID)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
		"role":  user.Role,
		"name":  user.Name,
	}))
}
