// Package changepassword implements the password change endpoint for a
// signed-in account.
package changepassword

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
	"github.com/swipefile/swipe-library/internal/services/auth"
)

// Handler serves PUT /account/password.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the credential flow surface this handler needs.
type Service interface {
	ChangePassword(ctx context.Context, email, current, next, confirmation string) error
}

// Request is the password change payload.
type Request struct {
	Current      string `json:"current_password" validate:"required"`
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
// @Summary Change the account password
// @Description Replaces the password of the caller after checking the current one.
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Current and new password"
// @Success 200 {object} response.Response "Password changed"
// @Failure 400 {object} response.ErrorResponse "Password rejected"
// @Failure 401 {object} response.ErrorResponse "Wrong current password"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /account/password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.changepassword"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

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

	err := h.service.ChangePassword(r.Context(), email, req.Current, req.Password, req.Confirmation)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Info("password change rejected")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("wrong current password"))
		return
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrSamePassword):
		log.Info("password rejected", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case err != nil:
		log.Error("failed to change password", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not change password"))
		return
	}

	log.Info("password changed")
	render.JSON(w, r, response.StatusOKWithData(nil))
}
