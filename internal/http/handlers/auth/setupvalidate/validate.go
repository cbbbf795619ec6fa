// Package setupvalidate implements the setup link check endpoint, called when
// the member opens the link from the email.
package setupvalidate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/auth"
)

// Handler serves GET /auth/setup.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the credential flow surface this handler needs.
type Service interface {
	ValidateSetup(ctx context.Context, token, email string) (*models.User, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Check a password setup link
// @Description Reports whether the setup token and email pair is still valid. The token is not consumed.
// @Tags Auth
// @Produce json
// @Param setup query string true "Setup token"
// @Param email query string true "Account email"
// @Success 200 {object} map[string]any "Display name of the account"
// @Failure 410 {object} response.ErrorResponse "Invalid or expired link"
// @Router /auth/setup [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.setupvalidate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("setup")
	email := r.URL.Query().Get("email")

	user, err := h.service.ValidateSetup(r.Context(), token, email)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidOrExpiredLink) {
			log.Info("setup link rejected")
			w.WriteHeader(http.StatusGone)
			render.JSON(w, r, response.Error("invalid or expired link"))
			return
		}
		log.Error("failed to validate setup link", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate link"))
		return
	}

	log.Info("setup link validated", "user_id", user.ID)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"name":  user.Name,
		"email": user.Email,
	}))
}
