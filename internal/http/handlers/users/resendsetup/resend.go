// Package resendsetup implements the admin endpoint that reissues a password
// setup link for a subscriber.
package resendsetup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// Handler serves POST /users/{id}/resend-setup.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the account administration surface this handler needs.
type Service interface {
	ResendSetup(ctx context.Context, id string) error
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Resend a password setup link
// @Description Issues a fresh setup token and mails the link. The previously issued token stops working.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account id"
// @Success 200 {object} response.Response "Link sent"
// @Failure 404 {object} response.ErrorResponse "Account not found"
// @Router /users/{id}/resend-setup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.resendsetup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.ResendSetup(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", "user_id", id)
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to resend setup link", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resend setup link"))
		return
	}

	log.Info("setup link resent", "user_id", id)
	render.JSON(w, r, response.StatusOKWithData(nil))
}
