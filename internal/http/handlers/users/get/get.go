// Package get implements the admin endpoint returning one subscriber.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/handlers/users/userview"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/services/user"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

// Handler serves GET /users/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the account administration surface this handler needs.
type Service interface {
	Get(ctx context.Context, id string) (*user.Overview, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Get a subscriber
// @Description Returns one account with its evaluated subscription state.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account id"
// @Success 200 {object} map[string]any "Subscriber"
// @Failure 404 {object} response.ErrorResponse "Account not found"
// @Router /users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	overview, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", "user_id", id)
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get user"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(userview.FromOverview(*overview)))
}
