// Package list implements the admin endpoint returning all subscribers.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/handlers/users/userview"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/services/user"
)

// Handler serves GET /users.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the account administration surface this handler needs.
type Service interface {
	List(ctx context.Context) ([]user.Overview, error)
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List subscribers
// @Description Returns all accounts newest first, each with its evaluated subscription state.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Subscriber list"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	overviews, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	views := make([]userview.View, 0, len(overviews))
	for _, o := range overviews {
		views = append(views, userview.FromOverview(o))
	}
	log.Info("users listed", "count", len(views))
	render.JSON(w, r, response.StatusOKWithData(views))
}
