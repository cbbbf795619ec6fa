// Package get implements the member profile endpoint, returning the account
// together with its evaluated subscription state.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/middlewarectx"
	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/services/user"
)

// Handler serves GET /account.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the account surface this handler needs.
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
// @Summary Get the signed-in account
// @Description Returns the profile and the evaluated subscription state of the caller.
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Profile and subscription state"
// @Failure 401 {object} response.ErrorResponse "Not signed in"
// @Router /account [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.get"
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

	overview, err := h.service.Get(r.Context(), userID)
	if err != nil {
		log.Error("failed to load account", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load account"))
		return
	}

	u := overview.User
	ev := overview.Evaluation
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":                  u.ID,
		"name":                u.Name,
		"email":               u.Email,
		"phone":               u.Phone,
		"expires_at":          u.ExpiresAt,
		"previous_expires_at": u.PreviousExpiresAt,
		"paused":              u.Paused,
		"status":              string(ev.Status),
		"is_active":           ev.IsActive,
		"days_remaining":      ev.DaysRemaining,
		"status_label":        ev.Label(),
	}))
}
