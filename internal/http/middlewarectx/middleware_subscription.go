package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/swipefile/swipe-library/internal/http/response"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/subscription"
)

// AccountProvider loads the account whose subscription state is gated on.
type AccountProvider interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// SubscriptionGateMiddleware denies member requests whose subscription is not
// currently active. The state is evaluated per request against the stored
// row, so a pause or expiry takes effect immediately. Admins pass through.
// It must run after JWTMiddleware.
func SubscriptionGateMiddleware(accounts AccountProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(Role).(string)
			if role == models.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := r.Context().Value(UserID).(string)
			if !ok || userID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user, err := accounts.GetUser(r.Context(), userID)
			if err != nil {
				log.Error("failed to load account for gating", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ev := subscription.Evaluate(user, time.Now().UTC())
			if !ev.IsActive {
				log.Info("subscription inactive, access denied",
					"user_id", userID, "status", string(ev.Status))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("subscription inactive, access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
