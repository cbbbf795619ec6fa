// Package userview defines the JSON shape of a subscriber in admin
// responses: the profile joined with the evaluated subscription state.
package userview

import (
	"time"

	"github.com/swipefile/swipe-library/internal/services/user"
)

// View is one subscriber row in admin responses.
type View struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	Role              string     `json:"role"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	PreviousExpiresAt *time.Time `json:"previous_expires_at,omitempty"`
	Paused            bool       `json:"paused"`
	PendingSetup      bool       `json:"pending_setup"`
	Status            string     `json:"status"`
	IsActive          bool       `json:"is_active"`
	DaysRemaining     int        `json:"days_remaining"`
	StatusLabel       string     `json:"status_label"`
	CreatedAt         time.Time  `json:"created_at"`
}

// FromOverview maps an account overview onto the response shape.
func FromOverview(o user.Overview) View {
	u := o.User
	return View{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Role:              u.Role,
		ExpiresAt:         u.ExpiresAt,
		PreviousExpiresAt: u.PreviousExpiresAt,
		Paused:            u.Paused,
		PendingSetup:      u.HasPendingSetup(time.Now().UTC()),
		Status:            string(o.Evaluation.Status),
		IsActive:          o.Evaluation.IsActive,
		DaysRemaining:     o.Evaluation.DaysRemaining,
		StatusLabel:       o.Evaluation.Label(),
		CreatedAt:         u.CreatedAt,
	}
}
