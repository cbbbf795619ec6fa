// Package subscription implements the subscription lifecycle state model:
// evaluation of an account's raw fields into a status plus the access-granted
// flag, and the pause/resume/extend transitions that mutate those fields.
//
// Evaluation is pure and recomputed on every request; access is never cached,
// so a paused or expired account loses access on its next gated request.
package subscription

import (
	"errors"
	"fmt"
	"time"

	"github.com/swipefile/swipe-library/internal/models"
)

// Status is the human-facing subscription state.
type Status string

const (
	StatusActive         Status = "active"
	StatusPaused         Status = "paused"
	StatusExpired        Status = "expired"
	StatusNoSubscription Status = "none"
)

var (
	// ErrAlreadyPaused is returned by Pause on an already-paused account.
	ErrAlreadyPaused = errors.New("subscription is already paused")
	// ErrNotPaused is returned by Resume on an account that is not paused.
	ErrNotPaused = errors.New("subscription is not paused")
)

// Evaluation is the result of classifying an account at a point in time.
// DaysRemaining is meaningful for Active, and for Paused when a dormant window
// is stored; it is never negative. ExpiredWhilePaused marks a paused account
// whose dormant window has already run out.
type Evaluation struct {
	Status             Status `json:"status"`
	IsActive           bool   `json:"is_active"`
	DaysRemaining      int    `json:"days_remaining"`
	ExpiredWhilePaused bool   `json:"expired_while_paused,omitempty"`
}

// daysUntil rounds the remaining duration up to whole days. This is the single
// rounding rule used everywhere a "days remaining" figure is shown.
func daysUntil(t, now time.Time) int {
	d := t.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// Evaluate classifies the subscription fields of a user at the given time.
// Decision order, first match wins: paused, no window, window in the future,
// otherwise expired. IsActive is true only for StatusActive.
func Evaluate(u *models.User, now time.Time) Evaluation {
	if u.Paused {
		ev := Evaluation{Status: StatusPaused}
		if u.PreviousExpiresAt != nil {
			days := daysUntil(*u.PreviousExpiresAt, now)
			if days > 0 {
				ev.DaysRemaining = days
			} else {
				ev.ExpiredWhilePaused = true
			}
		}
		return ev
	}
	if u.ExpiresAt == nil {
		return Evaluation{Status: StatusNoSubscription}
	}
	if u.ExpiresAt.After(now) {
		return Evaluation{
			Status:        StatusActive,
			IsActive:      true,
			DaysRemaining: daysUntil(*u.ExpiresAt, now),
		}
	}
	return Evaluation{Status: StatusExpired}
}

// Label renders the evaluation the way the member area shows it.
func (e Evaluation) Label() string {
	switch e.Status {
	case StatusActive:
		return fmt.Sprintf("Active (%d days remaining)", e.DaysRemaining)
	case StatusPaused:
		if e.ExpiredWhilePaused {
			return "Paused (expired)"
		}
		if e.DaysRemaining > 0 {
			return fmt.Sprintf("Paused (%d days remaining)", e.DaysRemaining)
		}
		return "Paused"
	case StatusExpired:
		return "Expired"
	default:
		return "No subscription"
	}
}

// Pause freezes the subscription: the live window moves verbatim into
// PreviousExpiresAt and ExpiresAt is cleared, so the flag and a live window
// never coexist.
func Pause(u *models.User) error {
	if u.Paused {
		return ErrAlreadyPaused
	}
	u.Paused = true
	if u.ExpiresAt != nil {
		u.PreviousExpiresAt = u.ExpiresAt
		u.ExpiresAt = nil
	}
	return nil
}

// Resume reverses Pause, restoring the saved window verbatim. Paired with
// Pause it round-trips exactly, with no drift.
func Resume(u *models.User) error {
	if !u.Paused {
		return ErrNotPaused
	}
	u.Paused = false
	if u.PreviousExpiresAt != nil {
		u.ExpiresAt = u.PreviousExpiresAt
		u.PreviousExpiresAt = nil
	}
	return nil
}

// Extend grows the subscription window by the given number of months, counted
// from the current expiry when it is still in the future and from now when it
// has lapsed, so an expired account never extends from a stale date and an
// active one loses no time. Extension always reactivates by clearing the
// paused flag; PreviousExpiresAt is left as is, it doubles as the start of the
// last window on the account screen.
func Extend(u *models.User, months int, now time.Time) {
	base := now
	if u.ExpiresAt != nil && u.ExpiresAt.After(now) {
		base = *u.ExpiresAt
	}
	next := base.AddDate(0, months, 0)
	u.ExpiresAt = &next
	u.Paused = false
}
