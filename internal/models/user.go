// Package models contains the domain structures for subscriber accounts and
// the curated library entities, plus the payload types decoded from JSON
// requests before conversion into domain values.
package models

import "time"

// Roles assigned to accounts. Administrators curate the library and manage the
// subscriber base; members only consume it.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a subscriber account. ExpiresAt is nil when the account has
// no subscription window; PreviousExpiresAt holds the window frozen at the
// moment of pausing so that unpausing restores it. SetupToken is empty when no
// password setup link is outstanding.
type User struct {
	ID                string     // Opaque unique id
	Name              string     // Display name
	Email             string     // Unique, stored lower-cased; primary lookup key
	Phone             string     // Contact phone
	Role              string     // admin or member
	PasswordHash      string     // Empty until the setup link is consumed
	ExpiresAt         *time.Time // Access valid while in the future
	PreviousExpiresAt *time.Time // Window saved by a pause operation
	Paused            bool       // Denies access regardless of ExpiresAt
	SetupToken        string     // Outstanding password setup token, if any
	SetupExpires      *time.Time // Token honored only while this is in the future
	CreatedAt         time.Time
}

// HasPendingSetup reports whether the user still holds a setup token that has
// not expired.
func (u *User) HasPendingSetup(now time.Time) bool {
	if u.SetupToken == "" || u.SetupExpires == nil {
		return false
	}
	return u.SetupExpires.After(now)
}

// UserInput carries the fields an administrator supplies when creating or
// editing an account.
type UserInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=5,max=30"`
}
