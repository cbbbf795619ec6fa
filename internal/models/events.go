package models

import "time"

// LoginEvent is an append-only record of a successful sign-in. There is no
// update or delete path; unbounded growth is accepted.
type LoginEvent struct {
	ID         int64
	UserID     string
	LoggedInAt time.Time
}

// ContentAccessEvent is an append-only record of a member opening an offer.
type ContentAccessEvent struct {
	ID         int64
	UserID     string
	ContentID  string
	AccessedAt time.Time
}

// UserLoginStat is the per-user recency row for the dashboard: the most recent
// login joined with the account's subscription fields.
type UserLoginStat struct {
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	LastLogin time.Time  `json:"last_login"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Paused    bool       `json:"paused"`
}

// ContentAccessStat is the per-offer frequency row for the dashboard.
type ContentAccessStat struct {
	ContentID    string    `json:"content_id"`
	Title        string    `json:"title"`
	Thumbnail    string    `json:"thumbnail"`
	AccessCount  int       `json:"access_count"`
	LastAccessed time.Time `json:"last_accessed"`
}
