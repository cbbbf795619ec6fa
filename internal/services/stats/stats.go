// Package stats records usage events and aggregates them for the admin
// dashboard.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/subscription"
)

// Repository is the event storage surface.
type Repository interface {
	AddContentAccess(ctx context.Context, userID, contentID string) error
	ListUserLoginStats(ctx context.Context) ([]*models.UserLoginStat, error)
	ListContentAccessStats(ctx context.Context) ([]*models.ContentAccessStat, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Service implements event recording and the dashboard aggregation.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates a stats Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Totals are the headline subscriber counts for the dashboard.
type Totals struct {
	Users   int `json:"users"`
	Active  int `json:"active"`
	Paused  int `json:"paused"`
	Expired int `json:"expired"`
}

// Dashboard carries all the aggregations the admin overview shows.
type Dashboard struct {
	Totals       Totals                      `json:"totals"`
	RecentLogins []*models.UserLoginStat     `json:"recent_logins"`
	TopContent   []*models.ContentAccessStat `json:"top_content"`
}

// RecordAccess appends a content access event for the member.
func (s *Service) RecordAccess(ctx context.Context, userID, contentID string) error {
	return s.repo.AddContentAccess(ctx, userID, contentID)
}

// BuildDashboard computes subscriber totals and joins in the login recency
// and content frequency aggregations.
func (s *Service) BuildDashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	totals := Totals{Users: len(users)}
	for _, u := range users {
		ev := subscription.Evaluate(u, now)
		switch ev.Status {
		case subscription.StatusActive:
			totals.Active++
		case subscription.StatusPaused:
			totals.Paused++
		case subscription.StatusExpired:
			totals.Expired++
		}
	}

	logins, err := s.repo.ListUserLoginStats(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.repo.ListContentAccessStats(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Totals:       totals,
		RecentLogins: logins,
		TopContent:   content,
	}, nil
}
