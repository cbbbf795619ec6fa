// Package user implements the administrative account management flows:
// creating subscribers, pausing and extending their access windows, and
// reissuing password setup links.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/swipefile/swipe-library/internal/lib/setuptoken"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/subscription"
)

// ErrEmailTaken is returned when a new account reuses an existing email.
var ErrEmailTaken = errors.New("email is already registered")

// Repository is the account storage surface the management flows need.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id, name, email, phone string) (int64, error)
	UpdateSubscription(ctx context.Context, id string, expiresAt, previousExpiresAt *time.Time, paused bool) error
	ReplaceSetupToken(ctx context.Context, id, token string, expires time.Time) (bool, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
}

// Mailer delivers setup links to freshly created or reset accounts.
type Mailer interface {
	SendSetupEmail(name, email, token string) error
}

// Service implements account administration.
type Service struct {
	repo   Repository
	mailer Mailer
	log    *slog.Logger
}

// New creates a user management Service.
func New(repo Repository, mailer Mailer, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		log:    log,
	}
}

// Overview is a listed account together with its evaluated subscription
// state.
type Overview struct {
	User       *models.User
	Evaluation subscription.Evaluation
}

// Create registers a new subscriber with a one month access window, issues a
// setup token and mails the link. A failed email send does not roll the
// account back; the link can be resent later.
func (s *Service) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	now := time.Now().UTC()
	expires := now.AddDate(0, 1, 0)
	token, err := setuptoken.New()
	if err != nil {
		return nil, err
	}
	tokenExpires := now.Add(setuptoken.TTL)

	u := models.User{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		Role:         models.RoleMember,
		ExpiresAt:    &expires,
		SetupToken:   token,
		SetupExpires: &tokenExpires,
	}
	id, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	u.ID = id
	u.CreatedAt = now

	s.log.Info("user created", "user_id", id)

	if err := s.mailer.SendSetupEmail(u.Name, u.Email, token); err != nil {
		s.log.Error("failed to send setup email", "user_id", id, sl.Err(err))
	}
	return &u, nil
}

// List returns all accounts newest first, each with its evaluated
// subscription state.
func (s *Service) List(ctx context.Context) ([]Overview, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	result := make([]Overview, 0, len(users))
	for _, u := range users {
		result = append(result, Overview{
			User:       u,
			Evaluation: subscription.Evaluate(u, now),
		})
	}
	return result, nil
}

// Get returns one account with its evaluated subscription state.
func (s *Service) Get(ctx context.Context, id string) (*Overview, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Overview{User: u, Evaluation: subscription.Evaluate(u, time.Now().UTC())}, nil
}

// Update edits the profile fields of an account and returns the number of
// affected rows.
func (s *Service) Update(ctx context.Context, id string, in models.UserInput) (int64, error) {
	count, err := s.repo.UpdateUserProfile(ctx, id, in.Name, strings.ToLower(in.Email), in.Phone)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return count, nil
}

// Delete removes an account and returns the number of deleted rows. Login and
// access history goes with it.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteUser(ctx, id)
}

// TogglePause pauses an active subscription or resumes a paused one,
// whichever applies to the account's current state.
func (s *Service) TogglePause(ctx context.Context, id string) (*Overview, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Paused {
		err = subscription.Resume(u)
	} else {
		err = subscription.Pause(u)
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSubscription(ctx, id, u.ExpiresAt, u.PreviousExpiresAt, u.Paused); err != nil {
		return nil, err
	}
	s.log.Info("subscription pause toggled", "user_id", id, "paused", u.Paused)
	return &Overview{User: u, Evaluation: subscription.Evaluate(u, time.Now().UTC())}, nil
}

// Extend pushes the subscription window forward by the given number of
// months, unpausing the account if needed.
func (s *Service) Extend(ctx context.Context, id string, months int) (*Overview, error) {
	if months < 1 {
		return nil, errors.New("months must be positive")
	}
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	subscription.Extend(u, months, now)
	if err := s.repo.UpdateSubscription(ctx, id, u.ExpiresAt, u.PreviousExpiresAt, u.Paused); err != nil {
		return nil, err
	}
	s.log.Info("subscription extended", "user_id", id, "months", months)
	return &Overview{User: u, Evaluation: subscription.Evaluate(u, now)}, nil
}

// ResendSetup issues a fresh setup token for the account and mails the new
// link. Any previously issued token stops working the moment the row is
// updated.
func (s *Service) ResendSetup(ctx context.Context, id string) error {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	token, err := setuptoken.New()
	if err != nil {
		return err
	}
	replaced, err := s.repo.ReplaceSetupToken(ctx, id, token, time.Now().UTC().Add(setuptoken.TTL))
	if err != nil {
		return err
	}
	if replaced {
		s.log.Info("previous setup token invalidated", "user_id", id)
	}
	return s.mailer.SendSetupEmail(u.Name, u.Email, token)
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// error (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
