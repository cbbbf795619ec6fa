// Package auth implements sign-in, password setup and password change for
// subscriber accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/swipefile/swipe-library/internal/lib/jwt"
	"github.com/swipefile/swipe-library/internal/lib/password"
	"github.com/swipefile/swipe-library/internal/lib/sl"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

var (
	// ErrInvalidCredentials is returned on any sign-in failure. The caller
	// cannot tell a missing account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidOrExpiredLink is the single error for every setup link
	// failure: unknown token, wrong email, expired token.
	ErrInvalidOrExpiredLink = errors.New("invalid or expired link")

	// ErrPasswordTooShort is returned when a chosen password is below the
	// minimum length.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", password.MinLength)

	// ErrPasswordMismatch is returned when the confirmation does not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrSamePassword is returned by ChangePassword when the new password
	// equals the current one.
	ErrSamePassword = errors.New("new password must differ from the current one")
)

// UserRepository is the account storage surface the auth flows need.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserBySetupToken(ctx context.Context, token, email string) (*models.User, error)
	SetPasswordHash(ctx context.Context, email, hash string) error
	ClearSetupToken(ctx context.Context, token string) (int64, error)
	AddLoginEvent(ctx context.Context, userID string) error
}

// Service implements the credential flows.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New creates an auth Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Login verifies the password for the account with the given email and
// returns a session token. A successful sign-in is recorded as a login event.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	// An account whose setup link was never consumed has no hash yet.
	if user.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.ID)
	if err != nil {
		return "", nil, err
	}
	if err := s.users.AddLoginEvent(ctx, user.ID); err != nil {
		s.log.Warn("failed to record login event", "user_id", user.ID, sl.Err(err))
	}
	return token, user, nil
}

// ValidateSetup checks that a setup link is still usable: the token must
// belong to the account with the given email and must not be expired. The
// token stays valid, so the page can be reloaded before the password is
// chosen.
func (s *Service) ValidateSetup(ctx context.Context, token, email string) (*models.User, error) {
	if token == "" || email == "" {
		return nil, ErrInvalidOrExpiredLink
	}
	user, err := s.users.GetUserBySetupToken(ctx, token, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidOrExpiredLink
		}
		return nil, err
	}
	if !user.HasPendingSetup(time.Now().UTC()) {
		return nil, ErrInvalidOrExpiredLink
	}
	return user, nil
}

// ConsumeSetup sets the account password from a valid setup link, invalidates
// the token and signs the user in. The token survives a failed attempt, so a
// typo in the confirmation does not burn the link.
func (s *Service) ConsumeSetup(ctx context.Context, token, email, rawPassword, confirmation string) (string, *models.User, error) {
	if len(rawPassword) < password.MinLength {
		return "", nil, ErrPasswordTooShort
	}
	if rawPassword != confirmation {
		return "", nil, ErrPasswordMismatch
	}

	user, err := s.ValidateSetup(ctx, token, email)
	if err != nil {
		return "", nil, err
	}

	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	if err := s.users.SetPasswordHash(ctx, user.Email, hash); err != nil {
		return "", nil, err
	}
	if _, err := s.users.ClearSetupToken(ctx, token); err != nil {
		return "", nil, err
	}
	user.PasswordHash = hash
	user.SetupToken = ""
	user.SetupExpires = nil

	s.log.Info("password setup completed", "user_id", user.ID)

	sessionToken, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.ID)
	if err != nil {
		return "", nil, err
	}
	if err := s.users.AddLoginEvent(ctx, user.ID); err != nil {
		s.log.Warn("failed to record login event", "user_id", user.ID, sl.Err(err))
	}
	return sessionToken, user, nil
}

// ChangePassword replaces the password of a signed-in account after checking
// the current one.
func (s *Service) ChangePassword(ctx context.Context, email, current, next, confirmation string) error {
	if len(next) < password.MinLength {
		return ErrPasswordTooShort
	}
	if next != confirmation {
		return ErrPasswordMismatch
	}
	if next == current {
		return ErrSamePassword
	}

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	if user.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := password.GetHash(next)
	if err != nil {
		return err
	}
	if err := s.users.SetPasswordHash(ctx, user.Email, hash); err != nil {
		return err
	}
	s.log.Info("password changed", "user_id", user.ID)
	return nil
}
