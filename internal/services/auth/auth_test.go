package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/swipefile/swipe-library/internal/lib/jwt"
	"github.com/swipefile/swipe-library/internal/lib/password"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/auth"
	"github.com/swipefile/swipe-library/internal/storage/repository"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserBySetupToken(ctx context.Context, token, email string) (*models.User, error) {
	args := m.Called(ctx, token, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) SetPasswordHash(ctx context.Context, email, hash string) error {
	args := m.Called(ctx, email, hash)
	return args.Error(0)
}

func (m *UserRepoMock) ClearSetupToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) AddLoginEvent(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(email, role, userID string) (string, error) {
	args := m.Called(email, role, userID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	tests := []struct {
		name       string
		email      string
		pass       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:  "successful sign-in records login event",
			email: "Member@Example.com",
			pass:  rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "member@example.com").
					Return(&models.User{ID: "u1", Email: "member@example.com", Role: models.RoleMember, PasswordHash: hash}, nil).Once()
				j.On("GenerateToken", "member@example.com", models.RoleMember, "u1").
					Return("signed-token", nil).Once()
				r.On("AddLoginEvent", mock.Anything, "u1").Return(nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:  "wrong password",
			email: "member@example.com",
			pass:  "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "member@example.com").
					Return(&models.User{ID: "u1", Email: "member@example.com", PasswordHash: hash}, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:  "unknown email",
			email: "nobody@example.com",
			pass:  rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:  "account without a password yet",
			email: "fresh@example.com",
			pass:  rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "fresh@example.com").
					Return(&models.User{ID: "u2", Email: "fresh@example.com"}, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)
			svc := auth.New(repo, jwtMock, testLogger())

			token, _, err := svc.Login(context.Background(), tt.email, tt.pass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestService_ValidateSetup(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	past := time.Now().UTC().Add(-time.Hour)

	tests := []struct {
		name       string
		token      string
		email      string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:  "valid link",
			token: "tok", email: "member@example.com",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserBySetupToken", mock.Anything, "tok", "member@example.com").
					Return(&models.User{ID: "u1", SetupToken: "tok", SetupExpires: &future}, nil).Once()
			},
		},
		{
			name:  "wrong email for the token",
			token: "tok", email: "other@example.com",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserBySetupToken", mock.Anything, "tok", "other@example.com").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: auth.ErrInvalidOrExpiredLink,
		},
		{
			name:  "expired token",
			token: "tok", email: "member@example.com",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserBySetupToken", mock.Anything, "tok", "member@example.com").
					Return(&models.User{ID: "u1", SetupToken: "tok", SetupExpires: &past}, nil).Once()
			},
			wantErr: auth.ErrInvalidOrExpiredLink,
		},
		{
			name:  "empty token short-circuits",
			token: "", email: "member@example.com",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    auth.ErrInvalidOrExpiredLink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := auth.New(repo, new(JwtMakerMock), testLogger())

			_, err := svc.ValidateSetup(context.Background(), tt.token, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ConsumeSetup(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)

	t.Run("sets the password, clears the token and signs in", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		repo.On("GetUserBySetupToken", mock.Anything, "tok", "member@example.com").
			Return(&models.User{ID: "u1", Email: "member@example.com", Role: models.RoleMember,
				SetupToken: "tok", SetupExpires: &future}, nil).Once()
		repo.On("SetPasswordHash", mock.Anything, "member@example.com", mock.MatchedBy(func(hash string) bool {
			return password.CompareHash(hash, "secret123") == nil
		})).Return(nil).Once()
		repo.On("ClearSetupToken", mock.Anything, "tok").Return(int64(1), nil).Once()
		jwtMock.On("GenerateToken", "member@example.com", models.RoleMember, "u1").
			Return("signed-token", nil).Once()
		repo.On("AddLoginEvent", mock.Anything, "u1").Return(nil).Once()

		svc := auth.New(repo, jwtMock, testLogger())
		token, user, err := svc.ConsumeSetup(context.Background(), "tok", "member@example.com", "secret123", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Empty(t, user.SetupToken)
		repo.AssertExpectations(t)
		jwtMock.AssertExpectations(t)
	})

	t.Run("confirmation mismatch leaves the token untouched", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := auth.New(repo, new(JwtMakerMock), testLogger())

		_, _, err := svc.ConsumeSetup(context.Background(), "tok", "member@example.com", "secret123", "different")
		assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
		repo.AssertNotCalled(t, "ClearSetupToken", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "SetPasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("short password is rejected before any lookup", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := auth.New(repo, new(JwtMakerMock), testLogger())

		_, _, err := svc.ConsumeSetup(context.Background(), "tok", "member@example.com", "abc", "abc")
		assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
		repo.AssertNotCalled(t, "GetUserBySetupToken", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_ChangePassword(t *testing.T) {
	hash, err := password.GetHash("oldsecret")
	require.NoError(t, err)

	t.Run("replaces the password after checking the current one", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "member@example.com").
			Return(&models.User{ID: "u1", Email: "member@example.com", PasswordHash: hash}, nil).Once()
		repo.On("SetPasswordHash", mock.Anything, "member@example.com", mock.Anything).Return(nil).Once()

		svc := auth.New(repo, new(JwtMakerMock), testLogger())
		err := svc.ChangePassword(context.Background(), "member@example.com", "oldsecret", "newsecret", "newsecret")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "member@example.com").
			Return(&models.User{ID: "u1", Email: "member@example.com", PasswordHash: hash}, nil).Once()

		svc := auth.New(repo, new(JwtMakerMock), testLogger())
		err := svc.ChangePassword(context.Background(), "member@example.com", "wrong", "newsecret", "newsecret")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		repo.AssertNotCalled(t, "SetPasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("new password equal to the current one is rejected", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := auth.New(repo, new(JwtMakerMock), testLogger())

		err := svc.ChangePassword(context.Background(), "member@example.com", "oldsecret", "oldsecret", "oldsecret")
		assert.ErrorIs(t, err, auth.ErrSamePassword)
		repo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("repository failure is passed through", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByEmail", mock.Anything, "member@example.com").
			Return(nil, errors.New("db error")).Once()

		svc := auth.New(repo, new(JwtMakerMock), testLogger())
		err := svc.ChangePassword(context.Background(), "member@example.com", "oldsecret", "newsecret", "newsecret")
		assert.ErrorContains(t, err, "db error")
	})
}
