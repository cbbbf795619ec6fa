package user_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/swipefile/swipe-library/internal/lib/setuptoken"
	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/user"
	"github.com/swipefile/swipe-library/internal/subscription"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, u models.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateUserProfile(ctx context.Context, id, name, email, phone string) (int64, error) {
	args := m.Called(ctx, id, name, email, phone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) UpdateSubscription(ctx context.Context, id string, expiresAt, previousExpiresAt *time.Time, paused bool) error {
	args := m.Called(ctx, id, expiresAt, previousExpiresAt, paused)
	return args.Error(0)
}

func (m *RepoMock) ReplaceSetupToken(ctx context.Context, id, token string, expires time.Time) (bool, error) {
	args := m.Called(ctx, id, token, expires)
	return args.Bool(0), args.Error(1)
}

func (m *RepoMock) DeleteUser(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) SendSetupEmail(name, email, token string) error {
	args := m.Called(name, email, token)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestService_Create(t *testing.T) {
	t.Run("issues a one month window, a setup token and a mail", func(t *testing.T) {
		repo := new(RepoMock)
		mailer := new(MailerMock)
		before := time.Now().UTC()

		var created models.User
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			created = u
			return u.Email == "new@example.com" && u.Role == models.RoleMember
		})).Return("u1", nil).Once()
		mailer.On("SendSetupEmail", "New Member", "new@example.com", mock.AnythingOfType("string")).
			Return(nil).Once()

		svc := user.New(repo, mailer, testLogger())
		u, err := svc.Create(context.Background(), models.UserInput{
			Name:  "New Member",
			Email: "New@Example.com",
			Phone: "+55 11 99999-0000",
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)

		require.NotNil(t, created.ExpiresAt)
		assert.WithinDuration(t, before.AddDate(0, 1, 0), *created.ExpiresAt, time.Minute)
		assert.NotEmpty(t, created.SetupToken)
		require.NotNil(t, created.SetupExpires)
		assert.WithinDuration(t, before.Add(setuptoken.TTL), *created.SetupExpires, time.Minute)

		repo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("mail failure does not roll the account back", func(t *testing.T) {
		repo := new(RepoMock)
		mailer := new(MailerMock)
		repo.On("CreateUser", mock.Anything, mock.Anything).Return("u1", nil).Once()
		mailer.On("SendSetupEmail", mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError).Once()

		svc := user.New(repo, mailer, testLogger())
		u, err := svc.Create(context.Background(), models.UserInput{
			Name:  "New Member",
			Email: "new@example.com",
			Phone: "+55 11 99999-0000",
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})
}

func TestService_TogglePause(t *testing.T) {
	expires := time.Now().UTC().AddDate(0, 1, 0)

	t.Run("pauses an active subscription", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "u1").
			Return(&models.User{ID: "u1", ExpiresAt: &expires}, nil).Once()
		repo.On("UpdateSubscription", mock.Anything, "u1", (*time.Time)(nil), &expires, true).
			Return(nil).Once()

		svc := user.New(repo, new(MailerMock), testLogger())
		overview, err := svc.TogglePause(context.Background(), "u1")
		require.NoError(t, err)
		assert.True(t, overview.User.Paused)
		assert.Equal(t, subscription.StatusPaused, overview.Evaluation.Status)
		repo.AssertExpectations(t)
	})

	t.Run("resumes a paused subscription with its saved window", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "u1").
			Return(&models.User{ID: "u1", Paused: true, PreviousExpiresAt: &expires}, nil).Once()
		repo.On("UpdateSubscription", mock.Anything, "u1", &expires, (*time.Time)(nil), false).
			Return(nil).Once()

		svc := user.New(repo, new(MailerMock), testLogger())
		overview, err := svc.TogglePause(context.Background(), "u1")
		require.NoError(t, err)
		assert.False(t, overview.User.Paused)
		assert.Equal(t, subscription.StatusActive, overview.Evaluation.Status)
		repo.AssertExpectations(t)
	})
}

func TestService_Extend(t *testing.T) {
	t.Run("rejects a non-positive month count", func(t *testing.T) {
		svc := user.New(new(RepoMock), new(MailerMock), testLogger())
		_, err := svc.Extend(context.Background(), "u1", 0)
		assert.Error(t, err)
	})

	t.Run("pushes the window forward from its current end", func(t *testing.T) {
		expires := time.Now().UTC().AddDate(0, 1, 0)
		want := expires.AddDate(0, 2, 0)

		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, "u1").
			Return(&models.User{ID: "u1", ExpiresAt: &expires}, nil).Once()
		repo.On("UpdateSubscription", mock.Anything, "u1", &want, (*time.Time)(nil), false).
			Return(nil).Once()

		svc := user.New(repo, new(MailerMock), testLogger())
		overview, err := svc.Extend(context.Background(), "u1", 2)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusActive, overview.Evaluation.Status)
		repo.AssertExpectations(t)
	})
}

func TestService_ResendSetup(t *testing.T) {
	repo := new(RepoMock)
	mailer := new(MailerMock)
	repo.On("GetUser", mock.Anything, "u1").
		Return(&models.User{ID: "u1", Name: "Member", Email: "member@example.com"}, nil).Once()

	var issued string
	repo.On("ReplaceSetupToken", mock.Anything, "u1", mock.MatchedBy(func(token string) bool {
		issued = token
		return token != ""
	}), mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	mailer.On("SendSetupEmail", "Member", "member@example.com", mock.MatchedBy(func(token string) bool {
		return token == issued
	})).Return(nil).Once()

	svc := user.New(repo, mailer, testLogger())
	err := svc.ResendSetup(context.Background(), "u1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}
