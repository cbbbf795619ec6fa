package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/swipefile/swipe-library/internal/models"
)

type AccountProviderMock struct {
	mock.Mock
}

func (m *AccountProviderMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestSubscriptionGateMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	future := time.Now().UTC().AddDate(0, 1, 0)
	past := time.Now().UTC().AddDate(0, -1, 0)

	tests := []struct {
		name           string
		role           string
		userID         string
		setupMocks     func(a *AccountProviderMock)
		expectedStatus int
	}{
		{
			name:   "active member passes",
			role:   models.RoleMember,
			userID: "u1",
			setupMocks: func(a *AccountProviderMock) {
				a.On("GetUser", mock.Anything, "u1").
					Return(&models.User{ID: "u1", ExpiresAt: &future}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "expired member is denied",
			role:   models.RoleMember,
			userID: "u1",
			setupMocks: func(a *AccountProviderMock) {
				a.On("GetUser", mock.Anything, "u1").
					Return(&models.User{ID: "u1", ExpiresAt: &past}, nil).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "paused member is denied even with a dormant window",
			role:   models.RoleMember,
			userID: "u1",
			setupMocks: func(a *AccountProviderMock) {
				a.On("GetUser", mock.Anything, "u1").
					Return(&models.User{ID: "u1", Paused: true, PreviousExpiresAt: &future}, nil).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin bypasses the gate",
			role:           models.RoleAdmin,
			userID:         "a1",
			setupMocks:     func(_ *AccountProviderMock) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing identity",
			role:           models.RoleMember,
			userID:         "",
			setupMocks:     func(_ *AccountProviderMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := new(AccountProviderMock)
			tt.setupMocks(accounts)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := SubscriptionGateMiddleware(accounts, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/offers", nil)
			ctx := context.WithValue(req.Context(), Role, tt.role)
			if tt.userID != "" {
				ctx = context.WithValue(ctx, UserID, tt.userID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			accounts.AssertExpectations(t)
		})
	}
}
