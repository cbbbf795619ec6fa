package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/swipefile/swipe-library/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListCreatives(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Creative), args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	offerID := "6f1e9a1c-6f3c-4e83-9a51-0a8b6f2d4c10"

	tests := []struct {
		name           string
		target         string
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "filters passed through",
			target: "/creatives?nicho=fitness&oferta_id=" + offerID,
			setupMocks: func(s *MockService) {
				s.On("ListCreatives", mock.Anything, models.CreativeFilter{
					Nicho:   "fitness",
					OfferID: offerID,
				}).Return([]*models.Creative{{ID: "c1", Title: "Hook v2"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Hook v2",
		},
		{
			name:           "non-uuid oferta_id is rejected before the query",
			target:         "/creatives?oferta_id=not-a-uuid",
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "oferta_id must be a valid uuid",
		},
		{
			name:   "empty oferta_id means no filter",
			target: "/creatives?oferta_id=",
			setupMocks: func(s *MockService) {
				s.On("ListCreatives", mock.Anything, models.CreativeFilter{}).
					Return([]*models.Creative{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "OK",
		},
		{
			name:   "repository failure",
			target: "/creatives",
			setupMocks: func(s *MockService) {
				s.On("ListCreatives", mock.Anything, models.CreativeFilter{}).
					Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not list creatives",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMocks(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
			if tt.expectedStatus == http.StatusBadRequest {
				service.AssertNotCalled(t, "ListCreatives")
			}
		})
	}
}
