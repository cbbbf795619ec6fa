package list

import (
	"context"
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

func (m *MockService) ListOffers(ctx context.Context, filter models.OfferFilter) ([]*models.Offer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Offer), args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		target         string
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "query parameters land in the filter",
			target: "/api/v1/offers?tipo=vsl&nicho=fitness&search=funnel",
			setupMocks: func(s *MockService) {
				s.On("ListOffers", mock.Anything, models.OfferFilter{Tipo: "vsl", Nicho: "fitness", Search: "funnel"}).
					Return([]*models.Offer{{ID: "o1", Title: "Fitness Funnel"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Fitness Funnel",
		},
		{
			name:   "no parameters means the zero filter",
			target: "/api/v1/offers",
			setupMocks: func(s *MockService) {
				s.On("ListOffers", mock.Anything, models.OfferFilter{}).
					Return([]*models.Offer{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "OK",
		},
		{
			name:   "repository failure",
			target: "/api/v1/offers",
			setupMocks: func(s *MockService) {
				s.On("ListOffers", mock.Anything, models.OfferFilter{}).
					Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not list offers",
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
		})
	}
}
