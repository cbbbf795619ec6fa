package create

import (
	"bytes"
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

func (m *MockService) CreateLandingPage(ctx context.Context, in models.LandingPageInput) (*models.LandingPage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LandingPage), args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	offerID := "8f14e45f-ceea-4e7c-b506-3d8f1b6a4a10"

	tests := []struct {
		name           string
		body           string
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "landing page tied to an offer",
			body: `{"title":"Quiz page","page_url":"https://pages.example.com/quiz","association_type":"oferta","oferta_id":"` + offerID + `"}`,
			setupMocks: func(s *MockService) {
				s.On("CreateLandingPage", mock.Anything, mock.MatchedBy(func(in models.LandingPageInput) bool {
					return in.AssociationType == "oferta" && in.OfferID == offerID
				})).Return(&models.LandingPage{
					ID:          "lp1",
					Title:       "Quiz page",
					PageURL:     "https://pages.example.com/quiz",
					Association: models.AssociateOffer(offerID),
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "lp1",
		},
		{
			name:           "selected kind without its id",
			body:           `{"title":"Quiz page","page_url":"https://pages.example.com/quiz","association_type":"criativo"}`,
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "requires criativo_id",
		},
		{
			name:           "unknown association type fails validation",
			body:           `{"title":"Quiz page","page_url":"https://pages.example.com/quiz","association_type":"banner"}`,
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "AssociationType",
		},
		{
			name:           "page_url must be a url",
			body:           `{"title":"Quiz page","page_url":"not-a-url"}`,
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMocks(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/landing-pages", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}
