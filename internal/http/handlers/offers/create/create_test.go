package create

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/swipefile/swipe-library/internal/models"
	"github.com/swipefile/swipe-library/internal/services/catalog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateOffer(ctx context.Context, in models.OfferInput, thumb *catalog.Thumbnail) (*models.Offer, error) {
	args := m.Called(ctx, in, thumb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Offer), args.Error(1)
}

func offerForm(t *testing.T, fields map[string]string, thumbType string, thumb []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if thumb != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="thumbnail"; filename="thumb.png"`)
		header.Set("Content-Type", thumbType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(thumb)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fields := map[string]string{
		"title":      "VSL Funnel",
		"drive_link": "https://drive.example.com/x",
	}

	tests := []struct {
		name           string
		request        func(t *testing.T) *http.Request
		setupMocks     func(s *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "offer created with its thumbnail",
			request: func(t *testing.T) *http.Request {
				return offerForm(t, fields, "image/png", []byte("image-bytes"))
			},
			setupMocks: func(s *MockService) {
				s.On("CreateOffer", mock.Anything, mock.MatchedBy(func(in models.OfferInput) bool {
					return in.Title == "VSL Funnel"
				}), mock.MatchedBy(func(thumb *catalog.Thumbnail) bool {
					return thumb != nil && thumb.ContentType == "image/png"
				})).Return(&models.Offer{ID: "o1", Title: "VSL Funnel"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "o1",
		},
		{
			name: "missing thumbnail part",
			request: func(t *testing.T) *http.Request {
				return offerForm(t, fields, "", nil)
			},
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "thumbnail is required",
		},
		{
			name: "non-image thumbnail part",
			request: func(t *testing.T) *http.Request {
				return offerForm(t, fields, "text/plain", []byte("not an image"))
			},
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "thumbnail must be an image",
		},
		{
			name: "missing drive link fails validation",
			request: func(t *testing.T) *http.Request {
				return offerForm(t, map[string]string{"title": "VSL Funnel"}, "image/png", []byte("image-bytes"))
			},
			setupMocks:     func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field DriveLink is a required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMocks(service)
			handler := New(logger, service)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, tt.request(t))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}
