package health

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ReadinessMock struct {
	mock.Mock
}

func (m *ReadinessMock) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMocks     func(r *ReadinessMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "database ready",
			setupMocks: func(r *ReadinessMock) {
				r.On("Ready", mock.Anything).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name: "database unavailable",
			setupMocks: func(r *ReadinessMock) {
				r.On("Ready", mock.Anything).Return(assert.AnError).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readiness := new(ReadinessMock)
			tt.setupMocks(readiness)
			handler := New(logger, readiness)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			readiness.AssertExpectations(t)
		})
	}
}
