package toggle

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-platform/internal/models"
)

// MockService реализует интерфейс toggle.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Toggle(ctx context.Context, actorUID string, courseID int) (string, error) {
	args := m.Called(ctx, actorUID, courseID)
	return args.String(0), args.Error(1)
}

func TestToggleHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		actorUID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "подписка на курс",
			requestBody: models.DummySubscribe{CourseID: 7},
			actorUID:    "uid-1",
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, "uid-1", 7).
					Return(models.SubscribeOutcomeSubscribed, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"outcome":"subscribed"`,
		},
		{
			name:        "повторный запрос снимает подписку",
			requestBody: models.DummySubscribe{CourseID: 7},
			actorUID:    "uid-1",
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, "uid-1", 7).
					Return(models.SubscribeOutcomeUnsubscribed, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"outcome":"unsubscribed"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			actorUID:       "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует course_id",
			requestBody:    models.DummySubscribe{},
			actorUID:       "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field CourseID is a required field`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.DummySubscribe{CourseID: 7},
			actorUID:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "курс не найден",
			requestBody: models.DummySubscribe{CourseID: 999},
			actorUID:    "uid-1",
			setupMock: func(m *MockService) {
				m.On("Toggle", mock.Anything, "uid-1", 999).
					Return("", models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/subscriptions/toggle", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.actorUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
