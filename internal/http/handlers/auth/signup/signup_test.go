package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/models"
	authservice "github.com/Ruytter/projeto15-book-shopping-back/internal/services/auth"
)

// Мок сервиса регистрации
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, req models.SignUpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// validationErrs прогоняет запрос через настоящий валидатор, чтобы мок
// возвращал реальные validator.ValidationErrors.
func validationErrs(t *testing.T, req models.SignUpRequest) error {
	t.Helper()
	err := validator.New().Struct(req)
	require.Error(t, err)
	return err
}

func TestSignUpHandler_ServeHTTP(t *testing.T) {
	validBody := models.SignUpRequest{
		Name:     "Ana Silva",
		Email:    "ana@x.com",
		Password: "secret1",
	}

	tests := []struct {
		name           string
		requestBody    any
		mockErr        error
		mockNeeded     bool
		wantStatusCode int
		wantEmptyBody  bool
		wantError      string
		wantMessages   int
	}{
		{
			name:           "valid registration",
			requestBody:    validBody,
			mockNeeded:     true,
			wantStatusCode: http.StatusCreated,
			wantEmptyBody:  true,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "duplicate email",
			requestBody:    validBody,
			mockNeeded:     true,
			mockErr:        authservice.ErrEmailTaken,
			wantStatusCode: http.StatusConflict,
			wantError:      "email already registered",
		},
		{
			name:           "storage failure",
			requestBody:    validBody,
			mockNeeded:     true,
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(ServiceMock)
			handler := New(newNoopLogger(), svcMock)

			if tt.mockNeeded {
				svcMock.On("Register", mock.Anything, mock.Anything).
					Return(tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/sign-up", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantEmptyBody {
				assert.Zero(t, rec.Body.Len())
			} else {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantError, got["error"])
			}

			svcMock.AssertExpectations(t)
		})
	}
}

func TestSignUpHandler_ValidationMessages(t *testing.T) {
	// Несколько нарушений сразу: ответ 400 содержит все сообщения,
	// а не только первое.
	invalid := models.SignUpRequest{
		Name:     "ab",
		Email:    "not-an-email",
		Password: "123",
	}

	svcMock := new(ServiceMock)
	svcMock.On("Register", mock.Anything, mock.Anything).
		Return(validationErrs(t, invalid)).Once()
	handler := New(newNoopLogger(), svcMock)

	bodyBytes, err := json.Marshal(invalid)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sign-up", bytes.NewReader(bodyBytes))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var msgs []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	assert.Len(t, msgs, 3)
	assert.Contains(t, msgs, "field Password must contain at least 6 characters")
	assert.Contains(t, msgs, "field Email must be a valid email address")
}
