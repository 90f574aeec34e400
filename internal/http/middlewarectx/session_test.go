package middlewarectx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authservice "github.com/Ruytter/projeto15-book-shopping-back/internal/services/auth"
)

// Мок сервиса разрешения токена сессии
type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockUID        string
		mockErr        error
		mockNeeded     bool
		wantStatusCode int
		wantError      string
		wantNextCalled bool
	}{
		{
			name:           "valid token passes through",
			authHeader:     "Bearer tok-1",
			mockNeeded:     true,
			mockUID:        "u1",
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "empty bearer token",
			authHeader:     "Bearer ",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "unknown token",
			authHeader:     "Bearer tok-missing",
			mockNeeded:     true,
			mockErr:        authservice.ErrSessionExpired,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "session expired, please sign in again",
		},
		{
			name:           "storage failure",
			authHeader:     "Bearer tok-1",
			mockNeeded:     true,
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal service error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolverMock := new(ResolverMock)
			if tt.mockNeeded {
				resolverMock.On("Resolve", mock.Anything, mock.Anything).
					Return(tt.mockUID, tt.mockErr).Once()
			}

			nextCalled := false
			var gotUID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUID, _ = r.Context().Value(UserUID).(string)
				w.WriteHeader(http.StatusOK)
			})

			handler := SessionMiddleware(resolverMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodPost, "/pedidos", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)

			if tt.wantNextCalled {
				assert.Equal(t, tt.mockUID, gotUID)
			} else {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantError, got["error"])
			}

			resolverMock.AssertExpectations(t)
		})
	}
}
