// Package middlewarectx содержит HTTP middleware защищённых маршрутов.
//
// SessionMiddleware извлекает bearer-токен из заголовка Authorization,
// разрешает его в сессию через сервис аутентификации и кладёт UID
// пользователя в контекст запроса. Отсутствующий заголовок и неизвестный
// токен дают HTTP 401; сбой хранилища — HTTP 500.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/response"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/lib/sl"
	authservice "github.com/Ruytter/projeto15-book-shopping-back/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUID — ключ для UID пользователя в контексте.
const UserUID Key = "user_uid"

// SessionResolver описывает интерфейс сервиса для разрешения токена сессии.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// SessionMiddleware возвращает HTTP middleware, проверяющий bearer-токен
// в заголовке Authorization.
func SessionMiddleware(auth SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if !strings.HasPrefix(authHeader, "Bearer ") || token == "" {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			userUID, err := auth.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, authservice.ErrSessionExpired) {
					log.Error("unknown session token")
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("session expired, please sign in again"))
					return
				}
				log.Error("failed to resolve session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, userUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
