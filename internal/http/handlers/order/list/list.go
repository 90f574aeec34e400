// Package list реализует HTTP-обработчик выдачи истории заказов
// аутентифицированного пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/middlewarectx"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/response"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/lib/sl"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/models"
)

// Service описывает интерфейс бизнес-логики выдачи заказов.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Order, error)
}

// Handler обрабатывает HTTP-запросы истории заказов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list orders"))
		return
	}

	log.Info("orders listed", slog.Int("count", len(res)))
	render.JSON(w, r, res)
}
