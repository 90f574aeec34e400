// Package create реализует HTTP-обработчик оформления заказа.
//
// Содержимое корзины из поля carrinho не валидируется и передаётся
// сервису как есть. Заказ записывается под UID пользователя, положенным
// в контекст middleware сессий. Успех — 200 без тела.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/middlewarectx"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/http/response"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/lib/sl"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/models"
)

// Service описывает интерфейс бизнес-логики оформления заказа.
type Service interface {
	Create(ctx context.Context, userUID string, cart json.RawMessage) error
}

// Handler обрабатывает HTTP-запросы оформления заказа.
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
	const op = "handlers.order.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Create(r.Context(), userUID, req.Carrinho); err != nil {
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create order"))
		return
	}

	log.Info("order created", slog.String("user_uid", userUID))
	w.WriteHeader(http.StatusOK)
}
