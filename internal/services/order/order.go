// Package services содержит бизнес-логику оформления и выдачи заказов.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/lib/sl"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/models"
)

// Формат даты заказа: день/месяц/год, как в исходном сервисе.
const dateLayout = "02/01/2006"

// OrderRepository определяет методы для работы с заказами в хранилище.
type OrderRepository interface {
	// CreateOrder вставляет новый заказ и дожидается подтверждения записи.
	CreateOrder(ctx context.Context, order models.Order) error
	// ListOrdersByUserUID возвращает все заказы пользователя.
	ListOrdersByUserUID(ctx context.Context, userUID string) ([]*models.Order, error)
}

// EventPublisher публикует события о созданных заказах.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// OrderService реализует оформление заказа под разрешённой личностью
// пользователя и выдачу истории его заказов.
type OrderService struct {
	repo   OrderRepository
	events EventPublisher // nil, если брокер не настроен
	log    *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(repo OrderRepository, events EventPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// Create сохраняет заказ пользователя с текущей календарной датой.
// Содержимое корзины не валидируется и сохраняется как есть. Событие
// order.created публикуется после записи; сбой публикации заказ не отменяет.
func (s *OrderService) Create(ctx context.Context, userUID string, cart json.RawMessage) error {
	const op = "services.order.Create"

	if len(cart) == 0 {
		cart = json.RawMessage("null")
	}
	order := models.Order{
		UserUID: userUID,
		Date:    time.Now().Format(dateLayout),
		Items:   cart,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.events != nil {
		if err := s.events.Publish("order.created", order); err != nil {
			s.log.Error("failed to publish order event", sl.Err(err))
		}
	}
	return nil
}

// List возвращает все заказы пользователя. Результат никогда не nil,
// чтобы пустая история сериализовалась в пустой массив.
func (s *OrderService) List(ctx context.Context, userUID string) ([]*models.Order, error) {
	const op = "services.order.List"

	result, err := s.repo.ListOrdersByUserUID(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if result == nil {
		result = []*models.Order{}
	}
	return result, nil
}
