package repository

import (
	"context"
	"fmt"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/models"
)

// CreateOrder вставляет новый заказ. Вставка ожидается до подтверждения:
// вызывающая сторона узнаёт о неудаче записи явно.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) error {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (user_uid, order_date, items)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query,
		order.UserUID, order.Date, []byte(order.Items)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListOrdersByUserUID возвращает все заказы пользователя в порядке,
// в котором их отдаёт база.
func (s *Storage) ListOrdersByUserUID(ctx context.Context, userUID string) ([]*models.Order, error) {
	const op = "storage.ListOrdersByUserUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, order_date, items
			  FROM orders
			  WHERE user_uid = $1`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		var item models.Order
		var items []byte
		if err = rows.Scan(&item.UserUID, &item.Date, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Items = items
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
