// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, сессий и заказов. Пользователи и сессии защищены
// уникальными индексами: конфликт на уровне базы считается окончательным
// сигналом нарушения уникальности, а не проверка чтением перед записью.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// Ошибки уровня хранилища. Сервисы сопоставляют их с ошибками домена
// через errors.Is.
var (
	// ErrUserNotFound — пользователь с таким email не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound — сессия с таким токеном или пользователем не найдена.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmailTaken — нарушен уникальный индекс users.email.
	ErrEmailTaken = errors.New("email already taken")
)

// Код ошибки PostgreSQL unique_violation.
const uniqueViolationCode = "23505"

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
