package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/models"
)

// GetSessionByToken возвращает сессию по её токену или ErrSessionNotFound.
func (s *Storage) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	const op = "storage.GetSessionByToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT token, user_uid FROM sessions WHERE token = $1`
	sess := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, token)
	if err := row.Scan(&sess.Token, &sess.UserUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// GetSessionByUserUID возвращает сессию пользователя или ErrSessionNotFound.
func (s *Storage) GetSessionByUserUID(ctx context.Context, userUID string) (*models.Session, error) {
	const op = "storage.GetSessionByUserUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT token, user_uid FROM sessions WHERE user_uid = $1`
	sess := &models.Session{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&sess.Token, &sess.UserUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// CreateSession сохраняет сессию и возвращает действующий токен.
// На user_uid стоит уникальный индекс: при конкурентных первых входах
// выживает ровно одна строка, и все участники получают её токен.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) (string, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (token, user_uid)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid) DO UPDATE SET token = sessions.token
			  RETURNING token`
	var token string
	if err := s.DB.QueryRowContext(ctx, query,
		session.Token, session.UserUID).Scan(&token); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
