// Package services содержит бизнес-логику регистрации, входа и
// разрешения сессий.
//
// Порядок проверок при регистрации повторяет исходный сервис: сначала
// проверка занятости email (409), затем валидация всех полей сразу (400),
// затем хэширование пароля и запись. Уникальный индекс на users.email
// остаётся окончательным арбитром при конкурентных регистрациях.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/Ruytter/projeto15-book-shopping-back/internal/lib/password"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/models"
	"github.com/Ruytter/projeto15-book-shopping-back/internal/storage/repository"
)

// Ошибки домена аутентификации.
var (
	// ErrEmailTaken — на этот email уже зарегистрирован пользователь.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	// Ответ одинаков в обоих случаях, чтобы не раскрывать существование
	// учётной записи.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired — токен не соответствует ни одной сессии.
	ErrSessionExpired = errors.New("session expired")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	// При нарушении уникальности email возвращает repository.ErrEmailTaken.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email
	// или repository.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionRepository описывает контракт для работы с сессиями в базе данных.
type SessionRepository interface {
	// GetSessionByToken возвращает сессию по токену
	// или repository.ErrSessionNotFound.
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)

	// GetSessionByUserUID возвращает сессию пользователя
	// или repository.ErrSessionNotFound.
	GetSessionByUserUID(ctx context.Context, userUID string) (*models.Session, error)

	// CreateSession сохраняет сессию и возвращает действующий токен:
	// при конкурентной вставке выживает токен первой записи.
	CreateSession(ctx context.Context, session models.Session) (string, error)
}

// LoginResult — результат успешного входа: отображаемое имя и bearer-токен.
type LoginResult struct {
	Name  string
	Token string
}

// AuthService отвечает за регистрацию, вход и разрешение сессий.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	validate *validator.Validate
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Register создает нового пользователя. Возвращает ErrEmailTaken при
// занятом email, validator.ValidationErrors при некорректных полях
// (все нарушения сразу, не только первое).
func (s *AuthService) Register(ctx context.Context, req models.SignUpRequest) error {
	const op = "services.auth.Register"

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.validate.Struct(req); err != nil {
		return err
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if _, err = s.users.CreateUser(ctx, user); err != nil {
		// Конкурентная регистрация могла проскочить проверку выше,
		// за индексом в базе остаётся последнее слово.
		if errors.Is(err, repository.ErrEmailTaken) {
			return ErrEmailTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Login проверяет пароль пользователя и возвращает его имя и токен сессии.
// Если сессия уже существует, её токен переиспользуется; иначе создается
// новая с токеном uuid v4.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.GetSessionByUserUID(ctx, user.UID)
	if err == nil {
		return &LoginResult{Name: user.Name, Token: sess.Token}, nil
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.sessions.CreateSession(ctx, models.Session{
		Token:   uuid.NewString(),
		UserUID: user.UID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LoginResult{Name: user.Name, Token: token}, nil
}

// Resolve возвращает UID пользователя по токену сессии. Срок жизни
// сессии не проверяется: сессии в этом сервисе не истекают.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	const op = "services.auth.Resolve"

	sess, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", ErrSessionExpired
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sess.UserUID, nil
}
