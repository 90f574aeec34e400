// Package models содержит доменные структуры магазина: пользователей,
// сессии и заказы, а также вспомогательные типы для приёма данных из
// JSON-запросов.
package models

// User представляет зарегистрированного пользователя магазина.
type User struct {
	UID          string // Уникальный идентификатор, присваивается хранилищем
	Name         string // Имя пользователя
	Email        string // Электронная почта (уникальная)
	PasswordHash string // Хэш пароля, исходный пароль не хранится
}

// SignUpRequest используется для приёма данных регистрации из JSON-запроса.
// Правила повторяют схему исходного сервиса: имя от 3 до 100 символов,
// корректный email, пароль не короче 6 символов.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignInRequest используется для приёма данных входа из JSON-запроса.
// Поля не валидируются схемой: любые некорректные данные приводят
// к отказу аутентификации.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
