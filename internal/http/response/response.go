// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов HTTP-обработчиков: конверт ошибки и список сообщений
// валидации для ответа 400.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает структуру JSON-ответа с ошибкой.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// StatusError — значение статуса для ответа с ошибкой.
const StatusError = "Error"

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationMessages формирует список человеко-читаемых сообщений по всем
// нарушениям валидации. Тело ответа 400 — массив этих сообщений целиком,
// а не только первое нарушение.
func ValidationMessages(errs validator.ValidationErrors) []string {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must contain at least %s characters", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must contain at most %s characters", err.Field(), err.Param()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return msgs
}
