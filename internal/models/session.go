package models

// Session связывает bearer-токен с пользователем. Токен выдается при первом
// успешном входе и переиспользуется при повторных входах, срок жизни
// не ограничен.
type Session struct {
	Token   string // Непрозрачный bearer-токен (uuid v4)
	UserUID string // Идентификатор пользователя, которому принадлежит сессия
}
