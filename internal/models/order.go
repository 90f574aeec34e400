package models

import "encoding/json"

// Order представляет оформленный заказ. Содержимое корзины принимается
// как есть и не валидируется: его структура принадлежит клиенту.
type Order struct {
	UserUID string          `json:"userId"` // Идентификатор владельца заказа
	Date    string          `json:"date"`   // Дата заказа в формате 02/01/2006
	Items   json.RawMessage `json:"pedido"` // Непрозрачное содержимое корзины
}

// OrderRequest используется для приёма заказа из JSON-запроса.
type OrderRequest struct {
	Carrinho json.RawMessage `json:"carrinho"`
}
