package types

import "github.com/shopspring/decimal"

// OrderItem is one cart line as submitted to the relay. Price accepts either a
// JSON number or a numeric string.
type OrderItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity int             `json:"quantity" validate:"min=1"`
}

// OrderUser identifies the chat-platform user placing the order. ID doubles
// as the chat id for the customer confirmation.
type OrderUser struct {
	ID       int64  `json:"id" validate:"required"`
	Username string `json:"username,omitempty"`
}

// OrderRequest is the body of POST /api/send-order.
type OrderRequest struct {
	Cart  []OrderItem `json:"cart" validate:"required,min=1,dive"`
	User  *OrderUser  `json:"user" validate:"required"`
	Phone string      `json:"phone" validate:"required"`
	Name  string      `json:"name" validate:"required"`
}
