package types

import "encoding/json"

// OrderResponse is the success body of POST /api/send-order. Admin and User
// hold the messaging provider's raw replies.
type OrderResponse struct {
	Success bool            `json:"success"`
	OrderID string          `json:"order_id,omitempty"`
	Admin   json.RawMessage `json:"admin,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
}

// ErrorResponse is the failure body. Details is only filled outside production.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Fields  any    `json:"fields,omitempty"`
	Details string `json:"details,omitempty"`
}

// StatusResponse is the static health payload.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
