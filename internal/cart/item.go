package cart

import "github.com/shopspring/decimal"

// Item is one cart line. ID is unique within a cart.
type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
}

// LineTotal returns price multiplied by quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
