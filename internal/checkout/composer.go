package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/tgshop/miniapp-backend/internal/cart"
	pkgcheckout "github.com/tgshop/miniapp-backend/pkg/checkout"
)

// LineItem is the reduced snapshot of a cart line sent with an order.
type LineItem struct {
	ID       int64
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Payload is a validated order ready for submission.
type Payload struct {
	Name  string
	Phone string
	Items []LineItem
}

// Compose validates the contact fields and snapshots items. It has no side
// effects; submitting and clearing the cart are left to the caller.
func Compose(items []cart.Item, name, phone string) (*Payload, error) {
	contact, err := pkgcheckout.ValidateContact(name, phone)
	if err != nil {
		return nil, err
	}

	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return &Payload{
		Name:  contact.Name,
		Phone: contact.Phone,
		Items: lines,
	}, nil
}

// Total is the sum of price times quantity over the snapshot.
func (p *Payload) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range p.Items {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
