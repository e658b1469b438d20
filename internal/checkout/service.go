package checkout

import (
	"context"
	"encoding/json"

	"github.com/tgshop/miniapp-backend/internal/cart"
	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/logger"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

type orderSender interface {
	SendOrder(ctx context.Context, req types.OrderRequest) (*types.OrderResponse, error)
}

// CartStore is the part of the cart the checkout flow reads and clears.
type CartStore interface {
	Items() []cart.Item
	Clear(ctx context.Context) error
}

// Identity is the chat-platform user placing the order.
type Identity struct {
	UserID   int64
	Username string
}

// Receipt reports a relayed order.
type Receipt struct {
	OrderID string
	Admin   json.RawMessage
	User    json.RawMessage
}

// Service runs the checkout flow: compose, submit, clear on success.
type Service struct {
	sender orderSender
	logg   *logger.Logger
}

// NewService wires checkout dependencies.
func NewService(sender orderSender, logg *logger.Logger) (*Service, error) {
	if sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order sender required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{sender: sender, logg: logg}, nil
}

// Checkout validates the contact fields, submits the cart and clears it once
// the relay confirms. On any failure the cart is left as it was.
func (s *Service) Checkout(ctx context.Context, store CartStore, who Identity, name, phone string) (*Receipt, error) {
	payload, err := Compose(store.Items(), name, phone)
	if err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	resp, err := s.sender.SendOrder(ctx, buildRequest(payload, who))
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithOrderID(ctx, resp.OrderID)
	if err := store.Clear(ctx); err != nil {
		// the order went out; a stale local cart is the lesser problem
		s.logg.Error(ctx, "checkout.clear_cart.failed", err)
	}
	s.logg.Info(ctx, "checkout.completed")

	return &Receipt{
		OrderID: resp.OrderID,
		Admin:   resp.Admin,
		User:    resp.User,
	}, nil
}

func buildRequest(payload *Payload, who Identity) types.OrderRequest {
	items := make([]types.OrderItem, 0, len(payload.Items))
	for _, line := range payload.Items {
		items = append(items, types.OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	return types.OrderRequest{
		Cart:  items,
		User:  &types.OrderUser{ID: who.UserID, Username: who.Username},
		Phone: payload.Phone,
		Name:  payload.Name,
	}
}
