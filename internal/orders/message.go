package orders

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tgshop/miniapp-backend/pkg/types"
)

const (
	timestampLayout = "1/2/2006, 15:04:05"
	unknownValue    = "Unknown"
)

// Notification is the pair of texts produced for one order.
type Notification struct {
	OrderID      string
	AdminText    string
	CustomerText string
}

// OrderTotal is the sum of price times quantity over the cart.
func OrderTotal(items []types.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(lineTotal(item))
	}
	return total
}

func lineTotal(item types.OrderItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// BuildNotification renders the admin and customer Markdown texts.
func BuildNotification(orderID, timestamp string, req types.OrderRequest) Notification {
	total := money(OrderTotal(req.Cart))

	username := ""
	if req.User != nil {
		username = strings.TrimSpace(req.User.Username)
	}

	displayName := strings.TrimSpace(req.Name)
	nameBlank := displayName == ""
	if nameBlank {
		displayName = unknownValue
		if username != "" {
			displayName = "@" + username
		}
	}
	displayPhone := strings.TrimSpace(req.Phone)
	if displayPhone == "" {
		displayPhone = unknownValue
	}

	var admin strings.Builder
	fmt.Fprintf(&admin, "🛒 *New Order!* %s\n", orderID)
	fmt.Fprintf(&admin, "*Timestamp:* %s\n\n", timestamp)
	fmt.Fprintf(&admin, "*Name:* %s\n", displayName)
	fmt.Fprintf(&admin, "*Phone:* %s\n", displayPhone)
	if nameBlank {
		handle := username
		if handle == "" {
			handle = unknownValue
		}
		fmt.Fprintf(&admin, "*Telegram:* @%s\n", handle)
	}
	admin.WriteString("\n*Order Details:*\n")
	adminLines := make([]string, 0, len(req.Cart))
	customerLines := make([]string, 0, len(req.Cart))
	for _, item := range req.Cart {
		adminLines = append(adminLines, fmt.Sprintf("- %s x %d = %s", item.Name, item.Quantity, money(lineTotal(item))))
		customerLines = append(customerLines, fmt.Sprintf("- %s x %d", item.Name, item.Quantity))
	}
	admin.WriteString(strings.Join(adminLines, "\n"))
	fmt.Fprintf(&admin, "\n\n*Total: %s*", total)

	var customer strings.Builder
	customer.WriteString("✅ *Your order is confirmed!* ✅\n\n")
	fmt.Fprintf(&customer, "Your Order ID is: *%s*\n\n", orderID)
	customer.WriteString("Here's your summary:\n")
	customer.WriteString(strings.Join(customerLines, "\n"))
	fmt.Fprintf(&customer, "\n\n*Total: %s*", total)

	return Notification{
		OrderID:      orderID,
		AdminText:    admin.String(),
		CustomerText: customer.String(),
	}
}
