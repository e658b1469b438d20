package orders

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

func TestValidateReportsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.OrderRequest)
		field  string
	}{
		{"no cart", func(r *types.OrderRequest) { r.Cart = nil }, "cart"},
		{"empty cart", func(r *types.OrderRequest) { r.Cart = []types.OrderItem{} }, "cart"},
		{"no user", func(r *types.OrderRequest) { r.User = nil }, "user"},
		{"zero user id", func(r *types.OrderRequest) { r.User.ID = 0 }, "user.id"},
		{"no phone", func(r *types.OrderRequest) { r.Phone = "" }, "phone"},
		{"no name", func(r *types.OrderRequest) { r.Name = "" }, "name"},
	}

	for _, tt := range tests {
		req := coffeeRequest()
		tt.mutate(&req)
		err := Validate(req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeMissingField {
			t.Fatalf("%s: expected missing field error, got %v", tt.name, err)
		}
		details, ok := typed.Details().(map[string]string)
		if !ok {
			t.Fatalf("%s: unexpected details %#v", tt.name, typed.Details())
		}
		if _, ok := details[tt.field]; !ok {
			t.Fatalf("%s: expected %q in details, got %v", tt.name, tt.field, details)
		}
	}
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	if err := Validate(coffeeRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.OrderRequest)
		field  string
	}{
		{"negative quantity", func(r *types.OrderRequest) { r.Cart[0].Quantity = -3 }, "cart[0].quantity"},
		{"zero quantity", func(r *types.OrderRequest) { r.Cart[0].Quantity = 0 }, "cart[0].quantity"},
		{"blank item name", func(r *types.OrderRequest) { r.Cart[0].Name = "" }, "cart[0].name"},
		{"negative price", func(r *types.OrderRequest) { r.Cart[0].Price = decimal.RequireFromString("-0.01") }, "cart[0].price"},
	}

	for _, tt := range tests {
		req := coffeeRequest()
		tt.mutate(&req)
		err := Validate(req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", tt.name, err)
		}
		details, ok := typed.Details().(map[string]string)
		if !ok {
			t.Fatalf("%s: unexpected details %#v", tt.name, typed.Details())
		}
		if _, ok := details[tt.field]; !ok {
			t.Fatalf("%s: expected %q in details, got %v", tt.name, tt.field, details)
		}
	}
}

func TestValidateAcceptsFreeItemAndBlankName(t *testing.T) {
	req := coffeeRequest()
	req.Cart[0].Price = decimal.Zero
	req.Name = "   "
	if err := Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
