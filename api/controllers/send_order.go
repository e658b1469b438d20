package controllers

import (
	"context"
	"net/http"

	"github.com/tgshop/miniapp-backend/api/responses"
	"github.com/tgshop/miniapp-backend/api/validators"
	"github.com/tgshop/miniapp-backend/internal/orders"
	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/logger"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

const (
	maxNameLength  = 128
	maxPhoneLength = 32
)

// OrderRelayer relays validated orders to their recipients.
type OrderRelayer interface {
	Relay(ctx context.Context, req types.OrderRequest) (*orders.Result, error)
}

// SendOrder relays a submitted cart to the shop admin and the customer.
func SendOrder(svc OrderRelayer, logg *logger.Logger, debug bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order relay unavailable"), debug)
			return
		}

		var payload types.OrderRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err, debug)
			return
		}
		payload.Name = validators.SanitizeString(payload.Name, maxNameLength)
		payload.Phone = validators.SanitizeString(payload.Phone, maxPhoneLength)

		result, err := svc.Relay(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err, debug)
			return
		}

		responses.WriteSuccess(w, types.OrderResponse{
			Success: true,
			OrderID: result.OrderID,
			Admin:   result.Admin,
			User:    result.User,
		})
	}
}
