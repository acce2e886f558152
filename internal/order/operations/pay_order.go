package operations

import (
	"context"
	"time"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/metrics"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/events"
	"go.velora.shop/internal/order"
	"go.velora.shop/internal/payment"
)

// PayOrderCommand captures payment for a pending order
type PayOrderCommand struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`

	// MethodToken is the tokenized payment method from the storefront
	MethodToken string `json:"methodToken"`
}

// PayOrderUseCase charges the payment provider and marks the order paid
type PayOrderUseCase struct {
	orders    order.Repository
	provider  payment.Provider
	publisher events.Publisher
}

// NewPayOrderUseCase creates a new PayOrderUseCase
func NewPayOrderUseCase(orders order.Repository, provider payment.Provider, publisher events.Publisher) *PayOrderUseCase {
	return &PayOrderUseCase{orders: orders, provider: provider, publisher: publisher}
}

// Execute charges the order total. Declines and provider outages come
// back as payment errors; the order stays pending so the customer can
// retry with another method.
func (uc *PayOrderUseCase) Execute(ctx context.Context, cmd PayOrderCommand) result.Result[*order.Order] {
	if cmd.MethodToken == "" {
		return result.Err[*order.Order](
			apperr.Validation(apperr.CodeRequired, "A payment method is required"),
		)
	}

	o, err := loadOwnedOrder(ctx, uc.orders, cmd.OrderID, cmd.CustomerID)
	if err != nil {
		return result.Err[*order.Order](err)
	}
	if !o.CanPay() {
		return result.Err[*order.Order](
			apperr.BusinessRule(apperr.CodeInvalidState, "Order cannot be paid in its current state").
				WithDetail("status", string(o.Status)),
		)
	}

	charge, err := uc.provider.Charge(ctx, payment.ChargeRequest{
		OrderID:     o.ID,
		AmountCents: o.TotalCents,
		Currency:    o.Currency,
		MethodToken: cmd.MethodToken,
	})
	if err != nil {
		return result.Err[*order.Order](err)
	}

	now := time.Now().UTC()
	o.Status = order.StatusPaid
	o.ChargeID = charge.ID
	o.PaidAt = &now

	if err := uc.orders.Update(ctx, o); err != nil {
		return result.Err[*order.Order](
			apperr.Internal(apperr.CodeDBError, "Failed to record payment").WithCause(err),
		)
	}

	metrics.OrdersPaid.Inc()
	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, events.New(events.SubjectOrderPaid, map[string]any{
			"orderId":    o.ID,
			"customerId": o.CustomerID,
			"chargeId":   o.ChargeID,
			"totalCents": o.TotalCents,
		}))
	}

	return result.Ok(o)
}

// loadOwnedOrder loads an order scoped to its owner. A customerID of ""
// means an admin caller with access to every order. An ownership
// mismatch reports not-found so order ids cannot be probed.
func loadOwnedOrder(ctx context.Context, orders order.Repository, orderID, customerID string) (*order.Order, error) {
	if orderID == "" {
		return nil, apperr.Validation(apperr.CodeRequired, "Order id is required")
	}

	o, err := orders.FindByID(ctx, orderID)
	if err != nil {
		if err == order.ErrNotFound {
			return nil, apperr.NotFound(apperr.CodeOrderNotFound, "Order not found")
		}
		return nil, apperr.Internal(apperr.CodeDBError, "Failed to load order").WithCause(err)
	}
	if customerID != "" && o.CustomerID != customerID {
		return nil, apperr.NotFound(apperr.CodeOrderNotFound, "Order not found")
	}
	return o, nil
}
