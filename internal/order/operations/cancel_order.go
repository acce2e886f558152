package operations

import (
	"context"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/events"
	"go.velora.shop/internal/order"
	"go.velora.shop/internal/payment"
)

// CancelOrderCommand cancels a pending or paid order
type CancelOrderCommand struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
}

// CancelOrderUseCase cancels an order, returning its stock and refunding
// the charge when the order was already paid
type CancelOrderUseCase struct {
	orders    order.Repository
	products  catalog.Repository
	provider  payment.Provider
	publisher events.Publisher
}

// NewCancelOrderUseCase creates a new CancelOrderUseCase
func NewCancelOrderUseCase(orders order.Repository, products catalog.Repository, provider payment.Provider, publisher events.Publisher) *CancelOrderUseCase {
	return &CancelOrderUseCase{orders: orders, products: products, provider: provider, publisher: publisher}
}

// Execute cancels the order. A paid order is refunded first; when the
// refund fails the order stays in its current state.
func (uc *CancelOrderUseCase) Execute(ctx context.Context, cmd CancelOrderCommand) result.Result[*order.Order] {
	o, err := loadOwnedOrder(ctx, uc.orders, cmd.OrderID, cmd.CustomerID)
	if err != nil {
		return result.Err[*order.Order](err)
	}
	if !o.CanCancel() {
		return result.Err[*order.Order](
			apperr.BusinessRule(apperr.CodeInvalidState, "Order cannot be cancelled in its current state").
				WithDetail("status", string(o.Status)),
		)
	}

	if o.Status == order.StatusPaid && o.ChargeID != "" {
		_, err := uc.provider.Refund(ctx, payment.RefundRequest{
			ChargeID:    o.ChargeID,
			AmountCents: o.TotalCents,
		})
		if err != nil {
			return result.Err[*order.Order](err)
		}
	}

	o.Status = order.StatusCancelled
	if err := uc.orders.Update(ctx, o); err != nil {
		return result.Err[*order.Order](
			apperr.Internal(apperr.CodeDBError, "Failed to cancel order").WithCause(err),
		)
	}

	// Return the reserved stock; a failed restock is not worth failing
	// the cancellation over
	for _, line := range o.Lines {
		_ = uc.products.AdjustStock(ctx, line.ProductID, line.Quantity)
	}

	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, events.New(events.SubjectOrderCancelled, map[string]any{
			"orderId":    o.ID,
			"customerId": o.CustomerID,
		}))
	}

	return result.Ok(o)
}
