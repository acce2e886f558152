package operations

import (
	"context"

	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/order"
)

// GetOrderQuery loads a single order. CustomerID scopes the lookup to
// the owner; admin callers leave it empty.
type GetOrderQuery struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
}

// GetOrderUseCase handles loading an order
type GetOrderUseCase struct {
	orders order.Repository
}

// NewGetOrderUseCase creates a new GetOrderUseCase
func NewGetOrderUseCase(orders order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders}
}

// Execute loads the order
func (uc *GetOrderUseCase) Execute(ctx context.Context, query GetOrderQuery) result.Result[*order.Order] {
	o, err := loadOwnedOrder(ctx, uc.orders, query.OrderID, query.CustomerID)
	if err != nil {
		return result.Err[*order.Order](err)
	}
	return result.Ok(o)
}
