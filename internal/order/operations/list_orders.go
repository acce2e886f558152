package operations

import (
	"context"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/order"
)

// ListOrdersQuery lists orders. CustomerID scopes the listing to one
// customer's order history; admin callers leave it empty to see all.
type ListOrdersQuery struct {
	CustomerID string `json:"customerId"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

// OrderPage is one page of orders
type OrderPage struct {
	Orders []*order.Order `json:"orders"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
	Total  int64          `json:"total,omitempty"`
}

// ListOrdersUseCase handles listing orders
type ListOrdersUseCase struct {
	orders order.Repository
}

// NewListOrdersUseCase creates a new ListOrdersUseCase
func NewListOrdersUseCase(orders order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orders: orders}
}

// Execute lists orders for the customer, or all orders for admins
func (uc *ListOrdersUseCase) Execute(ctx context.Context, query ListOrdersQuery) result.Result[*OrderPage] {
	page := order.Page{Offset: query.Offset, Limit: query.Limit}

	var (
		orders []*order.Order
		err    error
	)
	if query.CustomerID != "" {
		orders, err = uc.orders.FindByCustomer(ctx, query.CustomerID, page)
	} else {
		orders, err = uc.orders.FindAll(ctx, page)
	}
	if err != nil {
		return result.Err[*OrderPage](
			apperr.Internal(apperr.CodeDBError, "Failed to list orders").WithCause(err),
		)
	}

	out := &OrderPage{Orders: orders, Offset: query.Offset, Limit: query.Limit}
	if query.CustomerID == "" {
		total, err := uc.orders.Count(ctx)
		if err != nil {
			return result.Err[*OrderPage](
				apperr.Internal(apperr.CodeDBError, "Failed to count orders").WithCause(err),
			)
		}
		out.Total = total
	}

	return result.Ok(out)
}
