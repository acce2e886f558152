// Package operations contains the order use cases
package operations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go.velora.shop/internal/cart"
	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/metrics"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/events"
	"go.velora.shop/internal/order"
)

// PlaceOrderCommand turns a cart into a pending order
type PlaceOrderCommand struct {
	CartID     string `json:"cartId"`
	CustomerID string `json:"customerId"`
}

// PlaceOrderUseCase handles checkout: it snapshots the cart into an
// order, reserving stock line by line.
type PlaceOrderUseCase struct {
	orders    order.Repository
	carts     cart.Store
	products  catalog.Repository
	publisher events.Publisher
}

// NewPlaceOrderUseCase creates a new PlaceOrderUseCase
func NewPlaceOrderUseCase(orders order.Repository, carts cart.Store, products catalog.Repository, publisher events.Publisher) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{orders: orders, carts: carts, products: products, publisher: publisher}
}

// Execute places an order from the cart. Stock is decremented per line;
// when any line cannot be reserved, already reserved lines are restocked
// and the cart is left untouched.
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, cmd PlaceOrderCommand) result.Result[*order.Order] {
	if cmd.CustomerID == "" {
		return result.Err[*order.Order](
			apperr.Unauthorized(apperr.CodeAccessDenied, "Checkout requires a signed-in customer"),
		)
	}
	if cmd.CartID == "" {
		return result.Err[*order.Order](
			apperr.Validation(apperr.CodeRequired, "Cart id is required"),
		)
	}

	c, err := uc.carts.Get(ctx, cmd.CartID)
	if err != nil {
		if err == cart.ErrNotFound {
			return result.Err[*order.Order](
				apperr.NotFound(apperr.CodeCartNotFound, "Cart is empty or has expired"),
			)
		}
		return result.Err[*order.Order](
			apperr.Internal(apperr.CodeDBError, "Failed to load cart").WithCause(err),
		)
	}
	if c.IsEmpty() {
		return result.Err[*order.Order](
			apperr.BusinessRule(apperr.CodeInvalidState, "Cannot place an order from an empty cart"),
		)
	}

	lines, currency, reserveErr := uc.reserveLines(ctx, c)
	if reserveErr != nil {
		return result.Err[*order.Order](reserveErr)
	}

	now := time.Now().UTC()
	o := &order.Order{
		ID:         uuid.NewString(),
		CustomerID: cmd.CustomerID,
		Lines:      lines,
		Currency:   currency,
		Status:     order.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, line := range lines {
		o.TotalCents += line.PriceCents * int64(line.Quantity)
	}

	if err := uc.orders.Insert(ctx, o); err != nil {
		uc.restock(ctx, lines)
		return result.Err[*order.Order](
			apperr.Internal(apperr.CodeDBError, "Failed to create order").WithCause(err),
		)
	}

	// The cart served its purpose; a failed delete only leaves a stale
	// cart behind, never a broken order
	_ = uc.carts.Delete(ctx, cmd.CartID)

	metrics.OrdersPlaced.Inc()
	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, events.New(events.SubjectOrderPlaced, map[string]any{
			"orderId":    o.ID,
			"customerId": o.CustomerID,
			"totalCents": o.TotalCents,
			"currency":   o.Currency,
		}))
	}

	return result.Ok(o)
}

// reserveLines decrements stock for every cart line, refreshing the
// snapshot price from the catalog. On failure all prior reservations
// are rolled back.
func (uc *PlaceOrderUseCase) reserveLines(ctx context.Context, c *cart.Cart) ([]order.Line, string, error) {
	lines := make([]order.Line, 0, len(c.Items))
	currency := ""

	for _, item := range c.Items {
		product, err := uc.products.FindByID(ctx, item.ProductID)
		if err != nil {
			uc.restock(ctx, lines)
			if err == catalog.ErrNotFound {
				return nil, "", apperr.NotFound(apperr.CodeProductNotFound, "A product in the cart no longer exists").
					WithDetail("productId", item.ProductID)
			}
			return nil, "", apperr.Internal(apperr.CodeDBError, "Failed to load product").WithCause(err)
		}
		if !product.IsActive() {
			uc.restock(ctx, lines)
			return nil, "", apperr.BusinessRule(apperr.CodeInvalidState, "A product in the cart is no longer available").
				WithDetail("productId", item.ProductID)
		}

		if err := uc.products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			uc.restock(ctx, lines)
			if err == catalog.ErrInsufficientStock {
				return nil, "", apperr.BusinessRule(apperr.CodeOutOfStock, "Not enough stock for a product in the cart").
					WithDetail("productId", item.ProductID)
			}
			return nil, "", apperr.Internal(apperr.CodeDBError, "Failed to reserve stock").WithCause(err)
		}

		if currency == "" {
			currency = product.Currency
		}
		lines = append(lines, order.Line{
			ProductID:  product.ID,
			Slug:       product.Slug,
			Name:       item.Name,
			Quantity:   item.Quantity,
			PriceCents: product.PriceCents,
		})
	}

	return lines, currency, nil
}

// restock returns reserved stock after a failed placement
func (uc *PlaceOrderUseCase) restock(ctx context.Context, lines []order.Line) {
	for _, line := range lines {
		_ = uc.products.AdjustStock(ctx, line.ProductID, line.Quantity)
	}
}
