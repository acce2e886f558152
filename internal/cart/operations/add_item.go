// Package operations contains the cart use cases
package operations

import (
	"context"

	"github.com/google/uuid"

	"go.velora.shop/internal/cart"
	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// AddItemCommand adds a product to the cart.
// CartID may be empty, in which case a new cart is created.
type AddItemCommand struct {
	CartID    string         `json:"cartId"`
	ProductID string         `json:"productId"`
	Quantity  int            `json:"quantity"`
	Locale    catalog.Locale `json:"locale"`
}

// AddItemUseCase handles adding a product to a cart
type AddItemUseCase struct {
	store    cart.Store
	products catalog.Repository
}

// NewAddItemUseCase creates a new AddItemUseCase
func NewAddItemUseCase(store cart.Store, products catalog.Repository) *AddItemUseCase {
	return &AddItemUseCase{store: store, products: products}
}

// Execute adds the product, checking availability first
func (uc *AddItemUseCase) Execute(ctx context.Context, cmd AddItemCommand) result.Result[*cart.Cart] {
	if cmd.ProductID == "" {
		return result.Err[*cart.Cart](
			apperr.Validation(apperr.CodeRequired, "Product id is required"),
		)
	}
	if cmd.Quantity <= 0 {
		return result.Err[*cart.Cart](
			apperr.Validation(apperr.CodeInvalidValue, "Quantity must be positive"),
		)
	}

	product, err := uc.products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		if err == catalog.ErrNotFound {
			return result.Err[*cart.Cart](
				apperr.NotFound(apperr.CodeProductNotFound, "Product not found"),
			)
		}
		return result.Err[*cart.Cart](
			apperr.Internal(apperr.CodeDBError, "Failed to load product").WithCause(err),
		)
	}
	if !product.IsActive() {
		return result.Err[*cart.Cart](
			apperr.BusinessRule(apperr.CodeInvalidState, "Product is not available"),
		)
	}

	c, err := uc.loadOrCreate(ctx, cmd.CartID)
	if err != nil {
		return result.Err[*cart.Cart](
			apperr.Internal(apperr.CodeDBError, "Failed to load cart").WithCause(err),
		)
	}

	requested := cmd.Quantity
	if i := indexOf(c, cmd.ProductID); i >= 0 {
		requested += c.Items[i].Quantity
	}
	if !product.InStock(requested) {
		return result.Err[*cart.Cart](
			apperr.BusinessRule(apperr.CodeOutOfStock, "Not enough stock available").
				WithDetail("available", product.Stock).
				WithDetail("requested", requested),
		)
	}

	c.Upsert(cart.Item{
		ProductID:  product.ID,
		Slug:       product.Slug,
		Name:       product.Translate(cmd.Locale).Name,
		Quantity:   cmd.Quantity,
		PriceCents: product.PriceCents,
		Currency:   product.Currency,
	})

	if err := uc.store.Save(ctx, c); err != nil {
		return result.Err[*cart.Cart](
			apperr.Internal(apperr.CodeDBError, "Failed to save cart").WithCause(err),
		)
	}

	return result.Ok(c)
}

func (uc *AddItemUseCase) loadOrCreate(ctx context.Context, id string) (*cart.Cart, error) {
	if id == "" {
		return &cart.Cart{ID: uuid.NewString()}, nil
	}
	c, err := uc.store.Get(ctx, id)
	if err == cart.ErrNotFound {
		// Expired cart: start fresh under the same id so the session
		// cookie stays valid
		return &cart.Cart{ID: id}, nil
	}
	return c, err
}

func indexOf(c *cart.Cart, productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
