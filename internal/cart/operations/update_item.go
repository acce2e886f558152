package operations

import (
	"context"

	"go.velora.shop/internal/cart"
	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// UpdateItemCommand changes a cart line quantity. Quantity 0 removes the line.
type UpdateItemCommand struct {
	CartID    string `json:"cartId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemUseCase handles cart line quantity changes
type UpdateItemUseCase struct {
	store    cart.Store
	products catalog.Repository
}

// NewUpdateItemUseCase creates a new UpdateItemUseCase
func NewUpdateItemUseCase(store cart.Store, products catalog.Repository) *UpdateItemUseCase {
	return &UpdateItemUseCase{store: store, products: products}
}

// Execute sets the new quantity, checking stock on increases
func (uc *UpdateItemUseCase) Execute(ctx context.Context, cmd UpdateItemCommand) result.Result[*cart.Cart] {
	if cmd.CartID == "" {
		return result.Err[*cart.Cart](
			apperr.Validation(apperr.CodeRequired, "Cart id is required"),
		)
	}
	if cmd.Quantity < 0 {
		return result.Err[*cart.Cart](
			apperr.Validation(apperr.CodeInvalidValue, "Quantity must not be negative"),
		)
	}

	c, err := uc.store.Get(ctx, cmd.CartID)
	if err != nil {
		if err == cart.ErrNotFound {
			return result.Err[*cart.Cart](
				apperr.NotFound(apperr.CodeCartNotFound, "Cart not found"),
			)
		}
		return result.Err[*cart.Cart](
			apperr.Internal(apperr.CodeDBError, "Failed to load cart").WithCause(err),
		)
	}

	if cmd.Quantity > 0 {
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
		if !product.InStock(cmd.Quantity) {
			return result.Err[*cart.Cart](
				apperr.BusinessRule(apperr.CodeOutOfStock, "Not enough stock available").
					WithDetail("available", product.Stock),
			)
		}
	}

	if !c.SetQuantity(cmd.ProductID, cmd.Quantity) {
		return result.Err[*cart.Cart](
			apperr.NotFound(apperr.CodeProductNotFound, "Product is not in the cart"),
		)
	}

	if err := uc.store.Save(ctx, c); err != nil {
		return result.Err[*cart.Cart](
			apperr.Internal(apperr.CodeDBError, "Failed to save cart").WithCause(err),
		)
	}

	return result.Ok(c)
}
