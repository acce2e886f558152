package operations

import (
	"context"

	"go.velora.shop/internal/cart"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// GetCartQuery fetches the cart by id
type GetCartQuery struct {
	CartID string `json:"cartId"`
}

// GetCartUseCase handles loading a cart
type GetCartUseCase struct {
	store cart.Store
}

// NewGetCartUseCase creates a new GetCartUseCase
func NewGetCartUseCase(store cart.Store) *GetCartUseCase {
	return &GetCartUseCase{store: store}
}

// Execute loads the cart. A missing or expired cart yields an empty one
// so the storefront never renders an error for a fresh visitor.
func (uc *GetCartUseCase) Execute(ctx context.Context, q GetCartQuery) result.Result[*cart.Cart] {
	if q.CartID == "" {
		return result.Ok(&cart.Cart{})
	}

	c, err := uc.store.Get(ctx, q.CartID)
	if err != nil {
		if err == cart.ErrNotFound {
			return result.Ok(&cart.Cart{ID: q.CartID})
		}
		return result.Err[*cart.Cart](
			apperr.Internal(apperr.CodeDBError, "Failed to load cart").WithCause(err),
		)
	}

	return result.Ok(c)
}
