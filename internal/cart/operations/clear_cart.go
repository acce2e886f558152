package operations

import (
	"context"

	"go.velora.shop/internal/cart"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// ClearCartCommand empties the cart
type ClearCartCommand struct {
	CartID string `json:"cartId"`
}

// ClearCartUseCase handles emptying a cart
type ClearCartUseCase struct {
	store cart.Store
}

// NewClearCartUseCase creates a new ClearCartUseCase
func NewClearCartUseCase(store cart.Store) *ClearCartUseCase {
	return &ClearCartUseCase{store: store}
}

// Execute removes the cart from the store. Clearing an absent cart is a no-op.
func (uc *ClearCartUseCase) Execute(ctx context.Context, cmd ClearCartCommand) result.Result[*cart.Cart] {
	if cmd.CartID == "" {
		return result.Err[*cart.Cart](
			apperr.Validation(apperr.CodeRequired, "Cart id is required"),
		)
	}

	if err := uc.store.Delete(ctx, cmd.CartID); err != nil {
		return result.Err[*cart.Cart](
			apperr.Internal(apperr.CodeDBError, "Failed to clear cart").WithCause(err),
		)
	}

	return result.Ok(&cart.Cart{ID: cmd.CartID})
}
