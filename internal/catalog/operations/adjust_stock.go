package operations

import (
	"context"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// AdjustStockCommand changes a product's stock by a delta
type AdjustStockCommand struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
}

// AdjustStockUseCase handles stock adjustments (restock, correction, reservation)
type AdjustStockUseCase struct {
	repo catalog.Repository
}

// NewAdjustStockUseCase creates a new AdjustStockUseCase
func NewAdjustStockUseCase(repo catalog.Repository) *AdjustStockUseCase {
	return &AdjustStockUseCase{repo: repo}
}

// Execute applies the stock delta atomically
func (uc *AdjustStockUseCase) Execute(ctx context.Context, cmd AdjustStockCommand) result.Result[*catalog.Product] {
	if cmd.ProductID == "" {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeRequired, "Product id is required"),
		)
	}
	if cmd.Delta == 0 {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeInvalidValue, "Stock delta must not be zero"),
		)
	}

	if err := uc.repo.AdjustStock(ctx, cmd.ProductID, cmd.Delta); err != nil {
		switch err {
		case catalog.ErrNotFound:
			return result.Err[*catalog.Product](
				apperr.NotFound(apperr.CodeProductNotFound, "Product not found"),
			)
		case catalog.ErrInsufficientStock:
			return result.Err[*catalog.Product](
				apperr.BusinessRule(apperr.CodeOutOfStock, "Not enough stock for this adjustment").
					WithDetail("delta", cmd.Delta),
			)
		default:
			return result.Err[*catalog.Product](
				apperr.Internal(apperr.CodeDBError, "Failed to adjust stock").WithCause(err),
			)
		}
	}

	product, err := uc.repo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return result.Err[*catalog.Product](
			apperr.Internal(apperr.CodeDBError, "Failed to reload product").WithCause(err),
		)
	}

	return result.Ok(product)
}
