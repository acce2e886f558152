package operations

import (
	"context"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// UpdateProductCommand contains the data for a product update.
// Nil pointer fields are left unchanged.
type UpdateProductCommand struct {
	ID           string                                 `json:"id"`
	SKU          *string                                `json:"sku,omitempty"`
	Translations map[catalog.Locale]catalog.Translation `json:"translations,omitempty"`
	PriceCents   *int64                                 `json:"priceCents,omitempty"`
	Status       *catalog.ProductStatus                 `json:"status,omitempty"`
}

// UpdateProductUseCase handles updating an existing product
type UpdateProductUseCase struct {
	repo catalog.Repository
}

// NewUpdateProductUseCase creates a new UpdateProductUseCase
func NewUpdateProductUseCase(repo catalog.Repository) *UpdateProductUseCase {
	return &UpdateProductUseCase{repo: repo}
}

// Execute updates the product
func (uc *UpdateProductUseCase) Execute(ctx context.Context, cmd UpdateProductCommand) result.Result[*catalog.Product] {
	if cmd.ID == "" {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeRequired, "Product id is required"),
		)
	}

	product, err := uc.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if err == catalog.ErrNotFound {
			return result.Err[*catalog.Product](
				apperr.NotFound(apperr.CodeProductNotFound, "Product not found"),
			)
		}
		return result.Err[*catalog.Product](
			apperr.Internal(apperr.CodeDBError, "Failed to load product").WithCause(err),
		)
	}

	if cmd.SKU != nil {
		product.SKU = *cmd.SKU
	}
	if cmd.Translations != nil {
		if t, ok := cmd.Translations[catalog.DefaultLocale]; !ok || t.Name == "" {
			return result.Err[*catalog.Product](
				apperr.Validation(apperr.CodeRequired, "A named default-locale translation is required"),
			)
		}
		product.Translations = cmd.Translations
	}
	if cmd.PriceCents != nil {
		if *cmd.PriceCents < 0 {
			return result.Err[*catalog.Product](
				apperr.Validation(apperr.CodeInvalidValue, "Price must not be negative"),
			)
		}
		product.PriceCents = *cmd.PriceCents
	}
	if cmd.Status != nil {
		switch *cmd.Status {
		case catalog.ProductStatusDraft, catalog.ProductStatusActive, catalog.ProductStatusArchived:
			product.Status = *cmd.Status
		default:
			return result.Err[*catalog.Product](
				apperr.Validation(apperr.CodeInvalidValue, "Unknown product status").
					WithDetail("status", string(*cmd.Status)),
			)
		}
	}

	if err := uc.repo.Update(ctx, product); err != nil {
		return result.Err[*catalog.Product](
			apperr.Internal(apperr.CodeDBError, "Failed to update product").WithCause(err),
		)
	}

	return result.Ok(product)
}
