package operations

import (
	"context"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// GetProductQuery fetches a product by slug for the storefront
type GetProductQuery struct {
	Slug string `json:"slug"`

	// IncludeInactive lets admin views see DRAFT and ARCHIVED products
	IncludeInactive bool `json:"-"`
}

// GetProductUseCase handles fetching a single product
type GetProductUseCase struct {
	repo catalog.Repository
}

// NewGetProductUseCase creates a new GetProductUseCase
func NewGetProductUseCase(repo catalog.Repository) *GetProductUseCase {
	return &GetProductUseCase{repo: repo}
}

// Execute fetches the product by slug
func (uc *GetProductUseCase) Execute(ctx context.Context, q GetProductQuery) result.Result[*catalog.Product] {
	if q.Slug == "" {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeRequired, "Product slug is required"),
		)
	}

	product, err := uc.repo.FindBySlug(ctx, q.Slug)
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

	if !product.IsActive() && !q.IncludeInactive {
		// Hide non-active products from the storefront
		return result.Err[*catalog.Product](
			apperr.NotFound(apperr.CodeProductNotFound, "Product not found"),
		)
	}

	return result.Ok(product)
}
