package operations

import (
	"context"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// ListProductsQuery describes a paged product listing
type ListProductsQuery struct {
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
	All    bool `json:"all"` // include non-active products (admin)
}

// ProductPage is a page of products plus the overall count
type ProductPage struct {
	Products []*catalog.Product `json:"products"`
	Total    int64              `json:"total"`
	Offset   int                `json:"offset"`
	Limit    int                `json:"limit"`
}

// ListProductsUseCase handles paged product listings
type ListProductsUseCase struct {
	repo catalog.Repository
}

// NewListProductsUseCase creates a new ListProductsUseCase
func NewListProductsUseCase(repo catalog.Repository) *ListProductsUseCase {
	return &ListProductsUseCase{repo: repo}
}

// Execute lists products. Storefront listings only see ACTIVE products.
func (uc *ListProductsUseCase) Execute(ctx context.Context, q ListProductsQuery) result.Result[ProductPage] {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	page := catalog.Page{Offset: q.Offset, Limit: q.Limit}

	var (
		products []*catalog.Product
		err      error
	)
	if q.All {
		products, err = uc.repo.FindAll(ctx, page)
	} else {
		products, err = uc.repo.FindActive(ctx, page)
	}
	if err != nil {
		return result.Err[ProductPage](
			apperr.Internal(apperr.CodeDBError, "Failed to list products").WithCause(err),
		)
	}

	total, err := uc.repo.Count(ctx)
	if err != nil {
		return result.Err[ProductPage](
			apperr.Internal(apperr.CodeDBError, "Failed to count products").WithCause(err),
		)
	}

	return result.Ok(ProductPage{
		Products: products,
		Total:    total,
		Offset:   q.Offset,
		Limit:    q.Limit,
	})
}
