// Package operations contains the catalog use cases
package operations

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
)

// Slug format: lowercase alphanumeric with hyphens
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CreateProductCommand contains the data needed to create a product
type CreateProductCommand struct {
	Slug         string                                 `json:"slug"`
	SKU          string                                 `json:"sku"`
	Translations map[catalog.Locale]catalog.Translation `json:"translations"`
	PriceCents   int64                                  `json:"priceCents"`
	Currency     string                                 `json:"currency"`
	Stock        int                                    `json:"stock"`
}

// CreateProductUseCase handles creating a new product
type CreateProductUseCase struct {
	repo catalog.Repository
}

// NewCreateProductUseCase creates a new CreateProductUseCase
func NewCreateProductUseCase(repo catalog.Repository) *CreateProductUseCase {
	return &CreateProductUseCase{repo: repo}
}

// Execute creates a new product in DRAFT status
func (uc *CreateProductUseCase) Execute(ctx context.Context, cmd CreateProductCommand) result.Result[*catalog.Product] {
	if cmd.Slug == "" {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeRequired, "Product slug is required"),
		)
	}
	if !slugPattern.MatchString(cmd.Slug) {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeInvalidFormat, "Product slug must be lowercase alphanumeric with hyphens").
				WithDetail("slug", cmd.Slug),
		)
	}
	if len(cmd.Translations) == 0 {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeRequired, "At least one translation is required"),
		)
	}
	if t, ok := cmd.Translations[catalog.DefaultLocale]; !ok || t.Name == "" {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeRequired, "A named default-locale translation is required"),
		)
	}
	if cmd.PriceCents < 0 {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeInvalidValue, "Price must not be negative"),
		)
	}
	if cmd.Stock < 0 {
		return result.Err[*catalog.Product](
			apperr.Validation(apperr.CodeInvalidValue, "Stock must not be negative"),
		)
	}

	currency := cmd.Currency
	if currency == "" {
		currency = "EUR"
	}

	exists, err := uc.repo.ExistsBySlug(ctx, cmd.Slug)
	if err != nil {
		return result.Err[*catalog.Product](
			apperr.Internal(apperr.CodeDBError, "Failed to check for existing product").WithCause(err),
		)
	}
	if exists {
		return result.Err[*catalog.Product](
			apperr.BusinessRule(apperr.CodeDuplicateSlug, "A product with this slug already exists").
				WithDetail("slug", cmd.Slug),
		)
	}

	now := time.Now().UTC()
	product := &catalog.Product{
		ID:           uuid.NewString(),
		Slug:         cmd.Slug,
		SKU:          cmd.SKU,
		Translations: cmd.Translations,
		PriceCents:   cmd.PriceCents,
		Currency:     currency,
		Stock:        cmd.Stock,
		Status:       catalog.ProductStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Insert(ctx, product); err != nil {
		return result.Err[*catalog.Product](
			apperr.Internal(apperr.CodeDBError, "Failed to create product").WithCause(err),
		)
	}

	return result.Ok(product)
}
