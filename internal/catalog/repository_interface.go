package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a product does not exist
var ErrNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a stock adjustment would go negative
var ErrInsufficientStock = errors.New("insufficient stock")

// Page describes pagination input
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the interface for product data access
type Repository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindActive(ctx context.Context, page Page) ([]*Product, error)
	FindAll(ctx context.Context, page Page) ([]*Product, error)
	Insert(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	SetStatus(ctx context.Context, id string, status ProductStatus) error

	// AdjustStock atomically changes stock by delta. Returns
	// ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, id string, delta int) error

	Count(ctx context.Context) (int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
