package order

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an order does not exist
var ErrNotFound = errors.New("order not found")

// Page describes pagination input
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the interface for order data access
type Repository interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID string, page Page) ([]*Order, error)
	FindAll(ctx context.Context, page Page) ([]*Order, error)
	Insert(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Count(ctx context.Context) (int64, error)
}
