package customer

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a customer does not exist
var ErrNotFound = errors.New("customer not found")

// Repository defines customer data access
type Repository interface {
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Insert(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
