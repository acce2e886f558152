// Package customer provides customer accounts for the storefront
package customer

import (
	"time"
)

// Role controls what a customer account may access
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Customer represents a registered account.
// Table: customers
type Customer struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`

	// Locale is the customer's preferred storefront language
	Locale string `json:"locale,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin returns true for admin accounts
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}
