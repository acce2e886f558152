// Package order holds orders placed from carts and their payment state
package order

import (
	"time"
)

// Status represents the order lifecycle state
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusFulfilled Status = "FULFILLED"
)

// Line is a snapshot of a cart line at the moment the order was placed.
// Prices are copied so later catalog edits never change an order.
type Line struct {
	ProductID  string `json:"productId"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

// Order represents a placed order
type Order struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Lines      []Line `json:"lines"`
	TotalCents int64  `json:"totalCents"`
	Currency   string `json:"currency"`
	Status     Status `json:"status"`

	// ChargeID is the payment provider's charge reference, set on payment
	ChargeID string `json:"chargeId,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// CanPay returns true when the order accepts a payment attempt
func (o *Order) CanPay() bool {
	return o.Status == StatusPending
}

// CanCancel returns true when the order can still be cancelled
func (o *Order) CanCancel() bool {
	return o.Status == StatusPending || o.Status == StatusPaid
}
