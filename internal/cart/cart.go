// Package cart provides the Redis-backed shopping cart
package cart

import (
	"time"
)

// Item is a single cart line
type Item struct {
	ProductID  string `json:"productId"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
}

// Cart holds the items a visitor intends to buy.
// Carts are keyed by a cart id stored in the session; they expire from
// Redis after the configured TTL of inactivity.
type Cart struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MaxQuantityPerLine bounds a single cart line
const MaxQuantityPerLine = 99

// TotalCents returns the cart total in the smallest currency unit
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units in the cart
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// line returns the index of the line for productID, or -1
func (c *Cart) line(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Upsert adds qty of the item, merging into an existing line.
// The quantity is clamped to MaxQuantityPerLine.
func (c *Cart) Upsert(item Item) {
	if i := c.line(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		if c.Items[i].Quantity > MaxQuantityPerLine {
			c.Items[i].Quantity = MaxQuantityPerLine
		}
		// Refresh the denormalized price and name
		c.Items[i].PriceCents = item.PriceCents
		c.Items[i].Name = item.Name
		return
	}
	if item.Quantity > MaxQuantityPerLine {
		item.Quantity = MaxQuantityPerLine
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets the line quantity; qty 0 removes the line.
// Returns false if the product is not in the cart.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	i := c.line(productID)
	if i < 0 {
		return false
	}
	if qty <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return true
	}
	if qty > MaxQuantityPerLine {
		qty = MaxQuantityPerLine
	}
	c.Items[i].Quantity = qty
	return true
}

// Remove deletes the line for productID. Returns false if absent.
func (c *Cart) Remove(productID string) bool {
	return c.SetQuantity(productID, 0)
}
