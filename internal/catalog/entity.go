// Package catalog provides product entities for the storefront and admin
package catalog

import (
	"time"
)

// Locale identifies a storefront language
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleDE Locale = "de"
	LocaleFR Locale = "fr"
)

// DefaultLocale is used when a requested translation is missing
const DefaultLocale = LocaleEN

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// Translation holds the localized fields of a product
type Translation struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Product represents a sellable item.
// Table: products (translations stored as JSONB keyed by locale)
type Product struct {
	ID           string                 `json:"id"`
	Slug         string                 `json:"slug"`
	SKU          string                 `json:"sku"`
	Translations map[Locale]Translation `json:"translations"`

	// PriceCents is the unit price in the smallest currency unit
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`

	Stock  int           `json:"stock"`
	Status ProductStatus `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsActive returns true if the product is visible on the storefront
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// InStock returns true if at least qty units are available
func (p *Product) InStock(qty int) bool {
	return p.Stock >= qty
}

// Translate returns the translation for the locale, falling back to the
// default locale and then to any available translation.
func (p *Product) Translate(locale Locale) Translation {
	if t, ok := p.Translations[locale]; ok {
		return t
	}
	if t, ok := p.Translations[DefaultLocale]; ok {
		return t
	}
	for _, t := range p.Translations {
		return t
	}
	return Translation{}
}
