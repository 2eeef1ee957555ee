package model

import "time"

// Product represents a software product in the catalogue. BasePrice is the
// fallback price charged when no SKU matches a customer's selection.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	BasePrice   int64     `json:"basePrice" db:"base_price"` // whole COP
	InStock     bool      `json:"inStock" db:"in_stock"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
