package model

import "time"

// SKU is a priced, stored combination of variant options for a product.
// Combination maps variant id to the chosen option id and covers every
// variant of the product exactly once.
type SKU struct {
	ID          int64           `json:"id" db:"id"`
	ProductID   int64           `json:"productId" db:"product_id"`
	Code        string          `json:"sku" db:"sku"`
	Combination map[int64]int64 `json:"variantCombination" db:"variant_combination"`
	Price       int64           `json:"price" db:"price"`
	InStock     bool            `json:"inStock" db:"in_stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// SKUInput is the payload for creating or replacing a SKU.
type SKUInput struct {
	ProductID   int64           `json:"productId"`
	Code        string          `json:"sku"`
	Combination map[int64]int64 `json:"variantCombination"`
	Price       int64           `json:"price"`
	InStock     bool            `json:"inStock"`
}

// SKUUpdate carries a partial SKU update.
type SKUUpdate struct {
	Code        *string         `json:"sku,omitempty"`
	Combination map[int64]int64 `json:"variantCombination,omitempty"`
	Price       *int64          `json:"price,omitempty"`
	InStock     *bool           `json:"inStock,omitempty"`
}
