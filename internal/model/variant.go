package model

import "time"

// Variant is a configurable axis of a product, e.g. "License Term".
// Options are ordered by Position and are populated on list reads.
type Variant struct {
	ID        int64           `json:"id" db:"id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Position  int             `json:"position" db:"position"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	Options   []VariantOption `json:"options,omitempty"`
}

// VariantOption is one selectable value within a variant, e.g. "3 months".
type VariantOption struct {
	ID        int64     `json:"id" db:"id"`
	VariantID int64     `json:"variantId" db:"variant_id"`
	Value     string    `json:"value" db:"value"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// VariantInput is the payload for creating a variant together with its
// option values. Option positions follow slice order.
type VariantInput struct {
	ProductID int64    `json:"productId"`
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	Options   []string `json:"options"`
}

// VariantUpdate carries a partial variant update. When Options is non-nil
// the variant's option set is replaced wholesale in a single transaction.
type VariantUpdate struct {
	Name     *string              `json:"name,omitempty"`
	Position *int                 `json:"position,omitempty"`
	Options  []VariantOptionInput `json:"options,omitempty"`
}

// VariantOptionInput describes one option in a replace-set update. ID is
// zero for options that do not exist yet.
type VariantOptionInput struct {
	ID       int64  `json:"id,omitempty"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}
