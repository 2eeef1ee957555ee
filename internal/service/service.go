package service

import (
	"context"
	"time"

	"licenseshop/internal/catalog"
	"licenseshop/internal/license"
	"licenseshop/internal/model"

	"github.com/google/uuid"
)

// PricedCombination is one generated combination together with its resolved
// price. Priced is false when no stored SKU covers the combination and the
// price shown is the product's base price.
type PricedCombination struct {
	Combination catalog.Combination `json:"combination"`
	Label       string              `json:"label"`
	Code        string              `json:"sku"`
	Price       int64               `json:"price"`
	Priced      bool                `json:"priced"`
}

// AdminSKU is a stored SKU as the admin listing presents it. Invalidated is
// true when the combination references a variant or option that no longer
// exists; such SKUs are reported, never silently repaired.
type AdminSKU struct {
	model.SKU
	Invalidated bool `json:"invalidated,omitempty"`
}

// ProductService defines operations for the public product catalog.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Get retrieves a single product by numeric ID or URL slug.
	Get(ctx context.Context, idOrSlug string) (*model.Product, error)
}

// CatalogService defines operations for variant and SKU management and for
// pricing customer selections.
type CatalogService interface {
	// ListVariants retrieves a product's variants with their options.
	ListVariants(ctx context.Context, productID int64) ([]model.Variant, error)

	// CreateVariant creates a variant with its option values.
	CreateVariant(ctx context.Context, input model.VariantInput) (*model.Variant, error)

	// UpdateVariant applies a partial update. A non-nil option set replaces
	// the variant's options wholesale.
	UpdateVariant(ctx context.Context, id int64, update model.VariantUpdate) (*model.Variant, error)

	// DeleteVariant removes a variant and its options.
	DeleteVariant(ctx context.Context, id int64) error

	// ListCombinations enumerates every combination of the product's current
	// variant set with resolved prices.
	ListCombinations(ctx context.Context, productID int64) ([]PricedCombination, error)

	// ResolvePrice prices a customer selection against the product's SKUs.
	ResolvePrice(ctx context.Context, productID int64, selection catalog.Combination) (*catalog.Resolution, error)

	// ListSKUs retrieves a product's SKUs, flagging entries whose
	// combinations no longer resolve against the live variant set.
	ListSKUs(ctx context.Context, productID int64) ([]AdminSKU, error)

	// CreateSKU creates a single SKU.
	CreateSKU(ctx context.Context, input model.SKUInput) (*model.SKU, error)

	// UpdateSKU applies a partial SKU update.
	UpdateSKU(ctx context.Context, id int64, update model.SKUUpdate) error

	// DeleteSKU removes a SKU.
	DeleteSKU(ctx context.Context, id int64) error

	// ReplaceSKUs swaps a product's whole SKU set atomically.
	ReplaceSKUs(ctx context.Context, productID int64, inputs []model.SKUInput) ([]model.SKU, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// Create creates a new pending order from an item snapshot.
	Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetAll retrieves orders, newest first, with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus moves an order through its lifecycle. Completing an order
	// stamps the license expiration.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

// LicenseService defines operations for the sold-license ledger and the
// renewal-reminder screen behind it.
type LicenseService interface {
	// GetAll retrieves the ledger with computed urgency tiers.
	GetAll(ctx context.Context) ([]license.ClassifiedLicense, error)

	// GetByID retrieves a single ledger entry.
	GetByID(ctx context.Context, id int64) (*model.SoldLicense, error)

	// Create inserts a ledger entry.
	Create(ctx context.Context, input model.SoldLicenseInput) (*model.SoldLicense, error)

	// Update replaces a ledger entry's fields.
	Update(ctx context.Context, id int64, input model.SoldLicenseInput) (*model.SoldLicense, error)

	// Delete removes a ledger entry.
	Delete(ctx context.Context, id int64) error

	// Expiring retrieves licenses with up to days days remaining, with the
	// reminder text ready to send.
	Expiring(ctx context.Context, days int) ([]ExpiringLicense, error)
}

// ExpiringLicense is a ledger entry inside the renewal window together with
// the outreach message for it.
type ExpiringLicense struct {
	license.ClassifiedLicense
	ReminderMessage string `json:"reminderMessage"`
}

// now is swappable in tests.
var now = time.Now
