package repository

import (
	"context"
	"time"

	"licenseshop/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetBySlug retrieves a single product by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
}

// VariantRepository defines the interface for variant and option data access.
// Multi-row writes run inside a single transaction so a partial failure
// never leaves a product with half a variant set.
type VariantRepository interface {
	// ListByProduct retrieves a product's variants with their options,
	// ordered by position.
	ListByProduct(ctx context.Context, productID int64) ([]model.Variant, error)

	// GetByID retrieves a single variant with its options.
	GetByID(ctx context.Context, id int64) (*model.Variant, error)

	// Create inserts a variant and its option values atomically.
	Create(ctx context.Context, input model.VariantInput) (*model.Variant, error)

	// Update applies a partial update. When the update carries options the
	// whole option set is replaced in the same transaction.
	Update(ctx context.Context, id int64, update model.VariantUpdate) error

	// Delete removes a variant and cascades its options in one transaction.
	Delete(ctx context.Context, id int64) error
}

// SKURepository defines the interface for SKU data access operations.
type SKURepository interface {
	// ListByProduct retrieves all SKUs for a product.
	ListByProduct(ctx context.Context, productID int64) ([]model.SKU, error)

	// Create inserts a new SKU.
	Create(ctx context.Context, input model.SKUInput) (*model.SKU, error)

	// Update applies a partial SKU update.
	Update(ctx context.Context, id int64, update model.SKUUpdate) error

	// Delete removes a SKU.
	Delete(ctx context.Context, id int64) error

	// ReplaceForProduct swaps a product's entire SKU set for the given one
	// inside a single transaction, rolling back entirely on any failure.
	ReplaceForProduct(ctx context.Context, productID int64, inputs []model.SKUInput) ([]model.SKU, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts a new order with its item snapshot.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetAll retrieves all orders, newest first.
	GetAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus sets the order status and, when provided, the license
	// expiration timestamp.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, expiresAt *time.Time) error
}

// LicenseRepository defines the interface for the sold-license ledger.
type LicenseRepository interface {
	// GetAll retrieves the whole ledger ordered by expiration date.
	GetAll(ctx context.Context) ([]model.SoldLicense, error)

	// GetByID retrieves a single ledger entry.
	GetByID(ctx context.Context, id int64) (*model.SoldLicense, error)

	// Create inserts a new ledger entry.
	Create(ctx context.Context, input model.SoldLicenseInput) (*model.SoldLicense, error)

	// Update replaces the mutable fields of a ledger entry.
	Update(ctx context.Context, id int64, input model.SoldLicenseInput) error

	// Delete removes a ledger entry.
	Delete(ctx context.Context, id int64) error
}
