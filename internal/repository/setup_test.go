package repository

import (
	"context"
	"testing"
	"time"

	"licenseshop/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	createSchema(t, pool)

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			base_price BIGINT NOT NULL CHECK (base_price >= 0),
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS product_variants (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id),
			name TEXT NOT NULL,
			position INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS variant_options (
			id BIGSERIAL PRIMARY KEY,
			variant_id BIGINT NOT NULL REFERENCES product_variants(id),
			value TEXT NOT NULL,
			position INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS product_skus (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id),
			sku TEXT NOT NULL UNIQUE,
			variant_combination TEXT NOT NULL,
			price BIGINT NOT NULL CHECK (price >= 0),
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (product_id, variant_combination)
		);
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id BIGINT,
			customer_name TEXT NOT NULL DEFAULT '',
			customer_email TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			items JSONB NOT NULL,
			total_amount BIGINT NOT NULL CHECK (total_amount >= 0),
			status TEXT NOT NULL DEFAULT 'pending',
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS sold_licenses (
			id BIGSERIAL PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			customer_whatsapp TEXT NOT NULL,
			product_id BIGINT NOT NULL,
			product_name TEXT NOT NULL,
			license_code TEXT NOT NULL,
			expiration_date TIMESTAMPTZ NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_variants_product ON product_variants(product_id);
		CREATE INDEX IF NOT EXISTS idx_options_variant ON variant_options(variant_id);
		CREATE INDEX IF NOT EXISTS idx_skus_product ON product_skus(product_id);
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_licenses_expiration ON sold_licenses(expiration_date);
	`

	_, err := pool.Exec(ctx, schema)
	require.NoError(t, err)
}

// seedProduct inserts one product and returns its generated id.
func seedProduct(t *testing.T, pool *pgxpool.Pool, slug, name string, basePrice int64) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO products (slug, name, base_price)
		VALUES ($1, $2, $3)
		RETURNING id
	`, slug, name, basePrice).Scan(&id)
	require.NoError(t, err)

	return id
}

// seedVariant inserts a variant with option values and returns the variant
// with its options loaded.
func seedVariant(t *testing.T, pool *pgxpool.Pool, productID int64, name string, position int, options []string) model.Variant {
	ctx := context.Background()

	var v model.Variant
	err := pool.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, name, position)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, name, position, created_at
	`, productID, name, position).Scan(&v.ID, &v.ProductID, &v.Name, &v.Position, &v.CreatedAt)
	require.NoError(t, err)

	for i, value := range options {
		var o model.VariantOption
		err := pool.QueryRow(ctx, `
			INSERT INTO variant_options (variant_id, value, position)
			VALUES ($1, $2, $3)
			RETURNING id, variant_id, value, position, created_at
		`, v.ID, value, i).Scan(&o.ID, &o.VariantID, &o.Value, &o.Position, &o.CreatedAt)
		require.NoError(t, err)
		v.Options = append(v.Options, o)
	}

	return v
}
