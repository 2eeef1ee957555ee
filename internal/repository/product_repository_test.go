package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_GetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())

	seedProduct(t, pool, "antivirus", "Antivirus", 80000)
	seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)

	products, err := repo.GetAll(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 2)
	// Ordered by name.
	assert.Equal(t, "Antivirus", products[0].Name)
	assert.Equal(t, "VPN Pro", products[1].Name)
}

func TestProductRepository_GetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())
	id := seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "vpn-pro", got.Slug)
	assert.Equal(t, int64(150000), got.BasePrice)
	assert.True(t, got.InStock)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_GetBySlug(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())
	seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)

	got, err := repo.GetBySlug(ctx, "vpn-pro")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "VPN Pro", got.Name)

	missing, err := repo.GetBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
