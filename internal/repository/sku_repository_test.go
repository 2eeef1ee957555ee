package repository

import (
	"context"
	"testing"

	"licenseshop/internal/catalog"
	"licenseshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSKURepository_CreateAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSKURepository(pool, zerolog.Nop())
	productID := seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)
	term := seedVariant(t, pool, productID, "Term", 0, []string{"1m", "3m"})

	created, err := repo.Create(ctx, model.SKUInput{
		ProductID:   productID,
		Code:        "vpn-pro-1M",
		Combination: map[int64]int64{term.ID: term.Options[0].ID},
		Price:       90000,
		InStock:     true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(90000), created.Price)

	skus, err := repo.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, "vpn-pro-1M", skus[0].Code)
	assert.Equal(t, term.Options[0].ID, skus[0].Combination[term.ID])
}

func TestSKURepository_CombinationSurvivesRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSKURepository(pool, zerolog.Nop())
	productID := seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)
	term := seedVariant(t, pool, productID, "Term", 0, []string{"1m"})
	edition := seedVariant(t, pool, productID, "Edition", 1, []string{"Pro"})

	combination := map[int64]int64{
		edition.ID: edition.Options[0].ID,
		term.ID:    term.Options[0].ID,
	}
	_, err := repo.Create(ctx, model.SKUInput{
		ProductID:   productID,
		Code:        "vpn-pro-1M-PRO",
		Combination: combination,
		Price:       120000,
		InStock:     true,
	})
	require.NoError(t, err)

	skus, err := repo.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.True(t, catalog.Equal(catalog.Combination(combination), catalog.Combination(skus[0].Combination)))

	// Stored text must be the canonical encoding, independent of map order.
	var stored string
	err = pool.QueryRow(ctx, `SELECT variant_combination FROM product_skus WHERE id = $1`, skus[0].ID).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, catalog.Encode(catalog.Combination(combination)), stored)
}

func TestSKURepository_DuplicateRejected(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSKURepository(pool, zerolog.Nop())
	productID := seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)
	term := seedVariant(t, pool, productID, "Term", 0, []string{"1m"})
	edition := seedVariant(t, pool, productID, "Edition", 1, []string{"Basic", "Pro"})

	_, err := repo.Create(ctx, model.SKUInput{
		ProductID:   productID,
		Code:        "vpn-pro-1M-PRO",
		Combination: map[int64]int64{term.ID: term.Options[0].ID, edition.ID: edition.Options[1].ID},
		Price:       120000,
		InStock:     true,
	})
	require.NoError(t, err)

	t.Run("Same combination different code", func(t *testing.T) {
		// Canonical encoding makes the match independent of map key order.
		_, err := repo.Create(ctx, model.SKUInput{
			ProductID:   productID,
			Code:        "vpn-pro-other",
			Combination: map[int64]int64{edition.ID: edition.Options[1].ID, term.ID: term.Options[0].ID},
			Price:       95000,
		})
		assert.ErrorIs(t, err, model.ErrDuplicateSKU)
	})

	t.Run("Same code different combination", func(t *testing.T) {
		_, err := repo.Create(ctx, model.SKUInput{
			ProductID:   productID,
			Code:        "vpn-pro-1M-PRO",
			Combination: map[int64]int64{term.ID: term.Options[0].ID, edition.ID: edition.Options[0].ID},
			Price:       95000,
		})
		assert.ErrorIs(t, err, model.ErrDuplicateSKU)
	})

	t.Run("Update onto existing combination", func(t *testing.T) {
		other, err := repo.Create(ctx, model.SKUInput{
			ProductID:   productID,
			Code:        "vpn-pro-1M-BAS",
			Combination: map[int64]int64{term.ID: term.Options[0].ID, edition.ID: edition.Options[0].ID},
			Price:       90000,
		})
		require.NoError(t, err)

		err = repo.Update(ctx, other.ID, model.SKUUpdate{
			Combination: map[int64]int64{term.ID: term.Options[0].ID, edition.ID: edition.Options[1].ID},
		})
		assert.ErrorIs(t, err, model.ErrDuplicateSKU)
	})
}

func TestSKURepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSKURepository(pool, zerolog.Nop())
	productID := seedProduct(t, pool, "vpn", "VPN", 100000)
	term := seedVariant(t, pool, productID, "Term", 0, []string{"1m"})

	created, err := repo.Create(ctx, model.SKUInput{
		ProductID:   productID,
		Code:        "vpn-1M",
		Combination: map[int64]int64{term.ID: term.Options[0].ID},
		Price:       90000,
		InStock:     true,
	})
	require.NoError(t, err)

	newPrice := int64(95000)
	outOfStock := false
	require.NoError(t, repo.Update(ctx, created.ID, model.SKUUpdate{Price: &newPrice, InStock: &outOfStock}))

	skus, err := repo.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, int64(95000), skus[0].Price)
	assert.False(t, skus[0].InStock)
	assert.Equal(t, "vpn-1M", skus[0].Code)
}

func TestSKURepository_UpdateMissing(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSKURepository(pool, zerolog.Nop())
	price := int64(1)
	err := repo.Update(context.Background(), 9999, model.SKUUpdate{Price: &price})
	assert.ErrorIs(t, err, model.ErrSKUNotFound)
}

func TestSKURepository_ReplaceForProduct(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSKURepository(pool, zerolog.Nop())
	productID := seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)
	term := seedVariant(t, pool, productID, "Term", 0, []string{"1m", "3m"})

	_, err := repo.Create(ctx, model.SKUInput{
		ProductID:   productID,
		Code:        "old-sku",
		Combination: map[int64]int64{term.ID: term.Options[0].ID},
		Price:       1,
		InStock:     true,
	})
	require.NoError(t, err)

	replaced, err := repo.ReplaceForProduct(ctx, productID, []model.SKUInput{
		{ProductID: productID, Code: "vpn-pro-1M", Combination: map[int64]int64{term.ID: term.Options[0].ID}, Price: 90000, InStock: true},
		{ProductID: productID, Code: "vpn-pro-3M", Combination: map[int64]int64{term.ID: term.Options[1].ID}, Price: 240000, InStock: true},
	})
	require.NoError(t, err)
	assert.Len(t, replaced, 2)

	skus, err := repo.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, skus, 2)
	assert.Equal(t, "vpn-pro-1M", skus[0].Code)
	assert.Equal(t, "vpn-pro-3M", skus[1].Code)
}

func TestSKURepository_ReplaceForProductRollsBackOnFailure(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSKURepository(pool, zerolog.Nop())
	productID := seedProduct(t, pool, "vpn-pro", "VPN Pro", 150000)
	term := seedVariant(t, pool, productID, "Term", 0, []string{"1m", "3m"})

	_, err := repo.Create(ctx, model.SKUInput{
		ProductID:   productID,
		Code:        "keep-me",
		Combination: map[int64]int64{term.ID: term.Options[0].ID},
		Price:       90000,
		InStock:     true,
	})
	require.NoError(t, err)

	// Duplicate code inside the replacement set violates the unique
	// constraint; the whole replace must roll back.
	_, err = repo.ReplaceForProduct(ctx, productID, []model.SKUInput{
		{ProductID: productID, Code: "dup", Combination: map[int64]int64{term.ID: term.Options[0].ID}, Price: 1, InStock: true},
		{ProductID: productID, Code: "dup", Combination: map[int64]int64{term.ID: term.Options[1].ID}, Price: 2, InStock: true},
	})
	require.Error(t, err)

	skus, err := repo.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, "keep-me", skus[0].Code)
}

func TestSKURepository_Delete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewSKURepository(pool, zerolog.Nop())
	productID := seedProduct(t, pool, "vpn", "VPN", 100000)
	term := seedVariant(t, pool, productID, "Term", 0, []string{"1m"})

	created, err := repo.Create(ctx, model.SKUInput{
		ProductID:   productID,
		Code:        "vpn-1M",
		Combination: map[int64]int64{term.ID: term.Options[0].ID},
		Price:       90000,
		InStock:     true,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrSKUNotFound)
}
