package repository

import (
	"context"
	"testing"
	"time"

	"licenseshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func licenseInput(name string, expiration time.Time) model.SoldLicenseInput {
	return model.SoldLicenseInput{
		CustomerName:     name,
		CustomerEmail:    name + "@example.com",
		CustomerWhatsapp: "+57 300 000 0000",
		ProductID:        1,
		ProductName:      "VPN Pro",
		LicenseCode:      "XXXX-YYYY-ZZZZ",
		ExpirationDate:   expiration,
	}
}

func TestLicenseRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewLicenseRepository(pool, zerolog.Nop())
	expiration := time.Now().UTC().Add(20 * 24 * time.Hour).Truncate(time.Millisecond)

	created, err := repo.Create(ctx, licenseInput("carlos", expiration))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "carlos", got.CustomerName)
	assert.WithinDuration(t, expiration, got.ExpirationDate, time.Second)
}

func TestLicenseRepository_GetAllOrderedByExpiration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewLicenseRepository(pool, zerolog.Nop())
	now := time.Now().UTC()

	_, err := repo.Create(ctx, licenseInput("later", now.Add(60*24*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, licenseInput("sooner", now.Add(5*24*time.Hour)))
	require.NoError(t, err)

	licenses, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, licenses, 2)
	assert.Equal(t, "sooner", licenses[0].CustomerName)
	assert.Equal(t, "later", licenses[1].CustomerName)
}

func TestLicenseRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewLicenseRepository(pool, zerolog.Nop())
	now := time.Now().UTC()

	created, err := repo.Create(ctx, licenseInput("carlos", now.Add(5*24*time.Hour)))
	require.NoError(t, err)

	input := licenseInput("carlos", now.Add(370*24*time.Hour))
	input.LicenseCode = "RENEWED-CODE"
	input.Notes = "renewed for a year"
	require.NoError(t, repo.Update(ctx, created.ID, input))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "RENEWED-CODE", got.LicenseCode)
	assert.Equal(t, "renewed for a year", got.Notes)
}

func TestLicenseRepository_UpdateMissing(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewLicenseRepository(pool, zerolog.Nop())
	err := repo.Update(context.Background(), 9999, licenseInput("x", time.Now()))
	assert.ErrorIs(t, err, model.ErrLicenseNotFound)
}

func TestLicenseRepository_Delete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewLicenseRepository(pool, zerolog.Nop())

	created, err := repo.Create(ctx, licenseInput("carlos", time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrLicenseNotFound)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
