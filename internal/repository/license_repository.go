package repository

import (
	"context"
	"fmt"

	"licenseshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// licenseRepository implements the LicenseRepository interface using PostgreSQL.
type licenseRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewLicenseRepository creates a new PostgreSQL-backed sold-license repository.
func NewLicenseRepository(pool *pgxpool.Pool, logger zerolog.Logger) LicenseRepository {
	return &licenseRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "license").Logger(),
	}
}

const licenseColumns = `id, customer_name, customer_email, customer_whatsapp, product_id, product_name, license_code, expiration_date, notes, created_at, updated_at`

func scanLicense(row pgx.Row) (*model.SoldLicense, error) {
	var l model.SoldLicense
	err := row.Scan(
		&l.ID, &l.CustomerName, &l.CustomerEmail, &l.CustomerWhatsapp,
		&l.ProductID, &l.ProductName, &l.LicenseCode, &l.ExpirationDate,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetAll retrieves the whole ledger ordered by expiration date, soonest
// first, so the renewal screen reads top to bottom.
func (r *licenseRepository) GetAll(ctx context.Context) ([]model.SoldLicense, error) {
	query := `
		SELECT ` + licenseColumns + `
		FROM sold_licenses
		ORDER BY expiration_date, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query sold licenses")
		return nil, fmt.Errorf("failed to query sold licenses: %w", err)
	}
	defer rows.Close()

	var licenses []model.SoldLicense
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan sold license row")
			return nil, fmt.Errorf("failed to scan sold license: %w", err)
		}
		licenses = append(licenses, *l)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating sold license rows")
		return nil, fmt.Errorf("error iterating sold licenses: %w", err)
	}

	return licenses, nil
}

// GetByID retrieves a single ledger entry.
func (r *licenseRepository) GetByID(ctx context.Context, id int64) (*model.SoldLicense, error) {
	query := `
		SELECT ` + licenseColumns + `
		FROM sold_licenses
		WHERE id = $1
	`

	l, err := scanLicense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("license_id", id).Msg("sold license not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("license_id", id).Msg("failed to query sold license")
		return nil, fmt.Errorf("failed to query sold license: %w", err)
	}

	return l, nil
}

// Create inserts a new ledger entry.
func (r *licenseRepository) Create(ctx context.Context, input model.SoldLicenseInput) (*model.SoldLicense, error) {
	query := `
		INSERT INTO sold_licenses (customer_name, customer_email, customer_whatsapp, product_id, product_name, license_code, expiration_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + licenseColumns + `
	`

	l, err := scanLicense(r.pool.QueryRow(ctx, query,
		input.CustomerName, input.CustomerEmail, input.CustomerWhatsapp,
		input.ProductID, input.ProductName, input.LicenseCode,
		input.ExpirationDate, input.Notes,
	))
	if err != nil {
		r.logger.Error().Err(err).Str("customer", input.CustomerName).Msg("failed to create sold license")
		return nil, fmt.Errorf("failed to create sold license: %w", err)
	}

	r.logger.Debug().Int64("license_id", l.ID).Msg("sold license created")
	return l, nil
}

// Update replaces the mutable fields of a ledger entry.
func (r *licenseRepository) Update(ctx context.Context, id int64, input model.SoldLicenseInput) error {
	query := `
		UPDATE sold_licenses
		SET customer_name = $2,
		    customer_email = $3,
		    customer_whatsapp = $4,
		    product_id = $5,
		    product_name = $6,
		    license_code = $7,
		    expiration_date = $8,
		    notes = $9,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id,
		input.CustomerName, input.CustomerEmail, input.CustomerWhatsapp,
		input.ProductID, input.ProductName, input.LicenseCode,
		input.ExpirationDate, input.Notes,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("license_id", id).Msg("failed to update sold license")
		return fmt.Errorf("failed to update sold license: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLicenseNotFound
	}

	r.logger.Debug().Int64("license_id", id).Msg("sold license updated")
	return nil
}

// Delete removes a ledger entry.
func (r *licenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sold_licenses WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("license_id", id).Msg("failed to delete sold license")
		return fmt.Errorf("failed to delete sold license: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLicenseNotFound
	}

	r.logger.Debug().Int64("license_id", id).Msg("sold license deleted")
	return nil
}
