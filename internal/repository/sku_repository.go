package repository

import (
	"context"
	"errors"
	"fmt"

	"licenseshop/internal/catalog"
	"licenseshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// skuRepository implements the SKURepository interface using PostgreSQL.
// Combinations are stored as canonically serialized text (ascending variant
// id order) so stored values are stable across writers.
type skuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSKURepository creates a new PostgreSQL-backed SKU repository.
func NewSKURepository(pool *pgxpool.Pool, logger zerolog.Logger) SKURepository {
	return &skuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "sku").Logger(),
	}
}

const skuColumns = `id, product_id, sku, variant_combination, price, in_stock, created_at, updated_at`

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The product_skus table is unique on both the SKU code and the
// (product_id, variant_combination) pair; canonical combination encoding
// makes the latter sound as a text comparison.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *skuRepository) scanSKU(row pgx.Row) (*model.SKU, error) {
	var s model.SKU
	var combination string
	err := row.Scan(&s.ID, &s.ProductID, &s.Code, &combination, &s.Price, &s.InStock, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c, err := catalog.Decode(combination)
	if err != nil {
		r.logger.Warn().Err(err).Int64("sku_id", s.ID).Msg("stored combination is corrupt")
		c = catalog.Combination{}
	}
	s.Combination = c
	return &s, nil
}

// ListByProduct retrieves all SKUs for a product.
func (r *skuRepository) ListByProduct(ctx context.Context, productID int64) ([]model.SKU, error) {
	query := `
		SELECT ` + skuColumns + `
		FROM product_skus
		WHERE product_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to query SKUs")
		return nil, fmt.Errorf("failed to query SKUs: %w", err)
	}
	defer rows.Close()

	var skus []model.SKU
	for rows.Next() {
		s, err := r.scanSKU(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan SKU row")
			return nil, fmt.Errorf("failed to scan SKU: %w", err)
		}
		skus = append(skus, *s)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating SKU rows")
		return nil, fmt.Errorf("error iterating SKUs: %w", err)
	}

	return skus, nil
}

// Create inserts a new SKU.
func (r *skuRepository) Create(ctx context.Context, input model.SKUInput) (*model.SKU, error) {
	query := `
		INSERT INTO product_skus (product_id, sku, variant_combination, price, in_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + skuColumns + `
	`

	s, err := r.scanSKU(r.pool.QueryRow(ctx, query,
		input.ProductID,
		input.Code,
		catalog.Encode(catalog.Combination(input.Combination)),
		input.Price,
		input.InStock,
	))
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().
				Int64("product_id", input.ProductID).
				Str("sku", input.Code).
				Msg("SKU code or combination already exists")
			return nil, model.ErrDuplicateSKU
		}
		r.logger.Error().Err(err).
			Int64("product_id", input.ProductID).
			Str("sku", input.Code).
			Msg("failed to create SKU")
		return nil, fmt.Errorf("failed to create SKU: %w", err)
	}

	r.logger.Debug().Int64("sku_id", s.ID).Str("sku", s.Code).Msg("SKU created")
	return s, nil
}

// Update applies a partial SKU update.
func (r *skuRepository) Update(ctx context.Context, id int64, update model.SKUUpdate) error {
	var combination *string
	if update.Combination != nil {
		encoded := catalog.Encode(catalog.Combination(update.Combination))
		combination = &encoded
	}

	query := `
		UPDATE product_skus
		SET sku = COALESCE($2, sku),
		    variant_combination = COALESCE($3, variant_combination),
		    price = COALESCE($4, price),
		    in_stock = COALESCE($5, in_stock),
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, update.Code, combination, update.Price, update.InStock)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Int64("sku_id", id).Msg("SKU code or combination already exists")
			return model.ErrDuplicateSKU
		}
		r.logger.Error().Err(err).Int64("sku_id", id).Msg("failed to update SKU")
		return fmt.Errorf("failed to update SKU: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSKUNotFound
	}

	r.logger.Debug().Int64("sku_id", id).Msg("SKU updated")
	return nil
}

// Delete removes a SKU.
func (r *skuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_skus WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("sku_id", id).Msg("failed to delete SKU")
		return fmt.Errorf("failed to delete SKU: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSKUNotFound
	}

	r.logger.Debug().Int64("sku_id", id).Msg("SKU deleted")
	return nil
}

// ReplaceForProduct swaps a product's entire SKU set inside one
// transaction. The admin pricing screen saves by replacing every SKU at
// once; doing it transactionally means a failure partway never leaves the
// product half-priced.
func (r *skuRepository) ReplaceForProduct(ctx context.Context, productID int64, inputs []model.SKUInput) ([]model.SKU, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM product_skus WHERE product_id = $1`, productID); err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to clear SKUs")
		return nil, fmt.Errorf("failed to clear SKUs: %w", err)
	}

	query := `
		INSERT INTO product_skus (product_id, sku, variant_combination, price, in_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + skuColumns + `
	`

	skus := make([]model.SKU, 0, len(inputs))
	for _, input := range inputs {
		s, err := r.scanSKU(tx.QueryRow(ctx, query,
			productID,
			input.Code,
			catalog.Encode(catalog.Combination(input.Combination)),
			input.Price,
			input.InStock,
		))
		if err != nil {
			if isUniqueViolation(err) {
				r.logger.Warn().
					Int64("product_id", productID).
					Str("sku", input.Code).
					Msg("replacement SKU code or combination already exists")
				return nil, model.ErrDuplicateSKU
			}
			r.logger.Error().Err(err).
				Int64("product_id", productID).
				Str("sku", input.Code).
				Msg("failed to insert replacement SKU")
			return nil, fmt.Errorf("failed to insert replacement SKU %q: %w", input.Code, err)
		}
		skus = append(skus, *s)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to replace SKUs: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", productID).
		Int("count", len(skus)).
		Msg("SKU set replaced")

	return skus, nil
}
