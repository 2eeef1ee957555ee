package repository

import (
	"context"
	"fmt"

	"licenseshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// variantRepository implements the VariantRepository interface using PostgreSQL.
type variantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVariantRepository creates a new PostgreSQL-backed variant repository.
func NewVariantRepository(pool *pgxpool.Pool, logger zerolog.Logger) VariantRepository {
	return &variantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "variant").Logger(),
	}
}

// ListByProduct retrieves a product's variants with their options, ordered
// by position.
func (r *variantRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Variant, error) {
	query := `
		SELECT id, product_id, name, position, created_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY position, id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to query variants")
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []model.Variant
	for rows.Next() {
		var v model.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Position, &v.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan variant row")
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating variant rows")
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}

	if err := r.attachOptions(ctx, variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID retrieves a single variant with its options.
func (r *variantRepository) GetByID(ctx context.Context, id int64) (*model.Variant, error) {
	query := `
		SELECT id, product_id, name, position, created_at
		FROM product_variants
		WHERE id = $1
	`

	var v model.Variant
	err := r.pool.QueryRow(ctx, query, id).Scan(&v.ID, &v.ProductID, &v.Name, &v.Position, &v.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("variant_id", id).Msg("variant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to query variant")
		return nil, fmt.Errorf("failed to query variant: %w", err)
	}

	variants := []model.Variant{v}
	if err := r.attachOptions(ctx, variants); err != nil {
		return nil, err
	}
	return &variants[0], nil
}

// attachOptions loads the options for every variant in the slice with a
// single query.
func (r *variantRepository) attachOptions(ctx context.Context, variants []model.Variant) error {
	if len(variants) == 0 {
		return nil
	}

	ids := make([]int64, len(variants))
	byID := make(map[int64]*model.Variant, len(variants))
	for i := range variants {
		ids[i] = variants[i].ID
		byID[variants[i].ID] = &variants[i]
	}

	query := `
		SELECT id, variant_id, value, position, created_at
		FROM variant_options
		WHERE variant_id = ANY($1)
		ORDER BY position, id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("variant_count", len(ids)).Msg("failed to query variant options")
		return fmt.Errorf("failed to query variant options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o model.VariantOption
		if err := rows.Scan(&o.ID, &o.VariantID, &o.Value, &o.Position, &o.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan option row")
			return fmt.Errorf("failed to scan option: %w", err)
		}
		if v, ok := byID[o.VariantID]; ok {
			v.Options = append(v.Options, o)
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating option rows")
		return fmt.Errorf("error iterating options: %w", err)
	}
	return nil
}

// Create inserts a variant and its option values atomically.
func (r *variantRepository) Create(ctx context.Context, input model.VariantInput) (*model.Variant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var v model.Variant
	err = tx.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, name, position)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, name, position, created_at
	`, input.ProductID, input.Name, input.Position).Scan(&v.ID, &v.ProductID, &v.Name, &v.Position, &v.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", input.ProductID).Msg("failed to create variant")
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	batch := &pgx.Batch{}
	for i, value := range input.Options {
		batch.Queue(`
			INSERT INTO variant_options (variant_id, value, position)
			VALUES ($1, $2, $3)
		`, v.ID, value, i)
	}

	results := tx.SendBatch(ctx, batch)
	for range input.Options {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			r.logger.Error().Err(err).Int64("variant_id", v.ID).Msg("failed to create variant option")
			return nil, fmt.Errorf("failed to create variant option: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to create variant options: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("variant_id", v.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	for i, value := range input.Options {
		v.Options = append(v.Options, model.VariantOption{VariantID: v.ID, Value: value, Position: i})
	}

	r.logger.Debug().
		Int64("variant_id", v.ID).
		Int("option_count", len(input.Options)).
		Msg("variant created")

	return &v, nil
}

// Update applies a partial update. When the update carries options the
// existing option set is replaced wholesale, all inside one transaction so
// a failure partway leaves the previous set intact.
func (r *variantRepository) Update(ctx context.Context, id int64, update model.VariantUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if update.Name != nil || update.Position != nil {
		tag, err := tx.Exec(ctx, `
			UPDATE product_variants
			SET name = COALESCE($2, name), position = COALESCE($3, position)
			WHERE id = $1
		`, id, update.Name, update.Position)
		if err != nil {
			r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to update variant")
			return fmt.Errorf("failed to update variant: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrVariantNotFound
		}
	}

	if update.Options != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM variant_options WHERE variant_id = $1`, id); err != nil {
			r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to clear variant options")
			return fmt.Errorf("failed to clear variant options: %w", err)
		}

		batch := &pgx.Batch{}
		for _, opt := range update.Options {
			batch.Queue(`
				INSERT INTO variant_options (variant_id, value, position)
				VALUES ($1, $2, $3)
			`, id, opt.Value, opt.Position)
		}

		results := tx.SendBatch(ctx, batch)
		for range update.Options {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to insert replacement option")
				return fmt.Errorf("failed to insert replacement option: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to replace variant options: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to commit transaction")
		return fmt.Errorf("failed to update variant: %w", err)
	}

	r.logger.Debug().Int64("variant_id", id).Msg("variant updated")
	return nil
}

// Delete removes a variant and cascades its options in one transaction.
func (r *variantRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM variant_options WHERE variant_id = $1`, id); err != nil {
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to delete variant options")
		return fmt.Errorf("failed to delete variant options: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to delete variant")
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVariantNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete variant: %w", err)
	}

	r.logger.Debug().Int64("variant_id", id).Msg("variant deleted")
	return nil
}
