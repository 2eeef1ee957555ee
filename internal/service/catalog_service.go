package service

import (
	"context"
	"fmt"
	"strings"

	"licenseshop/internal/catalog"
	"licenseshop/internal/model"
	"licenseshop/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	skuRepo     repository.SKURepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	skuRepo repository.SKURepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		variantRepo: variantRepo,
		skuRepo:     skuRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ListVariants retrieves a product's variants with their options.
func (s *catalogService) ListVariants(ctx context.Context, productID int64) ([]model.Variant, error) {
	if _, err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list variants")
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	return variants, nil
}

// CreateVariant creates a variant with its option values.
func (s *catalogService) CreateVariant(ctx context.Context, input model.VariantInput) (*model.Variant, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Variant name is required")
	}
	if _, err := s.requireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	variant, err := s.variantRepo.Create(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("product_id", input.ProductID).
			Str("name", input.Name).
			Msg("failed to create variant")
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	s.logger.Info().
		Int64("variant_id", variant.ID).
		Int64("product_id", input.ProductID).
		Int("option_count", len(variant.Options)).
		Msg("variant created")

	return variant, nil
}

// UpdateVariant applies a partial update and returns the updated variant.
func (s *catalogService) UpdateVariant(ctx context.Context, id int64, update model.VariantUpdate) (*model.Variant, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Variant name cannot be empty")
	}

	if err := s.variantRepo.Update(ctx, id, update); err != nil {
		if err == model.ErrVariantNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to update variant")
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}

	variant, err := s.variantRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to reload variant")
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}
	if variant == nil {
		return nil, model.ErrVariantNotFound
	}

	s.logger.Info().Int64("variant_id", id).Msg("variant updated")
	return variant, nil
}

// DeleteVariant removes a variant and its options.
func (s *catalogService) DeleteVariant(ctx context.Context, id int64) error {
	if err := s.variantRepo.Delete(ctx, id); err != nil {
		if err == model.ErrVariantNotFound {
			return err
		}
		s.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to delete variant")
		return fmt.Errorf("failed to delete variant: %w", err)
	}

	s.logger.Info().Int64("variant_id", id).Msg("variant deleted")
	return nil
}

// ListCombinations enumerates every combination of the product's current
// variant set and prices each one against the stored SKUs.
func (s *catalogService) ListCombinations(ctx context.Context, productID int64) ([]PricedCombination, error) {
	product, err := s.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list variants")
		return nil, fmt.Errorf("failed to list combinations: %w", err)
	}

	skus, err := s.skuRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list SKUs")
		return nil, fmt.Errorf("failed to list combinations: %w", err)
	}

	generated := catalog.Generate(product.Slug, variants)
	out := make([]PricedCombination, 0, len(generated))
	for _, g := range generated {
		res, err := catalog.Resolve(*product, variants, skus, g.Combination)
		if err != nil {
			return nil, fmt.Errorf("failed to price combination: %w", err)
		}
		out = append(out, PricedCombination{
			Combination: g.Combination,
			Label:       g.Label,
			Code:        res.Code,
			Price:       res.Price,
			Priced:      res.Priced,
		})
	}

	s.logger.Debug().
		Int64("product_id", productID).
		Int("combination_count", len(out)).
		Msg("combinations generated")

	return out, nil
}

// ResolvePrice prices a customer selection against the product's SKUs.
func (s *catalogService) ResolvePrice(ctx context.Context, productID int64, selection catalog.Combination) (*catalog.Resolution, error) {
	product, err := s.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list variants")
		return nil, fmt.Errorf("failed to resolve price: %w", err)
	}

	skus, err := s.skuRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list SKUs")
		return nil, fmt.Errorf("failed to resolve price: %w", err)
	}

	res, err := catalog.Resolve(*product, variants, skus, selection)
	if err != nil {
		s.logger.Warn().Err(err).Int64("product_id", productID).Msg("selection rejected")
		return nil, err
	}

	return &res, nil
}

// ListSKUs retrieves a product's SKUs for the admin listing. A SKU whose
// combination references a variant or option that no longer exists is
// flagged as invalidated rather than repaired.
func (s *catalogService) ListSKUs(ctx context.Context, productID int64) ([]AdminSKU, error) {
	if _, err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list variants")
		return nil, fmt.Errorf("failed to list SKUs: %w", err)
	}

	skus, err := s.skuRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list SKUs")
		return nil, fmt.Errorf("failed to list SKUs: %w", err)
	}

	out := make([]AdminSKU, len(skus))
	for i, sku := range skus {
		out[i] = AdminSKU{
			SKU:         sku,
			Invalidated: !combinationResolves(variants, sku.Combination),
		}
	}
	return out, nil
}

// CreateSKU creates a single SKU.
func (s *catalogService) CreateSKU(ctx context.Context, input model.SKUInput) (*model.SKU, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "SKU code is required")
	}
	if _, err := s.requireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	sku, err := s.skuRepo.Create(ctx, input)
	if err != nil {
		if err == model.ErrDuplicateSKU {
			return nil, err
		}
		s.logger.Error().Err(err).
			Int64("product_id", input.ProductID).
			Str("sku", input.Code).
			Msg("failed to create SKU")
		return nil, fmt.Errorf("failed to create SKU: %w", err)
	}

	s.logger.Info().Int64("sku_id", sku.ID).Str("sku", sku.Code).Msg("SKU created")
	return sku, nil
}

// UpdateSKU applies a partial SKU update.
func (s *catalogService) UpdateSKU(ctx context.Context, id int64, update model.SKUUpdate) error {
	if update.Code != nil && strings.TrimSpace(*update.Code) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "SKU code cannot be empty")
	}

	if err := s.skuRepo.Update(ctx, id, update); err != nil {
		if err == model.ErrSKUNotFound || err == model.ErrDuplicateSKU {
			return err
		}
		s.logger.Error().Err(err).Int64("sku_id", id).Msg("failed to update SKU")
		return fmt.Errorf("failed to update SKU: %w", err)
	}

	s.logger.Info().Int64("sku_id", id).Msg("SKU updated")
	return nil
}

// DeleteSKU removes a SKU.
func (s *catalogService) DeleteSKU(ctx context.Context, id int64) error {
	if err := s.skuRepo.Delete(ctx, id); err != nil {
		if err == model.ErrSKUNotFound {
			return err
		}
		s.logger.Error().Err(err).Int64("sku_id", id).Msg("failed to delete SKU")
		return fmt.Errorf("failed to delete SKU: %w", err)
	}

	s.logger.Info().Int64("sku_id", id).Msg("SKU deleted")
	return nil
}

// ReplaceSKUs swaps a product's whole SKU set atomically.
func (s *catalogService) ReplaceSKUs(ctx context.Context, productID int64, inputs []model.SKUInput) ([]model.SKU, error) {
	if _, err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		if strings.TrimSpace(input.Code) == "" {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "SKU code is required")
		}
		key := catalog.Encode(catalog.Combination(input.Combination))
		if _, dup := seen[key]; dup {
			return nil, model.ErrDuplicateSKU
		}
		seen[key] = struct{}{}
	}

	skus, err := s.skuRepo.ReplaceForProduct(ctx, productID, inputs)
	if err != nil {
		if err == model.ErrDuplicateSKU {
			return nil, err
		}
		s.logger.Error().Err(err).
			Int64("product_id", productID).
			Int("sku_count", len(inputs)).
			Msg("failed to replace SKU set")
		return nil, fmt.Errorf("failed to replace SKUs: %w", err)
	}

	s.logger.Info().
		Int64("product_id", productID).
		Int("sku_count", len(skus)).
		Msg("SKU set replaced")

	return skus, nil
}

func (s *catalogService) requireProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// combinationResolves reports whether every pair in the combination still
// points at a live variant and option.
func combinationResolves(variants []model.Variant, c map[int64]int64) bool {
	for variantID, optionID := range c {
		found := false
		for i := range variants {
			if variants[i].ID != variantID {
				continue
			}
			for _, opt := range variants[i].Options {
				if opt.ID == optionID {
					found = true
					break
				}
			}
			break
		}
		if !found {
			return false
		}
	}
	return true
}
