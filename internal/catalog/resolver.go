package catalog

import (
	"licenseshop/internal/model"
)

// Resolution is the outcome of pricing a selection. When no stored SKU
// matches, Price falls back to the product's base price and Priced is false
// so admin screens can surface the unpriced-combination state; Label and
// Code are always synthesized so the combination stays addressable.
type Resolution struct {
	Price  int64      `json:"price"`
	SKU    *model.SKU `json:"sku,omitempty"`
	Priced bool       `json:"priced"`
	Label  string     `json:"label"`
	Code   string     `json:"code"`
}

// Resolve prices a selection against a product's stored SKUs. Matching is
// structural set equality of (variant id, option id) pairs, never
// comparison of serialized text, so the match is independent of key order
// on either side.
//
// A selection referencing a variant or option the product does not own is a
// configuration error and is rejected rather than silently priced at base.
func Resolve(product model.Product, variants []model.Variant, skus []model.SKU, selection Combination) (Resolution, error) {
	if err := validateSelection(variants, selection); err != nil {
		return Resolution{}, err
	}

	res := Resolution{
		Price: product.BasePrice,
		Label: Label(variants, selection),
		Code:  CodeCandidate(product.Slug, variants, selection),
	}

	for i := range skus {
		if skus[i].ProductID != product.ID {
			continue
		}
		if Equal(Combination(skus[i].Combination), selection) {
			res.Price = skus[i].Price
			res.SKU = &skus[i]
			res.Priced = true
			res.Code = skus[i].Code
			break
		}
	}
	return res, nil
}

func validateSelection(variants []model.Variant, selection Combination) error {
	for variantID, optionID := range selection {
		v := findVariant(variants, variantID)
		if v == nil {
			return model.ErrUnknownCombination
		}
		if !hasOption(*v, optionID) {
			return model.ErrUnknownCombination
		}
	}
	return nil
}

func findVariant(variants []model.Variant, id int64) *model.Variant {
	for i := range variants {
		if variants[i].ID == id {
			return &variants[i]
		}
	}
	return nil
}

func hasOption(v model.Variant, optionID int64) bool {
	for _, opt := range v.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
