package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"licenseshop/internal/model"
)

// Combination assigns one option to each variant of a product, keyed by
// variant id.
type Combination map[int64]int64

// GeneratedCombination is one enumerated combination together with its
// deterministic display label and SKU code candidate.
type GeneratedCombination struct {
	Combination Combination `json:"combination"`
	Label       string      `json:"label"`
	Code        string      `json:"sku"`
}

// fragmentLen is how many leading characters of an option value contribute
// to the SKU code candidate.
const fragmentLen = 3

// Generate enumerates every combination that assigns exactly one option to
// each variant, in ascending variant position order. A variant with zero
// options makes the whole product yield no combinations. The result size is
// the product of the per-variant option counts.
//
// It is a pure function over the admin's current variant set and is re-run
// whenever variants or options change.
func Generate(productSlug string, variants []model.Variant) []GeneratedCombination {
	if len(variants) == 0 {
		return nil
	}

	ordered := sortedVariants(variants)
	for _, v := range ordered {
		if len(v.Options) == 0 {
			return nil
		}
	}

	var out []GeneratedCombination
	walk(ordered, 0, Combination{}, func(c Combination) {
		out = append(out, GeneratedCombination{
			Combination: c,
			Label:       Label(ordered, c),
			Code:        CodeCandidate(productSlug, ordered, c),
		})
	})
	return out
}

func walk(variants []model.Variant, idx int, current Combination, emit func(Combination)) {
	if idx >= len(variants) {
		c := make(Combination, len(current))
		for k, v := range current {
			c[k] = v
		}
		emit(c)
		return
	}

	v := variants[idx]
	for _, opt := range v.Options {
		current[v.ID] = opt.ID
		walk(variants, idx+1, current, emit)
	}
	delete(current, v.ID)
}

// Label renders a combination as "{VariantName}: {OptionValue}" segments
// joined by " | ", in variant position order. Variants the combination does
// not cover are skipped.
func Label(variants []model.Variant, c Combination) string {
	segments := make([]string, 0, len(c))
	for _, v := range sortedVariants(variants) {
		optionID, ok := c[v.ID]
		if !ok {
			continue
		}
		segments = append(segments, fmt.Sprintf("%s: %s", v.Name, optionValue(v, optionID)))
	}
	return strings.Join(segments, " | ")
}

// CodeCandidate derives the deterministic SKU code for a combination:
// the product slug followed by the truncated upper-cased option values,
// e.g. "premium-vpn-1 M-PRO". A missing slug falls back to "PROD".
func CodeCandidate(productSlug string, variants []model.Variant, c Combination) string {
	if productSlug == "" {
		productSlug = "PROD"
	}

	fragments := make([]string, 0, len(c))
	for _, v := range sortedVariants(variants) {
		optionID, ok := c[v.ID]
		if !ok {
			continue
		}
		fragments = append(fragments, codeFragment(optionValue(v, optionID)))
	}
	return productSlug + "-" + strings.Join(fragments, "-")
}

func codeFragment(value string) string {
	runes := []rune(value)
	if len(runes) == 0 {
		return "XXX"
	}
	if len(runes) > fragmentLen {
		runes = runes[:fragmentLen]
	}
	return strings.ToUpper(string(runes))
}

func optionValue(v model.Variant, optionID int64) string {
	for _, opt := range v.Options {
		if opt.ID == optionID {
			return opt.Value
		}
	}
	return "N/A"
}

// sortedVariants returns the variants ordered by position, each with its
// options ordered by position. The input slices are not modified.
func sortedVariants(variants []model.Variant) []model.Variant {
	ordered := make([]model.Variant, len(variants))
	copy(ordered, variants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	for i := range ordered {
		opts := make([]model.VariantOption, len(ordered[i].Options))
		copy(opts, ordered[i].Options)
		sort.SliceStable(opts, func(a, b int) bool {
			return opts[a].Position < opts[b].Position
		})
		ordered[i].Options = opts
	}
	return ordered
}

// Equal reports whether two combinations cover the same variants with the
// same options. Comparison is structural, never via serialized form.
func Equal(a, b Combination) bool {
	if len(a) != len(b) {
		return false
	}
	for variantID, optionID := range a {
		if b[variantID] != optionID {
			return false
		}
	}
	return true
}

// Encode serialises a combination as JSON with keys in ascending variant-id
// order so the stored text is stable and comparable.
func Encode(c Combination) string {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	b.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%d", strconv.FormatInt(id, 10), c[id])
	}
	b.WriteByte('}')
	return b.String()
}

// Decode parses a combination stored by Encode. It also accepts option ids
// serialised as strings, which older records used.
func Decode(s string) (Combination, error) {
	if s == "" {
		return Combination{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode combination: %w", err)
	}

	c := make(Combination, len(raw))
	for k, v := range raw {
		variantID, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid variant id %q in combination: %w", k, err)
		}
		var optionID int64
		switch t := v.(type) {
		case json.Number:
			optionID, err = t.Int64()
		case string:
			optionID, err = strconv.ParseInt(t, 10, 64)
		default:
			err = fmt.Errorf("unexpected option id type %T", v)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid option id for variant %d: %w", variantID, err)
		}
		c[variantID] = optionID
	}
	return c, nil
}
