package cart

import (
	"fmt"
	"sort"
	"strings"

	"licenseshop/internal/model"
)

// Selection records one chosen option on a configured product. Variant and
// option names are captured alongside the ids so cart lines stay readable
// after catalog edits.
type Selection struct {
	VariantID   int64  `json:"variantId"`
	VariantName string `json:"variantName"`
	OptionID    int64  `json:"optionId"`
	OptionValue string `json:"optionValue"`
}

// Line is one cart entry: a product, its configuration and the unit price
// resolved for that configuration at add time. The price is a snapshot so
// later catalog changes never silently alter an open cart.
type Line struct {
	ProductID   int64       `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	UnitPrice   int64       `json:"unitPrice"`
	Selections  []Selection `json:"selectedVariants,omitempty"`
}

// Key returns the Line's identity key. Two lines with the same product and
// key are the same purchasable item.
func (l Line) Key() string {
	return Key(l.Selections)
}

// Key derives the canonical identity key for a set of selections: each pair
// formatted as "{variantId}:{optionId}", sorted lexicographically, joined
// with "|". Sorting makes the key independent of the order the customer
// picked the options in; an empty selection yields "".
func Key(selections []Selection) string {
	if len(selections) == 0 {
		return ""
	}
	parts := make([]string, len(selections))
	for i, s := range selections {
		parts[i] = fmt.Sprintf("%d:%d", s.VariantID, s.OptionID)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// Cart is an explicit state container for a customer's cart. It holds no
// global state and performs no I/O; durability is the caller's concern via
// a Store (load once, mutate, save after every mutation).
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Restore builds a cart from previously persisted lines.
func Restore(lines []Line) *Cart {
	c := &Cart{lines: make([]Line, len(lines))}
	copy(c.lines, lines)
	return c
}

// Add merges the configured product into the cart. An existing line with
// the same product id and identity key gets its quantity incremented by
// one; otherwise a new line with quantity 1 is appended. unitPrice is the
// price already resolved for this specific configuration.
func (c *Cart) Add(product model.Product, selections []Selection, unitPrice int64) {
	key := Key(selections)
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID && c.lines[i].Key() == key {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    1,
		UnitPrice:   unitPrice,
		Selections:  selections,
	})
}

// UpdateQuantity sets the quantity of the line matching productID and key.
// A nil key matches every line for the product. Quantity at or below zero
// removes the line instead.
func (c *Cart) UpdateQuantity(productID int64, quantity int, key *string) {
	if quantity <= 0 {
		c.Remove(productID, key)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if key != nil && c.lines[i].Key() != *key {
			continue
		}
		c.lines[i].Quantity = quantity
	}
}

// Remove deletes the line matching productID and key. A nil key removes
// every line for the product regardless of configuration, which is the
// "remove this product entirely" operation.
func (c *Cart) Remove(productID int64, key *string) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID == productID && (key == nil || l.Key() == *key) {
			continue
		}
		kept = append(kept, l)
	}
	c.lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Total is the cart total: the sum of each line's captured unit price times
// its quantity.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Lines returns a copy of the cart's lines, the unit of persistence.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
