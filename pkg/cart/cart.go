// Package cart accumulates the items picked during a shopping session.
package cart

import (
	"math"

	"github.com/shopspring/decimal"

	"storefront/pkg/apperror"
	"storefront/pkg/catalog"
)

// Line is one aggregated item and quantity.
type Line struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
}

// Subtotal returns price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per item id, in insertion order.
type Cart struct {
	maxLines int
	lines    []Line
}

// New returns an empty cart limited to maxLines distinct items.
// A limit of zero or less means unbounded.
func New(maxLines int) *Cart {
	return &Cart{maxLines: maxLines}
}

// AddItem adds quantity units of item, merging with an existing line for the
// same id. The cart is unchanged when an error is returned.
func (c *Cart) AddItem(item catalog.Item, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, apperror.Newf(apperror.InvalidArgument, "quantity must be positive, got %d", quantity)
	}
	for i := range c.lines {
		if c.lines[i].Item.ID != item.ID {
			continue
		}
		if c.lines[i].Quantity > math.MaxInt-quantity {
			return Line{}, apperror.Newf(apperror.Overflow, "quantity of %s would exceed the maximum value", item.ID)
		}
		c.lines[i].Quantity += quantity
		return c.lines[i], nil
	}
	if c.maxLines > 0 && len(c.lines) >= c.maxLines {
		return Line{}, apperror.Newf(apperror.CapacityExceeded, "shopping cart is full (%d items)", c.maxLines)
	}
	l := Line{Item: item, Quantity: quantity}
	c.lines = append(c.lines, l)
	return l, nil
}

// Total sums every line's subtotal without intermediate rounding.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len returns the number of distinct items.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	return CloneLines(c.lines)
}

// Clear empties the cart. Earlier snapshots are unaffected.
func (c *Cart) Clear() {
	c.lines = nil
}

// CloneLines returns an independent copy of lines.
func CloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
