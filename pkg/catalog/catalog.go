// Package catalog holds the purchasable items of the store.
package catalog

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"storefront/pkg/apperror"
)

const (
	// CodeLength is the exact length of a product code.
	CodeLength = 3
	// MaxNameLength is the longest accepted product name in characters.
	MaxNameLength = 49
)

// Item is a purchasable product.
type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewItem validates and returns an Item.
func NewItem(id, name string, price decimal.Decimal) (Item, error) {
	if !validCode(id) {
		return Item{}, apperror.Newf(apperror.InvalidArgument, "product code %q must be %d uppercase letters or digits", id, CodeLength)
	}
	if name == "" {
		return Item{}, apperror.New(apperror.InvalidArgument, "product name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return Item{}, apperror.Newf(apperror.InvalidArgument, "product name exceeds %d characters", MaxNameLength)
	}
	if price.IsNegative() {
		return Item{}, apperror.New(apperror.InvalidArgument, "product price cannot be negative")
	}
	return Item{ID: id, Name: name, Price: price}, nil
}

func validCode(id string) bool {
	if len(id) != CodeLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Catalog is an ordered lookup table of items. It is not safe for
// concurrent mutation; populate it before handing it to a session.
type Catalog struct {
	capacity int
	items    []Item
}

// New returns an empty catalog holding at most capacity items.
// A capacity of zero or less means unbounded.
func New(capacity int) *Catalog {
	return &Catalog{capacity: capacity}
}

// Add registers item.
func (c *Catalog) Add(item Item) error {
	if _, err := NewItem(item.ID, item.Name, item.Price); err != nil {
		return err
	}
	if c.capacity > 0 && len(c.items) >= c.capacity {
		return apperror.Newf(apperror.CapacityExceeded, "catalog is full (%d items)", c.capacity)
	}
	if _, ok := c.find(item.ID); ok {
		return apperror.Newf(apperror.InvalidArgument, "product code %s already registered", item.ID)
	}
	c.items = append(c.items, item)
	return nil
}

// FindByID returns the item with the given code.
func (c *Catalog) FindByID(code string) (Item, error) {
	if it, ok := c.find(code); ok {
		return it, nil
	}
	return Item{}, apperror.Newf(apperror.NotFound, "product code %s not found", code)
}

func (c *Catalog) find(code string) (Item, bool) {
	for _, it := range c.items {
		if it.ID == code {
			return it, true
		}
	}
	return Item{}, false
}

// List returns the items in registration order.
func (c *Catalog) List() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of registered items.
func (c *Catalog) Len() int {
	return len(c.items)
}
