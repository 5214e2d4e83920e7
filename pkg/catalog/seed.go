package catalog

import "github.com/shopspring/decimal"

// DefaultItems returns the store's standard product line.
func DefaultItems() []Item {
	return []Item{
		{ID: "LAP", Name: "Laptop", Price: decimal.NewFromInt(50000)},
		{ID: "PHN", Name: "Smartphone", Price: decimal.NewFromInt(20000)},
		{ID: "HDP", Name: "Headphones", Price: decimal.NewFromInt(3000)},
		{ID: "KEY", Name: "Keyboard", Price: decimal.NewFromInt(1500)},
		{ID: "MOU", Name: "Mouse", Price: decimal.NewFromInt(800)},
		{ID: "MON", Name: "Monitor", Price: decimal.NewFromInt(12000)},
		{ID: "TAB", Name: "Tablet", Price: decimal.NewFromInt(15000)},
		{ID: "SPK", Name: "Bluetooth Speaker", Price: decimal.NewFromInt(2500)},
		{ID: "POW", Name: "Power Bank", Price: decimal.NewFromInt(1800)},
		{ID: "USB", Name: "USB Flash Drive", Price: decimal.NewFromInt(500)},
		{ID: "HDD", Name: "External Hard Drive", Price: decimal.NewFromInt(4000)},
	}
}

// Seed adds items to c, stopping at the first failure.
func Seed(c *Catalog, items []Item) error {
	for _, it := range items {
		if err := c.Add(it); err != nil {
			return err
		}
	}
	return nil
}
