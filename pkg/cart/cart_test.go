package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/apperror"
	"storefront/pkg/catalog"
)

var (
	laptop = catalog.Item{ID: "LAP", Name: "Laptop", Price: decimal.NewFromInt(50000)}
	mouse  = catalog.Item{ID: "MOU", Name: "Mouse", Price: decimal.NewFromInt(800)}
	cable  = catalog.Item{ID: "CBL", Name: "Cable", Price: decimal.RequireFromString("0.10")}
)

func TestTotalSingleLine(t *testing.T) {
	for _, it := range catalog.DefaultItems() {
		for _, q := range []int{1, 2, 7, 1000} {
			c := New(0)
			_, err := c.AddItem(it, q)
			require.NoError(t, err)
			want := it.Price.Mul(decimal.NewFromInt(int64(q)))
			assert.True(t, c.Total().Equal(want), "%s x%d: got %s want %s", it.ID, q, c.Total(), want)
		}
	}
}

func TestAddItemMergesLines(t *testing.T) {
	a := New(0)
	_, _ = a.AddItem(mouse, 2)
	line, err := a.AddItem(mouse, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	require.Equal(t, 1, a.Len())
	assert.Equal(t, 5, a.Lines()[0].Quantity)

	b := New(0)
	_, _ = b.AddItem(mouse, 3)
	_, _ = b.AddItem(mouse, 2)
	assert.True(t, a.Total().Equal(b.Total()))
}

func TestAddItemRejectsNonPositive(t *testing.T) {
	c := New(0)
	_, _ = c.AddItem(laptop, 1)
	before := c.Total()

	for _, q := range []int{0, -1, math.MinInt} {
		_, err := c.AddItem(mouse, q)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
		_, err = c.AddItem(laptop, q)
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	}
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Total().Equal(before))
}

func TestAddItemCapacity(t *testing.T) {
	c := New(1)
	_, err := c.AddItem(laptop, 1)
	require.NoError(t, err)

	_, err = c.AddItem(mouse, 1)
	assert.ErrorIs(t, err, apperror.ErrCapacityExceeded)

	// merging into an existing line does not need a free slot
	_, err = c.AddItem(laptop, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestAddItemOverflow(t *testing.T) {
	c := New(0)
	_, err := c.AddItem(mouse, math.MaxInt)
	require.NoError(t, err)

	_, err = c.AddItem(mouse, 1)
	assert.ErrorIs(t, err, apperror.ErrOverflow)
	assert.Equal(t, math.MaxInt, c.Lines()[0].Quantity)
}

func TestTotalIsExact(t *testing.T) {
	c := New(0)
	for i := 0; i < 1000; i++ {
		_, err := c.AddItem(cable, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, "100.00", c.Total().StringFixed(2))
}

func TestLinesAreSnapshots(t *testing.T) {
	c := New(0)
	_, _ = c.AddItem(laptop, 1)
	_, _ = c.AddItem(mouse, 2)

	snap := c.Lines()
	snap[0].Quantity = 99
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
	require.Len(t, snap, 2)
	assert.Equal(t, "MOU", snap[1].Item.ID)
}

func TestInsertionOrder(t *testing.T) {
	c := New(0)
	_, _ = c.AddItem(mouse, 1)
	_, _ = c.AddItem(laptop, 1)
	_, _ = c.AddItem(mouse, 1)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "MOU", lines[0].Item.ID)
	assert.Equal(t, "LAP", lines[1].Item.ID)
}
