package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/apperror"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		index int
		name  string
	}{
		{1, "Cash"},
		{2, "Credit/Debit Card"},
		{3, "GCash"},
	}
	for _, tt := range tests {
		m, err := Select(tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.name, m.Name())
		assert.Equal(t, tt.name, Methods()[tt.index-1].Name())
	}
}

func TestSelectInvalid(t *testing.T) {
	for _, idx := range []int{-1, 0, 4, 100} {
		m, err := Select(idx)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, apperror.ErrInvalidSelection)
	}
}

func TestCharge(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(51600)

	for _, m := range Methods() {
		rec, err := m.Charge(ctx, amount)
		require.NoError(t, err)
		assert.Equal(t, m.Name(), rec.Method)
		assert.True(t, rec.Amount.Equal(amount))
	}

	rec, err := GCash{}.Charge(ctx, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "GCash", rec.Method)
}

func TestChargeNegative(t *testing.T) {
	_, err := Cash{}.Charge(context.Background(), decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
