// Package payment provides the payment methods accepted at checkout.
package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/pkg/apperror"
)

// Record describes a completed charge.
type Record struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Method finalizes an amount. The set of implementations is closed:
// Cash, Card and GCash.
type Method interface {
	Name() string
	Charge(ctx context.Context, amount decimal.Decimal) (Record, error)
	sealed()
}

// Cash is payment in hand.
type Cash struct{}

// Card is a credit or debit card payment.
type Card struct{}

// GCash is a GCash wallet payment.
type GCash struct{}

func (Cash) Name() string  { return "Cash" }
func (Card) Name() string  { return "Credit/Debit Card" }
func (GCash) Name() string { return "GCash" }

func (m Cash) Charge(ctx context.Context, amount decimal.Decimal) (Record, error) {
	return charge(m, amount)
}

func (m Card) Charge(ctx context.Context, amount decimal.Decimal) (Record, error) {
	return charge(m, amount)
}

func (m GCash) Charge(ctx context.Context, amount decimal.Decimal) (Record, error) {
	return charge(m, amount)
}

func (Cash) sealed()  {}
func (Card) sealed()  {}
func (GCash) sealed() {}

// No settlement happens here; a charge only records how the amount was paid.
func charge(m Method, amount decimal.Decimal) (Record, error) {
	if amount.IsNegative() {
		return Record{}, apperror.Newf(apperror.InvalidArgument, "cannot charge negative amount %s", amount.StringFixed(2))
	}
	return Record{Method: m.Name(), Amount: amount}, nil
}

// Methods lists the selectable methods; index i+1 selects Methods()[i].
func Methods() []Method {
	return []Method{Cash{}, Card{}, GCash{}}
}

// Select returns the method for a 1-based menu index.
func Select(index int) (Method, error) {
	switch index {
	case 1:
		return Cash{}, nil
	case 2:
		return Card{}, nil
	case 3:
		return GCash{}, nil
	default:
		return nil, apperror.Newf(apperror.InvalidSelection, "payment method %d is not one of 1-3", index)
	}
}
