package order

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/pkg/apperror"
	"storefront/pkg/cart"
)

// Order represents a completed purchase.
type Order struct {
	ID            int             `json:"id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Lines         []cart.Line     `json:"lines"`
}

// New snapshots lines into an Order. The lines are copied.
func New(id int, total decimal.Decimal, paymentMethod string, lines []cart.Line) Order {
	return Order{
		ID:            id,
		Total:         total,
		PaymentMethod: paymentMethod,
		Lines:         cart.CloneLines(lines),
	}
}

// Clone returns a deep copy of o.
func (o Order) Clone() Order {
	o.Lines = cart.CloneLines(o.Lines)
	return o
}

// Ledger defines behavior for keeping committed orders. Implementations are
// append-only.
type Ledger interface {
	Append(ctx context.Context, o Order) error
	Get(ctx context.Context, id int) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Count(ctx context.Context) (int, error)
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = apperror.New(apperror.NotFound, "order not found")
