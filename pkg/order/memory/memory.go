// Package memory implements an in-memory, append-only order ledger.
package memory

import (
	"context"
	"sync"

	"storefront/pkg/apperror"
	"storefront/pkg/order"
)

// Ledger provides an in-memory implementation of order.Ledger.
type Ledger struct {
	mu       sync.RWMutex
	capacity int
	orders   []order.Order
}

// New creates a ledger holding at most capacity orders. A capacity of zero or
// less means unbounded.
func New(capacity int) *Ledger {
	return &Ledger{capacity: capacity}
}

// Append stores the order. Identifiers must be strictly increasing.
func (l *Ledger) Append(ctx context.Context, o order.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.capacity > 0 && len(l.orders) >= l.capacity {
		return apperror.Newf(apperror.LedgerFull, "order history is full (%d orders)", l.capacity)
	}
	if n := len(l.orders); n > 0 && o.ID <= l.orders[n-1].ID {
		return apperror.Newf(apperror.InvalidArgument, "order id %d is not after %d", o.ID, l.orders[n-1].ID)
	}
	l.orders = append(l.orders, o.Clone())
	return nil
}

// Get retrieves an order by ID.
func (l *Ledger) Get(ctx context.Context, id int) (order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, o := range l.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return order.Order{}, order.ErrNotFound
}

// List returns all orders in commit order.
func (l *Ledger) List(ctx context.Context) ([]order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]order.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

// Count returns the number of stored orders.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders), nil
}
