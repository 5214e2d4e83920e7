// Package orderlog defines the write-only sink that records committed
// orders outside the process.
package orderlog

import (
	"context"
	"fmt"
)

// Sink receives one record per committed order. Open is idempotent and is
// called lazily before the first Record; Close releases the underlying handle.
type Sink interface {
	Open(ctx context.Context) error
	Record(ctx context.Context, orderID int, paymentMethod string) error
	Close() error
}

// FormatLine renders a record the way the order log stores it.
func FormatLine(orderID int, paymentMethod string) string {
	return fmt.Sprintf("[ORDER #%d] Paid with %s", orderID, paymentMethod)
}

// Discard is a Sink that drops every record.
type Discard struct{}

func (Discard) Open(context.Context) error                { return nil }
func (Discard) Record(context.Context, int, string) error { return nil }
func (Discard) Close() error                              { return nil }
