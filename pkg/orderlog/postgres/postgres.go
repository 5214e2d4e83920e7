package postgres

import (
	"context"
	"database/sql"
	"sync"

	"storefront/pkg/apperror"
)

const (
	createTable = "CREATE TABLE IF NOT EXISTS order_log (order_id INT NOT NULL, payment_method TEXT NOT NULL, recorded_at TIMESTAMPTZ NOT NULL DEFAULT now())"
	insertRow   = "INSERT INTO order_log (order_id, payment_method) VALUES ($1, $2)"
)

// Sink records orders in a PostgreSQL order_log table.
type Sink struct {
	db *sql.DB

	mu    sync.Mutex
	ready bool
}

// New creates a PostgreSQL sink. The caller opens db (driver "postgres") and
// the sink takes ownership of it.
func New(db *sql.DB) *Sink {
	return &Sink{db: db}
}

// Open verifies the connection and creates the order_log table on first use.
func (s *Sink) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "connect order log database")
	}
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "create order_log table")
	}
	s.ready = true
	return nil
}

// Record inserts a row for the order.
func (s *Sink) Record(ctx context.Context, orderID int, paymentMethod string) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, insertRow, orderID, paymentMethod); err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "insert order log row")
	}
	return nil
}

// Close closes the database handle.
func (s *Sink) Close() error {
	return s.db.Close()
}
