// Package file writes the order log to an append-only text file.
package file

import (
	"context"
	"os"
	"sync"

	"storefront/pkg/apperror"
	"storefront/pkg/orderlog"
)

// Sink appends one line per order to a file opened on first use.
type Sink struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// New returns a sink for path. The file is not touched until Open.
func New(path string) *Sink {
	return &Sink{path: path}
}

// Open opens the file for appending, creating it if needed. It is a no-op once
// the file is open; a failed attempt is retried on the next call.
func (s *Sink) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open()
}

func (s *Sink) open() error {
	if s.f != nil {
		return nil
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "open order log")
	}
	s.f = f
	return nil
}

// Record appends the order line and syncs it to disk.
func (s *Sink) Record(ctx context.Context, orderID int, paymentMethod string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.f.WriteString(orderlog.FormatLine(orderID, paymentMethod) + "\n"); err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "write order log")
	}
	if err := s.f.Sync(); err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "sync order log")
	}
	return nil
}

// Close closes the file if it was opened.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
