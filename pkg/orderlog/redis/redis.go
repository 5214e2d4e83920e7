// Package redis pushes order log lines onto a Redis list.
package redis

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"storefront/pkg/apperror"
	"storefront/pkg/orderlog"
)

// DefaultKey is the list that receives order lines.
const DefaultKey = "orders:log"

// Sink appends formatted order lines to a Redis list with RPUSH.
type Sink struct {
	client *goredis.Client
	key    string

	mu    sync.Mutex
	ready bool
}

// New returns a sink writing to key on client. An empty key uses DefaultKey.
func New(client *goredis.Client, key string) *Sink {
	if key == "" {
		key = DefaultKey
	}
	return &Sink{client: client, key: key}
}

// Open pings the server once.
func (s *Sink) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "connect order log redis")
	}
	s.ready = true
	return nil
}

// Record pushes the order line.
func (s *Sink) Record(ctx context.Context, orderID int, paymentMethod string) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	if err := s.client.RPush(ctx, s.key, orderlog.FormatLine(orderID, paymentMethod)).Err(); err != nil {
		return apperror.Wrap(apperror.SinkUnavailable, err, "push order log line")
	}
	return nil
}

// Close closes the client.
func (s *Sink) Close() error {
	return s.client.Close()
}
