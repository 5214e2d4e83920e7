package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/apperror"
	"storefront/pkg/orderlog"
)

var _ orderlog.Sink = (*Sink)(nil)

func TestRecordAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.log")
	require.NoError(t, os.WriteFile(path, []byte("[ORDER #0] Paid with Cash\n"), 0o644))

	s := New(path)
	require.NoError(t, s.Record(ctx, 1, "Cash"))
	require.NoError(t, s.Record(ctx, 2, "Credit/Debit Card"))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[ORDER #0] Paid with Cash\n[ORDER #1] Paid with Cash\n[ORDER #2] Paid with Credit/Debit Card\n",
		string(data))
}

func TestOpenIsLazy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	s := New(path)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Open(context.Background()))
	require.NoError(t, s.Open(context.Background()))
	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestOpenFailure(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing", "orders.log"))

	err := s.Open(context.Background())
	assert.ErrorIs(t, err, apperror.ErrSinkUnavailable)

	err = s.Record(context.Background(), 1, "GCash")
	assert.ErrorIs(t, err, apperror.ErrSinkUnavailable)
}
