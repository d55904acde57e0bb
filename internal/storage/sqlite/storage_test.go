package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "kv.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.Error(t, err)
}

func TestPutAndGet(t *testing.T) {
	s := newTestStorage(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "cart", []byte(`{"items":[],"totalQuantity":0}`)))

	doc, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, "cart", doc.Key)
	require.JSONEq(t, `{"items":[],"totalQuantity":0}`, string(doc.Body))
	require.True(t, fixed.Equal(doc.UpdatedAt))
}

func TestPutReplaces(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "cart", []byte(`1`)))
	require.NoError(t, s.Put(ctx, "cart", []byte(`2`)))

	doc, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, "2", string(doc.Body))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"cart"}, keys)
}

func TestGetMissing(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, "b", []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, keys)
}

func TestInvalidKeys(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Put(ctx, "", []byte(`{}`)), ErrInvalidKey)
	_, err := s.Get(ctx, " ")
	require.ErrorIs(t, err, ErrInvalidKey)
	require.ErrorIs(t, s.Delete(ctx, ""), ErrInvalidKey)
}

func TestDataSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "cart", []byte(`{"totalQuantity":3}`)))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer s.Close()
	doc, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.JSONEq(t, `{"totalQuantity":3}`, string(doc.Body))
}
