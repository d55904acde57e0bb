package cart

import (
	"sync"
	"testing"

	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var book = domain.Product{ID: "p1", Price: 6, Title: "book"}

func TestStoreAddItem(t *testing.T) {
	s := NewStore()

	snap := s.AddItem(book)

	assert.Equal(t, uint64(1), snap.Revision)
	require.Len(t, snap.State.Items, 1)
	assert.Equal(t, domain.CartItem{ID: "p1", Price: 6, Quantity: 1, TotalPrice: 6, Name: "book"}, snap.State.Items[0])
	assert.Equal(t, 1, snap.State.TotalQuantity)

	snap = s.AddItem(book)
	assert.Equal(t, uint64(2), snap.Revision)
	assert.Equal(t, 2, snap.State.Items[0].Quantity)
	assert.Equal(t, 12.0, snap.State.Items[0].TotalPrice)
}

func TestStoreRemoveMissingDoesNotPublish(t *testing.T) {
	s := NewStore()
	s.AddItem(book)

	var published []Snapshot
	s.Subscribe(func(snap Snapshot) { published = append(published, snap) })

	snap, err := s.RemoveItem("missing")
	require.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Equal(t, uint64(1), snap.Revision)
	assert.Empty(t, published)
	assert.Equal(t, 1, s.State().TotalQuantity)
}

func TestStoreRemoveItem(t *testing.T) {
	s := NewStore()
	s.AddItem(book)
	s.AddItem(book)

	snap, err := s.RemoveItem("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.State.Items[0].Quantity)

	snap, err = s.RemoveItem("p1")
	require.NoError(t, err)
	assert.Empty(t, snap.State.Items)
	assert.Equal(t, 0, snap.State.TotalQuantity)
	assert.Equal(t, uint64(4), snap.Revision)
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()
	var revisions []uint64
	unsubscribe := s.Subscribe(func(snap Snapshot) { revisions = append(revisions, snap.Revision) })

	s.AddItem(book)
	_, err := s.RemoveItem("p1")
	require.NoError(t, err)
	unsubscribe()
	s.AddItem(book)

	assert.Equal(t, []uint64{1, 2}, revisions)
}

func TestStoreSnapshotsAreCopies(t *testing.T) {
	s := NewStore()
	s.AddItem(book)

	snap := s.Snapshot()
	snap.State.Items[0].Quantity = 99

	assert.Equal(t, 1, s.State().Items[0].Quantity)
}

func TestStoreConcurrentAdds(t *testing.T) {
	s := NewStore()
	var seen sync.Map
	s.Subscribe(func(snap Snapshot) { seen.Store(snap.Revision, true) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(book)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, uint64(50), snap.Revision)
	assert.Equal(t, 50, snap.State.TotalQuantity)
	require.NoError(t, snap.State.Validate())
	for rev := uint64(1); rev <= 50; rev++ {
		_, ok := seen.Load(rev)
		assert.True(t, ok, "revision %d not published", rev)
	}
}
