// Package cart provides the Cart Store: the single owner of the cart state.
package cart

import (
	"sort"
	"sync"

	"github.com/cristianoliveira/shopcart/internal/domain"
)

// Snapshot is an immutable view of the cart at a given revision.
type Snapshot struct {
	// Revision is 0 for the initial state and increases by one per mutation.
	Revision uint64
	State    domain.CartState
}

// Listener receives every published snapshot.
type Listener func(Snapshot)

// Store holds the cart state and publishes a snapshot after each mutation.
type Store struct {
	mu        sync.Mutex
	state     domain.CartState
	revision  uint64
	listeners map[int]Listener
	nextID    int
	// publishMu serializes delivery so listeners see revisions in order.
	publishMu sync.Mutex
}

// NewStore creates a store holding an empty cart.
func NewStore() *Store {
	return NewStoreWithState(domain.NewCartState())
}

// NewStoreWithState creates a store holding initial at revision 0.
func NewStoreWithState(initial domain.CartState) *Store {
	if initial.Items == nil {
		initial.Items = []domain.CartItem{}
	}
	return &Store{
		state:     initial.Clone(),
		listeners: make(map[int]Listener),
	}
}

// AddItem adds one unit of product to the cart.
func (s *Store) AddItem(product domain.Product) Snapshot {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.state = domain.AddItem(s.state, product)
	s.revision++
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap
}

// RemoveItem removes one unit of id from the cart. Removing an item that is
// not in the cart returns domain.ErrItemNotFound and publishes nothing.
func (s *Store) RemoveItem(id string) (Snapshot, error) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	next, err := domain.RemoveItem(s.state, id)
	if err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}
	s.state = next
	s.revision++
	snap, listeners := s.snapshotLocked(), s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, snap)
	return snap, nil
}

// Snapshot returns a copy of the current state and its revision.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns a copy of the current cart state.
func (s *Store) State() domain.CartState {
	return s.Snapshot().State
}

// Subscribe registers fn for future snapshots and returns a function that
// removes it. Listeners run outside the store lock, in mutation order, and
// must not mutate the store synchronously.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Revision: s.revision, State: s.state.Clone()}
}

func (s *Store) listenersLocked() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = s.listeners[id]
	}
	return out
}

func notify(listeners []Listener, snap Snapshot) {
	for _, fn := range listeners {
		fn(Snapshot{Revision: snap.Revision, State: snap.State.Clone()})
	}
}
