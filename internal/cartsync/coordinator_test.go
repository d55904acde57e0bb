package cartsync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/shopcart/internal/cart"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/remote"
	"github.com/cristianoliveira/shopcart/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var book = domain.Product{ID: "p1", Price: 6, Title: "book"}

// fakeSender records calls and returns err.
type fakeSender struct {
	mu     sync.Mutex
	err    error
	states []domain.CartState
	onPut  func(ctx context.Context)
}

func (f *fakeSender) PutCart(ctx context.Context, state domain.CartState) error {
	if f.onPut != nil {
		f.onPut(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, state)
	return f.err
}

func (f *fakeSender) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.states)
}

// recorder collects the notification statuses a ui.Store goes through.
type recorder struct {
	mu       sync.Mutex
	statuses []ui.Status
}

func record(store *ui.Store) *recorder {
	r := &recorder{}
	store.Subscribe(func(st ui.State) {
		if st.Notification == nil {
			return
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		r.statuses = append(r.statuses, st.Notification.Status)
	})
	return r
}

func (r *recorder) get() []ui.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ui.Status(nil), r.statuses...)
}

func TestFirstObservationIsNotSent(t *testing.T) {
	uiStore := ui.NewStore()
	sender := &fakeSender{}
	c := New(uiStore, sender)
	store := cart.NewStore()

	_, sent := c.Sync(context.Background(), store.Snapshot())

	assert.False(t, sent)
	assert.Zero(t, sender.calls())
	assert.Nil(t, uiStore.Notification())
}

func TestEveryLaterDistinctSnapshotIsSent(t *testing.T) {
	uiStore := ui.NewStore()
	sender := &fakeSender{}
	c := New(uiStore, sender)
	store := cart.NewStore()

	c.Observe(store.Snapshot())

	snap := store.AddItem(book)
	_, sent := c.Sync(context.Background(), snap)
	assert.True(t, sent)

	_, sent = c.Sync(context.Background(), snap)
	assert.False(t, sent, "same revision must not be resent")

	snap, err := store.RemoveItem("p1")
	require.NoError(t, err)
	_, sent = c.Sync(context.Background(), snap)
	assert.True(t, sent)

	require.Equal(t, 2, sender.calls())
	assert.Equal(t, 1, sender.states[0].TotalQuantity)
	assert.Equal(t, 0, sender.states[1].TotalQuantity)
}

func TestSuccessfulSendNotificationSequence(t *testing.T) {
	uiStore := ui.NewStore()
	rec := record(uiStore)
	sender := &fakeSender{}
	sender.onPut = func(context.Context) {
		n := uiStore.Notification()
		require.NotNil(t, n)
		assert.Equal(t, ui.StatusPending, n.Status, "pending must be visible before the network call")
	}
	c := New(uiStore, sender)
	store := cart.NewStore()
	c.Observe(store.Snapshot())

	res, sent := c.Sync(context.Background(), store.AddItem(book))

	require.True(t, sent)
	require.NoError(t, res.Err)
	assert.Equal(t, []ui.Status{ui.StatusPending, ui.StatusSuccess}, rec.get())
	assert.Equal(t, &ui.Notification{Status: ui.StatusSuccess, Title: SuccessTitle, Message: SuccessMessage}, uiStore.Notification())
}

func TestServerErrorNotificationSequence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	uiStore := ui.NewStore()
	rec := record(uiStore)
	c := New(uiStore, remote.NewClient(srv.URL+"/cart.json", remote.WithHTTPClient(srv.Client())))
	store := cart.NewStore()
	c.Observe(store.Snapshot())

	res, sent := c.Sync(context.Background(), store.AddItem(book))

	require.True(t, sent)
	assert.ErrorIs(t, res.Err, ErrSendFailed)
	assert.Equal(t, []ui.Status{ui.StatusPending, ui.StatusError}, rec.get())
	assert.Equal(t, &ui.Notification{Status: ui.StatusError, Title: ErrorTitle, Message: ErrorMessage}, uiStore.Notification())
}

func TestArbitrarySenderErrorsAreWrapped(t *testing.T) {
	uiStore := ui.NewStore()
	boom := errors.New("boom")
	c := New(uiStore, &fakeSender{err: boom})
	store := cart.NewStore()
	c.Observe(store.Snapshot())

	res, _ := c.Sync(context.Background(), store.AddItem(book))

	assert.ErrorIs(t, res.Err, ErrSendFailed)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, ui.StatusError, uiStore.Notification().Status)
}

func TestStaleCompletionIsDropped(t *testing.T) {
	uiStore := ui.NewStore()
	sender := &fakeSender{}
	c := New(uiStore, sender)
	store := cart.NewStore()
	c.Observe(store.Snapshot())

	first, ok := c.Observe(store.AddItem(book))
	require.True(t, ok)
	second, ok := c.Observe(store.AddItem(book))
	require.True(t, ok)
	assert.Greater(t, second.Seq, first.Seq)

	assert.True(t, c.Complete(c.Run(context.Background(), second)))
	assert.Equal(t, ui.StatusSuccess, uiStore.Notification().Status)

	sender.err = errors.New("late failure")
	assert.False(t, c.Complete(c.Run(context.Background(), first)))
	assert.Equal(t, ui.StatusSuccess, uiStore.Notification().Status, "stale failure must not overwrite newer success")
}

func TestSendTimeout(t *testing.T) {
	uiStore := ui.NewStore()
	sender := &fakeSender{}
	sender.onPut = func(ctx context.Context) {
		<-ctx.Done()
		sender.mu.Lock()
		sender.err = ctx.Err()
		sender.mu.Unlock()
	}
	c := New(uiStore, sender, WithSendTimeout(20*time.Millisecond))
	store := cart.NewStore()
	c.Observe(store.Snapshot())

	res, _ := c.Sync(context.Background(), store.AddItem(book))

	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.ErrorIs(t, res.Err, ErrSendFailed)
	assert.Equal(t, ui.StatusError, uiStore.Notification().Status)
}

func TestRequestIDIsPropagated(t *testing.T) {
	var got string
	sender := &fakeSender{onPut: func(ctx context.Context) { got, _ = remote.RequestIDFromContext(ctx) }}
	c := New(ui.NewStore(), sender, WithRequestIDFunc(func() string { return "fixed-id" }))
	store := cart.NewStore()
	c.Observe(store.Snapshot())

	res, _ := c.Sync(context.Background(), store.AddItem(book))

	assert.Equal(t, "fixed-id", res.RequestID)
	assert.Equal(t, "fixed-id", got)
}

func TestInstancesDoNotShareInitialLoad(t *testing.T) {
	store := cart.NewStore()
	a := New(ui.NewStore(), &fakeSender{})
	b := New(ui.NewStore(), &fakeSender{})

	_, sentA := a.Sync(context.Background(), store.Snapshot())
	_, sentB := b.Sync(context.Background(), store.Snapshot())

	assert.False(t, sentA)
	assert.False(t, sentB)
}

func TestAttach(t *testing.T) {
	uiStore := ui.NewStore()
	rec := record(uiStore)
	release := make(chan struct{})
	sender := &fakeSender{onPut: func(context.Context) { <-release }}
	c := New(uiStore, sender)
	store := cart.NewStore()

	detach := c.Attach(context.Background(), store)
	store.AddItem(book)
	store.AddItem(book)
	close(release)
	c.Wait()
	detach()
	store.AddItem(book)
	c.Wait()

	assert.Equal(t, 2, sender.calls())
	assert.Equal(t, uint64(2), c.LatestSeq())
	statuses := rec.get()
	require.NotEmpty(t, statuses)
	assert.Equal(t, []ui.Status{ui.StatusPending, ui.StatusPending}, statuses[:2])
	assert.Equal(t, ui.StatusSuccess, statuses[len(statuses)-1])
	assert.Len(t, statuses, 3, "only the latest send may complete")
}

// lateSource publishes one snapshot during Subscribe and exposes a newer one
// through Snapshot before its listener delivery has run.
type lateSource struct {
	first, current cart.Snapshot
	listener       cart.Listener
}

func (s *lateSource) Snapshot() cart.Snapshot { return s.current }

func (s *lateSource) Subscribe(fn cart.Listener) func() {
	s.listener = fn
	fn(s.first)
	return func() {}
}

func TestAttachSendsSnapshotAheadOfDelivery(t *testing.T) {
	uiStore := ui.NewStore()
	sender := &fakeSender{}
	c := New(uiStore, sender)

	one := domain.AddItem(domain.NewCartState(), book)
	two := domain.AddItem(one, book)
	src := &lateSource{
		first:   cart.Snapshot{Revision: 1, State: one},
		current: cart.Snapshot{Revision: 2, State: two},
	}

	detach := c.Attach(context.Background(), src)
	defer detach()
	src.listener(src.current)
	c.Wait()

	require.Equal(t, 1, sender.calls())
	assert.Equal(t, 2, sender.states[0].TotalQuantity)
	assert.Equal(t, uint64(1), c.LatestSeq())
	require.NotNil(t, uiStore.State().Notification)
	assert.Equal(t, ui.StatusSuccess, uiStore.State().Notification.Status)
}
