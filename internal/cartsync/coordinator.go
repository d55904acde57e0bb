// Package cartsync persists cart changes to the remote endpoint and reports
// progress through the UI notification.
package cartsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/shopcart/internal/cart"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/remote"
	"github.com/cristianoliveira/shopcart/internal/ui"
	"github.com/google/uuid"
)

// ErrSendFailed is the error every failed send matches.
var ErrSendFailed = remote.ErrSendFailed

// Notification texts.
const (
	PendingTitle   = "Sending..."
	PendingMessage = "Sending cart data!"
	SuccessTitle   = "Success!"
	SuccessMessage = "Sent cart data successfully!"
	ErrorTitle     = "Error!"
	ErrorMessage   = "Failed to send cart data!"
)

// Sender writes the cart to the remote endpoint.
type Sender interface {
	PutCart(ctx context.Context, state domain.CartState) error
}

// Notifier receives notification updates. *ui.Store implements it.
type Notifier interface {
	SetNotification(status ui.Status, title, message string) error
}

// Source publishes cart snapshots. *cart.Store implements it.
type Source interface {
	Snapshot() cart.Snapshot
	Subscribe(fn cart.Listener) (unsubscribe func())
}

// Send is one issued write of the cart.
type Send struct {
	// Seq increases by one per issued send; only the latest may complete.
	Seq       uint64
	Revision  uint64
	RequestID string
	State     domain.CartState
}

// Result is the outcome of running a Send.
type Result struct {
	Send
	Err      error
	Duration time.Duration
}

// Coordinator sequences notifications around remote cart writes.
type Coordinator struct {
	notifier Notifier
	sender   Sender
	logger   logging.Logger
	timeout  time.Duration
	newID    func() string

	mu           sync.Mutex
	initialized  bool
	lastRevision uint64
	seq          uint64

	inflight sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSendTimeout bounds each remote call. Zero means no timeout.
func WithSendTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// WithRequestIDFunc overrides request id generation.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a coordinator. The first snapshot it observes is treated as
// the initial load and never sent.
func New(notifier Notifier, sender Sender, opts ...Option) *Coordinator {
	c := &Coordinator{
		notifier: notifier,
		sender:   sender,
		logger:   logging.Noop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "cartsync")
	return c
}

// Observe records snap and decides whether it must be sent. The first
// observation and repeats of the last observed revision return false.
// Otherwise the pending notification is dispatched before returning.
func (c *Coordinator) Observe(snap cart.Snapshot) (Send, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		c.initialized = true
		c.lastRevision = snap.Revision
		c.logger.Debug("initial cart observed, not sending", "revision", snap.Revision)
		return Send{}, false
	}
	if snap.Revision == c.lastRevision {
		return Send{}, false
	}
	c.lastRevision = snap.Revision
	c.seq++
	send := Send{
		Seq:       c.seq,
		Revision:  snap.Revision,
		RequestID: c.newID(),
		State:     snap.State.Clone(),
	}
	c.notify(ui.StatusPending, PendingTitle, PendingMessage)
	c.logger.Info("sending cart", "seq", send.Seq, "revision", send.Revision, "request_id", send.RequestID, "total_quantity", send.State.TotalQuantity)
	return send, true
}

// Run performs the remote write for send. It never retries.
func (c *Coordinator) Run(ctx context.Context, send Send) Result {
	ctx = remote.WithRequestID(ctx, send.RequestID)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.sender.PutCart(ctx, send.State)
	if err != nil && !errors.Is(err, ErrSendFailed) {
		err = fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return Result{Send: send, Err: err, Duration: time.Since(start)}
}

// Complete applies the success or error notification for res. Results of
// sends superseded by a newer one are dropped and false is returned.
func (c *Coordinator) Complete(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Seq != c.seq {
		c.logger.Debug("dropping stale send result", "seq", res.Seq, "latest", c.seq, "error", res.Err)
		return false
	}
	if res.Err != nil {
		c.logger.Error("cart send failed", "seq", res.Seq, "request_id", res.RequestID, "duration", res.Duration, "error", res.Err)
		c.notify(ui.StatusError, ErrorTitle, ErrorMessage)
		return true
	}
	c.logger.Info("cart sent", "seq", res.Seq, "request_id", res.RequestID, "duration", res.Duration)
	c.notify(ui.StatusSuccess, SuccessTitle, SuccessMessage)
	return true
}

// Sync observes snap and, when a send is due, runs it to completion.
// The boolean reports whether a send was issued.
func (c *Coordinator) Sync(ctx context.Context, snap cart.Snapshot) (Result, bool) {
	send, ok := c.Observe(snap)
	if !ok {
		return Result{}, false
	}
	res := c.Run(ctx, send)
	c.Complete(res)
	return res, true
}

// Attach observes src's current snapshot as the initial load and then sends
// every later snapshot in its own goroutine. Sends are not cancelled by
// newer ones; stale completions are dropped. The returned function stops
// observing; use Wait to drain in-flight sends.
func (c *Coordinator) Attach(ctx context.Context, src Source) (detach func()) {
	unsubscribe := src.Subscribe(func(snap cart.Snapshot) {
		c.dispatch(ctx, snap)
	})
	// A mutation may land between Subscribe and Snapshot with its listener
	// delivery still pending; that delivery repeats the revision and is
	// skipped, so the send has to start here.
	c.dispatch(ctx, src.Snapshot())
	return unsubscribe
}

func (c *Coordinator) dispatch(ctx context.Context, snap cart.Snapshot) {
	send, ok := c.Observe(snap)
	if !ok {
		return
	}
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.Complete(c.Run(ctx, send))
	}()
}

// Wait blocks until every send started by Attach has completed.
func (c *Coordinator) Wait() {
	c.inflight.Wait()
}

// LatestSeq returns the sequence number of the most recently issued send.
func (c *Coordinator) LatestSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

func (c *Coordinator) notify(status ui.Status, title, message string) {
	if err := c.notifier.SetNotification(status, title, message); err != nil {
		c.logger.Error("set notification", "status", status, "error", err)
	}
}
