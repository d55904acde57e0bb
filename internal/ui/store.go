// Package ui provides the UI Store: cart panel visibility and the current
// sync notification.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidStatus indicates a status outside the known set.
var ErrInvalidStatus = errors.New("invalid notification status")

// Status is the progress of the last remote save.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// IsValid checks if the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a case-insensitive name into a Status.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return s, nil
}

// Notification is the banner shown for the last persistence attempt.
type Notification struct {
	Status  Status
	Title   string
	Message string
}

// State is the UI state. Notification is nil until the first send.
type State struct {
	CartPanelVisible bool
	Notification     *Notification
}

// Listener receives the UI state after every change.
type Listener func(State)

// Store owns the UI state.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
	// publishMu keeps listener delivery in change order.
	publishMu sync.Mutex
}

// NewStore returns a store with the panel hidden and no notification.
func NewStore() *Store {
	return &Store{}
}

// TogglePanel flips cart panel visibility and returns the new value.
func (s *Store) TogglePanel() bool {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.state.CartPanelVisible = !s.state.CartPanelVisible
	visible := s.state.CartPanelVisible
	snap, listeners := s.copyLocked(), s.listeners
	s.mu.Unlock()

	notify(listeners, snap)
	return visible
}

// SetNotification replaces the current notification.
func (s *Store) SetNotification(status Status, title, message string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.state.Notification = &Notification{Status: status, Title: title, Message: message}
	snap, listeners := s.copyLocked(), s.listeners
	s.mu.Unlock()

	notify(listeners, snap)
	return nil
}

// State returns a copy of the current UI state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Notification returns a copy of the current notification, or nil.
func (s *Store) Notification() *Notification {
	return s.State().Notification
}

// Subscribe registers fn to run after every change.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners[:len(s.listeners):len(s.listeners)], fn)
}

func (s *Store) copyLocked() State {
	out := State{CartPanelVisible: s.state.CartPanelVisible}
	if s.state.Notification != nil {
		n := *s.state.Notification
		out.Notification = &n
	}
	return out
}

func notify(listeners []Listener, state State) {
	for _, fn := range listeners {
		fn(state)
	}
}
