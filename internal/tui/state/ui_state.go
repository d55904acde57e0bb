package state

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// focusArea says which list the cursor keys move.
type focusArea int

const (
	focusProducts focusArea = iota
	focusCart
)

// UIState holds terminal-local view state: sizes, viewport and cursors.
// Cart panel visibility lives in the ui.Store, not here.
type UIState struct {
	viewport viewport.Model
	width    int
	height   int

	productCursor int
	cartCursor    int
	focus         focusArea
}

// NewUIState creates a UIState with default dimensions.
func NewUIState() *UIState {
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
	}
}

// GetViewport returns the product list viewport.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetWidth updates the width, falling back to the default for non-positive values.
func (u *UIState) SetWidth(width int) {
	u.width = width
	if width <= 0 {
		u.width = defaultViewportWidth
	}
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetHeight updates the height, falling back to the default for non-positive values.
func (u *UIState) SetHeight(height int) {
	u.height = height
	if height <= 0 {
		u.height = defaultViewportHeight
	}
}

// UpdateViewportSize resizes the viewport to the space left by the chrome.
func (u *UIState) UpdateViewportSize(reserved int) {
	h := u.height - reserved
	if h < 1 {
		h = 1
	}
	u.viewport.Width = u.width
	u.viewport.Height = h
}

// ProductCursor returns the selected catalog row.
func (u *UIState) ProductCursor() int {
	return u.productCursor
}

// CartCursor returns the selected cart row.
func (u *UIState) CartCursor() int {
	return u.cartCursor
}

// Focus returns the focused list.
func (u *UIState) Focus() focusArea {
	return u.focus
}

// SetFocus changes the focused list.
func (u *UIState) SetFocus(f focusArea) {
	u.focus = f
}

// MoveProductCursor moves the catalog cursor by delta within [0, n).
func (u *UIState) MoveProductCursor(delta, n int) {
	u.productCursor = clamp(u.productCursor+delta, n)
}

// MoveCartCursor moves the cart cursor by delta within [0, n).
func (u *UIState) MoveCartCursor(delta, n int) {
	u.cartCursor = clamp(u.cartCursor+delta, n)
}

// ClampCartCursor keeps the cart cursor valid after items disappear.
func (u *UIState) ClampCartCursor(n int) {
	u.cartCursor = clamp(u.cartCursor, n)
}

func clamp(v, n int) int {
	if n <= 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
