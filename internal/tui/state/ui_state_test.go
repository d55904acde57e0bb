package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUIStateDefaults(t *testing.T) {
	u := NewUIState()

	assert.Equal(t, defaultViewportWidth, u.GetWidth())
	assert.Equal(t, defaultViewportHeight, u.GetHeight())
	assert.Equal(t, focusProducts, u.Focus())

	u.SetWidth(-1)
	u.SetHeight(0)
	assert.Equal(t, defaultViewportWidth, u.GetWidth())
	assert.Equal(t, defaultViewportHeight, u.GetHeight())
}

func TestUIStateViewportSize(t *testing.T) {
	u := NewUIState()
	u.SetWidth(100)
	u.SetHeight(30)

	u.UpdateViewportSize(10)
	assert.Equal(t, 100, u.GetViewport().Width)
	assert.Equal(t, 20, u.GetViewport().Height)

	u.UpdateViewportSize(50)
	assert.Equal(t, 1, u.GetViewport().Height)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		v, n int
		want int
	}{
		{name: "empty list", v: 3, n: 0, want: 0},
		{name: "negative", v: -1, n: 4, want: 0},
		{name: "in range", v: 2, n: 4, want: 2},
		{name: "past end", v: 9, n: 4, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clamp(tt.v, tt.n))
		})
	}
}

func TestCartCursorFollowsShrinkingCart(t *testing.T) {
	u := NewUIState()

	u.MoveCartCursor(5, 3)
	assert.Equal(t, 2, u.CartCursor())

	u.ClampCartCursor(1)
	assert.Equal(t, 0, u.CartCursor())
}
