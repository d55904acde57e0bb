package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/shopcart/internal/colors"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/ui"
	"github.com/stretchr/testify/assert"
)

func TestAnsiColorNumber(t *testing.T) {
	tests := []struct {
		ansi     string
		expected string
	}{
		{colors.Blue, "34"},
		{colors.Yellow, "33"},
		{colors.Red, "31"},
		{"", ""},
		{"plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ansiColorNumber(tt.ansi))
		})
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, colors.Blue, statusColor(ui.StatusPending))
	assert.Equal(t, colors.Green, statusColor(ui.StatusSuccess))
	assert.Equal(t, colors.Red, statusColor(ui.StatusError))
}

func TestHeaderShowsCartCount(t *testing.T) {
	header := Header(3, 60)

	assert.Contains(t, header, "ReduxCart")
	assert.Contains(t, header, "My Cart (3)")
	assert.Equal(t, 60, lipgloss.Width(header))
}

func TestHeaderNarrowWidthKeepsBothParts(t *testing.T) {
	header := Header(12, 5)

	assert.Contains(t, header, "ReduxCart")
	assert.Contains(t, header, "My Cart (12)")
}

func TestBanner(t *testing.T) {
	assert.Empty(t, Banner(BannerState{}))

	pending := Banner(BannerState{
		Notification: &ui.Notification{Status: ui.StatusPending, Title: "Sending...", Message: "Sending cart data!"},
		Spinner:      "*",
		Width:        50,
	})
	assert.Contains(t, pending, "* Sending...")
	assert.Contains(t, pending, "Sending cart data!")

	failed := Banner(BannerState{
		Notification: &ui.Notification{Status: ui.StatusError, Title: "Error!", Message: "Failed to send cart data!"},
		Spinner:      "*",
		Width:        50,
	})
	assert.NotContains(t, failed, "*")
	assert.Contains(t, failed, "Error!")
}

func TestProductRow(t *testing.T) {
	p := domain.Product{ID: "p1", Title: "My First Book", Price: 6, Description: "The first book I ever wrote"}

	row := ProductRow(ProductRowState{Product: p, Width: 100})
	assert.Contains(t, row, "My First Book")
	assert.Contains(t, row, "$6.00")
	assert.Contains(t, row, "The first book I ever wrote")
	assert.NotContains(t, row, cursorSymbol)

	selected := ProductRow(ProductRowState{Product: p, InCart: 2, Selected: true, Width: 100})
	assert.Contains(t, selected, cursorSymbol)
	assert.Contains(t, selected, "x2")
}

func TestCartPanel(t *testing.T) {
	empty := CartPanel(CartPanelState{Cart: domain.NewCartState(), Width: 60})
	assert.Contains(t, empty, "Your cart is empty")

	book := domain.Product{ID: "p1", Title: "My First Book", Price: 6}
	state := domain.AddItem(domain.AddItem(domain.NewCartState(), book), book)

	panel := CartPanel(CartPanelState{Cart: state, Focused: true, Width: 60})
	assert.Contains(t, panel, "My First Book")
	assert.Contains(t, panel, "x2")
	assert.Contains(t, panel, "$12.00")
	assert.Contains(t, panel, "($6.00/item)")
	assert.Contains(t, panel, "Total: $12.00")
	assert.Contains(t, panel, cursorSymbol)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "héllo wo...", truncate("héllo world!", 11))
	assert.Equal(t, "anything", truncate("anything", 0))
}

func TestDescriptionWidth(t *testing.T) {
	assert.Equal(t, minDescription, descriptionWidth(20))
	assert.Equal(t, descriptionWidth(defaultWidth), descriptionWidth(0))
	assert.Greater(t, descriptionWidth(200), descriptionWidth(100))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$6.00", FormatPrice(6))
	assert.Equal(t, "$0.50", FormatPrice(0.5))
	assert.True(t, strings.HasPrefix(FormatPrice(1234.567), "$1234.57"))
}
