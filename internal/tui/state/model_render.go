package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/shopcart/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	width := m.uiState.GetWidth()
	cartState := m.cart.State()
	uiState := m.ui.State()

	var top strings.Builder
	top.WriteString(render.Header(cartState.TotalQuantity, width))
	if banner := render.Banner(render.BannerState{
		Notification: uiState.Notification,
		Spinner:      m.spinner.View(),
		Width:        width,
	}); banner != "" {
		top.WriteString("\n")
		top.WriteString(banner)
	}
	if uiState.CartPanelVisible {
		top.WriteString("\n")
		top.WriteString(render.CartPanel(render.CartPanelState{
			Cart:    cartState,
			Cursor:  m.uiState.CartCursor(),
			Focused: m.cartFocused(),
			Width:   width,
		}))
	}

	var bottom strings.Builder
	if m.hasStatusMessage {
		bottom.WriteString(m.statusStyle().Render(m.statusMessage))
		bottom.WriteString("\n")
	}
	bottom.WriteString(render.Footer(m.help.View(m.keys)))

	header, footer := top.String(), bottom.String()
	m.uiState.UpdateViewportSize(lipgloss.Height(header) + lipgloss.Height(footer) + 2)
	m.updateViewportContent()

	return header + "\n" + m.uiState.GetViewport().View() + "\n" + footer
}

// updateViewportContent renders the catalog into the viewport.
func (m *Model) updateViewportContent() {
	cartState := m.cart.State()
	cursor := m.uiState.ProductCursor()
	focused := !m.cartFocused()

	var content strings.Builder
	for i, p := range m.catalog.Products() {
		if i > 0 {
			content.WriteString("\n")
		}
		inCart := 0
		if item, ok := cartState.Find(p.ID); ok {
			inCart = item.Quantity
		}
		content.WriteString(render.ProductRow(render.ProductRowState{
			Product:  p,
			InCart:   inCart,
			Selected: focused && i == cursor,
			Width:    m.uiState.GetWidth(),
		}))
	}
	vp := m.uiState.GetViewport()
	vp.SetContent(content.String())
	m.ensureCursorVisible(cursor)
}

// ensureCursorVisible scrolls the viewport so the catalog cursor is shown.
func (m *Model) ensureCursorVisible(cursor int) {
	vp := m.uiState.GetViewport()
	if vp.Height <= 0 {
		return
	}
	if cursor < vp.YOffset {
		vp.SetYOffset(cursor)
	} else if cursor >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursor - vp.Height + 1)
	}
}
