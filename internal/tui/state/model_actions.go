package state

import (
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/shopcart/internal/domain"
)

// handleKeyMsg processes keyboard input for the TUI.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Add):
		return m, m.addSelected()
	case key.Matches(msg, m.keys.Remove):
		return m, m.removeSelected()
	case key.Matches(msg, m.keys.TogglePanel):
		m.togglePanel()
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.cartFocused() {
		m.uiState.MoveCartCursor(delta, len(m.cart.State().Items))
		return
	}
	m.uiState.MoveProductCursor(delta, m.catalog.Len())
}

// addSelected adds one unit of the focused product or cart line.
func (m *Model) addSelected() tea.Cmd {
	product, ok := m.selectedProduct()
	if !ok {
		return nil
	}
	snap := m.cart.AddItem(product)
	m.logger.Debug("added item", "id", product.ID, "revision", snap.Revision)
	return m.syncCmd(snap)
}

// removeSelected removes one unit of the focused product or cart line.
func (m *Model) removeSelected() tea.Cmd {
	product, ok := m.selectedProduct()
	if !ok {
		return nil
	}
	snap, err := m.cart.RemoveItem(product.ID)
	if err != nil {
		if stderrors.Is(err, domain.ErrItemNotFound) {
			return m.status(m.errorHandler.Warning, fmt.Sprintf("%s is not in the cart", product.Title))
		}
		return m.status(m.errorHandler.Error, fmt.Sprintf("Failed to remove %s: %v", product.Title, err))
	}
	m.uiState.ClampCartCursor(len(snap.State.Items))
	if len(snap.State.Items) == 0 {
		m.uiState.SetFocus(focusProducts)
	}
	m.logger.Debug("removed item", "id", product.ID, "revision", snap.Revision)
	return m.syncCmd(snap)
}

// selectedProduct resolves the row under the active cursor to a product.
// Cart lines map back to a product built from the line itself so items
// missing from the catalog can still be changed.
func (m *Model) selectedProduct() (domain.Product, bool) {
	if m.cartFocused() {
		items := m.cart.State().Items
		i := m.uiState.CartCursor()
		if i < 0 || i >= len(items) {
			return domain.Product{}, false
		}
		item := items[i]
		return domain.Product{ID: item.ID, Title: item.Name, Price: item.Price}, true
	}
	return m.catalog.At(m.uiState.ProductCursor())
}

func (m *Model) togglePanel() {
	if !m.ui.TogglePanel() {
		m.uiState.SetFocus(focusProducts)
	}
}

func (m *Model) toggleFocus() {
	if m.uiState.Focus() == focusCart {
		m.uiState.SetFocus(focusProducts)
		return
	}
	if !m.ui.State().CartPanelVisible || len(m.cart.State().Items) == 0 {
		return
	}
	m.uiState.SetFocus(focusCart)
	m.uiState.ClampCartCursor(len(m.cart.State().Items))
}

func (m *Model) cartFocused() bool {
	return m.uiState.Focus() == focusCart && m.ui.State().CartPanelVisible
}
