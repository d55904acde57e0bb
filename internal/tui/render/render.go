// Package render draws the pieces of the shop screen as strings.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/shopcart/internal/colors"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/ui"
)

const (
	titleWidth       = 24
	priceWidth       = 9
	quantityWidth    = 5
	defaultWidth     = 80
	minDescription   = 10
	columnSeparators = 6
	cursorSymbol     = "›"
	mutedColor       = "241"
)

// ProductRowState defines the inputs needed to render a catalog row.
type ProductRowState struct {
	Product  domain.Product
	InCart   int
	Selected bool
	Width    int
}

// CartPanelState defines the inputs needed to render the cart panel.
type CartPanelState struct {
	Cart    domain.CartState
	Cursor  int
	Focused bool
	Width   int
}

// BannerState defines the inputs needed to render the notification banner.
type BannerState struct {
	Notification *ui.Notification
	Spinner      string
	Width        int
}

// Header renders the title bar with the cart badge.
func Header(totalQuantity, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	badgeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow)))

	title := titleStyle.Render("ReduxCart")
	badge := badgeStyle.Render(fmt.Sprintf("My Cart (%d)", totalQuantity))
	gap := width - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + badge
}

// Banner renders the sync notification. It returns "" when there is none.
func Banner(state BannerState) string {
	n := state.Notification
	if n == nil {
		return ""
	}
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Width(width).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ansiColorNumber(statusColor(n.Status))))

	prefix := ""
	if n.Status == ui.StatusPending && state.Spinner != "" {
		prefix = state.Spinner + " "
	}
	return style.Render(fmt.Sprintf("%s%s  %s", prefix, n.Title, n.Message))
}

// ProductRow renders a single catalog entry.
func ProductRow(state ProductRowState) string {
	rowStyle := lipgloss.NewStyle()
	if state.Selected {
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	marker := " "
	if state.Selected {
		marker = cursorSymbol
	}
	inCart := ""
	if state.InCart > 0 {
		inCart = fmt.Sprintf("x%d", state.InCart)
	}

	descWidth := descriptionWidth(state.Width)
	row := fmt.Sprintf("%s %-*s  %*s  %-*s  %s",
		marker,
		titleWidth, truncate(state.Product.Title, titleWidth),
		priceWidth, FormatPrice(state.Product.Price),
		quantityWidth, inCart,
		truncate(state.Product.Description, descWidth),
	)
	return rowStyle.Render(row)
}

// CartPanel renders the cart contents with the running total.
func CartPanel(state CartPanelState) string {
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}

	borderColor := lipgloss.Color(mutedColor)
	if state.Focused {
		borderColor = lipgloss.Color(ansiColorNumber(colors.Cyan))
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Your Shopping Cart"))
	b.WriteString("\n")

	if len(state.Cart.Items) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render("Your cart is empty"))
		return panel.Render(b.String())
	}

	for i, item := range state.Cart.Items {
		selected := state.Focused && i == state.Cursor
		b.WriteString(CartItemRow(item, selected))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Total: %s", FormatPrice(state.Cart.TotalAmount())))
	return panel.Render(b.String())
}

// CartItemRow renders one cart line.
func CartItemRow(item domain.CartItem, selected bool) string {
	style := lipgloss.NewStyle()
	marker := " "
	if selected {
		style = style.Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
		marker = cursorSymbol
	}
	row := fmt.Sprintf("%s %-*s  x%-3d  %*s  (%s/item)",
		marker,
		titleWidth, truncate(item.Name, titleWidth),
		item.Quantity,
		priceWidth, FormatPrice(item.TotalPrice),
		FormatPrice(item.Price),
	)
	return style.Render(row)
}

// Footer renders the help line.
func Footer(help string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor)).Render(help)
}

// FormatPrice renders an amount as dollars with two decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func statusColor(status ui.Status) string {
	switch status {
	case ui.StatusSuccess:
		return colors.Green
	case ui.StatusError:
		return colors.Red
	default:
		return colors.Blue
	}
}

func descriptionWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	w := width - titleWidth - priceWidth - quantityWidth - columnSeparators - 2
	if w < minDescription {
		return minDescription
	}
	return w
}

func truncate(value string, width int) string {
	if width <= 0 || utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= 3 {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-3]) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
