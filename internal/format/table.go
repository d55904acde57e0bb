package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/shopcart/internal/colors"
)

// Alignment of a column's values.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column represents a column in a table of T.
type Column[T any] struct {
	// Name is the column name displayed in the header.
	Name string
	// Width is the column width in characters. Longer values are truncated.
	Width int
	// Alignment is the text alignment.
	Alignment Alignment
	// Extract returns the cell value for a row.
	Extract func(T) string
}

// Table writes rows of T as fixed-width columns.
type Table[T any] struct {
	columns     []Column[T]
	headerColor string
	showHeaders bool
}

// NewTable creates a table with a colored header.
func NewTable[T any](columns ...Column[T]) *Table[T] {
	return &Table[T]{
		columns:     columns,
		headerColor: colors.Blue,
		showHeaders: true,
	}
}

// WithoutHeaders disables the header and separator lines.
func (t *Table[T]) WithoutHeaders() *Table[T] {
	t.showHeaders = false
	return t
}

// WithHeaderColor sets the ANSI color of the header; "" prints it plain.
func (t *Table[T]) WithHeaderColor(color string) *Table[T] {
	t.headerColor = color
	return t
}

// Write formats rows to w. Nothing is written for an empty slice.
func (t *Table[T]) Write(w io.Writer, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	if t.showHeaders {
		names := make([]string, len(t.columns))
		seps := make([]string, len(t.columns))
		for i, col := range t.columns {
			names[i] = formatString(col.Name, col.Width, AlignLeft)
			seps[i] = strings.Repeat("-", col.Width)
		}
		if err := t.writeLine(w, names, true); err != nil {
			return err
		}
		if err := t.writeLine(w, seps, true); err != nil {
			return err
		}
	}

	cells := make([]string, len(t.columns))
	for _, row := range rows {
		for i, col := range t.columns {
			cells[i] = formatString(col.Extract(row), col.Width, col.Alignment)
		}
		if err := t.writeLine(w, cells, false); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table[T]) writeLine(w io.Writer, cells []string, header bool) error {
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	if header && t.headerColor != "" {
		line = t.headerColor + line + colors.Reset
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// formatString pads or truncates s to width runes.
func formatString(s string, width int, alignment Alignment) string {
	if width <= 0 {
		return s
	}
	n := utf8.RuneCountInString(s)
	if n > width {
		if width < 4 {
			return string([]rune(s)[:width])
		}
		return string([]rune(s)[:width-3]) + "..."
	}
	pad := strings.Repeat(" ", width-n)
	if alignment == AlignRight {
		return pad + s
	}
	return s + pad
}
