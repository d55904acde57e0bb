// Package format provides output formatting for CLI commands.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Type is an output format selectable with --format.
type Type string

const (
	// TypeTable prints aligned columns with a header.
	TypeTable Type = "table"
	// TypeJSON prints indented JSON.
	TypeJSON Type = "json"
)

// ParseType validates a --format value. Empty means table.
func ParseType(value string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(value))); t {
	case "", TypeTable:
		return TypeTable, nil
	case TypeJSON:
		return TypeJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected table or json)", value)
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
