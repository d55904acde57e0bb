package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	require.Equal(t, 2, c.Len())
	p, err := c.Lookup("p1")
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: "p1", Price: 6, Title: "my first book", Description: "first book ever"}, p)

	second, ok := c.At(1)
	require.True(t, ok)
	assert.Equal(t, "p2", second.ID)
	_, ok = c.At(2)
	assert.False(t, ok)
}

func TestLookupMissing(t *testing.T) {
	_, err := Default().Lookup("p9")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "catalog.toml", `
[[products]]
id = "b1"
price = 12.5
title = "Go in Action"
description = "A book"

[[products]]
id = "b2"
price = 3
title = "Pamphlet"
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	p, err := c.Lookup("b1")
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, "Go in Action", p.Title)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
products:
  - id: y1
    price: 4
    title: Yaml book
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{{ID: "y1", Price: 4, Title: "Yaml book"}}, c.Products())
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "duplicate ids", file: "c.toml", content: "[[products]]\nid = \"a\"\n[[products]]\nid = \"a\"\n"},
		{name: "empty id", file: "c.yaml", content: "products:\n  - title: nameless\n"},
		{name: "negative price", file: "c.yml", content: "products:\n  - id: a\n    price: -1\n"},
		{name: "unknown format", file: "c.json", content: "{}"},
		{name: "malformed toml", file: "c.toml", content: "[[products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("  ")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
