// Package catalog provides the read-only product list offered in the shop.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrProductNotFound indicates no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// Catalog is an ordered, read-only list of products.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

type catalogFile struct {
	Products []domain.Product `toml:"products" yaml:"products"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, _ := New([]domain.Product{
		{ID: "p1", Price: 6, Title: "my first book", Description: "first book ever"},
		{ID: "p2", Price: 5, Title: "my second book", Description: "second book ever"},
	})
	return c
}

// New builds a catalog, rejecting empty or duplicate IDs and negative prices.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("product %d: empty id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", i, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q: negative price %v", p.ID, p.Price)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Load reads a catalog from a .toml, .yaml or .yml file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file catalogFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c, err := New(file.Products)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault loads path, or returns the built-in catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}

// Products returns the products in catalog order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// At returns the product at index i.
func (c *Catalog) At(i int) (domain.Product, bool) {
	if i < 0 || i >= len(c.products) {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Lookup returns the product with the given ID.
func (c *Catalog) Lookup(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, id)
	}
	return c.products[i], nil
}
