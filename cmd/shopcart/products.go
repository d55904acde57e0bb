package main

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/shopcart/cmd"
	"github.com/cristianoliveira/shopcart/internal/catalog"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/format"
	"github.com/cristianoliveira/shopcart/internal/tui/render"
	"github.com/spf13/cobra"
)

type productsClient interface {
	Catalog() (*catalog.Catalog, error)
}

const productsCommandLong = `List the products available in the shop.

The catalog is read from catalog_path (TOML or YAML) when configured,
otherwise the built-in products are shown.

OPTIONS:
    --format=<format>    Output format: table (default), json`

// NewProductsCmd creates the products command with explicit dependencies.
func NewProductsCmd(client productsClient) *cobra.Command {
	if client == nil {
		panic("NewProductsCmd: client dependency cannot be nil")
	}

	var formatFlag string
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List the products in the catalog",
		Long:  productsCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := format.ParseType(formatFlag)
			if err != nil {
				return fmt.Errorf("products: %w", err)
			}
			c, err := client.Catalog()
			if err != nil {
				return fmt.Errorf("products: %w", err)
			}
			if outputFormat == format.TypeJSON {
				return format.WriteJSON(cmd.OutOrStdout(), c.Products())
			}
			return printProductsTable(cmd.OutOrStdout(), c.Products())
		},
	}
	productsCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: table, json")
	return productsCmd
}

var productsTable = format.NewTable(
	format.Column[domain.Product]{Name: "ID", Width: 6, Extract: func(p domain.Product) string { return p.ID }},
	format.Column[domain.Product]{Name: "TITLE", Width: 24, Extract: func(p domain.Product) string { return p.Title }},
	format.Column[domain.Product]{Name: "PRICE", Width: 9, Alignment: format.AlignRight, Extract: func(p domain.Product) string {
		return render.FormatPrice(p.Price)
	}},
	format.Column[domain.Product]{Name: "DESCRIPTION", Width: 36, Extract: func(p domain.Product) string { return p.Description }},
)

func printProductsTable(w io.Writer, products []domain.Product) error {
	return productsTable.Write(w, products)
}

func init() {
	cmd.RootCmd.AddCommand(NewProductsCmd(defaultClient))
}
