package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cristianoliveira/shopcart/cmd"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/format"
	"github.com/cristianoliveira/shopcart/internal/tui/render"
	"github.com/spf13/cobra"
)

type showClient interface {
	Remote() cartRemote
}

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client showClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	var asJSON bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch and print the remote cart",
		Long:  `Fetch the cart document from remote_url and print it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := client.Remote().GetCart(cmd.Context())
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}
			if asJSON {
				return format.WriteJSON(cmd.OutOrStdout(), state)
			}
			return printCart(cmd.OutOrStdout(), state)
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw cart document")
	return showCmd
}

func printCart(w io.Writer, state domain.CartState) error {
	if len(state.Items) == 0 {
		_, err := fmt.Fprintln(w, "Your cart is empty")
		return err
	}
	if err := cartTable.Write(w, state.Items); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %d item(s), %s\n", state.TotalQuantity, render.FormatPrice(state.TotalAmount()))
	return err
}

var cartTable = format.NewTable(
	format.Column[domain.CartItem]{Name: "ID", Width: 6, Extract: func(i domain.CartItem) string { return i.ID }},
	format.Column[domain.CartItem]{Name: "NAME", Width: 24, Extract: func(i domain.CartItem) string { return i.Name }},
	format.Column[domain.CartItem]{Name: "QTY", Width: 4, Alignment: format.AlignRight, Extract: func(i domain.CartItem) string {
		return strconv.Itoa(i.Quantity)
	}},
	format.Column[domain.CartItem]{Name: "PRICE", Width: 9, Alignment: format.AlignRight, Extract: func(i domain.CartItem) string {
		return render.FormatPrice(i.Price)
	}},
	format.Column[domain.CartItem]{Name: "TOTAL", Width: 9, Alignment: format.AlignRight, Extract: func(i domain.CartItem) string {
		return render.FormatPrice(i.TotalPrice)
	}},
)

func init() {
	cmd.RootCmd.AddCommand(NewShowCmd(defaultClient))
}
