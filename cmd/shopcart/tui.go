/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/shopcart/cmd"
	"github.com/cristianoliveira/shopcart/internal/cart"
	"github.com/cristianoliveira/shopcart/internal/cartsync"
	"github.com/cristianoliveira/shopcart/internal/catalog"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/tui/state"
	"github.com/cristianoliveira/shopcart/internal/ui"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	Catalog() (*catalog.Catalog, error)
	Remote() cartRemote
	SendTimeout() time.Duration
	Logger() logging.Logger
}

// runProgram runs the bubbletea program. Replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the shop",
		Long: `Open the interactive shop.

Every change to the cart is saved to remote_url. The banner shows whether
the last save is pending, succeeded or failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := client.Catalog()
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			logger := client.Logger()
			uiStore := ui.NewStore()
			coordinator := cartsync.New(uiStore, client.Remote(),
				cartsync.WithLogger(logger),
				cartsync.WithSendTimeout(client.SendTimeout()),
			)
			model, err := state.NewModel(cmd.Context(), state.Deps{
				Catalog: products,
				Cart:    cart.NewStore(),
				UI:      uiStore,
				Sync:    coordinator,
				Logger:  logger,
			})
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return runProgram(model)
		},
	}
}

func init() {
	tuiCmd := NewTUICmd(defaultClient)
	cmd.RootCmd.AddCommand(tuiCmd)
	cmd.RootCmd.RunE = tuiCmd.RunE
	cmd.RootCmd.Args = cobra.NoArgs
}
