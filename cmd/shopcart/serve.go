package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/shopcart/cmd"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/server"
	"github.com/cristianoliveira/shopcart/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type serveClient interface {
	ServeAddr() string
	LogLevel() string
	OpenStorage() (*sqlite.Storage, error)
}

const serveCommandLong = `Run a local key-value endpoint compatible with the remote cart URL.

Documents are stored in SQLite at kv_db_path. Point remote_url at
http://<addr>/cart.json to sync the cart against it.

OPTIONS:
    --addr <host:port>   Listen address (default serve_addr)`

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(client serveClient) *cobra.Command {
	if client == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local cart endpoint",
		Long:  serveCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = client.ServeAddr()
			}
			logger := logging.NewConsole(cmd.ErrOrStderr(), client.LogLevel()).With("component", "serve")

			store, err := client.OpenStorage()
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("close storage", "error", err)
				}
			}()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("serve: listen %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving cart at http://%s/cart.json\n", ln.Addr())
			return server.Serve(ctx, ln, server.NewHandler(store, logger), logger)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address")
	return serveCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd(defaultClient))
}

