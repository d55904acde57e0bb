package main

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/shopcart/cmd"
	"github.com/cristianoliveira/shopcart/internal/cart"
	"github.com/cristianoliveira/shopcart/internal/cartsync"
	"github.com/cristianoliveira/shopcart/internal/catalog"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/errors"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/tui/render"
	"github.com/cristianoliveira/shopcart/internal/ui"
	"github.com/spf13/cobra"
)

type applyClient interface {
	Catalog() (*catalog.Catalog, error)
	Remote() cartRemote
	SendTimeout() time.Duration
	Logger() logging.Logger
}

const applyCommandLong = `Apply cart operations in order and sync the cart after each one.

Each OP is +ID to add one unit of a product or -ID to remove one unit.
The starting cart is empty, or the remote cart with --from-remote; it is
treated as the initial load and never sent. Every change is written to
remote_url and the resulting notification is printed.

EXAMPLES:
    shopcart apply +p1 +p1 +p2 -p1
    shopcart apply --from-remote -p2`

type cartOp struct {
	add bool
	id  string
}

func parseCartOp(arg string) (cartOp, error) {
	if len(arg) < 2 || (arg[0] != '+' && arg[0] != '-') {
		return cartOp{}, fmt.Errorf("invalid operation %q: expected +ID or -ID", arg)
	}
	id := strings.TrimSpace(arg[1:])
	if id == "" {
		return cartOp{}, fmt.Errorf("invalid operation %q: empty product id", arg)
	}
	return cartOp{add: arg[0] == '+', id: id}, nil
}

// NewApplyCmd creates the apply command with explicit dependencies.
func NewApplyCmd(client applyClient) *cobra.Command {
	if client == nil {
		panic("NewApplyCmd: client dependency cannot be nil")
	}

	applyCmd := &cobra.Command{
		Use:   "apply OP...",
		Short: "Apply cart operations and sync each one",
		Long:  applyCommandLong,
		// -ID would otherwise be parsed as a shorthand flag.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromRemote := false
			ops := make([]cartOp, 0, len(args))
			for _, arg := range args {
				switch arg {
				case "-h", "--help":
					return cmd.Help()
				case "--from-remote":
					fromRemote = true
					continue
				case "--":
					continue
				}
				op, err := parseCartOp(arg)
				if err != nil {
					return err
				}
				ops = append(ops, op)
			}
			if len(ops) == 0 {
				return stderrors.New("apply: at least one operation is required")
			}

			products, err := client.Catalog()
			if err != nil {
				return fmt.Errorf("apply: %w", err)
			}
			for _, op := range ops {
				if !op.add {
					continue
				}
				if _, err := products.Lookup(op.id); err != nil {
					return fmt.Errorf("apply: %w", err)
				}
			}

			ctx := cmd.Context()
			rem := client.Remote()
			initial := domain.NewCartState()
			if fromRemote {
				if initial, err = rem.GetCart(ctx); err != nil {
					return fmt.Errorf("apply: load remote cart: %w", err)
				}
			}

			cartStore := cart.NewStoreWithState(initial)
			uiStore := ui.NewStore()
			handler := errors.NewDefaultCLIHandler()
			uiStore.Subscribe(func(st ui.State) {
				if st.Notification != nil {
					errors.ReportNotification(handler, *st.Notification)
				}
			})
			coordinator := cartsync.New(uiStore, rem,
				cartsync.WithLogger(client.Logger()),
				cartsync.WithSendTimeout(client.SendTimeout()),
			)
			coordinator.Observe(cartStore.Snapshot())

			failed := 0
			for _, op := range ops {
				var snap cart.Snapshot
				if op.add {
					p, _ := products.Lookup(op.id)
					snap = cartStore.AddItem(p)
				} else {
					snap, err = cartStore.RemoveItem(op.id)
					if stderrors.Is(err, domain.ErrItemNotFound) {
						handler.Warning(fmt.Sprintf("%s is not in the cart, skipped", op.id))
						continue
					}
					if err != nil {
						return fmt.Errorf("apply: %w", err)
					}
				}
				if res, sent := coordinator.Sync(ctx, snap); sent && res.Err != nil {
					failed++
				}
			}

			state := cartStore.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Cart: %d item(s), total %s\n", state.TotalQuantity, render.FormatPrice(state.TotalAmount()))
			if failed > 0 {
				return fmt.Errorf("apply: %d of %d sends failed: %w", failed, coordinator.LatestSeq(), cartsync.ErrSendFailed)
			}
			return nil
		},
	}
	// Help text only; flag parsing is disabled and RunE reads --from-remote itself.
	applyCmd.Flags().Bool("from-remote", false, "Start from the cart stored at remote_url")
	return applyCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewApplyCmd(defaultClient))
}
