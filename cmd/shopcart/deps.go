package main

import (
	"context"
	"time"

	"github.com/cristianoliveira/shopcart/internal/catalog"
	"github.com/cristianoliveira/shopcart/internal/config"
	"github.com/cristianoliveira/shopcart/internal/domain"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/remote"
	"github.com/cristianoliveira/shopcart/internal/storage/sqlite"
	"github.com/cristianoliveira/shopcart/internal/version"
)

// cartRemote reads and writes the remote cart document.
type cartRemote interface {
	PutCart(ctx context.Context, state domain.CartState) error
	GetCart(ctx context.Context) (domain.CartState, error)
}

// shopClient resolves dependencies from configuration at call time, after
// the root command has loaded it.
type shopClient struct{}

func (shopClient) Catalog() (*catalog.Catalog, error) {
	return catalog.LoadOrDefault(config.Get("catalog_path", ""))
}

func (shopClient) Remote() cartRemote {
	return remote.NewClient(
		config.Get("remote_url", config.DefaultRemoteURL),
		remote.WithLogger(logging.GetGlobal()),
	)
}

func (shopClient) SendTimeout() time.Duration {
	return config.GetDuration("send_timeout", 0)
}

func (shopClient) Logger() logging.Logger {
	return logging.GetGlobal()
}

func (shopClient) Version() string {
	return version.Full()
}

func (shopClient) ServeAddr() string {
	return config.Get("serve_addr", "127.0.0.1:8787")
}

func (shopClient) LogLevel() string {
	return config.Get("logging_level", "info")
}

func (shopClient) OpenStorage() (*sqlite.Storage, error) {
	return sqlite.NewSQLiteStorage(config.Get("kv_db_path", ""))
}

var defaultClient = shopClient{}
