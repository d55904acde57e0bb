package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cristianoliveira/shopcart/internal/catalog"
	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/remote"
	"github.com/cristianoliveira/shopcart/internal/server"
	"github.com/cristianoliveira/shopcart/internal/storage/sqlite"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// fakeClient satisfies every command's client interface.
type fakeClient struct {
	catalog    *catalog.Catalog
	catalogErr error
	remote     cartRemote
	timeout    time.Duration
	addr       string
	dbPath     string
}

func (f *fakeClient) Catalog() (*catalog.Catalog, error) {
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	if f.catalog == nil {
		return catalog.Default(), nil
	}
	return f.catalog, nil
}

func (f *fakeClient) Remote() cartRemote { return f.remote }
func (f *fakeClient) SendTimeout() time.Duration { return f.timeout }
func (f *fakeClient) Logger() logging.Logger { return logging.Noop() }
func (f *fakeClient) Version() string { return "shopcart version test" }
func (f *fakeClient) ServeAddr() string { return f.addr }
func (f *fakeClient) LogLevel() string { return "error" }
func (f *fakeClient) OpenStorage() (*sqlite.Storage, error) { return sqlite.NewSQLiteStorage(f.dbPath) }

// newKVServer starts the local endpoint backed by in-memory SQLite and
// returns a client pointed at its cart document.
func newKVServer(t *testing.T) *remote.Client {
	t.Helper()

	store, err := sqlite.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := httptest.NewServer(server.NewHandler(store, logging.Noop()))
	t.Cleanup(srv.Close)

	return remote.NewClient(srv.URL + "/cart.json")
}

// execute runs c with args and returns what it wrote to its output.
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}
