package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomui/loomui/internal/api"
	"github.com/loomui/loomui/pkg/config"
	"github.com/loomui/loomui/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The server exposes the screen pipeline over HTTP: POST /v1/render resolves
a document from the request body, and the /v1/screens routes store
documents by id for on-demand resolution. Backends for the cache and the
screen store come from the config file; the mongo store backend is only
available here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// runServe builds the store, cache, and runner, then serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	st, err := c.newServeStore(ctx)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	runner.Store = st

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, st, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeStore builds the screen store for server use, including the
// mongo backend that the local CLI commands do not wire.
func (c *CLI) newServeStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend == config.BackendMongo {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.Config.Store.Mongo.URI,
			Database:   c.Config.Store.Mongo.Database,
			Collection: c.Config.Store.Mongo.Collection,
		})
	}
	return c.newStore()
}
