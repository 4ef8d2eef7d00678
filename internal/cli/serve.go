package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/internal/server"
	"github.com/craftlens/craftlens/pkg/cache"
	"github.com/craftlens/craftlens/pkg/pipeline"
	"github.com/craftlens/craftlens/pkg/translate"
)

// shutdownTimeout bounds the graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		data dataOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API over HTTP",
		Long: `Serve the diagram API over HTTP.

The server loads the dataset once at startup and answers graph requests from
memory. Built payloads and proxied images are cached in Redis when --redis
is set, otherwise in the local file cache.

Examples:
  craftlens serve --data data/entities.json
  craftlens serve --mongo-uri mongodb://localhost:27017 --redis localhost:6379
  craftlens serve --locales locales/ --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, &data)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	data.register(cmd)

	return cmd
}

// runServe builds the runner and serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, data *dataOpts) error {
	src, closeSrc, err := data.openSource(ctx)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer closeSrc()

	store, err := newCache(ctx, data.redisAddr, data.noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "err", err)
		store = cache.NewNullCache()
	}
	defer store.Close()

	runner := pipeline.NewRunner(src, store, c.Logger)
	if err := runner.LoadDataset(ctx); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	if data.locales != "" {
		tables, err := translate.LoadDir(data.locales)
		if err != nil {
			return fmt.Errorf("load locales: %w", err)
		}
		runner.SetLocales(tables)
		c.Logger.Info("locales loaded", "count", len(tables))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, store, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
