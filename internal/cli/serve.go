package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/internal/api"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/cache"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pipeline"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pricing"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assessment and layout API over HTTP",
		Long: `Serve the HTTP API.

Endpoints:
  POST /api/v1/assess  - score a spending combination
  POST /api/v1/layout  - compute and render a treemap view
  POST /api/v1/report  - build a portfolio report
  GET  /healthz        - liveness probe

When a Redis address is configured, pipeline results are cached there so
multiple instances share one cache; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	pipelineCache, err := c.newServeCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(pipelineCache, nil, c.Logger)
	defer runner.Close()

	prices := pricing.NewClient(c.Config.Pricing.BaseURL, c.priceCache())
	server := api.NewServer(runner, prices, c.Logger)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// newServeCache prefers Redis when configured so multiple API instances
// share one cache.
func (c *CLI) newServeCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Redis.Addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	}
	return c.newCache(false)
}
