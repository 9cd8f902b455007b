package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nebula/internal/command"
	"nebula/internal/platform/config"
	"nebula/internal/platform/httpserver"
	"nebula/internal/platform/logger"
	"nebula/internal/platform/metrics"
	httptransport "nebula/internal/transport/http"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			srv, err := buildServer(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, srv)
		},
	}
}

// buildServer wires config, logging, metrics and the sample function into an
// http.Server.
func buildServer(cfg config.Server) (*http.Server, error) {
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	var (
		recorderOpts   []command.Option
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)
		recorderOpts = append(recorderOpts, command.WithRecorder(m.ForFunction(sampleFunction)))
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	p, err := newSampleProcessor(cfg, log, recorderOpts...)
	if err != nil {
		return nil, fmt.Errorf("build processor: %w", err)
	}
	h, err := httptransport.NewHandler(log, map[string]*command.Processor{sampleFunction: p})
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}

	log.Info("server configured",
		"addr", cfg.Addr,
		"function", sampleFunction,
		"commands", p.Registry().Names(),
		"metrics_enabled", cfg.MetricsEnabled,
	)
	return httpserver.New(cfg.Addr, httptransport.NewRouter(h, metricsHandler), cfg.ReadHeaderTimeout), nil
}

// run serves until ctx is cancelled, then shuts down within cfg.ShutdownTimeout.
func run(ctx context.Context, cfg config.Server, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
