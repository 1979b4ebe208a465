package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	web "venueadmin/internal/adapters/http"
	"venueadmin/internal/application/orchestrators"
	"venueadmin/internal/application/pages"
	"venueadmin/internal/config"
)

// shutdownTimeout bounds graceful shutdown, including the settings flush.
const shutdownTimeout = 10 * time.Second

func newServeCmd(st *cliState) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), st.cfg, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load demo data into an empty database first")
	return cmd
}

// runServe serves HTTP until SIGINT/SIGTERM, then drains requests and
// flushes pending settings writes.
func runServe(parent context.Context, cfg config.Config, seed bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := openRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			slog.Error("shutdown_failed", "error", err)
		}
	}()

	if seed {
		res, err := orchestrators.ExecuteSeedDemoData(ctx, rt.seedDeps())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		slog.Info("seed_checked", "skipped", res.Skipped)
	}

	registry, err := pages.New(rt.deps)
	if err != nil {
		return err
	}
	handler := web.NewMux(&web.App{
		Config: cfg,
		Stores: web.Stores{
			Venues:      rt.deps.Venues,
			Clients:     rt.deps.Clients,
			Bookings:    rt.deps.Bookings,
			Receivables: rt.deps.Receivables,
		},
		Pages:     registry,
		Settings:  rt.settings,
		Defaults:  rt.defaults,
		Collector: rt.collector,
		Money:     rt.deps.Money,
		Location:  rt.deps.Location,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "settings_backend", cfg.Settings.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
