package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"loramgr/internal/httpapi"
	"loramgr/internal/registry"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr         string
		corsOrigins  string
		maxBodyBytes int64
	)
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the pool resolver over HTTP",
		Example: "  loramgr serve --addr :8188 --loras-dir ~/models/loras",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			if origins := splitCSV(corsOrigins); len(origins) > 0 {
				a.cfg.CORSOrigins = origins
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, maxBodyBytes)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8188 (defaults LORAMGR_ADDR)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated CORS origins; empty disables CORS")
	cmd.Flags().Int64Var(&maxBodyBytes, "max-body-bytes", 0, "Maximum pool request body size (0 = 1MiB)")
	return cmd
}

// serve runs the resolver until ctx is cancelled, then shuts down
// gracefully.
func (a *app) serve(ctx context.Context, maxBodyBytes int64) error {
	lib := registry.NewLibrary(a.cfg.LorasDir, a.cfg.ScanTTL(), a.log)
	if !lib.Ready() {
		a.log.Warn().Str("loras_dir", a.cfg.LorasDir).Msg("loras dir missing; /readyz will report unavailable")
	}

	httpapi.SetLogger(a.log)
	httpapi.SetDefaultLogLevel(a.cfg.LogLevel)
	httpapi.SetMaxBodyBytes(maxBodyBytes)
	httpapi.SetCORSOptions(len(a.cfg.CORSOrigins) > 0, a.cfg.CORSOrigins, nil, nil)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           httpapi.NewMux(lib),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.Addr).Str("loras_dir", a.cfg.LorasDir).Msg("loramgr listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("graceful shutdown")
		return err
	}
	return nil
}
