package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/server"
)

const fallbackShutdownTimeout = 5 * time.Second

var serveFlags struct {
	listen string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket API",
	Long: `Serves the validation API, the live decision feed on /ws/decisions,
Prometheus metrics on /metrics and the API docs on /swagger/.

SIGINT or SIGTERM drains in-flight requests for up to server.shutdown_timeout.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.listen, "listen", "", "Override server.listen_addr")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApplication(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.Config.Server
	if serveFlags.listen != "" {
		cfg.ListenAddr = serveFlags.listen
	}
	srv, err := server.NewServer(cfg, a.ServerDeps(), a.Logger.With(logging.Field{Key: "component", Value: "server"}))
	if err != nil {
		return err
	}
	httpSrv := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("listening",
			logging.Field{Key: "addr", Value: cfg.ListenAddr},
			logging.Field{Key: "h2c", Value: cfg.EnableH2C})
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = fallbackShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.Logger.Info("shutting down", logging.Field{Key: "timeout", Value: timeout.String()})
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
