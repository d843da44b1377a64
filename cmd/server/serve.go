package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exercise-tracker/internal/app"
	"exercise-tracker/internal/config"
	"exercise-tracker/internal/ws"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving (postgres only)")
}

func runServe(cmd *cobra.Command, args []string) error {
	var opts []app.ContainerOption
	if serveMigrate {
		opts = append(opts, app.WithMigrations())
	}

	bootstrap, cleanup, err := app.Bootstrap(cfg, log, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		log.Info("http listening", zap.String("addr", addr))
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	feed := startFeed(ctx, bootstrap.Container, cfg.Feed, errCh)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if feed != nil {
		if err := feed.Shutdown(shutdownCtx); err != nil {
			log.Warn("feed shutdown error", zap.Error(err))
		}
	}
	return bootstrap.Fiber.ShutdownWithContext(shutdownCtx)
}

func startFeed(ctx context.Context, c *app.Container, fc config.FeedConfig, errCh chan<- error) *http.Server {
	if c == nil || c.Hub == nil || !fc.Enabled() {
		return nil
	}

	addr, err := app.ListenAddr(fc.Port)
	if err != nil {
		errCh <- err
		return nil
	}

	go c.Hub.Run(ctx)
	srv := ws.NewServer(addr, ws.NewHandler(c.Hub, log))
	go func() {
		log.Info("feed listening", zap.String("addr", addr), zap.String("path", ws.FeedPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return srv
}
