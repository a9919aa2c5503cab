// tictactoe serves the browser game over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/app"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/config"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/logging"
	"github.com/jaminalder/minimal-tic-tac-toe/internal/web"
)

const shutdownTimeout = 5 * time.Second

var flagConfig = flag.String("config", "", "path to config.yml (default: search XDG config dirs)")

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()
	flag.Parse()

	conf := config.MustLoad(*flagConfig)
	logger, err := logging.New(conf.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func run(logger *zap.Logger, conf *config.Config) error {
	log := logger.With(zap.String("component", "app"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := app.NewService(logger, conf.Session.TTL)
	go svc.Run(ctx, conf.Session.SweepInterval)

	handler := web.NewServer(svc, logger, web.Options{
		CookieName: conf.Session.CookieName,
		Heartbeat:  conf.HTTP.Heartbeat,
	})
	srv := &http.Server{
		Addr:              conf.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", conf.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}
