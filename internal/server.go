package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Serve runs handler until ctx is canceled or the process receives SIGINT or
// SIGTERM, then shuts the server down gracefully. Hooks run after the server
// has stopped accepting requests.
func Serve(ctx context.Context, cfg ServerConfig, handler http.Handler, log *slog.Logger, hooks ...func(context.Context) error) error {
	if cfg.Address == "" {
		cfg.Address = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	server := &http.Server{
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Listen first so the logged address is the real one.
	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		errs := []error{server.Shutdown(shutdownCtx)}
		for _, hook := range hooks {
			if err := hook(shutdownCtx); err != nil {
				log.Error("shutdown hook failed", slog.String("error", err.Error()))
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown completed with errors", slog.String("error", err.Error()))
		return err
	}

	log.Info("shutdown completed")
	return nil
}
