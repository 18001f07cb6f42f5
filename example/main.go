// Command example serves a small contacts app showing the hx packages together.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/hx/internal"
	"github.com/dmitrymomot/hx/middlewares"
	"github.com/dmitrymomot/hx/pkg/hxview"
	"github.com/dmitrymomot/hx/pkg/logger"
)

type config struct {
	Server         internal.ServerConfig
	Sentry         logger.SentryConfig
	Script         hxview.ScriptConfig
	ClientConfig   string     `env:"HTMX_CONFIG_FILE" envDefault:"example/htmx.yaml"`
	AllowedOrigins []string   `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithSentry(cfg.Sentry),
		logger.WithExtractors(middlewares.RequestIDExtractor(), middlewares.HTMXExtractor()),
	)

	clientCfg, err := loadClientConfig(cfg.ClientConfig)
	if err != nil {
		log.Error("failed to load htmx client config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := chi.NewRouter()
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.AllowedOrigins...),
			middlewares.WithAllowCredentials(),
			middlewares.WithHTMXHeaders(),
			middlewares.WithExposedHTMXHeaders(),
		))
	}
	r.Use(
		middlewares.RequestID(),
		middlewares.HTMX(middlewares.WithHTMXLogger(log), middlewares.WithStatusNormalization()),
		middlewares.Recover(middlewares.WithRecoverLogger(log)),
		middlewares.Triggers(middlewares.WithTriggersLogger(log)),
	)

	script := hxview.Mount(r, cfg.Script)
	app := newContactsApp(log, clientCfg, script)
	app.Routes(r)

	if err := internal.Serve(context.Background(), cfg.Server, r, log); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadClientConfig(path string) (hxview.ClientConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return hxview.ClientConfig{}, nil
		}
		return hxview.ClientConfig{}, err
	}
	defer func() { _ = f.Close() }()

	return hxview.LoadClientConfig(f)
}
