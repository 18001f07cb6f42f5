package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// withSentry combines out with a Sentry handler.
// Without a DSN, or when the SDK fails to start, out is returned unchanged.
func withSentry(out slog.Handler, cfg SentryConfig) slog.Handler {
	if cfg.DSN == "" {
		return out
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return out
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError}, // Errors create Issues in Sentry
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return newMultiHandler(out, sentryHandler)
}
