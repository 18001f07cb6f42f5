package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger settings.
type Config struct {
	Output     io.Writer
	Sentry     *SentryConfig
	Extractors []ContextExtractor
	Level      slog.Level
}

// Option configures the logger.
type Option func(*Config)

// WithLevel sets the minimum level written to the output.
func WithLevel(level slog.Level) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithOutput sets the writer JSON records go to. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Output = w
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *Config) {
		c.Extractors = append(c.Extractors, extractors...)
	}
}

// WithSentry also forwards warnings and errors to Sentry.
// An empty DSN keeps output-only logging.
func WithSentry(cfg SentryConfig) Option {
	return func(c *Config) {
		c.Sentry = &cfg
	}
}

// New creates a JSON-formatted logger.
func New(opts ...Option) *slog.Logger {
	cfg := Config{
		Output: os.Stdout,
		Level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var handler slog.Handler = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{
		Level: cfg.Level,
	})
	if cfg.Sentry != nil {
		handler = withSentry(handler, *cfg.Sentry)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.Extractors...))
}

// NewNope creates a logger that discards all output.
// Middlewares use it when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
