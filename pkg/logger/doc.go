// Package logger builds structured slog loggers with context extraction and
// optional Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(middlewares.HTMXExtractor()),
//	)
//
//	log.InfoContext(r.Context(), "contact saved")
//	// {"level":"INFO","msg":"contact saved","htmx":{"target":"contacts","trigger":"save"}}
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run for every record logged with a context; returning false
// skips the attribute. NewLogHandlerDecorator applies them to any slog.Handler.
//
// # Sentry
//
// WithSentry forwards warnings and errors to Sentry next to the JSON output.
// With an empty DSN, or when the SDK fails to start, the logger quietly stays
// output-only, so the same wiring works in development.
//
// NewNope returns a logger that discards everything.
package logger
