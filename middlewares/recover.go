package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/hx/internal"
	"github.com/dmitrymomot/hx/pkg/htmx"
	"github.com/dmitrymomot/hx/pkg/logger"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// DefaultPanicEvent is the client event fired on HTMX requests that panicked.
const DefaultPanicEvent = "serverError"

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger            *slog.Logger
	Event             string // Client event fired for HTMX requests; empty disables it
	StackSize         int    // Max stack trace size (default: 4096)
	DisablePrintStack bool   // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverLogger sets the logger panics are reported to.
func WithRecoverLogger(log *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.Logger = log
	}
}

// WithRecoverEvent sets the client event fired for HTMX requests.
func WithRecoverEvent(event string) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.Event = event
	}
}

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that recovers from panics and answers with 500.
// HTMX requests also get the configured event in HX-Trigger and
// "HX-Reswap: none", so the page can show an error without swapping the body.
// Nothing is written when the handler already started the response.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		Logger:    logger.NewNope(),
		Event:     DefaultPanicEvent,
		StackSize: DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := internal.Wrap(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []any{slog.String("panic", fmt.Sprint(rec))}
				if !cfg.DisablePrintStack {
					stack := make([]byte, cfg.StackSize)
					stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, slog.String("stack", string(stack)))
				}
				cfg.Logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				if rw.Written() {
					return
				}

				if cfg.Event != "" && htmx.IsHTMX(r) {
					err := htmx.Respond(rw, func(h *htmx.ResponseHeaders) {
						h.WithTriggerDetail(cfg.Event, map[string]string{
							"message": http.StatusText(http.StatusInternalServerError),
						}).Reswap(htmx.SwapNone)
					})
					if err != nil {
						cfg.Logger.ErrorContext(r.Context(), "failed to write htmx trigger headers", slog.String("error", err.Error()))
					}
				}
				http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
