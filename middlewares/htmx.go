package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hx/internal"
	"github.com/dmitrymomot/hx/pkg/htmx"
	"github.com/dmitrymomot/hx/pkg/logger"
)

// HTMXConfig configures the HTMX middleware.
type HTMXConfig struct {
	Logger          *slog.Logger
	Vary            bool // Add "Vary: HX-Request" to every response
	NormalizeStatus bool // Send error statuses to HTMX clients as 200 so the response is swapped
}

// HTMXOption configures HTMXConfig.
type HTMXOption func(*HTMXConfig)

// WithHTMXLogger sets the logger used for request debug output.
func WithHTMXLogger(log *slog.Logger) HTMXOption {
	return func(cfg *HTMXConfig) {
		cfg.Logger = log
	}
}

// WithoutVary disables the Vary header.
func WithoutVary() HTMXOption {
	return func(cfg *HTMXConfig) {
		cfg.Vary = false
	}
}

// WithStatusNormalization makes 4xx and 5xx responses to HTMX requests go out
// as 200. HTMX does not swap error responses by default.
func WithStatusNormalization() HTMXOption {
	return func(cfg *HTMXConfig) {
		cfg.NormalizeStatus = true
	}
}

// HTMX returns middleware that stores the parsed HTMX request headers in the
// request context. Read them with htmx.RequestHeadersFromContext.
func HTMX(opts ...HTMXOption) func(http.Handler) http.Handler {
	cfg := &HTMXConfig{
		Logger: logger.NewNope(),
		Vary:   true,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Vary {
				_ = htmx.Apply(w.Header(), func(h *htmx.ResponseHeaders) {
					h.WithVary()
				})
			}

			hx, ok := htmx.ParseRequest(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := htmx.WithRequestHeaders(r.Context(), hx)
			cfg.Logger.DebugContext(ctx, "htmx request",
				slog.String("target", hx.Target),
				slog.String("trigger", hx.Trigger),
				slog.Bool("boosted", hx.Boosted),
			)

			if cfg.NormalizeStatus {
				rw := internal.Wrap(w)
				rw.RewriteStatus(normalizeStatus)
				w = rw
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func normalizeStatus(code int) int {
	if code >= http.StatusBadRequest {
		return http.StatusOK
	}
	return code
}

// HTMXExtractor returns a ContextExtractor adding an "htmx" group with the
// request's target, trigger and boosted flag to log records.
// It requires the HTMX middleware.
func HTMXExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		hx, ok := htmx.RequestHeadersFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}

		attrs := make([]any, 0, 4)
		if hx.Target != "" {
			attrs = append(attrs, slog.String("target", hx.Target))
		}
		if hx.Trigger != "" {
			attrs = append(attrs, slog.String("trigger", hx.Trigger))
		}
		if hx.TriggerName != "" {
			attrs = append(attrs, slog.String("trigger_name", hx.TriggerName))
		}
		if hx.Boosted {
			attrs = append(attrs, slog.Bool("boosted", true))
		}
		return slog.Group("htmx", attrs...), true
	}
}
