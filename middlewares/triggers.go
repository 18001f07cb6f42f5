package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/hx/internal"
	"github.com/dmitrymomot/hx/pkg/htmx"
	"github.com/dmitrymomot/hx/pkg/logger"
)

// TriggersConfig configures the Triggers middleware.
type TriggersConfig struct {
	Logger *slog.Logger
	// HTMXOnly skips writing trigger headers for requests not made by HTMX.
	HTMXOnly bool
}

// TriggersOption configures TriggersConfig.
type TriggersOption func(*TriggersConfig)

// WithTriggersLogger sets the logger used to report trigger header failures.
func WithTriggersLogger(log *slog.Logger) TriggersOption {
	return func(cfg *TriggersConfig) {
		cfg.Logger = log
	}
}

// WithTriggersHTMXOnly drops collected triggers on non-HTMX requests.
func WithTriggersHTMXOnly() TriggersOption {
	return func(cfg *TriggersConfig) {
		cfg.HTMXOnly = true
	}
}

type triggersKey struct{}

// pendingTriggers collects triggers declared while a request is handled.
type pendingTriggers struct {
	events []htmx.TriggerEvent
	mu     sync.Mutex
}

func (p *pendingTriggers) add(ev htmx.TriggerEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *pendingTriggers) take() []htmx.TriggerEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.events
	p.events = nil
	return events
}

// Triggers returns middleware that lets handlers and services declare client
// events through the request context. The collected events are written with
// htmx.Apply right before the response headers are sent; failures are logged
// and the response goes out without them.
//
//	middlewares.AddTrigger(r.Context(), "contacts-updated", nil)
//	middlewares.AddTriggerAt(r.Context(), htmx.TriggerAfterSwap, "highlight", map[string]int{"id": 42})
func Triggers(opts ...TriggersOption) func(http.Handler) http.Handler {
	cfg := &TriggersConfig{
		Logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.HTMXOnly && !htmx.IsHTMX(r) {
				next.ServeHTTP(w, r)
				return
			}

			pending := &pendingTriggers{}
			ctx := context.WithValue(r.Context(), triggersKey{}, pending)

			rw := internal.Wrap(w)
			rw.OnBeforeWrite(func(h http.Header) {
				events := pending.take()
				if len(events) == 0 {
					return
				}
				err := htmx.Apply(h, func(rh *htmx.ResponseHeaders) {
					for _, ev := range events {
						rh.WithTriggerAt(ev.Timing, ev.Name, ev.Detail)
					}
				})
				if err != nil {
					cfg.Logger.ErrorContext(ctx, "failed to write htmx trigger headers",
						slog.Int("events", len(events)),
						slog.String("error", err.Error()),
					)
				}
			})

			next.ServeHTTP(rw, r.WithContext(ctx))
			rw.Finish()
		})
	}
}

// AddTrigger declares an event fired as soon as the response is received.
// It reports false when ctx does not come from a request handled by Triggers.
func AddTrigger(ctx context.Context, event string, detail any) bool {
	return AddTriggerAt(ctx, htmx.TriggerDefault, event, detail)
}

// AddTriggerAt declares an event for the given timing.
func AddTriggerAt(ctx context.Context, timing htmx.TriggerTiming, event string, detail any) bool {
	pending, ok := ctx.Value(triggersKey{}).(*pendingTriggers)
	if !ok {
		return false
	}
	pending.add(htmx.TriggerEvent{Name: event, Detail: detail, Timing: timing})
	return true
}
