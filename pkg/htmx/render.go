package htmx

import (
	"context"
	"io"
	"net/http"
)

// Renderable is the interface for OOB components.
// Compatible with templ.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// TriggerEvent is a client event declared through render options.
type TriggerEvent struct {
	Detail any
	Name   string
	Timing TriggerTiming
}

// Config holds HTMX render configuration.
type Config struct {
	Reswap        SwapStrategy
	Retarget      string
	Reselect      string
	PushURL       string
	ReplaceURL    string
	OOBComponents []Renderable
	Triggers      []TriggerEvent
	Refresh       bool
}

// RenderOption configures HTMX render behavior.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders sets HTMX headers on the response.
// Must be called before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) error {
	if c == nil {
		return nil
	}

	return Respond(w, func(h *ResponseHeaders) {
		if c.Retarget != "" {
			h.Retarget(c.Retarget)
		}
		if c.Reswap != "" {
			h.Reswap(c.Reswap)
		}
		if c.Reselect != "" {
			h.Reselect(c.Reselect)
		}
		if c.PushURL != "" {
			h.PushURL(c.PushURL)
		}
		if c.ReplaceURL != "" {
			h.ReplaceURL(c.ReplaceURL)
		}
		if c.Refresh {
			h.Refresh()
		}
		for _, t := range c.Triggers {
			h.WithTriggerAt(t.Timing, t.Name, t.Detail)
		}
	})
}

// RenderOOB writes the out-of-band components after the main content.
func (c *Config) RenderOOB(ctx context.Context, w io.Writer) error {
	if c == nil {
		return nil
	}
	for _, comp := range c.OOBComponents {
		if err := comp.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// WithOOB appends out-of-band components to render after the main component.
// Components must include id and hx-swap-oob attributes.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

// WithRetarget sets the HX-Retarget header to change the target element.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap sets the HX-Reswap header to change the swap strategy.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithReselect sets the HX-Reselect header to select a subset of the response.
func WithReselect(selector string) RenderOption {
	return func(c *Config) {
		c.Reselect = selector
	}
}

// WithPushURL sets the HX-Push-Url header to update browser history.
// Pass "false" to prevent URL update.
func WithPushURL(url string) RenderOption {
	return func(c *Config) {
		c.PushURL = url
	}
}

// WithReplaceURL sets the HX-Replace-Url header to replace current URL.
// Pass "false" to prevent URL replacement.
func WithReplaceURL(url string) RenderOption {
	return func(c *Config) {
		c.ReplaceURL = url
	}
}

// WithTrigger adds events to the HX-Trigger header.
// One event is sent bare, several as a JSON object.
func WithTrigger(events ...string) RenderOption {
	return withTriggers(TriggerDefault, events)
}

// WithTriggerDetail adds an event with a JSON payload to the HX-Trigger header.
func WithTriggerDetail(event string, detail any) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, TriggerEvent{Name: event, Detail: detail})
	}
}

// WithTriggerAfterSwap adds events to the HX-Trigger-After-Swap header.
func WithTriggerAfterSwap(events ...string) RenderOption {
	return withTriggers(TriggerAfterSwap, events)
}

// WithTriggerAfterSettle adds events to the HX-Trigger-After-Settle header.
func WithTriggerAfterSettle(events ...string) RenderOption {
	return withTriggers(TriggerAfterSettle, events)
}

func withTriggers(timing TriggerTiming, events []string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.Triggers = append(c.Triggers, TriggerEvent{Name: e, Timing: timing})
		}
	}
}

// WithRefresh sets the HX-Refresh header to force a full page refresh.
func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}
