package htmx_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/hx/pkg/htmx"
)

// mockComponent implements htmx.Renderable for testing.
type mockComponent struct {
	err     error
	content string
}

func (m mockComponent) Render(_ context.Context, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	_, err := w.Write([]byte(m.content))
	return err
}

func applyConfig(t *testing.T, opts ...htmx.RenderOption) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := htmx.NewConfig(opts...).ApplyHeaders(rec); err != nil {
		t.Fatalf("ApplyHeaders: %v", err)
	}
	return rec
}

func TestRenderOptionHeaders(t *testing.T) {
	tests := []struct {
		name   string
		opt    htmx.RenderOption
		header string
		want   string
	}{
		{"retarget", htmx.WithRetarget("#content"), "HX-Retarget", "#content"},
		{"reswap", htmx.WithReswap(htmx.SwapOuterHTML), "HX-Reswap", "outerHTML"},
		{"reswap with modifiers", htmx.WithReswap(htmx.SwapInnerHTML.With("swap:1s", "scroll:top")), "HX-Reswap", "innerHTML swap:1s scroll:top"},
		{"reselect", htmx.WithReselect(".items"), "HX-Reselect", ".items"},
		{"push url", htmx.WithPushURL("/contacts/123"), "HX-Push-Url", "/contacts/123"},
		{"push url false", htmx.WithPushURL("false"), "HX-Push-Url", "false"},
		{"replace url", htmx.WithReplaceURL("/new-url"), "HX-Replace-Url", "/new-url"},
		{"refresh", htmx.WithRefresh(), "HX-Refresh", "true"},
		{"trigger", htmx.WithTrigger("contacts-updated"), "HX-Trigger", "contacts-updated"},
		{"trigger after swap", htmx.WithTriggerAfterSwap("swapped"), "HX-Trigger-After-Swap", "swapped"},
		{"trigger after settle", htmx.WithTriggerAfterSettle("settled"), "HX-Trigger-After-Settle", "settled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := applyConfig(t, tt.opt)
			if got := rec.Header().Get(tt.header); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestWithTriggerMultiple(t *testing.T) {
	rec := applyConfig(t, htmx.WithTrigger("event1", "event2", "event3"))

	got := rec.Header().Get("HX-Trigger")
	want := `{"event1":"","event2":"","event3":""}`
	if got != want {
		t.Errorf("HX-Trigger = %q, want %q", got, want)
	}
}

func TestTriggerChaining(t *testing.T) {
	rec := applyConfig(t,
		htmx.WithTrigger("event1"),
		htmx.WithTriggerDetail("event2", map[string]int{"id": 7}),
		htmx.WithTrigger("event1"),
	)

	got := rec.Header().Get("HX-Trigger")
	want := `{"event1":"","event2":{"id":7}}`
	if got != want {
		t.Errorf("HX-Trigger = %q, want %q", got, want)
	}
}

func TestApplyHeadersMergesExistingTrigger(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("HX-Trigger", "wow")

	if err := htmx.NewConfig(htmx.WithTrigger("cool")).ApplyHeaders(rec); err != nil {
		t.Fatalf("ApplyHeaders: %v", err)
	}

	got := rec.Header().Get("HX-Trigger")
	want := `{"cool":"","wow":""}`
	if got != want {
		t.Errorf("HX-Trigger = %q, want %q", got, want)
	}
}

func TestApplyHeadersMalformedTrigger(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("HX-Trigger", "{not json}")

	err := htmx.NewConfig(htmx.WithTrigger("cool")).ApplyHeaders(rec)
	if !errors.Is(err, htmx.ErrMalformedHeader) {
		t.Fatalf("ApplyHeaders error = %v, want %v", err, htmx.ErrMalformedHeader)
	}
}

func TestMultipleOptions(t *testing.T) {
	rec := applyConfig(t,
		htmx.WithRetarget("#main"),
		htmx.WithReswap(htmx.SwapInnerHTML),
		htmx.WithTrigger("updated"),
		htmx.WithPushURL("/new"),
	)

	tests := []struct {
		header string
		want   string
	}{
		{"HX-Retarget", "#main"},
		{"HX-Reswap", "innerHTML"},
		{"HX-Trigger", "updated"},
		{"HX-Push-Url", "/new"},
	}

	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestEmptyOptions(t *testing.T) {
	rec := applyConfig(t)

	for _, h := range htmx.ResponseHeaderKeys() {
		if got := rec.Header().Get(h); got != "" {
			t.Errorf("%s = %q, want empty", h, got)
		}
	}
}

func TestNilConfigApplyHeaders(t *testing.T) {
	var cfg *htmx.Config
	rec := httptest.NewRecorder()

	if err := cfg.ApplyHeaders(rec); err != nil {
		t.Errorf("ApplyHeaders on nil config = %v", err)
	}
	if err := cfg.RenderOOB(context.Background(), rec); err != nil {
		t.Errorf("RenderOOB on nil config = %v", err)
	}
}

func TestRenderOOB(t *testing.T) {
	cfg := htmx.NewConfig(
		htmx.WithOOB(mockComponent{content: `<div id="a" hx-swap-oob="true">1</div>`}),
		htmx.WithOOB(mockComponent{content: `<div id="b" hx-swap-oob="true">2</div>`}),
	)
	if len(cfg.OOBComponents) != 2 {
		t.Fatalf("OOBComponents len = %d, want 2", len(cfg.OOBComponents))
	}

	var buf bytes.Buffer
	if err := cfg.RenderOOB(context.Background(), &buf); err != nil {
		t.Fatalf("RenderOOB: %v", err)
	}

	want := `<div id="a" hx-swap-oob="true">1</div><div id="b" hx-swap-oob="true">2</div>`
	if buf.String() != want {
		t.Errorf("RenderOOB wrote %q, want %q", buf.String(), want)
	}
}

func TestRenderOOBStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	cfg := htmx.NewConfig(htmx.WithOOB(
		mockComponent{err: boom},
		mockComponent{content: "never"},
	))

	var buf bytes.Buffer
	if err := cfg.RenderOOB(context.Background(), &buf); !errors.Is(err, boom) {
		t.Fatalf("RenderOOB error = %v, want %v", err, boom)
	}
	if buf.Len() != 0 {
		t.Errorf("RenderOOB wrote %q after error", buf.String())
	}
}
