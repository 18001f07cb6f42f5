package hxview

import (
	"context"
	_ "embed"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

//go:embed js/antiforgery.js
var antiforgeryJS string

//go:embed js/antiforgery.min.js
var antiforgeryMinJS string

// DefaultScriptPath is where Mount serves the antiforgery script when
// ScriptConfig.Path is empty.
const DefaultScriptPath = "/_htmx/antiforgery.js"

// ScriptConfig configures how the antiforgery script is served.
// Pass the value returned by Mount to AntiforgeryScriptTag so the tag and the
// route agree on the path.
type ScriptConfig struct {
	Path     string `env:"HTMX_ANTIFORGERY_PATH" envDefault:"/_htmx/antiforgery.js"`
	Minified bool   `env:"HTMX_ANTIFORGERY_MINIFIED" envDefault:"true"`
}

func (c ScriptConfig) withDefaults() ScriptConfig {
	if c.Path == "" {
		c.Path = DefaultScriptPath
	}
	if !strings.HasPrefix(c.Path, "/") {
		c.Path = "/" + c.Path
	}
	return c
}

// AntiforgeryScript returns the antiforgery JavaScript source.
func AntiforgeryScript(minified bool) string {
	if minified {
		return antiforgeryMinJS
	}
	return antiforgeryJS
}

// AntiforgeryScriptHandler serves the antiforgery script.
func AntiforgeryScriptHandler(cfg ScriptConfig) http.Handler {
	body := AntiforgeryScript(cfg.Minified)
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = io.WriteString(w, body)
	})
}

// Mount registers the antiforgery script route on r and returns the
// effective config, with the default path filled in.
func Mount(r chi.Router, cfg ScriptConfig) ScriptConfig {
	cfg = cfg.withDefaults()
	r.Method(http.MethodGet, cfg.Path, AntiforgeryScriptHandler(cfg))
	return cfg
}

// AntiforgeryScriptTag renders a deferred script tag loading the script
// served by Mount.
func AntiforgeryScriptTag(cfg ScriptConfig) templ.Component {
	cfg = cfg.withDefaults()
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<script src="`+templ.EscapeString(cfg.Path)+`" defer></script>`)
		return err
	})
}

// AntiforgeryScriptInline renders the script inline. A nonce stored with
// templ.WithNonce is added to the tag.
func AntiforgeryScriptInline(minified bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tag := "<script>"
		if nonce := templ.GetNonce(ctx); nonce != "" {
			tag = `<script nonce="` + templ.EscapeString(nonce) + `">`
		}
		_, err := io.WriteString(w, tag+AntiforgeryScript(minified)+"</script>")
		return err
	})
}
