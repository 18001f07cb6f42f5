package hxview

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// The content attribute is single-quoted so the JSON double quotes survive.
// encoding/json already escapes <, > and &.
var metaEscaper = strings.NewReplacer("'", "&#39;")

// ConfigMeta renders cfg as the htmx-config meta tag:
//
//	<meta name="htmx-config" content='{"historyCacheSize":20,"antiForgery":{...}}'>
//
// tokens may be nil when the page has no antiforgery protection.
func ConfigMeta(cfg ClientConfig, tokens *AntiforgeryTokens) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		data, err := cfg.JSON(tokens)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<meta name="htmx-config" content='`+metaEscaper.Replace(string(data))+`'>`)
		return err
	})
}
