// Package hxview provides templ components and handlers for the client side of
// an HTMX application.
//
// # Client Configuration
//
// ClientConfig mirrors htmx.config. Load it from YAML and render it into the
// page head with ConfigMeta:
//
//	cfg, err := hxview.LoadClientConfig(f)
//	...
//	@hxview.ConfigMeta(cfg, &hxview.AntiforgeryTokens{
//		FormFieldName: "csrf_token",
//		HeaderName:    "X-CSRF-Token",
//		RequestToken:  token,
//	})
//
// Only fields that are set end up in the JSON, so htmx keeps its own defaults
// for everything else.
//
// # Antiforgery Script
//
// The antiforgery script copies the token from the htmx-config meta tag into
// every non-GET request and refreshes it after boosted navigation. Serve it
// from a route and reference it with AntiforgeryScriptTag:
//
//	script := hxview.Mount(r, hxview.ScriptConfig{Minified: true})
//	...
//	@hxview.AntiforgeryScriptTag(script)
//
// AntiforgeryScriptInline embeds it into the page instead, picking up the
// CSP nonce set with templ.WithNonce.
//
// # hx-headers
//
// HeadersAttrs builds an hx-headers attribute from a map:
//
//	<button hx-post="/contacts" { hxview.HeadersAttrs(nil, map[string]string{"X-Tenant": tenant})... }>
package hxview
