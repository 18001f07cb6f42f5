package htmx

import (
	"net/http"
)

// LocationOptions is the object form of the HX-Location header.
// See https://htmx.org/headers/hx-location/
type LocationOptions struct {
	Values  map[string]any    `json:"values,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	// Push is "false" or a path overriding the URL pushed to history.
	Push    any    `json:"push,omitempty"`
	Path    string `json:"path"`
	Source  string `json:"source,omitempty"`
	Event   string `json:"event,omitempty"`
	Handler string `json:"handler,omitempty"`
	Target  string `json:"target,omitempty"`
	Swap    string `json:"swap,omitempty"`
	Select  string `json:"select,omitempty"`
	Replace string `json:"replace,omitempty"`
}

func (o LocationOptions) pathOnly() bool {
	return o.Source == "" && o.Event == "" && o.Handler == "" && o.Target == "" &&
		o.Swap == "" && o.Select == "" && o.Replace == "" && o.Push == nil &&
		len(o.Values) == 0 && len(o.Headers) == 0
}

// Location performs a client-side navigation with URL update and history entry.
// Regular requests get a 302 redirect instead.
func Location(w http.ResponseWriter, r *http.Request, path string) {
	LocationWithOptions(w, r, LocationOptions{Path: path})
}

// LocationTarget performs a client-side navigation that updates a specific element.
func LocationTarget(w http.ResponseWriter, r *http.Request, path, target string) {
	LocationWithOptions(w, r, LocationOptions{Path: path, Target: target})
}

// LocationWithOptions performs a client-side navigation with full HTMX location options.
func LocationWithOptions(w http.ResponseWriter, r *http.Request, opts LocationOptions) {
	if !IsHTMX(r) {
		http.Redirect(w, r, opts.Path, http.StatusFound)
		return
	}

	_ = Respond(w, func(h *ResponseHeaders) {
		h.Location(opts)
	})
	w.WriteHeader(http.StatusOK)
}
