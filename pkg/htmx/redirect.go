package htmx

import (
	"net/http"
)

// Redirect performs a redirect for both HTMX and regular requests.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	RedirectWithStatus(w, r, url, http.StatusFound)
}

// RedirectWithStatus performs a redirect with a custom status code.
// HTMX requests get HX-Redirect with status 200; the client follows it itself.
func RedirectWithStatus(w http.ResponseWriter, r *http.Request, targetURL string, status int) {
	if !IsHTMX(r) {
		http.Redirect(w, r, targetURL, status)
		return
	}

	_ = Respond(w, func(h *ResponseHeaders) {
		h.Redirect(targetURL)
	})
	w.WriteHeader(http.StatusOK)
}

// Refresh asks HTMX clients to reload the whole page.
// Regular requests are redirected back to the same URL.
func Refresh(w http.ResponseWriter, r *http.Request) {
	if !IsHTMX(r) {
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
		return
	}

	_ = Respond(w, func(h *ResponseHeaders) {
		h.Refresh()
	})
	w.WriteHeader(http.StatusOK)
}

// RedirectBack redirects to the URL in the "redirect" query parameter, or fallback if not present.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	redirectURL := r.URL.Query().Get("redirect")
	if redirectURL == "" {
		redirectURL = fallback
	}

	Redirect(w, r, redirectURL)
}
