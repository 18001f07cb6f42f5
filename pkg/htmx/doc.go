// Package htmx provides utilities for working with HTMX requests and responses.
//
// HTMX drives page updates through a small set of HTTP headers. This package
// detects HTMX requests, reads the request headers the client sends and
// composes the response headers it understands.
//
// # Request Detection
//
// Use IsHTMX to check if an incoming HTTP request originated from an HTMX element:
//
//	func myHandler(w http.ResponseWriter, r *http.Request) {
//		if htmx.IsHTMX(r) {
//			// Handle HTMX-specific logic
//		}
//	}
//
// ParseRequest returns all HTMX request header values at once:
//
//	if hx, ok := htmx.ParseRequest(r); ok {
//		log.Info("htmx", "target", hx.Target, "boosted", hx.Boosted)
//	}
//
// # Response Headers
//
// Respond configures the response headers of a single response. The callback
// receives a ResponseHeaders builder; the triggers it declares are written when
// the callback returns:
//
//	err := htmx.Respond(w, func(h *htmx.ResponseHeaders) {
//		h.WithTrigger("contacts-updated").
//			WithTriggerDetail("showMessage", map[string]string{"message": "Saved"}).
//			WithTriggerAt(htmx.TriggerAfterSettle, "highlight", nil).
//			Retarget("#contacts")
//	})
//
// # Triggers
//
// Each TriggerTiming maps to one header: HX-Trigger, HX-Trigger-After-Settle
// and HX-Trigger-After-Swap. A single event without detail is written as the
// bare event name; anything else is written as a JSON object keyed by event
// name in the order events were added:
//
//	HX-Trigger: contacts-updated
//	HX-Trigger: {"contacts-updated":"","showMessage":{"message":"Saved"}}
//
// Adding an event twice for the same timing keeps the first detail.
//
// A trigger header written earlier in the same response, either directly
// through Trigger or by a previous Respond call, is merged instead of
// overwritten: its events are appended after the new ones. A JSON-looking
// value that does not parse makes Respond return ErrMalformedHeader.
//
// # Navigation and Redirects
//
// Location and Redirect handle navigation for both HTMX and regular requests:
//
//	// HX-Redirect for HTMX, HTTP redirect for regular requests
//	htmx.Redirect(w, r, "/new-page")
//
//	// Navigation with target element update
//	htmx.LocationTarget(w, r, "/api/users", "#user-list")
//
// # Swap Strategies
//
// The SwapStrategy type defines how content should be inserted into the target element:
//   - SwapInnerHTML: Replace inner HTML (default)
//   - SwapOuterHTML: Replace entire element
//   - SwapBeforeBegin: Insert before element
//   - SwapAfterBegin: Insert before first child
//   - SwapBeforeEnd: Insert after last child
//   - SwapAfterEnd: Insert after element
//   - SwapDelete: Remove the element
//   - SwapNone: Don't swap
//
// # CORS
//
// RequestHeaderKeys and ResponseHeaderKeys list the headers a cross-origin
// policy has to allow and expose for HTMX to work.
package htmx
