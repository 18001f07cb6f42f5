package htmx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HeaderBag is the outgoing header collection the response helpers write to.
// http.Header satisfies it.
type HeaderBag interface {
	Get(key string) string
	Values(key string) []string
	Set(key, value string)
	Add(key, value string)
}

// ResponseHeaders configures htmx response headers for a single response.
// It is created by Apply or Respond and must not be retained after the
// callback returns.
type ResponseHeaders struct {
	headers  HeaderBag
	err      error
	triggers [len(triggerTimings)]*triggerSet
}

// Apply runs fn against a fresh ResponseHeaders bound to h and then processes
// the accumulated triggers exactly once.
func Apply(h HeaderBag, fn func(*ResponseHeaders)) error {
	rh := &ResponseHeaders{headers: h}
	if fn != nil {
		fn(rh)
	}
	return rh.Process()
}

// Respond is Apply for the headers of w.
//
//	err := htmx.Respond(w, func(h *htmx.ResponseHeaders) {
//		h.WithTrigger("contacts-updated").
//			WithTriggerDetail("showMessage", map[string]string{"message": "Saved"})
//	})
func Respond(w http.ResponseWriter, fn func(*ResponseHeaders)) error {
	return Apply(w.Header(), fn)
}

// WithTrigger adds an event without detail fired as soon as the response is received.
func (h *ResponseHeaders) WithTrigger(event string) *ResponseHeaders {
	return h.WithTriggerAt(TriggerDefault, event, nil)
}

// WithTriggerDetail adds an event carrying a JSON-serializable detail.
func (h *ResponseHeaders) WithTriggerDetail(event string, payload any) *ResponseHeaders {
	return h.WithTriggerAt(TriggerDefault, event, payload)
}

// WithTriggerAt adds an event at the given timing. A nil payload means no detail.
// Adding an event name that is already present for the timing is a no-op;
// the first payload is kept.
func (h *ResponseHeaders) WithTriggerAt(timing TriggerTiming, event string, payload any) *ResponseHeaders {
	if event == "" {
		if h.err == nil {
			h.err = ErrEmptyEventName
		}
		return h
	}
	if timing < TriggerDefault || int(timing) >= len(h.triggers) {
		timing = TriggerDefault
	}

	set := h.triggers[timing]
	if set == nil {
		set = newTriggerSet()
		h.triggers[timing] = set
	}
	set.add(event, valueDetail(payload))
	return h
}

// Process writes accumulated triggers to the header bag. Values already present
// on a trigger header are merged in after the triggers added here, so earlier
// writers are not lost. Apply and Respond call it for you.
func (h *ResponseHeaders) Process() error {
	if h.err != nil {
		return h.err
	}

	for _, timing := range triggerTimings {
		set := h.triggers[timing]
		if set == nil || set.len() == 0 {
			continue
		}

		name := timing.Header()
		if existing := h.headers.Values(name); len(existing) > 0 {
			if err := set.merge(strings.Join(existing, ",")); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}

		value, err := set.encode()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		h.headers.Set(name, value)
	}

	return nil
}

// Trigger sets HX-Trigger directly, replacing any previous value.
// Triggers added through WithTrigger are merged with it on Process.
func (h *ResponseHeaders) Trigger(value string) *ResponseHeaders {
	h.headers.Set(HeaderHXTrigger, value)
	return h
}

// TriggerAfterSettle sets HX-Trigger-After-Settle directly.
func (h *ResponseHeaders) TriggerAfterSettle(value string) *ResponseHeaders {
	h.headers.Set(HeaderHXTriggerAfterSettle, value)
	return h
}

// TriggerAfterSwap sets HX-Trigger-After-Swap directly.
func (h *ResponseHeaders) TriggerAfterSwap(value string) *ResponseHeaders {
	h.headers.Set(HeaderHXTriggerAfterSwap, value)
	return h
}

// Push sets the deprecated HX-Push header.
func (h *ResponseHeaders) Push(url string) *ResponseHeaders {
	h.headers.Set(HeaderHXPush, url)
	return h
}

// PushURL pushes a new URL into the browser history stack.
func (h *ResponseHeaders) PushURL(url string) *ResponseHeaders {
	h.headers.Set(HeaderHXPushURL, url)
	return h
}

// PreventPush stops htmx from updating the browser history.
func (h *ResponseHeaders) PreventPush() *ResponseHeaders {
	return h.PushURL("false")
}

// ReplaceURL replaces the current URL in the browser location bar.
func (h *ResponseHeaders) ReplaceURL(url string) *ResponseHeaders {
	h.headers.Set(HeaderHXReplaceURL, url)
	return h
}

// PreventReplace stops htmx from replacing the current URL.
func (h *ResponseHeaders) PreventReplace() *ResponseHeaders {
	return h.ReplaceURL("false")
}

// Redirect performs a client-side redirect to url.
func (h *ResponseHeaders) Redirect(url string) *ResponseHeaders {
	h.headers.Set(HeaderHXRedirect, url)
	return h
}

// Refresh forces a full page refresh on the client.
func (h *ResponseHeaders) Refresh() *ResponseHeaders {
	h.headers.Set(HeaderHXRefresh, "true")
	return h
}

// Retarget changes the target element to the given CSS selector.
func (h *ResponseHeaders) Retarget(selector string) *ResponseHeaders {
	h.headers.Set(HeaderHXRetarget, selector)
	return h
}

// Reswap overrides the swap strategy of the request.
func (h *ResponseHeaders) Reswap(strategy SwapStrategy) *ResponseHeaders {
	h.headers.Set(HeaderHXReswap, string(strategy))
	return h
}

// Reselect chooses which part of the response is swapped in.
func (h *ResponseHeaders) Reselect(selector string) *ResponseHeaders {
	h.headers.Set(HeaderHXReselect, selector)
	return h
}

// Location performs a client-side navigation without a full page reload.
// Options with only a path are written as a plain string.
func (h *ResponseHeaders) Location(opts LocationOptions) *ResponseHeaders {
	if opts.pathOnly() {
		h.headers.Set(HeaderHXLocation, opts.Path)
		return h
	}

	data, err := json.Marshal(opts)
	if err != nil {
		// Fallback to path-only if options serialization fails
		h.headers.Set(HeaderHXLocation, opts.Path)
		return h
	}
	h.headers.Set(HeaderHXLocation, string(data))
	return h
}

// WithVary adds "Vary: HX-Request" so caches keep htmx and full-page responses apart.
func (h *ResponseHeaders) WithVary() *ResponseHeaders {
	for _, v := range h.headers.Values(HeaderVary) {
		for _, part := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), HeaderHXRequest) {
				return h
			}
		}
	}
	h.headers.Add(HeaderVary, HeaderHXRequest)
	return h
}

// StopPolling responds with status 286, which makes htmx stop polling.
func StopPolling(w http.ResponseWriter) {
	w.WriteHeader(StatusStopPolling)
}
