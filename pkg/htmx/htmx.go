package htmx

import (
	"net/http"
	"strconv"
)

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r != nil && r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted returns true if the request came from an element using hx-boost.
func IsBoosted(r *http.Request) bool {
	return r != nil && headerBool(r.Header, HeaderHXBoosted)
}

// IsNonBoosted returns true for HTMX requests that are not boosted,
// i.e. requests expecting a fragment rather than a full page.
func IsNonBoosted(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r)
}

// IsHistoryRestoreRequest returns true if the request restores history
// after a miss in the client's local history cache.
func IsHistoryRestoreRequest(r *http.Request) bool {
	return r != nil && headerBool(r.Header, HeaderHXHistoryRestoreRequest)
}

// RequestHeaders holds the HTMX request header values.
type RequestHeaders struct {
	CurrentURL            string // URL of the browser when the request was made
	Prompt                string // User response to hx-prompt
	Target                string // id of the target element
	TriggerName           string // name of the triggered element
	Trigger               string // id of the triggered element
	Boosted               bool
	HistoryRestoreRequest bool
}

// ParseRequest reads the HTMX headers of r.
// It returns false and a zero value for requests not made by HTMX.
func ParseRequest(r *http.Request) (RequestHeaders, bool) {
	if !IsHTMX(r) {
		return RequestHeaders{}, false
	}

	h := r.Header
	return RequestHeaders{
		CurrentURL:            h.Get(HeaderHXCurrentURL),
		Prompt:                h.Get(HeaderHXPrompt),
		Target:                h.Get(HeaderHXTarget),
		TriggerName:           h.Get(HeaderHXTriggerName),
		Trigger:               h.Get(HeaderHXTrigger),
		Boosted:               headerBool(h, HeaderHXBoosted),
		HistoryRestoreRequest: headerBool(h, HeaderHXHistoryRestoreRequest),
	}, true
}

func headerBool(h http.Header, key string) bool {
	v, err := strconv.ParseBool(h.Get(key))
	return err == nil && v
}
