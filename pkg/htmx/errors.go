package htmx

import "errors"

// Sentinel errors for the htmx package.
var (
	// ErrMalformedHeader is returned by Process when a trigger header already
	// present on the response looks like a JSON object but cannot be parsed.
	ErrMalformedHeader = errors.New("htmx: malformed trigger header")

	// ErrEmptyEventName is returned by Process when a trigger was added with an empty event name.
	ErrEmptyEventName = errors.New("htmx: empty trigger event name")
)
