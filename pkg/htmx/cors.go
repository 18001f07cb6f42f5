package htmx

import "slices"

// RequestHeaderKeys returns the request headers HTMX may send, minus exclude.
// Use it as the allowed headers list of a CORS policy.
func RequestHeaderKeys(exclude ...string) []string {
	return without([]string{
		HeaderHXCurrentURL,
		HeaderHXHistoryRestoreRequest,
		HeaderHXPrompt,
		HeaderHXRequest,
		HeaderHXTarget,
		HeaderHXTriggerName,
		HeaderHXTrigger,
		HeaderHXBoosted,
	}, exclude)
}

// ResponseHeaderKeys returns the response headers HTMX reads, minus exclude.
// Use it as the exposed headers list of a CORS policy.
func ResponseHeaderKeys(exclude ...string) []string {
	return without([]string{
		HeaderHXPushURL,
		HeaderHXLocation,
		HeaderHXRedirect,
		HeaderHXRefresh,
		HeaderHXTrigger,
		HeaderHXTriggerAfterSettle,
		HeaderHXTriggerAfterSwap,
		HeaderHXReswap,
		HeaderHXRetarget,
		HeaderHXReplaceURL,
		HeaderHXReselect,
	}, exclude)
}

func without(keys, exclude []string) []string {
	if len(exclude) == 0 {
		return keys
	}
	return slices.DeleteFunc(keys, func(k string) bool {
		return slices.Contains(exclude, k)
	})
}
