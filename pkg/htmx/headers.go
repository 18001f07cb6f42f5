package htmx

// Response headers understood by the htmx client.
const (
	HeaderHXLocation           = "HX-Location"
	HeaderHXPush               = "HX-Push" // Deprecated: superseded by HX-Push-Url.
	HeaderHXPushURL            = "HX-Push-Url"
	HeaderHXRedirect           = "HX-Redirect"
	HeaderHXRefresh            = "HX-Refresh"
	HeaderHXReplaceURL         = "HX-Replace-Url"
	HeaderHXReswap             = "HX-Reswap"
	HeaderHXRetarget           = "HX-Retarget"
	HeaderHXReselect           = "HX-Reselect"
	HeaderHXTrigger            = "HX-Trigger"
	HeaderHXTriggerAfterSwap   = "HX-Trigger-After-Swap"
	HeaderHXTriggerAfterSettle = "HX-Trigger-After-Settle"
)

// Request headers sent by the htmx client.
const (
	HeaderHXRequest               = "HX-Request"
	HeaderHXBoosted               = "HX-Boosted"
	HeaderHXCurrentURL            = "HX-Current-URL"
	HeaderHXHistoryRestoreRequest = "HX-History-Restore-Request"
	HeaderHXPrompt                = "HX-Prompt"
	HeaderHXTarget                = "HX-Target"
	HeaderHXTriggerName           = "HX-Trigger-Name"
)

// HeaderVary is the standard Vary header. Responses that differ between
// htmx and full-page requests should vary on HX-Request.
const HeaderVary = "Vary"

// StatusStopPolling tells the htmx client to stop polling the endpoint.
const StatusStopPolling = 286
