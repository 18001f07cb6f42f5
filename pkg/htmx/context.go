package htmx

import "context"

type requestHeadersKey struct{}

// WithRequestHeaders stores parsed HTMX request headers in ctx.
func WithRequestHeaders(ctx context.Context, h RequestHeaders) context.Context {
	return context.WithValue(ctx, requestHeadersKey{}, h)
}

// RequestHeadersFromContext returns the headers stored by WithRequestHeaders.
func RequestHeadersFromContext(ctx context.Context) (RequestHeaders, bool) {
	h, ok := ctx.Value(requestHeadersKey{}).(RequestHeaders)
	return h, ok
}
