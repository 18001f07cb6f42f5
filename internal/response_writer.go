package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter so headers can still be changed
// right before they are sent. Hooks run once, in registration order, on the
// first WriteHeader, Write or Finish call.
type ResponseWriter struct {
	http.ResponseWriter
	rewrite     func(code int) int
	beforeWrite []func(h http.Header)
	status      int
	size        int64
	written     bool
	mu          sync.Mutex
}

// NewResponseWriter creates a new ResponseWriter.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// Wrap returns w when it already is a *ResponseWriter, so stacked middlewares
// share one set of hooks.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return NewResponseWriter(w)
}

// OnBeforeWrite registers a hook to run before the headers are sent.
func (w *ResponseWriter) OnBeforeWrite(fn func(h http.Header)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeWrite = append(w.beforeWrite, fn)
}

// RewriteStatus sets a function mapping the status code sent to the client.
// Status still reports the code the handler asked for.
func (w *ResponseWriter) RewriteStatus(fn func(code int) int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rewrite = fn
}

// begin marks the response as written and returns the pending hooks.
// ok is false when the response was already written.
func (w *ResponseWriter) begin(code int) (hooks []func(http.Header), ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return nil, false
	}
	w.written = true
	w.status = code
	hooks = w.beforeWrite
	w.beforeWrite = nil
	return hooks, true
}

func (w *ResponseWriter) runHooks(hooks []func(http.Header)) {
	h := w.ResponseWriter.Header()
	for _, fn := range hooks {
		fn(h)
	}
}

func (w *ResponseWriter) sendHeader(code int) {
	if w.rewrite != nil {
		code = w.rewrite(code)
	}
	w.ResponseWriter.WriteHeader(code)
}

// WriteHeader sends an HTTP response header with the provided status code.
func (w *ResponseWriter) WriteHeader(code int) {
	hooks, ok := w.begin(code)
	if !ok {
		return
	}
	w.runHooks(hooks)
	w.sendHeader(code)
}

// Write writes the data to the connection as part of an HTTP reply.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if hooks, ok := w.begin(http.StatusOK); ok {
		w.runHooks(hooks)
		w.sendHeader(http.StatusOK)
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Finish runs pending hooks for handlers that returned without writing.
// Headers are left for net/http to send with its implicit 200.
func (w *ResponseWriter) Finish() {
	w.mu.Lock()
	if w.written {
		w.mu.Unlock()
		return
	}
	hooks := w.beforeWrite
	w.beforeWrite = nil
	w.mu.Unlock()

	w.runHooks(hooks)
}

// Status returns the HTTP status code requested by the handler.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of bytes written to the response body.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Written returns true if the response has been written.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements the http.Flusher interface.
func (w *ResponseWriter) Flush() {
	if hooks, ok := w.begin(http.StatusOK); ok {
		w.runHooks(hooks)
		w.sendHeader(http.StatusOK)
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements the http.Hijacker interface.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
