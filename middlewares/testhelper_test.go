package middlewares_test

import (
	"net/http"
	"net/http/httptest"
)

// serve runs req through mw wrapped around handler and returns the recorded response.
func serve(mw func(http.Handler) http.Handler, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, req)
	return rec
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func htmxRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("HX-Request", "true")
	return req
}
