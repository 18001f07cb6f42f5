package middlewares_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hx/middlewares"
	"github.com/dmitrymomot/hx/pkg/htmx"
	"github.com/dmitrymomot/hx/pkg/logger"
)

func TestHTMX(t *testing.T) {
	t.Parallel()

	t.Run("stores request headers in context", func(t *testing.T) {
		t.Parallel()

		req := htmxRequest(http.MethodGet, "/")
		req.Header.Set("HX-Target", "contacts")
		req.Header.Set("HX-Trigger", "search")

		var got htmx.RequestHeaders
		var found bool
		serve(middlewares.HTMX(), func(w http.ResponseWriter, r *http.Request) {
			got, found = htmx.RequestHeadersFromContext(r.Context())
		}, req)

		require.True(t, found)
		assert.Equal(t, "contacts", got.Target)
		assert.Equal(t, "search", got.Trigger)
	})

	t.Run("leaves context untouched for regular requests", func(t *testing.T) {
		t.Parallel()

		var found bool
		serve(middlewares.HTMX(), func(w http.ResponseWriter, r *http.Request) {
			_, found = htmx.RequestHeadersFromContext(r.Context())
		}, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, found)
	})

	t.Run("adds Vary header to all responses", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.HTMX(), okHandler, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"HX-Request"}, rec.Header().Values("Vary"))

		rec = serve(middlewares.HTMX(middlewares.WithoutVary()), okHandler, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, rec.Header().Values("Vary"))
	})

	t.Run("normalizes error status for HTMX requests", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.HTMX(middlewares.WithStatusNormalization())
		failing := func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}

		rec := serve(mw, failing, htmxRequest(http.MethodPost, "/"))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = serve(mw, failing, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("keeps stop polling status", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.HTMX(middlewares.WithStatusNormalization()), func(w http.ResponseWriter, _ *http.Request) {
			htmx.StopPolling(w)
		}, htmxRequest(http.MethodGet, "/poll"))

		assert.Equal(t, htmx.StatusStopPolling, rec.Code)
	})
}

func TestHTMXExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithExtractors(middlewares.HTMXExtractor()),
	)

	req := htmxRequest(http.MethodGet, "/")
	req.Header.Set("HX-Target", "contacts")
	req.Header.Set("HX-Boosted", "true")

	serve(middlewares.HTMX(), func(w http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "rendered")
	}, req)

	var record struct {
		HTMX map[string]any `json:"htmx"`
		Msg  string         `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "rendered", record.Msg)
	assert.Equal(t, "contacts", record.HTMX["target"])
	assert.Equal(t, true, record.HTMX["boosted"])

	_, ok := middlewares.HTMXExtractor()(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)

}
