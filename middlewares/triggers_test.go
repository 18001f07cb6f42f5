package middlewares_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hx/middlewares"
	"github.com/dmitrymomot/hx/pkg/htmx"
	"github.com/dmitrymomot/hx/pkg/logger"
)

func TestTriggers(t *testing.T) {
	t.Parallel()

	t.Run("writes collected triggers before the body", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.Triggers(), func(w http.ResponseWriter, r *http.Request) {
			require.True(t, middlewares.AddTrigger(r.Context(), "cool", nil))
			require.True(t, middlewares.AddTrigger(r.Context(), "neat", map[string]int{"magic": 42}))
			_, _ = w.Write([]byte("ok"))
		}, htmxRequest(http.MethodPost, "/"))

		assert.Equal(t, `{"cool":"","neat":{"magic":42}}`, rec.Header().Get(htmx.HeaderHXTrigger))
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("writes triggers when handler never writes", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.Triggers(), func(w http.ResponseWriter, r *http.Request) {
			middlewares.AddTrigger(r.Context(), "cool", nil)
		}, htmxRequest(http.MethodPost, "/"))

		assert.Equal(t, "cool", rec.Header().Get(htmx.HeaderHXTrigger))
	})

	t.Run("keeps timings apart", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.Triggers(), func(w http.ResponseWriter, r *http.Request) {
			middlewares.AddTriggerAt(r.Context(), htmx.TriggerAfterSwap, "swapped", nil)
			middlewares.AddTriggerAt(r.Context(), htmx.TriggerAfterSettle, "settled", nil)
			w.WriteHeader(http.StatusNoContent)
		}, htmxRequest(http.MethodPost, "/"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get(htmx.HeaderHXTrigger))
		assert.Equal(t, "settled", rec.Header().Get(htmx.HeaderHXTriggerAfterSettle))
		assert.Equal(t, "swapped", rec.Header().Get(htmx.HeaderHXTriggerAfterSwap))
	})

	t.Run("merges with triggers set by the handler", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.Triggers(), func(w http.ResponseWriter, r *http.Request) {
			middlewares.AddTrigger(r.Context(), "cool", nil)
			err := htmx.Respond(w, func(h *htmx.ResponseHeaders) {
				h.WithTriggerDetail("neat", map[string]bool{"moremagic": false})
			})
			require.NoError(t, err)
			w.WriteHeader(http.StatusOK)
		}, htmxRequest(http.MethodPost, "/"))

		assert.Equal(t, `{"cool":"","neat":{"moremagic":false}}`, rec.Header().Get(htmx.HeaderHXTrigger))
	})

	t.Run("does nothing without triggers", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.Triggers(), okHandler, htmxRequest(http.MethodGet, "/"))

		assert.Empty(t, rec.Header().Values(htmx.HeaderHXTrigger))
		assert.Empty(t, rec.Header().Values(htmx.HeaderHXTriggerAfterSettle))
		assert.Empty(t, rec.Header().Values(htmx.HeaderHXTriggerAfterSwap))
	})

	t.Run("htmx only skips regular requests", func(t *testing.T) {
		t.Parallel()

		var added bool
		rec := serve(middlewares.Triggers(middlewares.WithTriggersHTMXOnly()), func(w http.ResponseWriter, r *http.Request) {
			added = middlewares.AddTrigger(r.Context(), "cool", nil)
		}, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, added)
		assert.Empty(t, rec.Header().Get(htmx.HeaderHXTrigger))
	})

	t.Run("logs malformed existing header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := middlewares.Triggers(middlewares.WithTriggersLogger(logger.New(logger.WithOutput(&buf))))

		rec := serve(mw, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(htmx.HeaderHXTrigger, `{"broken":`+"}")
			middlewares.AddTrigger(r.Context(), "cool", nil)
			w.WriteHeader(http.StatusOK)
		}, htmxRequest(http.MethodPost, "/"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"broken":}`, rec.Header().Get(htmx.HeaderHXTrigger))
		assert.Contains(t, buf.String(), "failed to write htmx trigger headers")
		assert.Contains(t, buf.String(), "malformed trigger header")
	})

	t.Run("works behind status normalization", func(t *testing.T) {
		t.Parallel()

		chain := func(next http.Handler) http.Handler {
			return middlewares.HTMX(middlewares.WithStatusNormalization())(middlewares.Triggers()(next))
		}

		rec := serve(chain, func(w http.ResponseWriter, r *http.Request) {
			middlewares.AddTrigger(r.Context(), "showError", map[string]string{"message": "invalid email"})
			w.WriteHeader(http.StatusUnprocessableEntity)
		}, htmxRequest(http.MethodPost, "/"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"showError":{"message":"invalid email"}}`, rec.Header().Get(htmx.HeaderHXTrigger))
	})
}

func TestAddTrigger_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	assert.False(t, middlewares.AddTrigger(context.Background(), "cool", nil))
	assert.False(t, middlewares.AddTriggerAt(context.Background(), htmx.TriggerAfterSwap, "cool", nil))
}
