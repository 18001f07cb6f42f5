package hxview_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hx/pkg/hxview"
)

func TestLoadClientConfig(t *testing.T) {
	t.Parallel()

	t.Run("decodes known fields", func(t *testing.T) {
		t.Parallel()

		cfg, err := hxview.LoadClientConfig(strings.NewReader(`
historyCacheSize: 20
defaultSwapStyle: outerHTML
selfRequestsOnly: true
methodsThatUseUrlParams: [get, delete]
triggerSpecsCache:
  "click once":
    - trigger: click
      once: true
`))
		require.NoError(t, err)

		require.NotNil(t, cfg.HistoryCacheSize)
		assert.Equal(t, 20, *cfg.HistoryCacheSize)
		assert.Equal(t, "outerHTML", cfg.DefaultSwapStyle)
		require.NotNil(t, cfg.SelfRequestsOnly)
		assert.True(t, *cfg.SelfRequestsOnly)
		assert.Equal(t, []string{"get", "delete"}, cfg.MethodsThatUseURLParams)
		require.Len(t, cfg.TriggerSpecsCache["click once"], 1)
		assert.Equal(t, "click", cfg.TriggerSpecsCache["click once"][0].Trigger)
		assert.Nil(t, cfg.HistoryEnabled)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := hxview.LoadClientConfig(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, hxview.ClientConfig{}, cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := hxview.LoadClientConfig(strings.NewReader("historyCacheSise: 20\n"))
		require.ErrorIs(t, err, hxview.ErrInvalidConfig)
	})

	t.Run("rejects empty trigger spec", func(t *testing.T) {
		t.Parallel()

		_, err := hxview.LoadClientConfig(strings.NewReader("triggerSpecsCache:\n  load:\n    - once: true\n"))
		require.ErrorIs(t, err, hxview.ErrInvalidConfig)
	})
}

func TestClientConfig_JSON(t *testing.T) {
	t.Parallel()

	t.Run("omits unset fields", func(t *testing.T) {
		t.Parallel()

		data, err := hxview.ClientConfig{}.JSON(nil)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("keeps explicit false", func(t *testing.T) {
		t.Parallel()

		disabled := false
		data, err := hxview.ClientConfig{HistoryEnabled: &disabled, IndicatorClass: "busy"}.JSON(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"historyEnabled":false,"indicatorClass":"busy"}`, string(data))
	})

	t.Run("adds antiforgery tokens", func(t *testing.T) {
		t.Parallel()

		data, err := hxview.ClientConfig{}.JSON(&hxview.AntiforgeryTokens{
			FormFieldName: "csrf_token",
			RequestToken:  "abc",
		})
		require.NoError(t, err)

		var got map[string]map[string]string
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, map[string]string{"formFieldName": "csrf_token", "requestToken": "abc"}, got["antiForgery"])
	})
}
