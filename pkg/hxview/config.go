package hxview

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// ClientConfig holds htmx.config values. Nil fields are left out so the
// client keeps its defaults.
// See https://htmx.org/reference/#config
type ClientConfig struct {
	HistoryEnabled          *bool    `json:"historyEnabled,omitempty" yaml:"historyEnabled"`
	HistoryCacheSize        *int     `json:"historyCacheSize,omitempty" yaml:"historyCacheSize"`
	RefreshOnHistoryMiss    *bool    `json:"refreshOnHistoryMiss,omitempty" yaml:"refreshOnHistoryMiss"`
	DefaultSwapStyle        string   `json:"defaultSwapStyle,omitempty" yaml:"defaultSwapStyle"`
	DefaultSwapDelay        *int     `json:"defaultSwapDelay,omitempty" yaml:"defaultSwapDelay"`
	DefaultSettleDelay      *int     `json:"defaultSettleDelay,omitempty" yaml:"defaultSettleDelay"`
	IncludeIndicatorStyles  *bool    `json:"includeIndicatorStyles,omitempty" yaml:"includeIndicatorStyles"`
	IndicatorClass          string   `json:"indicatorClass,omitempty" yaml:"indicatorClass"`
	RequestClass            string   `json:"requestClass,omitempty" yaml:"requestClass"`
	AddedClass              string   `json:"addedClass,omitempty" yaml:"addedClass"`
	SettlingClass           string   `json:"settlingClass,omitempty" yaml:"settlingClass"`
	SwappingClass           string   `json:"swappingClass,omitempty" yaml:"swappingClass"`
	AllowEval               *bool    `json:"allowEval,omitempty" yaml:"allowEval"`
	AllowScriptTags         *bool    `json:"allowScriptTags,omitempty" yaml:"allowScriptTags"`
	InlineScriptNonce       string   `json:"inlineScriptNonce,omitempty" yaml:"inlineScriptNonce"`
	AttributesToSettle      []string `json:"attributesToSettle,omitempty" yaml:"attributesToSettle"`
	UseTemplateFragments    *bool    `json:"useTemplateFragments,omitempty" yaml:"useTemplateFragments"`
	WsReconnectDelay        string   `json:"wsReconnectDelay,omitempty" yaml:"wsReconnectDelay"`
	WsBinaryType            string   `json:"wsBinaryType,omitempty" yaml:"wsBinaryType"`
	DisableSelector         string   `json:"disableSelector,omitempty" yaml:"disableSelector"`
	WithCredentials         *bool    `json:"withCredentials,omitempty" yaml:"withCredentials"`
	Timeout                 *int     `json:"timeout,omitempty" yaml:"timeout"`
	ScrollBehavior          string   `json:"scrollBehavior,omitempty" yaml:"scrollBehavior"`
	DefaultFocusScroll      *bool    `json:"defaultFocusScroll,omitempty" yaml:"defaultFocusScroll"`
	GetCacheBusterParam     *bool    `json:"getCacheBusterParam,omitempty" yaml:"getCacheBusterParam"`
	GlobalViewTransitions   *bool    `json:"globalViewTransitions,omitempty" yaml:"globalViewTransitions"`
	MethodsThatUseURLParams []string `json:"methodsThatUseUrlParams,omitempty" yaml:"methodsThatUseUrlParams"`
	SelfRequestsOnly        *bool    `json:"selfRequestsOnly,omitempty" yaml:"selfRequestsOnly"`
	IgnoreTitle             *bool    `json:"ignoreTitle,omitempty" yaml:"ignoreTitle"`
	ScrollIntoViewOnBoost   *bool    `json:"scrollIntoViewOnBoost,omitempty" yaml:"scrollIntoViewOnBoost"`
	// TriggerSpecsCache pre-seeds the htmx trigger specification cache,
	// keyed by hx-trigger attribute value.
	TriggerSpecsCache map[string][]TriggerSpecification `json:"triggerSpecsCache,omitempty" yaml:"triggerSpecsCache"`
}

// TriggerSpecification is a parsed hx-trigger entry as htmx caches it.
type TriggerSpecification struct {
	Trigger      string `json:"trigger" yaml:"trigger"`
	SseEvent     string `json:"sseEvent,omitempty" yaml:"sseEvent"`
	EventFilter  string `json:"eventFilter,omitempty" yaml:"eventFilter"`
	Changed      *bool  `json:"changed,omitempty" yaml:"changed"`
	Once         *bool  `json:"once,omitempty" yaml:"once"`
	Consume      *bool  `json:"consume,omitempty" yaml:"consume"`
	From         string `json:"from,omitempty" yaml:"from"`
	Target       string `json:"target,omitempty" yaml:"target"`
	Throttle     *int   `json:"throttle,omitempty" yaml:"throttle"`
	Queue        string `json:"queue,omitempty" yaml:"queue"`
	Root         string `json:"root,omitempty" yaml:"root"`
	Threshold    string `json:"threshold,omitempty" yaml:"threshold"`
	Delay        *int   `json:"delay,omitempty" yaml:"delay"`
	PollInterval *int   `json:"pollInterval,omitempty" yaml:"pollInterval"`
}

// AntiforgeryTokens is the antiforgery section of the rendered config.
// The antiforgery script sends RequestToken as HeaderName when set,
// otherwise as the FormFieldName form parameter.
type AntiforgeryTokens struct {
	FormFieldName string `json:"formFieldName"`
	HeaderName    string `json:"headerName,omitempty"`
	RequestToken  string `json:"requestToken"`
}

// LoadClientConfig decodes a YAML document into a ClientConfig.
// Unknown keys are rejected. An empty document yields the zero config.
func LoadClientConfig(r io.Reader) (ClientConfig, error) {
	var cfg ClientConfig

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return ClientConfig{}, nil
		}
		return ClientConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for key, specs := range cfg.TriggerSpecsCache {
		for i, spec := range specs {
			if strings.TrimSpace(spec.Trigger) == "" {
				return ClientConfig{}, fmt.Errorf("%w: triggerSpecsCache[%q][%d]: empty trigger", ErrInvalidConfig, key, i)
			}
		}
	}

	return cfg, nil
}

// JSON encodes the config the way htmx reads it from the htmx-config meta tag.
// A nil tokens value leaves the antiforgery section out.
func (c ClientConfig) JSON(tokens *AntiforgeryTokens) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeConfig, err)
	}
	if tokens == nil {
		return data, nil
	}

	data, err = sjson.SetBytes(data, "antiForgery", tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeConfig, err)
	}
	return data, nil
}
