package htmx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// TriggerTiming defines when a triggered event fires on the client.
// See https://htmx.org/headers/hx-trigger/
type TriggerTiming int

const (
	TriggerDefault     TriggerTiming = iota // Fire as soon as the response is received
	TriggerAfterSettle                      // Fire after the settling step
	TriggerAfterSwap                        // Fire after the swap step
)

// triggerTimings lists all timings in the order Process writes them.
var triggerTimings = [...]TriggerTiming{TriggerDefault, TriggerAfterSettle, TriggerAfterSwap}

// Header returns the response header the timing is written to.
func (t TriggerTiming) Header() string {
	switch t {
	case TriggerAfterSettle:
		return HeaderHXTriggerAfterSettle
	case TriggerAfterSwap:
		return HeaderHXTriggerAfterSwap
	default:
		return HeaderHXTrigger
	}
}

func (t TriggerTiming) String() string {
	switch t {
	case TriggerAfterSettle:
		return "after-settle"
	case TriggerAfterSwap:
		return "after-swap"
	default:
		return "default"
	}
}

type detailKind uint8

const (
	detailEmpty detailKind = iota // no payload, encoded as ""
	detailRaw                     // JSON taken verbatim from an existing header
	detailValue                   // Go value encoded on demand
)

// detail is the payload attached to a trigger.
type detail struct {
	value any
	raw   []byte
	kind  detailKind
}

func valueDetail(v any) detail {
	if v == nil {
		return detail{}
	}
	return detail{kind: detailValue, value: v}
}

func rawDetail(raw string) detail {
	return detail{kind: detailRaw, raw: pretty.Ugly([]byte(raw))}
}

func (d detail) empty() bool {
	return d.kind == detailEmpty
}

func (d detail) encode() ([]byte, error) {
	switch d.kind {
	case detailRaw:
		return d.raw, nil
	case detailValue:
		return json.Marshal(d.value)
	default:
		return []byte(`""`), nil
	}
}

// triggerSet is an insertion-ordered map of event name to detail.
type triggerSet struct {
	details map[string]detail
	names   []string
}

func newTriggerSet() *triggerSet {
	return &triggerSet{details: make(map[string]detail)}
}

// add inserts the event unless it is already present. First write wins.
func (s *triggerSet) add(name string, d detail) {
	if _, ok := s.details[name]; ok {
		return
	}
	s.details[name] = d
	s.names = append(s.names, name)
}

func (s *triggerSet) len() int {
	return len(s.names)
}

// merge folds a header value written earlier into the set.
// A value wrapped in braces is read as a JSON object, anything else as a
// comma-separated list of event names. The brace check misreads a bare event
// name that itself starts with '{' and ends with '}'; htmx clients apply the
// same rule, so it is kept.
func (s *triggerSet) merge(existing string) error {
	if looksLikeJSONObject(existing) {
		if !gjson.Valid(existing) {
			return ErrMalformedHeader
		}
		gjson.Parse(existing).ForEach(func(key, value gjson.Result) bool {
			s.add(key.String(), rawDetail(value.Raw))
			return true
		})
		return nil
	}

	for _, name := range strings.Split(existing, ",") {
		if name = strings.TrimSpace(name); name != "" {
			s.add(name, detail{})
		}
	}
	return nil
}

// encode serializes the set to its header value. A single event without
// detail is written in the bare form, everything else as a JSON object.
func (s *triggerSet) encode() (string, error) {
	if len(s.names) == 1 && s.details[s.names[0]].empty() {
		return s.names[0], nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return "", err
		}
		val, err := s.details[name].encode()
		if err != nil {
			return "", fmt.Errorf("encode detail for %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.String(), nil
}

func looksLikeJSONObject(v string) bool {
	return strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}")
}
