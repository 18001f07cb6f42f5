package hxview

import (
	"encoding/json"
	"maps"

	"github.com/a-h/templ"
)

const attrHXHeaders = "hx-headers"

// HeadersAttrs returns a copy of attrs with an hx-headers attribute holding
// headers as JSON. attrs comes back unchanged when it already sets hx-headers
// or headers is empty.
func HeadersAttrs(attrs templ.Attributes, headers map[string]string) templ.Attributes {
	if len(headers) == 0 {
		return attrs
	}
	if _, ok := attrs[attrHXHeaders]; ok {
		return attrs
	}

	// a map[string]string always encodes
	data, _ := json.Marshal(headers)

	out := make(templ.Attributes, len(attrs)+1)
	maps.Copy(out, attrs)
	out[attrHXHeaders] = string(data)
	return out
}
