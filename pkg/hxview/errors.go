package hxview

import "errors"

// Client configuration errors.
var (
	ErrInvalidConfig = errors.New("hxview: invalid client config")
	ErrEncodeConfig  = errors.New("hxview: failed to encode client config")
)
