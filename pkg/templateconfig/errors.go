package templateconfig

import "errors"

var (
	ErrUnknownField    = errors.New("unknown config field")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrMalformedConfig = errors.New("malformed config file")
	ErrUnknownFormat   = errors.New("unknown config format")
)
