package binder

import "errors"

var (
	ErrBinderNotApplicable  = errors.New("binder not applicable to request")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("failed to parse JSON request body")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrInvalidQuery         = errors.New("failed to parse query parameters")
	ErrInvalidSignals       = errors.New("failed to read datastar signals")
	ErrInvalidTarget        = errors.New("bind target must be a non-nil pointer to struct")
)
