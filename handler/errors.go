package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError carries a status code and a user-facing message.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

// NewHTTPError builds an HTTPError; an empty key falls back to the status text.
func NewHTTPError(code int, key string) HTTPError {
	if key == "" {
		key = http.StatusText(code)
	}
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest         = NewHTTPError(http.StatusBadRequest, "Bad request")
	ErrNotFound           = NewHTTPError(http.StatusNotFound, "Not found")
	ErrConflict           = NewHTTPError(http.StatusConflict, "The action is not available right now")
	ErrUnprocessable      = NewHTTPError(http.StatusUnprocessableEntity, "Unprocessable request")
	ErrBadGateway         = NewHTTPError(http.StatusBadGateway, "Upstream service failed")
	ErrServiceUnavailable = NewHTTPError(http.StatusServiceUnavailable, "Service unavailable")
	ErrInternal           = NewHTTPError(http.StatusInternalServerError, "An error occurred processing your request")
)
