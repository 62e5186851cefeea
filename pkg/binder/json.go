package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxJSONSize bounds JSON request bodies.
const DefaultMaxJSONSize = 8 << 20

// JSON decodes an application/json body strictly: unknown fields and
// trailing data are rejected. Other content types are not applicable.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/json" {
			return ErrBinderNotApplicable
		}
		if r.Body == nil {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, DefaultMaxJSONSize))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}
		return nil
	}
}
