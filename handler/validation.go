package handler

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

// ValidationError maps a field to its messages.
type ValidationError map[string][]string

func (v ValidationError) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(v))
	for _, f := range fields {
		for _, msg := range v[f] {
			parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
		}
	}
	return strings.Join(parts, "; ")
}

// Add appends a message for field.
func (v ValidationError) Add(field, message string) {
	v[field] = append(v[field], message)
}

// NewValidationError returns a ValidationError with one message.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{field: {message}}
}

// asValidationError finds a ValidationError or validator.Errors in err.
func asValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	if errs, ok := validator.AsErrors(err); ok {
		return ValidationError(errs.Fields()), true
	}
	return nil, false
}
