// Package validator checks user input with small composable rules.
//
//	err := validator.Apply(
//		validator.Required("prompt", req.Prompt),
//		validator.HexColor("color", req.Color),
//		validator.InRange("opacity", req.Opacity, 0, 100),
//	)
//
// Apply returns Errors, which the HTTP layer turns into a per-field
// validation response.
package validator

import (
	"errors"
	"fmt"
	"strings"
)

// Violation is one failed rule.
type Violation struct {
	Field   string
	Code    string
	Message string
}

// Errors is the list of violations returned by Apply.
type Errors []Violation

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields maps each field to its messages.
func (e Errors) Fields() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, v := range e {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}

// Has reports whether field has at least one violation.
func (e Errors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Rule pairs a check with the violation reported when it fails.
type Rule struct {
	Check     func() bool
	Violation Violation
}

// Apply runs every rule and returns Errors when any fail, nil otherwise.
func Apply(rules ...Rule) error {
	var errs Errors
	for _, r := range rules {
		if !r.Check() {
			errs = append(errs, r.Violation)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AsErrors extracts Errors from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	ok := errors.As(err, &errs)
	return errs, ok
}
