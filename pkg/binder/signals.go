package binder

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// DatastarRequestHeader is set by the datastar client on every action request.
const DatastarRequestHeader = "Datastar-Request"

// Signals reads the datastar signal store sent with a datastar action
// (query parameter for GET, JSON body otherwise) into `json` tagged fields.
// Plain browser requests are not applicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Header.Get(DatastarRequestHeader) == "" {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}
