package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory bounds the in-memory part of a multipart form.
const DefaultMaxMemory = 10 << 20

// Form binds urlencoded and multipart bodies. Values go to `form:"name"` fields;
// uploads go to `file:"name"` fields of type *multipart.FileHeader or a slice of it.
// Requests with any other content type are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindValues(v, "form", r.PostForm, ErrInvalidForm)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			if err := bindValues(v, "form", r.MultipartForm.Value, ErrInvalidForm); err != nil {
				return err
			}
			return bindFiles(v, r.MultipartForm.File)
		default:
			return ErrBinderNotApplicable
		}
	}
}
