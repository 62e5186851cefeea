package preview

import "errors"

var (
	ErrTargetNotFound      = errors.New("preview target not found")
	ErrDocumentUnavailable = errors.New("preview document not loaded")
)
