package async

import "errors"

// ErrPanic wraps a panic recovered from the background function.
var ErrPanic = errors.New("async: function panicked")
