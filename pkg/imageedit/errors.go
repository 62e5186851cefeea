package imageedit

import "errors"

var (
	ErrNotLoaded            = errors.New("imageedit: no image loaded")
	ErrUnsupportedImage     = errors.New("imageedit: unsupported image data")
	ErrNoSelection          = errors.New("imageedit: no crop selection")
	ErrCropTooSmall         = errors.New("imageedit: crop area is too small")
	ErrEmptyText            = errors.New("imageedit: overlay text is empty")
	ErrInvalidStyle         = errors.New("imageedit: invalid style")
	ErrConfirmationRequired = errors.New("imageedit: confirmation required")
)
