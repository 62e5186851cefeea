package imagegen

import "errors"

// These are wrapped with details from the provider; match them with errors.Is.
var (
	ErrEmptyPrompt       = errors.New("prompt cannot be empty")
	ErrUnknownProvider   = errors.New("unknown image provider")
	ErrAPIKeyRequired    = errors.New("API key is required")
	ErrGenerationFailed  = errors.New("failed to generate image")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrFetchFailed       = errors.New("failed to fetch image")
	ErrNotAnImage        = errors.New("response is not an image")
	ErrImageTooLarge     = errors.New("image exceeds size limit")
)
