package file

import "errors"

var (
	ErrInvalidPath        = errors.New("invalid path")
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrUnknownDriver      = errors.New("unknown storage driver")
	ErrFileNotFound       = errors.New("file not found")
	ErrFileTooLarge       = errors.New("file size exceeds maximum allowed size")
	ErrMIMETypeNotAllowed = errors.New("MIME type is not allowed")
	ErrNilFileHeader      = errors.New("file header is nil")

	ErrFailedToReadFile   = errors.New("failed to read file")
	ErrFailedToWriteFile  = errors.New("failed to write file")
	ErrFailedToDeleteFile = errors.New("failed to delete file")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
)
