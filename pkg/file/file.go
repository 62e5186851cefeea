package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
)

// File describes a stored object.
type File struct {
	Path        string
	Size        int64
	ContentType string
	URL         string
}

// Storage persists small artifacts by relative path.
type Storage interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (*File, error)
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

// New builds the Storage selected by cfg.Driver.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case DriverLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
	case DriverS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// cleanPath normalizes a relative object path and rejects traversal.
func cleanPath(p string) (string, error) {
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return path.Clean(p), nil
}

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// IsImageType reports whether contentType is a raster image type the editor decodes.
func IsImageType(contentType string) bool {
	mt, _, _ := strings.Cut(contentType, ";")
	return imageTypes[strings.TrimSpace(strings.ToLower(mt))]
}

// ReadAll reads an uploaded file of at most maxSize bytes. A maxSize of
// zero disables the limit.
func ReadAll(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	if maxSize > 0 && fh.Size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	defer func() { _ = src.Close() }()

	r := io.Reader(src)
	if maxSize > 0 {
		r = io.LimitReader(src, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, maxSize)
	}
	return data, nil
}

// ReadImage reads an uploaded image of at most maxSize bytes and returns its
// content with the sniffed MIME type.
func ReadImage(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	data, err := ReadAll(fh, maxSize)
	if err != nil {
		return nil, "", err
	}
	contentType := http.DetectContentType(data)
	if !IsImageType(contentType) {
		return nil, "", fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, contentType)
	}
	return data, contentType, nil
}
