package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Fetcher downloads images and inlines them as data URLs.
type Fetcher struct {
	client  *http.Client
	maxSize int64
}

// NewFetcher returns a fetcher that refuses bodies over maxSize bytes.
func NewFetcher(client *http.Client, maxSize int64) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultConfig().FetchTimeout}
	}
	if maxSize <= 0 {
		maxSize = DefaultConfig().MaxImageSize
	}
	return &Fetcher{client: client, maxSize: maxSize}
}

// DataURL downloads rawURL and returns it base64-encoded. Data URLs are
// returned unchanged.
func (f *Fetcher) DataURL(ctx context.Context, rawURL string) (string, error) {
	if strings.HasPrefix(rawURL, "data:") {
		return rawURL, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if int64(len(data)) > f.maxSize {
		return "", ErrImageTooLarge
	}

	ct := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		ct = mt
	}
	if !strings.HasPrefix(ct, "image/") {
		ct = http.DetectContentType(data)
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, ct)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
