package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FetchError reports a failure to retrieve an image. The HTTP surface
// translates it into a client-facing "image not accessible" error, distinct
// from upstream model failures.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch image %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch image %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves jewelry images from publicly reachable URLs
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch downloads the image at url and returns its raw bytes.
// Any network failure or non-2xx status is returned as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read image data: %w", err)}
	}

	return data, nil
}

// Encode converts raw image bytes to base64 for transport to the model API
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DetectMediaType sniffs the media type of image bytes. Anything that does
// not look like an image falls back to image/jpeg, which is what the
// upstream APIs assume for untagged payloads.
func DetectMediaType(data []byte) string {
	mediaType := http.DetectContentType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return "image/jpeg"
	}
	return mediaType
}
