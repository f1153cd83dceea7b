package providers

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/logging"
)

const userAgent = "atlas-airport-updater/1.0"

// Fetcher opens reference sources over HTTP or from disk.
// Each call makes exactly one attempt.
type Fetcher struct {
	Client *http.Client
}

var _ ReferenceSource = (*Fetcher)(nil)

// NewFetcher creates a fetcher whose requests give up after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Open returns the decoded body of location. Anything that is not an
// http(s) URL is read from the local filesystem.
func (f *Fetcher) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, newSourceError("", constants.ErrCodeSourceNotConfigured, nil)
	}
	if !isRemote(location) {
		file, err := os.Open(location)
		if err != nil {
			return nil, newSourceError("", constants.ErrCodeFileUnreadable, err)
		}
		return file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Encoding", "br, gzip")

	start := time.Now()
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, newSourceError("", constants.ErrCodeNetworkError, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		srcErr := newSourceError("", constants.ErrCodeUnexpectedStatus, nil)
		srcErr.Details = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, srcErr
	}

	logging.Debug("Fetched reference source",
		"url", location,
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return decodeBody(resp)
}

type wrappedBody struct {
	io.Reader
	closers []io.Closer
}

func (b *wrappedBody) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		return &wrappedBody{Reader: brotli.NewReader(resp.Body), closers: []io.Closer{resp.Body}}, nil
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, newSourceError("", constants.ErrCodeDecodeFailed, err)
		}
		return &wrappedBody{Reader: gz, closers: []io.Closer{gz, resp.Body}}, nil
	default:
		return resp.Body, nil
	}
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// openSource opens location and tags any SourceError with the source name.
func openSource(ctx context.Context, src ReferenceSource, source constants.SourceName, location string) (io.ReadCloser, error) {
	body, err := src.Open(ctx, location)
	if err != nil {
		if srcErr, ok := err.(*SourceError); ok {
			srcErr.Source = source
			return nil, srcErr
		}
		return nil, newSourceError(source, constants.ErrCodeNetworkError, err)
	}
	return body, nil
}
