package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrFetch is the single failure kind for loading a snapshot. Network errors,
// non-2xx responses, unreadable files and malformed bodies all wrap it.
var ErrFetch = errors.New("load snapshot")

// CacheBustParam is the query parameter carrying the request time in epoch
// milliseconds.
const CacheBustParam = "t"

// Fetcher retrieves a fresh Snapshot.
type Fetcher interface {
	// Fetch loads the current document. Errors wrap ErrFetch.
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Load fetches a snapshot and swallows any failure. The error is logged and
// nil is returned, so callers only have to check for a nil Snapshot.
func Load(ctx context.Context, f Fetcher) *Snapshot {
	snap, err := f.Fetch(ctx)
	if err != nil {
		slog.Error("error loading data", "error", err)
		return nil
	}
	return snap
}

// Parse decodes a snapshot document. A JSON null is treated as a failure
// since there is nothing to render. A section whose JSON type does not fit
// is left absent and the rest of the document is kept.
func Parse(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: empty document", ErrFetch)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: document is not an object", ErrFetch)
	}

	var snap Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: parse body: %w", ErrFetch, err)
		}
		slog.Debug("snapshot field skipped", "field", typeErr.Field, "type", typeErr.Value)
	}
	return &snap, nil
}

// HTTPFetcher loads snapshots over HTTP(S).
type HTTPFetcher struct {
	url     *url.URL
	client  *http.Client
	timeout time.Duration
	now     func() time.Time
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithClock overrides the time source used for the cache-busting parameter.
func WithClock(now func() time.Time) HTTPOption {
	return func(f *HTTPFetcher) {
		f.now = now
	}
}

// NewHTTPFetcher creates a fetcher for the given absolute URL.
func NewHTTPFetcher(rawURL string, opts ...HTTPOption) (*HTTPFetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}

	f := &HTTPFetcher{
		url:    u,
		client: http.DefaultClient,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// RequestURL returns the URL for a request issued at the given time.
func (f *HTTPFetcher) RequestURL(at time.Time) string {
	u := *f.url
	q := u.Query()
	q.Set(CacheBustParam, strconv.FormatInt(at.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch issues a GET with a cache-busting parameter and decodes the body.
func (f *HTTPFetcher) Fetch(ctx context.Context) (*Snapshot, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	reqURL := f.RequestURL(f.now())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status %s", ErrFetch, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}

	slog.Debug("snapshot fetched", "url", reqURL, "bytes", len(body))
	return Parse(body)
}

// FileFetcher loads snapshots from a local file, typically the data.json
// written by the sync process.
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a fetcher reading from path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Path returns the file being read.
func (f *FileFetcher) Path() string {
	return f.path
}

// Fetch reads and decodes the file.
func (f *FileFetcher) Fetch(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return Parse(data)
}

// NewFetcher picks a fetcher for source. http:// and https:// sources are
// fetched over the network; file:// URLs and bare paths are read from disk.
func NewFetcher(source string, timeout time.Duration) (Fetcher, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPFetcher(source, WithTimeout(timeout))
	case strings.HasPrefix(source, "file://"):
		u, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("parse source url: %w", err)
		}
		return NewFileFetcher(u.Path), nil
	case source == "":
		return nil, fmt.Errorf("source is required")
	default:
		return NewFileFetcher(source), nil
	}
}

// LocalPath returns the on-disk path behind f, if any.
func LocalPath(f Fetcher) (string, bool) {
	ff, ok := f.(*FileFetcher)
	if !ok {
		return "", false
	}
	return ff.path, true
}
