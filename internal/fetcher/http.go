package fetcher

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBodyBytes caps how much of a response body FetchHTML reads.
const DefaultMaxBodyBytes = 8 * 1024 * 1024

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent    string        // sent only when non-empty
	Timeout      time.Duration // 0 disables the client timeout
	MaxBodyBytes int64
}

// HTTPFetcher fetches pages with one plain GET per call. It does not retry
// or throttle.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		opts: opts,
	}
}

// FetchHTML issues one GET, reads at most MaxBodyBytes of the body, and
// returns it transcoded to UTF-8. The body is returned whatever the status
// code; non-200 responses and anti-bot interstitials are logged at warn level.
func (f *HTTPFetcher) FetchHTML(ctx context.Context, rawURL string) (io.Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch html: create request")
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch html: get %s", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	zap.L().Debug("http get",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "fetch html: read body")
	}

	bt := DetectBlock(resp.StatusCode, resp.Header, body)
	if resp.StatusCode != http.StatusOK || bt != BlockNone {
		zap.L().Warn("fetch html: page may not be the requested content",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
			zap.String("block_type", string(bt)),
		)
	}

	r, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, eris.Wrap(err, "fetch html: decode charset")
	}
	return r, nil
}
