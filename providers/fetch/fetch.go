// Package fetch retrieves raw page markup over HTTP and turns it into the
// lower-cased text the classifier and HQ resolver consume.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/leofalp/firmscout/internal/utils"
)

const (
	// DefaultTimeout bounds one fetch end to end.
	DefaultTimeout = 15 * time.Second
	// MaxBodyBytes caps the response body; marketing sites occasionally
	// serve multi-megabyte pages and everything useful sits near the top.
	MaxBodyBytes = 2 * 1024 * 1024
	// maxRedirects bounds redirect chains.
	maxRedirects = 10
	// userAgent is browsery because some exhibitor sites gate default
	// clients.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Fetcher retrieves raw markup for a URL. Failures are reported per call;
// callers decide whether to skip the unit of work.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher is the production [Fetcher]: a plain GET with transport-level
// timeouts, a redirect cap, and a body-size cap.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTP constructs an HTTPFetcher with sane transport timeouts so a slow
// or unresponsive server cannot stall the whole run.
func NewHTTP() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				ForceAttemptHTTP2:     true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (>%d)", maxRedirects)
				}
				return nil
			},
		},
	}
}

// NewHTTPWithClient constructs an HTTPFetcher over the supplied client,
// mainly for tests that need custom timeouts.
func NewHTTPWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch downloads the URL and returns the raw markup. Partial URLs are
// normalised by prepending "https://". Returns an error for an empty URL, a
// transport failure, or a non-200 status.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return "", errors.New("fetch: url is empty")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer utils.CloseWithLog(resp.Body, "fetch response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("fetch: http %d: %s", resp.StatusCode, utils.Truncate(string(body), 500))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("fetch: reading body: %w", err)
	}
	return string(body), nil
}
