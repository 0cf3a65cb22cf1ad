package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/leofalp/firmscout/internal/utils"
)

// DefaultBraveEndpoint is the production Brave Search API endpoint.
const DefaultBraveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave searches the web via the Brave Search API. The API key travels in
// the X-Subscription-Token header; results are locked to English / US to
// keep the candidate pool consistent.
type Brave struct {
	// APIKey is the Brave subscription token. Required.
	APIKey string
	// Endpoint overrides the API endpoint; tests point it at a local server.
	// Empty means [DefaultBraveEndpoint].
	Endpoint string
	// Client overrides the HTTP client. Nil means a client with a 15s
	// timeout.
	Client *http.Client
}

// NewBrave constructs a Brave provider with the default endpoint and a
// modest request timeout.
func NewBrave(apiKey string) *Brave {
	return &Brave{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// braveEnvelope is the slice of the Brave response the pipeline consumes.
type braveEnvelope struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search executes one query against the Brave API. count caps the page
// size (the API tops out at 20) and offset selects the page; the discovery
// pipeline only ever asks for the first page. Returns an error when the key
// is missing, the request fails, or the API responds with a non-200 status.
func (b *Brave) Search(ctx context.Context, query string, count, offset int) ([]Result, error) {
	if b.APIKey == "" {
		return nil, errors.New("brave: API key is missing")
	}

	endpoint := b.Endpoint
	if endpoint == "" {
		endpoint = DefaultBraveEndpoint
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("search_lang", "en")
	params.Set("country", "us")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("brave: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)

	client := b.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave: request failed: %w", err)
	}
	defer utils.CloseWithLog(resp.Body, "brave search response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("brave: http %d: %s", resp.StatusCode, utils.Truncate(string(body), 500))
	}

	var envelope braveEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("brave: decoding response: %w", err)
	}

	results := make([]Result, 0, len(envelope.Web.Results))
	for _, r := range envelope.Web.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Description: r.Description})
	}
	return results, nil
}
