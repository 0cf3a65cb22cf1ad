// Package search defines the web search provider interface consumed by the
// discovery pipeline, together with the Brave Search implementation.
package search

import "context"

// Result is a single ranked item returned by a Provider.
type Result struct {
	Title       string
	URL         string
	Description string
}

// Provider executes a query and returns ranked results. Implementations
// report failures per call; the pipeline decides whether to skip or abort.
type Provider interface {
	Search(ctx context.Context, query string, count, offset int) ([]Result, error)
}
