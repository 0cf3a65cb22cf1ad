// Package pipeline orchestrates the discovery, merge, and enrichment stages
// that produce the firm roster.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Stage row batches are throttled in groups of this size.
const batchSize = 25

// Pacer throttles outbound traffic during discovery. BetweenQueries is
// awaited after each search query, BetweenBatches after every [batchSize]
// accepted rows.
type Pacer interface {
	BetweenQueries(ctx context.Context) error
	BetweenBatches(ctx context.Context) error
}

type ratePacer struct {
	queries *rate.Limiter
	batches *rate.Limiter
}

// NewPacer builds the production pacer: one query every queryEvery, one
// batch every batchEvery. The limiters' initial burst tokens are consumed
// up front so the first wait already spans a full interval.
func NewPacer(queryEvery, batchEvery time.Duration) Pacer {
	p := &ratePacer{
		queries: rate.NewLimiter(rate.Every(queryEvery), 1),
		batches: rate.NewLimiter(rate.Every(batchEvery), 1),
	}
	p.queries.Allow()
	p.batches.Allow()
	return p
}

// DefaultPacer matches the free-tier search API budget.
func DefaultPacer() Pacer {
	return NewPacer(5*time.Second, 30*time.Second)
}

func (p *ratePacer) BetweenQueries(ctx context.Context) error {
	return p.queries.Wait(ctx)
}

func (p *ratePacer) BetweenBatches(ctx context.Context) error {
	return p.batches.Wait(ctx)
}

// NopPacer never waits.
type NopPacer struct{}

func (NopPacer) BetweenQueries(context.Context) error { return nil }
func (NopPacer) BetweenBatches(context.Context) error { return nil }
