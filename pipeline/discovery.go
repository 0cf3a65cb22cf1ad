package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leofalp/firmscout/core/nameclean"
	"github.com/leofalp/firmscout/core/roster"
	"github.com/leofalp/firmscout/providers/search"
)

// Discovery runs the query-driven web search stage. Each query's results
// are filtered against SkipDomains, deduplicated per domain, and turned into
// raw roster records keyed by https://<domain>.
type Discovery struct {
	Provider    search.Provider
	Queries     []string
	SkipDomains []string
	PageSize    int
	Pacer       Pacer
	Log         *slog.Logger
}

// NewDiscovery wires a discovery stage with the default query set, noise
// filter, page size, and pacing. A nil log means [slog.Default].
func NewDiscovery(provider search.Provider, log *slog.Logger) *Discovery {
	if log == nil {
		log = slog.Default()
	}
	return &Discovery{
		Provider:    provider,
		Queries:     DefaultQueries,
		SkipDomains: DefaultSkipDomains,
		PageSize:    20,
		Pacer:       DefaultPacer(),
		Log:         log,
	}
}

// Run executes every configured query and returns the accepted records.
// maxRows <= 0 means unlimited. A failing query is logged and skipped so one
// rate-limit response cannot sink the whole stage; pacing interruptions,
// which only happen on context cancellation, end the run.
func (d *Discovery) Run(ctx context.Context, maxRows int) ([]roster.Record, error) {
	seenDomains := make(map[string]bool)
	var records []roster.Record

	for _, q := range d.Queries {
		d.Log.Info("running search query", "query", q)
		results, err := d.Provider.Search(ctx, q, d.PageSize, 0)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			d.Log.Warn("search query failed", "query", q, "error", err)
			continue
		}

		for _, r := range results {
			if r.URL == "" {
				continue
			}
			domain := nameclean.DomainFromURL(r.URL)
			if d.isNoise(domain) || seenDomains[domain] {
				continue
			}
			seenDomains[domain] = true

			name := nameclean.Clean(r.Title, domain)
			if name == "" {
				name = domain
			}
			records = append(records, roster.Record{
				Name:    name,
				Website: "https://" + domain,
				Notes:   r.Description,
				Source:  "search:" + q,
			})

			if len(records)%batchSize == 0 {
				d.Log.Info("row batch reached, pausing", "rows", len(records))
				if err := d.Pacer.BetweenBatches(ctx); err != nil {
					return records, err
				}
			}
			if maxRows > 0 && len(records) >= maxRows {
				d.Log.Info("search row limit reached", "max_rows", maxRows)
				return records, nil
			}
		}

		if err := d.Pacer.BetweenQueries(ctx); err != nil {
			return records, err
		}
	}
	return records, nil
}

func (d *Discovery) isNoise(domain string) bool {
	for _, skip := range d.SkipDomains {
		if strings.Contains(domain, skip) {
			return true
		}
	}
	return false
}
