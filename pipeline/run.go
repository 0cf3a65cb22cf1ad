package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/leofalp/firmscout/core/roster"
	"github.com/leofalp/firmscout/providers/store"
)

// Stage file names under the data directory.
const (
	SearchFile     = "firms_raw_search.csv"
	ConferenceFile = "firms_raw_conferences.csv"
	MergedFile     = "firms_raw_all.csv"
	EnrichedFile   = "firms_enriched.csv"
)

// Options select which stages run and how many rows each may produce.
// Row limits <= 0 mean unlimited.
type Options struct {
	MaxSearchRows     int
	MaxConferenceRows int
	MaxTotalRows      int
	SkipSearch        bool
	SkipConferences   bool
	SkipEnrich        bool
}

// Runner owns the full pipeline: search discovery, conference scraping,
// merge, and enrichment, with each stage's output persisted to the store so
// stages can be re-run or skipped independently.
type Runner struct {
	Discovery  *Discovery
	Conference *ConferenceScrape
	Enricher   *Enricher
	Store      store.Store
	Log        *slog.Logger
}

// Run executes the selected stages in order. Skipped discovery stages leave
// their previous snapshot, if any, to feed the merge, which mirrors running
// the stages one at a time across invocations.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	if r.Log == nil {
		r.Log = slog.Default()
	}
	if !opts.SkipSearch {
		records, err := r.Discovery.Run(ctx, opts.MaxSearchRows)
		if err != nil {
			return fmt.Errorf("search discovery failed: %w", err)
		}
		if len(records) == 0 {
			r.Log.Info("no rows discovered via search")
		} else if err := r.Store.Write(SearchFile, records); err != nil {
			return err
		} else {
			r.Log.Info("search discovery written", "rows", len(records), "file", SearchFile)
		}
	}

	if !opts.SkipConferences {
		records, err := r.Conference.Run(ctx, opts.MaxConferenceRows)
		if err != nil {
			return fmt.Errorf("conference scrape failed: %w", err)
		}
		if len(records) == 0 {
			r.Log.Info("no exhibitors scraped")
		} else if err := r.Store.Write(ConferenceFile, records); err != nil {
			return err
		} else {
			r.Log.Info("conference scrape written", "rows", len(records), "file", ConferenceFile)
		}
	}

	merged, err := r.merge(opts.MaxTotalRows)
	if err != nil {
		return err
	}
	if len(merged) == 0 {
		r.Log.Info("no rows to merge, stopping")
		return nil
	}

	if opts.SkipEnrich {
		return nil
	}
	enriched, err := r.Enricher.Run(ctx, merged)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}
	if len(enriched) == 0 {
		r.Log.Info("no rows to enrich")
		return nil
	}
	if err := r.Store.Write(EnrichedFile, enriched); err != nil {
		return err
	}
	r.Log.Info("enrichment written", "rows", len(enriched), "file", EnrichedFile)
	return nil
}

// merge combines the search and conference snapshots, deduplicates, applies
// the total cap, and persists the result. A missing snapshot is only a
// warning so a partial run still merges whatever exists.
func (r *Runner) merge(maxTotal int) ([]roster.Record, error) {
	var lists [][]roster.Record
	for _, name := range []string{SearchFile, ConferenceFile} {
		records, err := r.Store.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			r.Log.Warn("stage file not found, skipping", "file", name)
			continue
		}
		if err != nil {
			return nil, err
		}
		lists = append(lists, records)
	}

	merged := roster.Merge(maxTotal, lists...)
	if len(merged) == 0 {
		return nil, nil
	}
	if err := r.Store.Write(MergedFile, merged); err != nil {
		return nil, err
	}
	r.Log.Info("sources merged", "rows", len(merged), "file", MergedFile)
	return merged, nil
}
