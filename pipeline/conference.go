package pipeline

import (
	"context"
	"log/slog"

	"github.com/leofalp/firmscout/core/roster"
	"github.com/leofalp/firmscout/providers/exhibitor"
	"github.com/leofalp/firmscout/providers/fetch"
)

// ConferenceScrape runs the exhibitor-directory stage: fetch each configured
// conference page and extract its vendor roster with the matching adapter.
type ConferenceScrape struct {
	Fetcher     fetch.Fetcher
	Conferences []exhibitor.Conference
	Log         *slog.Logger
}

func NewConferenceScrape(fetcher fetch.Fetcher, log *slog.Logger) *ConferenceScrape {
	if log == nil {
		log = slog.Default()
	}
	return &ConferenceScrape{
		Fetcher:     fetcher,
		Conferences: exhibitor.DefaultConferences(),
		Log:         log,
	}
}

// Run scrapes every configured conference. maxRows <= 0 means unlimited.
// A conference whose page cannot be fetched, or whose adapter name is
// unknown, is logged and skipped; the rest still contribute rows.
func (c *ConferenceScrape) Run(ctx context.Context, maxRows int) ([]roster.Record, error) {
	var records []roster.Record

	for _, conf := range c.Conferences {
		c.Log.Info("scraping conference", "conference", conf.ID, "url", conf.URL)

		adapter, err := exhibitor.Lookup(conf.Adapter)
		if err != nil {
			c.Log.Warn("skipping conference", "conference", conf.ID, "error", err)
			continue
		}
		markup, err := c.Fetcher.Fetch(ctx, conf.URL)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			c.Log.Warn("conference fetch failed", "conference", conf.ID, "error", err)
			continue
		}

		rows := adapter.Extract(markup, conf.ID)
		c.Log.Info("conference scraped", "conference", conf.ID, "exhibitors", len(rows))
		records = append(records, rows...)

		if maxRows > 0 && len(records) >= maxRows {
			c.Log.Info("conference row limit reached", "max_rows", maxRows)
			break
		}
	}

	if maxRows > 0 && len(records) > maxRows {
		records = records[:maxRows]
	}
	return records, nil
}
