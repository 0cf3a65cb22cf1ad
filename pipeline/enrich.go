package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leofalp/firmscout/core/classify"
	"github.com/leofalp/firmscout/core/hq"
	"github.com/leofalp/firmscout/core/nameclean"
	"github.com/leofalp/firmscout/core/roster"
	"github.com/leofalp/firmscout/providers/fetch"
)

// Enricher fills the classification fields of raw records: it fetches each
// firm's site, scores the text into a category, derives fit and the
// top-level classification, and resolves an HQ when the record has none.
type Enricher struct {
	Fetcher    fetch.Fetcher
	Classifier *classify.Classifier
	Overrides  classify.Overrides
	Log        *slog.Logger
}

func NewEnricher(fetcher fetch.Fetcher, log *slog.Logger) *Enricher {
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		Fetcher:    fetcher,
		Classifier: classify.New(classify.DefaultLexicons()),
		Overrides:  classify.DefaultOverrides(),
		Log:        log,
	}
}

// Run enriches every record that carries a website; records without one are
// dropped, since there is nothing to classify against. A fetch failure is
// not fatal: the empty text still classifies, landing the firm in the
// weakest lane rather than losing it.
func (e *Enricher) Run(ctx context.Context, records []roster.Record) ([]roster.Record, error) {
	out := make([]roster.Record, 0, len(records))

	for _, r := range records {
		website := strings.TrimSpace(r.Website)
		if website == "" {
			continue
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		domain := nameclean.DomainFromURL(website)
		e.Log.Info("enriching firm", "name", r.Name, "website", website)

		text := ""
		if markup, err := e.Fetcher.Fetch(ctx, website); err != nil {
			e.Log.Warn("site fetch failed", "website", website, "error", err)
		} else {
			text = fetch.SiteText(markup)
		}

		category := e.Classifier.Classify(text)
		fit := classify.FitFor(category)

		location := strings.TrimSpace(r.HQ)
		if location == "" {
			location = hq.Resolve(text)
		}

		if e.Overrides.ForcesFinancialMSP(domain) {
			category = roster.CategoryFinancialMSP
			fit = roster.FitCore
		}

		r.Category = category
		r.Fit = fit
		r.HQ = hq.Normalize(location)
		if e.Overrides.ForcesComp(r.Name) {
			r.Classification = roster.ClassificationPattern
		} else {
			r.Classification = classify.ClassificationFor(fit, category)
		}
		out = append(out, r)
	}
	return out, nil
}
