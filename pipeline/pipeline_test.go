package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/firmscout/core/classify"
	"github.com/leofalp/firmscout/core/roster"
	"github.com/leofalp/firmscout/providers/exhibitor"
	"github.com/leofalp/firmscout/providers/search"
	"github.com/leofalp/firmscout/providers/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider serves canned results per query and fails queries listed in
// failing.
type fakeProvider struct {
	results map[string][]search.Result
	failing map[string]bool
	calls   []string
}

func (f *fakeProvider) Search(_ context.Context, query string, _, _ int) ([]search.Result, error) {
	f.calls = append(f.calls, query)
	if f.failing[query] {
		return nil, errors.New("upstream unavailable")
	}
	return f.results[query], nil
}

// fakeFetcher maps URLs to markup and fails URLs listed in failing.
type fakeFetcher struct {
	pages   map[string]string
	failing map[string]bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	if f.failing[url] {
		return "", errors.New("connection refused")
	}
	markup, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("no page for %s", url)
	}
	return markup, nil
}

func newTestDiscovery(p search.Provider) *Discovery {
	d := NewDiscovery(p, testLogger())
	d.Pacer = NopPacer{}
	return d
}

func TestDiscoveryRun(t *testing.T) {
	provider := &fakeProvider{
		results: map[string][]search.Result{
			"q1": {
				{Title: "Cybersecurity for Funds | Omega Systems", URL: "https://omegasystemscorp.com/services", Description: "Managed IT"},
				{Title: "Omega again", URL: "https://omegasystemscorp.com/other"},
				{Title: "Jobs", URL: "https://www.linkedin.com/company/foo"},
				{Title: "", URL: ""},
			},
			"q2": {
				{Title: "Linedata", URL: "https://linedata.com", Description: "Software"},
			},
		},
	}
	d := newTestDiscovery(provider)
	d.Queries = []string{"q1", "q2"}

	records, err := d.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Run() returned %d records, want 2: %+v", len(records), records)
	}

	first := records[0]
	if first.Name != "Omega Systems" {
		t.Errorf("name = %q, want Omega Systems", first.Name)
	}
	if first.Website != "https://omegasystemscorp.com" {
		t.Errorf("website = %q, want the bare domain url", first.Website)
	}
	if first.Notes != "Managed IT" {
		t.Errorf("notes = %q", first.Notes)
	}
	if first.Source != "search:q1" {
		t.Errorf("source = %q, want search:q1", first.Source)
	}
	if records[1].Name != "Linedata" || records[1].Source != "search:q2" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestDiscoverySkipsFailingQuery(t *testing.T) {
	provider := &fakeProvider{
		results: map[string][]search.Result{
			"good": {{Title: "Linedata", URL: "https://linedata.com"}},
		},
		failing: map[string]bool{"bad": true},
	}
	d := newTestDiscovery(provider)
	d.Queries = []string{"bad", "good"}

	records, err := d.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Linedata" {
		t.Errorf("Run() = %+v, want just Linedata", records)
	}
	if len(provider.calls) != 2 {
		t.Errorf("both queries should be attempted, got calls %v", provider.calls)
	}
}

func TestDiscoveryMaxRows(t *testing.T) {
	provider := &fakeProvider{
		results: map[string][]search.Result{
			"q": {
				{Title: "A", URL: "https://a.com"},
				{Title: "B", URL: "https://b.com"},
				{Title: "C", URL: "https://c.com"},
			},
		},
	}
	d := newTestDiscovery(provider)
	d.Queries = []string{"q"}

	records, err := d.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Run() with maxRows=2 returned %d records", len(records))
	}
}

func TestDiscoveryCancelled(t *testing.T) {
	provider := &fakeProvider{failing: map[string]bool{"q": true}}
	d := newTestDiscovery(provider)
	d.Queries = []string{"q"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Run(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

const confFixture = `<html><body>
<div class="sponsor"><h3>BlackRock Solutions</h3><a href="https://blackrock.com">x</a></div>
<div class="sponsor"><h3>Acme FX</h3><a href="www.acmefx.com">x</a></div>
</body></html>`

func TestConferenceScrapeRun(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://one.example.com": confFixture,
		},
		failing: map[string]bool{"https://two.example.com": true},
	}
	c := NewConferenceScrape(fetcher, testLogger())
	c.Conferences = []exhibitor.Conference{
		{ID: "Conf_One", URL: "https://one.example.com", Adapter: "wbresearch"},
		{ID: "Conf_Two", URL: "https://two.example.com", Adapter: "wbresearch"},
		{ID: "Conf_Bad", URL: "https://three.example.com", Adapter: "nope"},
	}

	records, err := c.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Run() returned %d records, want 2", len(records))
	}
	if records[0].Conference != "Conf_One" || records[0].Source != "conf:Conf_One" {
		t.Errorf("provenance = %q/%q", records[0].Source, records[0].Conference)
	}
}

func TestConferenceScrapeMaxRows(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://one.example.com": confFixture}}
	c := NewConferenceScrape(fetcher, testLogger())
	c.Conferences = []exhibitor.Conference{
		{ID: "Conf_One", URL: "https://one.example.com", Adapter: "wbresearch"},
	}

	records, err := c.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Run() with maxRows=1 returned %d records", len(records))
	}
}

func TestEnricherRun(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://omegasystemscorp.com": `<html><body>
				<p>Managed services and help desk for hedge fund clients.</p>
				<p>We are headquartered in pittsburgh, pa.</p>
			</body></html>`,
			"https://bloomberg.com": `<html><body>
				<p>Market data entitlements and data feeds.</p>
			</body></html>`,
		},
		failing: map[string]bool{"https://down.example.com": true},
	}
	e := NewEnricher(fetcher, testLogger())

	records := []roster.Record{
		{Name: "Omega Systems", Website: "https://omegasystemscorp.com"},
		{Name: "Bloomberg", Website: "https://bloomberg.com", HQ: "new york, ny"},
		{Name: "No Site Vendor"},
		{Name: "Down Co", Website: "https://down.example.com"},
	}
	got, err := e.Run(context.Background(), records)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Run() returned %d records, want 3 (no-website rows dropped)", len(got))
	}

	omega := got[0]
	if omega.Category != roster.CategoryFinancialMSP || omega.Fit != roster.FitCore {
		t.Errorf("omega = %v/%v", omega.Category, omega.Fit)
	}
	if omega.HQ != "Pittsburgh, PA" {
		t.Errorf("omega HQ = %q, want Pittsburgh, PA", omega.HQ)
	}
	if omega.Classification != roster.ClassificationTarget {
		t.Errorf("omega classification = %q", omega.Classification)
	}

	bloomberg := got[1]
	if bloomberg.HQ != "New York, NY" {
		t.Errorf("existing HQ should be kept and normalized, got %q", bloomberg.HQ)
	}
	if bloomberg.Category != roster.CategoryMarketData {
		t.Errorf("bloomberg category = %q", bloomberg.Category)
	}
	if bloomberg.Classification != roster.ClassificationPattern {
		t.Errorf("known comps must classify as pattern, got %q", bloomberg.Classification)
	}

	down := got[2]
	if down.Category != roster.CategoryGenericIT || down.Fit != roster.FitStretch {
		t.Errorf("unreachable site should classify from empty text, got %v/%v", down.Category, down.Fit)
	}
	if down.Classification != roster.ClassificationPattern {
		t.Errorf("down classification = %q", down.Classification)
	}
}

func TestEnricherDomainOverride(t *testing.T) {
	// The page reads like a plain generic MSP; the allow-listed domain must
	// still force Financial MSP / Core even though the fetch fails entirely.
	fetcher := &fakeFetcher{failing: map[string]bool{"https://eze-castle.com": true}}
	e := NewEnricher(fetcher, testLogger())

	got, err := e.Run(context.Background(), []roster.Record{
		{Name: "Eze Castle", Website: "https://eze-castle.com"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Run() returned %d records", len(got))
	}
	if got[0].Category != roster.CategoryFinancialMSP || got[0].Fit != roster.FitCore {
		t.Errorf("override not applied: %v/%v", got[0].Category, got[0].Fit)
	}
	if got[0].Classification != roster.ClassificationTarget {
		t.Errorf("classification = %q", got[0].Classification)
	}
}

func TestEnricherCustomOverrides(t *testing.T) {
	fetcher := &fakeFetcher{failing: map[string]bool{"https://custom.com": true}}
	e := NewEnricher(fetcher, testLogger())
	e.Overrides = classify.OverridesFromLists([]string{"custom.com"}, nil)

	got, err := e.Run(context.Background(), []roster.Record{
		{Name: "Custom", Website: "https://custom.com"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got[0].Category != roster.CategoryFinancialMSP {
		t.Errorf("configured override not applied: %v", got[0].Category)
	}
}

func TestRunnerFullPipeline(t *testing.T) {
	provider := &fakeProvider{
		results: map[string][]search.Result{
			"q": {
				{Title: "Trading Networks | Acme Infra", URL: "https://acmeinfra.com/about", Description: "low latency colocation"},
			},
		},
	}
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://one.example.com": confFixture,
			"https://acmeinfra.com": `<html><body>
				<p>Low latency colocation and exchange connectivity, based in chicago, il.</p>
			</body></html>`,
			"https://blackrock.com":  `<html><body><p>Portfolio platform.</p></body></html>`,
			"https://www.acmefx.com": `<html><body><p>FX liquidity.</p></body></html>`,
		},
	}

	discovery := newTestDiscovery(provider)
	discovery.Queries = []string{"q"}

	conference := NewConferenceScrape(fetcher, testLogger())
	conference.Conferences = []exhibitor.Conference{
		{ID: "Conf_One", URL: "https://one.example.com", Adapter: "wbresearch"},
	}

	runner := &Runner{
		Discovery:  discovery,
		Conference: conference,
		Enricher:   NewEnricher(fetcher, testLogger()),
		Store:      store.NewCSV(t.TempDir()),
		Log:        testLogger(),
	}

	if err := runner.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	merged, err := runner.Store.Read(MergedFile)
	if err != nil {
		t.Fatalf("reading merged snapshot: %v", err)
	}
	if len(merged) != 3 {
		t.Fatalf("merged snapshot has %d rows, want 3", len(merged))
	}

	enriched, err := runner.Store.Read(EnrichedFile)
	if err != nil {
		t.Fatalf("reading enriched snapshot: %v", err)
	}
	if len(enriched) != 3 {
		t.Fatalf("enriched snapshot has %d rows, want 3", len(enriched))
	}
	for _, r := range enriched {
		if r.Category == "" || r.Fit == "" || r.Classification == "" {
			t.Errorf("row %q left unenriched: %+v", r.Name, r)
		}
	}

	var acme roster.Record
	for _, r := range enriched {
		if r.Name == "Acme Infra" {
			acme = r
		}
	}
	if acme.Category != roster.CategoryTradingInfra {
		t.Errorf("acme category = %q", acme.Category)
	}
	if acme.HQ != "Chicago, IL" {
		t.Errorf("acme hq = %q", acme.HQ)
	}
}

func TestRunnerMergeSkipsMissingSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://one.example.com": confFixture,
			"https://blackrock.com":   `<html><body><p>platform</p></body></html>`,
			"https://www.acmefx.com":  `<html><body><p>fx</p></body></html>`,
		},
	}
	conference := NewConferenceScrape(fetcher, testLogger())
	conference.Conferences = []exhibitor.Conference{
		{ID: "Conf_One", URL: "https://one.example.com", Adapter: "wbresearch"},
	}

	runner := &Runner{
		Discovery:  newTestDiscovery(&fakeProvider{}),
		Conference: conference,
		Enricher:   NewEnricher(fetcher, testLogger()),
		Store:      store.NewCSV(t.TempDir()),
		Log:        testLogger(),
	}

	// Search is skipped, so its snapshot never exists; the merge must still
	// pick up the conference rows.
	if err := runner.Run(context.Background(), Options{SkipSearch: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	merged, err := runner.Store.Read(MergedFile)
	if err != nil {
		t.Fatalf("reading merged snapshot: %v", err)
	}
	if len(merged) != 2 {
		t.Errorf("merged snapshot has %d rows, want 2", len(merged))
	}
}

func TestRunnerSkipEnrich(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://one.example.com": confFixture}}
	conference := NewConferenceScrape(fetcher, testLogger())
	conference.Conferences = []exhibitor.Conference{
		{ID: "Conf_One", URL: "https://one.example.com", Adapter: "wbresearch"},
	}

	runner := &Runner{
		Discovery:  newTestDiscovery(&fakeProvider{}),
		Conference: conference,
		Enricher:   NewEnricher(fetcher, testLogger()),
		Store:      store.NewCSV(t.TempDir()),
		Log:        testLogger(),
	}

	if err := runner.Run(context.Background(), Options{SkipSearch: true, SkipEnrich: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := runner.Store.Read(EnrichedFile); err == nil {
		t.Error("enriched snapshot should not exist when enrichment is skipped")
	}
}

func TestRunnerMaxTotalRows(t *testing.T) {
	provider := &fakeProvider{
		results: map[string][]search.Result{
			"q": {
				{Title: "A", URL: "https://a.com"},
				{Title: "B", URL: "https://b.com"},
				{Title: "C", URL: "https://c.com"},
			},
		},
	}
	runner := &Runner{
		Discovery:  newTestDiscovery(provider),
		Conference: NewConferenceScrape(&fakeFetcher{}, testLogger()),
		Enricher:   NewEnricher(&fakeFetcher{}, testLogger()),
		Store:      store.NewCSV(t.TempDir()),
		Log:        testLogger(),
	}
	runner.Discovery.Queries = []string{"q"}

	opts := Options{SkipConferences: true, SkipEnrich: true, MaxTotalRows: 2}
	if err := runner.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	merged, err := runner.Store.Read(MergedFile)
	if err != nil {
		t.Fatalf("reading merged snapshot: %v", err)
	}
	if len(merged) != 2 {
		t.Errorf("merged snapshot has %d rows, want 2", len(merged))
	}
}

func TestPacerDefaults(t *testing.T) {
	// The production pacer must be constructible and must not block when
	// given an already-cancelled context.
	p := DefaultPacer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.BetweenQueries(ctx); err == nil {
		t.Error("BetweenQueries() with a cancelled context should fail")
	}
	if err := p.BetweenBatches(ctx); err == nil {
		t.Error("BetweenBatches() with a cancelled context should fail")
	}
}

func TestDefaultQueriesAndSkipDomains(t *testing.T) {
	if len(DefaultQueries) != 32 {
		t.Errorf("DefaultQueries has %d entries, want 32", len(DefaultQueries))
	}
	seen := map[string]bool{}
	for _, q := range DefaultQueries {
		if strings.TrimSpace(q) == "" {
			t.Error("empty query in DefaultQueries")
		}
		if seen[q] {
			t.Errorf("duplicate query %q", q)
		}
		seen[q] = true
	}
	for _, d := range DefaultSkipDomains {
		if d != strings.ToLower(strings.TrimSpace(d)) {
			t.Errorf("skip domain %q should be lower-cased and trimmed", d)
		}
	}
}
