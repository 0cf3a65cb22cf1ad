// Command firmscout discovers capital-markets IT service firms via web
// search and conference exhibitor lists, merges the sources, and enriches
// each firm with a category, fit, HQ guess, and classification. Every stage
// writes its snapshot as CSV under the data directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/firmscout/core/classify"
	"github.com/leofalp/firmscout/pipeline"
	"github.com/leofalp/firmscout/providers/exhibitor"
	"github.com/leofalp/firmscout/providers/fetch"
	"github.com/leofalp/firmscout/providers/search"
	"github.com/leofalp/firmscout/providers/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		maxSearchRows = flag.Int("max-search-rows", 10, "limit rows collected from web search (<=0 for unlimited)")
		maxConfRows   = flag.Int("max-conf-rows", 10, "limit rows collected from conference scraping (<=0 for unlimited)")
		maxTotalRows  = flag.Int("max-total-rows", 0, "cap total merged rows before enrichment (<=0 for unlimited)")
		skipSearch    = flag.Bool("skip-search", false, "skip search-based discovery")
		skipConfs     = flag.Bool("skip-conferences", false, "skip conference scraping")
		skipEnrich    = flag.Bool("skip-enrich", false, "skip the enrichment step")
		configPath    = flag.String("config", "", "optional YAML config overriding queries, conferences, and overrides")
		dataDir       = flag.String("data-dir", "data", "directory for stage CSV files")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevelFromEnv(),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg fileConfig
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}

	fetcher := fetch.NewHTTP()

	var provider search.Provider
	if !*skipSearch {
		apiKey := os.Getenv("BRAVE_SEARCH_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("BRAVE_SEARCH_API_KEY is not set; set it or pass -skip-search")
		}
		provider = search.NewBrave(apiKey)
	}

	discovery := pipeline.NewDiscovery(provider, log)
	if len(cfg.Queries) > 0 {
		discovery.Queries = cfg.Queries
	}
	if len(cfg.SkipDomains) > 0 {
		discovery.SkipDomains = cfg.SkipDomains
	}

	conference := pipeline.NewConferenceScrape(fetcher, log)
	if len(cfg.Conferences) > 0 {
		for _, conf := range cfg.Conferences {
			if _, err := exhibitor.Lookup(conf.Adapter); err != nil {
				return fmt.Errorf("invalid conference %q: %w", conf.ID, err)
			}
		}
		conference.Conferences = cfg.Conferences
	}

	enricher := pipeline.NewEnricher(fetcher, log)
	if len(cfg.FinancialMSPDomains) > 0 || len(cfg.CompNames) > 0 {
		enricher.Overrides = classify.OverridesFromLists(cfg.FinancialMSPDomains, cfg.CompNames)
	}

	runner := &pipeline.Runner{
		Discovery:  discovery,
		Conference: conference,
		Enricher:   enricher,
		Store:      store.NewCSV(*dataDir),
		Log:        log,
	}
	return runner.Run(ctx, pipeline.Options{
		MaxSearchRows:     *maxSearchRows,
		MaxConferenceRows: *maxConfRows,
		MaxTotalRows:      *maxTotalRows,
		SkipSearch:        *skipSearch,
		SkipConferences:   *skipConfs,
		SkipEnrich:        *skipEnrich,
	})
}
