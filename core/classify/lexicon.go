// Package classify scores free text against per-category keyword lexicons
// and derives the fit and top-level classification for a firm. The lexicons
// are injected at construction so alternate keyword sets can be tested
// without touching package state.
package classify

// Lexicons holds the phrase sets scored against page text, one per signal.
// Phrases are matched as case-insensitive substrings; each phrase counts at
// most once per text regardless of how often it occurs.
type Lexicons struct {
	Finance      []string
	MSP          []string
	MarketData   []string
	TradingInfra []string
	OMS          []string
	RegOps       []string
}

// DefaultLexicons returns the curated phrase sets for the
// financial-technology-services niche. Callers receive fresh slices and may
// modify them freely.
func DefaultLexicons() Lexicons {
	return Lexicons{
		Finance: []string{
			"hedge fund", "alternative investment", "asset management",
			"broker-dealer", "broker dealer", "investment manager",
			"private equity", "family office", "trading firm", "proprietary trading",
		},
		MSP: []string{
			"managed services", "managed it", "outsourced", "24x7 support",
			"24/7 support", "service level agreement", "sla", "help desk", "monitoring",
		},
		MarketData: []string{
			"market data", "market-data", "data feeds", "entitlements",
			"exchange reporting", "vendor management", "dacs", "inventory",
		},
		TradingInfra: []string{
			"trading infrastructure", "low latency", "low-latency", "colocation",
			"proximity hosting", "exchange connectivity", "fix connectivity",
		},
		OMS: []string{
			"oms", "order management system", "ems", "execution management system",
			"trading platform implementation", "trading system implementation",
			"fix onboarding",
		},
		RegOps: []string{
			"trade surveillance", "best execution", "best-execution",
			"outsourced compliance", "regulatory reporting", "finra", "sec rule",
		},
	}
}
