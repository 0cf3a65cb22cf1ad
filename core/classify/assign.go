package classify

import (
	"strings"

	"github.com/leofalp/firmscout/core/roster"
)

// FitFor maps a category to its fit: Generic IT is a stretch, every niche
// lane is core. Pure function.
func FitFor(cat roster.Category) roster.Fit {
	if cat == roster.CategoryGenericIT {
		return roster.FitStretch
	}
	return roster.FitCore
}

// coreLanes are the categories eligible for the near-term target verdict.
var coreLanes = map[roster.Category]bool{
	roster.CategoryFinancialMSP: true,
	roster.CategoryTradingInfra: true,
	roster.CategoryMarketData:   true,
	roster.CategoryOMSEMS:       true,
	roster.CategoryRegOps:       true,
}

// ClassificationFor derives the top-level verdict from fit and category:
// core firms in a core lane are potential near-term targets, everything else
// is a pattern, comp, or future partner. Pure function.
func ClassificationFor(fit roster.Fit, cat roster.Category) roster.Classification {
	if fit == roster.FitCore && coreLanes[cat] {
		return roster.ClassificationTarget
	}
	return roster.ClassificationPattern
}

// Overrides are the allow-lists applied after heuristic classification.
// Domains in FinancialMSPDomains force category and fit atomically
// regardless of what the classifier saw; names in CompNames force the
// pattern/comp classification regardless of the derived verdict.
type Overrides struct {
	FinancialMSPDomains map[string]bool
	CompNames           map[string]bool
}

// DefaultOverrides returns the curated allow-lists: vertical MSPs already
// known to serve financial firms, and the giants that can only ever be
// comps.
func DefaultOverrides() Overrides {
	return Overrides{
		FinancialMSPDomains: map[string]bool{
			"ceutechnologies.com":  true,
			"omegasystemscorp.com": true,
			"thrivenextgen.com":    true,
			"aag-it.com":           true,
			"silverlinetech.com":   true,
			"eze-castle.com":       true,
		},
		CompNames: map[string]bool{
			"bloomberg": true,
			"eurex":     true,
			"cme group": true,
		},
	}
}

// OverridesFromLists builds Overrides from plain string lists, as loaded
// from a config file. Empty lists fall back to the defaults.
func OverridesFromLists(domains, names []string) Overrides {
	o := DefaultOverrides()
	if len(domains) > 0 {
		o.FinancialMSPDomains = toSet(domains)
	}
	if len(names) > 0 {
		o.CompNames = toSet(names)
	}
	return o
}

// ForcesFinancialMSP reports whether the domain is on the financial-MSP
// allow-list.
func (o Overrides) ForcesFinancialMSP(domain string) bool {
	return o.FinancialMSPDomains[strings.ToLower(strings.TrimSpace(domain))]
}

// ForcesComp reports whether the firm name is on the known-comp allow-list.
func (o Overrides) ForcesComp(name string) bool {
	return o.CompNames[strings.ToLower(strings.TrimSpace(name))]
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			set[item] = true
		}
	}
	return set
}
