package roster

import "strings"

// Category is one of the fixed classification lanes a firm can land in.
// The declaration order of [Categories] doubles as the tie-break order used
// by the classifier, so new lanes must be appended deliberately.
type Category string

const (
	CategoryFinancialMSP Category = "Financial MSP"
	CategoryTradingInfra Category = "Trading Infra MSP"
	CategoryMarketData   Category = "Market Data Ops"
	CategoryOMSEMS       Category = "OMS/EMS & FIX"
	CategoryRegOps       Category = "RegOps / Surveillance"
	CategoryGenericIT    Category = "Generic IT"
)

// Categories enumerates every category in scoring and tie-break order.
var Categories = []Category{
	CategoryFinancialMSP,
	CategoryTradingInfra,
	CategoryMarketData,
	CategoryOMSEMS,
	CategoryRegOps,
	CategoryGenericIT,
}

// Fit indicates whether a firm sits inside the core thesis or adjacent to it.
type Fit string

const (
	FitCore    Fit = "Core"
	FitStretch Fit = "Stretch"
)

// Classification is the top-level verdict derived from fit and category.
type Classification string

const (
	ClassificationTarget  Classification = "Potential acquisition target (near-term)"
	ClassificationPattern Classification = "Pattern / Comp / Future Partner"
)

// Record is a single discovered company with its provenance and enrichment
// fields. Discovery stages create records with only Name, Website, Notes,
// Source, and Conference populated; the enricher fills the rest exactly once.
type Record struct {
	Name           string
	Website        string
	HQ             string
	Category       Category
	Fit            Fit
	Notes          string
	Source         string
	Conference     string
	Classification Classification
}

// Columns is the persisted header, in the order rows are written.
var Columns = []string{
	"Name",
	"Website",
	"HQ",
	"Category",
	"Fit (Core/Stretch)",
	"Notes",
	"Source",
	"Conference",
	"Classification",
}

// Row renders the record as one persisted row matching [Columns].
func (r Record) Row() []string {
	return []string{
		r.Name,
		r.Website,
		r.HQ,
		string(r.Category),
		string(r.Fit),
		r.Notes,
		r.Source,
		r.Conference,
		string(r.Classification),
	}
}

// FromRow rebuilds a record from a persisted row. Short rows are tolerated;
// missing trailing columns stay zero-valued.
func FromRow(row []string) Record {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Record{
		Name:           get(0),
		Website:        get(1),
		HQ:             get(2),
		Category:       Category(get(3)),
		Fit:            Fit(get(4)),
		Notes:          get(5),
		Source:         get(6),
		Conference:     get(7),
		Classification: Classification(get(8)),
	}
}

// NormalizeWebsite produces the identity key for a website: trimmed,
// lower-cased, with a single trailing slash removed. Scheme differences are
// deliberately not collapsed; the same normalisation must be used anywhere
// records are re-deduplicated so keys never drift.
func NormalizeWebsite(website string) string {
	w := strings.ToLower(strings.TrimSpace(website))
	return strings.TrimSuffix(w, "/")
}

// NormalizeName produces the fallback identity key for records that carry no
// website.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Key returns the dedup key for the record: the normalised website when
// present, otherwise the normalised name under a distinct prefix so the two
// key spaces cannot collide.
func (r Record) Key() string {
	if w := NormalizeWebsite(r.Website); w != "" {
		return "site:" + w
	}
	return "name:" + NormalizeName(r.Name)
}
