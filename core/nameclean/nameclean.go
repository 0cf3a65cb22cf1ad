// Package nameclean derives a usable company name from the noisy title
// strings that search results and listing pages carry. Titles routinely look
// like "Managed IT Services for Hedge Funds | Omega Systems": the marketing
// headline sits in front and the actual brand hides behind a separator.
package nameclean

import (
	"regexp"
	"strings"
)

// separatorPattern splits a title on the separators sites use between a
// headline and their brand: pipe, en dash, em dash, hyphen, colon, each with
// optional surrounding whitespace.
var separatorPattern = regexp.MustCompile(`\s*(?:\||–|—|-|:)\s*`)

// marketingWords flags segments that read like a marketing headline rather
// than a firm name. Matching is a case-insensitive substring check, so
// "it" also catches "IT Services".
var marketingWords = []string{
	"managed", "services", "service", "cloud", "it", "support", "cybersecurity",
	"security", "hedge", "fund", "trading", "infrastructure", "platform",
	"managed services", "consulting", "implementation", "solutions",
}

// Clean returns the best-guess company name for a raw title, falling back to
// the supplied domain when the title yields nothing usable.
//
// The title is split on separators and empty segments are dropped. The first
// segment is the base, the last (when more than one exists) the brand. The
// brand is preferred when it is short and does not look like marketing; a
// marketing-heavy base also defers to a clean brand. Otherwise the base wins
// even when it is marketing-heavy itself — that fallback is deliberate and
// pinned by tests. Clean is pure: identical inputs yield identical output.
func Clean(title, fallbackDomain string) string {
	if title == "" {
		return fallbackDomain
	}

	var parts []string
	for _, p := range separatorPattern.Split(title, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		if t := strings.TrimSpace(title); t != "" {
			return t
		}
		return fallbackDomain
	}

	base := parts[0]
	brand := ""
	if len(parts) > 1 {
		brand = parts[len(parts)-1]
	}

	// A short, non-marketing brand segment is almost always the firm name.
	if brand != "" && len(strings.Fields(brand)) <= 6 && !looksLikeMarketing(brand) {
		return brand
	}

	// Marketing-heavy base still defers to a clean brand.
	if brand != "" && looksLikeMarketing(base) && !looksLikeMarketing(brand) {
		return brand
	}

	if base != "" {
		return base
	}
	return fallbackDomain
}

func looksLikeMarketing(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range marketingWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// DomainFromURL extracts the lower-cased host segment of a URL, returning
// the whole input lower-cased when it has no host segment.
func DomainFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) > 2 {
		return strings.ToLower(parts[2])
	}
	return strings.ToLower(url)
}
