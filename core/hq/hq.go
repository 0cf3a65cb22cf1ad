// Package hq infers a headquarters label from free page text. The result is
// a heuristic hint for triage, not a verified fact: explicit "headquartered
// in" phrasing is trusted first, then a curated map of known finance hubs,
// then a generic "City, ST" pattern.
package hq

import (
	"regexp"
	"strings"
)

// explicitPatterns capture "<city>, <ST>" after the phrases sites use when
// they state their own location. The two-letter region code is required; the
// text is matched lower-cased.
var explicitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`headquartered in ([a-z ,]+,\s*[a-z]{2})`),
	regexp.MustCompile(`based in ([a-z ,]+,\s*[a-z]{2})`),
	regexp.MustCompile(`headquarters in ([a-z ,]+,\s*[a-z]{2})`),
}

// hub is one entry of the known-hub map: any keyword present in the text
// resolves to the canonical label.
type hub struct {
	keys  []string
	label string
}

// hubs is scanned in order; the first entry with a matching keyword wins,
// so the more specific metros sit above the broader regions.
var hubs = []hub{
	{[]string{"new york", "nyc"}, "New York, NY"},
	{[]string{"brooklyn"}, "Brooklyn, NY"},
	{[]string{"jersey city"}, "Jersey City, NJ"},
	{[]string{"stamford", "greenwich", "norwalk"}, "Fairfield County, CT"},
	{[]string{"boston"}, "Boston, MA"},
	{[]string{"philadelphia"}, "Philadelphia, PA"},
	{[]string{"chicago"}, "Chicago, IL"},
	{[]string{"miami", "orlando", "tampa"}, "Florida"},
	{[]string{"dallas", "austin", "houston"}, "Texas"},
	{[]string{"san francisco"}, "San Francisco, CA"},
	{[]string{"los angeles"}, "Los Angeles, CA"},
	{[]string{"san jose", "palo alto", "silicon valley"}, "Bay Area, CA"},
	{[]string{"seattle"}, "Seattle, WA"},
	{[]string{"denver", "boulder"}, "Colorado"},
	{[]string{"charlotte"}, "Charlotte, NC"},
	{[]string{"washington dc", "washington d.c.", "washington, dc"}, "Washington, DC"},
	{[]string{"london"}, "London, UK"},
	{[]string{"toronto"}, "Toronto, Canada"},
	{[]string{"montreal"}, "Montreal, Canada"},
	{[]string{"vancouver"}, "Vancouver, Canada"},
	{[]string{"singapore"}, "Singapore"},
	{[]string{"hong kong"}, "Hong Kong"},
}

// genericUS matches a plain "City, ST" with an optional 5-digit ZIP, for
// pages that print an address without any locating phrase.
var genericUS = regexp.MustCompile(
	`\b([a-z][a-z .]{2,40}),\s*(al|ak|az|ar|ca|co|ct|de|fl|ga|hi|id|il|in|ia|ks|ky|la|me|md|ma|mi|mn|ms|mo|mt|` +
		`ne|nv|nh|nj|nm|ny|nc|nd|oh|ok|or|pa|ri|sc|sd|tn|tx|ut|vt|va|wa|wv|wi|wy)(?:\s+\d{5})?\b`)

// Resolve infers a headquarters label from free text, or returns "" when no
// strategy matches. Strategies run in order and the first match wins:
// explicit location phrases, then the known-hub map, then the generic
// "City, ST" pattern. An explicit phrase therefore beats a hub keyword that
// appears elsewhere on the page.
func Resolve(text string) string {
	t := strings.ToLower(text)

	for _, pat := range explicitPatterns {
		m := pat.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		loc := strings.TrimSpace(m[1])
		parts := strings.Split(loc, ",")
		if len(parts) == 2 {
			return titleCase(strings.TrimSpace(parts[0])) + ", " + strings.ToUpper(strings.TrimSpace(parts[1]))
		}
		return titleCase(loc)
	}

	for _, h := range hubs {
		for _, k := range h.keys {
			if strings.Contains(t, k) {
				return h.label
			}
		}
	}

	if m := genericUS.FindStringSubmatch(t); m != nil {
		return titleCase(strings.TrimSpace(m[1])) + ", " + strings.ToUpper(m[2])
	}

	return ""
}

// Normalize cleans up an HQ label wherever it came from: trims whitespace,
// canonicalises the UK token, and for a two-part "city, region" label
// title-cases the city and upper-cases the region. Other shapes are
// title-cased whole.
func Normalize(label string) string {
	if label == "" {
		return ""
	}
	label = strings.TrimSpace(label)
	label = strings.ReplaceAll(label, "Uk", "UK")
	label = strings.ReplaceAll(label, "uk", "UK")

	parts := strings.Split(label, ",")
	if len(parts) == 2 {
		city := titleCase(strings.TrimSpace(parts[0]))
		region := strings.ToUpper(strings.TrimSpace(parts[1]))
		return city + ", " + region
	}
	return titleCase(label)
}

// titleCase upper-cases the first letter of every alphabetic run and
// lower-cases the rest, so "new york" becomes "New York" and stray caps are
// smoothed out.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isAlpha && startOfWord && r >= 'a' && r <= 'z':
			r -= 'a' - 'A'
		case isAlpha && !startOfWord && r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		}
		startOfWord = !isAlpha
		b.WriteRune(r)
	}
	return b.String()
}
