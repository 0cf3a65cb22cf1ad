package fetch

import (
	"encoding/json"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/kaptinlin/jsonrepair"
	"golang.org/x/net/html"
)

// SiteText converts raw page markup into the lower-cased free text scored by
// the classifier and scanned by the HQ resolver.
//
// The visible content is converted with html-to-markdown, which keeps body
// copy including footer and address blocks where location hints usually
// live. JSON-LD organisation blocks are decoded separately and their name,
// description, and postal address fields appended, so structured location
// data a site never renders as text still reaches the HQ heuristics.
// Marketing sites routinely ship JSON-LD that is not quite JSON (trailing
// commas, single quotes); such blocks are repaired before a second decode
// attempt rather than dropped.
func SiteText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	var parts []string

	if md, err := htmltomarkdown.ConvertString(markup); err == nil {
		parts = append(parts, collapseWhitespace(md))
	} else {
		parts = append(parts, collapseWhitespace(visibleText(markup)))
	}

	for _, block := range jsonLDBlocks(markup) {
		for _, org := range decodeOrganizations(block) {
			if s := org.text(); s != "" {
				parts = append(parts, s)
			}
		}
	}

	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}

// jsonLDBlocks returns the contents of every
// <script type="application/ld+json"> element in the markup.
func jsonLDBlocks(markup string) []string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, attr := range n.Attr {
				if attr.Key == "type" && attr.Val == "application/ld+json" {
					if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
						blocks = append(blocks, n.FirstChild.Data)
					}
					return
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks
}

// organization is the slice of a JSON-LD entity useful for classification
// and HQ resolution.
type organization struct {
	Type        any    `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     struct {
		StreetAddress   string `json:"streetAddress"`
		AddressLocality string `json:"addressLocality"`
		AddressRegion   string `json:"addressRegion"`
		PostalCode      string `json:"postalCode"`
		AddressCountry  string `json:"addressCountry"`
	} `json:"address"`
}

// text flattens the organisation into resolver-friendly prose. The locality
// and region are joined as "City, ST" so the generic HQ pattern can match.
func (o organization) text() string {
	var parts []string
	if o.Name != "" {
		parts = append(parts, o.Name)
	}
	if o.Description != "" {
		parts = append(parts, o.Description)
	}
	if o.Address.StreetAddress != "" {
		parts = append(parts, o.Address.StreetAddress)
	}
	if o.Address.AddressLocality != "" && o.Address.AddressRegion != "" {
		loc := o.Address.AddressLocality + ", " + o.Address.AddressRegion
		if o.Address.PostalCode != "" {
			loc += " " + o.Address.PostalCode
		}
		parts = append(parts, loc)
	} else if o.Address.AddressLocality != "" {
		parts = append(parts, o.Address.AddressLocality)
	}
	if o.Address.AddressCountry != "" {
		parts = append(parts, o.Address.AddressCountry)
	}
	return strings.Join(parts, " ")
}

// decodeOrganizations decodes a JSON-LD block into organisations, accepting
// both a single object and an array, and repairing malformed JSON once
// before giving up.
func decodeOrganizations(block string) []organization {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil
	}

	if orgs, ok := tryDecodeOrganizations(block); ok {
		return orgs
	}
	repaired, err := jsonrepair.JSONRepair(block)
	if err != nil {
		return nil
	}
	orgs, _ := tryDecodeOrganizations(repaired)
	return orgs
}

func tryDecodeOrganizations(block string) ([]organization, bool) {
	var one organization
	if err := json.Unmarshal([]byte(block), &one); err == nil {
		return []organization{one}, true
	}
	var many []organization
	if err := json.Unmarshal([]byte(block), &many); err == nil {
		return many, true
	}
	return nil, false
}

// visibleText is the fallback extraction when markdown conversion fails: a
// plain DOM walk collecting text nodes outside script and style elements.
func visibleText(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

var whitespacePattern = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}
