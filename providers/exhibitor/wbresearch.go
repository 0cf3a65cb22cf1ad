package exhibitor

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/leofalp/firmscout/core/roster"
)

// WBResearch parses wbresearch.com sponsor pages: one div.sponsor card per
// firm with an h3 name, an outbound link, and an optional description block.
type WBResearch struct{}

func (WBResearch) Extract(markup, conferenceID string) []roster.Record {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	cards := findAll(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "sponsor")
	})

	var records []roster.Record
	for _, card := range cards {
		nameEl := findFirst(card, func(n *html.Node) bool { return n.Data == "h3" })
		if nameEl == nil {
			continue
		}
		name := nodeText(nameEl)
		if name == "" {
			continue
		}

		website := ""
		if link := findFirst(card, func(n *html.Node) bool {
			return n.Data == "a" && attr(n, "href") != ""
		}); link != nil {
			website = sponsorURL(attr(link, "href"))
		}

		notes := ""
		if desc := findFirst(card, func(n *html.Node) bool { return hasClass(n, "description") }); desc != nil {
			notes = nodeText(desc)
		}

		records = append(records, roster.Record{
			Name:       name,
			Website:    website,
			Notes:      notes,
			Source:     "conf:" + conferenceID,
			Conference: conferenceID,
		})
	}
	return records
}

// sponsorURL keeps absolute links and upgrades bare www hosts to https.
// Anything else, relative paths included, is discarded rather than guessed.
func sponsorURL(href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "www"):
		return "https://" + href
	}
	return ""
}
