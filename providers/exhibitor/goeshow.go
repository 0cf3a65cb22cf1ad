package exhibitor

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/leofalp/firmscout/core/roster"
)

const goeShowBase = "https://s7.goeshow.com/fia/expo/2024/"

var exhibitorPopupPattern = regexp.MustCompile(`ExhibitorPopup\('([^']+)`)

// GoeShow parses goeshow.com exhibitor lists: a table#exh_list whose rows
// carry the booth number in the first cell and the exhibitor name, with an
// optional profile link, in the second.
type GoeShow struct{}

func (GoeShow) Extract(markup, conferenceID string) []roster.Record {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	table := findFirst(doc, func(n *html.Node) bool {
		return n.Data == "table" && attr(n, "id") == "exh_list"
	})
	if table == nil {
		return nil
	}
	body := findFirst(table, func(n *html.Node) bool { return n.Data == "tbody" })
	if body == nil {
		return nil
	}

	var records []roster.Record
	for _, tr := range findAll(body, func(n *html.Node) bool { return n.Data == "tr" }) {
		tds := findAll(tr, func(n *html.Node) bool { return n.Data == "td" })
		if len(tds) < 2 {
			continue
		}
		booth := nodeText(tds[0])
		nameCell := tds[1]
		name := nodeText(nameCell)
		if name == "" {
			continue
		}

		profileURL := ""
		if link := findFirst(nameCell, func(n *html.Node) bool { return n.Data == "a" }); link != nil {
			profileURL = goeShowProfileURL(attr(link, "href"), attr(link, "onclick"))
		}

		notes := ""
		if booth != "" {
			notes = "Booth: " + booth
		}
		records = append(records, roster.Record{
			Name:       name,
			Website:    profileURL,
			Notes:      notes,
			Source:     "conf:" + conferenceID,
			Conference: conferenceID,
		})
	}
	return records
}

// goeShowProfileURL reconstructs an exhibitor profile URL from a row link.
// Absolute links pass through; relative profile.cfm links, including those
// buried in ExhibitorPopup onclick handlers, are resolved against the
// directory base.
func goeShowProfileURL(href, onclick string) string {
	switch {
	case href != "" && strings.HasPrefix(href, "http"):
		return href
	case href != "" && strings.Contains(href, "profile.cfm"):
		return joinURL(goeShowBase, href)
	case onclick != "" && strings.Contains(onclick, "profile.cfm"):
		if m := exhibitorPopupPattern.FindStringSubmatch(onclick); m != nil {
			return joinURL(goeShowBase, m[1])
		}
	}
	return ""
}

func joinURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
