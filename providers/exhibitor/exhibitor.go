// Package exhibitor extracts vendor rosters from conference exhibitor and
// sponsor directory pages. Each supported directory platform has an Adapter
// that knows the page structure; conferences bind a URL to an adapter name.
package exhibitor

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/leofalp/firmscout/core/roster"
)

// Adapter turns one directory page's markup into roster records. The
// conference identifier is stamped onto every record for provenance.
type Adapter interface {
	Extract(markup, conferenceID string) []roster.Record
}

// Conference binds an exhibitor directory URL to the adapter that can parse
// it. The ID doubles as the Conference column value in the roster.
type Conference struct {
	ID      string `yaml:"id"`
	URL     string `yaml:"url"`
	Adapter string `yaml:"adapter"`
}

var adapters = map[string]Adapter{
	"goeshow":    GoeShow{},
	"wbresearch": WBResearch{},
}

// Lookup returns the adapter registered under name.
func Lookup(name string) (Adapter, error) {
	a, ok := adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown exhibitor adapter %q", name)
	}
	return a, nil
}

// DefaultConferences returns the built-in conference directory list.
func DefaultConferences() []Conference {
	return []Conference{
		{
			ID:      "FIA_Expo_2024",
			URL:     "https://s7.goeshow.com/fia/expo/2024/sponsor_exhibitor_list.cfm",
			Adapter: "goeshow",
		},
		{
			ID:      "TradeTech_FX_USA_2025",
			URL:     "https://tradetechfxus.wbresearch.com/sponsors/2025",
			Adapter: "wbresearch",
		},
	}
}

// nodeText returns the concatenated text content of a node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll collects every element in the subtree matching the predicate.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// findFirst returns the first element in the subtree matching the predicate.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}
