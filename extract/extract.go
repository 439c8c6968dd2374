// Package extract pulls transcript links and readable plain text out of
// parsed HTML documents.
//
// Journal index pages list their transcript pages as anchors inside
// first-level <li> elements; Links returns exactly those. Text flattens
// a page to line-oriented plain text, breaking at block-level elements
// and skipping script, style, and other non-content subtrees.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var spaceRe = regexp.MustCompile(`\s+`)

// Links returns the href targets of anchors inside first-level <li>
// elements, in document order. Anchors in nested sublists are ignored;
// those are navigation, not content listings. Targets are returned as
// written, untrimmed of fragments: resolution against the page URL is
// the caller's concern.
func Links(doc *html.Node) []string {
	var hrefs []string

	var walk func(n *html.Node, liDepth int)
	walk = func(n *html.Node, liDepth int) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Li:
				liDepth++
			case atom.A:
				if liDepth == 1 {
					if href := strings.TrimSpace(attr(n, "href")); href != "" {
						hrefs = append(hrefs, href)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, liDepth)
		}
	}
	walk(doc, 0)

	return hrefs
}

// Title returns the document's <title> text, whitespace-collapsed, or
// the empty string when the document has none.
func Title(doc *html.Node) string {
	var title string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			title = textContent(n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(spaceRe.ReplaceAllString(title, " "))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
