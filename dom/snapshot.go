package dom

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is an in-memory snapshot of a rendered page.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse reads rendered HTML into a Document. pageURL is the address the
// HTML was served from; relative links are resolved against it, or against
// the document's <base href> when one is present. pageURL may be empty.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}

	var base *url.URL
	if pageURL != "" {
		if base, err = url.Parse(pageURL); err != nil {
			return nil, fmt.Errorf("dom: invalid page URL: %w", err)
		}
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if u, err := url.Parse(strings.TrimSpace(href)); err == nil {
			if base != nil {
				u = base.ResolveReference(u)
			}
			base = u
		}
	}

	doc.Url = base
	return &Document{doc: doc, base: base}, nil
}

// ParseString is Parse over an HTML string.
func ParseString(s, pageURL string) (*Document, error) {
	return Parse(strings.NewReader(s), pageURL)
}

// Root returns the document node.
func (d *Document) Root() Node {
	return &snapshotNode{sel: d.doc.Selection, base: d.base}
}

// HTML renders the current state of the document.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

type snapshotNode struct {
	sel  *goquery.Selection
	base *url.URL
}

func (n *snapshotNode) QueryAll(selector string) ([]Node, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}
	found := n.sel.FindMatcher(m)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &snapshotNode{sel: s, base: n.base})
	})
	return nodes, nil
}

func (n *snapshotNode) Text() (string, error) {
	return VisibleText(n.sel), nil
}

func (n *snapshotNode) Attr(name string) (string, bool, error) {
	v, ok := n.sel.Attr(name)
	return v, ok, nil
}

func (n *snapshotNode) Href() (string, error) {
	href, ok := n.sel.Attr("href")
	if !ok {
		return "", nil
	}
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil || n.base == nil {
		return href, nil
	}
	return n.base.ResolveReference(u).String(), nil
}

func (n *snapshotNode) Clone() (*Fragment, error) {
	return &Fragment{sel: n.sel.Clone()}, nil
}
