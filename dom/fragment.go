package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// lineBreakToken stands in for <br> while a fragment is flattened to text.
// It is inserted as a text node, so it can never collide with markup.
const lineBreakToken = "\x1e"

// Fragment is a detached, editable copy of an element subtree. Edits on a
// Fragment never reach the document it was cloned from.
type Fragment struct {
	sel *goquery.Selection
}

// NewFragment parses the outer HTML of a single element into a Fragment.
func NewFragment(outerHTML string) (*Fragment, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(outerHTML), body)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return &Fragment{sel: goquery.NewDocumentFromNode(n).Selection}, nil
		}
	}
	return nil, fmt.Errorf("dom: fragment has no element")
}

// Excise removes the first descendant matching selector. It reports whether
// an element was removed.
func (f *Fragment) Excise(selector string) (bool, error) {
	m, err := compile(selector)
	if err != nil {
		return false, err
	}
	found := f.sel.FindMatcher(m).First()
	if found.Length() == 0 {
		return false, nil
	}
	found.Remove()
	return true, nil
}

// Lines replaces every <br> with a separator, flattens the fragment to its
// text content and splits it on the separator. Leading and trailing
// whitespace of the whole text is trimmed before splitting; individual
// segments are returned as-is. The fragment is modified.
func (f *Fragment) Lines() []string {
	f.sel.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: lineBreakToken})
	})
	return strings.Split(strings.TrimSpace(f.sel.Text()), lineBreakToken)
}

// Text returns the fragment's visible text.
func (f *Fragment) Text() string {
	return VisibleText(f.sel)
}

// HTML returns the fragment's outer HTML.
func (f *Fragment) HTML() (string, error) {
	return goquery.OuterHtml(f.sel)
}
