package dom

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipped elements never contribute rendered text.
var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// blocks start and end a line in the rendered text. Paragraphs add a blank
// line on each side.
var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Ul: true,
}

// VisibleText approximates innerText for the selection. Below each root,
// hidden and non-rendered elements are dropped, runs of whitespace collapse to
// a single space, <br> becomes a line break, block boundaries start a new
// line and paragraphs are separated by a blank line. A root that is itself
// not rendered yields its raw text content, as innerText does.
func VisibleText(s *goquery.Selection) string {
	var out strings.Builder
	for _, n := range s.Nodes {
		if n.Type == html.ElementNode && (skipped[n.DataAtom] || isHidden(n)) {
			out.WriteString(goquery.NewDocumentFromNode(n).Text())
			continue
		}
		w := &textWriter{}
		w.node(n)
		out.WriteString(w.String())
	}
	return out.String()
}

// textWriter accumulates rendered text. Required line breaks are held in
// pending and only written once more text follows, so they never lead or
// trail and adjacent ones merge to the largest count.
type textWriter struct {
	b       strings.Builder
	pending int
}

func (w *textWriter) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		if skipped[n.DataAtom] || isHidden(n) {
			return
		}
		if n.DataAtom == atom.Br {
			w.flush()
			w.b.WriteByte('\n')
			return
		}
	case html.DocumentNode:
	default:
		return
	}

	breaks := 0
	switch {
	case n.Type != html.ElementNode:
	case n.DataAtom == atom.P:
		breaks = 2
	case blocks[n.DataAtom]:
		breaks = 1
	}
	w.require(breaks)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
	w.require(breaks)
}

func (w *textWriter) text(data string) {
	s := collapseSpace(data)
	if w.atLineStart() {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return
	}
	w.flush()
	w.b.WriteString(s)
}

func (w *textWriter) require(n int) {
	w.pending = max(w.pending, n)
}

func (w *textWriter) flush() {
	if w.b.Len() > 0 && w.pending > 0 {
		w.b.WriteString(strings.Repeat("\n", w.pending))
	}
	w.pending = 0
}

func (w *textWriter) atLineStart() bool {
	if w.b.Len() == 0 || w.pending > 0 {
		return true
	}
	return strings.HasSuffix(w.b.String(), "\n")
}

// String trims the spaces around every line and the line breaks around the
// whole text. Empty lines inside the text are kept.
func (w *textWriter) String() string {
	lines := strings.Split(w.b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Trim(line, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			style := strings.ToLower(strings.ReplaceAll(a.Val, " ", ""))
			if strings.Contains(style, "display:none") {
				return true
			}
		}
	}
	return false
}

// collapseSpace replaces every run of whitespace, newlines included, with a
// single space.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}
