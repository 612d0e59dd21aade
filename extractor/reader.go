package extractor

import (
	"strings"

	"github.com/use-agent/catalogscrape/dom"
)

// reader wraps dom.Node accessors and keeps the first error, so the
// traversal reads as a straight sequence of field lookups. Once err is set
// every accessor returns a zero value.
type reader struct {
	err error
}

func (r *reader) all(n dom.Node, selector string) []dom.Node {
	if r.err != nil {
		return nil
	}
	nodes, err := n.QueryAll(selector)
	if err != nil {
		r.err = err
		return nil
	}
	return nodes
}

func (r *reader) first(n dom.Node, selector string) dom.Node {
	if r.err != nil {
		return nil
	}
	node, err := dom.Query(n, selector)
	if err != nil {
		r.err = err
		return nil
	}
	return node
}

// text returns the trimmed visible text of the first descendant matching
// selector, or "" when there is none.
func (r *reader) text(n dom.Node, selector string) string {
	node := r.first(n, selector)
	if node == nil {
		return ""
	}
	s, err := node.Text()
	if err != nil {
		r.err = err
		return ""
	}
	return strings.TrimSpace(s)
}

func (r *reader) attr(n dom.Node, name string) string {
	if r.err != nil {
		return ""
	}
	v, _, err := n.Attr(name)
	if err != nil {
		r.err = err
		return ""
	}
	return v
}

func (r *reader) href(n dom.Node) string {
	if r.err != nil {
		return ""
	}
	v, err := n.Href()
	if err != nil {
		r.err = err
		return ""
	}
	return v
}
