// Package dom models the read-only view of a rendered document that the
// extractor walks. Two implementations exist: an in-memory goquery snapshot
// (this package) and live browser elements (package scraper).
package dom

// Node is one element of a rendered document.
//
// Implementations never mutate the underlying document. Edits needed to
// isolate text are made on the detached Fragment returned by Clone.
type Node interface {
	// QueryAll returns every descendant matching the CSS selector, in
	// document order. No match yields an empty slice and a nil error.
	QueryAll(selector string) ([]Node, error)

	// Text returns the node's visible text.
	Text() (string, error)

	// Attr returns the named attribute and whether it is present.
	Attr(name string) (value string, ok bool, err error)

	// Href returns the absolute link target of the node, or "" when it has none.
	Href() (string, error)

	// Clone returns an owned, detached copy of the node's subtree.
	Clone() (*Fragment, error)
}

// Query returns the first descendant of n matching selector, or nil when
// there is none.
func Query(n Node, selector string) (Node, error) {
	nodes, err := n.QueryAll(selector)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}
