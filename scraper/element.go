package scraper

import (
	"github.com/go-rod/rod"
	"github.com/use-agent/catalogscrape/dom"
)

// elementNode is a dom.Node backed by a live element of the page. Every
// accessor is a CDP round trip; the page itself is never modified.
type elementNode struct {
	el *rod.Element
}

var _ dom.Node = (*elementNode)(nil)

func newElementNode(el *rod.Element) *elementNode {
	return &elementNode{el: el}
}

// QueryAll uses Elements, which returns immediately instead of waiting for
// a match to appear.
func (n *elementNode) QueryAll(selector string) ([]dom.Node, error) {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	nodes := make([]dom.Node, len(els))
	for i, el := range els {
		nodes[i] = newElementNode(el)
	}
	return nodes, nil
}

func (n *elementNode) Text() (string, error) {
	return n.el.Text()
}

func (n *elementNode) Attr(name string) (string, bool, error) {
	v, err := n.el.Attribute(name)
	if err != nil || v == nil {
		return "", false, err
	}
	return *v, true, nil
}

// Href reads the resolved href property rather than the raw attribute.
func (n *elementNode) Href() (string, error) {
	v, err := n.el.Property("href")
	if err != nil {
		return "", err
	}
	if v.Nil() {
		return "", nil
	}
	return v.Str(), nil
}

// Clone copies the element's outer HTML into a detached fragment.
func (n *elementNode) Clone() (*dom.Fragment, error) {
	html, err := n.el.HTML()
	if err != nil {
		return nil, err
	}
	return dom.NewFragment(html)
}
