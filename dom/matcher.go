package dom

import (
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// matchers caches compiled selectors; the extractor reuses a small fixed set
// for every tile of every page.
var matchers sync.Map // map[string]cascadia.Selector

// compile returns the compiled matcher for selector.
func compile(selector string) (goquery.Matcher, error) {
	if m, ok := matchers.Load(selector); ok {
		return m.(cascadia.Selector), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	matchers.Store(selector, sel)
	return sel, nil
}
