package dom

import (
	"github.com/ericchiang/css"
	"golang.org/x/net/html"
)

// Selector is a parsed CSS selector list, ready to be matched against
// elements of a Document.
//
// ericchiang/css (the selector engine the rest of the example corpus wires
// into cogentcore.org/core's style cascade) compiles and matches against
// golang.org/x/net/html.Node trees. Since our own tree is not an html.Node
// tree, matching works by mirroring the subtree being queried into
// html.Node form (elements only; text/comment/PI nodes never participate
// in selector matching) and mapping matches back by node identity.
type Selector struct {
	compiled *css.Selector
}

// CompileSelector parses a CSS selector list such as "g.icon, path:not([fill])".
func CompileSelector(s string) (*Selector, error) {
	compiled, err := css.Parse(s)
	if err != nil {
		return nil, err
	}
	return &Selector{compiled: compiled}, nil
}

// mirror builds an html.Node tree isomorphic to n's element descendants
// (and n itself, if it is an element), returning the mirror root and a
// lookup from mirror node back to the originating dom.Node.
func (n Node) mirror() (*html.Node, map[*html.Node]Node) {
	back := make(map[*html.Node]Node)
	var build func(Node) *html.Node
	build = func(e Node) *html.Node {
		typ := html.ElementNode
		if e.Kind() == KindDocument {
			typ = html.DocumentNode
		}
		hn := &html.Node{Type: typ, Data: e.LocalName(), DataAtom: 0}
		if typ == html.ElementNode {
			for _, a := range e.Attrs() {
				hn.Attr = append(hn.Attr, html.Attribute{Key: a.Name(), Val: a.Value})
			}
			back[hn] = e
		}
		for c := e.FirstChild(); c.Valid(); c = c.NextSibling() {
			if c.Kind() != KindElement {
				continue
			}
			hn.AppendChild(build(c))
		}
		return hn
	}
	return build(n), back
}

// QuerySelectorAll returns every element in n's subtree (n included) that
// matches sel, in document order.
func (n Node) QuerySelectorAll(sel *Selector) []Node {
	root, back := n.mirror()
	matched := sel.compiled.Select(root)
	out := make([]Node, 0, len(matched))
	for _, hn := range matched {
		if orig, ok := back[hn]; ok {
			out = append(out, orig)
		}
	}
	return out
}

// Matches reports whether n itself matches sel, considering n's ancestors
// up to the document root for combinators like "svg > g" or descendant
// selectors.
func (n Node) Matches(sel *Selector) bool {
	root := n
	for p := n.Parent(); p.Valid(); p = p.Parent() {
		root = p
	}
	for _, m := range root.QuerySelectorAll(sel) {
		if m.Equal(n) {
			return true
		}
	}
	return false
}
