package job

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdewolff/svgo/dom"
)

func TestCollapseGroupsMergesSingleChildGroup(t *testing.T) {
	doc := parseDoc(t, `<svg><g fill="red"><path d="M0 0"/></g></svg>`)
	runJobOnce(t, doc, NewCollapseGroups())
	svg := doc.Root().FirstChild()
	path := svg.FirstChild()
	assert.Equal(t, "path", path.LocalName())
	fill, _ := path.Attr("fill")
	assert.Equal(t, "red", fill)
	d, _ := path.Attr("d")
	assert.Equal(t, "M0 0", d)
	assert.False(t, path.NextSibling().Valid())
}

func TestCollapseGroupsSkipsGroupWithID(t *testing.T) {
	doc := parseDoc(t, `<svg><g id="grp" fill="red"><path d="M0 0"/></g></svg>`)
	runJobOnce(t, doc, NewCollapseGroups())
	svg := doc.Root().FirstChild()
	assert.Equal(t, "g", svg.FirstChild().LocalName())
}

func TestCollapseGroupsComposesTransform(t *testing.T) {
	doc := parseDoc(t, `<svg><g transform="translate(1 1)"><path transform="scale(2)" d="M0 0"/></g></svg>`)
	runJobOnce(t, doc, NewCollapseGroups())
	path := doc.Root().FirstChild().FirstChild()
	transform, _ := path.Attr("transform")
	assert.Equal(t, "translate(1 1) scale(2)", transform)
}

func TestMergeStyledGroupsMergesIdenticalSiblingGroups(t *testing.T) {
	doc := parseDoc(t, `<svg><g fill="red"><path d="M0 0"/></g><g fill="red"><path d="M1 1"/></g></svg>`)
	runJobOnce(t, doc, NewMergeStyledGroups())
	svg := doc.Root().FirstChild()
	g := svg.FirstChild()
	assert.Equal(t, "g", g.LocalName())
	assert.False(t, g.NextSibling().Valid())
	assert.Equal(t, 2, g.ChildCount())
}

func TestMergeStyledGroupsSkipsDifferingAttrs(t *testing.T) {
	doc := parseDoc(t, `<svg><g fill="red"><path d="M0 0"/></g><g fill="blue"><path d="M1 1"/></g></svg>`)
	runJobOnce(t, doc, NewMergeStyledGroups())
	svg := doc.Root().FirstChild()
	assert.True(t, svg.FirstChild().NextSibling().Valid())
}

func TestSortAttrsOrdersByFixedList(t *testing.T) {
	doc := parseDoc(t, `<svg><path fill="red" d="M0 0" id="a"/></svg>`)
	runJobOnce(t, doc, NewSortAttrs(DefaultSortAttrsOptions()))
	path := doc.Root().FirstChild().FirstChild()
	var names []string
	for _, a := range path.Attrs() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"id", "d", "fill"}, names)
}

func TestSortDefsChildrenOrdersByNameThenID(t *testing.T) {
	doc := parseDoc(t, `<svg><defs><rect id="b"/><circle id="a"/></defs></svg>`)
	runJobOnce(t, doc, NewSortDefsChildren())
	defs := doc.Root().FirstChild().FirstChild()
	assert.Equal(t, "circle", defs.FirstChild().LocalName())
	assert.Equal(t, "rect", defs.FirstChild().NextSibling().LocalName())
}

func TestMoveGroupAttrsToElemsPushesTransformToSingleChild(t *testing.T) {
	doc := parseDoc(t, `<svg><g transform="translate(1 1)"><path d="M0 0"/></g></svg>`)
	runJobOnce(t, doc, NewMoveGroupAttrsToElems())
	g := doc.Root().FirstChild().FirstChild()
	_, hasTransform := g.Attr("transform")
	assert.False(t, hasTransform)
	transform, ok := g.FirstChild().Attr("transform")
	assert.True(t, ok)
	assert.Equal(t, "translate(1 1)", transform)
}

func TestMoveGroupAttrsToElemsSkipsMultiChildGroup(t *testing.T) {
	doc := parseDoc(t, `<svg><g transform="translate(1 1)"><path d="M0 0"/><path d="M1 1"/></g></svg>`)
	runJobOnce(t, doc, NewMoveGroupAttrsToElems())
	g := doc.Root().FirstChild().FirstChild()
	_, hasTransform := g.Attr("transform")
	assert.True(t, hasTransform)
}

func TestMoveElemsAttrsToGroupHoistsCommonAttr(t *testing.T) {
	doc := parseDoc(t, `<svg><g><path fill="red" d="M0 0"/><path fill="red" d="M1 1"/></g></svg>`)
	runJobOnce(t, doc, NewMoveElemsAttrsToGroup())
	g := doc.Root().FirstChild().FirstChild()
	fill, ok := g.Attr("fill")
	assert.True(t, ok)
	assert.Equal(t, "red", fill)
	for c := g.FirstChild(); c.Valid(); c = c.NextSibling() {
		if c.Kind() == dom.KindElement {
			_, has := c.Attr("fill")
			assert.False(t, has)
		}
	}
}

func TestMoveElemsAttrsToGroupSkipsDivergentAttr(t *testing.T) {
	doc := parseDoc(t, `<svg><g><path fill="red" d="M0 0"/><path fill="blue" d="M1 1"/></g></svg>`)
	runJobOnce(t, doc, NewMoveElemsAttrsToGroup())
	g := doc.Root().FirstChild().FirstChild()
	_, hasFill := g.Attr("fill")
	assert.False(t, hasFill)
}
