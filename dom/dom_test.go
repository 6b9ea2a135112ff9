package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeMutation(t *testing.T) {
	doc := NewDocument()
	svg := doc.NewElement("svg")
	doc.Root().AppendChild(svg)

	g := doc.NewElement("g")
	path := doc.NewElement("path")
	svg.AppendChild(g)
	svg.AppendChild(path)

	assert.True(t, g.NextSibling().Equal(path))
	assert.True(t, path.PrevSibling().Equal(g))
	assert.True(t, g.Parent().Equal(svg))
	assert.Equal(t, 2, svg.ChildCount())

	g.Detach()
	assert.Equal(t, 1, svg.ChildCount())
	assert.False(t, path.PrevSibling().Valid())

	svg.InsertBefore(g, path)
	assert.True(t, svg.FirstChild().Equal(g))
	assert.Equal(t, 2, svg.ChildCount())
}

func TestReplaceWith(t *testing.T) {
	doc := NewDocument()
	svg := doc.NewElement("svg")
	doc.Root().AppendChild(svg)
	g := doc.NewElement("g")
	svg.AppendChild(g)

	a := doc.NewElement("a")
	b := doc.NewElement("b")
	g.ReplaceWith([]Node{a, b})

	assert.Equal(t, 2, svg.ChildCount())
	assert.True(t, svg.FirstChild().Equal(a))
	assert.True(t, svg.FirstChild().NextSibling().Equal(b))
}

func TestAttrOrderPreservedOnOverwrite(t *testing.T) {
	doc := NewDocument()
	e := doc.NewElement("rect")
	e.SetAttr("width", "10")
	e.SetAttr("height", "20")
	e.SetAttr("width", "15")

	attrs := e.Attrs()
	assert.Equal(t, "width", attrs[0].Name())
	assert.Equal(t, "15", attrs[0].Value)
	assert.Equal(t, "height", attrs[1].Name())
}

func TestAbsentVsEmptyAttr(t *testing.T) {
	doc := NewDocument()
	e := doc.NewElement("path")
	e.SetAttr("d", "")

	v, ok := e.Attr("d")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = e.Attr("fill")
	assert.False(t, ok)
}

func TestParseSerializeRoundTrip(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><g color="black"/><path fill="rgb(64, 64, 64)"/></svg>`
	doc, err := Parse(strings.NewReader(src))
	assert.Nil(t, err)

	svg := doc.Root().FirstChild()
	assert.Equal(t, "svg", svg.LocalName())
	assert.Equal(t, SVGNamespace, svg.NamespaceURI())

	g := svg.FirstChild()
	assert.Equal(t, "g", g.LocalName())
	v, ok := g.Attr("color")
	assert.True(t, ok)
	assert.Equal(t, "black", v)

	out := Serialize(doc)
	assert.True(t, strings.Contains(out, `viewBox="0 0 1 1"`))
	assert.True(t, strings.Contains(out, `<path fill="rgb(64, 64, 64)"/>`))
}

func TestParseComments(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg><!-- foo --><!-- bar --></svg>`))
	assert.Nil(t, err)
	svg := doc.Root().FirstChild()
	c1 := svg.FirstChild()
	assert.Equal(t, KindComment, c1.Kind())
	assert.Equal(t, " foo ", c1.TextData())
}

func TestParseDoctype(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd"><svg/>`))
	assert.Nil(t, err)
	dt := doc.Root().FirstChild()
	assert.Equal(t, KindDocType, dt.Kind())
	name, public, system := dt.DocType()
	assert.Equal(t, "svg", name)
	assert.Equal(t, "-//W3C//DTD SVG 1.1//EN", public)
	assert.Equal(t, "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd", system)
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	doc := NewDocument()
	svg := doc.NewElement("svg")
	doc.Root().AppendChild(svg)
	g := doc.NewElement("g")
	g.SetAttr("id", "a")
	svg.AppendChild(g)
	child := doc.NewElement("path")
	g.AppendChild(child)

	clone := g.Clone()
	assert.False(t, clone.Parent().Valid())
	assert.Equal(t, 1, clone.ChildCount())

	clone.SetAttr("id", "b")
	v, _ := g.Attr("id")
	assert.Equal(t, "a", v)
}

func TestChildAtOutOfRangePanics(t *testing.T) {
	doc := NewDocument()
	svg := doc.NewElement("svg")
	doc.Root().AppendChild(svg)
	assert.Panics(t, func() { svg.ChildAt(0) })
}
