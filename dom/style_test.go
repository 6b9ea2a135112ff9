package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputedStyleCascade(t *testing.T) {
	doc := NewDocument()
	svg := doc.NewElement("svg")
	doc.Root().AppendChild(svg)
	rect := doc.NewElement("rect")
	rect.SetAttr("fill", "red")
	rect.SetAttr("style", "fill:blue;stroke:black")
	svg.AppendChild(rect)

	noRules := func(Node) map[string]string { return nil }
	style := rect.ComputedStyle(noRules)
	assert.Equal(t, "blue", style["fill"])
	assert.Equal(t, "black", style["stroke"])
}

func TestComputedStyleCachedUntilBump(t *testing.T) {
	doc := NewDocument()
	svg := doc.NewElement("svg")
	doc.Root().AppendChild(svg)
	rect := doc.NewElement("rect")
	rect.SetAttr("fill", "red")
	svg.AppendChild(rect)

	noRules := func(Node) map[string]string { return nil }
	first := rect.ComputedStyle(noRules)
	assert.Equal(t, "red", first["fill"])

	rect.SetAttr("fill", "green")
	second := rect.ComputedStyle(noRules)
	assert.Equal(t, "green", second["fill"])
}

func TestParseDeclarations(t *testing.T) {
	decls := ParseDeclarations("fill:red; stroke : blue !important;;")
	assert.Equal(t, "red", decls["fill"])
	assert.Equal(t, "blue", decls["stroke"])
	assert.Equal(t, 2, len(decls))
}

func TestSerializeDeclarationsSorted(t *testing.T) {
	out := SerializeDeclarations(map[string]string{"stroke": "blue", "fill": "red"})
	assert.Equal(t, "fill:red;stroke:blue", out)
}
