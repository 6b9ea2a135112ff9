package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultInlineStylesOptionsMatchesFixedShape(t *testing.T) {
	assert.Equal(t, InlineStylesOptions{
		OnlyMatchedOnce:        true,
		RemoveMatchedSelectors: true,
		UseMqs:                 []string{"", "screen"},
		UsePseudos:             []string{""},
	}, DefaultInlineStylesOptions())
}

func TestInlineStylesMergesSingleMatchAndRemovesRule(t *testing.T) {
	doc := parseDoc(t, `<svg><style>.a{fill:#ff0000}</style><path class="a" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewInlineStyles(DefaultInlineStylesOptions()))
	svg := doc.Root().FirstChild()
	path := svg.FirstChild()
	style, ok := path.Attr("style")
	assert.True(t, ok)
	assert.Equal(t, "fill:#ff0000", style)
	assert.Equal(t, "path", svg.FirstChild().LocalName())
	assert.True(t, svg.FirstChild().Valid())
}

func TestInlineStylesSkipsSelectorMatchingMultipleWhenOnlyMatchedOnce(t *testing.T) {
	doc := parseDoc(t, `<svg><style>.a{fill:#ff0000}</style><path class="a" d="M0 0"/><path class="a" d="M1 1"/></svg>`)
	runJobOnce(t, doc, NewInlineStyles(DefaultInlineStylesOptions()))
	svg := doc.Root().FirstChild()
	first := svg.FirstChild().NextSibling()
	_, hasStyle := first.Attr("style")
	assert.False(t, hasStyle)
	styleElem := svg.FirstChild()
	assert.Equal(t, "style", styleElem.LocalName())
}

func TestInlineStylesKeepsUnmatchedQueryMedia(t *testing.T) {
	doc := parseDoc(t, `<svg><style>@media print{.a{fill:#ff0000}}</style><path class="a" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewInlineStyles(DefaultInlineStylesOptions()))
	svg := doc.Root().FirstChild()
	path := svg.FirstChild().NextSibling()
	_, hasStyle := path.Attr("style")
	assert.False(t, hasStyle)
}

func TestConvertStyleToAttrsAutoPrefersShorterForm(t *testing.T) {
	doc := parseDoc(t, `<svg><path style="fill:red" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewConvertStyleToAttrs(DefaultConvertStyleToAttrsOptions()))
	path := doc.Root().FirstChild().FirstChild()
	fill, ok := path.Attr("fill")
	assert.True(t, ok)
	assert.Equal(t, "red", fill)
	_, hasStyle := path.Attr("style")
	assert.False(t, hasStyle)
}

func TestConvertStyleToAttrsForcedToStyleDirection(t *testing.T) {
	doc := parseDoc(t, `<svg><path fill="red" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewConvertStyleToAttrs(ConvertStyleToAttrsOptions{Direction: "toStyle"}))
	path := doc.Root().FirstChild().FirstChild()
	_, hasFill := path.Attr("fill")
	assert.False(t, hasFill)
	style, ok := path.Attr("style")
	assert.True(t, ok)
	assert.Equal(t, "fill:red", style)
}

func TestMinifyStylesShortensColorAndSortsDecls(t *testing.T) {
	doc := parseDoc(t, `<svg><style>.a{stroke:#ff0000;fill:#ffffff}</style></svg>`)
	runJobOnce(t, doc, NewMinifyStyles(DefaultMinifyStylesOptions()))
	styleElem := doc.Root().FirstChild().FirstChild()
	assert.Equal(t, ".a{fill:#fff;stroke:red}", styleText(styleElem))
}
