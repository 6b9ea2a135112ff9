package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupNumericValuesRoundsAndStripsPx(t *testing.T) {
	doc := parseDoc(t, `<svg><rect width="10.500px" height="0.0px"/></svg>`)
	runJobOnce(t, doc, NewCleanupNumericValues(DefaultCleanupNumericValuesOptions()))
	rect := doc.Root().FirstChild().FirstChild()
	width, _ := rect.Attr("width")
	height, _ := rect.Attr("height")
	assert.Equal(t, "10.5", width)
	assert.Equal(t, "0", height)
}

func TestCleanupEnableBackgroundRemovesAttr(t *testing.T) {
	doc := parseDoc(t, `<svg enable-background="new 0 0 10 10"><g/></svg>`)
	runJobOnce(t, doc, NewCleanupEnableBackground())
	_, has := doc.Root().FirstChild().Attr("enable-background")
	assert.False(t, has)
}

func TestCleanupListOfValuesRoundsViewBox(t *testing.T) {
	doc := parseDoc(t, `<svg viewBox="0 0 100.0000 100"><g/></svg>`)
	runJobOnce(t, doc, NewCleanupListOfValues(DefaultCleanupListOfValuesOptions()))
	vb, _ := doc.Root().FirstChild().Attr("viewBox")
	assert.Equal(t, "0 0 100 100", vb)
}

func TestReusePathsExtractsDuplicateGeometry(t *testing.T) {
	doc := parseDoc(t, `<svg><path d="M0 0L1 1" fill="red"/><path d="M0 0L1 1" fill="blue"/></svg>`)
	runJobOnce(t, doc, NewReusePaths(DefaultReusePathsOptions()))
	svg := doc.Root().FirstChild()
	defs := svg.FirstChild()
	require.Equal(t, "defs", defs.LocalName())
	shared := defs.FirstChild()
	require.Equal(t, "path", shared.LocalName())
	sharedID, ok := shared.Attr("id")
	require.True(t, ok)
	d, _ := shared.Attr("d")
	assert.Equal(t, "M0 0L1 1", d)

	use1 := defs.NextSibling()
	use2 := use1.NextSibling()
	assert.Equal(t, "use", use1.LocalName())
	assert.Equal(t, "use", use2.LocalName())
	href1, _ := use1.Attr("href")
	href2, _ := use2.Attr("href")
	assert.Equal(t, "#"+sharedID, href1)
	assert.Equal(t, "#"+sharedID, href2)
	fill1, _ := use1.Attr("fill")
	fill2, _ := use2.Attr("fill")
	assert.Equal(t, "red", fill1)
	assert.Equal(t, "blue", fill2)
}

func TestReusePathsLeavesSingleOccurrenceAlone(t *testing.T) {
	doc := parseDoc(t, `<svg><path d="M0 0L1 1"/></svg>`)
	runJobOnce(t, doc, NewReusePaths(DefaultReusePathsOptions()))
	svg := doc.Root().FirstChild()
	assert.Equal(t, "path", svg.FirstChild().LocalName())
	assert.False(t, svg.FirstChild().NextSibling().Valid())
}

func TestRemoveAttrsDropsMatchingAttrOnly(t *testing.T) {
	doc := parseDoc(t, `<svg viewBox="0 0 1 1"><path fill="red" d=""/></svg>`)
	j, err := NewRemoveAttrs(RemoveAttrsOptions{Attrs: []string{"path:fill"}})
	require.NoError(t, err)
	runJobOnce(t, doc, j)
	svg := doc.Root().FirstChild()
	vb, ok := svg.Attr("viewBox")
	assert.True(t, ok)
	assert.Equal(t, "0 0 1 1", vb)
	path := svg.FirstChild()
	_, hasFill := path.Attr("fill")
	assert.False(t, hasFill)
	d, hasD := path.Attr("d")
	assert.True(t, hasD)
	assert.Equal(t, "", d)
}

func TestRemoveAttrsLeavesNonMatchingElementAlone(t *testing.T) {
	doc := parseDoc(t, `<svg><rect fill="red"/></svg>`)
	j, err := NewRemoveAttrs(RemoveAttrsOptions{Attrs: []string{"path:fill"}})
	require.NoError(t, err)
	runJobOnce(t, doc, j)
	rect := doc.Root().FirstChild().FirstChild()
	_, hasFill := rect.Attr("fill")
	assert.True(t, hasFill)
}

func TestRemoveDimensionsDerivesViewBoxThenDrops(t *testing.T) {
	doc := parseDoc(t, `<svg width="100px" height="50px"><g/></svg>`)
	runJobOnce(t, doc, NewRemoveDimensions())
	svg := doc.Root().FirstChild()
	vb, ok := svg.Attr("viewBox")
	assert.True(t, ok)
	assert.Equal(t, "0 0 100 50", vb)
	_, hasW := svg.Attr("width")
	_, hasH := svg.Attr("height")
	assert.False(t, hasW)
	assert.False(t, hasH)
}

func TestRemoveViewBoxDropsWhenDimensionsPresent(t *testing.T) {
	doc := parseDoc(t, `<svg width="100" height="50" viewBox="0 0 100 50"><g/></svg>`)
	runJobOnce(t, doc, NewRemoveViewBox())
	_, hasVB := doc.Root().FirstChild().Attr("viewBox")
	assert.False(t, hasVB)
}

func TestRemoveOffCanvasPathDropsPathOutsideViewBox(t *testing.T) {
	doc := parseDoc(t, `<svg viewBox="0 0 10 10"><path d="M20 20L30 30"/><path d="M5 5L6 6"/></svg>`)
	runJobOnce(t, doc, NewRemoveOffCanvasPath())
	svg := doc.Root().FirstChild()
	assert.Equal(t, 1, svg.ChildCount())
	remaining, _ := svg.FirstChild().Attr("d")
	assert.Equal(t, "M5 5L6 6", remaining)
}

func TestRemoveRasterImagesDropsRasterHref(t *testing.T) {
	doc := parseDoc(t, `<svg><image href="foo.png"/><image href="bar.svg"/></svg>`)
	runJobOnce(t, doc, NewRemoveRasterImages())
	svg := doc.Root().FirstChild()
	assert.Equal(t, 1, svg.ChildCount())
	href, _ := svg.FirstChild().Attr("href")
	assert.Equal(t, "bar.svg", href)
}
