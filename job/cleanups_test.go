package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveCommentsDropsAll(t *testing.T) {
	doc := parseDoc(t, `<svg><!-- foo --><!-- bar --></svg>`)
	j, err := NewRemoveComments(RemoveCommentsOptions{})
	require.NoError(t, err)
	runJobOnce(t, doc, j)
	assert.Equal(t, `<svg/>`, serialized(doc))
}

func TestRemoveCommentsPreservesPattern(t *testing.T) {
	doc := parseDoc(t, `<svg><!-- foo --><!-- bar --></svg>`)
	j, err := NewRemoveComments(RemoveCommentsOptions{PreservePatterns: []string{`^\s+foo`}})
	require.NoError(t, err)
	runJobOnce(t, doc, j)
	assert.Equal(t, `<svg><!-- foo --></svg>`, serialized(doc))
}

func TestRemoveMetadataDropsElement(t *testing.T) {
	doc := parseDoc(t, `<svg><metadata>x</metadata><g/></svg>`)
	runJobOnce(t, doc, NewRemoveMetadata())
	assert.Equal(t, `<svg><g/></svg>`, serialized(doc))
}

func TestRemoveDoctypeDropsNode(t *testing.T) {
	doc := parseDoc(t, `<!DOCTYPE svg><svg/>`)
	runJobOnce(t, doc, NewRemoveDoctype())
	assert.Equal(t, `<svg/>`, serialized(doc))
}

func TestRemoveXMLProcInstDropsNode(t *testing.T) {
	doc := parseDoc(t, `<?xml version="1.0"?><svg/>`)
	runJobOnce(t, doc, NewRemoveXMLProcInst())
	assert.Equal(t, `<svg/>`, serialized(doc))
}

func TestRemoveEditorsNSDataDropsKnownNamespace(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"><g inkscape:label="x"/></svg>`)
	runJobOnce(t, doc, NewRemoveEditorsNSData(RemoveEditorsNSDataOptions{}))
	g := doc.Root().FirstChild().FirstChild()
	assert.False(t, g.HasAttr("inkscape:label"))
}

func TestRemoveEmptyContainersDropsEmptyGroup(t *testing.T) {
	doc := parseDoc(t, `<svg><g/><path d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewRemoveEmptyContainers())
	assert.Equal(t, `<svg><path d="M0 0"/></svg>`, serialized(doc))
}

func TestRemoveEmptyTextDropsWhitespaceOnlyText(t *testing.T) {
	doc := parseDoc(t, "<svg>\n  <g/>\n</svg>")
	runJobOnce(t, doc, NewRemoveEmptyText())
	assert.Equal(t, `<svg><g/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsDisplayNone(t *testing.T) {
	doc := parseDoc(t, `<svg><g display="none"><path d="M0 0"/></g><path d="M1 1 L2 2"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><path d="M1 1 L2 2"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsZeroSizeRect(t *testing.T) {
	doc := parseDoc(t, `<svg><rect width="0" height="10"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg/>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsZeroRadiusCircle(t *testing.T) {
	doc := parseDoc(t, `<svg><circle r="0"/><circle r="5"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><circle r="5"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsZeroRadiusEllipse(t *testing.T) {
	doc := parseDoc(t, `<svg><ellipse rx="0" ry="5"/><ellipse rx="3" ry="0"/><ellipse rx="3" ry="5"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><ellipse rx="3" ry="5"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsOpacityFromInlineStyle(t *testing.T) {
	doc := parseDoc(t, `<svg><path style="opacity:0" d="M0 0 L1 1"/><path d="M2 2 L3 3"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><path d="M2 2 L3 3"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsDisplayNoneFromStylesheet(t *testing.T) {
	doc := parseDoc(t, `<svg><style>.hidden{display:none}</style><path class="hidden" d="M0 0 L1 1"/><path d="M2 2 L3 3"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><style>.hidden{display:none}</style><path d="M2 2 L3 3"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsPathMissingD(t *testing.T) {
	doc := parseDoc(t, `<svg><path fill="red"/><path d="M0 0 L1 1"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><path d="M0 0 L1 1"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsPathWithEmptyD(t *testing.T) {
	doc := parseDoc(t, `<svg><path d=""/><path d="M0 0 L1 1"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><path d="M0 0 L1 1"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsPathWithUnparseableD(t *testing.T) {
	doc := parseDoc(t, `<svg><path d="notapath"/><path d="M0 0 L1 1"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><path d="M0 0 L1 1"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsKeepsSingleMoveToWithMarker(t *testing.T) {
	doc := parseDoc(t, `<svg><path d="M0 0" marker-start="url(#dot)"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><path d="M0 0" marker-start="url(#dot)"/></svg>`, serialized(doc))
}

func TestRemoveHiddenElemsDropsPolylineMissingPoints(t *testing.T) {
	doc := parseDoc(t, `<svg><polyline fill="red"/><polyline points="0,0 1,1"/></svg>`)
	runJobOnce(t, doc, NewRemoveHiddenElems(DefaultRemoveHiddenElemsOptions()))
	assert.Equal(t, `<svg><polyline points="0,0 1,1"/></svg>`, serialized(doc))
}

func TestRemoveEmptyAttrsDropsBlankValue(t *testing.T) {
	doc := parseDoc(t, `<svg><path d="" fill="red" stroke=""/></svg>`)
	runJobOnce(t, doc, NewRemoveEmptyAttrs())
	assert.Equal(t, `<svg><path d="" fill="red"/></svg>`, serialized(doc))
}

func TestRemoveUselessDefaultAttrsDropsMatchingDefault(t *testing.T) {
	doc := parseDoc(t, `<svg><path fill="black" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewRemoveUselessDefaultAttrs(DefaultRemoveUselessDefaultAttrsOptions()))
	assert.Equal(t, `<svg><path d="M0 0"/></svg>`, serialized(doc))
}

func TestRemoveUselessDefaultAttrsKeepsNonDefault(t *testing.T) {
	doc := parseDoc(t, `<svg><path fill="red" d="M0 0"/></svg>`)
	runJobOnce(t, doc, NewRemoveUselessDefaultAttrs(DefaultRemoveUselessDefaultAttrsOptions()))
	assert.Equal(t, `<svg><path fill="red" d="M0 0"/></svg>`, serialized(doc))
}
