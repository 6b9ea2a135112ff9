package dom

// Tag/attribute classification tables. Trimmed from the full generated
// perfect-hash tables a streaming minifier needs (tdewolff/minify's
// svg/hash.go, svg/table.go) down to the lookups the document model and job
// library actually need: which attributes are presentation attributes
// (participate in the CSS cascade) and which elements are containers.

// ContainerTags are elements whose only rendering effect comes from their
// children or from attributes that can be pushed onto a single child
// (collapseGroups) or onto each child (moveGroupAttrsToElems).
var ContainerTags = map[string]bool{
	"a": true, "defs": true, "g": true, "marker": true, "mask": true,
	"missing-glyph": true, "pattern": true, "svg": true, "switch": true,
	"symbol": true, "clipPath": true,
}

// NonRenderingTags never produce visible output by themselves; several
// cleanup jobs treat their subtrees specially (e.g. removeHiddenElems does
// not touch them, removeUselessDefs only walks <defs>).
var NonRenderingTags = map[string]bool{
	"defs": true, "clipPath": true, "mask": true, "marker": true,
	"pattern": true, "symbol": true, "linearGradient": true,
	"radialGradient": true, "filter": true, "metadata": true, "title": true,
	"desc": true,
}

// ShapeTags are basic shapes convertShapeToPath knows how to turn into an
// equivalent <path>.
var ShapeTags = map[string]bool{
	"rect": true, "circle": true, "ellipse": true, "line": true,
	"polyline": true, "polygon": true,
}

// ColorAttrs are presentation attributes whose value is a <paint> (a colour,
// currentColor, a url() paint server reference, or none/context-fill/…).
var ColorAttrs = map[string]bool{
	"fill": true, "stroke": true, "stop-color": true,
	"flood-color": true, "lighting-color": true,
}

// PresentationAttrs are the presentation attributes the style cascade
// composes, per SVG 1.1 Appendix N. This list is intentionally the subset
// exercised by the job library rather than the full appendix.
var PresentationAttrs = map[string]bool{
	"alignment-baseline": true, "baseline-shift": true, "clip": true,
	"clip-path": true, "clip-rule": true, "color": true,
	"color-interpolation": true, "color-interpolation-filters": true,
	"color-rendering": true, "cursor": true, "direction": true,
	"display": true, "dominant-baseline": true, "fill": true,
	"fill-opacity": true, "fill-rule": true, "filter": true,
	"flood-color": true, "flood-opacity": true, "font": true,
	"font-family": true, "font-size": true, "font-size-adjust": true,
	"font-stretch": true, "font-style": true, "font-variant": true,
	"font-weight": true, "glyph-orientation-horizontal": true,
	"glyph-orientation-vertical": true, "image-rendering": true,
	"letter-spacing": true, "lighting-color": true, "marker-end": true,
	"marker-mid": true, "marker-start": true, "mask": true, "opacity": true,
	"overflow": true, "paint-order": true, "pointer-events": true,
	"shape-rendering": true, "stop-color": true, "stop-opacity": true,
	"stroke": true, "stroke-dasharray": true, "stroke-dashoffset": true,
	"stroke-linecap": true, "stroke-linejoin": true,
	"stroke-miterlimit": true, "stroke-opacity": true, "stroke-width": true,
	"text-anchor": true, "text-decoration": true, "text-overflow": true,
	"text-rendering": true, "transform": true, "unicode-bidi": true,
	"vector-effect": true, "visibility": true, "word-spacing": true,
	"writing-mode": true,
}

// DefaultPresentationValues holds the initial (inherited or not) value of a
// presentation property per the SVG/CSS specs. Used by
// removeUselessDefaultAttrs to decide whether a presentation attribute is
// redundant.
var DefaultPresentationValues = map[string]string{
	"fill":                "black",
	"fill-opacity":        "1",
	"fill-rule":           "nonzero",
	"stroke":              "none",
	"stroke-width":        "1",
	"stroke-opacity":      "1",
	"stroke-linecap":      "butt",
	"stroke-linejoin":     "miter",
	"stroke-miterlimit":   "4",
	"stroke-dasharray":    "none",
	"stroke-dashoffset":   "0",
	"opacity":             "1",
	"visibility":          "visible",
	"display":             "inline",
	"clip-rule":           "nonzero",
	"color-interpolation": "sRGB",
	"font-style":          "normal",
	"font-weight":         "normal",
	"text-anchor":         "start",
	"color":               "black",
}

// IDRefAttrs are attributes whose value is (or contains, inside a url()
// reference) an element ID that must be preserved by cleanupIDs unless the
// referencing attribute is itself removed first.
var IDRefAttrs = []string{
	"fill", "stroke", "filter", "clip-path", "mask", "marker-start",
	"marker-mid", "marker-end", "href", "xlink:href",
}
