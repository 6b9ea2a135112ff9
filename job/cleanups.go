package job

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/path"
	"github.com/tdewolff/svgo/visit"
)

// RemoveCommentsOptions configures RemoveComments. Grounded on
// remove_comments.rs: a comment survives if it matches any preserve
// pattern, otherwise it is dropped outright.
type RemoveCommentsOptions struct {
	PreservePatterns []string
}

// RemoveComments deletes comment nodes, except those matching a preserve
// pattern (SVGO's convention is to always keep "legal" comments starting
// with "!"; this system generalises that to arbitrary regexps).
type RemoveComments struct {
	visit.BaseVisitor
	Options   RemoveCommentsOptions
	compiled  []*regexp.Regexp
}

func NewRemoveComments(opts RemoveCommentsOptions) (*RemoveComments, error) {
	j := &RemoveComments{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PrePost}, Options: opts}
	for _, pat := range opts.PreservePatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, err
		}
		j.compiled = append(j.compiled, re)
	}
	return j, nil
}

func (j *RemoveComments) Name() string          { return "removeComments" }
func (j *RemoveComments) Visitor() visit.Visitor { return j }

func (j *RemoveComments) VisitComment(c dom.Node) (visit.Action, error) {
	text := c.TextData()
	for _, re := range j.compiled {
		if re.MatchString(text) {
			return visit.ContinueAction(), nil
		}
	}
	return visit.RemoveSelfAction(), nil
}

// RemoveMetadata deletes every <metadata> element outright; its contents
// are never rendered and carry no optimisation-relevant information.
type RemoveMetadata struct {
	visit.BaseVisitor
}

func NewRemoveMetadata() *RemoveMetadata {
	return &RemoveMetadata{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *RemoveMetadata) Name() string          { return "removeMetadata" }
func (j *RemoveMetadata) Visitor() visit.Visitor { return j }

func (j *RemoveMetadata) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() == "metadata" {
		return visit.RemoveSelfAction(), nil
	}
	return visit.ContinueAction(), nil
}

// RemoveDoctype deletes the DOCTYPE declaration, if present.
type RemoveDoctype struct {
	visit.BaseVisitor
}

func NewRemoveDoctype() *RemoveDoctype {
	return &RemoveDoctype{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *RemoveDoctype) Name() string          { return "removeDoctype" }
func (j *RemoveDoctype) Visitor() visit.Visitor { return j }

func (j *RemoveDoctype) VisitProcessingInstruction(p dom.Node) (visit.Action, error) {
	return visit.ContinueAction(), nil
}

func (j *RemoveDoctype) StartDocument(doc *dom.Document) error {
	for n := doc.Root().FirstChild(); n.Valid(); {
		next := n.NextSibling()
		if n.Kind() == dom.KindDocType {
			n.Remove()
		}
		n = next
	}
	return nil
}

// RemoveXMLProcInst deletes the leading <?xml ...?> declaration.
type RemoveXMLProcInst struct {
	visit.BaseVisitor
}

func NewRemoveXMLProcInst() *RemoveXMLProcInst {
	return &RemoveXMLProcInst{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *RemoveXMLProcInst) Name() string          { return "removeXMLProcInst" }
func (j *RemoveXMLProcInst) Visitor() visit.Visitor { return j }

func (j *RemoveXMLProcInst) VisitProcessingInstruction(p dom.Node) (visit.Action, error) {
	if strings.EqualFold(p.ProcInstTarget(), "xml") {
		return visit.RemoveSelfAction(), nil
	}
	return visit.ContinueAction(), nil
}

// RemoveEditorsNSDataOptions lists the namespace URIs whose elements and
// attributes are editor scratch data (Inkscape, Sodipodi, Adobe Illustrator
// layers, ...) and safe to drop outright.
type RemoveEditorsNSDataOptions struct {
	AdditionalNamespaces []string
}

var editorNamespaces = map[string]bool{
	"http://www.inkscape.org/namespaces/inkscape": true,
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.0.dtd": true,
	"http://ns.adobe.com/AdobeIllustrator/10.0/":           true,
	"http://ns.adobe.com/Graphs/1.0/":                      true,
	"http://ns.adobe.com/AdobeSVGViewerExtensions/3.0/":    true,
	"http://ns.adobe.com/Variables/1.0/":                   true,
	"http://ns.adobe.com/SaveForWeb/1.0/":                  true,
	"http://ns.adobe.com/Extensibility/1.0/":               true,
	"http://ns.adobe.com/Flows/1.0/":                       true,
	"http://ns.adobe.com/ImageReplacement/1.0/":            true,
	"http://ns.adobe.com/GenericCustomNamespace/1.0/":      true,
	"http://ns.adobe.com/XPath/1.0/":                       true,
	"http://schemas.microsoft.com/visio/2003/SVGExtensions/": true,
	"http://taptrix.com/vectorillustrator/svg_extensions":  true,
	"http://www.figma.com/figma/ns":                        true,
	"http://purl.org/dc/elements/1.1/":                      true,
	"http://creativecommons.org/ns#":                        true,
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#":           true,
	"http://www.serif.com/":                                 true,
	"http://www.vector.evaxdesign.sk":                        true,
}

// RemoveEditorsNSData deletes elements and attributes bound to a known
// editor namespace, and the xmlns: declarations that bind it, anywhere in
// the tree.
type RemoveEditorsNSData struct {
	visit.BaseVisitor
	Options RemoveEditorsNSDataOptions
	extra   map[string]bool
}

func NewRemoveEditorsNSData(opts RemoveEditorsNSDataOptions) *RemoveEditorsNSData {
	extra := map[string]bool{}
	for _, ns := range opts.AdditionalNamespaces {
		extra[ns] = true
	}
	return &RemoveEditorsNSData{
		BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren).With(visit.CapAttributes).With(visit.CapName), Ord: visit.PreOnly},
		Options:     opts,
		extra:       extra,
	}
}

func (j *RemoveEditorsNSData) Name() string          { return "removeEditorsNSData" }
func (j *RemoveEditorsNSData) Visitor() visit.Visitor { return j }

func (j *RemoveEditorsNSData) isEditorNS(uri string) bool {
	return editorNamespaces[uri] || j.extra[uri]
}

func (j *RemoveEditorsNSData) EnterElement(e dom.Node) (visit.Action, error) {
	if e.Prefix() != "" && j.isEditorNS(e.NamespaceURI()) {
		return visit.RemoveSelfAction(), nil
	}
	for _, attr := range e.Attrs() {
		if attr.Prefix != "" {
			if uri := e.LookupNamespaceURI(attr.Prefix); j.isEditorNS(uri) {
				e.RemoveAttr(attr.Name())
			}
		}
	}
	for prefix, uri := range e.NamespaceDecls() {
		if j.isEditorNS(uri) {
			e.RemoveNamespaceDecl(prefix)
		}
	}
	return visit.ContinueAction(), nil
}

// RemoveEmptyContainers removes container elements (§dom.ContainerTags)
// that, after children have already been optimised by earlier jobs, have
// no children left and no id (an id-bearing empty group may still be a
// valid target of a <use> reference, so it is kept). Uses exit_element so
// that emptiness created by this same pass, bottom-up, is also caught.
type RemoveEmptyContainers struct {
	visit.BaseVisitor
}

func NewRemoveEmptyContainers() *RemoveEmptyContainers {
	return &RemoveEmptyContainers{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PostOnly}}
}

func (j *RemoveEmptyContainers) Name() string          { return "removeEmptyContainers" }
func (j *RemoveEmptyContainers) Visitor() visit.Visitor { return j }

func (j *RemoveEmptyContainers) ExitElement(e dom.Node) (visit.Action, error) {
	if !dom.ContainerTags[e.LocalName()] {
		return visit.ContinueAction(), nil
	}
	if e.LocalName() == "svg" {
		return visit.ContinueAction(), nil
	}
	if e.ChildCount() != 0 {
		return visit.ContinueAction(), nil
	}
	if _, ok := e.Attr("id"); ok {
		return visit.ContinueAction(), nil
	}
	return visit.RemoveSelfAction(), nil
}

// RemoveEmptyText removes text nodes that are entirely whitespace or
// zero-length, since SVG has no significant inter-element text.
type RemoveEmptyText struct {
	visit.BaseVisitor
}

func NewRemoveEmptyText() *RemoveEmptyText {
	return &RemoveEmptyText{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *RemoveEmptyText) Name() string          { return "removeEmptyText" }
func (j *RemoveEmptyText) Visitor() visit.Visitor { return j }

func (j *RemoveEmptyText) VisitText(t dom.Node) (visit.Action, error) {
	if strings.TrimSpace(t.TextData()) == "" {
		return visit.RemoveSelfAction(), nil
	}
	return visit.ContinueAction(), nil
}

// RemoveHiddenElemsOptions toggles each individual hiding heuristic.
type RemoveHiddenElemsOptions struct {
	DisplayNone         bool
	VisibilityHidden    bool
	ZeroSizeShapes      bool
	ZeroOpacity         bool
	PathEmptyD          bool
	PolylineEmptyPoints bool
	PolygonEmptyPoints  bool
}

func DefaultRemoveHiddenElemsOptions() RemoveHiddenElemsOptions {
	return RemoveHiddenElemsOptions{
		DisplayNone:         true,
		VisibilityHidden:    true,
		ZeroSizeShapes:      true,
		ZeroOpacity:         true,
		PathEmptyD:          true,
		PolylineEmptyPoints: true,
		PolygonEmptyPoints:  true,
	}
}

var drawablePrimitives = map[string]bool{
	"rect": true, "circle": true, "ellipse": true, "image": true, "pattern": true,
}

// styleRule is one compiled selector/declaration pair lifted from a
// document's <style> blocks, kept only for the lifetime of one pass.
type styleRule struct {
	sel   *dom.Selector
	decls map[string]string
}

// RemoveHiddenElems removes elements that can never render: display:none,
// visibility:hidden, zero opacity, or zero size on a primitive that
// requires positive dimensions to paint. Only the element's own computed
// style is checked; an element with visibility:hidden is removed even when
// a descendant sets visibility back to visible.
type RemoveHiddenElems struct {
	visit.BaseVisitor
	Options RemoveHiddenElemsOptions
	rules   []styleRule
}

func NewRemoveHiddenElems(opts RemoveHiddenElemsOptions) *RemoveHiddenElems {
	return &RemoveHiddenElems{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}, Options: opts}
}

func (j *RemoveHiddenElems) Name() string          { return "removeHiddenElems" }
func (j *RemoveHiddenElems) Visitor() visit.Visitor { return j }

// StartDocument compiles every <style> block's rules once per pass, so
// EnterElement can resolve display/visibility/opacity through the same
// stylesheet cascade inlineStyles and minifyStyles already see, instead of
// only presentation attributes and inline style=.
func (j *RemoveHiddenElems) StartDocument(doc *dom.Document) error {
	j.rules = nil
	var styleNodes []dom.Node
	walkAll(doc.Root(), func(n dom.Node) {
		if n.Kind() == dom.KindElement && n.LocalName() == "style" {
			styleNodes = append(styleNodes, n)
		}
	})
	for _, sn := range styleNodes {
		for _, rule := range splitCSSRules(styleText(sn)) {
			sel, err := dom.CompileSelector(rule.selector)
			if err != nil {
				continue
			}
			j.rules = append(j.rules, styleRule{sel: sel, decls: dom.ParseDeclarations(rule.decls)})
		}
	}
	return nil
}

// matchStylesheet is the ComputedStyle match callback: it composes, in
// rule order, the declarations of every compiled stylesheet rule matching
// n, the cascade source original_source's is_hidden_style calls
// computed_styles for.
func (j *RemoveHiddenElems) matchStylesheet(n dom.Node) map[string]string {
	if len(j.rules) == 0 {
		return nil
	}
	out := map[string]string{}
	for _, r := range j.rules {
		if n.Matches(r.sel) {
			for k, v := range r.decls {
				out[k] = v
			}
		}
	}
	return out
}

func (j *RemoveHiddenElems) EnterElement(e dom.Node) (visit.Action, error) {
	if dom.NonRenderingTags[e.LocalName()] {
		return visit.SkipChildrenAction(), nil
	}
	style := e.ComputedStyle(j.matchStylesheet)
	if j.Options.DisplayNone && style["display"] == "none" {
		return visit.RemoveSelfAction(), nil
	}
	if j.Options.VisibilityHidden && style["visibility"] == "hidden" {
		return visit.RemoveSelfAction(), nil
	}
	if j.Options.ZeroOpacity && isZero(style["opacity"]) {
		return visit.RemoveSelfAction(), nil
	}
	if j.Options.ZeroSizeShapes && j.isZeroSize(e) {
		return visit.RemoveSelfAction(), nil
	}
	if j.isHiddenPath(e) || j.isHiddenPoly(e) {
		return visit.RemoveSelfAction(), nil
	}
	return visit.ContinueAction(), nil
}

// isZeroSize reports whether e is a drawable primitive whose size
// attributes make it impossible to paint: zero width/height for
// rect/image/pattern, zero "r" for circle, zero "rx"/"ry" for ellipse.
func (j *RemoveHiddenElems) isZeroSize(e dom.Node) bool {
	if !drawablePrimitives[e.LocalName()] {
		return false
	}
	switch e.LocalName() {
	case "circle":
		r, ok := e.Attr("r")
		return ok && isZero(r)
	case "ellipse":
		rx, hasRx := e.Attr("rx")
		ry, hasRy := e.Attr("ry")
		return (hasRx && isZero(rx)) || (hasRy && isZero(ry))
	default:
		w, hasW := e.Attr("width")
		h, hasH := e.Attr("height")
		return (hasW && isZero(w)) || (hasH && isZero(h))
	}
}

// isHiddenPath reports whether e is a <path> with no chance of painting
// anything: a missing, unparseable, or empty "d", or a single-command "d"
// with no marker to render at its lone vertex.
func (j *RemoveHiddenElems) isHiddenPath(e dom.Node) bool {
	if !j.Options.PathEmptyD || e.LocalName() != "path" {
		return false
	}
	d, ok := e.Attr("d")
	if !ok {
		return true
	}
	p, err := path.Parse(d)
	if err != nil {
		return true
	}
	if len(p) == 0 {
		return true
	}
	if len(p) == 1 {
		style := e.ComputedStyle(j.matchStylesheet)
		return style["marker-start"] == "" && style["marker-end"] == ""
	}
	return false
}

// isHiddenPoly reports whether e is a <polyline>/<polygon> with no "points"
// attribute at all (an absent attribute, not merely an empty one).
func (j *RemoveHiddenElems) isHiddenPoly(e dom.Node) bool {
	switch e.LocalName() {
	case "polyline":
		if !j.Options.PolylineEmptyPoints {
			return false
		}
	case "polygon":
		if !j.Options.PolygonEmptyPoints {
			return false
		}
	default:
		return false
	}
	_, ok := e.Attr("points")
	return !ok
}

func isZero(v string) bool {
	v = strings.TrimSpace(v)
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	return err == nil && f == 0
}

// RemoveEmptyAttrs removes attributes whose value is the empty string,
// except where emptiness is itself meaningful (§3 "absent vs. empty"): an
// explicitly empty `d` is left alone here and reasoned about by
// removeHiddenElems instead, which treats it the same as a missing `d`.
type RemoveEmptyAttrs struct {
	visit.BaseVisitor
}

func NewRemoveEmptyAttrs() *RemoveEmptyAttrs {
	return &RemoveEmptyAttrs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}}
}

func (j *RemoveEmptyAttrs) Name() string          { return "removeEmptyAttrs" }
func (j *RemoveEmptyAttrs) Visitor() visit.Visitor { return j }

func (j *RemoveEmptyAttrs) EnterElement(e dom.Node) (visit.Action, error) {
	for _, attr := range e.Attrs() {
		if attr.Name() == "d" {
			continue
		}
		if attr.Value == "" {
			e.RemoveAttr(attr.Name())
		}
	}
	return visit.ContinueAction(), nil
}

// RemoveUselessDefaultAttrsOptions switches the two sub-behaviours
// original_source keeps as separate plugins but this system folds into
// one job, per SPEC_FULL.md §4.4.
type RemoveUselessDefaultAttrsOptions struct {
	RemoveUselessDefault bool
	RemoveUnknown        bool
}

func DefaultRemoveUselessDefaultAttrsOptions() RemoveUselessDefaultAttrsOptions {
	return RemoveUselessDefaultAttrsOptions{RemoveUselessDefault: true, RemoveUnknown: false}
}

// RemoveUselessDefaultAttrs removes presentation attributes whose value
// equals the SVG-spec initial value and is not needed to override an
// inherited value (RemoveUselessDefault), and optionally attributes whose
// name this system does not recognise as a valid presentation or core
// attribute (RemoveUnknown).
type RemoveUselessDefaultAttrs struct {
	visit.BaseVisitor
	Options RemoveUselessDefaultAttrsOptions
}

func NewRemoveUselessDefaultAttrs(opts RemoveUselessDefaultAttrsOptions) *RemoveUselessDefaultAttrs {
	return &RemoveUselessDefaultAttrs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *RemoveUselessDefaultAttrs) Name() string          { return "removeUselessDefaultAttrs" }
func (j *RemoveUselessDefaultAttrs) Visitor() visit.Visitor { return j }

func (j *RemoveUselessDefaultAttrs) EnterElement(e dom.Node) (visit.Action, error) {
	if j.Options.RemoveUselessDefault {
		for attrName, defVal := range dom.DefaultPresentationValues {
			v, ok := e.Attr(attrName)
			if !ok || v != defVal {
				continue
			}
			overrides := false
			for p := e.Parent(); p.Valid() && p.Kind() == dom.KindElement; p = p.Parent() {
				if pv, ok := p.Attr(attrName); ok {
					overrides = pv != defVal
					break
				}
			}
			if overrides {
				continue
			}
			e.RemoveAttr(attrName)
		}
	}
	if j.Options.RemoveUnknown {
		for _, attr := range e.Attrs() {
			if attr.Prefix != "" {
				continue
			}
			if dom.PresentationAttrs[attr.Local] || coreAttrs[attr.Local] {
				continue
			}
			e.RemoveAttr(attr.Name())
		}
	}
	return visit.ContinueAction(), nil
}

var coreAttrs = map[string]bool{
	"id": true, "class": true, "style": true, "d": true, "x": true, "y": true,
	"x1": true, "y1": true, "x2": true, "y2": true, "cx": true, "cy": true,
	"r": true, "rx": true, "ry": true, "width": true, "height": true,
	"points": true, "transform": true, "viewBox": true, "xmlns": true,
	"preserveAspectRatio": true, "href": true, "xlink:href": true,
	"gradientUnits": true, "gradientTransform": true, "patternUnits": true,
	"patternTransform": true, "offset": true, "version": true,
	"xml:space": true, "type": true,
}
