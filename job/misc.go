package job

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/style"
	"github.com/tdewolff/svgo/visit"
)

// CleanupNumericValuesOptions bounds the precision cleanupNumericValues
// rounds plain (non-path) numeric attributes to, and whether it strips a
// default "px" unit.
type CleanupNumericValuesOptions struct {
	FloatPrecision int
	RemoveDefaultPx bool
}

func DefaultCleanupNumericValuesOptions() CleanupNumericValuesOptions {
	return CleanupNumericValuesOptions{FloatPrecision: 3, RemoveDefaultPx: true}
}

var numericAttrs = map[string]bool{
	"x": true, "y": true, "x1": true, "y1": true, "x2": true, "y2": true,
	"cx": true, "cy": true, "r": true, "rx": true, "ry": true,
	"width": true, "height": true, "stroke-width": true, "stroke-dashoffset": true,
	"font-size": true, "opacity": true, "fill-opacity": true, "stroke-opacity": true,
}

var dimensionPattern = regexp.MustCompile(`^\s*(-?[\d.]+(?:[eE][+-]?\d+)?)(px|pt|em|rem|%|in|cm|mm|pc|ex)?\s*$`)

// CleanupNumericValues rounds plain numeric attribute values (not path
// data, which convertPathData already owns) to FloatPrecision digits,
// strips a redundant "px" unit, and shortens the resulting literal through
// style.ShortenNumber/ShortenDimension.
type CleanupNumericValues struct {
	visit.BaseVisitor
	Options CleanupNumericValuesOptions
}

func NewCleanupNumericValues(opts CleanupNumericValuesOptions) *CleanupNumericValues {
	return &CleanupNumericValues{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *CleanupNumericValues) Name() string          { return "cleanupNumericValues" }
func (j *CleanupNumericValues) Visitor() visit.Visitor { return j }

func (j *CleanupNumericValues) EnterElement(e dom.Node) (visit.Action, error) {
	for _, attr := range e.Attrs() {
		if attr.Prefix != "" || !numericAttrs[attr.Local] {
			continue
		}
		m := dimensionPattern.FindStringSubmatch(attr.Value)
		if m == nil {
			continue
		}
		num, unit := m[1], m[2]
		if unit == "px" && j.Options.RemoveDefaultPx {
			unit = ""
		}
		f, err := strconv.ParseFloat(num, 64)
		if err == nil && j.Options.FloatPrecision >= 0 {
			pow := math.Pow(10, float64(j.Options.FloatPrecision))
			f = math.Round(f*pow) / pow
			num = strconv.FormatFloat(f, 'f', -1, 64)
		}
		e.SetAttr(attr.Name(), style.ShortenDimension(num, unit))
	}
	return visit.ContinueAction(), nil
}

// CleanupEnableBackground removes the enable-background attribute and
// property, a deprecated filter-region hint from SVG's abandoned
// accumulate-background feature that no modern renderer consumes.
type CleanupEnableBackground struct {
	visit.BaseVisitor
}

func NewCleanupEnableBackground() *CleanupEnableBackground {
	return &CleanupEnableBackground{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}}
}

func (j *CleanupEnableBackground) Name() string          { return "cleanupEnableBackground" }
func (j *CleanupEnableBackground) Visitor() visit.Visitor { return j }

func (j *CleanupEnableBackground) EnterElement(e dom.Node) (visit.Action, error) {
	e.RemoveAttr("enable-background")
	return visit.ContinueAction(), nil
}

// CleanupListOfValuesOptions configures cleanupListOfValues, mirroring
// cleanupNumericValues but for attributes whose value is a space/comma
// separated list of numbers (viewBox, points, stroke-dasharray). Reference
// lists such as clip-path/mask/filter url() values are not touched.
type CleanupListOfValuesOptions struct {
	FloatPrecision int
}

func DefaultCleanupListOfValuesOptions() CleanupListOfValuesOptions {
	return CleanupListOfValuesOptions{FloatPrecision: 3}
}

var numericListAttrs = map[string]bool{
	"viewBox": true, "points": true, "stroke-dasharray": true,
}

// CleanupListOfValues rounds each number inside a numeric-list attribute
// value to FloatPrecision digits and shortens it through
// style.ShortenNumber.
type CleanupListOfValues struct {
	visit.BaseVisitor
	Options CleanupListOfValuesOptions
}

func NewCleanupListOfValues(opts CleanupListOfValuesOptions) *CleanupListOfValues {
	return &CleanupListOfValues{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *CleanupListOfValues) Name() string          { return "cleanupListOfValues" }
func (j *CleanupListOfValues) Visitor() visit.Visitor { return j }

func (j *CleanupListOfValues) EnterElement(e dom.Node) (visit.Action, error) {
	for _, attr := range e.Attrs() {
		if !numericListAttrs[attr.Local] {
			continue
		}
		fields := strings.FieldsFunc(attr.Value, func(r rune) bool { return r == ',' || r == ' ' })
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				continue
			}
			pow := math.Pow(10, float64(j.Options.FloatPrecision))
			v = math.Round(v*pow) / pow
			fields[i] = style.ShortenNumber(strconv.FormatFloat(v, 'f', -1, 64))
		}
		e.SetAttr(attr.Name(), strings.Join(fields, " "))
	}
	return visit.ContinueAction(), nil
}

// ReusePathsOptions gates the minimum number of duplicate occurrences
// before extraction is worth the <use> indirection's own overhead.
type ReusePathsOptions struct {
	MinOccurrences int
}

func DefaultReusePathsOptions() ReusePathsOptions {
	return ReusePathsOptions{MinOccurrences: 2}
}

// ReusePaths finds <path> elements sharing identical `d` (and no other
// distinguishing geometry attribute) across the document, moves one copy
// into a <defs><path id="..."/></defs>, and replaces every occurrence,
// including the original, with a <use href="#..."/> carrying that path's
// original non-geometry attributes.
type ReusePaths struct {
	visit.BaseVisitor
	Options ReusePathsOptions
}

func NewReusePaths(opts ReusePathsOptions) *ReusePaths {
	return &ReusePaths{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren).With(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *ReusePaths) Name() string          { return "reusePaths" }
func (j *ReusePaths) Visitor() visit.Visitor { return j }

func (j *ReusePaths) StartDocument(doc *dom.Document) error {
	byD := map[string][]dom.Node{}
	walkAll(doc.Root(), func(n dom.Node) {
		if n.Kind() == dom.KindElement && n.LocalName() == "path" {
			if d, ok := n.Attr("d"); ok && d != "" {
				byD[d] = append(byD[d], n)
			}
		}
	})

	svg := findSVGRoot(doc.Root())
	if !svg.Valid() {
		return nil
	}
	var defs dom.Node
	n := 0
	for d, nodes := range byD {
		if len(nodes) < j.Options.MinOccurrences {
			continue
		}
		if !defs.Valid() {
			defs = findOrCreateDefs(doc, svg)
		}
		id := generatedPathID(n)
		n++
		shared := doc.NewElement("path")
		shared.SetAttr("id", id)
		shared.SetAttr("d", d)
		defs.AppendChild(shared)

		for _, pathNode := range nodes {
			use := doc.NewElement("use")
			use.SetAttr("href", "#"+id)
			for _, attr := range pathNode.Attrs() {
				if attr.Name() != "d" {
					use.SetAttr(attr.Name(), attr.Value)
				}
			}
			pathNode.ReplaceWith([]dom.Node{use})
		}
	}
	return nil
}

func generatedPathID(n int) string {
	return "reuse-" + strconv.Itoa(n)
}

func findSVGRoot(doc dom.Node) dom.Node {
	for c := doc.FirstChild(); c.Valid(); c = c.NextSibling() {
		if c.Kind() == dom.KindElement && c.LocalName() == "svg" {
			return c
		}
	}
	return dom.Node{}
}

func findOrCreateDefs(doc *dom.Document, svg dom.Node) dom.Node {
	for c := svg.FirstChild(); c.Valid(); c = c.NextSibling() {
		if c.Kind() == dom.KindElement && c.LocalName() == "defs" {
			return c
		}
	}
	defs := doc.NewElement("defs")
	svg.InsertAt(defs, 0)
	return defs
}

// RemoveAttrsOptions lists patterns of the form "elem:attr" or
// "elem:attr:value" (plain or glob match, following original_source's own
// syntax), each removing the matching attribute wherever found.
type RemoveAttrsOptions struct {
	Attrs []string
}

// RemoveAttrs removes attributes matching one of its configured patterns,
// always disabled by default (S3: `{ removeAttrs: { attrs: ["path:fill"] } }`).
type RemoveAttrs struct {
	visit.BaseVisitor
	Options  RemoveAttrsOptions
	patterns []removeAttrPattern
}

type removeAttrPattern struct {
	elem, attr, value *regexp.Regexp
}

func NewRemoveAttrs(opts RemoveAttrsOptions) (*RemoveAttrs, error) {
	j := &RemoveAttrs{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
	for _, spec := range opts.Attrs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) < 2 {
			continue
		}
		p := removeAttrPattern{}
		var err error
		p.elem, err = globRegex(parts[0])
		if err != nil {
			return nil, err
		}
		p.attr, err = globRegex(parts[1])
		if err != nil {
			return nil, err
		}
		if len(parts) == 3 {
			p.value, err = globRegex(parts[2])
			if err != nil {
				return nil, err
			}
		}
		j.patterns = append(j.patterns, p)
	}
	return j, nil
}

func globRegex(pattern string) (*regexp.Regexp, error) {
	if pattern == "*" {
		return regexp.Compile(".*")
	}
	return regexp.Compile("^" + regexp.QuoteMeta(pattern) + "$")
}

func (j *RemoveAttrs) Name() string          { return "removeAttrs" }
func (j *RemoveAttrs) Visitor() visit.Visitor { return j }

func (j *RemoveAttrs) EnterElement(e dom.Node) (visit.Action, error) {
	for _, p := range j.patterns {
		if !p.elem.MatchString(e.LocalName()) {
			continue
		}
		for _, attr := range e.Attrs() {
			if !p.attr.MatchString(attr.Name()) {
				continue
			}
			if p.value != nil && !p.value.MatchString(attr.Value) {
				continue
			}
			e.RemoveAttr(attr.Name())
		}
	}
	return visit.ContinueAction(), nil
}

// RemoveDimensions drops width/height from the root <svg> in favour of its
// viewBox, adding a viewBox derived from width/height first if one is
// missing. Disabled by default; mutually exclusive with removeViewBox.
type RemoveDimensions struct {
	visit.BaseVisitor
}

func NewRemoveDimensions() *RemoveDimensions {
	return &RemoveDimensions{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}}
}

func (j *RemoveDimensions) Name() string          { return "removeDimensions" }
func (j *RemoveDimensions) Visitor() visit.Visitor { return j }

func (j *RemoveDimensions) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "svg" || e.Parent().Kind() != dom.KindDocument {
		return visit.ContinueAction(), nil
	}
	w, hasW := e.Attr("width")
	h, hasH := e.Attr("height")
	if _, hasVB := e.Attr("viewBox"); !hasVB && hasW && hasH {
		e.SetAttr("viewBox", "0 0 "+strings.TrimSuffix(w, "px")+" "+strings.TrimSuffix(h, "px"))
	}
	e.RemoveAttr("width")
	e.RemoveAttr("height")
	return visit.SkipChildrenAction(), nil
}

// RemoveViewBox drops the root <svg>'s viewBox when width and height are
// both present (they already fix the same intrinsic size; viewBox only
// adds value once width/height are gone, which removeDimensions handles
// the other way). Disabled by default.
type RemoveViewBox struct {
	visit.BaseVisitor
}

func NewRemoveViewBox() *RemoveViewBox {
	return &RemoveViewBox{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}}
}

func (j *RemoveViewBox) Name() string          { return "removeViewBox" }
func (j *RemoveViewBox) Visitor() visit.Visitor { return j }

func (j *RemoveViewBox) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "svg" || e.Parent().Kind() != dom.KindDocument {
		return visit.ContinueAction(), nil
	}
	_, hasW := e.Attr("width")
	_, hasH := e.Attr("height")
	if hasW && hasH {
		e.RemoveAttr("viewBox")
	}
	return visit.SkipChildrenAction(), nil
}

// RemoveOffCanvasPath removes a <path> whose straight-line bounding box
// lies entirely outside the document's viewBox, since it can never paint
// anything visible. Conservative: only paths made of absolute M and L
// commands are checked; anything containing a relative command, H/V, a
// curve or an arc is left alone. Disabled by default
// (a malformed or dynamically-resized viewBox makes this unsafe in
// general).
type RemoveOffCanvasPath struct {
	visit.BaseVisitor
}

func NewRemoveOffCanvasPath() *RemoveOffCanvasPath {
	return &RemoveOffCanvasPath{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *RemoveOffCanvasPath) Name() string          { return "removeOffCanvasPath" }
func (j *RemoveOffCanvasPath) Visitor() visit.Visitor { return j }

func (j *RemoveOffCanvasPath) StartDocument(doc *dom.Document) error {
	svg := findSVGRoot(doc.Root())
	if !svg.Valid() {
		return nil
	}
	vb, ok := svg.Attr("viewBox")
	if !ok {
		return nil
	}
	fields := strings.Fields(vb)
	if len(fields) != 4 {
		return nil
	}
	var box [4]float64
	for i, f := range fields {
		box[i], _ = strconv.ParseFloat(f, 64)
	}
	var offCanvas []dom.Node
	walkAll(svg, func(n dom.Node) {
		if n.Kind() != dom.KindElement || n.LocalName() != "path" {
			return
		}
		d, ok := n.Attr("d")
		if !ok || strings.ContainsAny(d, "CcSsQqTtAaHhVvml") {
			return
		}
		minX, minY, maxX, maxY, ok2 := lineOnlyBounds(d)
		if !ok2 {
			return
		}
		if maxX < box[0] || minX > box[0]+box[2] || maxY < box[1] || minY > box[1]+box[3] {
			offCanvas = append(offCanvas, n)
		}
	})
	for _, n := range offCanvas {
		n.Remove()
	}
	return nil
}

func lineOnlyBounds(d string) (minX, minY, maxX, maxY float64, ok bool) {
	fields := strings.FieldsFunc(d, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t' || r == 'M' || r == 'L'
	})
	first := true
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if len(f) > 0 && (f[0] == 'M' || f[0] == 'L' || f[0] == 'm' || f[0] == 'l') {
			f = f[1:]
			if f == "" {
				continue
			}
		}
		x, err1 := strconv.ParseFloat(f, 64)
		if err1 != nil || i+1 >= len(fields) {
			continue
		}
		y, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err2 != nil {
			continue
		}
		i++
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
		} else {
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	return minX, minY, maxX, maxY, !first
}

// RemoveRasterImages removes every <image> element that references a
// raster format (png/jpeg/gif/webp/bmp, sniffed from a data: URI's MIME
// type or the href's file extension). Disabled by default: SVGO ships
// this as an opt-in for users who intentionally want vector-only output.
type RemoveRasterImages struct {
	visit.BaseVisitor
}

func NewRemoveRasterImages() *RemoveRasterImages {
	return &RemoveRasterImages{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapChildren), Ord: visit.PreOnly}}
}

func (j *RemoveRasterImages) Name() string          { return "removeRasterImages" }
func (j *RemoveRasterImages) Visitor() visit.Visitor { return j }

var rasterExtPattern = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp|bmp)(\?|#|$)`)
var rasterDataURIPattern = regexp.MustCompile(`(?i)^data:image/(png|jpe?g|gif|webp|bmp)`)

func (j *RemoveRasterImages) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "image" {
		return visit.ContinueAction(), nil
	}
	href := e.AttrOr("href", e.AttrOr("xlink:href", ""))
	if rasterExtPattern.MatchString(href) || rasterDataURIPattern.MatchString(href) {
		return visit.RemoveSelfAction(), nil
	}
	return visit.ContinueAction(), nil
}
