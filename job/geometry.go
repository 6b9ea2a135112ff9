package job

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/svgo/dom"
	"github.com/tdewolff/svgo/path"
	"github.com/tdewolff/svgo/style"
	"github.com/tdewolff/svgo/visit"
)

// ConvertPathDataOptions configures the path-engine job. FloatPrecision
// bounds rounding of coordinates; ArcsToCubic/CurvesToLines/RemoveUseless
// gate the corresponding path/ transforms.
type ConvertPathDataOptions struct {
	FloatPrecision    int
	ArcsToCubic       bool
	CurvesToLines     bool
	RemoveUseless     bool
	SmoothShortcuts   bool
	ConvertToRelative bool
	ErrorTolerance    float64
}

func DefaultConvertPathDataOptions() ConvertPathDataOptions {
	return ConvertPathDataOptions{
		FloatPrecision:  3,
		ArcsToCubic:     true,
		CurvesToLines:   true,
		RemoveUseless:   true,
		SmoothShortcuts: true,
		ErrorTolerance:  0.01,
	}
}

// ConvertPathData rewrites every path's `d` attribute (and equivalent
// geometry-bearing attributes produced by convertShapeToPath) through the
// path engine: parse, simplify, optionally round and re-relativise, then
// serialise back to the shortest legal form.
type ConvertPathData struct {
	visit.BaseVisitor
	Options  ConvertPathDataOptions
	Warnings []Warning
}

func NewConvertPathData(opts ConvertPathDataOptions) *ConvertPathData {
	return &ConvertPathData{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *ConvertPathData) Name() string          { return "convertPathData" }
func (j *ConvertPathData) Visitor() visit.Visitor { return j }
func (j *ConvertPathData) TakeWarnings() []Warning { w := j.Warnings; j.Warnings = nil; return w }

func (j *ConvertPathData) EnterElement(e dom.Node) (visit.Action, error) {
	if e.LocalName() != "path" {
		return visit.ContinueAction(), nil
	}
	d, ok := e.Attr("d")
	if !ok {
		return visit.ContinueAction(), nil
	}
	p, err := path.Parse(d)
	if err != nil {
		perr := err.(*path.ParseError)
		if len(perr.Path) == 0 {
			j.Warnings = append(j.Warnings, Warning{Job: j.Name(), Node: e, Message: fmt.Sprintf("unparseable path data: %s", perr.Reason)})
			return visit.ContinueAction(), nil
		}
		p = perr.Path
	}

	p = path.ToAbsolute(p)
	p = path.ExpandShorthand(p)
	if j.Options.RemoveUseless {
		p = path.CollapseConsecutiveMoveTo(p)
		p = path.RemoveZeroLengthSegments(p, j.Options.ErrorTolerance)
	}
	if j.Options.CurvesToLines {
		p = path.SimplifyDegenerateCurves(p, j.Options.ErrorTolerance)
	}
	if j.Options.ArcsToCubic {
		p = convertShortestArcs(p)
	}
	if j.Options.FloatPrecision > 0 {
		p = path.Round(p, j.Options.FloatPrecision)
	}
	if j.Options.SmoothShortcuts {
		p = path.PromoteSmoothShortcuts(p, j.Options.ErrorTolerance)
	}
	if j.Options.ConvertToRelative {
		p = path.ToRelative(p)
	}

	opts := path.SerializeOptions{Precision: j.Options.FloatPrecision}
	e.SetAttr("d", path.Serialize(p, opts))
	return visit.ContinueAction(), nil
}

// convertShortestArcs replaces an absolute ArcTo with its cubic expansion
// only when the cubic form serialises to fewer characters, per "convert A
// to C... when output is shorter".
func convertShortestArcs(p path.Path) path.Path {
	hasArc := false
	for _, cmd := range p {
		if cmd.ID == path.ArcTo {
			hasArc = true
			break
		}
	}
	if !hasArc {
		return p
	}
	asCubic := path.ConvertArcsToCubic(p)
	opts := path.DefaultSerializeOptions()
	if len(path.Serialize(asCubic, opts)) < len(path.Serialize(p, opts)) {
		return asCubic
	}
	return p
}

// ConvertShapeToPathOptions configures convertShapeToPath. ConvertArcs
// controls whether <circle> and <ellipse> are rewritten (on by default);
// the other basic shapes are always eligible.
type ConvertShapeToPathOptions struct {
	ConvertArcs bool
}

func DefaultConvertShapeToPathOptions() ConvertShapeToPathOptions {
	return ConvertShapeToPathOptions{ConvertArcs: true}
}

// ConvertShapeToPath rewrites rect/circle/ellipse/line/polyline/polygon
// elements into an equivalent <path> when the path form is no longer,
// preserving every other attribute untouched.
type ConvertShapeToPath struct {
	visit.BaseVisitor
	Options  ConvertShapeToPathOptions
	Warnings []Warning
}

func NewConvertShapeToPath(opts ConvertShapeToPathOptions) *ConvertShapeToPath {
	return &ConvertShapeToPath{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapName).With(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *ConvertShapeToPath) Name() string          { return "convertShapeToPath" }
func (j *ConvertShapeToPath) Visitor() visit.Visitor { return j }
func (j *ConvertShapeToPath) TakeWarnings() []Warning { w := j.Warnings; j.Warnings = nil; return w }

func (j *ConvertShapeToPath) EnterElement(e dom.Node) (visit.Action, error) {
	if !dom.ShapeTags[e.LocalName()] {
		return visit.ContinueAction(), nil
	}
	d, ok := j.shapePathData(e)
	if !ok {
		return visit.ContinueAction(), nil
	}
	tag := e.LocalName()
	before := 0
	for _, attr := range shapeGeometryAttrs[tag] {
		if v, ok := e.Attr(attr); ok {
			before += len(attr) + len(v) + 4
		}
	}
	if len(d)+len("d")+4 > before {
		return visit.ContinueAction(), nil
	}
	e.SetTag("path")
	for _, attr := range shapeGeometryAttrs[tag] {
		e.RemoveAttr(attr)
	}
	e.SetAttr("d", d)
	return visit.ContinueAction(), nil
}

var shapeGeometryAttrs = map[string][]string{
	"rect": {"x", "y", "width", "height", "rx", "ry"},
	"circle": {"cx", "cy", "r"},
	"ellipse": {"cx", "cy", "rx", "ry"},
	"line": {"x1", "y1", "x2", "y2"},
	"polyline": {"points"},
	"polygon": {"points"},
}

func (j *ConvertShapeToPath) shapePathData(e dom.Node) (string, bool) {
	num := func(name, def string) (float64, bool) {
		v := e.AttrOr(name, def)
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	switch e.LocalName() {
	case "rect":
		x, _ := num("x", "0")
		y, _ := num("y", "0")
		w, ok1 := num("width", "0")
		h, ok2 := num("height", "0")
		if !ok1 || !ok2 || w <= 0 || h <= 0 {
			return "", false
		}
		if _, hasRx := e.Attr("rx"); hasRx {
			return "", false
		}
		if _, hasRy := e.Attr("ry"); hasRy {
			return "", false
		}
		return fmt.Sprintf("M%g %gH%gV%gH%gZ", x, y, x+w, y+h, x), true
	case "line":
		x1, _ := num("x1", "0")
		y1, _ := num("y1", "0")
		x2, _ := num("x2", "0")
		y2, _ := num("y2", "0")
		return fmt.Sprintf("M%g %gL%g %g", x1, y1, x2, y2), true
	case "polyline", "polygon":
		points, ok := e.Attr("points")
		if !ok {
			return "", false
		}
		coords := parsePoints(points)
		if len(coords) < 2 {
			return "", false
		}
		var b strings.Builder
		fmt.Fprintf(&b, "M%g %g", coords[0][0], coords[0][1])
		for _, c := range coords[1:] {
			fmt.Fprintf(&b, "L%g %g", c[0], c[1])
		}
		if e.LocalName() == "polygon" {
			b.WriteString("Z")
		}
		return b.String(), true
	case "circle":
		if !j.Options.ConvertArcs {
			return "", false
		}
		cx, _ := num("cx", "0")
		cy, _ := num("cy", "0")
		r, ok := num("r", "0")
		if !ok || r <= 0 {
			return "", false
		}
		return circlePathData(cx, cy, r, r), true
	case "ellipse":
		if !j.Options.ConvertArcs {
			return "", false
		}
		cx, _ := num("cx", "0")
		cy, _ := num("cy", "0")
		rx, ok1 := num("rx", "0")
		ry, ok2 := num("ry", "0")
		if !ok1 || !ok2 || rx <= 0 || ry <= 0 {
			return "", false
		}
		return circlePathData(cx, cy, rx, ry), true
	}
	return "", false
}

func circlePathData(cx, cy, rx, ry float64) string {
	return fmt.Sprintf("M%g %gA%g %g 0 1 0 %g %gA%g %g 0 1 0 %g %gZ",
		cx-rx, cy, rx, ry, cx+rx, cy, rx, ry, cx-rx, cy)
}

func parsePoints(s string) [][2]float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
	var out [][2]float64
	for i := 0; i+1 < len(fields); i += 2 {
		x, err1 := strconv.ParseFloat(fields[i], 64)
		y, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}

// ConvertColorsOptions selects convertColors' rewrite method.
type ConvertColorsOptions struct {
	// Method is "shorten" (default: hex-reduce and prefer named/short
	// hex forms) or "currentColor" (replace literal colors with the
	// keyword currentColor, optionally restricted by CurrentColorRegex).
	Method            string
	CurrentColorRegex string
}

func DefaultConvertColorsOptions() ConvertColorsOptions {
	return ConvertColorsOptions{Method: "shorten"}
}

var paintAttrs = []string{"fill", "stroke", "stop-color", "flood-color", "lighting-color", "color"}

// ConvertColors rewrites every colour-valued presentation attribute and
// style declaration, either shortening the literal (rgb()->hex->named,
// whichever is fewest characters) or replacing it outright with the
// keyword currentColor.
type ConvertColors struct {
	visit.BaseVisitor
	Options      ConvertColorsOptions
	currentRegex *regexp.Regexp
	Warnings     []Warning
}

func NewConvertColors(opts ConvertColorsOptions) (*ConvertColors, error) {
	j := &ConvertColors{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes).With(visit.CapStyles), Ord: visit.PreOnly}, Options: opts}
	if opts.CurrentColorRegex != "" {
		re, err := regexp.Compile(opts.CurrentColorRegex)
		if err != nil {
			return nil, err
		}
		j.currentRegex = re
	}
	return j, nil
}

func (j *ConvertColors) Name() string          { return "convertColors" }
func (j *ConvertColors) Visitor() visit.Visitor { return j }
func (j *ConvertColors) TakeWarnings() []Warning { w := j.Warnings; j.Warnings = nil; return w }

func (j *ConvertColors) EnterElement(e dom.Node) (visit.Action, error) {
	for _, name := range paintAttrs {
		v, ok := e.Attr(name)
		if !ok {
			continue
		}
		e.SetAttr(name, j.convert(v))
	}
	if styleVal, ok := e.Attr("style"); ok {
		decls := dom.ParseDeclarations(styleVal)
		for _, name := range paintAttrs {
			if v, ok := decls[name]; ok {
				decls[name] = j.convert(v)
			}
		}
		e.SetAttr("style", dom.SerializeDeclarations(decls))
	}
	return visit.ContinueAction(), nil
}

func (j *ConvertColors) convert(v string) string {
	if v == "none" || v == "currentColor" || v == "inherit" || v == "transparent" || strings.HasPrefix(v, "url(") || strings.HasPrefix(v, "context-") {
		return v
	}
	if j.Options.Method == "currentColor" {
		if j.currentRegex != nil && !j.currentRegex.MatchString(v) {
			return v
		}
		return "currentColor"
	}
	return shortenColor(v)
}

func shortenColor(v string) string {
	if hex, ok := parseRGBFunc(v); ok {
		v = hex
	}
	if strings.HasPrefix(v, "#") {
		return style.ShortenColorHex(v)
	}
	if hex, ok := style.ShortenColorKeyword(v); ok {
		return "#" + hex
	}
	return v
}

var rgbFuncPattern = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)

func parseRGBFunc(v string) (string, bool) {
	m := rgbFuncPattern.FindStringSubmatch(v)
	if m == nil {
		return "", false
	}
	r, _ := strconv.Atoi(m[1])
	g, _ := strconv.Atoi(m[2])
	b, _ := strconv.Atoi(m[3])
	return style.RGBToHex(uint8(r), uint8(g), uint8(b)), true
}

// ConvertTransformOptions bounds the numeric precision a composed matrix
// is rounded to before it is converted back to the shortest equivalent
// function-list form.
type ConvertTransformOptions struct {
	FloatPrecision int
}

func DefaultConvertTransformOptions() ConvertTransformOptions {
	return ConvertTransformOptions{FloatPrecision: 5}
}

// ConvertTransform parses a transform attribute's function list, composes
// it into one 2D affine matrix, then re-expresses that matrix as whichever
// is shorter: the bare matrix() form, or translate() for a pure translation
// or scale() for a uniform scale without translation (e.g. the identity
// matrix is dropped outright). Rotations and every other matrix are written
// as matrix().
type ConvertTransform struct {
	visit.BaseVisitor
	Options ConvertTransformOptions
}

func NewConvertTransform(opts ConvertTransformOptions) *ConvertTransform {
	return &ConvertTransform{BaseVisitor: visit.BaseVisitor{Caps: visit.Capabilities(visit.CapAttributes), Ord: visit.PreOnly}, Options: opts}
}

func (j *ConvertTransform) Name() string          { return "convertTransform" }
func (j *ConvertTransform) Visitor() visit.Visitor { return j }

func (j *ConvertTransform) EnterElement(e dom.Node) (visit.Action, error) {
	v, ok := e.Attr("transform")
	if !ok {
		return visit.ContinueAction(), nil
	}
	m, ok := parseTransformList(v)
	if !ok {
		return visit.ContinueAction(), nil
	}
	m = roundMatrix(m, j.Options.FloatPrecision)
	if m.isIdentity() {
		e.RemoveAttr("transform")
		return visit.ContinueAction(), nil
	}
	e.SetAttr("transform", m.shortestForm())
	return visit.ContinueAction(), nil
}

// matrix2D is [a b c d e f] per the SVG transform-matrix convention.
type matrix2D struct{ a, b, c, d, e, f float64 }

func identityMatrix() matrix2D { return matrix2D{1, 0, 0, 1, 0, 0} }

func (m matrix2D) isIdentity() bool {
	return m == identityMatrix()
}

func (m matrix2D) mul(n matrix2D) matrix2D {
	return matrix2D{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

var transformFnPattern = regexp.MustCompile(`(\w+)\s*\(([^)]*)\)`)

func parseTransformList(v string) (matrix2D, bool) {
	m := identityMatrix()
	found := false
	for _, match := range transformFnPattern.FindAllStringSubmatch(v, -1) {
		fn := match[1]
		args := parseFloatList(match[2])
		fm, ok := transformFuncMatrix(fn, args)
		if !ok {
			return matrix2D{}, false
		}
		m = m.mul(fm)
		found = true
	}
	return m, found
}

func parseFloatList(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func transformFuncMatrix(fn string, args []float64) (matrix2D, bool) {
	switch fn {
	case "matrix":
		if len(args) != 6 {
			return matrix2D{}, false
		}
		return matrix2D{args[0], args[1], args[2], args[3], args[4], args[5]}, true
	case "translate":
		if len(args) == 1 {
			return matrix2D{1, 0, 0, 1, args[0], 0}, true
		}
		if len(args) == 2 {
			return matrix2D{1, 0, 0, 1, args[0], args[1]}, true
		}
	case "scale":
		if len(args) == 1 {
			return matrix2D{args[0], 0, 0, args[0], 0, 0}, true
		}
		if len(args) == 2 {
			return matrix2D{args[0], 0, 0, args[1], 0, 0}, true
		}
	case "rotate":
		if len(args) == 1 {
			rad := args[0] * math.Pi / 180
			return matrix2D{math.Cos(rad), math.Sin(rad), -math.Sin(rad), math.Cos(rad), 0, 0}, true
		}
		if len(args) == 3 {
			cx, cy := args[1], args[2]
			rad := args[0] * math.Pi / 180
			rot := matrix2D{math.Cos(rad), math.Sin(rad), -math.Sin(rad), math.Cos(rad), 0, 0}
			return identityMatrix().mul(matrix2D{1, 0, 0, 1, cx, cy}).mul(rot).mul(matrix2D{1, 0, 0, 1, -cx, -cy}), true
		}
	case "skewX":
		if len(args) == 1 {
			return matrix2D{1, 0, math.Tan(args[0] * math.Pi / 180), 1, 0, 0}, true
		}
	case "skewY":
		if len(args) == 1 {
			return matrix2D{1, math.Tan(args[0] * math.Pi / 180), 0, 1, 0, 0}, true
		}
	}
	return matrix2D{}, false
}

func roundMatrix(m matrix2D, precision int) matrix2D {
	pow := math.Pow(10, float64(precision))
	round := func(v float64) float64 { return math.Round(v*pow) / pow }
	return matrix2D{round(m.a), round(m.b), round(m.c), round(m.d), round(m.e), round(m.f)}
}

func (m matrix2D) shortestForm() string {
	if m.b == 0 && m.c == 0 {
		if m.a == m.d && m.e == 0 && m.f == 0 {
			return fmt.Sprintf("scale(%s)", trimFloat(m.a))
		}
		if m.a == 1 && m.d == 1 {
			return fmt.Sprintf("translate(%s,%s)", trimFloat(m.e), trimFloat(m.f))
		}
	}
	return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		trimFloat(m.a), trimFloat(m.b), trimFloat(m.c), trimFloat(m.d), trimFloat(m.e), trimFloat(m.f))
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
