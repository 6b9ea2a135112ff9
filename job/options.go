package job

import (
	"fmt"
	"sort"
)

// factory builds a job from a generic params map and reports the fixed
// order index the default preset positions it at. build reads the option
// keys it knows; any other key in the map is ignored, not reported.
type factory struct {
	name           string
	order          int
	defaultEnabled bool
	build          func(params map[string]any) (Job, error)
}

func float64Of(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func stringSliceOf(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		if s, ok := v.([]string); ok {
			return s, true
		}
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func boolOf(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func stringOf(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// registry lists every known job in the default preset's fixed order.
// Job ordering hints from SPEC_FULL.md §4.4 ("inline styles must run
// before convertColors on inline style to have effect", "remove-hidden
// must run before remove-useless-defs") are encoded directly in this
// sequence rather than resolved dynamically.
var registry = []factory{
	{"removeDoctype", 0, true, func(p map[string]any) (Job, error) { return NewRemoveDoctype(), nil }},
	{"removeXMLProcInst", 1, true, func(p map[string]any) (Job, error) { return NewRemoveXMLProcInst(), nil }},
	{"removeComments", 2, true, buildRemoveComments},
	{"removeMetadata", 3, true, func(p map[string]any) (Job, error) { return NewRemoveMetadata(), nil }},
	{"removeEditorsNSData", 4, true, buildRemoveEditorsNSData},
	{"cleanupEnableBackground", 5, true, func(p map[string]any) (Job, error) { return NewCleanupEnableBackground(), nil }},
	{"inlineStyles", 6, true, buildInlineStyles},
	{"minifyStyles", 7, true, buildMinifyStyles},
	{"convertStyleToAttrs", 8, true, buildConvertStyleToAttrs},
	{"cleanupIDs", 9, true, buildCleanupIDs},
	{"removeRasterImages", 10, false, func(p map[string]any) (Job, error) { return NewRemoveRasterImages(), nil }},
	{"removeUselessDefaultAttrs", 11, true, buildRemoveUselessDefaultAttrs},
	{"cleanupNumericValues", 12, true, buildCleanupNumericValues},
	{"cleanupListOfValues", 13, true, buildCleanupListOfValues},
	{"convertColors", 14, true, buildConvertColors},
	{"cleanupXlinkNS", 15, true, func(p map[string]any) (Job, error) { return NewCleanupXlinkNS(), nil }},
	{"removeEmptyAttrs", 16, true, func(p map[string]any) (Job, error) { return NewRemoveEmptyAttrs(), nil }},
	{"removeHiddenElems", 17, true, buildRemoveHiddenElems},
	{"removeEmptyText", 18, true, func(p map[string]any) (Job, error) { return NewRemoveEmptyText(), nil }},
	{"removeEmptyContainers", 19, true, func(p map[string]any) (Job, error) { return NewRemoveEmptyContainers(), nil }},
	{"removeOffCanvasPath", 20, false, func(p map[string]any) (Job, error) { return NewRemoveOffCanvasPath(), nil }},
	{"convertShapeToPath", 21, true, buildConvertShapeToPath},
	{"convertPathData", 22, true, buildConvertPathData},
	{"moveElemsAttrsToGroup", 23, true, func(p map[string]any) (Job, error) { return NewMoveElemsAttrsToGroup(), nil }},
	{"moveGroupAttrsToElems", 24, true, func(p map[string]any) (Job, error) { return NewMoveGroupAttrsToElems(), nil }},
	{"collapseGroups", 25, true, func(p map[string]any) (Job, error) { return NewCollapseGroups(), nil }},
	{"mergeStyledGroups", 26, true, func(p map[string]any) (Job, error) { return NewMergeStyledGroups(), nil }},
	{"convertTransform", 27, true, buildConvertTransform},
	{"removeUselessDefs", 28, true, func(p map[string]any) (Job, error) { return NewRemoveUselessDefs(), nil }},
	{"removeAttrs", 29, false, buildRemoveAttrs},
	{"removeDimensions", 30, false, func(p map[string]any) (Job, error) { return NewRemoveDimensions(), nil }},
	{"removeViewBox", 31, false, func(p map[string]any) (Job, error) { return NewRemoveViewBox(), nil }},
	{"reusePaths", 32, false, buildReusePaths},
	{"prefixIDs", 33, false, buildPrefixIDs},
	{"sortAttrs", 34, true, buildSortAttrs},
	{"sortDefsChildren", 35, true, func(p map[string]any) (Job, error) { return NewSortDefsChildren(), nil }},
}

func findFactory(name string) (factory, bool) {
	for _, f := range registry {
		if f.name == name {
			return f, true
		}
	}
	return factory{}, false
}

func buildRemoveComments(p map[string]any) (Job, error) {
	opts := RemoveCommentsOptions{}
	if v, ok := p["preservePatterns"]; ok {
		patterns, ok := stringSliceOf(v)
		if !ok {
			return nil, fmt.Errorf("removeComments.preservePatterns must be a list of strings")
		}
		opts.PreservePatterns = patterns
	}
	j, err := NewRemoveComments(opts)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func buildRemoveEditorsNSData(p map[string]any) (Job, error) {
	opts := RemoveEditorsNSDataOptions{}
	if v, ok := p["additionalNamespaces"]; ok {
		ns, ok := stringSliceOf(v)
		if !ok {
			return nil, fmt.Errorf("removeEditorsNSData.additionalNamespaces must be a list of strings")
		}
		opts.AdditionalNamespaces = ns
	}
	return NewRemoveEditorsNSData(opts), nil
}

func buildInlineStyles(p map[string]any) (Job, error) {
	opts := DefaultInlineStylesOptions()
	if v, ok := p["onlyMatchedOnce"]; ok {
		opts.OnlyMatchedOnce = boolOf(v, opts.OnlyMatchedOnce)
	}
	if v, ok := p["removeMatchedSelectors"]; ok {
		opts.RemoveMatchedSelectors = boolOf(v, opts.RemoveMatchedSelectors)
	}
	if v, ok := p["useMqs"]; ok {
		if mqs, ok := stringSliceOf(v); ok {
			opts.UseMqs = mqs
		}
	}
	if v, ok := p["usePseudos"]; ok {
		if pseudos, ok := stringSliceOf(v); ok {
			opts.UsePseudos = pseudos
		}
	}
	return NewInlineStyles(opts), nil
}

func buildMinifyStyles(p map[string]any) (Job, error) {
	opts := DefaultMinifyStylesOptions()
	if v, ok := p["shortenColors"]; ok {
		opts.ShortenColors = boolOf(v, opts.ShortenColors)
	}
	if v, ok := p["shortenValues"]; ok {
		opts.ShortenValues = boolOf(v, opts.ShortenValues)
	}
	return NewMinifyStyles(opts), nil
}

func buildConvertStyleToAttrs(p map[string]any) (Job, error) {
	opts := DefaultConvertStyleToAttrsOptions()
	if v, ok := p["direction"]; ok {
		opts.Direction = stringOf(v, opts.Direction)
	}
	return NewConvertStyleToAttrs(opts), nil
}

func buildCleanupIDs(p map[string]any) (Job, error) {
	opts := DefaultCleanupIDsOptions()
	if v, ok := p["remove"]; ok {
		opts.Remove = boolOf(v, opts.Remove)
	}
	if v, ok := p["force"]; ok {
		opts.Force = boolOf(v, opts.Force)
	}
	return NewCleanupIDs(opts), nil
}

func buildRemoveUselessDefaultAttrs(p map[string]any) (Job, error) {
	opts := DefaultRemoveUselessDefaultAttrsOptions()
	if v, ok := p["removeUselessDefault"]; ok {
		opts.RemoveUselessDefault = boolOf(v, opts.RemoveUselessDefault)
	}
	if v, ok := p["removeUnknown"]; ok {
		opts.RemoveUnknown = boolOf(v, opts.RemoveUnknown)
	}
	return NewRemoveUselessDefaultAttrs(opts), nil
}

func buildCleanupNumericValues(p map[string]any) (Job, error) {
	opts := DefaultCleanupNumericValuesOptions()
	if v, ok := p["floatPrecision"]; ok {
		if f, ok := float64Of(v); ok {
			opts.FloatPrecision = int(f)
		}
	}
	if v, ok := p["removeDefaultPx"]; ok {
		opts.RemoveDefaultPx = boolOf(v, opts.RemoveDefaultPx)
	}
	return NewCleanupNumericValues(opts), nil
}

func buildCleanupListOfValues(p map[string]any) (Job, error) {
	opts := DefaultCleanupListOfValuesOptions()
	if v, ok := p["floatPrecision"]; ok {
		if f, ok := float64Of(v); ok {
			opts.FloatPrecision = int(f)
		}
	}
	return NewCleanupListOfValues(opts), nil
}

func buildConvertColors(p map[string]any) (Job, error) {
	opts := DefaultConvertColorsOptions()
	if v, ok := p["method"]; ok {
		opts.Method = stringOf(v, opts.Method)
	}
	if v, ok := p["currentColorRegex"]; ok {
		opts.CurrentColorRegex = stringOf(v, opts.CurrentColorRegex)
	}
	j, err := NewConvertColors(opts)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func buildRemoveHiddenElems(p map[string]any) (Job, error) {
	opts := DefaultRemoveHiddenElemsOptions()
	for key, field := range map[string]*bool{
		"displayNone": &opts.DisplayNone, "visibilityHidden": &opts.VisibilityHidden,
		"zeroSizeShapes": &opts.ZeroSizeShapes, "zeroOpacity": &opts.ZeroOpacity,
		"pathEmptyD": &opts.PathEmptyD, "polylineEmptyPoints": &opts.PolylineEmptyPoints,
		"polygonEmptyPoints": &opts.PolygonEmptyPoints,
	} {
		if v, ok := p[key]; ok {
			*field = boolOf(v, *field)
		}
	}
	return NewRemoveHiddenElems(opts), nil
}

func buildConvertShapeToPath(p map[string]any) (Job, error) {
	opts := DefaultConvertShapeToPathOptions()
	if v, ok := p["convertArcs"]; ok {
		opts.ConvertArcs = boolOf(v, opts.ConvertArcs)
	}
	return NewConvertShapeToPath(opts), nil
}

func buildConvertPathData(p map[string]any) (Job, error) {
	opts := DefaultConvertPathDataOptions()
	if v, ok := p["floatPrecision"]; ok {
		if f, ok := float64Of(v); ok {
			opts.FloatPrecision = int(f)
		}
	}
	for key, field := range map[string]*bool{
		"arcsToCubic": &opts.ArcsToCubic, "curvesToLines": &opts.CurvesToLines,
		"removeUseless": &opts.RemoveUseless, "smoothShortcuts": &opts.SmoothShortcuts,
		"convertToRelative": &opts.ConvertToRelative,
	} {
		if v, ok := p[key]; ok {
			*field = boolOf(v, *field)
		}
	}
	return NewConvertPathData(opts), nil
}

func buildConvertTransform(p map[string]any) (Job, error) {
	opts := DefaultConvertTransformOptions()
	if v, ok := p["floatPrecision"]; ok {
		if f, ok := float64Of(v); ok {
			opts.FloatPrecision = int(f)
		}
	}
	return NewConvertTransform(opts), nil
}

func buildRemoveAttrs(p map[string]any) (Job, error) {
	opts := RemoveAttrsOptions{}
	if v, ok := p["attrs"]; ok {
		attrs, ok := stringSliceOf(v)
		if !ok {
			return nil, fmt.Errorf("removeAttrs.attrs must be a list of strings")
		}
		opts.Attrs = attrs
	}
	j, err := NewRemoveAttrs(opts)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func buildReusePaths(p map[string]any) (Job, error) {
	opts := DefaultReusePathsOptions()
	if v, ok := p["minOccurrences"]; ok {
		if f, ok := float64Of(v); ok {
			opts.MinOccurrences = int(f)
		}
	}
	return NewReusePaths(opts), nil
}

func buildPrefixIDs(p map[string]any) (Job, error) {
	opts := PrefixIDsOptions{}
	if v, ok := p["prefix"]; ok {
		opts.Prefix = stringOf(v, opts.Prefix)
	}
	return NewPrefixIDs(opts), nil
}

func buildSortAttrs(p map[string]any) (Job, error) {
	opts := DefaultSortAttrsOptions()
	if v, ok := p["order"]; ok {
		if order, ok := stringSliceOf(v); ok {
			opts.Order = order
		}
	}
	return NewSortAttrs(opts), nil
}

// Options is a resolved, ordered job list: the outcome of applying a
// preset (Default/None) and any overlay through Extend.
type Options struct {
	jobs []Job
}

// Jobs returns the resolved, ordered job list ready for the pipeline.
func (o *Options) Jobs() []Job { return o.jobs }

// Default returns the canonical job list mirroring SVGO's own default
// preset, every entry built with its own defaults.
func Default() (*Options, error) {
	return buildPreset(func(f factory) bool { return f.defaultEnabled })
}

// None returns the empty preset: no jobs run until an overlay enables
// some.
func None() *Options {
	return &Options{}
}

func buildPreset(include func(factory) bool) (*Options, error) {
	ordered := make([]factory, len(registry))
	copy(ordered, registry)
	sort.Slice(ordered, func(i, k int) bool { return ordered[i].order < ordered[k].order })
	opts := &Options{}
	for _, f := range ordered {
		if !include(f) {
			continue
		}
		j, err := f.build(nil)
		if err != nil {
			return nil, fmt.Errorf("building default options for %s: %w", f.name, err)
		}
		opts.jobs = append(opts.jobs, j)
	}
	return opts, nil
}

// Extend takes base and overlays each named job's entry: false disables
// it, true enables it with its own defaults, and a params map enables it
// with those params over its defaults. Unknown job names are a
// configuration error (§6, "Unknown keys are a configuration error").
func Extend(base *Options, overlay map[string]any) (*Options, error) {
	enabled := map[string]bool{}
	for _, j := range base.jobs {
		enabled[j.Name()] = true
	}
	paramsByName := map[string]map[string]any{}

	for name, v := range overlay {
		f, ok := findFactory(name)
		if !ok {
			return nil, fmt.Errorf("unknown job %q", name)
		}
		switch val := v.(type) {
		case bool:
			enabled[f.name] = val
		case map[string]any:
			enabled[f.name] = true
			paramsByName[f.name] = val
		case nil:
			enabled[f.name] = true
		default:
			return nil, fmt.Errorf("job %q: overlay value must be bool or object", name)
		}
	}

	ordered := make([]factory, len(registry))
	copy(ordered, registry)
	sort.Slice(ordered, func(i, k int) bool { return ordered[i].order < ordered[k].order })

	out := &Options{}
	for _, f := range ordered {
		if !enabled[f.name] {
			continue
		}
		j, err := f.build(paramsByName[f.name])
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", f.name, err)
		}
		out.jobs = append(out.jobs, j)
	}
	return out, nil
}
