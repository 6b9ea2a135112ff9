package job

// This file holds the named-preset surface (§6 "Preset names"). Default
// and None themselves live in options.go next to the registry they walk;
// the SVGO translation layer is the only other preset constructor.

// svgoNameOverride maps an SVGO plugin name onto this system's job name
// where they diverge. Unlisted names are assumed identical.
var svgoNameOverride = map[string]string{
	"removeXMLProcInst":    "removeXMLProcInst",
	"removeUnusedNS":       "cleanupXlinkNS",
	"removeUselessStrokeAndFill": "removeUselessDefaultAttrs",
	"cleanupIds":           "cleanupIDs",
	"prefixIds":            "prefixIDs",
	"convertShapeToPath":   "convertShapeToPath",
}

// SvgoPlugin is one entry of an SVGO `plugins` config array: a plugin
// name and its optional parameter object.
type SvgoPlugin struct {
	Name   string
	Params map[string]any
}

// ConvertSvgoConfig translates an SVGO plugin list into a job-options
// record (§6 "SVGO-config translation"). A nil slice returns Default;
// an empty, non-nil slice returns None.
func ConvertSvgoConfig(plugins []SvgoPlugin) (*Options, error) {
	if plugins == nil {
		return Default()
	}
	if len(plugins) == 0 {
		return None(), nil
	}
	overlay := make(map[string]any, len(plugins))
	for _, p := range plugins {
		name := p.Name
		if mapped, ok := svgoNameOverride[name]; ok {
			name = mapped
		}
		if p.Params == nil {
			overlay[name] = true
			continue
		}
		overlay[name] = p.Params
	}
	return Extend(None(), overlay)
}
