package job

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads a YAML or JSON config file (picked by extension,
// defaulting to YAML) and resolves it to a job-options record. A file
// with a top-level "plugins" array is treated as SVGO config and routed
// through ConvertSvgoConfig; otherwise its top-level keys are treated
// as a direct overlay on Default.
func LoadConfigFile(path string, data []byte) (*Options, error) {
	raw := map[string]interface{}{}
	if err := unmarshalConfig(path, data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if pluginsRaw, ok := raw["plugins"]; ok {
		plugins, err := decodePlugins(pluginsRaw)
		if err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		return ConvertSvgoConfig(plugins)
	}

	base, err := Default()
	if err != nil {
		return nil, err
	}
	return Extend(base, raw)
}

func unmarshalConfig(path string, data []byte, out *map[string]interface{}) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}

func decodePlugins(v interface{}) ([]SvgoPlugin, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("plugins must be a list")
	}
	out := make([]SvgoPlugin, 0, len(arr))
	for _, e := range arr {
		switch entry := e.(type) {
		case string:
			out = append(out, SvgoPlugin{Name: entry})
		case map[string]interface{}:
			name, _ := entry["name"].(string)
			if name == "" {
				return nil, fmt.Errorf("plugin entry missing name")
			}
			params, _ := entry["params"].(map[string]interface{})
			out = append(out, SvgoPlugin{Name: name, Params: params})
		default:
			return nil, fmt.Errorf("plugin entry must be a string or object")
		}
	}
	return out, nil
}
