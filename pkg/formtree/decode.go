package formtree

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a JSON or YAML form description. JSON is attempted first;
// YAML mappings with non-string keys (such as `0:`) are normalised into
// string-keyed maps.
func Decode(data []byte) (Tree, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formtree: document is empty")
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err == nil {
		if tree == nil {
			tree = make(map[string]any)
		}
		return tree, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("formtree: decode: invalid JSON or YAML: %w", err)
	}
	normalized, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("formtree: decode: document root must be a mapping")
	}
	return normalized, nil
}

// LoadFile reads and decodes a form description from disk.
func LoadFile(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formtree: read %s: %w", path, err)
	}
	tree, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return tree, nil
}

func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalize(item)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range typed {
			typed[i] = normalize(item)
		}
		return typed
	default:
		return value
	}
}
