package fieldpaths

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML registry document. Sections the document omits
// are taken from DefaultConfig, so a file may override only the tokens.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("fieldpaths: file %s is empty", source)
	}

	var doc Config
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Config{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Config{}, fmt.Errorf("fieldpaths: parse %s: invalid JSON or YAML", source)
		}
	}

	defaults := DefaultConfig()
	if doc.Paths == nil {
		doc.Paths = defaults.Paths
	}
	if doc.Fields == nil {
		doc.Fields = defaults.Fields
	}
	if doc.Tokens == nil {
		doc.Tokens = defaults.Tokens
	}
	return doc, nil
}

// LoadFS reads the named registry file from fsys and builds a Registry.
func LoadFS(fsys fs.FS, name string) (*Registry, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fieldpaths: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("fieldpaths: read %s: %w", name, err)
	}
	cfg, err := Parse(data, name)
	if err != nil {
		return nil, err
	}
	reg, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, name)
	}
	return reg, nil
}
