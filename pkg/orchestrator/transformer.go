package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-seoform/pkg/formtree"
)

// Transformer mutates a form tree before the SEO patches are computed.
// Implementations can fill defaults, rename widgets, or rewrite ids.
type Transformer interface {
	Transform(ctx context.Context, tree formtree.Tree) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, tree formtree.Tree) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, tree formtree.Tree) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, tree)
}

// PresetTransformer applies declarative writes loaded from a JSON or YAML
// document keyed by dotted tree paths:
//
//	set:
//	  body.widget.0.#format: full_html
//	defaults:
//	  field_meta_tags.widget.0.basic.title.#default_value: "[node:title]"
//
// "set" entries always overwrite; "defaults" entries are written only when
// the path does not resolve yet.
type PresetTransformer struct {
	set      []presetEntry
	defaults []presetEntry
}

type presetEntry struct {
	path  formtree.Locator
	value any
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	decoded, err := formtree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	for key := range decoded {
		if key != "set" && key != "defaults" {
			return nil, fmt.Errorf("preset transformer: unknown section %q", key)
		}
	}

	set, err := presetEntries(decoded["set"])
	if err != nil {
		return nil, err
	}
	defaults, err := presetEntries(decoded["defaults"])
	if err != nil {
		return nil, err
	}
	return &PresetTransformer{set: set, defaults: defaults}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies defaults first, then unconditional writes.
func (t *PresetTransformer) Transform(ctx context.Context, tree formtree.Tree) error {
	if tree == nil {
		return errors.New("preset transformer: form tree is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, entry := range t.defaults {
		if formtree.Has(tree, entry.path) {
			continue
		}
		if err := formtree.Set(tree, entry.path, entry.value); err != nil {
			return fmt.Errorf("preset transformer: default %q: %w", entry.path.String(), err)
		}
	}
	for _, entry := range t.set {
		if err := formtree.Set(tree, entry.path, entry.value); err != nil {
			return fmt.Errorf("preset transformer: set %q: %w", entry.path.String(), err)
		}
	}
	return nil
}

// presetEntries sorts by path so shallower writes land before deeper ones.
func presetEntries(section any) ([]presetEntry, error) {
	if section == nil {
		return nil, nil
	}
	values, ok := section.(map[string]any)
	if !ok {
		return nil, errors.New("preset transformer: sections must be mappings")
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]presetEntry, 0, len(keys))
	for _, key := range keys {
		loc, err := formtree.ParseLocator(key)
		if err != nil {
			return nil, fmt.Errorf("preset transformer: %w", err)
		}
		out = append(out, presetEntry{path: loc, value: values[key]})
	}
	return out, nil
}
