// Package testsupport holds fixture helpers shared by the package tests.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-seoform/pkg/formtree"
)

// MustLoadTree reads a JSON or YAML form tree fixture.
func MustLoadTree(t *testing.T, path string) formtree.Tree {
	t.Helper()

	tree, err := LoadTree(path)
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	return tree
}

// LoadTree returns a fixture tree without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadTree(path string) (formtree.Tree, error) {
	if path == "" {
		return nil, errors.New("testsupport: tree path is required")
	}
	tree, err := formtree.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: %w", err)
	}
	return tree, nil
}

// WriteFile writes body under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// DiffJSON compares want and got after a JSON round trip, so typed structs,
// decoded trees and literals compare by content. Returns "" when equal.
func DiffJSON(t *testing.T, want, got any) string {
	t.Helper()
	return cmp.Diff(normalize(t, want), normalize(t, got))
}

func normalize(t *testing.T, value any) any {
	t.Helper()

	payload, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
