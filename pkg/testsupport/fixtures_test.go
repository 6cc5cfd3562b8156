package testsupport

import (
	"testing"

	"github.com/goliatone/go-seoform/pkg/formtree"
)

func TestMustLoadTree_YAML(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "nested/form.yaml", `
"#id": node-page-form
body:
  "#weight": 2
`)
	tree := MustLoadTree(t, path)
	if got, _ := formtree.Int(tree, formtree.MustParseLocator("body.#weight")); got != 2 {
		t.Fatalf("weight mismatch: %d", got)
	}
}

func TestLoadTree_RequiresPath(t *testing.T) {
	if _, err := LoadTree(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDiffJSON_ComparesByContent(t *testing.T) {
	type pair struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if diff := DiffJSON(t, pair{Name: "a", Count: 1}, map[string]any{"name": "a", "count": 1}); diff != "" {
		t.Fatalf("unexpected diff:\n%s", diff)
	}
	if diff := DiffJSON(t, pair{Name: "a"}, map[string]any{"name": "b"}); diff == "" {
		t.Fatalf("expected a diff")
	}
}

func TestWriteGolden_SkippedWithoutEnv(t *testing.T) {
	t.Setenv("UPDATE_GOLDENS", "")
	if WriteGolden(t, t.TempDir()+"/golden.json", map[string]any{}) {
		t.Fatalf("golden written without UPDATE_GOLDENS")
	}
}
