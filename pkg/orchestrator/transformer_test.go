package orchestrator_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-seoform/pkg/formtree"
	"github.com/goliatone/go-seoform/pkg/orchestrator"
)

func TestPresetTransformer_DefaultsThenSet(t *testing.T) {
	preset := []byte(`
defaults:
  field_meta_tags.widget.0.basic.title.#default_value: "[node:title] | [site:name]"
  body.#weight: 10
set:
  body.widget.0.#format: full_html
`)
	transformer, err := orchestrator.NewPresetTransformer(preset)
	if err != nil {
		t.Fatalf("new preset transformer: %v", err)
	}

	tree := formtree.Tree{
		"body": map[string]any{
			"#weight": 3,
			"widget":  map[string]any{"0": map[string]any{"#format": "basic_html"}},
		},
	}
	if err := transformer.Transform(context.Background(), tree); err != nil {
		t.Fatalf("transform: %v", err)
	}

	want := formtree.Tree{
		"body": map[string]any{
			"#weight": 3,
			"widget":  map[string]any{"0": map[string]any{"#format": "full_html"}},
		},
		"field_meta_tags": map[string]any{
			"widget": map[string]any{"0": map[string]any{
				"basic": map[string]any{"title": map[string]any{"#default_value": "[node:title] | [site:name]"}},
			}},
		},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestPresetTransformer_FromFSJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"preset.json": {Data: []byte(`{"set": {"#id": "custom-form"}}`)},
	}
	transformer, err := orchestrator.NewPresetTransformerFromFS(fsys, "preset.json")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	orch := orchestrator.New(
		orchestrator.WithSkipMarkup(true),
		orchestrator.WithTransformers(transformer),
	)
	if got := orch.Settings(formtree.Tree{}).FormID; got != "" {
		t.Fatalf("settings must not run transformers, got %q", got)
	}
	tree, err := orch.Process(context.Background(), orchestrator.Request{Tree: formtree.Tree{}})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	got, _ := formtree.String(tree, formtree.MustParseLocator("attached.settings.yoast_seo.form_id"))
	if got != "custom-form" {
		t.Fatalf("expected preset form id, got %q", got)
	}
}

func TestPresetTransformer_Errors(t *testing.T) {
	cases := map[string][]byte{
		"empty":           []byte("  "),
		"unknown section": []byte(`{"patch": {}}`),
		"bad section":     []byte(`{"set": ["a"]}`),
		"bad path":        []byte(`{"set": {"a..b": 1}}`),
	}
	for name, data := range cases {
		if _, err := orchestrator.NewPresetTransformer(data); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := orchestrator.NewPresetTransformerFromFS(nil, "x"); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
	if _, err := orchestrator.NewPresetTransformerFromFS(fstest.MapFS{}, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
