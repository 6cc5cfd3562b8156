package markup

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestEngine_RendersEmbeddedTemplates(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render(TemplateOverallScore, map[string]any{
		"overall_score_target_id": "score-id",
		"score":                   0,
		"labels":                  map[string]any{"score": "SEO status", "not_available": "Not available"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `id="score-id"`) {
		t.Fatalf("expected target id in output, got %q", out)
	}
	if !strings.Contains(out, "Not available") {
		t.Fatalf("expected label in output, got %q", out)
	}
}

func TestEngine_FSOverridesEmbedded(t *testing.T) {
	fsys := fstest.MapFS{
		"overall_score.tpl": {Data: []byte(`<span id="{{ overall_score_target_id }}">custom</span>`)},
	}
	engine, err := NewEngine(WithTemplateFS(fsys))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render("overall_score", map[string]any{"overall_score_target_id": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `<span id="x">custom</span>` {
		t.Fatalf("unexpected output %q", out)
	}

	snippet, err := engine.Render(TemplateSnippetEditor, map[string]any{"snippet_target_id": "s"})
	if err != nil {
		t.Fatalf("render embedded fallback: %v", err)
	}
	if !strings.Contains(snippet, `id="s"`) {
		t.Fatalf("expected embedded snippet template, got %q", snippet)
	}
}

func TestEngine_GlobalsVisibleToTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		"hello.tpl": {Data: []byte(`{{ site }}/{{ name }}`)},
	}
	engine, err := NewEngine(WithTemplateFS(fsys), WithoutEmbedded(), WithGlobals(map[string]any{"site": "acme"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render("hello.tpl", map[string]any{"name": "form"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "acme/form" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := NewEngine(WithoutEmbedded()); err == nil {
		t.Fatalf("expected error without template sources")
	}

	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render("  ", nil); err == nil {
		t.Fatalf("expected error for blank template name")
	}
	if _, err := engine.Render("missing", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}

	var nilEngine *Engine
	if _, err := nilEngine.Render("overall_score", nil); err == nil {
		t.Fatalf("expected error for nil engine")
	}
}
