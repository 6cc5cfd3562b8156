package seoform

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-seoform/pkg/config"
	"github.com/goliatone/go-seoform/pkg/formtree"
	"github.com/goliatone/go-seoform/pkg/site"
	"github.com/goliatone/go-seoform/pkg/testsupport"
)

func TestProcess_DefaultPipeline(t *testing.T) {
	tree := Tree{
		"#id":  "node-page-form",
		"body": map[string]any{"#weight": 1},
	}
	out, err := Process(context.Background(), tree)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if got, _ := formtree.String(out, formtree.MustParseLocator("attached.settings.yoast_seo.form_id")); got != "node-page-form" {
		t.Fatalf("form id not attached: %q", got)
	}
	if got, _ := formtree.Int(out, formtree.MustParseLocator("field_yoast_seo.widget.0.yoast_seo.snippet_analysis.#weight")); got != 2 {
		t.Fatalf("snippet weight mismatch: %d", got)
	}
}

func TestProjectSettings_LeavesTreeUntouched(t *testing.T) {
	tree := Tree{"#id": "node-page-form"}
	bag := ProjectSettings(tree)
	if bag.FormID != "node-page-form" {
		t.Fatalf("form id mismatch: %q", bag.FormID)
	}
	if len(tree) != 1 {
		t.Fatalf("tree modified: %v", tree)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Site = site.Static{SiteName: "Acme"}
	cfg.Locale = "es"
	cfg.RegistryFile = testsupport.WriteFile(t, dir, "registry.yaml", `
tokens:
  "[node:title]": title
`)
	cfg.TranslationsFile = testsupport.WriteFile(t, dir, "translations.yaml", `
es:
  /example-post: /entrada-de-ejemplo
`)
	cfg.AttachmentPath = "attached.drupalSettings.seo"
	cfg.Theme = config.Theme{
		Name:      "acme",
		Templates: map[string]string{"seo.overall_score": "overall_score"},
	}

	options, err := OptionsFromConfig(cfg, nil, nil)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	out, err := NewOrchestrator(options...).Process(context.Background(), Request{Tree: Tree{}})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	bag := formtree.MustParseLocator("attached.drupalSettings.seo")
	if got, _ := formtree.String(out, bag.Child("placeholder_text", "snippetCite")); got != "/entrada-de-ejemplo" {
		t.Fatalf("translation not applied: %q", got)
	}
	if got, _ := formtree.String(out, bag.Child("tokens", "[site:name]")); got != "Acme" {
		t.Fatalf("site token mismatch: %q", got)
	}
	if formtree.Has(out, bag.Child("tokens", "[current-page:title]")) {
		t.Fatalf("registry file tokens should replace the defaults")
	}
	score, _ := formtree.String(out, formtree.MustParseLocator("field_yoast_seo.widget.0.yoast_seo.focus_keyword.#suffix"))
	if !strings.Contains(score, "yoast-seo-overall-score--acme") {
		t.Fatalf("theme not applied to score markup: %q", score)
	}
}

func TestOptionsFromConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.RegistryFile = filepath.Join(dir, "missing.yaml")
	if _, err := OptionsFromConfig(cfg, nil, nil); err == nil {
		t.Fatalf("expected registry error")
	}

	cfg = config.Default()
	cfg.AttachmentPath = "attached..settings"
	if _, err := OptionsFromConfig(cfg, nil, nil); err == nil {
		t.Fatalf("expected attachment path error")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"snippet_editor.tpl", "overall_score.tpl"} {
		if _, err := fs.ReadFile(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}
