package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AttachmentPath != DefaultAttachmentPath {
		t.Fatalf("unexpected attachment path %q", cfg.AttachmentPath)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seoform.yaml")
	doc := `
site:
  name: Automated Tests for Real-Time SEO
  slogan: Ship it
locale: es
theme:
  name: acme
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Site.Name() != "Automated Tests for Real-Time SEO" || cfg.Site.Slogan() != "Ship it" {
		t.Fatalf("site not parsed: %+v", cfg.Site)
	}
	if cfg.Locale != "es" {
		t.Fatalf("locale mismatch: %s", cfg.Locale)
	}
	if cfg.DatabasePath != "seoform.db" {
		t.Fatalf("default database path lost: %s", cfg.DatabasePath)
	}
	if cfg.Theme.Name != "acme" {
		t.Fatalf("theme not parsed: %+v", cfg.Theme)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestTheme_Manifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seoform.yaml")
	doc := `
theme:
  name: acme
  variant: dark
  tokens:
    accent: teal
  templates:
    seo.overall_score: acme/score
  variants:
    dark:
      tokens:
        accent: navy
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Theme.Enabled() {
		t.Fatalf("expected theme enabled")
	}

	manifest := cfg.Theme.Manifest()
	if manifest.Name != "acme" || manifest.Version != "0.0.0" {
		t.Fatalf("unexpected manifest identity: %s %s", manifest.Name, manifest.Version)
	}
	if manifest.Templates["seo.overall_score"] != "acme/score" {
		t.Fatalf("templates not carried: %v", manifest.Templates)
	}
	if manifest.Variants["dark"].Tokens["accent"] != "navy" {
		t.Fatalf("variant tokens not carried: %v", manifest.Variants)
	}
	if (Theme{}).Enabled() {
		t.Fatalf("zero theme must be disabled")
	}
}
