// Package config loads the YAML configuration shared by the seoform CLI and
// embedding applications.
package config

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-seoform/pkg/site"
)

// DefaultAttachmentPath is where the settings bag is written in the form tree.
const DefaultAttachmentPath = "attached.settings.yoast_seo"

// Config groups every tunable of the plugin.
type Config struct {
	Site site.Static `yaml:"site"`
	// Locale selects the translation used for placeholder and widget text.
	Locale string `yaml:"locale"`
	// RegistryFile overrides the built-in field path registry.
	RegistryFile string `yaml:"registry_file"`
	// TranslationsFile points at a `{locale: {source: translation}}` catalog.
	TranslationsFile string `yaml:"translations_file"`
	// TemplatesDir overrides the embedded widget templates.
	TemplatesDir string `yaml:"templates_dir"`
	// AttachmentPath is the dotted location of the settings bag.
	AttachmentPath string `yaml:"attachment_path"`
	Theme          Theme  `yaml:"theme"`
	// DatabasePath is the SQLite file backing field provisioning.
	DatabasePath string `yaml:"database_path"`
	LogLevel     string `yaml:"log_level"`
}

// Theme selects a go-theme manifest for widget markup. When Templates or
// Tokens are present the manifest is defined inline.
type Theme struct {
	Name      string                  `yaml:"name"`
	Variant   string                  `yaml:"variant"`
	Version   string                  `yaml:"version"`
	Tokens    map[string]string       `yaml:"tokens"`
	Templates map[string]string       `yaml:"templates"`
	Variants  map[string]ThemeVariant `yaml:"variants"`
}

// ThemeVariant overrides tokens and templates of the base theme.
type ThemeVariant struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
}

// Enabled reports whether a theme name is configured.
func (t Theme) Enabled() bool {
	return strings.TrimSpace(t.Name) != ""
}

// Manifest converts the inline definition into a go-theme manifest.
func (t Theme) Manifest() *theme.Manifest {
	version := strings.TrimSpace(t.Version)
	if version == "" {
		version = "0.0.0"
	}
	manifest := &theme.Manifest{
		Name:      strings.TrimSpace(t.Name),
		Version:   version,
		Tokens:    t.Tokens,
		Templates: t.Templates,
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, variant := range t.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
			}
		}
	}
	return manifest
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Locale:         "en",
		AttachmentPath: DefaultAttachmentPath,
		DatabasePath:   "seoform.db",
		LogLevel:       "info",
	}
}

// Load reads path and overlays it on Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.AttachmentPath) == "" {
		cfg.AttachmentPath = DefaultAttachmentPath
	}
	return cfg, nil
}
