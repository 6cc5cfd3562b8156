package seoform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-seoform/pkg/config"
	"github.com/goliatone/go-seoform/pkg/fieldpaths"
	"github.com/goliatone/go-seoform/pkg/formtree"
	"github.com/goliatone/go-seoform/pkg/i18n"
	"github.com/goliatone/go-seoform/pkg/markup"
	"github.com/goliatone/go-seoform/pkg/metrics"
	"github.com/goliatone/go-seoform/pkg/orchestrator"
)

// LoadRegistryFile reads a field path registry from a YAML or JSON file. An
// empty path yields the stock registry.
func LoadRegistryFile(path string) (*fieldpaths.Registry, error) {
	if strings.TrimSpace(path) == "" {
		return fieldpaths.Default(), nil
	}
	return fieldpaths.LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// LoadCatalogFile reads a translation catalog from a YAML or JSON file. An
// empty path yields a nil catalog, which falls back to source strings.
func LoadCatalogFile(path string) (*i18n.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	return i18n.LoadCatalogFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// OptionsFromConfig translates a loaded configuration into orchestrator
// options. recorder may be nil.
func OptionsFromConfig(cfg config.Config, logger *zap.Logger, recorder metrics.Recorder) ([]orchestrator.Option, error) {
	registry, err := LoadRegistryFile(cfg.RegistryFile)
	if err != nil {
		return nil, fmt.Errorf("seoform: registry: %w", err)
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithSite(cfg.Site),
		orchestrator.WithLocale(cfg.Locale),
		orchestrator.WithTemplateDir(cfg.TemplatesDir),
		orchestrator.WithLogger(logger),
		orchestrator.WithMetrics(recorder),
	}

	catalog, err := LoadCatalogFile(cfg.TranslationsFile)
	if err != nil {
		return nil, fmt.Errorf("seoform: translations: %w", err)
	}
	if catalog != nil {
		options = append(options, orchestrator.WithTranslator(catalog))
	}

	if strings.TrimSpace(cfg.AttachmentPath) != "" {
		loc, err := formtree.ParseLocator(cfg.AttachmentPath)
		if err != nil {
			return nil, fmt.Errorf("seoform: attachment path: %w", err)
		}
		options = append(options, orchestrator.WithAttachmentPath(loc))
	}

	if cfg.Theme.Enabled() {
		selector, err := markup.NewManifestSelector(cfg.Theme.Manifest())
		if err != nil {
			return nil, fmt.Errorf("seoform: theme: %w", err)
		}
		options = append(options, orchestrator.WithThemeSelector(selector, cfg.Theme.Name, cfg.Theme.Variant))
	}
	return options, nil
}
