package markup

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

const defaultExtension = ".tpl"

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	dir        string
	templates  fs.FS
	extension  string
	globals    map[string]any
	noEmbedded bool
}

// WithTemplateDir loads templates from dir before falling back to the
// embedded set.
func WithTemplateDir(dir string) EngineOption {
	return func(cfg *engineConfig) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// WithTemplateFS loads templates from fsys before falling back to the
// embedded set.
func WithTemplateFS(fsys fs.FS) EngineOption {
	return func(cfg *engineConfig) {
		cfg.templates = fsys
	}
}

// WithoutEmbedded disables the embedded fallback templates.
func WithoutEmbedded() EngineOption {
	return func(cfg *engineConfig) {
		cfg.noEmbedded = true
	}
}

// WithExtension overrides the template extension appended to bare names.
func WithExtension(ext string) EngineOption {
	return func(cfg *engineConfig) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(data map[string]any) EngineOption {
	return func(cfg *engineConfig) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders named pongo2 templates. Compiled templates are cached.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
}

// NewEngine builds an Engine. Loader precedence: directory, fs.FS, embedded.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{extension: defaultExtension}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.dir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("markup: template dir %s: %w", cfg.dir, err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if !cfg.noEmbedded {
		loaders = append(loaders, pongo2.NewFSLoader(TemplatesFS()))
	}
	if len(loaders) == 0 {
		return nil, errors.New("markup: no template source configured")
	}

	set := pongo2.NewSet("seoform", loaders...)
	if len(cfg.globals) > 0 {
		set.Globals = make(pongo2.Context, len(cfg.globals))
		set.Globals.Update(pongo2.Context(cfg.globals))
	}

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}, nil
}

// Render executes the named template with data.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("markup: engine is nil")
	}
	path := strings.TrimSpace(name)
	if path == "" {
		return "", errors.New("markup: template name is required")
	}
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("markup: execute template %q: %w", path, err)
	}
	return out, nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("markup: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}
