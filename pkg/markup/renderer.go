package markup

import (
	"context"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-seoform/pkg/i18n"
)

// Template names and the go-theme template keys that may override them.
const (
	TemplateSnippetEditor = "snippet_editor"
	TemplateOverallScore  = "overall_score"

	ThemeKeySnippetEditor = "seo.snippet_editor"
	ThemeKeyOverallScore  = "seo.overall_score"
)

// Target element ids consumed by the client-side analysis script.
const (
	SnippetWrapperID     = "yoast-snippet-wrapper"
	SnippetTargetID      = "yoast-snippet"
	SnippetOutputID      = "yoast-output"
	OverallScoreTargetID = "yoast-overall-score"
)

type localeKey struct{}

// ContextWithLocale scopes the label locale to a single render.
func ContextWithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, strings.TrimSpace(locale))
}

// LocaleFromContext returns the locale stored by ContextWithLocale.
func LocaleFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	locale, ok := ctx.Value(localeKey{}).(string)
	return locale, ok && locale != ""
}

// Renderer produces the widget fragments injected into the form.
type Renderer interface {
	SnippetEditor(ctx context.Context) (string, error)
	OverallScore(ctx context.Context) (string, error)
}

// RendererOption configures a TemplateRenderer.
type RendererOption func(*TemplateRenderer)

// WithEngine replaces the default embedded-template engine.
func WithEngine(engine *Engine) RendererOption {
	return func(r *TemplateRenderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTranslator translates widget labels.
func WithTranslator(t i18n.Translator) RendererOption {
	return func(r *TemplateRenderer) {
		r.translator = t
	}
}

// WithLocale sets the label locale used when the context carries none.
func WithLocale(locale string) RendererOption {
	return func(r *TemplateRenderer) {
		r.locale = strings.TrimSpace(locale)
	}
}

// WithTheme resolves a go-theme selection on every render. Manifest templates
// under the seo.* keys replace the built-in template names and manifest
// tokens are exposed to templates as theme.tokens.
func WithTheme(selector theme.ThemeSelector, name, variant string) RendererOption {
	return func(r *TemplateRenderer) {
		r.selector = selector
		r.themeName = strings.TrimSpace(name)
		r.themeVariant = strings.TrimSpace(variant)
	}
}

// TemplateRenderer implements Renderer with pongo2 templates.
type TemplateRenderer struct {
	engine       *Engine
	translator   i18n.Translator
	locale       string
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// NewTemplateRenderer builds a renderer backed by the embedded templates
// unless WithEngine supplies another engine.
func NewTemplateRenderer(options ...RendererOption) (*TemplateRenderer, error) {
	r := &TemplateRenderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := NewEngine()
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

// SnippetEditor implements Renderer.
func (r *TemplateRenderer) SnippetEditor(ctx context.Context) (string, error) {
	return r.render(ctx, TemplateSnippetEditor, ThemeKeySnippetEditor, map[string]any{
		"wrapper_target_id": SnippetWrapperID,
		"snippet_target_id": SnippetTargetID,
		"output_target_id":  SnippetOutputID,
		"labels": map[string]any{
			"snippet": r.t(ctx, "Snippet editor"),
			"help":    r.t(ctx, "This is a rendering of what this post might look like in Google's search results."),
		},
	})
}

// OverallScore implements Renderer.
func (r *TemplateRenderer) OverallScore(ctx context.Context) (string, error) {
	return r.render(ctx, TemplateOverallScore, ThemeKeyOverallScore, map[string]any{
		"overall_score_target_id": OverallScoreTargetID,
		"score":                   0,
		"labels": map[string]any{
			"score":         r.t(ctx, "SEO status"),
			"not_available": r.t(ctx, "Not available"),
		},
	})
}

func (r *TemplateRenderer) render(ctx context.Context, name, themeKey string, data map[string]any) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("markup: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	templateName := name
	themeData := map[string]any{}
	if r.selector != nil {
		selection, err := r.selector.Select(r.themeName, r.themeVariant)
		if err != nil {
			return "", fmt.Errorf("markup: select theme %q: %w", r.themeName, err)
		}
		if override, tokens := themeOverrides(selection, themeKey); selection != nil {
			if override != "" {
				templateName = override
			}
			themeData["name"] = selection.Theme
			themeData["variant"] = selection.Variant
			themeData["tokens"] = tokens
		}
	}
	data["theme"] = themeData

	out, err := r.engine.Render(templateName, data)
	if err != nil {
		return "", err
	}
	return Sanitize(out), nil
}

func (r *TemplateRenderer) t(ctx context.Context, source string) string {
	locale := r.locale
	if scoped, ok := LocaleFromContext(ctx); ok {
		locale = scoped
	}
	return i18n.T(r.translator, locale, source)
}

// themeOverrides merges manifest and variant values, variant winning.
func themeOverrides(selection *theme.Selection, key string) (string, map[string]string) {
	if selection == nil || selection.Manifest == nil {
		return "", nil
	}
	manifest := selection.Manifest
	templateName := manifest.Templates[key]
	tokens := make(map[string]string, len(manifest.Tokens))
	for name, value := range manifest.Tokens {
		tokens[name] = value
	}
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		if override := variant.Templates[key]; override != "" {
			templateName = override
		}
		for name, value := range variant.Tokens {
			tokens[name] = value
		}
	}
	return templateName, tokens
}
