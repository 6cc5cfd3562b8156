package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-seoform/pkg/fieldpaths"
	"github.com/goliatone/go-seoform/pkg/formtree"
	"github.com/goliatone/go-seoform/pkg/i18n"
	"github.com/goliatone/go-seoform/pkg/markup"
	"github.com/goliatone/go-seoform/pkg/metrics"
	"github.com/goliatone/go-seoform/pkg/settings"
	"github.com/goliatone/go-seoform/pkg/site"
)

// Widget names used in logs and metrics.
const (
	WidgetSnippetEditor = "snippet_editor"
	WidgetOverallScore  = "overall_score"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects the field path registry used by the default projector.
func WithRegistry(registry *fieldpaths.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithProjector injects a fully configured settings projector. Site,
// translator, locale and attachment options are ignored when set.
func WithProjector(projector *settings.Projector) Option {
	return func(o *Orchestrator) {
		o.projector = projector
	}
}

// WithInjector injects a fully configured markup injector.
func WithInjector(injector *markup.Injector) Option {
	return func(o *Orchestrator) {
		o.injector = injector
	}
}

// WithRenderer injects the widget renderer wrapped by the default injector.
func WithRenderer(renderer markup.Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithLogger injects a zap logger shared with the default collaborators.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics injects an instrumentation recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(o *Orchestrator) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithSkipMarkup disables widget injection; only the settings bag is attached.
func WithSkipMarkup(skip bool) Option {
	return func(o *Orchestrator) {
		o.skipMarkup = skip
	}
}

// WithSite supplies the site name and slogan provider.
func WithSite(provider site.Provider) Option {
	return func(o *Orchestrator) {
		o.site = provider
	}
}

// WithTranslator supplies the translator for placeholders and widget labels.
func WithTranslator(t i18n.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = t
	}
}

// WithLocale sets the locale used when a request omits one.
func WithLocale(locale string) Option {
	return func(o *Orchestrator) {
		o.locale = strings.TrimSpace(locale)
	}
}

// WithAttachmentPath overrides where the settings bag is written.
func WithAttachmentPath(loc formtree.Locator) Option {
	return func(o *Orchestrator) {
		o.attachment = loc
	}
}

// WithTemplateDir loads widget templates from dir before the embedded set.
func WithTemplateDir(dir string) Option {
	return func(o *Orchestrator) {
		o.templateDir = strings.TrimSpace(dir)
	}
}

// WithThemeSelector resolves widget template and token overrides from a
// go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithTransformers registers transformers that run against the tree before
// any patch is computed.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		if len(transformers) == 0 {
			return
		}
		o.transformers = append(o.transformers, transformers...)
	}
}

// Orchestrator augments form trees with the SEO widgets and settings bag.
// Missing collaborators are built from the stock registry and embedded
// templates, so New() alone yields a working pipeline.
type Orchestrator struct {
	registry      *fieldpaths.Registry
	projector     *settings.Projector
	injector      *markup.Injector
	renderer      markup.Renderer
	logger        *zap.Logger
	metrics       metrics.Recorder
	site          site.Provider
	translator    i18n.Translator
	locale        string
	attachment    formtree.Locator
	templateDir   string
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
	transformers  []Transformer
	skipMarkup    bool
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:  zap.NewNop(),
		metrics: metrics.Nop{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request carries one form tree through the pipeline.
type Request struct {
	// Tree is the built form. It is modified in place and also returned.
	Tree formtree.Tree

	// Locale selects placeholder and label translations. Empty uses the
	// orchestrator default.
	Locale string
}

// Process injects the snippet editor, the overall score and the settings bag
// into req.Tree, in that order. Widget render failures are logged and the
// widget is skipped; the settings bag is always attached.
func (o *Orchestrator) Process(ctx context.Context, req Request) (formtree.Tree, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Tree == nil {
		return nil, errors.New("orchestrator: form tree is required")
	}

	tree := req.Tree
	if err := o.applyTransformers(ctx, tree); err != nil {
		return nil, err
	}

	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = o.locale
	}

	var patches []formtree.Patch
	if !o.skipMarkup && o.injector != nil {
		renderCtx := ctx
		if locale != "" {
			renderCtx = markup.ContextWithLocale(ctx, locale)
		}
		if patch, ok := o.widgetPatch(WidgetSnippetEditor, func() (formtree.Patch, error) {
			return o.injector.SnippetEditorPatch(renderCtx, tree)
		}); ok {
			patches = append(patches, patch)
		}
		if patch, ok := o.widgetPatch(WidgetOverallScore, func() (formtree.Patch, error) {
			return o.injector.OverallScorePatch(renderCtx, tree)
		}); ok {
			patches = append(patches, patch)
		}
	}
	patches = append(patches, o.projector.PatchLocale(tree, locale))

	combined, err := formtree.Compose(patches...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: compose patches: %w", err)
	}
	if err := formtree.Apply(tree, combined); err != nil {
		return nil, fmt.Errorf("orchestrator: apply patches: %w", err)
	}
	return tree, nil
}

// Settings projects the settings bag without modifying tree.
func (o *Orchestrator) Settings(tree formtree.Tree) settings.Bag {
	return o.projector.Project(tree)
}

// Projector exposes the configured settings projector.
func (o *Orchestrator) Projector() *settings.Projector {
	return o.projector
}

func (o *Orchestrator) widgetPatch(widget string, build func() (formtree.Patch, error)) (formtree.Patch, bool) {
	patch, err := build()
	if err != nil {
		o.logger.Warn("seoform: widget markup skipped",
			zap.String("widget", widget),
			zap.Error(err),
		)
		o.metrics.ObserveMarkupFailure(widget)
		return nil, false
	}
	return patch, true
}

func (o *Orchestrator) applyTransformers(ctx context.Context, tree formtree.Tree) error {
	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		if err := transformer.Transform(ctx, tree); err != nil {
			return fmt.Errorf("orchestrator: transform tree: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = fieldpaths.Default()
	}
	if o.projector == nil {
		o.projector = settings.NewProjector(o.registry,
			settings.WithSite(o.site),
			settings.WithTranslator(o.translator),
			settings.WithLocale(o.locale),
			settings.WithLogger(o.logger),
			settings.WithMetrics(o.metrics),
			settings.WithAttachmentPath(o.attachment),
		)
	}
	if o.skipMarkup || o.injector != nil {
		return
	}
	if o.renderer == nil {
		renderer, err := o.defaultRenderer()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.renderer = renderer
	}
	injector, err := markup.NewInjector(o.renderer)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: injector: %w", err)
		return
	}
	o.injector = injector
}

func (o *Orchestrator) defaultRenderer() (*markup.TemplateRenderer, error) {
	var engineOptions []markup.EngineOption
	if o.templateDir != "" {
		engineOptions = append(engineOptions, markup.WithTemplateDir(o.templateDir))
	}
	engine, err := markup.NewEngine(engineOptions...)
	if err != nil {
		return nil, err
	}
	rendererOptions := []markup.RendererOption{
		markup.WithEngine(engine),
		markup.WithTranslator(o.translator),
		markup.WithLocale(o.locale),
	}
	if o.themeSelector != nil {
		rendererOptions = append(rendererOptions, markup.WithTheme(o.themeSelector, o.themeName, o.themeVariant))
	}
	return markup.NewTemplateRenderer(rendererOptions...)
}
