package settings

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-seoform/pkg/fieldpaths"
	"github.com/goliatone/go-seoform/pkg/formtree"
	"github.com/goliatone/go-seoform/pkg/i18n"
	"github.com/goliatone/go-seoform/pkg/metrics"
	"github.com/goliatone/go-seoform/pkg/site"
)

// DefaultAttachmentPath is where Patch writes the bag unless overridden.
var DefaultAttachmentPath = formtree.MustParseLocator("attached.settings.yoast_seo")

// Option customises a Projector.
type Option func(*Projector)

// WithSite supplies the provider for the site name and slogan tokens.
func WithSite(provider site.Provider) Option {
	return func(p *Projector) {
		p.site = provider
	}
}

// WithTranslator supplies the translator for placeholder strings.
func WithTranslator(t i18n.Translator) Option {
	return func(p *Projector) {
		p.translator = t
	}
}

// WithLocale sets the locale used when callers do not pass one.
func WithLocale(locale string) Option {
	return func(p *Projector) {
		p.locale = strings.TrimSpace(locale)
	}
}

// WithLogger injects a zap logger. Unresolved lookups are logged at debug.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Projector) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics injects an instrumentation recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(p *Projector) {
		if recorder != nil {
			p.metrics = recorder
		}
	}
}

// WithLocations overrides the fixed sibling-widget locations. Empty locators
// and suffixes keep their DefaultLocations value.
func WithLocations(locations Locations) Option {
	return func(p *Projector) {
		p.locations = locations.withDefaults(DefaultLocations())
	}
}

// WithAttachmentPath overrides where Patch writes the bag.
func WithAttachmentPath(loc formtree.Locator) Option {
	return func(p *Projector) {
		if !loc.Empty() {
			p.attachment = loc
		}
	}
}

// Projector derives the settings bag from a built form tree. It only reads the
// tree; writes are expressed as a Patch so callers control ordering.
type Projector struct {
	registry   *fieldpaths.Registry
	site       site.Provider
	translator i18n.Translator
	locale     string
	logger     *zap.Logger
	metrics    metrics.Recorder
	locations  Locations
	attachment formtree.Locator
}

// NewProjector builds a Projector over registry. A nil registry uses
// fieldpaths.Default.
func NewProjector(registry *fieldpaths.Registry, options ...Option) *Projector {
	if registry == nil {
		registry = fieldpaths.Default()
	}
	p := &Projector{
		registry:   registry,
		site:       site.Static{},
		logger:     zap.NewNop(),
		metrics:    metrics.Nop{},
		locations:  DefaultLocations(),
		attachment: DefaultAttachmentPath,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.site == nil {
		p.site = site.Static{}
	}
	return p
}

// AttachmentPath reports where Patch writes the bag.
func (p *Projector) AttachmentPath() formtree.Locator {
	return p.attachment
}

// Project builds the bag using the projector's default locale.
func (p *Projector) Project(tree formtree.Tree) Bag {
	return p.ProjectLocale(tree, p.locale)
}

// ProjectLocale builds the bag for locale. Lookups that cannot be resolved
// degrade to empty values; the projection itself never fails.
func (p *Projector) ProjectLocale(tree formtree.Tree, locale string) Bag {
	loc := p.locations
	bag := Bag{
		Fields: make(map[string]string, len(p.registry.Fields())+2),
		Tokens: make(map[string]string),
	}

	for _, role := range p.registry.Fields() {
		path, _ := p.registry.Path(role)
		id, ok := formtree.String(tree, path.Child(loc.IDSuffix))
		if !ok || id == "" {
			p.unresolved(string(role), path)
		}
		bag.Fields[string(role)] = id
	}

	for _, token := range p.registry.Tokens() {
		role, _ := p.registry.Resolve(token)
		bag.Tokens[token] = string(role)
	}
	bag.Tokens[TokenSiteName] = p.site.Name()
	bag.Tokens[TokenSiteSlogan] = p.site.Slogan()

	metaTitle := scalarText(tree, loc.MetaTitleDefault)
	bag.DefaultText = DefaultText{
		MetaTitle:       metaTitle,
		Keyword:         scalarText(tree, loc.KeywordDefault),
		MetaDescription: scalarText(tree, loc.MetaDescDefault),
		Body:            p.bodyText(tree),
		Path:            p.pathText(tree),
	}

	bag.Fields[FieldMetaTitle] = p.elementID(tree, FieldMetaTitle, loc.MetaTitleID)
	bag.Fields[FieldMetaDescription] = p.elementID(tree, FieldMetaDescription, loc.MetaDescID)

	bag.PlaceholderText = PlaceholderText{
		SnippetTitle: i18n.T(p.translator, locale, PlaceholderSnippetTitle),
		SnippetMeta:  i18n.T(p.translator, locale, PlaceholderSnippetMeta),
		SnippetCite:  i18n.T(p.translator, locale, PlaceholderSnippetCite),
	}

	// Only the meta title counts as an override; keyword, description and body
	// defaults do not flip this flag.
	bag.SEOTitleOverwritten = metaTitle != ""
	bag.TextFormat, _ = formtree.String(tree, loc.TextFormat)
	bag.FormID, _ = formtree.String(tree, loc.FormID)

	p.metrics.ObserveProjection(bag.FormID)
	return bag
}

// Patch returns the write that attaches the bag to tree.
func (p *Projector) Patch(tree formtree.Tree) formtree.Patch {
	return p.PatchLocale(tree, p.locale)
}

// PatchLocale is Patch for an explicit locale.
func (p *Projector) PatchLocale(tree formtree.Tree, locale string) formtree.Patch {
	bag := p.ProjectLocale(tree, locale)
	return formtree.Patch{}.Set(p.attachment, bag.Map())
}

// Apply projects the bag and writes it into tree, returning the same tree.
func (p *Projector) Apply(tree formtree.Tree) (formtree.Tree, error) {
	if tree == nil {
		return nil, formtree.ErrNilTree
	}
	if err := formtree.Apply(tree, p.Patch(tree)); err != nil {
		return nil, err
	}
	return tree, nil
}

func (p *Projector) elementID(tree formtree.Tree, name string, path formtree.Locator) string {
	id, ok := formtree.String(tree, path)
	if !ok || id == "" {
		p.unresolved(name, path)
		return ""
	}
	return id
}

func (p *Projector) bodyText(tree formtree.Tree) string {
	if text := scalarText(tree, p.locations.BodyDefault); text != "" {
		return text
	}
	return p.elementText(tree, p.locations.BodyValue)
}

func (p *Projector) pathText(tree formtree.Tree) string {
	if text := p.elementText(tree, p.locations.PathAlias); text != "" {
		return text
	}
	return scalarText(tree, p.locations.PathSource)
}

// elementText reads a value that is either a plain scalar or a form element
// carrying #default_value / #value.
func (p *Projector) elementText(tree formtree.Tree, path formtree.Locator) string {
	value, ok := formtree.Get(tree, path)
	if !ok {
		return ""
	}
	if _, isMap := value.(map[string]any); !isMap {
		return nonEmptyText(value)
	}
	if text := scalarText(tree, path.Child(p.locations.DefaultValueSuffix)); text != "" {
		return text
	}
	return scalarText(tree, path.Child(p.locations.ValueSuffix))
}

func (p *Projector) unresolved(name string, path formtree.Locator) {
	p.logger.Debug("seoform: field unresolved",
		zap.String("field", name),
		zap.String("path", path.String()))
	p.metrics.ObserveUnresolved(name)
}

func scalarText(tree formtree.Tree, path formtree.Locator) string {
	value, ok := formtree.Get(tree, path)
	if !ok {
		return ""
	}
	return nonEmptyText(value)
}

func nonEmptyText(value any) string {
	if formtree.IsEmpty(value) {
		return ""
	}
	text, _ := formtree.Stringify(value)
	return text
}
