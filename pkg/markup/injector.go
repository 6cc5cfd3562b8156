package markup

import (
	"context"
	"errors"
	"math"

	"github.com/goliatone/go-seoform/pkg/formtree"
)

// Default widget locations inside the form tree.
var (
	DefaultSnippetPath    = formtree.MustParseLocator("field_yoast_seo.widget.0.yoast_seo.snippet_analysis")
	DefaultScorePath      = formtree.MustParseLocator("field_yoast_seo.widget.0.yoast_seo.focus_keyword.#suffix")
	DefaultBodyWeightPath = formtree.MustParseLocator("body.#weight")
)

// InjectorOption configures an Injector.
type InjectorOption func(*Injector)

// WithSnippetPath overrides where the snippet editor element is written.
func WithSnippetPath(loc formtree.Locator) InjectorOption {
	return func(i *Injector) {
		if !loc.Empty() {
			i.snippetPath = loc
		}
	}
}

// WithScorePath overrides where the overall score markup is written.
func WithScorePath(loc formtree.Locator) InjectorOption {
	return func(i *Injector) {
		if !loc.Empty() {
			i.scorePath = loc
		}
	}
}

// WithBodyWeightPath overrides the element whose weight positions the snippet
// editor.
func WithBodyWeightPath(loc formtree.Locator) InjectorOption {
	return func(i *Injector) {
		if !loc.Empty() {
			i.weightPath = loc
		}
	}
}

// Injector turns rendered widgets into tree patches. It never writes the tree
// itself.
type Injector struct {
	renderer    Renderer
	snippetPath formtree.Locator
	scorePath   formtree.Locator
	weightPath  formtree.Locator
}

// NewInjector builds an Injector around renderer.
func NewInjector(renderer Renderer, options ...InjectorOption) (*Injector, error) {
	if renderer == nil {
		return nil, errors.New("markup: renderer is required")
	}
	i := &Injector{
		renderer:    renderer,
		snippetPath: DefaultSnippetPath,
		scorePath:   DefaultScorePath,
		weightPath:  DefaultBodyWeightPath,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(i)
	}
	return i, nil
}

// SnippetEditorPatch places the snippet editor directly after the body
// element. A missing or non-numeric body weight counts as zero.
func (i *Injector) SnippetEditorPatch(ctx context.Context, tree formtree.Tree) (formtree.Patch, error) {
	html, err := i.renderer.SnippetEditor(ctx)
	if err != nil {
		return nil, err
	}
	element := map[string]any{
		"#weight": i.nextWeight(tree),
		"#markup": html,
	}
	return formtree.Patch{}.Set(i.snippetPath, element), nil
}

// nextWeight places the snippet right after the body. Integer weights stay
// ints; fractional weights stay floats.
func (i *Injector) nextWeight(tree formtree.Tree) any {
	if weight, ok := formtree.Float(tree, i.weightPath); ok && weight != math.Trunc(weight) {
		return weight + 1
	}
	weight, _ := formtree.Int(tree, i.weightPath)
	return weight + 1
}

// OverallScorePatch attaches the score markup as the focus keyword suffix.
func (i *Injector) OverallScorePatch(ctx context.Context, tree formtree.Tree) (formtree.Patch, error) {
	html, err := i.renderer.OverallScore(ctx)
	if err != nil {
		return nil, err
	}
	return formtree.Patch{}.Set(i.scorePath, html), nil
}
