package settings

import "github.com/goliatone/go-seoform/pkg/fieldpaths"

// Placeholder source strings. They double as translation keys.
const (
	PlaceholderSnippetTitle = "Please click here to alter your page meta title"
	PlaceholderSnippetMeta  = "Please click here and alter your page meta description."
	PlaceholderSnippetCite  = "/example-post"
)

// Site tokens added on top of the registry tokens.
const (
	TokenSiteName   = "[site:name]"
	TokenSiteSlogan = "[site:slogan]"
)

// Extra keys in Bag.Fields for the metatag widgets. The registry reserves them.
const (
	FieldMetaTitle       = fieldpaths.FieldMetaTitle
	FieldMetaDescription = fieldpaths.FieldMetaDescription
)

// Bag is the client-side configuration for the SEO widgets.
type Bag struct {
	Fields              map[string]string `json:"fields"`
	Tokens              map[string]string `json:"tokens"`
	DefaultText         DefaultText       `json:"default_text"`
	PlaceholderText     PlaceholderText   `json:"placeholder_text"`
	SEOTitleOverwritten bool              `json:"seo_title_overwritten"`
	TextFormat          string            `json:"text_format"`
	FormID              string            `json:"form_id"`
}

// DefaultText carries the current values of the fields the analysis starts
// from. Empty strings mean "no default".
type DefaultText struct {
	MetaTitle       string `json:"meta_title"`
	Keyword         string `json:"keyword"`
	MetaDescription string `json:"meta_description"`
	Body            string `json:"body"`
	Path            string `json:"path"`
}

// PlaceholderText holds the translated snippet editor placeholders.
type PlaceholderText struct {
	SnippetTitle string `json:"snippetTitle"`
	SnippetMeta  string `json:"snippetMeta"`
	SnippetCite  string `json:"snippetCite"`
}

// Map converts the bag to the map form stored in a form tree, using the JSON
// key names.
func (b Bag) Map() map[string]any {
	return map[string]any{
		"fields": stringMap(b.Fields),
		"tokens": stringMap(b.Tokens),
		"default_text": map[string]any{
			"meta_title":       b.DefaultText.MetaTitle,
			"keyword":          b.DefaultText.Keyword,
			"meta_description": b.DefaultText.MetaDescription,
			"body":             b.DefaultText.Body,
			"path":             b.DefaultText.Path,
		},
		"placeholder_text": map[string]any{
			"snippetTitle": b.PlaceholderText.SnippetTitle,
			"snippetMeta":  b.PlaceholderText.SnippetMeta,
			"snippetCite":  b.PlaceholderText.SnippetCite,
		},
		"seo_title_overwritten": b.SEOTitleOverwritten,
		"text_format":           b.TextFormat,
		"form_id":               b.FormID,
	}
}

func stringMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
