package settings

import "github.com/goliatone/go-seoform/pkg/formtree"

// Locations are the fixed form locations owned by sibling widgets (metatag,
// text_with_summary, path). They are not part of the field path registry and
// depend on those widgets' internal layout.
type Locations struct {
	FormID             formtree.Locator
	MetaTitleDefault   formtree.Locator
	MetaTitleID        formtree.Locator
	MetaDescDefault    formtree.Locator
	MetaDescID         formtree.Locator
	KeywordDefault     formtree.Locator
	BodyDefault        formtree.Locator
	BodyValue          formtree.Locator
	TextFormat         formtree.Locator
	PathAlias          formtree.Locator
	PathSource         formtree.Locator
	IDSuffix           string
	DefaultValueSuffix string
	ValueSuffix        string
}

// DefaultLocations matches the stock node edit form.
func DefaultLocations() Locations {
	return Locations{
		FormID:             formtree.MustParseLocator("#id"),
		MetaTitleDefault:   formtree.MustParseLocator("field_meta_tags.widget.0.basic.title.#default_value"),
		MetaTitleID:        formtree.MustParseLocator("field_meta_tags.widget.0.basic.title.#id"),
		MetaDescDefault:    formtree.MustParseLocator("field_meta_tags.widget.0.basic.description.#default_value"),
		MetaDescID:         formtree.MustParseLocator("field_meta_tags.widget.0.basic.description.#id"),
		KeywordDefault:     formtree.MustParseLocator("field_yoast_seo.widget.0.yoast_seo.focus_keyword.#default_value"),
		BodyDefault:        formtree.MustParseLocator("body.widget.0.#default_value"),
		BodyValue:          formtree.MustParseLocator("body.widget.0.value"),
		TextFormat:         formtree.MustParseLocator("body.widget.0.#format"),
		PathAlias:          formtree.MustParseLocator("path.widget.0.alias"),
		PathSource:         formtree.MustParseLocator("path.widget.0.source.#value"),
		IDSuffix:           "#id",
		DefaultValueSuffix: "#default_value",
		ValueSuffix:        "#value",
	}
}

func (l Locations) withDefaults(def Locations) Locations {
	for _, pair := range []struct{ dst, src *formtree.Locator }{
		{&l.FormID, &def.FormID},
		{&l.MetaTitleDefault, &def.MetaTitleDefault},
		{&l.MetaTitleID, &def.MetaTitleID},
		{&l.MetaDescDefault, &def.MetaDescDefault},
		{&l.MetaDescID, &def.MetaDescID},
		{&l.KeywordDefault, &def.KeywordDefault},
		{&l.BodyDefault, &def.BodyDefault},
		{&l.BodyValue, &def.BodyValue},
		{&l.TextFormat, &def.TextFormat},
		{&l.PathAlias, &def.PathAlias},
		{&l.PathSource, &def.PathSource},
	} {
		if pair.dst.Empty() {
			*pair.dst = *pair.src
		}
	}
	for _, pair := range []struct{ dst, src *string }{
		{&l.IDSuffix, &def.IDSuffix},
		{&l.DefaultValueSuffix, &def.DefaultValueSuffix},
		{&l.ValueSuffix, &def.ValueSuffix},
	} {
		if *pair.dst == "" {
			*pair.dst = *pair.src
		}
	}
	return l
}
