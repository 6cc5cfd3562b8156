package settings

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema describes the serialised bag as an OpenAPI 3 schema so client code
// and tests can validate payloads against one definition.
func Schema() *openapi3.Schema {
	stringMap := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())

	defaultText := openapi3.NewObjectSchema().
		WithProperty("meta_title", openapi3.NewStringSchema()).
		WithProperty("keyword", openapi3.NewStringSchema()).
		WithProperty("meta_description", openapi3.NewStringSchema()).
		WithProperty("body", openapi3.NewStringSchema()).
		WithProperty("path", openapi3.NewStringSchema())
	defaultText.Required = []string{"meta_title", "keyword", "meta_description", "body", "path"}

	placeholders := openapi3.NewObjectSchema().
		WithProperty("snippetTitle", openapi3.NewStringSchema()).
		WithProperty("snippetMeta", openapi3.NewStringSchema()).
		WithProperty("snippetCite", openapi3.NewStringSchema())
	placeholders.Required = []string{"snippetTitle", "snippetMeta", "snippetCite"}

	schema := openapi3.NewObjectSchema().
		WithProperty("fields", stringMap).
		WithProperty("tokens", stringMap).
		WithProperty("default_text", defaultText).
		WithProperty("placeholder_text", placeholders).
		WithProperty("seo_title_overwritten", openapi3.NewBoolSchema()).
		WithProperty("text_format", openapi3.NewStringSchema()).
		WithProperty("form_id", openapi3.NewStringSchema())
	schema.Required = []string{
		"fields", "tokens", "default_text", "placeholder_text",
		"seo_title_overwritten", "text_format", "form_id",
	}
	schema.Title = "SEO widget settings"
	return schema
}

// Validate checks the JSON form of bag against Schema.
func Validate(bag Bag) error {
	payload, err := json.Marshal(bag)
	if err != nil {
		return fmt.Errorf("settings: marshal bag: %w", err)
	}
	return ValidateJSON(payload)
}

// ValidateJSON checks a serialised bag against Schema.
func ValidateJSON(payload []byte) error {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("settings: decode bag: %w", err)
	}
	if err := Schema().VisitJSON(value); err != nil {
		return fmt.Errorf("settings: invalid bag: %w", err)
	}
	return nil
}
