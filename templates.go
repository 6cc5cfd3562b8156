package seoform

import (
	"io/fs"

	"github.com/goliatone/go-seoform/pkg/markup"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can copy
// them into a templates directory and customise them.
func EmbeddedTemplates() fs.FS {
	return markup.TemplatesFS()
}
