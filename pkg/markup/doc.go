// Package markup renders the SEO widget fragments (snippet editor and overall
// score) and expresses their placement in a form tree as formtree Patches.
//
// Fragments come from pongo2 templates, embedded by default, optionally
// overridden from a directory or by the active go-theme manifest. Output is
// passed through a bluemonday policy limited to the widget vocabulary.
package markup
