// Package fieldpaths holds the static registry that maps logical field roles
// (title, body, focus keyword, ...) to Locators inside a form tree, and
// placeholder tokens to those roles. A Registry is validated once at
// construction and is read-only afterwards.
package fieldpaths
