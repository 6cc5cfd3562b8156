// Package formtree addresses values inside a hierarchical form description
// (the map-of-maps structure a host CMS builds for an edit form) through typed
// Locators, and expresses mutations as Patches that callers compose and apply
// explicitly.
package formtree
