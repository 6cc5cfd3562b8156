// Package orchestrator wires the field path registry, settings projector and
// markup injector into a single Process call over a form tree. Each stage
// produces a formtree.Patch; patches are composed in a fixed order and
// applied once, so stages never observe each other's writes.
package orchestrator
