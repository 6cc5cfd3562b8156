// Package seoform augments built content-editing form trees with SEO
// analysis widgets and the client-side settings bag that wires them to the
// form's title, body, summary and path fields.
//
// The root package is a thin facade over pkg/orchestrator for callers that
// want a single import.
package seoform

import (
	"context"

	"github.com/goliatone/go-seoform/pkg/formtree"
	"github.com/goliatone/go-seoform/pkg/orchestrator"
	"github.com/goliatone/go-seoform/pkg/settings"
)

// Tree aliases formtree.Tree.
type Tree = formtree.Tree

// Bag aliases settings.Bag.
type Bag = settings.Bag

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Process injects the SEO widgets and settings bag into tree using a
// one-off orchestrator. Reuse NewOrchestrator when processing many forms.
func Process(ctx context.Context, tree Tree, options ...orchestrator.Option) (Tree, error) {
	return orchestrator.New(options...).Process(ctx, Request{Tree: tree})
}

// ProjectSettings returns the settings bag for tree without modifying it.
func ProjectSettings(tree Tree, options ...orchestrator.Option) Bag {
	return orchestrator.New(options...).Settings(tree)
}
