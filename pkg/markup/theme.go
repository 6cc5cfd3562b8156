package markup

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// ErrUnknownTheme is returned when a selection names an unregistered theme or
// variant.
var ErrUnknownTheme = errors.New("markup: unknown theme")

type manifestRegistry interface {
	Register(manifest *theme.Manifest) error
}

// ManifestSelector serves go-theme selections from in-process manifests.
// Manifests are validated through a go-theme registry on registration.
type ManifestSelector struct {
	mu        sync.RWMutex
	registry  manifestRegistry
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests; the first one becomes the
// fallback for empty theme names.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest. Names must be unique.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("markup: theme manifest is nil")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return errors.New("markup: theme manifest name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[name]; exists {
		return fmt.Errorf("markup: theme %q already registered", name)
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("markup: register theme %q: %w", name, err)
	}
	s.manifests[name] = manifest
	if s.fallback == "" {
		s.fallback = name
	}
	return nil
}

// Names lists the registered themes.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownTheme, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}
