package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog is an in-memory Translator keyed by locale then source string.
// Lookups fall back from "pt-BR" to "pt" before giving up.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

// NewCatalog creates a catalog seeded with messages (may be nil).
func NewCatalog(messages map[string]map[string]string) *Catalog {
	c := &Catalog{messages: make(map[string]map[string]string)}
	for locale, entries := range messages {
		c.Add(locale, entries)
	}
	return c
}

// Add merges entries for locale; later calls win on duplicate keys.
func (c *Catalog) Add(locale string, entries map[string]string) {
	key := normalizeLocale(locale)
	if key == "" || len(entries) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.messages[key]
	if !ok {
		bucket = make(map[string]string, len(entries))
		c.messages[key] = bucket
	}
	for source, translated := range entries {
		bucket[source] = translated
	}
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeChain(locale) {
		if msg, ok := c.messages[candidate][key]; ok && strings.TrimSpace(msg) != "" {
			return format(msg, args), nil
		}
	}
	return "", fmt.Errorf("%w: %q (%s)", ErrMissingKey, key, locale)
}

// Locales lists the locales known to the catalog.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	return out
}

// LoadCatalogFS reads a JSON or YAML document shaped as
// `{locale: {source: translation}}`.
func LoadCatalogFS(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", name, err)
	}
	var doc map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = nil
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: invalid JSON or YAML", name)
		}
	}
	return NewCatalog(doc), nil
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

func localeChain(locale string) []string {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return nil
	}
	chain := []string{normalized}
	if idx := strings.Index(normalized, "-"); idx > 0 {
		chain = append(chain, normalized[:idx])
	}
	return chain
}
