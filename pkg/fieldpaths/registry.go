package fieldpaths

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-seoform/pkg/formtree"
)

var (
	// ErrMissingPath reports a role listed in fields without a registered path.
	ErrMissingPath = errors.New("fieldpaths: role has no path")
	// ErrUnknownRole reports a token that targets a role without a path.
	ErrUnknownRole = errors.New("fieldpaths: token targets unknown role")
	// ErrDuplicateField reports a role listed twice in fields.
	ErrDuplicateField = errors.New("fieldpaths: duplicate field")
	// ErrReservedRole reports a role that collides with a reserved field key.
	ErrReservedRole = errors.New("fieldpaths: role name is reserved")
)

// Field keys the settings projector fills from the metatag widget. Registry
// roles cannot use them.
const (
	FieldMetaTitle       = "meta_title"
	FieldMetaDescription = "meta_description"
)

// Reserved reports whether role collides with a reserved field key.
func Reserved(role Role) bool {
	return role == FieldMetaTitle || role == FieldMetaDescription
}

// Registry resolves roles to Locators and tokens to roles.
type Registry struct {
	paths  map[Role]formtree.Locator
	fields []Role
	tokens map[string]Role
}

// New validates cfg and parses every path once. Any inconsistency is
// reported here so a misconfigured registry never reaches request handling.
func New(cfg Config) (*Registry, error) {
	reg := &Registry{
		paths:  make(map[Role]formtree.Locator, len(cfg.Paths)),
		tokens: make(map[string]Role, len(cfg.Tokens)),
	}

	for name, raw := range cfg.Paths {
		role := Role(strings.TrimSpace(name))
		if role == "" {
			return nil, errors.New("fieldpaths: path defined for an empty role")
		}
		if Reserved(role) {
			return nil, fmt.Errorf("%w: %q", ErrReservedRole, role)
		}
		loc, err := formtree.ParseLocator(raw)
		if err != nil {
			return nil, fmt.Errorf("fieldpaths: role %q: %w", role, err)
		}
		reg.paths[role] = loc
	}

	seen := make(map[Role]struct{}, len(cfg.Fields))
	for _, name := range cfg.Fields {
		role := Role(strings.TrimSpace(name))
		if Reserved(role) {
			return nil, fmt.Errorf("%w: %q", ErrReservedRole, role)
		}
		if _, ok := reg.paths[role]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingPath, role)
		}
		if _, dup := seen[role]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, role)
		}
		seen[role] = struct{}{}
		reg.fields = append(reg.fields, role)
	}

	for token, name := range cfg.Tokens {
		key := strings.TrimSpace(token)
		if key == "" {
			return nil, errors.New("fieldpaths: empty token")
		}
		role := Role(strings.TrimSpace(name))
		if _, ok := reg.paths[role]; !ok {
			return nil, fmt.Errorf("%w: token %q -> %q", ErrUnknownRole, key, role)
		}
		reg.tokens[key] = role
	}

	return reg, nil
}

// MustNew panics when cfg is invalid.
func MustNew(cfg Config) *Registry {
	reg, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return reg
}

// Default returns a registry built from DefaultConfig.
func Default() *Registry {
	return MustNew(DefaultConfig())
}

// Path returns the locator registered for role.
func (r *Registry) Path(role Role) (formtree.Locator, bool) {
	if r == nil {
		return formtree.Locator{}, false
	}
	loc, ok := r.paths[role]
	return loc, ok
}

// Fields returns the roles projected into the settings "fields" section, in
// configuration order.
func (r *Registry) Fields() []Role {
	if r == nil {
		return nil
	}
	return append([]Role(nil), r.fields...)
}

// Included reports whether role is part of the fields list.
func (r *Registry) Included(role Role) bool {
	if r == nil {
		return false
	}
	for _, candidate := range r.fields {
		if candidate == role {
			return true
		}
	}
	return false
}

// Resolve returns the role a token refers to.
func (r *Registry) Resolve(token string) (Role, bool) {
	if r == nil {
		return "", false
	}
	role, ok := r.tokens[token]
	return role, ok
}

// Tokens returns every registered token, sorted.
func (r *Registry) Tokens() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.tokens))
	for token := range r.tokens {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Config returns the serialisable form of the registry.
func (r *Registry) Config() Config {
	cfg := Config{
		Paths:  make(map[string]string),
		Tokens: make(map[string]string),
	}
	if r == nil {
		return cfg
	}
	for role, loc := range r.paths {
		cfg.Paths[string(role)] = loc.String()
	}
	for _, role := range r.fields {
		cfg.Fields = append(cfg.Fields, string(role))
	}
	for token, role := range r.tokens {
		cfg.Tokens[token] = string(role)
	}
	return cfg
}
