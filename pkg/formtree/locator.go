package formtree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyLocator is returned when a locator carries no segments.
var ErrEmptyLocator = errors.New("formtree: locator is empty")

const separator = "."

// Locator identifies a value inside a Tree as an ordered list of keys. The
// zero value is an empty locator. Locators are immutable; Child returns a new
// value.
type Locator struct {
	segments []string
}

// NewLocator builds a locator from raw segments. Segments are kept verbatim,
// so keys with surrounding spaces stay addressable; empty segments are
// rejected.
func NewLocator(segments ...string) (Locator, error) {
	if len(segments) == 0 {
		return Locator{}, ErrEmptyLocator
	}
	out := make([]string, len(segments))
	for i, segment := range segments {
		if segment == "" {
			return Locator{}, fmt.Errorf("formtree: segment %d is empty", i)
		}
		out[i] = segment
	}
	return Locator{segments: out}, nil
}

// ParseLocator splits a dotted path such as "body.widget.0.#id" into a
// Locator.
func ParseLocator(path string) (Locator, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Locator{}, ErrEmptyLocator
	}
	loc, err := NewLocator(strings.Split(trimmed, separator)...)
	if err != nil {
		return Locator{}, fmt.Errorf("formtree: parse %q: %w", path, err)
	}
	return loc, nil
}

// MustParseLocator panics when path is invalid. Intended for static
// configuration evaluated at init time.
func MustParseLocator(path string) Locator {
	loc, err := ParseLocator(path)
	if err != nil {
		panic(err)
	}
	return loc
}

// Child returns a copy of l extended with the supplied segments. It panics on
// an empty segment; use ChildE for segments that come from configuration.
func (l Locator) Child(segments ...string) Locator {
	child, err := l.ChildE(segments...)
	if err != nil {
		panic(err)
	}
	return child
}

// ChildE is Child returning an error for empty segments instead of
// panicking. Segments are kept verbatim.
func (l Locator) ChildE(segments ...string) (Locator, error) {
	out := make([]string, 0, len(l.segments)+len(segments))
	out = append(out, l.segments...)
	for i, segment := range segments {
		if segment == "" {
			return Locator{}, fmt.Errorf("formtree: child segment %d of %q is empty", i, l.String())
		}
		out = append(out, segment)
	}
	return Locator{segments: out}, nil
}

// Segments returns a copy of the locator segments.
func (l Locator) Segments() []string {
	return append([]string(nil), l.segments...)
}

// Len reports the number of segments.
func (l Locator) Len() int {
	return len(l.segments)
}

// Empty reports whether the locator has no segments.
func (l Locator) Empty() bool {
	return len(l.segments) == 0
}

// Last returns the final segment, or "" for an empty locator.
func (l Locator) Last() string {
	if len(l.segments) == 0 {
		return ""
	}
	return l.segments[len(l.segments)-1]
}

// HasPrefix reports whether prefix addresses l or one of its ancestors.
func (l Locator) HasPrefix(prefix Locator) bool {
	if len(prefix.segments) > len(l.segments) {
		return false
	}
	for i, segment := range prefix.segments {
		if l.segments[i] != segment {
			return false
		}
	}
	return true
}

// Equal reports whether both locators address the same location.
func (l Locator) Equal(other Locator) bool {
	return len(l.segments) == len(other.segments) && l.HasPrefix(other)
}

// String renders the dotted form.
func (l Locator) String() string {
	return strings.Join(l.segments, separator)
}

// MarshalText implements encoding.TextMarshaler.
func (l Locator) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so locators can be read
// straight from JSON/YAML configuration.
func (l *Locator) UnmarshalText(text []byte) error {
	loc, err := ParseLocator(string(text))
	if err != nil {
		return err
	}
	*l = loc
	return nil
}
