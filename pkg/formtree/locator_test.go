package formtree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLocator(t *testing.T) {
	loc, err := ParseLocator("field_yoast_seo.widget.0.yoast_seo.focus_keyword")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"field_yoast_seo", "widget", "0", "yoast_seo", "focus_keyword"}
	if diff := cmp.Diff(want, loc.Segments()); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	if loc.String() != "field_yoast_seo.widget.0.yoast_seo.focus_keyword" {
		t.Fatalf("unexpected string form: %s", loc.String())
	}
}

func TestParseLocator_Invalid(t *testing.T) {
	if _, err := ParseLocator("  "); !errors.Is(err, ErrEmptyLocator) {
		t.Fatalf("expected ErrEmptyLocator, got %v", err)
	}
	if _, err := ParseLocator("body..value"); err == nil {
		t.Fatalf("expected error for empty segment")
	}
}

func TestLocator_ChildDoesNotAlias(t *testing.T) {
	base := MustParseLocator("title.widget.0")
	id := base.Child("#id")
	value := base.Child("value")

	if id.String() != "title.widget.0.#id" {
		t.Fatalf("child mismatch: %s", id.String())
	}
	if value.String() != "title.widget.0.value" {
		t.Fatalf("child mismatch: %s", value.String())
	}
	if base.Len() != 3 {
		t.Fatalf("base mutated: %s", base.String())
	}
}

func TestLocator_HasPrefix(t *testing.T) {
	parent := MustParseLocator("a.b")
	if !MustParseLocator("a.b.c").HasPrefix(parent) {
		t.Fatalf("expected a.b.c to have prefix a.b")
	}
	if MustParseLocator("a.bc").HasPrefix(parent) {
		t.Fatalf("a.bc must not match a.b")
	}
	if !parent.Equal(MustParseLocator("a.b")) {
		t.Fatalf("expected equal locators")
	}
}

func TestLocator_UnmarshalText(t *testing.T) {
	var loc Locator
	if err := loc.UnmarshalText([]byte("path.widget.0.alias")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loc.Last() != "alias" {
		t.Fatalf("unexpected last segment: %s", loc.Last())
	}
}

func TestLocator_KeepsSegmentsVerbatim(t *testing.T) {
	loc, err := NewLocator("labels", " padded key ")
	if err != nil {
		t.Fatalf("new locator: %v", err)
	}
	tree := Tree{"labels": map[string]any{" padded key ": "x", "padded key": "y"}}
	if got, _ := String(tree, loc); got != "x" {
		t.Fatalf("expected the padded key, got %q", got)
	}
	if _, err := NewLocator("a", ""); err == nil {
		t.Fatalf("expected error for empty segment")
	}
}

func TestLocator_ChildRejectsEmptySegment(t *testing.T) {
	base := MustParseLocator("title.widget.0")
	if _, err := base.ChildE("value", ""); err == nil {
		t.Fatalf("expected error for empty child segment")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Child to panic on an empty segment")
		}
	}()
	_ = base.Child("")
}
