package formtree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() Tree {
	return Tree{
		"#id": "node-article-form",
		"body": map[string]any{
			"#weight": 3,
			"widget": map[string]any{
				"0": map[string]any{
					"#format": "basic_html",
					"value": map[string]any{
						"#id": "edit-body-0-value",
					},
				},
			},
		},
		"tags": []any{"a", "b"},
	}
}

func TestGet(t *testing.T) {
	tree := sampleTree()

	got, ok := Get(tree, MustParseLocator("body.widget.0.value.#id"))
	if !ok || got != "edit-body-0-value" {
		t.Fatalf("unexpected lookup: %v %v", got, ok)
	}

	got, ok = Get(tree, MustParseLocator("tags.1"))
	if !ok || got != "b" {
		t.Fatalf("slice lookup failed: %v %v", got, ok)
	}
}

func TestGet_MissingIntermediateSegment(t *testing.T) {
	tree := sampleTree()

	cases := []string{
		"path.widget.0.alias",
		"body.widget.1.value",
		"body.#weight.value",
		"tags.7",
		"tags.x",
	}
	for _, path := range cases {
		if value, ok := Get(tree, MustParseLocator(path)); ok {
			t.Fatalf("%s: expected not found, got %v", path, value)
		}
	}

	if _, ok := Get(nil, MustParseLocator("a")); ok {
		t.Fatalf("nil tree must report not found")
	}
}

func TestSet_RoundTrip(t *testing.T) {
	tree := sampleTree()
	loc := MustParseLocator("field_yoast_seo.widget.0.yoast_seo.snippet_analysis")
	value := map[string]any{"#markup": "<div></div>", "#weight": 4}

	if err := Set(tree, loc, value); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := Get(tree, loc)
	if !ok {
		t.Fatalf("value not found after set")
	}
	if diff := cmp.Diff(value, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_PreservesSiblings(t *testing.T) {
	tree := sampleTree()
	if err := Set(tree, MustParseLocator("body.widget.0.summary.#id"), "edit-body-0-summary"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if got, _ := String(tree, MustParseLocator("body.widget.0.value.#id")); got != "edit-body-0-value" {
		t.Fatalf("sibling lost: %q", got)
	}
	if got, _ := String(tree, MustParseLocator("body.widget.0.#format")); got != "basic_html" {
		t.Fatalf("sibling lost: %q", got)
	}
	if got, _ := String(tree, MustParseLocator("body.widget.0.summary.#id")); got != "edit-body-0-summary" {
		t.Fatalf("value not written: %q", got)
	}
}

func TestSet_OverwritesScalarsAndExtendsSlices(t *testing.T) {
	tree := sampleTree()

	if err := Set(tree, MustParseLocator("body.#weight.nested"), true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, ok := Get(tree, MustParseLocator("body.#weight.nested")); !ok || got != true {
		t.Fatalf("scalar intermediate not replaced: %v %v", got, ok)
	}

	if err := Set(tree, MustParseLocator("tags.2"), "c"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if diff := cmp.Diff([]any{"a", "b", "c"}, tree["tags"]); diff != "" {
		t.Fatalf("slice mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_SparseIndexPastEnd(t *testing.T) {
	tree := sampleTree()

	if err := Set(tree, MustParseLocator("tags.3"), "d"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, ok := Get(tree, MustParseLocator("tags.2")); ok {
		t.Fatalf("unwritten index reported present: %v", got)
	}
	if got, ok := String(tree, MustParseLocator("tags.3")); !ok || got != "d" {
		t.Fatalf("tags.3 mismatch: %q %v", got, ok)
	}
	want := map[string]any{"0": "a", "1": "b", "3": "d"}
	if diff := cmp.Diff(want, tree["tags"]); diff != "" {
		t.Fatalf("sparse tags mismatch (-want +got):\n%s", diff)
	}

	widgets := Tree{"widget": []any{map[string]any{"value": "x"}}}
	if err := Set(widgets, MustParseLocator("widget.5.value"), "y"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := Get(widgets, MustParseLocator("widget.3")); ok {
		t.Fatalf("widget.3 should be absent")
	}
	if got, _ := String(widgets, MustParseLocator("widget.0.value")); got != "x" {
		t.Fatalf("existing element lost: %q", got)
	}
	if got, _ := String(widgets, MustParseLocator("widget.5.value")); got != "y" {
		t.Fatalf("sparse element mismatch: %q", got)
	}
}

func TestSet_LargeIndexStaysSmall(t *testing.T) {
	tree := Tree{"w": []any{}}
	if err := Set(tree, MustParseLocator("w.20000000"), 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	node, ok := tree["w"].(map[string]any)
	if !ok || len(node) != 1 {
		t.Fatalf("expected a single-key map, got %T with %v", tree["w"], tree["w"])
	}
}

func TestSet_Errors(t *testing.T) {
	if err := Set(nil, MustParseLocator("a"), 1); !errors.Is(err, ErrNilTree) {
		t.Fatalf("expected ErrNilTree, got %v", err)
	}
	if err := Set(Tree{}, Locator{}, 1); !errors.Is(err, ErrEmptyLocator) {
		t.Fatalf("expected ErrEmptyLocator, got %v", err)
	}
}

func TestIntAndString(t *testing.T) {
	tree := Tree{"a": float64(7), "b": "12", "c": map[string]any{}}

	if n, ok := Int(tree, MustParseLocator("a")); !ok || n != 7 {
		t.Fatalf("float int: %d %v", n, ok)
	}
	if n, ok := Int(tree, MustParseLocator("b")); !ok || n != 12 {
		t.Fatalf("string int: %d %v", n, ok)
	}
	if s, ok := String(tree, MustParseLocator("a")); !ok || s != "7" {
		t.Fatalf("float string: %q %v", s, ok)
	}
	if _, ok := String(tree, MustParseLocator("c")); ok {
		t.Fatalf("containers have no string form")
	}
}

func TestIsEmpty(t *testing.T) {
	empties := []any{nil, "", "0", false, 0, 0.0, map[string]any{}, []any{}}
	for _, value := range empties {
		if !IsEmpty(value) {
			t.Fatalf("expected %#v to be empty", value)
		}
	}
	values := []any{"kittens", "0.0", true, 1, 0.5, map[string]any{"a": 1}}
	for _, value := range values {
		if IsEmpty(value) {
			t.Fatalf("expected %#v to be non-empty", value)
		}
	}
}

func TestClone(t *testing.T) {
	tree := sampleTree()
	copied := Clone(tree)
	if err := Set(copied, MustParseLocator("body.widget.0.value.#id"), "changed"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := String(tree, MustParseLocator("body.widget.0.value.#id")); got != "edit-body-0-value" {
		t.Fatalf("clone shares nested maps: %q", got)
	}
}

func TestFloat(t *testing.T) {
	tree := Tree{"a": 2.5, "b": "1.25", "c": 3, "d": "heavy"}
	for path, want := range map[string]float64{"a": 2.5, "b": 1.25, "c": 3} {
		if got, ok := Float(tree, MustParseLocator(path)); !ok || got != want {
			t.Fatalf("%s: got %v %v, want %v", path, got, ok, want)
		}
	}
	if _, ok := Float(tree, MustParseLocator("d")); ok {
		t.Fatalf("non-numeric string should not convert")
	}
}
