package i18n

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestT_FallsBackToSource(t *testing.T) {
	if got := T(nil, "fr", "/example-post"); got != "/example-post" {
		t.Fatalf("expected source fallback, got %q", got)
	}

	catalog := NewCatalog(nil)
	if got := T(catalog, "fr", "Hello %s", "world"); got != "Hello world" {
		t.Fatalf("expected formatted source fallback, got %q", got)
	}
}

func TestCatalog_LocaleChain(t *testing.T) {
	catalog := NewCatalog(map[string]map[string]string{
		"pt": {"/example-post": "/exemplo-de-post"},
	})

	got, err := catalog.Translate("pt_BR", "/example-post")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "/exemplo-de-post" {
		t.Fatalf("unexpected translation %q", got)
	}

	if _, err := catalog.Translate("de", "/example-post"); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestTWithFallback_CustomHandler(t *testing.T) {
	var gotErr error
	handler := func(_ string, key string, _ []any, err error) string {
		gotErr = err
		return "[" + key + "]"
	}
	if got := TWithFallback(nil, handler, "en", "key"); got != "[key]" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if !errors.Is(gotErr, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestLoadCatalogFS_YAML(t *testing.T) {
	fsys := fstest.MapFS{
		"translations.yaml": &fstest.MapFile{Data: []byte(`
es:
  "Please click here to alter your page meta title": "Haga clic aquí para modificar el título meta"
`)},
	}
	catalog, err := LoadCatalogFS(fsys, "translations.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := T(catalog, "es", "Please click here to alter your page meta title")
	if got != "Haga clic aquí para modificar el título meta" {
		t.Fatalf("unexpected translation %q", got)
	}
}
