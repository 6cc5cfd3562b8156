package fields

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	manager, err := NewManager(store)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager, store
}

func TestManager_AttachCreatesStorageFieldAndDisplays(t *testing.T) {
	ctx := context.Background()
	manager, store := newTestManager(t)

	result, err := manager.Attach(ctx, "node", "article", DefaultDefinition())
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if diff := cmp.Diff(AttachResult{StorageCreated: true, FieldCreated: true}, result); diff != "" {
		t.Fatalf("attach result mismatch (-want +got):\n%s", diff)
	}

	storage, err := store.Storage(ctx, "node", DefaultFieldName)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	wantStorage := StorageConfig{EntityType: "node", FieldName: DefaultFieldName, Type: DefaultStorageType, Translatable: true, Cardinality: 1}
	if diff := cmp.Diff(wantStorage, storage, cmpopts.IgnoreFields(StorageConfig{}, "UUID")); diff != "" {
		t.Fatalf("storage mismatch (-want +got):\n%s", diff)
	}
	if storage.UUID == "" {
		t.Fatalf("expected storage uuid to be assigned")
	}

	field, err := store.Field(ctx, "node", "article", DefaultFieldName)
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if field.Label != DefaultFieldLabel || !field.Translatable {
		t.Fatalf("unexpected field config: %+v", field)
	}

	for _, key := range []DisplayKey{FormDisplay("node", "article"), ViewDisplay("node", "article")} {
		display, err := store.Display(ctx, key)
		if err != nil {
			t.Fatalf("%s display: %v", key.Kind, err)
		}
		if _, ok := display.Component(DefaultFieldName); !ok {
			t.Fatalf("%s display missing component", key.Kind)
		}
	}
}

func TestManager_AttachIsIdempotent(t *testing.T) {
	ctx := context.Background()
	manager, store := newTestManager(t)

	if _, err := manager.Attach(ctx, "node", "article", DefaultDefinition()); err != nil {
		t.Fatalf("first attach: %v", err)
	}

	// A component the editor moved must survive a second attach.
	display, _ := store.Display(ctx, FormDisplay("node", "article"))
	display.SetComponent(DefaultFieldName, Component{Type: "yoast_seo_widget", Weight: 9})
	if err := store.SaveDisplay(ctx, display); err != nil {
		t.Fatalf("save display: %v", err)
	}

	result, err := manager.Attach(ctx, "node", "article", DefaultDefinition())
	if err != nil {
		t.Fatalf("second attach: %v", err)
	}
	if result.StorageCreated || result.FieldCreated {
		t.Fatalf("expected nothing created, got %+v", result)
	}
	display, _ = store.Display(ctx, FormDisplay("node", "article"))
	if got, _ := display.Component(DefaultFieldName); got.Weight != 9 {
		t.Fatalf("display component overwritten: %+v", got)
	}

	result, err = manager.Attach(ctx, "node", "page", DefaultDefinition())
	if err != nil {
		t.Fatalf("attach page: %v", err)
	}
	if result.StorageCreated || !result.FieldCreated {
		t.Fatalf("expected shared storage and new field, got %+v", result)
	}
}

func TestManager_DetachAndIsAttached(t *testing.T) {
	ctx := context.Background()
	manager, store := newTestManager(t)

	for _, bundle := range []string{"article", "page"} {
		if _, err := manager.Attach(ctx, "node", bundle, DefaultDefinition()); err != nil {
			t.Fatalf("attach %s: %v", bundle, err)
		}
	}

	removed, err := manager.Detach(ctx, "node", "article", DefaultFieldName)
	if err != nil || !removed {
		t.Fatalf("detach article: removed=%v err=%v", removed, err)
	}
	attached, err := manager.IsAttached(ctx, "node", "article", DefaultFieldName)
	if err != nil || attached {
		t.Fatalf("article still attached: %v %v", attached, err)
	}
	display, _ := store.Display(ctx, FormDisplay("node", "article"))
	if _, ok := display.Component(DefaultFieldName); ok {
		t.Fatalf("form display still shows detached field")
	}
	if _, err := store.Storage(ctx, "node", DefaultFieldName); err != nil {
		t.Fatalf("storage must remain while page uses it: %v", err)
	}

	if _, err := manager.Detach(ctx, "node", "page", DefaultFieldName); err != nil {
		t.Fatalf("detach page: %v", err)
	}
	if _, err := store.Storage(ctx, "node", DefaultFieldName); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected storage removed with last bundle, got %v", err)
	}

	removed, err = manager.Detach(ctx, "node", "page", DefaultFieldName)
	if err != nil || removed {
		t.Fatalf("detaching twice must be a no-op: removed=%v err=%v", removed, err)
	}
}

func TestManager_AttachValidation(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t)

	_, err := manager.Attach(ctx, "node", "", Definition{FieldName: "field_x"})
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
	if want := "fields: invalid definition: bundle, storage_type must be specified"; err.Error() != want {
		t.Fatalf("error mismatch: want %q, got %q", want, err.Error())
	}

	if _, err := NewManager(nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestManager_EnsureContentType(t *testing.T) {
	ctx := context.Background()
	manager, store := newTestManager(t)

	created, err := manager.EnsureContentType(ctx, ContentType{Type: "article", Name: "Article"})
	if err != nil || !created {
		t.Fatalf("first ensure: created=%v err=%v", created, err)
	}
	created, err = manager.EnsureContentType(ctx, ContentType{Type: "article", Name: "Renamed"})
	if err != nil || created {
		t.Fatalf("second ensure: created=%v err=%v", created, err)
	}
	got, _ := store.ContentType(ctx, "article")
	if got.Name != "Article" {
		t.Fatalf("existing content type overwritten: %+v", got)
	}
	if _, err := manager.EnsureContentType(ctx, ContentType{Type: "blog"}); !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
}
