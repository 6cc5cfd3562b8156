package fields

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store lookups for absent records.
var ErrNotFound = errors.New("fields: not found")

// Store persists field storages, field instances, displays and content
// types. Save methods upsert and assign a UUID when the record has none.
type Store interface {
	Storage(ctx context.Context, entityType, fieldName string) (StorageConfig, error)
	SaveStorage(ctx context.Context, storage StorageConfig) (StorageConfig, error)
	DeleteStorage(ctx context.Context, entityType, fieldName string) error

	Field(ctx context.Context, entityType, bundle, fieldName string) (FieldConfig, error)
	Fields(ctx context.Context, entityType, bundle string) ([]FieldConfig, error)
	// Bundles lists the bundles of entityType carrying fieldName.
	Bundles(ctx context.Context, entityType, fieldName string) ([]string, error)
	SaveField(ctx context.Context, field FieldConfig) (FieldConfig, error)
	DeleteField(ctx context.Context, entityType, bundle, fieldName string) error

	Display(ctx context.Context, key DisplayKey) (Display, error)
	SaveDisplay(ctx context.Context, display Display) error

	ContentType(ctx context.Context, typ string) (ContentType, error)
	ContentTypes(ctx context.Context) ([]ContentType, error)
	SaveContentType(ctx context.Context, contentType ContentType) error
}
