package fields

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu           sync.RWMutex
	storages     map[string]StorageConfig
	fields       map[string]FieldConfig
	displays     map[DisplayKey]Display
	contentTypes map[string]ContentType
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		storages:     make(map[string]StorageConfig),
		fields:       make(map[string]FieldConfig),
		displays:     make(map[DisplayKey]Display),
		contentTypes: make(map[string]ContentType),
	}
}

func (s *MemoryStore) Storage(ctx context.Context, entityType, fieldName string) (StorageConfig, error) {
	if err := ctx.Err(); err != nil {
		return StorageConfig{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	storage, ok := s.storages[StorageID(entityType, fieldName)]
	if !ok {
		return StorageConfig{}, ErrNotFound
	}
	return storage, nil
}

func (s *MemoryStore) SaveStorage(ctx context.Context, storage StorageConfig) (StorageConfig, error) {
	if err := ctx.Err(); err != nil {
		return StorageConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if storage.UUID == "" {
		storage.UUID = uuid.NewString()
	}
	s.storages[storage.ID()] = storage
	return storage, nil
}

func (s *MemoryStore) DeleteStorage(ctx context.Context, entityType, fieldName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := StorageID(entityType, fieldName)
	if _, ok := s.storages[id]; !ok {
		return ErrNotFound
	}
	delete(s.storages, id)
	return nil
}

func (s *MemoryStore) Field(ctx context.Context, entityType, bundle, fieldName string) (FieldConfig, error) {
	if err := ctx.Err(); err != nil {
		return FieldConfig{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	field, ok := s.fields[FieldConfig{EntityType: entityType, Bundle: bundle, FieldName: fieldName}.ID()]
	if !ok {
		return FieldConfig{}, ErrNotFound
	}
	return field, nil
}

func (s *MemoryStore) Fields(ctx context.Context, entityType, bundle string) ([]FieldConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []FieldConfig
	for _, field := range s.fields {
		if field.EntityType == entityType && field.Bundle == bundle {
			out = append(out, field)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldName < out[j].FieldName })
	return out, nil
}

func (s *MemoryStore) Bundles(ctx context.Context, entityType, fieldName string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, field := range s.fields {
		if field.EntityType == entityType && field.FieldName == fieldName {
			out = append(out, field.Bundle)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) SaveField(ctx context.Context, field FieldConfig) (FieldConfig, error) {
	if err := ctx.Err(); err != nil {
		return FieldConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if field.UUID == "" {
		field.UUID = uuid.NewString()
	}
	s.fields[field.ID()] = field
	return field, nil
}

func (s *MemoryStore) DeleteField(ctx context.Context, entityType, bundle, fieldName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := FieldConfig{EntityType: entityType, Bundle: bundle, FieldName: fieldName}.ID()
	if _, ok := s.fields[id]; !ok {
		return ErrNotFound
	}
	delete(s.fields, id)
	return nil
}

func (s *MemoryStore) Display(ctx context.Context, key DisplayKey) (Display, error) {
	if err := ctx.Err(); err != nil {
		return Display{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	display, ok := s.displays[key]
	if !ok {
		return Display{}, ErrNotFound
	}
	return copyDisplay(display), nil
}

func (s *MemoryStore) SaveDisplay(ctx context.Context, display Display) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displays[display.Key] = copyDisplay(display)
	return nil
}

func (s *MemoryStore) ContentType(ctx context.Context, typ string) (ContentType, error) {
	if err := ctx.Err(); err != nil {
		return ContentType{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	contentType, ok := s.contentTypes[typ]
	if !ok {
		return ContentType{}, ErrNotFound
	}
	return contentType, nil
}

func (s *MemoryStore) ContentTypes(ctx context.Context) ([]ContentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ContentType, 0, len(s.contentTypes))
	for _, contentType := range s.contentTypes {
		out = append(out, contentType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (s *MemoryStore) SaveContentType(ctx context.Context, contentType ContentType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentTypes[contentType.Type] = contentType
	return nil
}

func copyDisplay(display Display) Display {
	out := NewDisplay(display.Key)
	for name, component := range display.Components {
		out.Components[name] = component
	}
	return out
}
