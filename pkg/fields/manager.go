package fields

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidDefinition is returned when a required attribute is blank.
var ErrInvalidDefinition = errors.New("fields: invalid definition")

// ManagerOption customises a Manager.
type ManagerOption func(*Manager)

// WithLogger injects a zap logger.
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager attaches and detaches fields on bundles.
type Manager struct {
	store  Store
	logger *zap.Logger
}

// NewManager builds a Manager over store.
func NewManager(store Store, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("fields: store is required")
	}
	m := &Manager{store: store, logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m, nil
}

// Store exposes the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// AttachResult reports which records Attach had to create.
type AttachResult struct {
	StorageCreated bool
	FieldCreated   bool
}

// Attach creates the field storage for entityType when missing, then the
// field instance on bundle when missing. A newly created instance is placed
// on the default form and view displays with default components. Calling
// Attach again is a no-op.
func (m *Manager) Attach(ctx context.Context, entityType, bundle string, def Definition) (AttachResult, error) {
	def = def.normalized()
	if err := requireValues(map[string]string{
		"entity_type":  entityType,
		"bundle":       bundle,
		"field_name":   def.FieldName,
		"storage_type": def.StorageType,
	}); err != nil {
		return AttachResult{}, err
	}

	var result AttachResult
	created, err := m.ensureStorage(ctx, StorageConfig{
		EntityType:   entityType,
		FieldName:    def.FieldName,
		Type:         def.StorageType,
		Translatable: def.Translatable,
		Cardinality:  def.Cardinality,
	})
	if err != nil {
		return result, err
	}
	result.StorageCreated = created

	created, err = m.ensureField(ctx, FieldConfig{
		EntityType:   entityType,
		Bundle:       bundle,
		FieldName:    def.FieldName,
		Label:        def.Label,
		Translatable: def.Translatable,
	})
	if err != nil {
		return result, err
	}
	result.FieldCreated = created
	if !created {
		return result, nil
	}

	for _, key := range []DisplayKey{FormDisplay(entityType, bundle), ViewDisplay(entityType, bundle)} {
		if err := m.updateDisplay(ctx, key, func(display *Display) {
			display.SetComponent(def.FieldName, Component{})
		}); err != nil {
			return result, err
		}
	}

	m.logger.Info("seoform: field attached",
		zap.String("entity_type", entityType),
		zap.String("bundle", bundle),
		zap.String("field_name", def.FieldName),
		zap.Bool("storage_created", result.StorageCreated),
	)
	return result, nil
}

// Detach removes the field instance from bundle and hides it from the
// bundle's default displays. The storage is deleted once no bundle uses it.
// The boolean is false when the field was not attached.
func (m *Manager) Detach(ctx context.Context, entityType, bundle, fieldName string) (bool, error) {
	if err := requireValues(map[string]string{
		"entity_type": entityType,
		"bundle":      bundle,
		"field_name":  fieldName,
	}); err != nil {
		return false, err
	}

	if err := m.store.DeleteField(ctx, entityType, bundle, fieldName); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("fields: delete field %s.%s.%s: %w", entityType, bundle, fieldName, err)
	}

	for _, key := range []DisplayKey{FormDisplay(entityType, bundle), ViewDisplay(entityType, bundle)} {
		if err := m.updateExistingDisplay(ctx, key, func(display *Display) {
			display.RemoveComponent(fieldName)
		}); err != nil {
			return true, err
		}
	}

	bundles, err := m.store.Bundles(ctx, entityType, fieldName)
	if err != nil {
		return true, fmt.Errorf("fields: list bundles for %s: %w", StorageID(entityType, fieldName), err)
	}
	if len(bundles) == 0 {
		if err := m.store.DeleteStorage(ctx, entityType, fieldName); err != nil && !errors.Is(err, ErrNotFound) {
			return true, fmt.Errorf("fields: delete storage %s: %w", StorageID(entityType, fieldName), err)
		}
	}

	m.logger.Info("seoform: field detached",
		zap.String("entity_type", entityType),
		zap.String("bundle", bundle),
		zap.String("field_name", fieldName),
		zap.Bool("storage_deleted", len(bundles) == 0),
	)
	return true, nil
}

// IsAttached reports whether bundle carries fieldName.
func (m *Manager) IsAttached(ctx context.Context, entityType, bundle, fieldName string) (bool, error) {
	_, err := m.store.Field(ctx, entityType, bundle, fieldName)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("fields: load field %s.%s.%s: %w", entityType, bundle, fieldName, err)
}

// EnsureContentType creates contentType unless one with the same type exists.
func (m *Manager) EnsureContentType(ctx context.Context, contentType ContentType) (bool, error) {
	contentType.Type = strings.TrimSpace(contentType.Type)
	contentType.Name = strings.TrimSpace(contentType.Name)
	if err := requireValues(map[string]string{
		"type": contentType.Type,
		"name": contentType.Name,
	}); err != nil {
		return false, err
	}

	_, err := m.store.ContentType(ctx, contentType.Type)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("fields: load content type %s: %w", contentType.Type, err)
	}
	if err := m.store.SaveContentType(ctx, contentType); err != nil {
		return false, fmt.Errorf("fields: save content type %s: %w", contentType.Type, err)
	}
	return true, nil
}

func (m *Manager) ensureStorage(ctx context.Context, storage StorageConfig) (bool, error) {
	_, err := m.store.Storage(ctx, storage.EntityType, storage.FieldName)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("fields: load storage %s: %w", storage.ID(), err)
	}
	if _, err := m.store.SaveStorage(ctx, storage); err != nil {
		return false, fmt.Errorf("fields: save storage %s: %w", storage.ID(), err)
	}
	return true, nil
}

func (m *Manager) ensureField(ctx context.Context, field FieldConfig) (bool, error) {
	_, err := m.store.Field(ctx, field.EntityType, field.Bundle, field.FieldName)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("fields: load field %s: %w", field.ID(), err)
	}
	if _, err := m.store.SaveField(ctx, field); err != nil {
		return false, fmt.Errorf("fields: save field %s: %w", field.ID(), err)
	}
	return true, nil
}

// updateDisplay loads key, creating an empty display when absent, applies fn
// and saves the result.
func (m *Manager) updateDisplay(ctx context.Context, key DisplayKey, fn func(*Display)) error {
	display, err := m.store.Display(ctx, key)
	if errors.Is(err, ErrNotFound) {
		display, err = NewDisplay(key), nil
	}
	if err != nil {
		return fmt.Errorf("fields: load %s display %s.%s: %w", key.Kind, key.EntityType, key.Bundle, err)
	}
	fn(&display)
	if err := m.store.SaveDisplay(ctx, display); err != nil {
		return fmt.Errorf("fields: save %s display %s.%s: %w", key.Kind, key.EntityType, key.Bundle, err)
	}
	return nil
}

// updateExistingDisplay is updateDisplay that skips absent displays.
func (m *Manager) updateExistingDisplay(ctx context.Context, key DisplayKey, fn func(*Display)) error {
	if _, err := m.store.Display(ctx, key); errors.Is(err, ErrNotFound) {
		return nil
	}
	return m.updateDisplay(ctx, key, fn)
}

func requireValues(values map[string]string) error {
	var missing []string
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s must be specified", ErrInvalidDefinition, strings.Join(missing, ", "))
}
