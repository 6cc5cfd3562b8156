// Package sqlitestore persists field provisioning state in SQLite through the
// pure-Go modernc.org/sqlite driver.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-seoform/pkg/fields"
)

const schema = `
CREATE TABLE IF NOT EXISTS field_storage (
	uuid TEXT NOT NULL UNIQUE,
	entity_type TEXT NOT NULL,
	field_name TEXT NOT NULL,
	type TEXT NOT NULL,
	translatable INTEGER NOT NULL DEFAULT 0,
	cardinality INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (entity_type, field_name)
);

CREATE TABLE IF NOT EXISTS field_config (
	uuid TEXT NOT NULL UNIQUE,
	entity_type TEXT NOT NULL,
	bundle TEXT NOT NULL,
	field_name TEXT NOT NULL,
	label TEXT NOT NULL,
	translatable INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (entity_type, bundle, field_name)
);
CREATE INDEX IF NOT EXISTS idx_field_config_storage ON field_config(entity_type, field_name);

CREATE TABLE IF NOT EXISTS display (
	entity_type TEXT NOT NULL,
	bundle TEXT NOT NULL,
	mode TEXT NOT NULL,
	kind TEXT NOT NULL,
	components JSON NOT NULL,
	PRIMARY KEY (entity_type, bundle, mode, kind)
);

CREATE TABLE IF NOT EXISTS content_type (
	type TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
`

// Store implements fields.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

var _ fields.Store = (*Store)(nil)

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", path, err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}
	store, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an open database and ensures the schema.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlitestore: db is nil")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlitestore: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Storage(ctx context.Context, entityType, fieldName string) (fields.StorageConfig, error) {
	storage := fields.StorageConfig{EntityType: entityType, FieldName: fieldName}
	err := s.db.QueryRowContext(ctx,
		`SELECT uuid, type, translatable, cardinality FROM field_storage WHERE entity_type = ? AND field_name = ?`,
		entityType, fieldName,
	).Scan(&storage.UUID, &storage.Type, &storage.Translatable, &storage.Cardinality)
	if err != nil {
		return fields.StorageConfig{}, notFound(err, "storage "+storage.ID())
	}
	return storage, nil
}

func (s *Store) SaveStorage(ctx context.Context, storage fields.StorageConfig) (fields.StorageConfig, error) {
	if storage.UUID == "" {
		storage.UUID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO field_storage (uuid, entity_type, field_name, type, translatable, cardinality)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, field_name) DO UPDATE SET
			type = excluded.type,
			translatable = excluded.translatable,
			cardinality = excluded.cardinality
	`, storage.UUID, storage.EntityType, storage.FieldName, storage.Type, storage.Translatable, storage.Cardinality)
	if err != nil {
		return fields.StorageConfig{}, fmt.Errorf("sqlitestore: save storage %s: %w", storage.ID(), err)
	}
	return s.Storage(ctx, storage.EntityType, storage.FieldName)
}

func (s *Store) DeleteStorage(ctx context.Context, entityType, fieldName string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM field_storage WHERE entity_type = ? AND field_name = ?`, entityType, fieldName)
	return deleted(res, err, "storage "+fields.StorageID(entityType, fieldName))
}

func (s *Store) Field(ctx context.Context, entityType, bundle, fieldName string) (fields.FieldConfig, error) {
	field := fields.FieldConfig{EntityType: entityType, Bundle: bundle, FieldName: fieldName}
	err := s.db.QueryRowContext(ctx,
		`SELECT uuid, label, translatable FROM field_config WHERE entity_type = ? AND bundle = ? AND field_name = ?`,
		entityType, bundle, fieldName,
	).Scan(&field.UUID, &field.Label, &field.Translatable)
	if err != nil {
		return fields.FieldConfig{}, notFound(err, "field "+field.ID())
	}
	return field, nil
}

func (s *Store) Fields(ctx context.Context, entityType, bundle string) ([]fields.FieldConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uuid, field_name, label, translatable FROM field_config WHERE entity_type = ? AND bundle = ? ORDER BY field_name`,
		entityType, bundle)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list fields %s.%s: %w", entityType, bundle, err)
	}
	defer func() { _ = rows.Close() }()

	var out []fields.FieldConfig
	for rows.Next() {
		field := fields.FieldConfig{EntityType: entityType, Bundle: bundle}
		if err := rows.Scan(&field.UUID, &field.FieldName, &field.Label, &field.Translatable); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan field: %w", err)
		}
		out = append(out, field)
	}
	return out, rows.Err()
}

func (s *Store) Bundles(ctx context.Context, entityType, fieldName string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bundle FROM field_config WHERE entity_type = ? AND field_name = ? ORDER BY bundle`,
		entityType, fieldName)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list bundles %s: %w", fields.StorageID(entityType, fieldName), err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var bundle string
		if err := rows.Scan(&bundle); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan bundle: %w", err)
		}
		out = append(out, bundle)
	}
	return out, rows.Err()
}

func (s *Store) SaveField(ctx context.Context, field fields.FieldConfig) (fields.FieldConfig, error) {
	if field.UUID == "" {
		field.UUID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO field_config (uuid, entity_type, bundle, field_name, label, translatable)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, bundle, field_name) DO UPDATE SET
			label = excluded.label,
			translatable = excluded.translatable
	`, field.UUID, field.EntityType, field.Bundle, field.FieldName, field.Label, field.Translatable)
	if err != nil {
		return fields.FieldConfig{}, fmt.Errorf("sqlitestore: save field %s: %w", field.ID(), err)
	}
	return s.Field(ctx, field.EntityType, field.Bundle, field.FieldName)
}

func (s *Store) DeleteField(ctx context.Context, entityType, bundle, fieldName string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM field_config WHERE entity_type = ? AND bundle = ? AND field_name = ?`,
		entityType, bundle, fieldName)
	return deleted(res, err, "field "+entityType+"."+bundle+"."+fieldName)
}

func (s *Store) Display(ctx context.Context, key fields.DisplayKey) (fields.Display, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT components FROM display WHERE entity_type = ? AND bundle = ? AND mode = ? AND kind = ?`,
		key.EntityType, key.Bundle, key.Mode, string(key.Kind),
	).Scan(&raw)
	if err != nil {
		return fields.Display{}, notFound(err, fmt.Sprintf("%s display %s.%s.%s", key.Kind, key.EntityType, key.Bundle, key.Mode))
	}
	display := fields.NewDisplay(key)
	if err := json.Unmarshal([]byte(raw), &display.Components); err != nil {
		return fields.Display{}, fmt.Errorf("sqlitestore: decode display components: %w", err)
	}
	if display.Components == nil {
		display.Components = make(map[string]fields.Component)
	}
	return display, nil
}

func (s *Store) SaveDisplay(ctx context.Context, display fields.Display) error {
	components := display.Components
	if components == nil {
		components = map[string]fields.Component{}
	}
	raw, err := json.Marshal(components)
	if err != nil {
		return fmt.Errorf("sqlitestore: encode display components: %w", err)
	}
	key := display.Key
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO display (entity_type, bundle, mode, kind, components)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, bundle, mode, kind) DO UPDATE SET components = excluded.components
	`, key.EntityType, key.Bundle, key.Mode, string(key.Kind), string(raw))
	if err != nil {
		return fmt.Errorf("sqlitestore: save %s display %s.%s: %w", key.Kind, key.EntityType, key.Bundle, err)
	}
	return nil
}

func (s *Store) ContentType(ctx context.Context, typ string) (fields.ContentType, error) {
	contentType := fields.ContentType{Type: typ}
	err := s.db.QueryRowContext(ctx, `SELECT name FROM content_type WHERE type = ?`, typ).Scan(&contentType.Name)
	if err != nil {
		return fields.ContentType{}, notFound(err, "content type "+typ)
	}
	return contentType, nil
}

func (s *Store) ContentTypes(ctx context.Context) ([]fields.ContentType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT type, name FROM content_type ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list content types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []fields.ContentType
	for rows.Next() {
		var contentType fields.ContentType
		if err := rows.Scan(&contentType.Type, &contentType.Name); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan content type: %w", err)
		}
		out = append(out, contentType)
	}
	return out, rows.Err()
}

func (s *Store) SaveContentType(ctx context.Context, contentType fields.ContentType) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_type (type, name) VALUES (?, ?)
		ON CONFLICT (type) DO UPDATE SET name = excluded.name
	`, contentType.Type, contentType.Name)
	if err != nil {
		return fmt.Errorf("sqlitestore: save content type %s: %w", contentType.Type, err)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlitestore: %s: %w", what, fields.ErrNotFound)
	}
	return fmt.Errorf("sqlitestore: load %s: %w", what, err)
}

func deleted(res sql.Result, err error, what string) error {
	if err != nil {
		return fmt.Errorf("sqlitestore: delete %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlitestore: delete %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlitestore: %s: %w", what, fields.ErrNotFound)
	}
	return nil
}
