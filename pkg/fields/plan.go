package fields

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan wraps every plan validation failure.
var ErrInvalidPlan = errors.New("fields: invalid plan")

// Plan is a tabular provisioning request: content types first, then fields
// with their display components.
type Plan struct {
	ContentTypes []ContentType `yaml:"content_types" json:"content_types"`
	Fields       []FieldRow    `yaml:"fields" json:"fields"`
}

// FieldRow is one row of a field table. Cardinality 0 means 1 and -1 means
// unlimited. An empty FormWidget or FieldFormatter removes the field from the
// corresponding default display.
type FieldRow struct {
	EntityType     string `yaml:"entity_type" json:"entity_type"`
	Bundle         string `yaml:"bundle" json:"bundle"`
	Type           string `yaml:"type" json:"type"`
	FieldName      string `yaml:"field_name" json:"field_name"`
	FieldLabel     string `yaml:"field_label" json:"field_label"`
	Cardinality    int    `yaml:"cardinality" json:"cardinality"`
	FormWidget     string `yaml:"form_widget" json:"form_widget"`
	FieldFormatter string `yaml:"field_formatter" json:"field_formatter"`
}

// ParsePlan decodes a YAML plan. JSON documents parse as well since they are
// valid YAML.
func ParsePlan(data []byte) (Plan, error) {
	var plan Plan
	if len(strings.TrimSpace(string(data))) == 0 {
		return plan, fmt.Errorf("%w: document is empty", ErrInvalidPlan)
	}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return plan, fmt.Errorf("fields: parse plan: %w", err)
	}
	return plan, plan.Validate()
}

// LoadPlanFile reads and parses a plan from disk.
func LoadPlanFile(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("fields: read plan %s: %w", path, err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return plan, fmt.Errorf("%w (file %s)", err, path)
	}
	return plan, nil
}

// Validate checks required columns and cardinality on every row.
func (p Plan) Validate() error {
	for i, contentType := range p.ContentTypes {
		if strings.TrimSpace(contentType.Type) == "" {
			return fmt.Errorf("%w: content type %d: type must be specified", ErrInvalidPlan, i)
		}
		if strings.TrimSpace(contentType.Name) == "" {
			return fmt.Errorf("%w: content type %d: name must be specified", ErrInvalidPlan, i)
		}
	}
	for i, row := range p.Fields {
		for _, column := range []struct{ name, value string }{
			{"entity_type", row.EntityType},
			{"bundle", row.Bundle},
			{"type", row.Type},
			{"field_name", row.FieldName},
			{"field_label", row.FieldLabel},
		} {
			if strings.TrimSpace(column.value) == "" {
				return fmt.Errorf("%w: field %d: %s must be specified", ErrInvalidPlan, i, column.name)
			}
		}
		if row.Cardinality < CardinalityUnlimited {
			return fmt.Errorf("%w: field %d: cardinality %d out of range", ErrInvalidPlan, i, row.Cardinality)
		}
	}
	return nil
}

// ProvisionReport counts what Provision created.
type ProvisionReport struct {
	ContentTypesCreated int
	StoragesCreated     int
	FieldsCreated       int
}

// Provision applies plan. The plan is validated up front so an invalid row
// leaves the store untouched. Existing storages and fields are kept as-is;
// display components are always reconciled with the row.
func (m *Manager) Provision(ctx context.Context, plan Plan) (ProvisionReport, error) {
	var report ProvisionReport
	if err := plan.Validate(); err != nil {
		return report, err
	}

	for _, contentType := range plan.ContentTypes {
		created, err := m.EnsureContentType(ctx, contentType)
		if err != nil {
			return report, err
		}
		if created {
			report.ContentTypesCreated++
		}
	}

	for _, row := range plan.Fields {
		cardinality := row.Cardinality
		if cardinality == 0 {
			cardinality = 1
		}
		created, err := m.ensureStorage(ctx, StorageConfig{
			EntityType:  row.EntityType,
			FieldName:   row.FieldName,
			Type:        row.Type,
			Cardinality: cardinality,
		})
		if err != nil {
			return report, err
		}
		if created {
			report.StoragesCreated++
		}

		created, err = m.ensureField(ctx, FieldConfig{
			EntityType: row.EntityType,
			Bundle:     row.Bundle,
			FieldName:  row.FieldName,
			Label:      row.FieldLabel,
		})
		if err != nil {
			return report, err
		}
		if created {
			report.FieldsCreated++
		}

		if err := m.updateDisplay(ctx, FormDisplay(row.EntityType, row.Bundle), placeComponent(row.FieldName, row.FormWidget)); err != nil {
			return report, err
		}
		if err := m.updateDisplay(ctx, ViewDisplay(row.EntityType, row.Bundle), placeComponent(row.FieldName, row.FieldFormatter)); err != nil {
			return report, err
		}
	}

	m.logger.Info("seoform: plan provisioned",
		zap.Int("content_types_created", report.ContentTypesCreated),
		zap.Int("storages_created", report.StoragesCreated),
		zap.Int("fields_created", report.FieldsCreated),
	)
	return report, nil
}

func placeComponent(fieldName, componentType string) func(*Display) {
	componentType = strings.TrimSpace(componentType)
	return func(display *Display) {
		if componentType == "" {
			display.RemoveComponent(fieldName)
			return
		}
		display.SetComponent(fieldName, Component{Type: componentType, Weight: 0})
	}
}
