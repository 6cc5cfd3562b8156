package fields

import (
	"sort"
	"strings"
)

// CardinalityUnlimited marks a storage accepting any number of values.
const CardinalityUnlimited = -1

// DefaultMode is the display mode used when none is given.
const DefaultMode = "default"

// Stock definition of the SEO field.
const (
	DefaultFieldName   = "field_yoast_seo"
	DefaultStorageType = "yoast_seo"
	DefaultFieldLabel  = "Real-time SEO"
)

// StorageConfig describes a field storage shared by every bundle of an
// entity type.
type StorageConfig struct {
	UUID         string `json:"uuid" yaml:"uuid"`
	EntityType   string `json:"entity_type" yaml:"entity_type"`
	FieldName    string `json:"field_name" yaml:"field_name"`
	Type         string `json:"type" yaml:"type"`
	Translatable bool   `json:"translatable" yaml:"translatable"`
	Cardinality  int    `json:"cardinality" yaml:"cardinality"`
}

// ID returns the "<entity_type>.<field_name>" storage identifier.
func (s StorageConfig) ID() string {
	return StorageID(s.EntityType, s.FieldName)
}

// StorageID builds a storage identifier.
func StorageID(entityType, fieldName string) string {
	return entityType + "." + fieldName
}

// FieldConfig is a field storage attached to one bundle.
type FieldConfig struct {
	UUID         string `json:"uuid" yaml:"uuid"`
	EntityType   string `json:"entity_type" yaml:"entity_type"`
	Bundle       string `json:"bundle" yaml:"bundle"`
	FieldName    string `json:"field_name" yaml:"field_name"`
	Label        string `json:"label" yaml:"label"`
	Translatable bool   `json:"translatable" yaml:"translatable"`
}

// ID returns the "<entity_type>.<bundle>.<field_name>" identifier.
func (f FieldConfig) ID() string {
	return f.EntityType + "." + f.Bundle + "." + f.FieldName
}

// DisplayKind separates edit forms from rendered views.
type DisplayKind string

const (
	DisplayForm DisplayKind = "form"
	DisplayView DisplayKind = "view"
)

// DisplayKey identifies one display of a bundle.
type DisplayKey struct {
	EntityType string      `json:"entity_type" yaml:"entity_type"`
	Bundle     string      `json:"bundle" yaml:"bundle"`
	Mode       string      `json:"mode" yaml:"mode"`
	Kind       DisplayKind `json:"kind" yaml:"kind"`
}

// FormDisplay returns the default form display key of a bundle.
func FormDisplay(entityType, bundle string) DisplayKey {
	return DisplayKey{EntityType: entityType, Bundle: bundle, Mode: DefaultMode, Kind: DisplayForm}
}

// ViewDisplay returns the default view display key of a bundle.
func ViewDisplay(entityType, bundle string) DisplayKey {
	return DisplayKey{EntityType: entityType, Bundle: bundle, Mode: DefaultMode, Kind: DisplayView}
}

// Component configures how a field shows up in a display. An empty Type
// lets the host pick its default widget or formatter.
type Component struct {
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Weight int    `json:"weight" yaml:"weight"`
}

// Display is the set of components placed on a bundle display.
type Display struct {
	Key        DisplayKey           `json:"key" yaml:"key"`
	Components map[string]Component `json:"components" yaml:"components"`
}

// NewDisplay returns an empty display for key.
func NewDisplay(key DisplayKey) Display {
	return Display{Key: key, Components: make(map[string]Component)}
}

// SetComponent places or replaces a field component.
func (d *Display) SetComponent(fieldName string, component Component) {
	if d.Components == nil {
		d.Components = make(map[string]Component)
	}
	d.Components[fieldName] = component
}

// RemoveComponent hides a field from the display.
func (d *Display) RemoveComponent(fieldName string) {
	delete(d.Components, fieldName)
}

// Component reports the component for fieldName.
func (d Display) Component(fieldName string) (Component, bool) {
	component, ok := d.Components[fieldName]
	return component, ok
}

// FieldNames lists the placed fields in sorted order.
func (d Display) FieldNames() []string {
	names := make([]string, 0, len(d.Components))
	for name := range d.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContentType is a bundle of the node entity type.
type ContentType struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Definition is the caller-supplied description of a field to attach.
type Definition struct {
	FieldName    string `json:"field_name" yaml:"field_name"`
	StorageType  string `json:"storage_type" yaml:"storage_type"`
	Label        string `json:"field_label" yaml:"field_label"`
	Translatable bool   `json:"translatable" yaml:"translatable"`
	Cardinality  int    `json:"cardinality" yaml:"cardinality"`
}

// DefaultDefinition describes the stock SEO field.
func DefaultDefinition() Definition {
	return Definition{
		FieldName:    DefaultFieldName,
		StorageType:  DefaultStorageType,
		Label:        DefaultFieldLabel,
		Translatable: true,
		Cardinality:  1,
	}
}

func (d Definition) normalized() Definition {
	d.FieldName = strings.TrimSpace(d.FieldName)
	d.StorageType = strings.TrimSpace(d.StorageType)
	d.Label = strings.TrimSpace(d.Label)
	if d.Label == "" {
		d.Label = d.FieldName
	}
	if d.Cardinality == 0 {
		d.Cardinality = 1
	}
	return d
}
