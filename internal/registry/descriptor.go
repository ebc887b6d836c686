package registry

import (
	"context"
	"fmt"
)

// FieldType is the primitive type a schema field must conform to.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeList    FieldType = "list"
	TypeRows    FieldType = "rows" // ordered list of row maps
)

// FieldSpec describes one schema field: primitive type, numeric bounds and
// enum constraints where applicable.
type FieldSpec struct {
	Type          FieldType
	Min           *float64  // inclusive lower bound for numeric fields
	Max           *float64  // inclusive upper bound for numeric fields
	MinLength     int       // minimum length for string fields
	Enum          []string  // allowed values for enumerated string fields
	Elem          FieldType // element type for list fields
	ElemMin       *float64  // inclusive lower bound for numeric list elements
	ElemMinLength int       // minimum length for string list elements
	PairLen       int       // exact element count for fixed-size list fields (figsize)
}

// Renderer is the narrow contract a chart renderer satisfies: it takes the
// filtered parameter map and returns the absolute path of the persisted
// artifact, or a descriptive failure.
type Renderer interface {
	ChartType() string
	Render(ctx context.Context, params map[string]interface{}) (string, error)
}

// Descriptor is the registry entry for one chart type.
type Descriptor struct {
	// Name is the canonical chart type name.
	Name string

	// Required lists field names that must be present after normalization.
	Required []string

	// Defaults maps optional field names to the value filled in when the
	// caller omits them.
	Defaults map[string]interface{}

	// Schema describes every known field of this chart type.
	Schema map[string]FieldSpec

	// Accepts is the explicit allow-list of parameter names forwarded to the
	// renderer. Validated fields outside this set are silently dropped at
	// dispatch.
	Accepts []string

	// DataFields names the schema fields whose values identify columns that
	// every data row must contain (e.g. x_field, y_fields).
	DataFields []string

	// LabelPairs maps a label field to the field it derives its default from
	// (e.g. x_label -> x_field).
	LabelPairs map[string]string

	// RowOriented marks chart types that take a data list of row maps.
	RowOriented bool

	// Renderer is the bound rendering routine.
	Renderer Renderer
}

// Validate checks descriptor invariants: every required field, accepted
// field, data field and label pair member must appear in the schema.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no chart type name")
	}
	for _, field := range d.Required {
		if _, ok := d.Schema[field]; !ok {
			return fmt.Errorf("chart type %s: required field %q not in schema", d.Name, field)
		}
	}
	for _, field := range d.Accepts {
		if _, ok := d.Schema[field]; !ok {
			return fmt.Errorf("chart type %s: accepted field %q not in schema", d.Name, field)
		}
	}
	for _, field := range d.DataFields {
		if _, ok := d.Schema[field]; !ok {
			return fmt.Errorf("chart type %s: data field %q not in schema", d.Name, field)
		}
	}
	for label, source := range d.LabelPairs {
		if _, ok := d.Schema[label]; !ok {
			return fmt.Errorf("chart type %s: label field %q not in schema", d.Name, label)
		}
		if _, ok := d.Schema[source]; !ok {
			return fmt.Errorf("chart type %s: label source field %q not in schema", d.Name, source)
		}
	}
	for field := range d.Defaults {
		if _, ok := d.Schema[field]; !ok {
			return fmt.Errorf("chart type %s: defaulted field %q not in schema", d.Name, field)
		}
	}
	return nil
}

// AcceptsSet returns the accepted parameter names as a set.
func (d *Descriptor) AcceptsSet() map[string]struct{} {
	set := make(map[string]struct{}, len(d.Accepts))
	for _, name := range d.Accepts {
		set[name] = struct{}{}
	}
	return set
}

// ListFields returns the names of schema fields declared as lists of strings.
// The normalizer coerces comma-joined and scalar string inputs for these.
func (d *Descriptor) ListFields() []string {
	var fields []string
	for name, spec := range d.Schema {
		if spec.Type == TypeList && spec.Elem == TypeString && spec.PairLen == 0 {
			fields = append(fields, name)
		}
	}
	return fields
}

// floatPtr is a helper for bound literals in descriptor construction.
func floatPtr(v float64) *float64 {
	return &v
}
