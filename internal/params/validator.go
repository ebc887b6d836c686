package params

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"plotcast/internal/ploterr"
	"plotcast/internal/registry"
)

// Characters never allowed in a save_path, per basic path sanity checks.
const invalidPathChars = `<>"|?*`

// maxPathLength bounds save_path length across platforms.
const maxPathLength = 4096

// diagramExtensions is the restricted output extension set for diagram
// requests, distinct from the raster/vector chart extensions.
var diagramExtensions = map[string]struct{}{
	"png": {},
	"svg": {},
	"mmd": {},
}

// Validate checks a normalized parameter bag against the chart type's
// schema. Checks run in a fixed order and short-circuit on the first failing
// group: required presence, then field conformance, then data shape and
// coverage, then cross-field rules. The bag is not mutated; on success the
// same bag is considered the validated parameter set.
func Validate(desc *registry.Descriptor, bag map[string]interface{}) *ploterr.Error {
	if err := checkRequired(desc, bag); err != nil {
		return err
	}
	if err := checkFieldConformance(desc, bag); err != nil {
		return err
	}
	if desc.RowOriented {
		rows, err := checkDataShape(bag)
		if err != nil {
			return err
		}
		if err := checkDataCoverage(desc, bag, rows); err != nil {
			return err
		}
	}
	return checkCrossField(desc, bag)
}

// checkRequired verifies presence of every required field, naming all
// missing fields rather than just the first.
func checkRequired(desc *registry.Descriptor, bag map[string]interface{}) *ploterr.Error {
	var missing []string
	for _, field := range desc.Required {
		if _, present := bag[field]; !present {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return ploterr.MissingFields(missing)
	}
	return nil
}

// checkDataShape verifies data is a non-empty ordered list of row maps and
// returns the rows. Non-map rows are rejected with their indices.
func checkDataShape(bag map[string]interface{}) ([]map[string]interface{}, *ploterr.Error) {
	raw, present := bag["data"]
	if !present {
		// Row-oriented types list data as required, so absence is caught by
		// checkRequired; this guard covers descriptors that do not.
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		if typed, isTyped := raw.([]map[string]interface{}); isTyped {
			list = make([]interface{}, len(typed))
			for i, row := range typed {
				list[i] = row
			}
		} else {
			return nil, ploterr.New(ploterr.KindInvalidDataShape, "data is not a list of rows").
				WithField("data").
				WithConstraint("ordered list of row objects", raw)
		}
	}
	if len(list) == 0 {
		return nil, ploterr.New(ploterr.KindInvalidDataShape, "data must contain at least one row").
			WithField("data").
			WithConstraint("non-empty list of row objects", raw)
	}
	rows := make([]map[string]interface{}, len(list))
	var badRows []int
	for i, item := range list {
		row, ok := item.(map[string]interface{})
		if !ok {
			badRows = append(badRows, i)
			continue
		}
		rows[i] = row
	}
	if len(badRows) > 0 {
		return nil, ploterr.Newf(ploterr.KindInvalidDataShape,
			"data rows at index %s are not objects", joinInts(badRows)).
			WithField("data").
			WithConstraint("every row is an object", badRows)
	}
	return rows, nil
}

// checkDataCoverage verifies every data-bearing field the schema names is
// present in every row, reporting every offending row index.
func checkDataCoverage(desc *registry.Descriptor, bag map[string]interface{}, rows []map[string]interface{}) *ploterr.Error {
	if rows == nil {
		return nil
	}
	var problems []string
	var firstField string
	for _, field := range desc.DataFields {
		for _, column := range columnNames(bag[field]) {
			var missing []int
			for i, row := range rows {
				if _, present := row[column]; !present {
					missing = append(missing, i)
				}
			}
			if len(missing) > 0 {
				if firstField == "" {
					firstField = field
				}
				problems = append(problems, fmt.Sprintf("%q (rows %s)", column, joinInts(missing)))
			}
		}
	}
	if len(problems) > 0 {
		return ploterr.Newf(ploterr.KindMissingDataField,
			"data rows are missing field(s) %s", strings.Join(problems, ", ")).
			WithField(firstField).
			WithConstraint("every data row contains the named field(s)", nil)
	}
	return nil
}

// columnNames extracts the data column names a field value identifies: a
// string names one column, a list of strings names several.
func columnNames(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []interface{}:
		var names []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		return names
	case []string:
		return v
	}
	return nil
}

// checkFieldConformance verifies primitive type, range and enum constraints
// for every supplied field the schema declares.
func checkFieldConformance(desc *registry.Descriptor, bag map[string]interface{}) *ploterr.Error {
	// Deterministic field order for stable error selection.
	fields := make([]string, 0, len(bag))
	for field := range bag {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		spec, known := desc.Schema[field]
		if !known || spec.Type == registry.TypeRows {
			continue
		}
		if err := checkValue(field, spec, bag[field]); err != nil {
			return err
		}
	}

	if raw, present := bag["save_path"]; present {
		if path, ok := raw.(string); ok {
			if err := checkPathSanity(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkValue verifies one value against its field spec.
func checkValue(field string, spec registry.FieldSpec, value interface{}) *ploterr.Error {
	switch spec.Type {
	case registry.TypeString:
		s, ok := value.(string)
		if !ok {
			return invalidValue(field, "a string", value)
		}
		if len(s) < spec.MinLength {
			return invalidValue(field, fmt.Sprintf("a string of at least %d character(s)", spec.MinLength), value)
		}
		if len(spec.Enum) > 0 && !contains(spec.Enum, s) {
			return invalidValue(field, "one of "+strings.Join(spec.Enum, ", "), value)
		}
	case registry.TypeNumber:
		f, ok := asFloat(value)
		if !ok {
			return invalidValue(field, "a number", value)
		}
		return checkBounds(field, spec, f, value)
	case registry.TypeInteger:
		f, ok := asFloat(value)
		if !ok || f != float64(int64(f)) {
			return invalidValue(field, "an integer", value)
		}
		return checkBounds(field, spec, f, value)
	case registry.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return invalidValue(field, "a boolean", value)
		}
	case registry.TypeList:
		return checkListValue(field, spec, value)
	}
	return nil
}

// checkListValue verifies list length and element constraints.
func checkListValue(field string, spec registry.FieldSpec, value interface{}) *ploterr.Error {
	items, ok := asList(value)
	if !ok {
		return invalidValue(field, "a list", value)
	}
	if spec.PairLen > 0 && len(items) != spec.PairLen {
		return invalidValue(field, fmt.Sprintf("a list of exactly %d elements", spec.PairLen), value)
	}
	for i, item := range items {
		switch spec.Elem {
		case registry.TypeString:
			s, ok := item.(string)
			if !ok {
				return invalidValue(field, fmt.Sprintf("string elements (element %d)", i), item)
			}
			if len(s) < spec.ElemMinLength {
				return invalidValue(field,
					fmt.Sprintf("elements of at least %d character(s) (element %d)", spec.ElemMinLength, i), item)
			}
		case registry.TypeNumber, registry.TypeInteger:
			f, ok := asFloat(item)
			if !ok {
				return invalidValue(field, fmt.Sprintf("numeric elements (element %d)", i), item)
			}
			if spec.ElemMin != nil && f < *spec.ElemMin {
				return invalidValue(field, fmt.Sprintf("elements >= %v (element %d)", *spec.ElemMin, i), item)
			}
		}
	}
	return nil
}

// checkBounds verifies inclusive numeric bounds.
func checkBounds(field string, spec registry.FieldSpec, f float64, value interface{}) *ploterr.Error {
	if spec.Min != nil && f < *spec.Min {
		return invalidValue(field, fmt.Sprintf("a value >= %v", *spec.Min), value)
	}
	if spec.Max != nil && f > *spec.Max {
		return invalidValue(field, fmt.Sprintf("a value <= %v", *spec.Max), value)
	}
	return nil
}

// checkPathSanity rejects paths with characters that no supported filesystem
// accepts, and unreasonable lengths. It is not a security sandbox.
func checkPathSanity(path string) *ploterr.Error {
	if strings.ContainsAny(path, invalidPathChars) {
		return invalidValue("save_path", "a path without any of "+invalidPathChars, path)
	}
	if len(path) > maxPathLength {
		return invalidValue("save_path", fmt.Sprintf("a path of at most %d characters", maxPathLength), len(path))
	}
	return nil
}

// checkCrossField applies the domain-specific cross-field rules.
func checkCrossField(desc *registry.Descriptor, bag map[string]interface{}) *ploterr.Error {
	switch desc.Name {
	case registry.TypePieChart:
		return checkPieValues(bag)
	case registry.TypeDiagramChart:
		return checkDiagramPath(bag)
	}
	return nil
}

// checkPieValues enforces the proportion rules: magnitudes must be
// non-negative and must not be uniformly zero, and an explode list must
// match the row count.
func checkPieValues(bag map[string]interface{}) *ploterr.Error {
	rows, _ := checkDataShape(bag)
	valueField, _ := bag["value_field"].(string)
	if rows == nil || valueField == "" {
		return nil
	}

	allZero := true
	for i, row := range rows {
		f, ok := asFloat(row[valueField])
		if !ok {
			return ploterr.Newf(ploterr.KindInvalidFieldValue,
				"pie chart value in row %d is not numeric", i).
				WithField(valueField).
				WithConstraint("numeric value", row[valueField])
		}
		if f < 0 {
			return ploterr.Newf(ploterr.KindInvalidFieldValue,
				"pie chart values must not be negative (row %d)", i).
				WithField(valueField).
				WithConstraint("value >= 0", f)
		}
		if f != 0 {
			allZero = false
		}
	}
	if allZero {
		return ploterr.New(ploterr.KindInvalidFieldValue,
			"pie chart values must not all be zero").
			WithField(valueField).
			WithConstraint("at least one value > 0", nil)
	}

	if raw, present := bag["explode"]; present {
		if explode, ok := asList(raw); ok && len(explode) != len(rows) {
			return ploterr.Newf(ploterr.KindInvalidFieldValue,
				"explode list length %d does not match data row count %d", len(explode), len(rows)).
				WithField("explode").
				WithConstraint(fmt.Sprintf("a list of %d elements", len(rows)), len(explode))
		}
	}
	return nil
}

// checkDiagramPath restricts diagram output extensions to png, svg and mmd.
func checkDiagramPath(bag map[string]interface{}) *ploterr.Error {
	path, ok := bag["save_path"].(string)
	if !ok || path == "" {
		return nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return nil
	}
	if _, allowed := diagramExtensions[ext]; !allowed {
		return ploterr.Newf(ploterr.KindInvalidFieldValue,
			"unsupported diagram output format %q", ext).
			WithField("save_path").
			WithConstraint("an extension among png, svg, mmd", path)
	}
	return nil
}

func invalidValue(field, expected string, actual interface{}) *ploterr.Error {
	return ploterr.Newf(ploterr.KindInvalidFieldValue, "invalid value for field %s", field).
		WithField(field).
		WithConstraint(expected, actual)
}

// asFloat converts the numeric types a decoded JSON bag or Go caller may
// carry into a float64.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// asList converts slice representations into a []interface{}.
func asList(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
