// Package params reshapes and validates caller-supplied parameter bags
// against chart type descriptors before dispatch.
package params

import (
	"strings"

	"plotcast/internal/ploterr"
	"plotcast/internal/registry"
)

// Normalize reshapes an arbitrary incoming parameter bag into canonical
// form: single-level params unwrapping, list coercion for declared
// list-of-string fields, and default label derivation. It never rejects on
// missing required fields; that is the validator's job. Normalizing an
// already-normalized bag returns an equal bag.
func Normalize(desc *registry.Descriptor, input interface{}) (map[string]interface{}, *ploterr.Error) {
	raw, ok := input.(map[string]interface{})
	if !ok {
		return nil, ploterr.Malformed("request parameters must be an object").
			WithConstraint("JSON object of field name to value", input)
	}

	bag := Unwrap(raw)

	out := make(map[string]interface{}, len(bag))
	for key, value := range bag {
		if value == nil {
			// JSON null is treated as an omitted field so defaults apply.
			continue
		}
		out[key] = value
	}

	for _, field := range desc.ListFields() {
		value, present := out[field]
		if !present {
			continue
		}
		if s, isString := value.(string); isString {
			out[field] = coerceList(s)
		}
	}

	deriveLabels(desc, out)
	return out, nil
}

// Unwrap removes exactly one level of accidental {"params": {...}} nesting:
// a bag whose only key is named params with an object value is replaced by
// that inner object. Unwrapping is not recursive; double wrapping leaves one
// params level in place.
func Unwrap(raw map[string]interface{}) map[string]interface{} {
	if len(raw) != 1 {
		return raw
	}
	inner, ok := raw["params"]
	if !ok {
		return raw
	}
	innerMap, ok := inner.(map[string]interface{})
	if !ok {
		return raw
	}
	return innerMap
}

// coerceList turns a comma-joined string into a list of trimmed elements,
// and a plain scalar string into a single-element list.
func coerceList(s string) []interface{} {
	if !strings.Contains(s, ",") {
		return []interface{}{s}
	}
	parts := strings.Split(s, ",")
	out := make([]interface{}, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

// deriveLabels fills omitted axis labels from their paired axis field. For
// list-valued sources (multi-series fields) the fallback applies only when
// exactly one series is present.
func deriveLabels(desc *registry.Descriptor, bag map[string]interface{}) {
	for label, source := range desc.LabelPairs {
		if _, present := bag[label]; present {
			continue
		}
		value, present := bag[source]
		if !present {
			continue
		}
		switch v := value.(type) {
		case string:
			bag[label] = v
		case []interface{}:
			if len(v) == 1 {
				if s, ok := v[0].(string); ok {
					bag[label] = s
				}
			}
		case []string:
			if len(v) == 1 {
				bag[label] = v[0]
			}
		}
	}
}
