package charts

import (
	"fmt"
)

// The extraction helpers below read values out of the filtered parameter
// map. Validation has already run, so type mismatches here indicate
// descriptor/renderer drift and surface as render failures rather than
// panics.

func stringParam(params map[string]interface{}, key, fallback string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return fallback
}

func boolParam(params map[string]interface{}, key string, fallback bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return fallback
}

func floatParam(params map[string]interface{}, key string, fallback float64) float64 {
	if f, ok := toFloat(params[key]); ok {
		return f
	}
	return fallback
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	if f, ok := toFloat(params[key]); ok {
		return int(f)
	}
	return fallback
}

func stringListParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func floatListParam(params map[string]interface{}, key string) []float64 {
	switch v := params[key].(type) {
	case []float64:
		return v
	case []interface{}:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			if f, ok := toFloat(item); ok {
				out = append(out, f)
			}
		}
		return out
	}
	return nil
}

// rowsParam returns the data rows. Shape was checked by validation.
func rowsParam(params map[string]interface{}) []map[string]interface{} {
	switch v := params["data"].(type) {
	case []map[string]interface{}:
		return v
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			if row, ok := item.(map[string]interface{}); ok {
				rows = append(rows, row)
			}
		}
		return rows
	}
	return nil
}

// columnFloats extracts a numeric column from the rows.
func columnFloats(rows []map[string]interface{}, field string) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		f, ok := toFloat(row[field])
		if !ok {
			return nil, fmt.Errorf("row %d field %q is not numeric: %v", i, field, row[field])
		}
		out[i] = f
	}
	return out, nil
}

// columnStrings extracts a column as display strings.
func columnStrings(rows []map[string]interface{}, field string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = fmt.Sprintf("%v", row[field])
	}
	return out
}

// columnIsNumeric reports whether every value of a column is numeric.
func columnIsNumeric(rows []map[string]interface{}, field string) bool {
	for _, row := range rows {
		if _, ok := toFloat(row[field]); !ok {
			return false
		}
	}
	return true
}

// figurePixels converts the figsize pair (inches) and dpi into pixel
// dimensions.
func figurePixels(params map[string]interface{}, defaultW, defaultH float64) (int, int) {
	w, h := defaultW, defaultH
	if pair := floatListParam(params, "figsize"); len(pair) == 2 {
		w, h = pair[0], pair[1]
	}
	dpi := floatParam(params, "dpi", 100)
	return int(w * dpi), int(h * dpi)
}

func toFloat(value interface{}) (float64, bool) {
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
