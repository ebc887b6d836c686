package params

import (
	"strings"
	"testing"

	"plotcast/internal/ploterr"
	"plotcast/internal/registry"
)

func rows(items ...map[string]interface{}) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func validLineBag() map[string]interface{} {
	return map[string]interface{}{
		"data": rows(
			map[string]interface{}{"x": "a", "y": 1.0},
			map[string]interface{}{"x": "b", "y": 2.0},
		),
		"x_field":  "x",
		"y_fields": []interface{}{"y"},
	}
}

func TestValidateAcceptsWellFormedBag(t *testing.T) {
	if err := Validate(lineDesc(), validLineBag()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNamesEveryMissingRequiredField(t *testing.T) {
	err := Validate(lineDesc(), map[string]interface{}{})
	if err == nil {
		t.Fatal("expected error for empty bag")
	}
	if err.Kind != ploterr.KindMissingRequiredField {
		t.Fatalf("expected missing_required_field, got %s", err.Kind)
	}
	for _, field := range []string{"data", "x_field", "y_fields"} {
		if !strings.Contains(err.Message, field) {
			t.Errorf("error message %q does not name missing field %s", err.Message, field)
		}
	}
}

func TestValidateDataShape(t *testing.T) {
	tests := []struct {
		name      string
		data      interface{}
		wantInMsg string
	}{
		{
			name:      "not a list",
			data:      "rows",
			wantInMsg: "not a list",
		},
		{
			name:      "empty list",
			data:      []interface{}{},
			wantInMsg: "at least one row",
		},
		{
			name: "non-object rows listed by index",
			data: rows(
				map[string]interface{}{"x": "a", "y": 1.0},
			),
			wantInMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := validLineBag()
			bag["data"] = tt.data
			err := Validate(lineDesc(), bag)
			if tt.wantInMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Kind != ploterr.KindInvalidDataShape {
				t.Errorf("expected invalid_data_shape, got %s", err.Kind)
			}
			if !strings.Contains(err.Message, tt.wantInMsg) {
				t.Errorf("message %q does not contain %q", err.Message, tt.wantInMsg)
			}
		})
	}
}

func TestValidateListsEveryBadRowIndex(t *testing.T) {
	bag := validLineBag()
	bag["data"] = []interface{}{
		map[string]interface{}{"x": "a", "y": 1.0},
		"not a row",
		map[string]interface{}{"x": "b", "y": 2.0},
		42.0,
	}
	err := Validate(lineDesc(), bag)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind != ploterr.KindInvalidDataShape {
		t.Fatalf("expected invalid_data_shape, got %s", err.Kind)
	}
	if !strings.Contains(err.Message, "1, 3") {
		t.Errorf("message %q does not list both bad row indices 1 and 3", err.Message)
	}
}

func TestValidateDataCoverageReportsRowIndices(t *testing.T) {
	bag := validLineBag()
	bag["data"] = rows(
		map[string]interface{}{"x": "a", "y": 1.0},
		map[string]interface{}{"x": "b"},
		map[string]interface{}{"y": 3.0},
		map[string]interface{}{"x": "d"},
	)
	err := Validate(lineDesc(), bag)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind != ploterr.KindMissingDataField {
		t.Fatalf("expected missing_data_field, got %s", err.Kind)
	}
	// x is missing in row 2, y in rows 1 and 3
	if !strings.Contains(err.Message, `"x" (rows 2)`) {
		t.Errorf("message %q does not report x missing in row 2", err.Message)
	}
	if !strings.Contains(err.Message, `"y" (rows 1, 3)`) {
		t.Errorf("message %q does not report y missing in rows 1 and 3", err.Message)
	}
}

func TestValidateFieldConformance(t *testing.T) {
	desc := registry.HeatmapDescriptor(&stubRenderer{chartType: registry.TypeHeatmap})
	base := func() map[string]interface{} {
		return map[string]interface{}{
			"data": rows(
				map[string]interface{}{"x": "a", "y": "p", "v": 1.0},
			),
			"x_field":     "x",
			"y_field":     "y",
			"value_field": "v",
		}
	}

	tests := []struct {
		name    string
		mutate  func(bag map[string]interface{})
		field   string
		wantErr bool
	}{
		{
			name:    "valid aggregation enum",
			mutate:  func(bag map[string]interface{}) { bag["aggregation"] = "sum" },
			wantErr: false,
		},
		{
			name:    "invalid aggregation enum",
			mutate:  func(bag map[string]interface{}) { bag["aggregation"] = "median" },
			field:   "aggregation",
			wantErr: true,
		},
		{
			name:    "dpi must be integer",
			mutate:  func(bag map[string]interface{}) { bag["dpi"] = 72.5 },
			field:   "dpi",
			wantErr: true,
		},
		{
			name:    "dpi below bound",
			mutate:  func(bag map[string]interface{}) { bag["dpi"] = 0.0 },
			field:   "dpi",
			wantErr: true,
		},
		{
			name:    "figsize wrong length",
			mutate:  func(bag map[string]interface{}) { bag["figsize"] = []interface{}{10.0} },
			field:   "figsize",
			wantErr: true,
		},
		{
			name:    "figsize valid pair",
			mutate:  func(bag map[string]interface{}) { bag["figsize"] = []interface{}{10.0, 8.0} },
			wantErr: false,
		},
		{
			name:    "annotate must be boolean",
			mutate:  func(bag map[string]interface{}) { bag["annotate"] = "yes" },
			field:   "annotate",
			wantErr: true,
		},
		{
			name:    "save_path with forbidden character",
			mutate:  func(bag map[string]interface{}) { bag["save_path"] = `charts/heat<map>.png` },
			field:   "save_path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := base()
			tt.mutate(bag)
			err := Validate(desc, bag)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Kind != ploterr.KindInvalidFieldValue {
				t.Errorf("expected invalid_field_value, got %s", err.Kind)
			}
			if err.Field != tt.field {
				t.Errorf("expected offending field %s, got %s", tt.field, err.Field)
			}
		})
	}
}

func TestValidateRejectsEmptySeriesName(t *testing.T) {
	// A row carrying a "" key would otherwise satisfy coverage for an
	// empty-string series name, so the element length check must catch it.
	bag := map[string]interface{}{
		"data": rows(
			map[string]interface{}{"x": 1.0, "": 2.0},
		),
		"x_field":  "x",
		"y_fields": []interface{}{""},
	}
	err := Validate(lineDesc(), bag)
	if err == nil {
		t.Fatal("expected error for empty y_fields element")
	}
	if err.Kind != ploterr.KindInvalidFieldValue {
		t.Errorf("expected invalid_field_value, got %s", err.Kind)
	}
	if err.Field != "y_fields" {
		t.Errorf("expected field y_fields, got %s", err.Field)
	}

	// Without the "" row key the verdict must stay the same: conformance
	// runs before coverage, so the empty element is still the reported fault.
	bag["data"] = rows(map[string]interface{}{"x": 1.0, "y": 2.0})
	err = Validate(lineDesc(), bag)
	if err == nil {
		t.Fatal("expected error for empty y_fields element")
	}
	if err.Kind != ploterr.KindInvalidFieldValue {
		t.Errorf("expected invalid_field_value, got %s", err.Kind)
	}
}

func TestValidateScatterAlphaBounds(t *testing.T) {
	desc := registry.ScatterPlotDescriptor(&stubRenderer{chartType: registry.TypeScatterPlot})
	bag := map[string]interface{}{
		"data": rows(
			map[string]interface{}{"x": 1.0, "y": 2.0},
		),
		"x_field": "x",
		"y_field": "y",
		"alpha":   1.5,
	}
	err := Validate(desc, bag)
	if err == nil {
		t.Fatal("expected error for alpha above 1")
	}
	if err.Field != "alpha" {
		t.Errorf("expected field alpha, got %s", err.Field)
	}
}

func TestValidatePieChartValues(t *testing.T) {
	desc := registry.PieChartDescriptor(&stubRenderer{chartType: registry.TypePieChart})
	base := func(values ...interface{}) map[string]interface{} {
		data := make([]interface{}, len(values))
		for i, v := range values {
			data[i] = map[string]interface{}{"label": "seg", "share": v}
		}
		return map[string]interface{}{
			"data":        data,
			"name_field":  "label",
			"value_field": "share",
		}
	}

	t.Run("positive values pass", func(t *testing.T) {
		if err := Validate(desc, base(30.0, 70.0)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative value names the row", func(t *testing.T) {
		err := Validate(desc, base(30.0, -5.0))
		if err == nil {
			t.Fatal("expected error")
		}
		if err.Kind != ploterr.KindInvalidFieldValue {
			t.Errorf("expected invalid_field_value, got %s", err.Kind)
		}
		if !strings.Contains(err.Message, "negative") || !strings.Contains(err.Message, "row 1") {
			t.Errorf("message %q should name the negative rule and row 1", err.Message)
		}
	})

	t.Run("all zero values rejected distinctly", func(t *testing.T) {
		err := Validate(desc, base(0.0, 0.0))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Message, "all be zero") {
			t.Errorf("message %q should name the all-zero rule", err.Message)
		}
	})

	t.Run("non-numeric value names the row", func(t *testing.T) {
		err := Validate(desc, base(30.0, "many"))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Message, "not numeric") || !strings.Contains(err.Message, "row 1") {
			t.Errorf("message %q should name the non-numeric value in row 1", err.Message)
		}
	})

	t.Run("explode length mismatch", func(t *testing.T) {
		bag := base(30.0, 70.0)
		bag["explode"] = []interface{}{0.1}
		err := Validate(desc, bag)
		if err == nil {
			t.Fatal("expected error")
		}
		if err.Field != "explode" {
			t.Errorf("expected field explode, got %s", err.Field)
		}
	})

	t.Run("explode matching length passes", func(t *testing.T) {
		bag := base(30.0, 70.0)
		bag["explode"] = []interface{}{0.1, 0.0}
		if err := Validate(desc, bag); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestValidateDiagramSavePath(t *testing.T) {
	desc := registry.DiagramChartDescriptor(&stubRenderer{chartType: registry.TypeDiagramChart})
	base := func(savePath string) map[string]interface{} {
		return map[string]interface{}{
			"diagram_code": "graph TD; A-->B",
			"save_path":    savePath,
		}
	}

	tests := []struct {
		name     string
		savePath string
		wantErr  bool
	}{
		{"png allowed", "flow.png", false},
		{"svg allowed", "flow.svg", false},
		{"mmd allowed", "flow.mmd", false},
		{"uppercase extension allowed", "flow.PNG", false},
		{"no extension allowed", "flow", false},
		{"pdf rejected", "flow.pdf", true},
		{"html rejected", "flow.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(desc, base(tt.savePath))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if err.Field != "save_path" {
					t.Errorf("expected field save_path, got %s", err.Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
