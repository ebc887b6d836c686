package ploterr

import (
	"errors"
	"strings"
	"testing"
)

func TestKindCode(t *testing.T) {
	tests := []struct {
		kind Kind
		code string
	}{
		{KindMalformedRequest, "MALFORMED_REQUEST"},
		{KindUnsupportedChartType, "UNSUPPORTED_CHART_TYPE"},
		{KindMissingRequiredField, "MISSING_REQUIRED_FIELD"},
		{KindInvalidDataShape, "INVALID_DATA_SHAPE"},
		{KindMissingDataField, "MISSING_DATA_FIELD"},
		{KindInvalidFieldValue, "INVALID_FIELD_VALUE"},
		{KindRendererParameterMismatch, "RENDERER_PARAMETER_MISMATCH"},
		{KindChartGenerationFailed, "CHART_GENERATION_FAILED"},
		{KindUnknown, "UNKNOWN_ERROR"},
		{Kind("something else"), "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		if got := tt.kind.Code(); got != tt.code {
			t.Errorf("Code(%s): expected %s, got %s", tt.kind, tt.code, got)
		}
	}
}

func TestKindValidation(t *testing.T) {
	validation := []Kind{
		KindMalformedRequest, KindUnsupportedChartType, KindMissingRequiredField,
		KindInvalidDataShape, KindMissingDataField, KindInvalidFieldValue,
		KindRendererParameterMismatch,
	}
	for _, kind := range validation {
		if !kind.Validation() {
			t.Errorf("%s should classify as a caller mistake", kind)
		}
	}
	for _, kind := range []Kind{KindChartGenerationFailed, KindUnknown} {
		if kind.Validation() {
			t.Errorf("%s should not classify as a caller mistake", kind)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := Newf(KindInvalidFieldValue, "invalid value for field %s", "alpha").
		WithField("alpha").
		WithConstraint("a value <= 1", 1.5)

	s := err.Error()
	for _, want := range []string{"INVALID_FIELD_VALUE", "alpha", "a value <= 1", "1.5"} {
		if !strings.Contains(s, want) {
			t.Errorf("error string %q does not contain %q", s, want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("write failed")
	err := GenerationFailed("line_chart", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable through errors.Is")
	}
	if !strings.Contains(err.Message, "write failed") {
		t.Errorf("message %q does not carry the cause", err.Message)
	}
	if !strings.Contains(err.Message, "line_chart") {
		t.Errorf("message %q does not name the chart type", err.Message)
	}
}

func TestInfo(t *testing.T) {
	err := New(KindMissingRequiredField, "missing required field(s): data").
		WithField("data").
		WithConstraint("field(s) present: data", nil)

	info := err.Info()
	if info["error_type"] != "missing_required_field" {
		t.Errorf("expected error_type missing_required_field, got %v", info["error_type"])
	}
	if info["error_code"] != "MISSING_REQUIRED_FIELD" {
		t.Errorf("expected error_code MISSING_REQUIRED_FIELD, got %v", info["error_code"])
	}
	if info["field_name"] != "data" {
		t.Errorf("expected field_name data, got %v", info["field_name"])
	}
	if _, present := info["actual"]; present {
		t.Error("nil actual value must not appear in error info")
	}
}

func TestMissingFieldsNamesAll(t *testing.T) {
	err := MissingFields([]string{"data", "x_field", "y_fields"})
	if err.Kind != KindMissingRequiredField {
		t.Fatalf("expected missing_required_field, got %s", err.Kind)
	}
	for _, field := range []string{"data", "x_field", "y_fields"} {
		if !strings.Contains(err.Message, field) {
			t.Errorf("message %q does not name %s", err.Message, field)
		}
	}
	if err.Field != "data" {
		t.Errorf("expected first missing field as field name, got %s", err.Field)
	}
}

func TestUnsupportedType(t *testing.T) {
	err := UnsupportedType("mosaic_chart", []string{"bar_chart", "line_chart"})
	if !strings.Contains(err.Message, "mosaic_chart") {
		t.Errorf("message %q does not name the attempted type", err.Message)
	}
	if !strings.Contains(err.Expected, "bar_chart, line_chart") {
		t.Errorf("expected constraint %q does not list the supported set", err.Expected)
	}
	if err.Field != "plot_type" {
		t.Errorf("expected field plot_type, got %s", err.Field)
	}
}
