package ploterr

import (
	"fmt"
	"strings"
)

// Kind classifies a plotting failure.
type Kind string

const (
	KindMalformedRequest          Kind = "malformed_request"
	KindUnsupportedChartType      Kind = "unsupported_chart_type"
	KindMissingRequiredField      Kind = "missing_required_field"
	KindInvalidDataShape          Kind = "invalid_data_shape"
	KindMissingDataField          Kind = "missing_data_field"
	KindInvalidFieldValue         Kind = "invalid_field_value"
	KindRendererParameterMismatch Kind = "renderer_parameter_mismatch"
	KindChartGenerationFailed     Kind = "chart_generation_failed"
	KindUnknown                   Kind = "unknown_error"
)

// Machine-readable error codes for each failure kind
const (
	CodeMalformedRequest          = "MALFORMED_REQUEST"
	CodeUnsupportedChartType      = "UNSUPPORTED_CHART_TYPE"
	CodeMissingRequiredField      = "MISSING_REQUIRED_FIELD"
	CodeInvalidDataShape          = "INVALID_DATA_SHAPE"
	CodeMissingDataField          = "MISSING_DATA_FIELD"
	CodeInvalidFieldValue         = "INVALID_FIELD_VALUE"
	CodeRendererParameterMismatch = "RENDERER_PARAMETER_MISMATCH"
	CodeChartGenerationFailed     = "CHART_GENERATION_FAILED"
	CodeUnknown                   = "UNKNOWN_ERROR"
)

// Code returns the machine-readable code for a kind.
func (k Kind) Code() string {
	switch k {
	case KindMalformedRequest:
		return CodeMalformedRequest
	case KindUnsupportedChartType:
		return CodeUnsupportedChartType
	case KindMissingRequiredField:
		return CodeMissingRequiredField
	case KindInvalidDataShape:
		return CodeInvalidDataShape
	case KindMissingDataField:
		return CodeMissingDataField
	case KindInvalidFieldValue:
		return CodeInvalidFieldValue
	case KindRendererParameterMismatch:
		return CodeRendererParameterMismatch
	case KindChartGenerationFailed:
		return CodeChartGenerationFailed
	default:
		return CodeUnknown
	}
}

// Validation reports whether failures of this kind are caller mistakes
// (logged at warning level) rather than generation or IO faults.
func (k Kind) Validation() bool {
	switch k {
	case KindChartGenerationFailed, KindUnknown:
		return false
	default:
		return true
	}
}

// Error is a structured plotting failure. It always carries at least one
// concrete reason; it is never an opaque "invalid".
type Error struct {
	Kind     Kind
	Message  string
	Field    string      // offending field name, if any
	Expected string      // constraint description, if any
	Actual   interface{} // offending value, if capturable
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Kind.Code(), e.Message)
	if e.Field != "" {
		fmt.Fprintf(&b, " (field: %s)", e.Field)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, " (expected: %s)", e.Expected)
	}
	if e.Actual != nil {
		fmt.Fprintf(&b, " (actual: %v)", e.Actual)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause, allowing errors.Is/As chaining.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Info converts the error into the error_info object of the response
// envelope.
func (e *Error) Info() map[string]interface{} {
	info := map[string]interface{}{
		"error_type": string(e.Kind),
		"error_code": e.Kind.Code(),
		"message":    e.Message,
	}
	if e.Field != "" {
		info["field_name"] = e.Field
	}
	if e.Expected != "" {
		info["expected"] = e.Expected
	}
	if e.Actual != nil {
		info["actual"] = e.Actual
	}
	return info
}

// New creates a structured plotting error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a structured plotting error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithField attaches the offending field name.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithConstraint attaches the expected-constraint description and the
// offending value.
func (e *Error) WithConstraint(expected string, actual interface{}) *Error {
	e.Expected = expected
	e.Actual = actual
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Malformed creates a MalformedRequest error.
func Malformed(message string) *Error {
	return New(KindMalformedRequest, message)
}

// UnsupportedType creates an UnsupportedChartType error naming the attempted
// type and the supported set.
func UnsupportedType(plotType string, supported []string) *Error {
	return &Error{
		Kind:     KindUnsupportedChartType,
		Message:  fmt.Sprintf("unsupported chart type %q", plotType),
		Field:    "plot_type",
		Expected: "one of " + strings.Join(supported, ", "),
		Actual:   plotType,
	}
}

// MissingFields creates a MissingRequiredField error naming every missing
// field, not just the first.
func MissingFields(fields []string) *Error {
	return &Error{
		Kind:     KindMissingRequiredField,
		Message:  "missing required field(s): " + strings.Join(fields, ", "),
		Field:    fields[0],
		Expected: "field(s) present: " + strings.Join(fields, ", "),
	}
}

// GenerationFailed wraps a renderer failure, preserving its message.
func GenerationFailed(chartType string, cause error) *Error {
	return &Error{
		Kind:    KindChartGenerationFailed,
		Message: fmt.Sprintf("chart generation failed for %s: %v", chartType, cause),
		Cause:   cause,
	}
}

// Unknown wraps anything not otherwise classified.
func Unknown(cause error) *Error {
	return &Error{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("unexpected error: %v", cause),
		Cause:   cause,
	}
}
