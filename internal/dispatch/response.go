package dispatch

import (
	"fmt"

	"plotcast/internal/ploterr"
)

// Response is the envelope returned for every plotting task, success or
// failure. It always carries a status and a human-readable message; on
// success it names the artifact path, on failure it carries the structured
// error_info object.
type Response struct {
	Status     string                 `json:"status"`
	Message    string                 `json:"message"`
	SavePath   string                 `json:"save_path,omitempty"`
	ErrorInfo  map[string]interface{} `json:"error_info,omitempty"`
	StackTrace string                 `json:"stack_trace,omitempty"`
}

// Succeeded reports whether the response describes a completed render.
func (r *Response) Succeeded() bool {
	return r.Status == StatusSuccess
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func successResponse(chartType, savePath string) *Response {
	return &Response{
		Status:   StatusSuccess,
		Message:  fmt.Sprintf("%s saved successfully", chartType),
		SavePath: savePath,
	}
}

func errorResponse(perr *ploterr.Error, stackTrace string) *Response {
	return &Response{
		Status:     StatusError,
		Message:    perr.Message,
		ErrorInfo:  perr.Info(),
		StackTrace: stackTrace,
	}
}
