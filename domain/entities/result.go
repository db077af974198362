package entities

import (
	"time"
)

// ResultStatus represents the outcome status of a plugin operation.
type ResultStatus string

const (
	// ResultStatusSuccess indicates the operation completed successfully.
	ResultStatusSuccess ResultStatus = "success"

	// ResultStatusError indicates the input was rejected.
	ResultStatusError ResultStatus = "error"
)

// Result is the outcome of a plugin operation such as an encode or decode.
type Result struct {
	// Timestamp is when this result was created.
	Timestamp time.Time `json:"timestamp" cbor:"timestamp"`

	// Data contains operation-specific result data.
	// Encode sets "encoded"; decode sets "decoded".
	Data map[string]any `json:"data,omitempty" cbor:"data,omitempty"`

	// Metadata contains execution metadata (timing, versions, etc.).
	Metadata *RunMetadata `json:"metadata,omitempty" cbor:"metadata,omitempty"`

	// Error contains structured error information if Status is Error.
	Error *ErrorDetail `json:"error,omitempty" cbor:"error,omitempty"`

	// Status indicates whether the operation succeeded or the input was rejected.
	Status ResultStatus `json:"status" cbor:"status"`

	// Message provides a human-readable description of the result.
	Message string `json:"message,omitempty" cbor:"message,omitempty"`
}

// ResultSuccess creates a successful Result with the given message and data.
func ResultSuccess(message string, data map[string]any) Result {
	return Result{
		Timestamp: time.Now(),
		Status:    ResultStatusSuccess,
		Message:   message,
		Data:      data,
	}
}

// ResultError creates an error Result with the given error details.
func ResultError(err *ErrorDetail) Result {
	return Result{
		Timestamp: time.Now(),
		Status:    ResultStatusError,
		Message:   err.Message,
		Error:     err,
	}
}

// WithMetadata returns a copy of the Result with the given metadata attached.
func (r Result) WithMetadata(m *RunMetadata) Result {
	r.Metadata = m
	return r
}

// IsSuccess returns true if the result indicates success.
func (r Result) IsSuccess() bool {
	return r.Status == ResultStatusSuccess
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == ResultStatusError
}

// String returns Data[key] as a string, or "" when absent.
func (r Result) String(key string) string {
	s, _ := r.Data[key].(string)
	return s
}
