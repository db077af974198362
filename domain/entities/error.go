package entities

import "fmt"

// ErrorDetail provides structured error information.
// Used by plugin results and as the wire error format.
// Error Types: "validation", "config", "internal"
type ErrorDetail struct {
	// Wrapped contains a wrapped error for error chains.
	Wrapped *ErrorDetail `json:"wrapped,omitempty" cbor:"wrapped,omitempty"`

	// Details contains additional error context.
	Details map[string]any `json:"details,omitempty" cbor:"details,omitempty"`

	// Message is a human-readable error description.
	Message string `json:"message" cbor:"message"`

	// Type categorizes the error.
	Type string `json:"type" cbor:"type"`

	// Code is a machine-readable error code.
	Code string `json:"code" cbor:"code"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// NewErrorDetail creates a new ErrorDetail with the given type and message.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{
		Type:    errorType,
		Message: message,
	}
}

// WithDetails attaches details and returns the receiver.
func (e *ErrorDetail) WithDetails(details map[string]any) *ErrorDetail {
	e.Details = details
	return e
}

// WithCode attaches a code and returns the receiver.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}

// Detail returns a string entry from Details, or "" when absent.
func (e *ErrorDetail) Detail(key string) string {
	if e == nil || e.Details == nil {
		return ""
	}
	s, _ := e.Details[key].(string)
	return s
}
