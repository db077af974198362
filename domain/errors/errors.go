// Package errors provides domain-specific error types for the codec and its plugin surface.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/reglet-dev/ohoo/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail. New error types only need to implement this
// interface without modifying ToErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	// If the error is already a *ErrorDetail (entity), use it directly.
	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	// Generic error - categorize as internal
	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// DecodeErrorKind discriminates the ways a symbol stream can fail to decode.
type DecodeErrorKind string

const (
	// KindOddLength means the input unit count is not a multiple of two.
	KindOddLength DecodeErrorKind = "odd_length"

	// KindInvalidSymbol means a unit is not part of the alphabet.
	KindInvalidSymbol DecodeErrorKind = "invalid_symbol"

	// KindNotValidText means the reconstructed bytes are not valid UTF-8.
	KindNotValidText DecodeErrorKind = "not_valid_text"
)

// Sentinels for errors.Is matching against the decode error kinds.
var (
	ErrOddLength     = stdErrors.New("input length must be even")
	ErrInvalidSymbol = stdErrors.New("input contains an unrecognized symbol")
	ErrNotValidText  = stdErrors.New("decoded bytes are not valid UTF-8 text")
)

// DecodeError is implemented by every error returned from a decode.
// Callers branch on Kind rather than on the message text.
type DecodeError interface {
	DetailedError
	Kind() DecodeErrorKind
}

// OddLengthError reports a symbol stream with an odd number of units.
type OddLengthError struct {
	Length int
}

func (e *OddLengthError) Error() string {
	return fmt.Sprintf("%v (got %d symbols)", ErrOddLength, e.Length)
}

// Kind implements DecodeError.
func (e *OddLengthError) Kind() DecodeErrorKind {
	return KindOddLength
}

// Is matches ErrOddLength.
func (e *OddLengthError) Is(target error) bool {
	return target == ErrOddLength
}

// ToErrorDetail implements DetailedError.
func (e *OddLengthError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("validation", e.Error()).
		WithCode(string(KindOddLength)).
		WithDetails(map[string]any{"length": e.Length})
}

// InvalidSymbolError reports the first unit that is not in the alphabet.
type InvalidSymbolError struct {
	Symbol   rune
	Position int // unit offset into the input
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%v %q at position %d", ErrInvalidSymbol, e.Symbol, e.Position)
}

// Kind implements DecodeError.
func (e *InvalidSymbolError) Kind() DecodeErrorKind {
	return KindInvalidSymbol
}

// Is matches ErrInvalidSymbol.
func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// ToErrorDetail implements DetailedError.
func (e *InvalidSymbolError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("validation", e.Error()).
		WithCode(string(KindInvalidSymbol)).
		WithDetails(map[string]any{
			"symbol":   string(e.Symbol),
			"position": e.Position,
		})
}

// NotValidTextError reports bytes that decoded cleanly from symbols but do not
// form valid UTF-8. Raw keeps the bytes so nothing is lost.
type NotValidTextError struct {
	Raw []byte
}

func (e *NotValidTextError) Error() string {
	return fmt.Sprintf("%v (hex: %s)", ErrNotValidText, e.Hex())
}

// Hex renders Raw as lowercase two-digit pairs separated by single spaces.
func (e *NotValidTextError) Hex() string {
	return FormatHex(e.Raw)
}

// Kind implements DecodeError.
func (e *NotValidTextError) Kind() DecodeErrorKind {
	return KindNotValidText
}

// Is matches ErrNotValidText.
func (e *NotValidTextError) Is(target error) bool {
	return target == ErrNotValidText
}

// ToErrorDetail implements DetailedError.
func (e *NotValidTextError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("validation", e.Error()).
		WithCode(string(KindNotValidText)).
		WithDetails(map[string]any{"raw_hex": e.Hex()})
}

// FormatHex renders b as "ff 20 41".
func FormatHex(b []byte) string {
	const digits = "0123456789abcdef"
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(digits[c>>4])
		sb.WriteByte(digits[c&0x0F])
	}
	return sb.String()
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// SchemaError represents a schema generation or validation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "schema"}
}

// WireFormatError represents a wire format encoding/decoding error.
type WireFormatError struct {
	Err       error
	Operation string
	Format    string
}

func (e *WireFormatError) Error() string {
	return fmt.Sprintf("wire format %s failed for %s: %v", e.Operation, e.Format, e.Err)
}

func (e *WireFormatError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *WireFormatError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "wire_format"}
}
