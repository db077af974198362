// Package ohoo is the public entry point of the codec: it re-exports the
// encode and decode functions and the decode error types so callers need a
// single import.
package ohoo

import (
	"github.com/reglet-dev/ohoo/domain/codec"
	"github.com/reglet-dev/ohoo/domain/errors"
)

// Symbols is the default alphabet, ordered by nibble value.
const Symbols = codec.DefaultSymbols

// Decode error types, re-exported from domain/errors.
type (
	DecodeError        = errors.DecodeError
	DecodeErrorKind    = errors.DecodeErrorKind
	OddLengthError     = errors.OddLengthError
	InvalidSymbolError = errors.InvalidSymbolError
	NotValidTextError  = errors.NotValidTextError
)

// Decode error kinds.
const (
	KindOddLength     = errors.KindOddLength
	KindInvalidSymbol = errors.KindInvalidSymbol
	KindNotValidText  = errors.KindNotValidText
)

// Sentinels for errors.Is.
var (
	ErrOddLength     = errors.ErrOddLength
	ErrInvalidSymbol = errors.ErrInvalidSymbol
	ErrNotValidText  = errors.ErrNotValidText
)

// Encode returns two symbols per UTF-8 byte of text, high nibble first.
func Encode(text string) string {
	return codec.Encode(text)
}

// EncodeBytes is Encode for arbitrary bytes.
func EncodeBytes(data []byte) string {
	return codec.Default().EncodeBytes(data)
}

// Decode reverses Encode. The error, if any, implements DecodeError.
func Decode(symbols string) (string, error) {
	return codec.Decode(symbols)
}

// DecodeBytes reverses EncodeBytes without requiring valid UTF-8.
func DecodeBytes(symbols string) ([]byte, error) {
	return codec.Default().DecodeBytes(symbols)
}
