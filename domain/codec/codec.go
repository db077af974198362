// Package codec implements the nibble substitution codec: every byte of the
// UTF-8 form of a text becomes two symbols from a 16-symbol alphabet, high
// nibble first.
//
// The codec is an obfuscation scheme, not encryption. Its tables are built once
// and never mutated, so a Codec is safe for concurrent use.
package codec

import (
	"strings"
	"unicode/utf8"

	"github.com/reglet-dev/ohoo/domain/errors"
)

// Codec encodes and decodes symbol streams over one alphabet.
type Codec struct {
	alphabet  *Alphabet
	symbolLen int
}

var std = New(defaultAlphabet)

// New returns a codec over a.
func New(a *Alphabet) *Codec {
	return &Codec{alphabet: a, symbolLen: a.maxSymbolLen()}
}

// Default returns the codec over the default alphabet.
func Default() *Codec {
	return std
}

// Alphabet returns the codec's alphabet.
func (c *Codec) Alphabet() *Alphabet {
	return c.alphabet
}

// Encode converts text to symbols. It never fails.
// The result has exactly 2*len(text) symbols.
func (c *Codec) Encode(text string) string {
	return encode(c, text)
}

// EncodeBytes converts arbitrary bytes to symbols.
func (c *Codec) EncodeBytes(data []byte) string {
	return encode(c, data)
}

func encode[T ~string | ~[]byte](c *Codec, data T) string {
	if len(data) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(data) * 2 * c.symbolLen)
	for i := 0; i < len(data); i++ {
		b := data[i]
		sb.WriteRune(c.alphabet.symbols[b>>4])
		sb.WriteRune(c.alphabet.symbols[b&0x0F])
	}
	return sb.String()
}

// Decode converts symbols back to text.
//
// A symbol is one code point of the input. Decode fails with
// *errors.OddLengthError when the symbol count is odd, with
// *errors.InvalidSymbolError at the first symbol outside the alphabet, and
// with *errors.NotValidTextError when the recovered bytes are not UTF-8.
func (c *Codec) Decode(symbols string) (string, error) {
	raw, err := c.DecodeBytes(symbols)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", &errors.NotValidTextError{Raw: raw}
	}
	return string(raw), nil
}

// DecodeBytes converts symbols back to bytes without requiring the result to
// be valid UTF-8.
func (c *Codec) DecodeBytes(symbols string) ([]byte, error) {
	n := utf8.RuneCountInString(symbols)
	if n%2 != 0 {
		return nil, &errors.OddLengthError{Length: n}
	}

	out := make([]byte, 0, n/2)
	pos := 0
	for i := 0; i < len(symbols); {
		// Bytes that are not UTF-8 decode to utf8.RuneError, which is never
		// an alphabet symbol.
		hr, hw := utf8.DecodeRuneInString(symbols[i:])
		lr, lw := utf8.DecodeRuneInString(symbols[i+hw:])

		high, ok := c.alphabet.Value(hr)
		if !ok || (hr == utf8.RuneError && hw == 1) {
			return nil, &errors.InvalidSymbolError{Symbol: hr, Position: pos}
		}
		low, ok := c.alphabet.Value(lr)
		if !ok || (lr == utf8.RuneError && lw == 1) {
			return nil, &errors.InvalidSymbolError{Symbol: lr, Position: pos + 1}
		}

		out = append(out, high<<4|low)
		i += hw + lw
		pos += 2
	}
	return out, nil
}

// Encode converts text to symbols with the default codec.
func Encode(text string) string {
	return std.Encode(text)
}

// Decode converts symbols to text with the default codec.
func Decode(symbols string) (string, error) {
	return std.Decode(symbols)
}
