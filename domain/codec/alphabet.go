package codec

import (
	"fmt"
	"unicode/utf8"
)

// Size is the number of symbols in an alphabet, one per nibble value.
const Size = 16

// DefaultSymbols is the interoperable alphabet, in nibble order 0x0..0xF.
// Existing encoded data depends on both the symbols and their order.
const DefaultSymbols = "齁哦噢喔咕咿嗯啊～哈！唔哼❤呃呼"

// Alphabet is an immutable bijection between nibble values and symbols.
type Alphabet struct {
	index   map[rune]byte
	symbols [Size]rune
}

var defaultAlphabet = MustAlphabet(DefaultSymbols)

// DefaultAlphabet returns the process-wide default alphabet.
func DefaultAlphabet() *Alphabet {
	return defaultAlphabet
}

// NewAlphabet builds an alphabet from exactly 16 distinct code points.
// Each code point of symbols is one symbol; symbols must be valid UTF-8.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if !utf8.ValidString(symbols) {
		return nil, fmt.Errorf("alphabet is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(symbols); n != Size {
		return nil, fmt.Errorf("alphabet must have %d symbols, got %d", Size, n)
	}

	a := &Alphabet{index: make(map[rune]byte, Size)}
	i := 0
	for _, r := range symbols {
		if prev, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet symbol %q repeated at %d and %d", r, prev, i)
		}
		a.symbols[i] = r
		a.index[r] = byte(i)
		i++
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on an invalid alphabet.
// Use it for package-level constants.
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic("codec: " + err.Error())
	}
	return a
}

// Symbol returns the symbol for the low four bits of n.
func (a *Alphabet) Symbol(n byte) rune {
	return a.symbols[n&0x0F]
}

// Value returns the nibble value of r and whether r is in the alphabet.
func (a *Alphabet) Value(r rune) (byte, bool) {
	v, ok := a.index[r]
	return v, ok
}

// Symbols returns the alphabet in nibble order.
func (a *Alphabet) Symbols() [Size]rune {
	return a.symbols
}

// String returns the symbols concatenated in nibble order.
func (a *Alphabet) String() string {
	return string(a.symbols[:])
}

func (a *Alphabet) maxSymbolLen() int {
	n := 0
	for _, r := range a.symbols {
		if l := utf8.RuneLen(r); l > n {
			n = l
		}
	}
	return n
}
