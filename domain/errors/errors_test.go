package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/ohoo/domain/entities"
)

func TestOddLengthError(t *testing.T) {
	err := &OddLengthError{Length: 3}

	assert.Equal(t, "input length must be even (got 3 symbols)", err.Error())
	assert.Equal(t, KindOddLength, err.Kind())
	assert.True(t, errors.Is(err, ErrOddLength))
	assert.False(t, errors.Is(err, ErrInvalidSymbol))

	detail := err.ToErrorDetail()
	assert.Equal(t, "validation", detail.Type)
	assert.Equal(t, "odd_length", detail.Code)
	assert.Equal(t, 3, detail.Details["length"])
}

func TestInvalidSymbolError(t *testing.T) {
	err := &InvalidSymbolError{Symbol: 'a', Position: 4}

	assert.Equal(t, `input contains an unrecognized symbol 'a' at position 4`, err.Error())
	assert.Equal(t, KindInvalidSymbol, err.Kind())
	assert.True(t, errors.Is(err, ErrInvalidSymbol))

	detail := err.ToErrorDetail()
	assert.Equal(t, "invalid_symbol", detail.Code)
	assert.Equal(t, "a", detail.Details["symbol"])
	assert.Equal(t, 4, detail.Details["position"])
}

func TestNotValidTextError(t *testing.T) {
	err := &NotValidTextError{Raw: []byte{0xff, 0x20, 0x41}}

	assert.Equal(t, "ff 20 41", err.Hex())
	assert.Equal(t, "decoded bytes are not valid UTF-8 text (hex: ff 20 41)", err.Error())
	assert.Equal(t, KindNotValidText, err.Kind())
	assert.True(t, errors.Is(err, ErrNotValidText))

	detail := err.ToErrorDetail()
	assert.Equal(t, "not_valid_text", detail.Code)
	assert.Equal(t, "ff 20 41", detail.Detail("raw_hex"))
}

func TestDecodeError_Interface(t *testing.T) {
	kinds := map[DecodeErrorKind]DecodeError{
		KindOddLength:     &OddLengthError{Length: 1},
		KindInvalidSymbol: &InvalidSymbolError{Symbol: 'x'},
		KindNotValidText:  &NotValidTextError{Raw: []byte{0x80}},
	}

	for kind, err := range kinds {
		wrapped := fmt.Errorf("decode: %w", err)

		var de DecodeError
		require.True(t, errors.As(wrapped, &de))
		assert.Equal(t, kind, de.Kind())
		assert.Equal(t, string(kind), ToErrorDetail(wrapped).Code)
	}
}

func TestFormatHex(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{nil, ""},
		{[]byte{0x80}, "80"},
		{[]byte{0x00, 0x0a, 0xab}, "00 0a ab"},
		{[]byte{0xff, 0x20, 0x41}, "ff 20 41"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHex(tt.in))
	}
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("must be one of: encode decode")
	err := &ConfigError{
		Field: "mode",
		Err:   baseErr,
	}

	assert.Equal(t, "config validation failed for field 'mode': must be one of: encode decode", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "mode", configErr.Field)
	assert.Equal(t, "config", err.ToErrorDetail().Type)
}

func TestConfigError_NoField(t *testing.T) {
	err := &ConfigError{Err: fmt.Errorf("invalid format")}

	assert.Equal(t, "config validation failed: invalid format", err.Error())
}

func TestSchemaError(t *testing.T) {
	baseErr := fmt.Errorf("unsupported type")
	err := &SchemaError{Type: "TranslateConfig", Err: baseErr}

	assert.Equal(t, "schema error for type TranslateConfig: unsupported type", err.Error())
	assert.True(t, errors.Is(err, baseErr))
	assert.Equal(t, "schema error: unsupported type", (&SchemaError{Err: baseErr}).Error())
}

func TestWireFormatError(t *testing.T) {
	baseErr := fmt.Errorf("unexpected EOF")
	err := &WireFormatError{Operation: "unmarshal", Format: "cbor", Err: baseErr}

	assert.Equal(t, "wire format unmarshal failed for cbor: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, baseErr))
	assert.Equal(t, "wire_format", err.ToErrorDetail().Code)
}

func TestToErrorDetail(t *testing.T) {
	assert.Nil(t, ToErrorDetail(nil))

	generic := ToErrorDetail(fmt.Errorf("boom"))
	assert.Equal(t, "internal", generic.Type)
	assert.Equal(t, "boom", generic.Message)

	entity := entities.NewErrorDetail("config", "already structured")
	assert.Same(t, entity, ToErrorDetail(fmt.Errorf("wrap: %w", entity)))
}
