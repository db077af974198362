package ohoo_test

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/ohoo"
)

func TestEncodeDecode(t *testing.T) {
	encoded := ohoo.Encode("Hi")
	assert.Equal(t, "咕～嗯哈", encoded)

	decoded, err := ohoo.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Hi", decoded)
}

func TestBytes(t *testing.T) {
	raw := []byte{0xff, 0x20, 0x41}
	symbols := ohoo.EncodeBytes(raw)

	got, err := ohoo.DecodeBytes(symbols)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = ohoo.Decode(symbols)
	var nvt *ohoo.NotValidTextError
	require.True(t, stdErrors.As(err, &nvt))
	assert.Equal(t, "ff 20 41", nvt.Hex())
	assert.ErrorIs(t, err, ohoo.ErrNotValidText)
}

func TestDecodeErrorKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  ohoo.DecodeErrorKind
	}{
		{"咕", ohoo.KindOddLength},
		{"咕x", ohoo.KindInvalidSymbol},
		{"～齁", ohoo.KindNotValidText},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			_, err := ohoo.Decode(tt.input)
			var de ohoo.DecodeError
			require.True(t, stdErrors.As(err, &de))
			assert.Equal(t, tt.kind, de.Kind())
		})
	}
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, 16, len([]rune(ohoo.Symbols)))
}

func ExampleDecode() {
	_, err := ohoo.Decode("呼呼啊齁咕哦")
	var nvt *ohoo.NotValidTextError
	if stdErrors.As(err, &nvt) {
		fmt.Println(nvt.Hex())
	}
	// Output: ff 70 41
}
