package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codecerrors "github.com/reglet-dev/ohoo/domain/errors"
)

type testConfig struct {
	Mode string `json:"mode" validate:"required,oneof=encode decode"`
	Text string `json:"text" validate:"required"`
}

func TestValidateConfig_Valid(t *testing.T) {
	var target testConfig
	err := ValidateConfig(map[string]any{"mode": "encode", "text": "Hi"}, &target)
	require.NoError(t, err)

	assert.Equal(t, "encode", target.Mode)
	assert.Equal(t, "Hi", target.Text)
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		config    map[string]any
		wantField string
		wantMsg   string
	}{
		{"missing mode", map[string]any{"text": "Hi"}, "mode", "is required"},
		{"bad mode", map[string]any{"mode": "rot13", "text": "Hi"}, "mode", "must be one of: encode decode"},
		{"missing text", map[string]any{"mode": "decode"}, "text", "is required"},
		{"wrong type", map[string]any{"mode": 7, "text": "Hi"}, "", "failed to unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target testConfig
			err := ValidateConfig(tt.config, &target)
			require.Error(t, err)

			var cfgErr *codecerrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateStruct_Max(t *testing.T) {
	type limited struct {
		Text string `json:"text" validate:"max=3"`
	}

	err := ValidateStruct(&limited{Text: "toolong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'text': must be at most 3")

	assert.NoError(t, ValidateStruct(&limited{Text: "ok"}))
}
