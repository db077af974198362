package translator

import (
	"github.com/reglet-dev/ohoo/application/config"
	"github.com/reglet-dev/ohoo/application/validation"
)

// Modes accepted by Check.
const (
	ModeEncode = "encode"
	ModeDecode = "decode"
	ModeHelp   = "help"
)

// TranslateConfig is the configuration of a single Check call. Text may be
// empty: the empty string encodes and decodes to itself.
type TranslateConfig struct {
	Mode string `json:"mode" jsonschema:"enum=encode,enum=decode,enum=help,default=encode" validate:"required,oneof=encode decode help"`
	Text string `json:"text,omitempty" jsonschema:"description=Plain text to encode or symbols to decode"`
	Raw  bool   `json:"raw,omitempty" jsonschema:"description=Decode to hex bytes without requiring UTF-8 text" validate:"excluded_unless=Mode decode"`
}

// LoadConfig extracts and validates the configuration from the input map.
func LoadConfig(cfg map[string]any) (TranslateConfig, error) {
	var (
		tc  TranslateConfig
		err error
	)
	if tc.Mode, err = config.String(cfg, "mode", ModeEncode); err != nil {
		return TranslateConfig{}, err
	}
	if tc.Text, err = config.String(cfg, "text", ""); err != nil {
		return TranslateConfig{}, err
	}
	if tc.Raw, err = config.Bool(cfg, "raw", false); err != nil {
		return TranslateConfig{}, err
	}
	if err := validation.ValidateStruct(&tc); err != nil {
		return TranslateConfig{}, err
	}
	return tc, nil
}
