// Package wireformat defines the request and response envelopes exchanged with
// the translator over stdin/stdout, and their JSON and CBOR encodings. These
// types are an external contract and must stay backward compatible.
package wireformat

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/reglet-dev/ohoo/domain/entities"
	"github.com/reglet-dev/ohoo/domain/errors"
)

// Format names an envelope encoding.
type Format string

const (
	// FormatJSON is encoding/json.
	FormatJSON Format = "json"

	// FormatCBOR is CBOR with core deterministic encoding.
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", &errors.WireFormatError{
			Operation: "parse",
			Format:    s,
			Err:       fmt.Errorf("unsupported format (want %s or %s)", FormatJSON, FormatCBOR),
		}
	}
}

// TranscodeRequestWire asks the translator to run one operation.
type TranscodeRequestWire struct {
	Mode string `json:"mode" cbor:"mode"`
	Text string `json:"text" cbor:"text"`
	Raw  bool   `json:"raw,omitempty" cbor:"raw,omitempty"`
}

// Config returns the request as a translator config map.
func (r TranscodeRequestWire) Config() map[string]any {
	return map[string]any{"mode": r.Mode, "text": r.Text, "raw": r.Raw}
}

// TranscodeResponseWire carries the result of a TranscodeRequestWire.
type TranscodeResponseWire struct {
	Result entities.Result `json:"result" cbor:"result"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	encOptions := cbor.CoreDetEncOptions()
	// Keep sub-second precision on result timestamps.
	encOptions.Time = cbor.TimeRFC3339Nano

	var err error
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("wireformat: CBOR encoder initialization failed: " + err.Error())
	}

	// Result.Data and ErrorDetail.Details are map[string]any; nested maps
	// must decode with string keys as they do from JSON.
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("wireformat: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v in format.
func Marshal(format Format, v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(v)
	case FormatCBOR:
		data, err = encMode.Marshal(v)
	default:
		err = fmt.Errorf("unsupported format")
	}
	if err != nil {
		return nil, &errors.WireFormatError{Operation: "marshal", Format: string(format), Err: err}
	}
	return data, nil
}

// Unmarshal decodes data in format into v.
func Unmarshal(format Format, data []byte, v any) error {
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatCBOR:
		err = decMode.Unmarshal(data, v)
	default:
		err = fmt.Errorf("unsupported format")
	}
	if err != nil {
		return &errors.WireFormatError{Operation: "unmarshal", Format: string(format), Err: err}
	}
	return nil
}
