package translator_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/ohoo/application/translator"
	"github.com/reglet-dev/ohoo/domain/codec"
	"github.com/reglet-dev/ohoo/domain/entities"
	"github.com/reglet-dev/ohoo/infrastructure/parser"
	"github.com/reglet-dev/ohoo/internal/testutil"
)

func newTranslator(t *testing.T, opts ...translator.Option) *translator.Translator {
	t.Helper()
	m, err := translator.LoadManifest(parser.NewYamlManifestParser())
	require.NoError(t, err)

	tr, err := translator.New(m, opts...)
	require.NoError(t, err)
	return tr
}

func TestLoadManifest(t *testing.T) {
	m, err := translator.LoadManifest(parser.NewYamlManifestParser())
	require.NoError(t, err)

	assert.Equal(t, "ohoo_translator", m.Name)
	assert.Equal(t, "1.0.0", m.Version)

	c, ok := m.Command("help")
	require.True(t, ok)
	assert.Equal(t, "Trans_help", c.Name)
	assert.Equal(t, translator.ModeHelp, c.Operation)
}

func TestParseManifest_Invalid(t *testing.T) {
	p := parser.NewYamlManifestParser()

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"bad yaml", "name: [", "field 'manifest'"},
		{"missing version", "name: x\ncommands:\n  - {name: e, operation: encode, usage: u}\n", "field 'version'"},
		{"no commands", "name: x\nversion: \"1\"\n", "field 'commands'"},
		{"unknown op", "name: x\nversion: \"1\"\ncommands:\n  - {name: r, operation: rot13, usage: u}\n", `unknown operation "rot13"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := translator.ParseManifest(p, []byte(tt.raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTranslator_Describe(t *testing.T) {
	tr := newTranslator(t)

	meta, err := tr.Describe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ohoo_translator", meta.Name)
	assert.Equal(t, []string{"encode", "decode", "Trans_help"}, meta.Commands)
}

func TestTranslator_Schema(t *testing.T) {
	tr := newTranslator(t)

	raw, err := tr.Schema(context.Background())
	require.NoError(t, err)

	var schemaMap map[string]any
	require.NoError(t, json.Unmarshal(raw, &schemaMap))
	props, ok := schemaMap["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "mode")
	assert.Contains(t, props, "text")
	assert.Contains(t, props, "raw")
}

func TestTranslator_Manifest(t *testing.T) {
	tr := newTranslator(t)

	m := tr.Definition().Manifest()
	svc, ok := m.Services[translator.ServiceName]
	require.True(t, ok)

	names := make([]string, 0, len(svc.Operations))
	for _, op := range svc.Operations {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{"decode", "encode", "help"}, names)
	assert.Equal(t, "ohoo_translator", tr.Manifest().Name)
}

func TestTranslator_CheckEncode(t *testing.T) {
	tr := newTranslator(t)

	res, err := tr.Check(context.Background(), map[string]any{"mode": "encode", "text": "Hi"})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "咕～嗯哈", res.String("encoded"))
	assert.Equal(t, 2, res.Data["byte_length"])
	assert.Equal(t, 4, res.Data["symbol_count"])

	// mode defaults to encode
	res, err = tr.Check(context.Background(), map[string]any{"text": "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "咕～嗯哈", res.String("encoded"))
}

func TestTranslator_CheckDecode(t *testing.T) {
	tr := newTranslator(t)
	ctx := context.Background()

	res, err := tr.Check(ctx, map[string]any{"mode": "decode", "text": "咕～嗯哈"})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "Hi", res.String("decoded"))

	tests := []struct {
		name     string
		text     string
		wantCode string
		wantHex  string
	}{
		{"odd length", "咕～嗯", "odd_length", ""},
		{"invalid symbol", "咕a", "invalid_symbol", ""},
		{"not valid text", "～齁", "not_valid_text", "80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tr.Check(ctx, map[string]any{"mode": "decode", "text": tt.text})
			require.NoError(t, err)
			testutil.AssertErrorResult(t, res, "validation", tt.wantCode)
			assert.Equal(t, tt.wantHex, res.Error.Detail("raw_hex"))
		})
	}
}

func TestTranslator_CheckConfigErrors(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		name      string
		cfg       map[string]any
		wantField string
	}{
		{"unknown mode", map[string]any{"mode": "rot13", "text": "x"}, "mode"},
		{"mode not a string", map[string]any{"mode": 1, "text": "x"}, "mode"},
		{"text not a string", map[string]any{"mode": "encode", "text": []byte("x")}, "text"},
		{"raw not a bool", map[string]any{"mode": "decode", "text": "x", "raw": "yes"}, "raw"},
		{"raw with encode", map[string]any{"mode": "encode", "text": "x", "raw": true}, "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tr.Check(context.Background(), tt.cfg)
			require.NoError(t, err)
			testutil.AssertErrorResult(t, res, "config", tt.wantField)
		})
	}
}

func TestTranslator_CheckEmptyText(t *testing.T) {
	tr := newTranslator(t)
	ctx := context.Background()

	res, err := tr.Check(ctx, map[string]any{"mode": "encode", "text": ""})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "", res.String("encoded"))
	assert.Equal(t, 0, res.Data["symbol_count"])

	res, err = tr.Check(ctx, map[string]any{"mode": "decode"})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Contains(t, res.Data, "decoded")
	assert.Equal(t, "", res.String("decoded"))
}

func TestTranslator_CheckDecodeRaw(t *testing.T) {
	tr := newTranslator(t)
	ctx := context.Background()

	res, err := tr.Check(ctx, map[string]any{"mode": "decode", "text": "呼呼啊齁咕哦", "raw": true})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "ff 70 41", res.String("raw_hex"))
	assert.Equal(t, 3, res.Data["byte_length"])
	assert.NotContains(t, res.Data, "decoded")

	res, err = tr.Check(ctx, map[string]any{"mode": "decode", "text": "咕～嗯哈", "raw": true})
	require.NoError(t, err)
	assert.Equal(t, "48 69", res.String("raw_hex"))
	assert.Equal(t, "Hi", res.String("decoded"))

	res, err = tr.Check(ctx, map[string]any{"mode": "decode", "text": "咕", "raw": true})
	require.NoError(t, err)
	testutil.AssertErrorResult(t, res, "validation", "odd_length")
}

func TestTranslator_CheckHelp(t *testing.T) {
	tr := newTranslator(t)

	res, err := tr.Check(context.Background(), map[string]any{"mode": "help"})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	help := res.String("help")
	assert.Contains(t, help, "ohoo_translator 1.0.0")
	assert.Contains(t, help, "/encode <text>")
	assert.Contains(t, help, "/decode <symbols>")
	assert.Contains(t, help, "/Trans_help")
	assert.Contains(t, help, "/encode Hello, world!")
	assert.Contains(t, help, codec.DefaultSymbols)
}

func TestTranslator_CustomCodec(t *testing.T) {
	tr := newTranslator(t, translator.WithCodec(codec.New(codec.MustAlphabet("0123456789abcdef"))))

	res, err := tr.Check(context.Background(), map[string]any{"text": "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "4869", res.String("encoded"))
}

func TestTranslator_Lifecycle(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	tr := newTranslator(t, translator.WithLogger(logger))

	require.NoError(t, tr.Initialize(context.Background()))
	require.NoError(t, tr.Terminate(context.Background()))
	assert.Contains(t, logs.String(), "translator ready")
	assert.Contains(t, logs.String(), "translator unloaded")
}

func TestTranslator_ResultStatus(t *testing.T) {
	tr := newTranslator(t)

	res, err := tr.Check(context.Background(), map[string]any{"mode": "decode", "text": "齁"})
	require.NoError(t, err)
	assert.Equal(t, entities.ResultStatusError, res.Status)
	assert.Contains(t, res.Message, "input length must be even")
}
