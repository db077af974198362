// Package translator is the ohoo translator plugin: it exposes the codec as
// encode, decode and help operations described by an embedded plugin.yaml.
package translator

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/ohoo/application/plugin"
	"github.com/reglet-dev/ohoo/application/template"
	"github.com/reglet-dev/ohoo/application/validation"
	"github.com/reglet-dev/ohoo/domain/codec"
	"github.com/reglet-dev/ohoo/domain/entities"
	"github.com/reglet-dev/ohoo/domain/errors"
	"github.com/reglet-dev/ohoo/domain/ports"
)

// ManifestYAML is the plugin manifest shipped with the translator.
//
//go:embed plugin.yaml
var ManifestYAML []byte

//go:embed help.tmpl
var helpTemplate []byte

// LoadManifest parses and validates the embedded manifest.
func LoadManifest(p ports.ManifestParser) (*entities.PluginManifest, error) {
	return ParseManifest(p, ManifestYAML)
}

// ParseManifest parses and validates raw as a translator manifest. Every
// command must name one of the translator's operations.
func ParseManifest(p ports.ManifestParser, raw []byte) (*entities.PluginManifest, error) {
	m, err := p.Parse(raw)
	if err != nil {
		return nil, &errors.ConfigError{Field: "manifest", Err: err}
	}
	if err := validation.ValidateStruct(m); err != nil {
		return nil, err
	}
	for _, c := range m.Commands {
		switch c.Operation {
		case ModeEncode, ModeDecode, ModeHelp:
		default:
			return nil, &errors.ConfigError{
				Field: "commands." + c.Name,
				Err:   fmt.Errorf("unknown operation %q", c.Operation),
			}
		}
	}
	return m, nil
}

// Translator implements plugin.Plugin and plugin.Lifecycle.
type Translator struct {
	manifest  *entities.PluginManifest
	def       *plugin.PluginDefinition
	codec     ports.Transcoder
	alphabet  string
	templates ports.TemplateEngine
	logger    *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithCodec replaces the default codec.
func WithCodec(c *codec.Codec) Option {
	return func(t *Translator) {
		t.codec = c
		t.alphabet = c.Alphabet().String()
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithTemplateEngine replaces the help renderer.
func WithTemplateEngine(e ports.TemplateEngine) Option {
	return func(t *Translator) {
		t.templates = e
	}
}

// New creates a translator for manifest.
func New(manifest *entities.PluginManifest, opts ...Option) (*Translator, error) {
	t := &Translator{
		manifest:  manifest,
		codec:     codec.Default(),
		alphabet:  codec.DefaultAlphabet().String(),
		templates: template.NewGoTemplateEngine(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.def = plugin.DefinePlugin(plugin.PluginDef{
		Name:        manifest.Name,
		Version:     manifest.Version,
		Description: manifest.Description,
		Config:      &TranslateConfig{},
	})
	svc := &Service{codec: t.codec, help: t.renderHelp, logger: t.logger}
	if err := plugin.RegisterService(t.def, svc); err != nil {
		return nil, err
	}
	return t, nil
}

// Manifest returns the declared manifest.
func (t *Translator) Manifest() *entities.PluginManifest {
	return t.manifest
}

// Definition returns the generated plugin definition.
func (t *Translator) Definition() *plugin.PluginDefinition {
	return t.def
}

// Describe implements plugin.Plugin.
func (t *Translator) Describe(ctx context.Context) (entities.Metadata, error) {
	commands := make([]string, 0, len(t.manifest.Commands))
	for _, c := range t.manifest.Commands {
		commands = append(commands, c.Name)
	}
	return entities.Metadata{
		Name:        t.manifest.Name,
		Version:     t.manifest.Version,
		Description: t.manifest.Description,
		Commands:    commands,
	}, nil
}

// Schema implements plugin.Plugin.
func (t *Translator) Schema(ctx context.Context) ([]byte, error) {
	return t.def.ConfigSchema(), nil
}

// Check implements plugin.Plugin. Invalid configuration and rejected input are
// reported in the result; the error return is reserved for internal faults.
func (t *Translator) Check(ctx context.Context, cfgMap map[string]any) (entities.Result, error) {
	cfg, err := LoadConfig(cfgMap)
	if err != nil {
		return entities.ResultError(errors.ToErrorDetail(err)), nil
	}

	handler, ok := t.def.GetHandler(ServiceName, cfg.Mode)
	if !ok {
		return entities.Result{}, fmt.Errorf("no handler for operation %q", cfg.Mode)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return entities.Result{}, fmt.Errorf("failed to marshal config: %w", err)
	}

	res, err := handler(ctx, &plugin.Request{Config: cfg, Text: cfg.Text, Raw: raw})
	if err != nil {
		return entities.Result{}, err
	}
	return *res, nil
}

// Initialize implements plugin.Lifecycle.
func (t *Translator) Initialize(ctx context.Context) error {
	t.logger.InfoContext(ctx, "translator ready", "alphabet", t.alphabet)
	return nil
}

// Terminate implements plugin.Lifecycle.
func (t *Translator) Terminate(ctx context.Context) error {
	t.logger.InfoContext(ctx, "translator unloaded")
	return nil
}

func (t *Translator) renderHelp() (string, error) {
	out, err := t.templates.Render(helpTemplate, map[string]any{
		"name":        t.manifest.Name,
		"version":     t.manifest.Version,
		"description": t.manifest.Description,
		"commands":    t.manifest.Commands,
		"alphabet":    t.alphabet,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render help: %w", err)
	}
	return string(out), nil
}
