// Package parser reads plugin manifests.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/ohoo/domain/entities"
	"github.com/reglet-dev/ohoo/domain/ports"
)

// YamlManifestParser implements ManifestParser for YAML.
type YamlManifestParser struct {
	strict bool
}

// ParserOption configures a YamlManifestParser.
type ParserOption func(*YamlManifestParser)

// WithStrict rejects manifests containing unknown keys. On by default.
func WithStrict(enabled bool) ParserOption {
	return func(p *YamlManifestParser) {
		p.strict = enabled
	}
}

// NewYamlManifestParser creates a new YamlManifestParser.
func NewYamlManifestParser(opts ...ParserOption) ports.ManifestParser {
	p := &YamlManifestParser{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse unmarshals YAML bytes into a PluginManifest struct.
func (p *YamlManifestParser) Parse(data []byte) (*entities.PluginManifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(p.strict)

	var manifest entities.PluginManifest
	if err := dec.Decode(&manifest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}
