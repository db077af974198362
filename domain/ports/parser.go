package ports

import "github.com/reglet-dev/ohoo/domain/entities"

// ManifestParser parses raw YAML bytes into a PluginManifest.
type ManifestParser interface {
	// Parse unmarshals YAML bytes into a PluginManifest struct.
	Parse(data []byte) (*entities.PluginManifest, error)
}
