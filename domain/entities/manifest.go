package entities

import "encoding/json"

// PluginManifest is the declared plugin description loaded from plugin.yaml.
type PluginManifest struct {
	Name        string        `json:"name" yaml:"name" validate:"required"`
	Version     string        `json:"version" yaml:"version" validate:"required"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Author      string        `json:"author,omitempty" yaml:"author,omitempty"`
	Commands    []CommandSpec `json:"commands" yaml:"commands" validate:"required,min=1,dive"`
}

// CommandSpec declares one chat command and the operation it maps to.
type CommandSpec struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Operation   string   `json:"operation" yaml:"operation" validate:"required"`
	Usage       string   `json:"usage" yaml:"usage" validate:"required"`
	Description string   `json:"description" yaml:"description"`
	Example     string   `json:"example,omitempty" yaml:"example,omitempty"`
}

// Command returns the spec whose name or alias equals name.
func (m *PluginManifest) Command(name string) (CommandSpec, bool) {
	for _, c := range m.Commands {
		if c.Name == name {
			return c, true
		}
		for _, a := range c.Aliases {
			if a == name {
				return c, true
			}
		}
	}
	return CommandSpec{}, false
}

// Manifest is the generated description of a plugin definition and its services.
type Manifest struct {
	Name         string                     `json:"name"`
	Version      string                     `json:"version"`
	Description  string                     `json:"description,omitempty"`
	ConfigSchema json.RawMessage            `json:"config_schema,omitempty"`
	Services     map[string]ServiceManifest `json:"services"`
}

// ServiceManifest describes one registered service.
type ServiceManifest struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Operations  []OperationManifest `json:"operations"`
}

// OperationManifest describes one operation of a service.
type OperationManifest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
