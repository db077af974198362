package entities

import (
	"time"
)

// Metadata identifies a plugin. Returned by Describe.
type Metadata struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Description string   `json:"description" yaml:"description"`
	Commands    []string `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// RunMetadata contains execution metadata for plugin operations.
type RunMetadata struct {
	// StartTime is when the operation started.
	StartTime time.Time `json:"start_time" cbor:"start_time"`

	// EndTime is when the operation completed.
	EndTime time.Time `json:"end_time" cbor:"end_time"`

	// Version is the version of the plugin that executed the operation.
	Version string `json:"version,omitempty" cbor:"version,omitempty"`

	// PluginID identifies the plugin that ran the operation.
	PluginID string `json:"plugin_id,omitempty" cbor:"plugin_id,omitempty"`

	// Duration is the total execution time.
	Duration time.Duration `json:"duration_ns" cbor:"duration_ns"`
}

// NewRunMetadata creates a new RunMetadata with the given start and end times.
func NewRunMetadata(start, end time.Time) *RunMetadata {
	return &RunMetadata{
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
}

// WithVersion sets the plugin version and returns the receiver.
func (m *RunMetadata) WithVersion(version string) *RunMetadata {
	m.Version = version
	return m
}

// WithPluginID sets the plugin ID and returns the receiver.
func (m *RunMetadata) WithPluginID(pluginID string) *RunMetadata {
	m.PluginID = pluginID
	return m
}
