// Package entities provides the core domain entities shared by the codec, the
// translator plugin and its front ends: results, structured error details,
// run metadata and plugin manifests.
package entities
