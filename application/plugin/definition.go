package plugin

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/reglet-dev/ohoo/application/schema"
	"github.com/reglet-dev/ohoo/domain/entities"
)

// PluginDef defines plugin identity and configuration.
type PluginDef struct {
	Name        string
	Version     string
	Description string
	Config      interface{} // Struct for schema generation
}

// PluginDefinition holds the parsed plugin definition and registered services.
type PluginDefinition struct {
	def          PluginDef
	configSchema json.RawMessage
	services     map[string]*serviceEntry
	mu           sync.RWMutex
}

// serviceEntry holds a registered service.
type serviceEntry struct {
	name        string
	description string
	operations  map[string]*operationEntry
}

// operationEntry holds a registered operation.
type operationEntry struct {
	name        string
	description string
	handler     HandlerFunc
}

// DefinePlugin creates a new plugin definition.
// It panics if the config struct cannot be reflected into a schema.
func DefinePlugin(def PluginDef) *PluginDefinition {
	configSchema := []byte("{}")
	if def.Config != nil {
		var err error
		configSchema, err = schema.GenerateSchema(def.Config)
		if err != nil {
			panic("failed to generate config schema: " + err.Error())
		}
	}

	return &PluginDefinition{
		def:          def,
		configSchema: configSchema,
		services:     make(map[string]*serviceEntry),
	}
}

// Name returns the plugin name.
func (p *PluginDefinition) Name() string {
	return p.def.Name
}

// Version returns the plugin version.
func (p *PluginDefinition) Version() string {
	return p.def.Version
}

// ConfigSchema returns the JSON schema of the plugin config.
func (p *PluginDefinition) ConfigSchema() []byte {
	return p.configSchema
}

// Manifest returns the complete plugin manifest.
// Operations are sorted by name.
func (p *PluginDefinition) Manifest() *entities.Manifest {
	p.mu.RLock()
	defer p.mu.RUnlock()

	services := make(map[string]entities.ServiceManifest)
	for name, svc := range p.services {
		ops := make([]entities.OperationManifest, 0, len(svc.operations))
		for _, op := range svc.operations {
			ops = append(ops, entities.OperationManifest{
				Name:        op.name,
				Description: op.description,
			})
		}
		sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
		services[name] = entities.ServiceManifest{
			Name:        svc.name,
			Description: svc.description,
			Operations:  ops,
		}
	}

	return &entities.Manifest{
		Name:         p.def.Name,
		Version:      p.def.Version,
		Description:  p.def.Description,
		ConfigSchema: p.configSchema,
		Services:     services,
	}
}

// RegisterHandler registers a handler for a service/operation.
// Called internally by RegisterService.
func (p *PluginDefinition) RegisterHandler(serviceName, serviceDesc, opName, opDesc string, handler HandlerFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()

	svc, ok := p.services[serviceName]
	if !ok {
		svc = &serviceEntry{
			name:        serviceName,
			description: serviceDesc,
			operations:  make(map[string]*operationEntry),
		}
		p.services[serviceName] = svc
	}

	svc.operations[opName] = &operationEntry{
		name:        opName,
		description: opDesc,
		handler:     handler,
	}
}

// GetHandler returns a handler for the given service/operation.
func (p *PluginDefinition) GetHandler(serviceName, opName string) (HandlerFunc, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	svc, ok := p.services[serviceName]
	if !ok {
		return nil, false
	}

	op, ok := svc.operations[opName]
	if !ok {
		return nil, false
	}

	return op.handler, true
}
