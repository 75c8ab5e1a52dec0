package toolcall

import (
	"slices"
	"sync"
)

// Registry is a scoped, concurrently-accessed store of tool definitions.
// Every mutation is serialized through one mutex so readers always observe
// fully-applied writes; there is no ambient global state.
type Registry struct {
	mu     sync.Mutex
	scopes map[string]map[string]*ToolDefinition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		scopes: make(map[string]map[string]*ToolDefinition),
	}
}

// Register upserts a definition under (scope, def.Name()). Registering the
// same name twice replaces the previous definition. Safe for concurrent use.
func (r *Registry) Register(scope string, def *ToolDefinition) {
	if def == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tools, ok := r.scopes[scope]
	if !ok {
		tools = make(map[string]*ToolDefinition)
		r.scopes[scope] = tools
	}
	tools[def.Name()] = def
}

// Get returns the definition registered under (scope, name), or (nil, false).
func (r *Registry) Get(scope, name string) (*ToolDefinition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.scopes[scope][name]
	return def, ok
}

// List returns all definitions in scope, sorted by name for deterministic
// export to LLM providers.
func (r *Registry) List(scope string) []*ToolDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()
	tools := r.scopes[scope]
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]*ToolDefinition, 0, len(names))
	for _, name := range names {
		out = append(out, tools[name])
	}
	return out
}

// Unregister removes (scope, name); no-op if absent.
func (r *Registry) Unregister(scope, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scopes[scope], name)
}

// Clear removes every definition in scope.
func (r *Registry) Clear(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scopes, scope)
}

// ClearAll removes every definition in every scope. Useful for test isolation.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = make(map[string]map[string]*ToolDefinition)
}

// Schemas returns provider-ready schemas for every definition in scope,
// sorted by tool name.
func (r *Registry) Schemas(scope string) []*ToolSchema {
	defs := r.List(scope)
	out := make([]*ToolSchema, 0, len(defs))
	for _, def := range defs {
		out = append(out, SchemaFor(def))
	}
	return out
}
