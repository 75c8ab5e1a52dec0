package testutil

import (
	"github.com/skosovsky/toolcall"
)

// TestScope is the registry scope used by NewTestRegistry.
const TestScope = "test"

// NewTestRegistry returns a Registry with the given definitions registered
// under TestScope.
func NewTestRegistry(defs ...*toolcall.ToolDefinition) *toolcall.Registry {
	reg := toolcall.NewRegistry()
	for _, def := range defs {
		reg.Register(TestScope, def)
	}
	return reg
}

// NewTestExecutor returns an Executor with panic recovery enabled and the
// given engine wired in, suitable for tests.
func NewTestExecutor(engine toolcall.ActionEngine, opts ...toolcall.ExecutorOption) *toolcall.Executor {
	base := []toolcall.ExecutorOption{
		toolcall.WithRecoverPanics(true),
	}
	if engine != nil {
		base = append(base, toolcall.WithActionEngine(engine))
	}
	return toolcall.NewExecutor(append(base, opts...)...)
}
