// Package testutil provides test helpers for toolcall (e.g. MockEngine).
package testutil

import (
	"context"
	"sync"

	"github.com/skosovsky/toolcall"
)

// MockEngine is a configurable ActionEngine implementation for tests.
// Safe for concurrent use; batches dispatch calls from multiple goroutines.
type MockEngine struct {
	RunFn  func(ctx context.Context, req toolcall.ActionRequest) (any, error)
	FindFn func(ctx context.Context, resource string, id any) (map[string]any, error)

	mu    sync.Mutex
	calls []toolcall.ActionRequest
}

// Run records the request and delegates to RunFn; without RunFn it returns
// the request args back as a record.
func (m *MockEngine) Run(ctx context.Context, req toolcall.ActionRequest) (any, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.RunFn != nil {
		return m.RunFn(ctx, req)
	}
	return req.Args, nil
}

// Calls returns a copy of every ActionRequest passed to Run so far.
func (m *MockEngine) Calls() []toolcall.ActionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]toolcall.ActionRequest(nil), m.calls...)
}

// Find delegates to FindFn; without FindFn it reports not found.
func (m *MockEngine) Find(ctx context.Context, resource string, id any) (map[string]any, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, resource, id)
	}
	return nil, nil
}

// Ensure MockEngine implements ActionEngine.
var _ toolcall.ActionEngine = (*MockEngine)(nil)
