// Package testutil provides shared test utilities for AINode.
package testutil

import (
	"sync"
	"sync/atomic"

	"github.com/tsforecast/ainode/internal/status"
	"github.com/tsforecast/ainode/pkg/types"
)

// MockLookup is an in-memory family lookup with injectable faults.
type MockLookup struct {
	mu        sync.Mutex
	families  map[string]*types.ModelFamily
	err       error
	panicWith any
	returnNil bool

	calls atomic.Int64 // incremented on each Resolve call
}

// NewMockLookup creates a lookup serving the given families.
func NewMockLookup(families ...*types.ModelFamily) *MockLookup {
	m := &MockLookup{families: make(map[string]*types.ModelFamily)}
	for _, f := range families {
		m.Add(f)
	}
	return m
}

// Add stores f without validating it, so malformed schemas can be exercised.
func (m *MockLookup) Add(f *types.ModelFamily) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.families[f.ID] = f
}

// SetError makes every Resolve call fail with err.
func (m *MockLookup) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetPanic makes every Resolve call panic with v.
func (m *MockLookup) SetPanic(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicWith = v
}

// SetReturnNil makes Resolve report success without a family.
func (m *MockLookup) SetReturnNil(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnNil = v
}

// Calls returns the number of Resolve calls so far.
func (m *MockLookup) Calls() int64 { return m.calls.Load() }

func (m *MockLookup) Resolve(id string) (*types.ModelFamily, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.returnNil {
		return nil, nil
	}
	f, ok := m.families[id]
	if !ok {
		return nil, status.NewUnknownFamily(id)
	}
	return f, nil
}
