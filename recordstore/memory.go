package recordstore

import (
	"context"
	"sync"

	"github.com/zimako-tech/authflow"
)

// Memory is an in-memory RecordLookup fixture. Unlike the module-level lookup
// table it replaces, it is injected by value and never shared implicitly.
//
// Memory instances are safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]string)}
}

// Put registers or updates an account record.
func (m *Memory) Put(accountNumber, displayName string) {
	m.mu.Lock()
	m.records[accountNumber] = displayName
	m.mu.Unlock()
}

// LookupByAccountNumber describes the lookupbyaccountnumber operation and its observable behavior.
//
// LookupByAccountNumber does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Memory) LookupByAccountNumber(ctx context.Context, accountNumber string) (authflow.LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return authflow.LookupResult{}, err
	}

	m.mu.RLock()
	name, ok := m.records[accountNumber]
	m.mu.RUnlock()

	if !ok {
		return authflow.LookupResult{}, nil
	}
	return authflow.LookupResult{Found: true, DisplayName: name}, nil
}
