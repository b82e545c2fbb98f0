package snapshot

import (
	"context"
	"fmt"
	"sync"
)

// DynamicFetchFunc is a callback for dynamic Fetch responses.
// Returning handled=false falls through to the configured responses.
type DynamicFetchFunc func(ctx context.Context, call int) (*Snapshot, error, bool)

// MockFetcher is a Fetcher for tests. It records calls and returns queued
// responses in order, repeating the last one once the queue is drained.
type MockFetcher struct {
	mu sync.Mutex

	// Configured responses
	Responses []*Snapshot
	Err       error

	// Dynamic response callback
	Dynamic DynamicFetchFunc

	// Call tracking
	Calls int

	next int
}

// NewMockFetcher creates a MockFetcher that serves the given snapshots.
func NewMockFetcher(responses ...*Snapshot) *MockFetcher {
	return &MockFetcher{Responses: responses}
}

// Fetch implements Fetcher.
func (m *MockFetcher) Fetch(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := m.Calls
	m.Calls++

	if m.Dynamic != nil {
		if snap, err, handled := m.Dynamic(ctx, call); handled {
			return snap, err
		}
	}

	if m.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, m.Err)
	}
	if len(m.Responses) == 0 {
		return nil, fmt.Errorf("%w: no response configured", ErrFetch)
	}
	idx := min(m.next, len(m.Responses)-1)
	m.next++
	return m.Responses[idx], nil
}

// CallCount returns the number of Fetch calls so far.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// SetResponses replaces the queued responses and clears any error.
func (m *MockFetcher) SetResponses(responses ...*Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = responses
	m.Err = nil
	m.next = 0
}

// SetError makes subsequent calls fail with err.
func (m *MockFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
