package speech

import (
	"context"
	"sync"
)

// MockSynthesizer returns a deterministic placeholder clip and records the
// requests it saw. Used for dry runs and tests.
type MockSynthesizer struct {
	mu       sync.Mutex
	Requests []Request
}

func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

func (m *MockSynthesizer) Synthesize(_ context.Context, req Request) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	return []byte("mock-mp3:" + BuildInput(req)), nil
}

// Calls reports how many synthesis requests have been made.
func (m *MockSynthesizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// Snapshot returns a copy of the recorded requests.
func (m *MockSynthesizer) Snapshot() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.Requests...)
}
