package classifier

import (
	"context"
	"sync"
)

// Mock permite tests sin llamar a un clasificador real. Es seguro para
// uso concurrente.
type Mock struct {
	Result Result
	Err    error

	mu         sync.Mutex
	calls      int
	lastText   string
	lastLabels []string
}

func (m *Mock) Classify(_ context.Context, text string, labels []string) (Result, error) {
	m.mu.Lock()
	m.calls++
	m.lastText = text
	m.lastLabels = labels
	m.mu.Unlock()
	return m.Result, m.Err
}

func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Mock) LastInput() (string, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastText, m.lastLabels
}
