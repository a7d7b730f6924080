package store

import "sync"

// Memory keeps the most recent snapshot in process memory. It is the default
// store: state survives across requests but not across restarts.
type Memory struct {
	mu   sync.Mutex
	snap *Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	return nil
}

func (m *Memory) Load() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}
