package clip

import "sync"

// Memory is an in-process clipboard. It backs tests and lets callers run a
// conversion without touching the system clipboard.
type Memory struct {
	mu     sync.Mutex
	items  []Item
	writes int

	// ReadErr and WriteErr, when set, are returned by Read and Write.
	ReadErr  error
	WriteErr error
}

// NewMemory returns a Memory clipboard holding items.
func NewMemory(items ...Item) *Memory {
	return &Memory{items: items}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Has(f Format) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := find(m.items, f)
	return ok
}

func (m *Memory) Read(f Format) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	it, ok := find(m.items, f)
	if !ok {
		return nil, nil
	}
	return it.Data, nil
}

func (m *Memory) Write(items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if err := checkFormats(items); err != nil {
		return err
	}
	m.items = append([]Item(nil), items...)
	m.writes++
	return nil
}

// Items returns a copy of the current contents.
func (m *Memory) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.items...)
}

// Writes returns how many times Write succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Close() {}
