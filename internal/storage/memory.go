package storage

// Memory is a map-backed KV store. It backs transient sessions (the
// --transient flag) and tests; nothing survives Close.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	return m.values[key], nil
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error {
	return nil
}
