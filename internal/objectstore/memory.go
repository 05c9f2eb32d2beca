package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryStore keeps uploads in memory. It exists for tests and exposes the
// stored bytes for assertions. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string

	// FailNext makes the next Upload return an error, for exercising the
	// upload failure path in tests.
	FailNext bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		baseURL: "https://objects.test",
	}
}

func (m *MemoryStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return "", fmt.Errorf("simulated upload failure")
	}

	key := strings.TrimPrefix(path, "/")
	m.objects[key] = data
	return m.baseURL + "/" + key, nil
}

// Object returns the stored bytes for a path, if present.
func (m *MemoryStore) Object(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[strings.TrimPrefix(path, "/")]
	return data, ok
}

// Len reports how many objects have been stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
