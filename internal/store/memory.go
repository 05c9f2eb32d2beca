package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of Store. It backs tests and
// zero-dependency development runs. Documents are deep-copied on the way in
// and out so callers can never alias internal state. Safe for concurrent
// use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	order       map[string][]string // per collection, ids in insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
		order:       make(map[string][]string),
	}
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(doc)
}

func (m *MemoryStore) List(ctx context.Context, collection string, opts ListOptions) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.order[collection]
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		doc, err := copyDocument(m.collections[collection][id])
		if err != nil {
			return nil, err
		}
		records = append(records, Record{ID: id, Data: doc})
	}
	sortRecords(records, opts)
	return records, nil
}

func (m *MemoryStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	stored, err := copyDocument(doc)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.ensureCollection(collection)
	m.collections[collection][id] = stored
	m.order[collection] = append(m.order[collection], id)
	return id, nil
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, doc Document) error {
	stored, err := copyDocument(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[collection][id]; !ok {
		return ErrNotFound
	}
	m.collections[collection][id] = stored
	return nil
}

func (m *MemoryStore) Put(ctx context.Context, collection, id string, doc Document) error {
	stored, err := copyDocument(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureCollection(collection)
	if _, ok := m.collections[collection][id]; !ok {
		m.order[collection] = append(m.order[collection], id)
	}
	m.collections[collection][id] = stored
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.collections[collection], id)
	ids := m.order[collection]
	for i, existing := range ids {
		if existing == id {
			m.order[collection] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) ensureCollection(collection string) {
	if _, ok := m.collections[collection]; !ok {
		m.collections[collection] = make(map[string]Document)
	}
}

// copyDocument deep-copies through JSON, which also canonicalizes values to
// the JSON types the Store contract promises.
func copyDocument(doc Document) (Document, error) {
	if doc == nil {
		return Document{}, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	return out, nil
}
