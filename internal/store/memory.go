package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory DocumentStore. It is used by tests and by local
// runs without a configured database. Safe for concurrent use.
type MemStore struct {
	mu sync.RWMutex
	// insertion order per collection; ListDocuments returns this order
	order map[string][]string
	docs  map[string]map[string]json.RawMessage
}

// NewMemStore creates an empty in-memory document store.
func NewMemStore() *MemStore {
	return &MemStore{
		order: make(map[string][]string),
		docs:  make(map[string]map[string]json.RawMessage),
	}
}

func (m *MemStore) CreateDocument(_ context.Context, collection string, fields json.RawMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]json.RawMessage)
	}
	id := uuid.NewString()
	m.docs[collection][id] = slices.Clone(fields)
	m.order[collection] = append(m.order[collection], id)
	return id, nil
}

func (m *MemStore) GetDocument(_ context.Context, collection, id string) (json.RawMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fields, ok := m.docs[collection][id]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(fields), true, nil
}

func (m *MemStore) ListDocuments(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]Document, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		docs = append(docs, Document{ID: id, Fields: slices.Clone(m.docs[collection][id])})
	}
	return docs, nil
}

func (m *MemStore) UpdateDocument(_ context.Context, collection, id string, fields json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// updating a missing id is a no-op; the contract leaves it store-defined
	if _, ok := m.docs[collection][id]; !ok {
		return nil
	}
	m.docs[collection][id] = slices.Clone(fields)
	return nil
}

func (m *MemStore) DeleteDocument(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[collection][id]; !ok {
		return nil
	}
	delete(m.docs[collection], id)
	m.order[collection] = slices.DeleteFunc(m.order[collection], func(existing string) bool {
		return existing == id
	})
	return nil
}
