package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

var _ driven.OutputStore = (*MockOutputStore)(nil)

// MockOutputStore is an in-memory OutputStore for testing
type MockOutputStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string

	// PutErr, when set, is returned by Put
	PutErr error
}

// NewMockOutputStore creates a new MockOutputStore
func NewMockOutputStore() *MockOutputStore {
	return &MockOutputStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *MockOutputStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	m.types[key] = contentType
	return nil
}

func (m *MockOutputStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockOutputStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// Object returns the stored bytes and content type for key
func (m *MockOutputStore) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, m.types[key], ok
}
