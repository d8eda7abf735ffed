// Package memory provides the in-process DocumentStore used by default
// and in tests. Documents live for the lifetime of the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a map guarded by a RWMutex.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*domain.Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*domain.Document)}
}

// Save stores a copy of doc.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("save document: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = clone(doc)
	return nil
}

// Get returns a copy of the stored document.
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(doc), nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func clone(doc *domain.Document) *domain.Document {
	c := *doc
	c.Placeholders = append([]string(nil), doc.Placeholders...)
	return &c
}
