package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

const (
	// Key prefix for Redis
	documentPrefix = "document:"

	// DefaultDocumentTTL bounds how long an uploaded template is kept
	DefaultDocumentTTL = 24 * time.Hour
)

// DocumentStore implements driven.DocumentStore using Redis.
// Documents use Redis TTL for automatic expiration.
type DocumentStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocumentStore creates a new Redis-backed DocumentStore.
// A non-positive ttl uses DefaultDocumentTTL.
func NewDocumentStore(client *redis.Client, ttl time.Duration) *DocumentStore {
	if ttl <= 0 {
		ttl = DefaultDocumentTTL
	}
	return &DocumentStore{client: client, ttl: ttl}
}

// Connect opens a client from a redis:// URL and checks it with PING.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Save stores a document, refreshing its TTL
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("save document: %w", domain.ErrInvalidInput)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := s.client.Set(ctx, documentPrefix+doc.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	data, err := s.client.Get(ctx, documentPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

// Delete removes a document
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, documentPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
