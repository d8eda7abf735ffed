package driven

import (
	"context"

	"github.com/custodia-labs/docfill/internal/core/domain"
)

// DocumentStore holds uploaded template documents by id.
// Backings: memory (default), Redis, PostgreSQL.
type DocumentStore interface {
	// Save stores a document, replacing any document with the same ID
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error
}

// DocumentPurger is implemented by stores that need expired documents
// removed explicitly. Redis expires keys itself and memory never does.
type DocumentPurger interface {
	// Purge deletes documents past retention and returns how many.
	Purge(ctx context.Context) (int64, error)
}
