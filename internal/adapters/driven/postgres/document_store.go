package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.DocumentStore  = (*DocumentStore)(nil)
	_ driven.DocumentPurger = (*DocumentStore)(nil)
)

// DocumentStore implements driven.DocumentStore using PostgreSQL.
// Rows older than the retention window are invisible to Get and removed
// by Purge.
type DocumentStore struct {
	db        *DB
	retention time.Duration
}

// NewDocumentStore creates a new DocumentStore. A non-positive retention
// keeps documents forever.
func NewDocumentStore(db *DB, retention time.Duration) *DocumentStore {
	return &DocumentStore{db: db, retention: retention}
}

// Save creates or replaces a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("save document: %w", domain.ErrInvalidInput)
	}

	query := `
		INSERT INTO documents (id, filename, raw_text, placeholders, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			raw_text = EXCLUDED.raw_text,
			placeholders = EXCLUDED.placeholders,
			created_at = EXCLUDED.created_at
	`

	placeholders := doc.Placeholders
	if placeholders == nil {
		placeholders = []string{}
	}

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Filename,
		doc.RawText,
		pq.Array(placeholders),
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, filename, raw_text, placeholders, created_at
		FROM documents
		WHERE id = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)
	`

	var (
		doc          domain.Document
		placeholders []string
	)
	err := s.db.QueryRowContext(ctx, query, id, s.cutoff()).Scan(
		&doc.ID,
		&doc.Filename,
		&doc.RawText,
		pq.Array(&placeholders),
		&doc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if placeholders == nil {
		placeholders = []string{}
	}
	doc.Placeholders = placeholders
	return &doc, nil
}

// Delete removes a document
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Purge deletes documents past the retention window and returns how many
// rows were removed.
func (s *DocumentStore) Purge(ctx context.Context) (int64, error) {
	cutoff := s.cutoff()
	if !cutoff.Valid {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE created_at < $1`, cutoff.Time)
	if err != nil {
		return 0, fmt.Errorf("failed to purge documents: %w", err)
	}
	return res.RowsAffected()
}

func (s *DocumentStore) cutoff() sql.NullTime {
	if s.retention <= 0 {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: time.Now().Add(-s.retention), Valid: true}
}
