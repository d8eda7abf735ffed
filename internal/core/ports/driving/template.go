package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/intake"
)

// TemplateService scans uploaded templates and generates filled documents
type TemplateService interface {
	// Upload extracts the template text, detects its placeholders and
	// stores the result. Extraction failure yields an empty template.
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error)

	// Fill applies values to a stored template (or to req.TextFallback)
	// and stores the generated document.
	// Returns domain.ErrNotFound when there is no text to fill.
	Fill(ctx context.Context, req domain.FillRequest) (*domain.FillResult, error)

	// Download opens a generated document. token is checked when links
	// are signed.
	Download(ctx context.Context, id, token string) (io.ReadCloser, error)

	// Get retrieves a stored template by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Preview renders the template text as HTML with placeholders marked
	Preview(ctx context.Context, id string) (string, error)

	// Next reports the next unanswered field and overall progress
	Next(ctx context.Context, docID string, values domain.Values) (*intake.Progress, error)

	// Validate checks a single answer against the kind of its field
	Validate(field, value string) error
}
