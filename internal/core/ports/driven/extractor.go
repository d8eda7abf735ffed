package driven

import (
	"context"
	"io"
)

// TextExtractor turns an uploaded document into plain text with "\n"
// line endings.
type TextExtractor interface {
	// Extract reads the whole document and returns its text.
	Extract(ctx context.Context, r io.Reader) (string, error)

	// SupportedTypes returns MIME types this extractor handles.
	// Can include wildcards like "text/*".
	SupportedTypes() []string

	// Priority returns the extractor priority (higher = more specific).
	Priority() int
}

// ExtractorRegistry selects an extractor for a MIME type.
type ExtractorRegistry interface {
	// Get retrieves the best-matching extractor for a MIME type.
	// Returns nil if no extractor is registered for the type.
	Get(mimeType string) TextExtractor

	// Register registers an extractor.
	Register(extractor TextExtractor)

	// List returns all registered MIME types.
	List() []string
}

// DocumentBuilder serializes text into a binary document, one paragraph
// per "\n"-separated line.
type DocumentBuilder interface {
	Build(ctx context.Context, text string) ([]byte, error)

	// ContentType is the MIME type of the built document.
	ContentType() string

	// Extension is the file extension of the built document, with dot.
	Extension() string
}
