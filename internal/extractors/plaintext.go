package extractors

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TextExtractor = (*PlaintextExtractor)(nil)

// PlaintextExtractor reads text templates as-is.
type PlaintextExtractor struct{}

func (e *PlaintextExtractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return NormalizeText(string(data)), nil
}

func (e *PlaintextExtractor) SupportedTypes() []string {
	return []string{"text/*"}
}

func (e *PlaintextExtractor) Priority() int {
	return 10
}

// NormalizeText converts line endings to "\n" and composes the text into
// NFC so that visually equal labels compare equal.
func NormalizeText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}

// DefaultRegistry creates a registry with the plain text extractor and
// the given format extractors.
func DefaultRegistry(extra ...driven.TextExtractor) *Registry {
	r := NewRegistry()
	r.Register(&PlaintextExtractor{})
	for _, e := range extra {
		r.Register(e)
	}
	return r
}
