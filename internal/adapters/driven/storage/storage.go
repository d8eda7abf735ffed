// Package storage holds the OutputStore backings for generated documents:
// a local directory and an S3 bucket.
package storage

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docfill/internal/core/domain"
)

// ValidateKey rejects keys that could escape the store's namespace.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("output key %q: %w", key, domain.ErrInvalidInput)
	}
	return nil
}
