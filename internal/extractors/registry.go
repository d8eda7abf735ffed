package extractors

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ExtractorRegistry = (*Registry)(nil)

// DocxMIMEType is the MIME type of an Office Open XML word document.
const DocxMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Registry implements ExtractorRegistry with priority-based selection.
// When multiple extractors match a MIME type, the highest priority one is used.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.TextExtractor
}

// NewRegistry creates a new extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make([]driven.TextExtractor, 0),
	}
}

// Register registers an extractor.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = append(r.extractors, extractor)
}

// Get retrieves the best-matching extractor for a MIME type.
// Returns nil if no extractor is registered for the type.
func (r *Registry) Get(mimeType string) driven.TextExtractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best driven.TextExtractor
	for _, e := range r.extractors {
		if !matchesMIMEType(e.SupportedTypes(), mimeType) {
			continue
		}
		if best == nil || e.Priority() > best.Priority() {
			best = e
		}
	}
	return best
}

// List returns all registered MIME types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeSet := make(map[string]struct{})
	for _, e := range r.extractors {
		for _, t := range e.SupportedTypes() {
			typeSet[t] = struct{}{}
		}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// matchesMIMEType checks if any of the supported types match the given MIME type.
// Supports wildcard matching (e.g., "text/*" matches "text/plain").
func matchesMIMEType(supportedTypes []string, mimeType string) bool {
	mimeType = baseType(mimeType)

	for _, supported := range supportedTypes {
		supported = strings.ToLower(strings.TrimSpace(supported))

		if supported == mimeType || supported == "*/*" {
			return true
		}
		if strings.HasSuffix(supported, "/*") && strings.HasPrefix(mimeType, supported[:len(supported)-1]) {
			return true
		}
	}

	return false
}

// baseType lowercases a MIME type and strips parameters such as charset.
func baseType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}

var extensionTypes = map[string]string{
	".docx": DocxMIMEType,
	".txt":  "text/plain",
	".md":   "text/markdown",
}

// DetectType picks the MIME type of an upload. A specific declared type
// wins; a missing or generic one falls back to the file extension.
func DetectType(filename, declared string) string {
	t := baseType(declared)
	if t != "" && t != "application/octet-stream" {
		return t
	}
	if ext, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ext
	}
	return "application/octet-stream"
}
