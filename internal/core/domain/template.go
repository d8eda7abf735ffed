package domain

import (
	"io"
	"regexp"
)

// UploadRequest is a template file received from a client.
type UploadRequest struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// UploadResult describes a stored template.
type UploadResult struct {
	DocID        string   `json:"docId"`
	Placeholders []string `json:"placeholders"`
	TextPreview  string   `json:"textPreview"`
}

// FillRequest carries the values for a stored template, or raw template
// text when the template is not stored.
type FillRequest struct {
	DocID        string `json:"docId"`
	Values       Values `json:"values"`
	TextFallback string `json:"textFallback,omitempty"`
}

// FillResult points at the generated document.
type FillResult struct {
	OutputID      string `json:"-"`
	DownloadPath  string `json:"downloadPath"`
	FilledPreview string `json:"filledPreview"`
}

var outputIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// ValidOutputID reports whether id is safe to use as a storage key stem.
func ValidOutputID(id string) bool {
	return outputIDRe.MatchString(id)
}
