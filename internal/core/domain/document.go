package domain

import "time"

// Document is an uploaded template: its extracted text and the fields
// detected in it. It is created on upload and never modified.
type Document struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	RawText      string    `json:"raw_text"`
	Placeholders []string  `json:"placeholders"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasText reports whether extraction produced any text for the document.
func (d *Document) HasText() bool {
	return d != nil && d.RawText != ""
}

// DirectOutputID is the output key used when a fill request carries
// text but no document id.
const DirectOutputID = "direct"

// OutputID returns the key generated output is stored under for a fill
// request with the given document id.
func OutputID(docID string) string {
	if docID == "" {
		return DirectOutputID
	}
	return docID
}
