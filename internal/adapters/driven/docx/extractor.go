// Package docx reads and writes the WordprocessingML subset docfill needs:
// paragraphs of plain text. Formatting, styles and tables are flattened.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docfill/internal/core/ports/driven"
	"github.com/custodia-labs/docfill/internal/extractors"
)

// Verify interface compliance
var _ driven.TextExtractor = (*Extractor)(nil)

const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart = "word/document.xml"

	// MaxPartSize caps the decompressed size of document.xml.
	MaxPartSize = 64 << 20
)

// ErrNotDocx is returned when the input is not a readable docx package.
var ErrNotDocx = errors.New("not a docx document")

// Extractor turns word/document.xml into text, one line per paragraph.
type Extractor struct{}

// NewExtractor creates a docx extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) SupportedTypes() []string {
	return []string{extractors.DocxMIMEType, "application/octet-stream"}
}

func (e *Extractor) Priority() int {
	return 50
}

// Extract reads the package fully, since zip needs random access.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("%w: missing %s", ErrNotDocx, documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	text, err := paragraphs(ctx, io.LimitReader(rc, MaxPartSize))
	if err != nil {
		return "", err
	}
	return extractors.NormalizeText(text), nil
}

// paragraphs walks the XML token stream collecting w:t runs per w:p.
func paragraphs(ctx context.Context, r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines  []string
		cur    strings.Builder
		inPara bool
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if err := ctx.Err(); err != nil {
					return "", err
				}
				inPara = true
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if inPara {
					lines = append(lines, cur.String())
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}
