package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docfill/internal/core/ports/driven"
	"github.com/custodia-labs/docfill/internal/extractors"
)

// Verify interface compliance
var _ driven.DocumentBuilder = (*Builder)(nil)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// Builder writes a minimal docx package with one paragraph per line.
type Builder struct{}

// NewBuilder creates a docx builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) ContentType() string {
	return extractors.DocxMIMEType
}

func (b *Builder) Extension() string {
	return ".docx"
}

func (b *Builder) Build(ctx context.Context, text string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"[Content_Types].xml", writeString(contentTypesXML)},
		{"_rels/.rels", writeString(relsXML)},
		{documentPart, func(w io.Writer) error { return writeDocument(ctx, w, text) }},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if err := p.write(w); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func writeDocument(ctx context.Context, w io.Writer, text string) error {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:document xmlns:w="` + wordNS + `"><w:body>`)

	for _, line := range strings.Split(text, "\n") {
		if err := ctx.Err(); err != nil {
			return err
		}
		if line == "" {
			sb.WriteString(`<w:p/>`)
			continue
		}
		sb.WriteString(`<w:p><w:r>`)
		for i, seg := range strings.Split(line, "\t") {
			if i > 0 {
				sb.WriteString(`<w:tab/>`)
			}
			if seg == "" {
				continue
			}
			sb.WriteString(`<w:t xml:space="preserve">`)
			if err := xml.EscapeText(&sb, []byte(seg)); err != nil {
				return err
			}
			sb.WriteString(`</w:t>`)
		}
		sb.WriteString(`</w:r></w:p>`)
	}

	sb.WriteString(`</w:body></w:document>`)
	_, err := io.WriteString(w, sb.String())
	return err
}
