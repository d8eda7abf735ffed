package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

var (
	_ driven.TextExtractor   = (*MockExtractor)(nil)
	_ driven.DocumentBuilder = (*MockBuilder)(nil)
)

// MockExtractor is a mock implementation of TextExtractor for testing.
// By default it returns the reader's content unchanged.
type MockExtractor struct {
	ExtractFn        func(ctx context.Context, r io.Reader) (string, error)
	SupportedTypesFn func() []string
	PriorityFn       func() int
}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

func (m *MockExtractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, r)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (m *MockExtractor) SupportedTypes() []string {
	if m.SupportedTypesFn != nil {
		return m.SupportedTypesFn()
	}
	return []string{"*/*"}
}

func (m *MockExtractor) Priority() int {
	if m.PriorityFn != nil {
		return m.PriorityFn()
	}
	return 100
}

// MockBuilder is a mock implementation of DocumentBuilder for testing.
// By default it returns the text as bytes and records the last input.
type MockBuilder struct {
	BuildFn func(ctx context.Context, text string) ([]byte, error)

	LastText string
}

func NewMockBuilder() *MockBuilder {
	return &MockBuilder{}
}

func (m *MockBuilder) Build(ctx context.Context, text string) ([]byte, error) {
	m.LastText = text
	if m.BuildFn != nil {
		return m.BuildFn(ctx, text)
	}
	return []byte(text), nil
}

func (m *MockBuilder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (m *MockBuilder) Extension() string {
	return ".docx"
}
