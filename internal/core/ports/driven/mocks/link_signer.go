package mocks

import (
	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

var _ driven.LinkSigner = (*MockLinkSigner)(nil)

// MockLinkSigner issues "signed-<id>" tokens
type MockLinkSigner struct{}

func (m *MockLinkSigner) Sign(id string) (string, error) {
	return "signed-" + id, nil
}

func (m *MockLinkSigner) Verify(token, id string) error {
	if token != "signed-"+id {
		return domain.ErrUnauthorized
	}
	return nil
}
