package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfill/internal/core/domain"
)

func TestDocumentStore_SaveGet(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "d1", RawText: "Name: ____", Placeholders: []string{"Name"}}
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Name: ____", got.RawText)
	assert.Equal(t, []string{"Name"}, got.Placeholders)
}

func TestDocumentStore_ReturnsCopies(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "d1", Placeholders: []string{"Name"}}
	require.NoError(t, s.Save(ctx, doc))
	doc.Placeholders[0] = "mutated"

	got, err := s.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Name", got.Placeholders[0])

	got.Placeholders[0] = "again"
	again, _ := s.Get(ctx, "d1")
	assert.Equal(t, "Name", again.Placeholders[0])
}

func TestDocumentStore_NotFound(t *testing.T) {
	s := NewDocumentStore()
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_SaveInvalid(t *testing.T) {
	s := NewDocumentStore()
	assert.ErrorIs(t, s.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.Save(context.Background(), &domain.Document{}), domain.ErrInvalidInput)
}

func TestDocumentStore_Delete(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.Document{ID: "d1"}))
	require.NoError(t, s.Delete(ctx, "d1"))
	require.NoError(t, s.Delete(ctx, "d1"))
	assert.Equal(t, 0, s.Len())
}

func TestDocumentStore_Concurrent(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("d%d", i%10)
			_ = s.Save(ctx, &domain.Document{ID: id, RawText: id})
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
}
