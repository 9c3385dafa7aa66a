package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ideapad/internal/core/codec"
	"github.com/custodia-labs/ideapad/internal/core/domain"
)

func TestPageService_CreateListDelete(t *testing.T) {
	backend := memory.NewBackend()
	svc := NewPageService(backend.PageStore(), memory.NewIdentityStore("1"))
	ctx := context.Background()

	page, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, page.ID)
	assert.Equal(t, domain.DefaultTitle, page.Title)
	assert.Equal(t, codec.EmptySerialized, page.StoredContent)

	pages, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, page.ID, pages[0].ID)

	require.NoError(t, svc.Delete(ctx, page.ID))
	pages, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, pages)

	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrInvalidInput)
}

func TestPageService_RequiresIdentity(t *testing.T) {
	svc := NewPageService(memory.NewBackend().PageStore(), memory.NewIdentityStore(""))
	ctx := context.Background()

	_, err := svc.Create(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
