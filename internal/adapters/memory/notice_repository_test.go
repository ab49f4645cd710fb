package memory

import (
	"UnaxHelper/internal/core/domain"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeRepository_DrainIsPerScopeAndOrdered(t *testing.T) {
	repo := NewNoticeRepository()
	ctx := context.Background()

	first := &domain.Notice{ID: uuid.New(), Scope: domain.ScopeFront, Text: "first"}
	second := &domain.Notice{ID: uuid.New(), Scope: domain.ScopeFront, Text: "second"}
	admin := &domain.Notice{ID: uuid.New(), Scope: domain.ScopeAdmin, Text: "admin"}
	for _, n := range []*domain.Notice{first, admin, second} {
		require.NoError(t, repo.Add(ctx, n))
	}

	front, err := repo.Drain(ctx, domain.ScopeFront)
	require.NoError(t, err)
	require.Len(t, front, 2)
	assert.Equal(t, "first", front[0].Text)
	assert.Equal(t, "second", front[1].Text)

	front, err = repo.Drain(ctx, domain.ScopeFront)
	require.NoError(t, err)
	assert.Empty(t, front)

	adminNotices, err := repo.Drain(ctx, domain.ScopeAdmin)
	require.NoError(t, err)
	assert.Len(t, adminNotices, 1)
}

func TestNoticeRepository_CancelledContext(t *testing.T) {
	repo := NewNoticeRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Add(ctx, &domain.Notice{Scope: domain.ScopeFront}), context.Canceled)
	_, err := repo.Drain(ctx, domain.ScopeFront)
	assert.ErrorIs(t, err, context.Canceled)
}
