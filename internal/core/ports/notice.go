package ports

import (
	"UnaxHelper/internal/core/domain"
	"context"
)

// NoticeRepository queues notices until they are rendered.
type NoticeRepository interface {
	// Add appends a notice to its scope's queue.
	Add(ctx context.Context, notice *domain.Notice) error

	// Drain returns every queued notice of the scope, oldest first, and removes them.
	Drain(ctx context.Context, scope domain.NoticeScope) ([]domain.Notice, error)
}
