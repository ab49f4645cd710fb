package memory

import (
	"UnaxHelper/internal/core/domain"
	"UnaxHelper/internal/core/ports"
	"context"
	"sync"
)

// noticeRepository keeps notices in process memory. Used when no database
// is configured and in tests.
type noticeRepository struct {
	mu      sync.Mutex
	notices map[domain.NoticeScope][]domain.Notice
}

var _ ports.NoticeRepository = (*noticeRepository)(nil)

// NewNoticeRepository creates an empty in-memory notice queue.
func NewNoticeRepository() ports.NoticeRepository {
	return &noticeRepository{notices: make(map[domain.NoticeScope][]domain.Notice)}
}

func (r *noticeRepository) Add(ctx context.Context, notice *domain.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices[notice.Scope] = append(r.notices[notice.Scope], *notice)
	return nil
}

func (r *noticeRepository) Drain(ctx context.Context, scope domain.NoticeScope) ([]domain.Notice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	notices := r.notices[scope]
	delete(r.notices, scope)
	return notices, nil
}
