package notice

import (
	"UnaxHelper/internal/core/domain"
	"UnaxHelper/internal/core/ports"
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service queues one-shot notices and renders them on the next page.
type Service struct {
	repo ports.NoticeRepository
	bus  ports.EventBus // may be nil
	now  func() time.Time
	log  zerolog.Logger
}

// NewService creates the notice service. bus may be nil.
func NewService(repo ports.NoticeRepository, bus ports.EventBus, baseLogger *zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		bus:  bus,
		now:  time.Now,
		log:  baseLogger.With().Str("component", "notice_service").Logger(),
	}
}

// AddAdminNotice queues a notice for the admin screen. An empty type means error.
func (s *Service) AddAdminNotice(ctx context.Context, text string, noticeType domain.NoticeType, dismissible bool) error {
	if noticeType == "" {
		noticeType = domain.NoticeError
	}
	n := s.newNotice(domain.ScopeAdmin, text, noticeType)
	n.Dismissible = dismissible

	if err := s.repo.Add(ctx, n); err != nil {
		s.log.Error().Err(err).Msg("Failed to queue admin notice")
		return fmt.Errorf("queue admin notice: %w", err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, ports.TopicNoticeAdded, *n); err != nil {
			s.log.Warn().Err(err).Msg("Failed to publish admin notice")
		}
	}
	return nil
}

// AddNotice queues a front-end notice. An empty type means info.
func (s *Service) AddNotice(ctx context.Context, text string, noticeType domain.NoticeType) error {
	if noticeType == "" {
		noticeType = domain.NoticeInfo
	}
	if err := s.repo.Add(ctx, s.newNotice(domain.ScopeFront, text, noticeType)); err != nil {
		s.log.Error().Err(err).Msg("Failed to queue notice")
		return fmt.Errorf("queue notice: %w", err)
	}
	return nil
}

// GetNotices returns and clears the queued front-end notices.
func (s *Service) GetNotices(ctx context.Context) ([]domain.Notice, error) {
	notices, err := s.repo.Drain(ctx, domain.ScopeFront)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to drain notices")
		return nil, fmt.Errorf("drain notices: %w", err)
	}
	return notices, nil
}

// AdminNotices returns and clears the admin notices, rendered as HTML.
func (s *Service) AdminNotices(ctx context.Context) (string, error) {
	notices, err := s.repo.Drain(ctx, domain.ScopeAdmin)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to drain admin notices")
		return "", fmt.Errorf("drain admin notices: %w", err)
	}

	var b strings.Builder
	for _, n := range notices {
		dismissible := ""
		if n.Dismissible {
			dismissible = " is-dismissible"
		}
		fmt.Fprintf(&b, `<div class="notice notice-%s%s"><p>%s</p></div>`,
			html.EscapeString(renderType(n.Type)), dismissible, html.EscapeString(n.Text))
	}
	return b.String(), nil
}

// Notices returns and clears the front-end notices, rendered as HTML.
func (s *Service) Notices(ctx context.Context) (string, error) {
	notices, err := s.GetNotices(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range notices {
		fmt.Fprintf(&b, `<p class="notice notice-%s">%s</p>`,
			html.EscapeString(renderType(n.Type)), html.EscapeString(n.Text))
	}
	return b.String(), nil
}

// renderType drops unknown types so they never reach the class attribute.
func renderType(t domain.NoticeType) string {
	if t.IsValid() {
		return string(t)
	}
	return ""
}

func (s *Service) newNotice(scope domain.NoticeScope, text string, t domain.NoticeType) *domain.Notice {
	return &domain.Notice{
		ID:        uuid.New(),
		Scope:     scope,
		Text:      text,
		Type:      t,
		CreatedAt: s.now(),
	}
}
