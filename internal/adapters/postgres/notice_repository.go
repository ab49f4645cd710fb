package postgres

import (
	"UnaxHelper/internal/core/domain"
	"UnaxHelper/internal/core/ports"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type noticeRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.NoticeRepository = (*noticeRepository)(nil) // Ensure compliance

// NewNoticeRepository creates a repository backed by the helper_notices table.
func NewNoticeRepository(db *DB, baseLogger *zerolog.Logger) ports.NoticeRepository {
	return &noticeRepository{
		db:  db,
		log: baseLogger.With().Str("component", "notice_repo").Logger(),
	}
}

// Add inserts a notice at the tail of its scope.
func (r *noticeRepository) Add(ctx context.Context, notice *domain.Notice) error {
	query := `
		INSERT INTO helper_notices (id, scope, text, notice_type, dismissible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.pool.Exec(ctx, query,
		notice.ID,
		notice.Scope,
		notice.Text,
		notice.Type,
		notice.Dismissible,
		notice.CreatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("notice_id", notice.ID.String()).Msg("Failed to insert notice")
	}
	return err
}

// Drain deletes and returns a scope's notices in insertion order, in one statement
// so two concurrent renders never show the same notice.
func (r *noticeRepository) Drain(ctx context.Context, scope domain.NoticeScope) ([]domain.Notice, error) {
	query := `
		WITH drained AS (
			DELETE FROM helper_notices WHERE scope = $1
			RETURNING seq, id, scope, text, notice_type, dismissible, created_at
		)
		SELECT id, scope, text, notice_type, dismissible, created_at
		FROM drained ORDER BY seq
	`
	rows, err := r.db.pool.Query(ctx, query, scope)
	if err != nil {
		r.log.Error().Err(err).Str("scope", string(scope)).Msg("Failed to drain notices")
		return nil, err
	}

	notices, err := pgx.CollectRows(rows, scanNotice)
	if err != nil {
		r.log.Error().Err(err).Str("scope", string(scope)).Msg("Failed to scan notice rows")
		return nil, err
	}
	return notices, nil
}

// scanNotice is a helper to scan a row into a Notice struct
func scanNotice(row pgx.CollectableRow) (domain.Notice, error) {
	var n domain.Notice
	err := row.Scan(&n.ID, &n.Scope, &n.Text, &n.Type, &n.Dismissible, &n.CreatedAt)
	return n, err
}
