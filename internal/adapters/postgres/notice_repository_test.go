package postgres

import (
	"UnaxHelper/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestNoticeRepository_Add_Drain_Roundtrip(t *testing.T) {
	// 1. Setup
	nopLogger := zerolog.Nop()
	repo := NewNoticeRepository(testDB, &nopLogger)
	ctx := t.Context()

	// Isolate from other runs sharing the database
	scope := domain.NoticeScope("test-" + uuid.NewString())
	now := time.Now().UTC().Truncate(time.Microsecond)

	first := &domain.Notice{ID: uuid.New(), Scope: scope, Text: "first", Type: domain.NoticeError, Dismissible: true, CreatedAt: now}
	second := &domain.Notice{ID: uuid.New(), Scope: scope, Text: "second", Type: domain.NoticeInfo, CreatedAt: now}

	// 2. Run Add
	for _, n := range []*domain.Notice{first, second} {
		if err := repo.Add(ctx, n); err != nil {
			t.Fatalf("Failed to add notice: %v", err)
		}
	}

	// 3. Run Drain
	got, err := repo.Drain(ctx, scope)
	if err != nil {
		t.Fatalf("Failed to drain notices: %v", err)
	}

	// 4. Verify
	if len(got) != 2 {
		t.Fatalf("Drain returned %d notices, want 2", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Errorf("Order mismatch: got %v, %v", got[0].ID, got[1].ID)
	}
	if got[0].Text != "first" || got[0].Type != domain.NoticeError || !got[0].Dismissible {
		t.Errorf("Field mismatch: %+v", got[0])
	}
	if !got[1].CreatedAt.Equal(now) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got[1].CreatedAt, now)
	}

	again, err := repo.Drain(ctx, scope)
	if err != nil {
		t.Fatalf("Second drain failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("Second drain returned %d notices, want 0", len(again))
	}
}
