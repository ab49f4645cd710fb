package domain

import (
	"time"

	"github.com/google/uuid"
)

// NoticeScope separates admin-screen notices from front-end notices.
type NoticeScope string

const (
	ScopeAdmin NoticeScope = "admin"
	ScopeFront NoticeScope = "front"
)

// NoticeType is the severity of a notice.
type NoticeType string

const (
	NoticeError   NoticeType = "error"
	NoticeWarning NoticeType = "warning"
	NoticeInfo    NoticeType = "info"
	NoticeSuccess NoticeType = "success"
)

// IsValid reports whether t is one of the known notice types.
func (t NoticeType) IsValid() bool {
	switch t {
	case NoticeError, NoticeWarning, NoticeInfo, NoticeSuccess:
		return true
	default:
		return false
	}
}

// Notice is a queued one-shot message shown on the next page render.
type Notice struct {
	ID          uuid.UUID
	Scope       NoticeScope
	Text        string
	Type        NoticeType
	Dismissible bool // Admin notices only
	CreatedAt   time.Time
}
