package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

// AuditLogRepository archives summaries of completed analyses.
type AuditLogRepository interface {
	Put(ctx context.Context, entry *model.AuditLogEntry) (*model.AuditLogEntry, error)

	// List returns entries newest-first, up to limit. limit <= 0 means
	// no limit.
	List(ctx context.Context, limit int) ([]*model.AuditLogEntry, error)
}
