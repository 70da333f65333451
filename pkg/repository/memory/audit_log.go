package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
)

type auditLogRepository struct {
	mu      sync.RWMutex
	entries []*model.AuditLogEntry
}

func newAuditLogRepository() *auditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Put(ctx context.Context, entry *model.AuditLogEntry) (*model.AuditLogEntry, error) {
	if entry == nil {
		return nil, goerr.New("audit log entry is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := *entry
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	r.entries = append(r.entries, &created)

	copied := created
	return &copied, nil
}

func (r *auditLogRepository) List(ctx context.Context, limit int) ([]*model.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first
	entries := make([]*model.AuditLogEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		copied := *r.entries[i]
		entries = append(entries, &copied)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}

	return entries, nil
}
