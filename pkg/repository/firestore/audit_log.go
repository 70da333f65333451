package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type auditLogDoc struct {
	ID              string    `firestore:"id"`
	Timestamp       time.Time `firestore:"timestamp"`
	Company         string    `firestore:"company"`
	ComplianceScore float64   `firestore:"compliance_score"`
	RiskLevel       string    `firestore:"risk_level"`
	ViolationCount  int       `firestore:"violations_count"`
	Regulations     []string  `firestore:"regulations_checked"`
}

func (d *auditLogDoc) toModel() *model.AuditLogEntry {
	return &model.AuditLogEntry{
		ID:              d.ID,
		Timestamp:       d.Timestamp,
		Company:         d.Company,
		ComplianceScore: d.ComplianceScore,
		RiskLevel:       types.RiskLevel(d.RiskLevel),
		ViolationCount:  d.ViolationCount,
		Regulations:     d.Regulations,
	}
}

type auditLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditLogRepository(client *firestore.Client) *auditLogRepository {
	return &auditLogRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *auditLogRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_audit_logs"
	}
	return "audit_logs"
}

func (r *auditLogRepository) Put(ctx context.Context, entry *model.AuditLogEntry) (*model.AuditLogEntry, error) {
	if entry == nil {
		return nil, goerr.New("audit log entry is required")
	}

	created := *entry
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	doc := &auditLogDoc{
		ID:              created.ID,
		Timestamp:       created.Timestamp,
		Company:         created.Company,
		ComplianceScore: created.ComplianceScore,
		RiskLevel:       created.RiskLevel.String(),
		ViolationCount:  created.ViolationCount,
		Regulations:     created.Regulations,
	}

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put audit log entry", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *auditLogRepository) List(ctx context.Context, limit int) ([]*model.AuditLogEntry, error) {
	query := r.client.Collection(r.collection()).OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var entries []*model.AuditLogEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit logs")
		}

		var data auditLogDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to decode audit log document", goerr.V("doc", doc.Ref.ID))
		}
		entries = append(entries, data.toModel())
	}

	return entries, nil
}
