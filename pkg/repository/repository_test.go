package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/repository/firestore"
	"github.com/secmon-lab/themis/pkg/repository/memory"
)

func TestMemoryRepository(t *testing.T) {
	repo := memory.New()
	defer repo.Close()

	testRepository(t, repo, memory.ErrNotFound)
}

func TestFirestoreRepository(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT is not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, "", firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	defer repo.Close()

	testRepository(t, repo, firestore.ErrNotFound)
}

func testRepository(t *testing.T, repo interfaces.Repository, errNotFound error) {
	ctx := context.Background()

	t.Run("Regulation", func(t *testing.T) {
		name := "TEST_REG_" + uuid.NewString()

		t.Run("Get returns not found for missing regulation", func(t *testing.T) {
			_, err := repo.Regulation().Get(ctx, name)
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, errNotFound)).True()
		})

		t.Run("Put and Get round trip", func(t *testing.T) {
			reg := &model.Regulation{
				Name: name,
				KeyRequirements: []model.Requirement{
					{
						ID:       "req-1",
						Text:     "Collect only necessary data",
						Category: types.CategoryDataProtection,
						Severity: types.SeverityHigh,
					},
				},
				ApplicableSystems: []string{"data_storage"},
				Penalties: model.Penalty{
					MaxFinePercentage: 0.04,
					Description:       "Up to 4% of annual revenue",
				},
			}
			gt.NoError(t, repo.Regulation().Put(ctx, reg)).Required()

			got, err := repo.Regulation().Get(ctx, name)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Name).Equal(name)
			gt.Array(t, got.KeyRequirements).Length(1)
			gt.Value(t, got.KeyRequirements[0].Severity).Equal(types.SeverityHigh)
			gt.Value(t, got.Penalties.MaxFinePercentage).Equal(0.04)
		})

		t.Run("Put overwrites existing regulation", func(t *testing.T) {
			reg := &model.Regulation{
				Name:      name,
				Penalties: model.Penalty{MaxFinePercentage: 0.06},
			}
			gt.NoError(t, repo.Regulation().Put(ctx, reg)).Required()

			got, err := repo.Regulation().Get(ctx, name)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Penalties.MaxFinePercentage).Equal(0.06)
			gt.Array(t, got.KeyRequirements).Length(0)
		})

		t.Run("Put rejects empty name", func(t *testing.T) {
			gt.Error(t, repo.Regulation().Put(ctx, &model.Regulation{}))
		})

		t.Run("List includes saved regulation", func(t *testing.T) {
			regs, err := repo.Regulation().List(ctx)
			gt.NoError(t, err).Required()

			found := false
			for _, reg := range regs {
				if reg.Name == name {
					found = true
				}
			}
			gt.Bool(t, found).True()
		})
	})

	t.Run("AuditLog", func(t *testing.T) {
		company := "TEST_CO_" + uuid.NewString()

		t.Run("Put assigns ID and timestamp", func(t *testing.T) {
			entry := &model.AuditLogEntry{
				Company:         company,
				ComplianceScore: 85.5,
				RiskLevel:       types.RiskLevelMedium,
				ViolationCount:  2,
				Regulations:     []string{"GDPR", "CCPA"},
			}
			created, err := repo.AuditLog().Put(ctx, entry)
			gt.NoError(t, err).Required()
			gt.Value(t, created.ID).NotEqual("")
			gt.Bool(t, created.Timestamp.IsZero()).False()
			gt.Value(t, created.Company).Equal(company)
		})

		t.Run("List returns newest first", func(t *testing.T) {
			base := time.Now().UTC().Truncate(time.Second)
			for i := 0; i < 3; i++ {
				entry := &model.AuditLogEntry{
					Timestamp:       base.Add(time.Duration(i) * time.Second),
					Company:         fmt.Sprintf("%s-%d", company, i),
					ComplianceScore: float64(90 - i),
					RiskLevel:       types.RiskLevelLow,
				}
				_, err := repo.AuditLog().Put(ctx, entry)
				gt.NoError(t, err).Required()
			}

			entries, err := repo.AuditLog().List(ctx, 2)
			gt.NoError(t, err).Required()
			gt.Array(t, entries).Length(2)
			gt.Bool(t, entries[0].Timestamp.Before(entries[1].Timestamp)).False()
		})

		t.Run("Put rejects nil entry", func(t *testing.T) {
			_, err := repo.AuditLog().Put(ctx, nil)
			gt.Error(t, err)
		})
	})
}
