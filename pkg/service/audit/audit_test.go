package audit_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/service/audit"
)

type stubGenAI struct {
	response string
	err      error
}

func (s *stubGenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func allRegulations() map[string]*model.Regulation {
	return map[string]*model.Regulation{
		"GDPR":   {Name: "GDPR"},
		"CCPA":   {Name: "CCPA"},
		"AI_ACT": {Name: "AI_ACT"},
	}
}

func TestRuleBasedAudit(t *testing.T) {
	ctx := context.Background()
	auditor := audit.New()

	t.Run("clean company passes all checks", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "CleanCo",
			DataCollected:   []string{"email"},
			StorageLocation: "EU",
			AIModelsUsed:    []string{},
			UserCount:       100,
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(0)
		gt.Value(t, result.TotalChecks).Equal(5)
		gt.Value(t, result.PassedChecks).Equal(5)
		gt.Value(t, result.Summary).Equal("Found 0 violations in CleanCo systems.")
		gt.Array(t, result.Recommendations).Length(3)
	})

	t.Run("excessive data categories trigger GDPR minimization", func(t *testing.T) {
		categories := make([]string, 12)
		for i := range categories {
			categories[i] = fmt.Sprintf("category_%d", i)
		}
		company := &model.CompanyProfile{
			Name:            "DataHog",
			DataCollected:   categories,
			StorageLocation: "EU",
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].ID).Equal("gdpr_data_minimization")
		gt.Value(t, result.Violations[0].Severity).Equal(types.SeverityMedium)
		gt.Value(t, result.Violations[0].Evidence).Equal("Collects 12 data types")
	})

	t.Run("exactly 10 data categories is compliant", func(t *testing.T) {
		categories := make([]string, 10)
		for i := range categories {
			categories[i] = fmt.Sprintf("category_%d", i)
		}
		company := &model.CompanyProfile{
			Name:            "Borderline",
			DataCollected:   categories,
			StorageLocation: "EU",
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(0)
	})

	t.Run("global storage triggers international transfer", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "GlobalCo",
			StorageLocation: "Global Mix",
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].ID).Equal("gdpr_international_transfer")
		gt.Value(t, result.Violations[0].Severity).Equal(types.SeverityHigh)
		gt.Value(t, result.Violations[0].Evidence).Equal("Data stored in: global mix")
	})

	t.Run("USA storage triggers international transfer", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "StatesideCo",
			StorageLocation: "USA East",
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].ID).Equal("gdpr_international_transfer")
	})

	t.Run("user count above CCPA threshold", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "BigCo",
			StorageLocation: "EU",
			UserCount:       60000,
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].ID).Equal("ccpa_threshold")
		gt.Value(t, result.Violations[0].Evidence).Equal("Has 60000 users")
	})

	t.Run("user count below CCPA threshold", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "SmallCo",
			StorageLocation: "EU",
			UserCount:       40000,
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(0)
	})

	t.Run("AI models trigger transparency violation", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "AICo",
			StorageLocation: "EU",
			AIModelsUsed:    []string{"recommender", "fraud_detector"},
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].ID).Equal("aia_transparency")
		gt.Value(t, result.Violations[0].Evidence).Equal("Using 2 AI models")
	})

	t.Run("rules only run for selected regulations", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "AICo",
			StorageLocation: "usa",
			UserCount:       60000,
			AIModelsUsed:    []string{"recommender"},
		}

		result := auditor.Audit(ctx, company, map[string]*model.Regulation{
			"CCPA": {Name: "CCPA"},
		})
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].ID).Equal("ccpa_threshold")
	})

	t.Run("check accounting with violations", func(t *testing.T) {
		company := &model.CompanyProfile{
			Name:            "MultiViol",
			StorageLocation: "global",
			UserCount:       60000,
			AIModelsUsed:    []string{"model"},
		}

		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(3)
		gt.Value(t, result.TotalChecks).Equal(8)
		gt.Value(t, result.PassedChecks).Equal(2)
	})
}

func TestGenAIAudit(t *testing.T) {
	ctx := context.Background()

	t.Run("AI response is decoded", func(t *testing.T) {
		stub := &stubGenAI{
			response: `{
				"total_checks": 10,
				"passed_checks": 8,
				"violations": [
					{
						"id": "viol_1",
						"regulation": "GDPR",
						"requirement": "Data minimization",
						"severity": "high",
						"system_affected": "data_collection",
						"description": "Too much data",
						"evidence": "Collects 15 data types"
					}
				],
				"summary": "One violation found",
				"recommendations": ["Reduce data collection"]
			}`,
		}
		auditor := audit.New(audit.WithGenAI(stub))

		company := &model.CompanyProfile{Name: "AICo"}
		result := auditor.Audit(ctx, company, allRegulations())
		gt.Value(t, result.TotalChecks).Equal(10)
		gt.Value(t, result.PassedChecks).Equal(8)
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].Severity).Equal(types.SeverityHigh)
		gt.Value(t, result.Summary).Equal("One violation found")
	})

	t.Run("unknown severity is kept verbatim", func(t *testing.T) {
		stub := &stubGenAI{
			response: `{
				"total_checks": 1,
				"passed_checks": 0,
				"violations": [
					{"id": "v1", "regulation": "GDPR", "requirement": "r", "severity": "catastrophic", "system_affected": "s", "description": "d", "evidence": "e"}
				],
				"summary": "s"
			}`,
		}
		auditor := audit.New(audit.WithGenAI(stub))

		result := auditor.Audit(ctx, &model.CompanyProfile{Name: "X"}, allRegulations())
		gt.Value(t, result.Violations[0].Severity).Equal(types.Severity("catastrophic"))
		gt.Value(t, result.Violations[0].Severity.RiskPoints()).Equal(0)
		gt.Value(t, result.Violations[0].Severity.ScoreWeight()).Equal(1)
	})

	t.Run("backend failure falls back to rules", func(t *testing.T) {
		stub := &stubGenAI{err: goerr.New("backend unavailable")}
		auditor := audit.New(audit.WithGenAI(stub))

		company := &model.CompanyProfile{
			Name:            "FallbackCo",
			StorageLocation: "usa",
		}
		result := auditor.Audit(ctx, company, allRegulations())
		gt.Array(t, result.Violations).Length(1)
		gt.Value(t, result.Violations[0].ID).Equal("gdpr_international_transfer")
	})

	t.Run("malformed JSON falls back to rules", func(t *testing.T) {
		stub := &stubGenAI{response: "not json at all"}
		auditor := audit.New(audit.WithGenAI(stub))

		company := &model.CompanyProfile{Name: "FallbackCo", StorageLocation: "EU"}
		result := auditor.Audit(ctx, company, allRegulations())
		gt.Value(t, result.TotalChecks).Equal(5)
		gt.Array(t, result.Violations).Length(0)
	})
}
