package fix_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/service/fix"
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

func auditWith(violations ...*model.Violation) *model.AuditResult {
	return &model.AuditResult{
		TotalChecks:  len(violations) + 5,
		PassedChecks: 5,
		Violations:   violations,
	}
}

func TestTemplateFixes(t *testing.T) {
	ctx := context.Background()
	suggester := fix.New()

	t.Run("no violations means no fixes", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "CleanCo", UserCount: 5000}
		fixes := suggester.Suggest(ctx, auditWith(), company)
		gt.Array(t, fixes).Length(0)
	})

	t.Run("data keyword selects minimization template", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "Co", UserCount: 5000}
		fixes := suggester.Suggest(ctx, auditWith(&model.Violation{
			ID:          "gdpr_data_minimization",
			Requirement: "Data minimization - collect only necessary data",
			Severity:    types.SeverityMedium,
		}), company)

		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Implement Data Minimization Policy")
		gt.Value(t, fixes[0].ViolationID).Equal("gdpr_data_minimization")
		gt.Value(t, fixes[0].CostEstimateUSD).Equal(8000)
		gt.Value(t, fixes[0].EstimatedTimeHours).Equal(40)
		gt.Value(t, fixes[0].Priority).Equal(types.SeverityMedium)
	})

	t.Run("AI keyword selects transparency template", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "Co", UserCount: 5000}
		fixes := suggester.Suggest(ctx, auditWith(&model.Violation{
			ID:          "aia_transparency",
			Requirement: "Transparency for AI systems",
			Severity:    types.SeverityMedium,
		}), company)

		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Create AI Model Documentation")
		gt.Value(t, fixes[0].CostEstimateUSD).Equal(6000)
	})

	t.Run("consent keyword selects consent template", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "Co", UserCount: 5000}
		fixes := suggester.Suggest(ctx, auditWith(&model.Violation{
			ID:          "ccpa_optout",
			Requirement: "Provide right to opt-out of sale",
			Severity:    types.SeverityHigh,
		}), company)

		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Deploy Consent Management Platform")
		gt.Value(t, fixes[0].CostEstimateUSD).Equal(15000)
	})

	t.Run("unmatched requirement defaults to consent template", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "Co", UserCount: 5000}
		fixes := suggester.Suggest(ctx, auditWith(&model.Violation{
			ID:          "ccpa_threshold",
			Requirement: "Compliance required for large companies",
			Severity:    types.SeverityHigh,
		}), company)

		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Deploy Consent Management Platform")
	})

	t.Run("large company doubles cost and scales time", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "BigCo", UserCount: 200000}
		fixes := suggester.Suggest(ctx, auditWith(&model.Violation{
			ID:          "gdpr_data_minimization",
			Requirement: "Data minimization",
			Severity:    types.SeverityMedium,
		}), company)

		gt.Value(t, fixes[0].CostEstimateUSD).Equal(16000)
		gt.Value(t, fixes[0].EstimatedTimeHours).Equal(60)
	})

	t.Run("small company halves cost", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "TinyCo", UserCount: 500}
		fixes := suggester.Suggest(ctx, auditWith(&model.Violation{
			ID:          "gdpr_data_minimization",
			Requirement: "Data minimization",
			Severity:    types.SeverityMedium,
		}), company)

		gt.Value(t, fixes[0].CostEstimateUSD).Equal(4000)
		gt.Value(t, fixes[0].EstimatedTimeHours).Equal(32)
	})

	t.Run("fixes are capped at five", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "Co", UserCount: 5000}
		var violations []*model.Violation
		for i := 0; i < 7; i++ {
			violations = append(violations, &model.Violation{
				ID:          "v",
				Requirement: "consent",
				Severity:    types.SeverityLow,
			})
		}
		fixes := suggester.Suggest(ctx, auditWith(violations...), company)
		gt.Array(t, fixes).Length(5)
	})

	t.Run("fixes are sorted by priority", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "Co", UserCount: 5000}
		fixes := suggester.Suggest(ctx, auditWith(
			&model.Violation{ID: "v1", Requirement: "consent", Severity: types.SeverityLow},
			&model.Violation{ID: "v2", Requirement: "consent", Severity: types.SeverityCritical},
			&model.Violation{ID: "v3", Requirement: "consent", Severity: types.SeverityHigh},
		), company)

		gt.Array(t, fixes).Length(3)
		gt.Value(t, fixes[0].Priority).Equal(types.SeverityCritical)
		gt.Value(t, fixes[1].Priority).Equal(types.SeverityHigh)
		gt.Value(t, fixes[2].Priority).Equal(types.SeverityLow)
	})

	t.Run("missing severity defaults to medium priority", func(t *testing.T) {
		company := &model.CompanyProfile{Name: "Co", UserCount: 5000}
		fixes := suggester.Suggest(ctx, auditWith(&model.Violation{
			ID:          "v1",
			Requirement: "consent",
		}), company)

		gt.Value(t, fixes[0].Priority).Equal(types.SeverityMedium)
	})
}

func TestGenAIFixes(t *testing.T) {
	ctx := context.Background()
	company := &model.CompanyProfile{Name: "AICo", UserCount: 5000}
	violation := &model.Violation{
		ID:          "gdpr_data_minimization",
		Requirement: "Data minimization",
		Severity:    types.SeverityMedium,
	}

	t.Run("bare array response", func(t *testing.T) {
		stub := &stubGenAI{
			response: `[
				{
					"violation_id": "gdpr_data_minimization",
					"title": "Trim data collection",
					"description": "Drop unused fields",
					"steps": ["Audit fields", "Remove them"],
					"estimated_time_hours": 24,
					"required_resources": ["developer"],
					"priority": "high",
					"cost_estimate_usd": 5000,
					"compliance_impact": "Will resolve violation"
				}
			]`,
		}
		suggester := fix.New(fix.WithGenAI(stub))

		fixes := suggester.Suggest(ctx, auditWith(violation), company)
		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Trim data collection")
		gt.Value(t, fixes[0].Priority).Equal(types.SeverityHigh)
	})

	t.Run("wrapped fixes object", func(t *testing.T) {
		stub := &stubGenAI{
			response: `{"fixes": [{"violation_id": "v1", "title": "Fix", "priority": "low", "cost_estimate_usd": 100}]}`,
		}
		suggester := fix.New(fix.WithGenAI(stub))

		fixes := suggester.Suggest(ctx, auditWith(violation), company)
		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Fix")
	})

	t.Run("backend failure falls back to templates", func(t *testing.T) {
		stub := &stubGenAI{err: goerr.New("backend unavailable")}
		suggester := fix.New(fix.WithGenAI(stub))

		fixes := suggester.Suggest(ctx, auditWith(violation), company)
		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Implement Data Minimization Policy")
	})

	t.Run("object without fix list falls back to templates", func(t *testing.T) {
		stub := &stubGenAI{response: `{"recommendations": []}`}
		suggester := fix.New(fix.WithGenAI(stub))

		fixes := suggester.Suggest(ctx, auditWith(violation), company)
		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Implement Data Minimization Policy")
	})

	t.Run("null fix list falls back to templates", func(t *testing.T) {
		stub := &stubGenAI{response: `{"fixes": null}`}
		suggester := fix.New(fix.WithGenAI(stub))

		fixes := suggester.Suggest(ctx, auditWith(violation), company)
		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Implement Data Minimization Policy")
	})

	t.Run("empty fix array is accepted as-is", func(t *testing.T) {
		stub := &stubGenAI{response: `[]`}
		suggester := fix.New(fix.WithGenAI(stub))

		fixes := suggester.Suggest(ctx, auditWith(violation), company)
		gt.Array(t, fixes).Length(0)
	})

	t.Run("malformed JSON falls back to templates", func(t *testing.T) {
		stub := &stubGenAI{response: "nope"}
		suggester := fix.New(fix.WithGenAI(stub))

		fixes := suggester.Suggest(ctx, auditWith(violation), company)
		gt.Array(t, fixes).Length(1)
		gt.Value(t, fixes[0].Title).Equal("Implement Data Minimization Policy")
	})
}
