// Package fix turns audit violations into actionable remediation plans.
// With a generation backend the plans are AI-generated; otherwise a
// small template library applies, scaled to the company's size.
package fix

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"sort"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/secmon-lab/themis/pkg/service/genai"
	"github.com/secmon-lab/themis/pkg/utils/logging"
)

//go:embed prompt/fix.md
var fixPromptTmpl string

var fixPrompt = template.Must(template.New("fix").Parse(fixPromptTmpl))

// maxTemplateFixes caps the template-based path.
const maxTemplateFixes = 5

type Suggester struct {
	genAI interfaces.GenAI
}

type Option func(*Suggester)

func WithGenAI(g interfaces.GenAI) Option {
	return func(s *Suggester) {
		s.genAI = g
	}
}

func New(opts ...Option) *Suggester {
	s := &Suggester{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest returns remediation plans for the audit's violations, ordered
// highest priority first. No violations yields an empty list.
func (s *Suggester) Suggest(ctx context.Context, result *model.AuditResult, company *model.CompanyProfile) []*model.Fix {
	if result == nil || len(result.Violations) == 0 {
		return []*model.Fix{}
	}

	var fixes []*model.Fix
	if s.genAI != nil {
		generated, err := s.suggestWithGenAI(ctx, result.Violations, company)
		if err == nil {
			fixes = generated
		} else {
			logging.From(ctx).Warn("AI fix generation failed, using templates",
				"company", company.Name,
				"error", err,
			)
		}
	}
	if fixes == nil {
		fixes = s.suggestWithTemplates(result.Violations, company)
	}

	sort.SliceStable(fixes, func(i, j int) bool {
		return fixes[i].Priority.PriorityRank() < fixes[j].Priority.PriorityRank()
	})

	return fixes
}

func (s *Suggester) suggestWithTemplates(violations []*model.Violation, company *model.CompanyProfile) []*model.Fix {
	costMultiplier := 1.0
	timeMultiplier := 1.0
	if company.UserCount > 100000 {
		costMultiplier = 2.0
		timeMultiplier = 1.5
	} else if company.UserCount < 1000 {
		costMultiplier = 0.5
		timeMultiplier = 0.8
	}

	limit := len(violations)
	if limit > maxTemplateFixes {
		limit = maxTemplateFixes
	}

	fixes := make([]*model.Fix, 0, limit)
	for _, violation := range violations[:limit] {
		tmpl := templateFor(violation)

		violationID := violation.ID
		if violationID == "" {
			violationID = "unknown"
		}
		priority := violation.Severity
		if priority == "" {
			priority = types.SeverityMedium
		}

		fixes = append(fixes, &model.Fix{
			ViolationID:        violationID,
			Title:              tmpl.Title,
			Description:        tmpl.Description,
			Steps:              tmpl.Steps,
			EstimatedTimeHours: int(float64(tmpl.EstimatedTimeHours) * timeMultiplier),
			RequiredResources:  tmpl.RequiredResources,
			Priority:           priority,
			CostEstimateUSD:    int(float64(tmpl.CostEstimateUSD) * costMultiplier),
			ComplianceImpact:   tmpl.ComplianceImpact,
		})
	}

	return fixes
}

type fixPayload struct {
	ViolationID        string   `json:"violation_id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Steps              []string `json:"steps"`
	EstimatedTimeHours int      `json:"estimated_time_hours"`
	RequiredResources  []string `json:"required_resources"`
	Priority           string   `json:"priority"`
	CostEstimateUSD    int      `json:"cost_estimate_usd"`
	ComplianceImpact   string   `json:"compliance_impact"`
}

func (s *Suggester) suggestWithGenAI(ctx context.Context, violations []*model.Violation, company *model.CompanyProfile) ([]*model.Fix, error) {
	violationsJSON, err := json.MarshalIndent(violations, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode violations")
	}

	industry := company.Industry
	if industry == "" {
		industry = "Technology"
	}
	companyJSON, err := json.MarshalIndent(map[string]any{
		"industry":   industry,
		"size":       company.UserCount,
		"tech_stack": company.AIModelsUsed,
	}, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode company context")
	}

	var buf bytes.Buffer
	if err := fixPrompt.Execute(&buf, map[string]string{
		"Violations": string(violationsJSON),
		"Company":    string(companyJSON),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to render fix prompt")
	}

	raw, err := s.genAI.Generate(ctx, buf.String())
	if err != nil {
		return nil, goerr.Wrap(err, "generation backend failed")
	}

	cleaned := genai.ExtractJSON(raw)

	// Accept both a bare array and a {"fixes": [...]} wrapper.
	var payloads []fixPayload
	if err := json.Unmarshal([]byte(cleaned), &payloads); err != nil {
		var wrapper struct {
			Fixes []fixPayload `json:"fixes"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
			return nil, goerr.Wrap(err, "failed to decode fix JSON")
		}
		payloads = wrapper.Fixes
	}
	if payloads == nil {
		return nil, goerr.New("fix response has no fix list")
	}

	fixes := make([]*model.Fix, 0, len(payloads))
	for _, p := range payloads {
		priority := types.Severity(p.Priority)
		if !priority.IsValid() {
			priority = types.SeverityLow
		}
		fixes = append(fixes, &model.Fix{
			ViolationID:        p.ViolationID,
			Title:              p.Title,
			Description:        p.Description,
			Steps:              p.Steps,
			EstimatedTimeHours: p.EstimatedTimeHours,
			RequiredResources:  p.RequiredResources,
			Priority:           priority,
			CostEstimateUSD:    p.CostEstimateUSD,
			ComplianceImpact:   p.ComplianceImpact,
		})
	}

	return fixes, nil
}
