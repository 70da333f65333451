package fix

import (
	"strings"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

type fixTemplate struct {
	Title              string
	Description        string
	Steps              []string
	EstimatedTimeHours int
	RequiredResources  []string
	CostEstimateUSD    int
	ComplianceImpact   string
}

var fixTemplates = map[string]fixTemplate{
	"data_minimization": {
		Title:       "Implement Data Minimization Policy",
		Description: "Reduce collected data to only what's necessary",
		Steps: []string{
			"Audit current data collection",
			"Identify unnecessary data fields",
			"Update data collection forms",
			"Delete historical unnecessary data",
		},
		EstimatedTimeHours: 40,
		RequiredResources:  []string{"data_engineer", "legal"},
		CostEstimateUSD:    8000,
		ComplianceImpact:   "Resolves data minimization requirements",
	},
	"user_consent": {
		Title:       "Deploy Consent Management Platform",
		Description: "Implement proper user consent collection and management",
		Steps: []string{
			"Select consent management tool",
			"Design consent collection UI",
			"Integrate with data systems",
			"Test and deploy",
		},
		EstimatedTimeHours: 60,
		RequiredResources:  []string{"frontend_dev", "backend_dev", "legal"},
		CostEstimateUSD:    15000,
		ComplianceImpact:   "Ensures proper consent collection",
	},
	"ai_transparency": {
		Title:       "Create AI Model Documentation",
		Description: "Document AI models for transparency requirements",
		Steps: []string{
			"Document model purpose and capabilities",
			"Describe training data and methodology",
			"Outline decision-making process",
			"Create user-facing explanations",
		},
		EstimatedTimeHours: 30,
		RequiredResources:  []string{"data_scientist", "technical_writer"},
		CostEstimateUSD:    6000,
		ComplianceImpact:   "Meets AI transparency requirements",
	},
}

// templateFor picks a fix template by matching keywords in the violated
// requirement text. Consent management is the catch-all default.
func templateFor(violation *model.Violation) fixTemplate {
	requirement := strings.ToLower(violation.Requirement)

	switch {
	case strings.Contains(requirement, "data") || strings.Contains(requirement, "collection"):
		return fixTemplates["data_minimization"]
	case strings.Contains(requirement, "ai") || strings.Contains(requirement, "model"):
		return fixTemplates["ai_transparency"]
	default:
		return fixTemplates["user_consent"]
	}
}
