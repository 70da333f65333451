package catalog

import (
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// builtinRegulations are the offline requirement catalogs used when no
// generation backend is configured or generation fails.
var builtinRegulations = map[string]*model.Regulation{
	"GDPR": {
		Name: "GDPR",
		KeyRequirements: []model.Requirement{
			{
				ID:       "gdpr_1",
				Text:     "Obtain explicit consent for data processing",
				Category: types.CategoryUserConsent,
				Severity: types.SeverityHigh,
			},
			{
				ID:       "gdpr_2",
				Text:     "Implement data protection by design and by default",
				Category: types.CategorySecurity,
				Severity: types.SeverityHigh,
			},
			{
				ID:       "gdpr_3",
				Text:     "Notify authorities of data breaches within 72 hours",
				Category: types.CategoryTransparency,
				Severity: types.SeverityCritical,
			},
		},
		ApplicableSystems: []string{"data_collection", "data_storage", "user_interface"},
		Penalties: model.Penalty{
			MaxFinePercentage: 0.04,
			Description:       "Up to 4% of global annual turnover",
		},
	},
	"CCPA": {
		Name: "CCPA",
		KeyRequirements: []model.Requirement{
			{
				ID:       "ccpa_1",
				Text:     "Provide right to opt-out of data sale",
				Category: types.CategoryUserConsent,
				Severity: types.SeverityHigh,
			},
			{
				ID:       "ccpa_2",
				Text:     "Disclose data collection practices",
				Category: types.CategoryTransparency,
				Severity: types.SeverityMedium,
			},
			{
				ID:       "ccpa_3",
				Text:     "Honor deletion requests within 45 days",
				Category: types.CategoryDataProtection,
				Severity: types.SeverityHigh,
			},
		},
		ApplicableSystems: []string{"data_collection", "user_interface"},
		Penalties: model.Penalty{
			MaxFinePercentage: 0.025,
			Description:       "$2,500-$7,500 per violation",
		},
	},
	"AI_ACT": {
		Name: "AI_ACT",
		KeyRequirements: []model.Requirement{
			{
				ID:       "aia_1",
				Text:     "Conduct risk assessment for high-risk AI systems",
				Category: types.CategoryAudit,
				Severity: types.SeverityCritical,
			},
			{
				ID:       "aia_2",
				Text:     "Ensure human oversight of AI decisions",
				Category: types.CategoryTransparency,
				Severity: types.SeverityHigh,
			},
			{
				ID:       "aia_3",
				Text:     "Maintain documentation of AI system development",
				Category: types.CategoryAudit,
				Severity: types.SeverityMedium,
			},
		},
		ApplicableSystems: []string{"ai_models", "data_collection"},
		Penalties: model.Penalty{
			MaxFinePercentage: 0.06,
			Description:       "Up to 6% of global annual turnover",
		},
	},
}

// regulationTexts are short source snippets fed to the generation
// backend when parsing a regulation.
var regulationTexts = map[string]string{
	"GDPR":   "General Data Protection Regulation (GDPR) is a privacy law in the EU...",
	"CCPA":   "California Consumer Privacy Act (CCPA) gives consumers rights over their personal information...",
	"AI_ACT": "EU Artificial Intelligence Act regulates AI systems based on risk levels...",
}

func builtinRegulation(name string) *model.Regulation {
	if reg, ok := builtinRegulations[name]; ok {
		return reg.Clone()
	}
	return defaultRegulation(name)
}

// defaultRegulation is the structure returned for regulations the
// catalog knows nothing about. Every analysis still gets a fine basis.
func defaultRegulation(name string) *model.Regulation {
	return &model.Regulation{
		Name:              name,
		KeyRequirements:   []model.Requirement{},
		ApplicableSystems: []string{},
		Penalties: model.Penalty{
			MaxFinePercentage: 0.04,
			Description:       "Standard fine",
		},
	}
}

func regulationText(name string) string {
	if text, ok := regulationTexts[name]; ok {
		return text
	}
	return "Regulation: " + name
}
