package audit

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

const (
	gdprDataCategoryThreshold = 10
	ccpaUserThreshold         = 50000
)

func checkGDPR(company *model.CompanyProfile) []*model.Violation {
	var violations []*model.Violation

	if len(company.DataCollected) > gdprDataCategoryThreshold {
		violations = append(violations, &model.Violation{
			ID:             "gdpr_data_minimization",
			Regulation:     "GDPR",
			Requirement:    "Data minimization - collect only necessary data",
			Severity:       types.SeverityMedium,
			SystemAffected: "data_collection",
			Description:    "Company collects excessive personal data",
			Evidence:       fmt.Sprintf("Collects %d data types", len(company.DataCollected)),
		})
	}

	storage := strings.ToLower(company.StorageLocation)
	if strings.Contains(storage, "global") || strings.Contains(storage, "usa") {
		violations = append(violations, &model.Violation{
			ID:             "gdpr_international_transfer",
			Regulation:     "GDPR",
			Requirement:    "Adequate protection for international data transfers",
			Severity:       types.SeverityHigh,
			SystemAffected: "data_storage",
			Description:    "EU data stored in non-adequate countries",
			Evidence:       fmt.Sprintf("Data stored in: %s", storage),
		})
	}

	return violations
}

func checkCCPA(company *model.CompanyProfile) []*model.Violation {
	var violations []*model.Violation

	if company.UserCount > ccpaUserThreshold {
		violations = append(violations, &model.Violation{
			ID:             "ccpa_threshold",
			Regulation:     "CCPA",
			Requirement:    "Compliance required for companies with 50k+ California consumers",
			Severity:       types.SeverityHigh,
			SystemAffected: "general",
			Description:    "Company likely meets CCPA threshold",
			Evidence:       fmt.Sprintf("Has %d users", company.UserCount),
		})
	}

	return violations
}

func checkAIAct(company *model.CompanyProfile) []*model.Violation {
	var violations []*model.Violation

	if len(company.AIModelsUsed) > 0 {
		violations = append(violations, &model.Violation{
			ID:             "aia_transparency",
			Regulation:     "AI_ACT",
			Requirement:    "Transparency for AI systems",
			Severity:       types.SeverityMedium,
			SystemAffected: "ai_models",
			Description:    "AI model documentation likely insufficient",
			Evidence:       fmt.Sprintf("Using %d AI models", len(company.AIModelsUsed)),
		})
	}

	return violations
}
