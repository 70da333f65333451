package usecase

import (
	"math"

	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// computeScore derives a 0-100 compliance score from the audit. Each
// violation deducts 10 times its severity weight, spread over the total
// number of checks.
func computeScore(result *model.AuditResult) float64 {
	totalChecks := result.TotalChecks
	if totalChecks == 0 {
		return 100.0
	}
	if totalChecks < 0 {
		totalChecks = 1
	}

	score := 100.0
	for _, violation := range result.Violations {
		score -= (10.0 * float64(violation.Severity.ScoreWeight())) / float64(totalChecks)
	}

	return math.Max(0.0, math.Min(100.0, score))
}

const (
	riskScoreCritical = 20
	riskScoreHigh     = 10
	riskScoreMedium   = 5
)

// assessRisk maps violation severities to a risk level and, when annual
// revenue is known, an estimated fine. No violations is always low risk
// with a zero fine.
func assessRisk(result *model.AuditResult, revenue float64) (types.RiskLevel, *float64) {
	if len(result.Violations) == 0 {
		fine := 0.0
		return types.RiskLevelLow, &fine
	}

	riskScore := 0
	for _, violation := range result.Violations {
		riskScore += violation.Severity.RiskPoints()
	}

	var level types.RiskLevel
	var finePercentage float64
	switch {
	case riskScore >= riskScoreCritical:
		level = types.RiskLevelCritical
		finePercentage = 0.06
	case riskScore >= riskScoreHigh:
		level = types.RiskLevelHigh
		finePercentage = 0.04
	case riskScore >= riskScoreMedium:
		level = types.RiskLevelMedium
		finePercentage = 0.02
	default:
		level = types.RiskLevelLow
		finePercentage = 0.01
	}

	if revenue <= 0 {
		return level, nil
	}

	fine := round2(revenue * finePercentage)
	return level, &fine
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
