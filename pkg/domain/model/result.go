package model

import "github.com/secmon-lab/themis/pkg/domain/types"

// AnalysisResult is the complete outcome of one compliance analysis.
// It is produced once per call and returned to the caller immutable.
//
// EstimatedFine is nil when company revenue is unknown or zero; the
// absence is distinguishable from a zero fine.
type AnalysisResult struct {
	ComplianceScore float64         `json:"compliance_score"`
	Violations      []*Violation    `json:"violations"`
	SuggestedFixes  []*Fix          `json:"suggested_fixes"`
	AuditReport     string          `json:"audit_report"`
	RiskLevel       types.RiskLevel `json:"risk_level"`
	EstimatedFine   *float64        `json:"estimated_fine"`
	Regulations     []string        `json:"regulations"`
	AnalysisDate    string          `json:"analysis_date"`

	// Error carries the failure message of a degraded result. Empty on
	// success.
	Error string `json:"error,omitempty"`
}
