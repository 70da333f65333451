package model

import "github.com/secmon-lab/themis/pkg/domain/types"

// Fix is a suggested remediation action tied to one violation.
// Priority mirrors the violation severity unless the generation
// backend overrides it.
type Fix struct {
	ViolationID        string         `json:"violation_id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Steps              []string       `json:"steps"`
	EstimatedTimeHours int            `json:"estimated_time_hours"`
	RequiredResources  []string       `json:"required_resources"`
	Priority           types.Severity `json:"priority"`
	CostEstimateUSD    int            `json:"cost_estimate_usd"`
	ComplianceImpact   string         `json:"compliance_impact"`
}
