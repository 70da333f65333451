package model

import (
	"time"

	"github.com/secmon-lab/themis/pkg/domain/types"
)

// AuditLogEntry is the archived summary of one completed analysis.
type AuditLogEntry struct {
	ID              string          `json:"id"`
	Timestamp       time.Time       `json:"timestamp"`
	Company         string          `json:"company"`
	ComplianceScore float64         `json:"compliance_score"`
	RiskLevel       types.RiskLevel `json:"risk_level"`
	ViolationCount  int             `json:"violations_count"`
	Regulations     []string        `json:"regulations_checked"`
}
