package model

// AuditResult is the outcome of auditing a company against a set of
// regulations.
//
// In the rule-based path TotalChecks and PassedChecks are derived from
// the violation count with a fixed padding constant; they are a coarse
// heuristic, not a real check inventory.
type AuditResult struct {
	TotalChecks     int          `json:"total_checks"`
	PassedChecks    int          `json:"passed_checks"`
	Violations      []*Violation `json:"violations"`
	Summary         string       `json:"summary"`
	Recommendations []string     `json:"recommendations"`
}
