package model

import "github.com/secmon-lab/themis/pkg/domain/types"

// Violation is a single detected gap between company practice and a
// regulatory requirement. It is never mutated after creation.
type Violation struct {
	ID             string         `json:"id"`
	Regulation     string         `json:"regulation"`
	Requirement    string         `json:"requirement"`
	Severity       types.Severity `json:"severity"`
	SystemAffected string         `json:"system_affected"`
	Description    string         `json:"description"`
	Evidence       string         `json:"evidence"`
}
