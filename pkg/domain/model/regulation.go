package model

import "github.com/secmon-lab/themis/pkg/domain/types"

// Requirement is a single compliance requirement within a regulation.
type Requirement struct {
	ID       string         `json:"id"`
	Text     string         `json:"requirement"`
	Category types.Category `json:"category"`
	Severity types.Severity `json:"severity"`
}

// Penalty describes the fine schedule of a regulation.
type Penalty struct {
	MaxFinePercentage float64 `json:"max_fine_percentage"`
	Description       string  `json:"description"`
}

// Regulation is the structured requirement set for one regulation,
// keyed by its name. Once resolved by the catalog it is never mutated.
type Regulation struct {
	Name              string        `json:"regulation_name"`
	KeyRequirements   []Requirement `json:"key_requirements"`
	ApplicableSystems []string      `json:"applicable_systems"`
	Penalties         Penalty       `json:"penalties"`
}

// Clone returns a deep copy so cached regulations stay immutable.
func (r *Regulation) Clone() *Regulation {
	if r == nil {
		return nil
	}
	cloned := &Regulation{
		Name:      r.Name,
		Penalties: r.Penalties,
	}
	if r.KeyRequirements != nil {
		cloned.KeyRequirements = make([]Requirement, len(r.KeyRequirements))
		copy(cloned.KeyRequirements, r.KeyRequirements)
	}
	if r.ApplicableSystems != nil {
		cloned.ApplicableSystems = make([]string, len(r.ApplicableSystems))
		copy(cloned.ApplicableSystems, r.ApplicableSystems)
	}
	return cloned
}
