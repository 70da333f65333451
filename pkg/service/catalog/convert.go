package catalog

import (
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// toModel normalizes a decoded payload. Invalid enum values from the
// generation backend are coerced to safe defaults rather than rejected.
func (p *regulationPayload) toModel(name string) *model.Regulation {
	reg := &model.Regulation{
		Name:              p.Name,
		ApplicableSystems: p.ApplicableSystems,
		Penalties: model.Penalty{
			MaxFinePercentage: p.Penalties.MaxFinePercentage,
			Description:       p.Penalties.Description,
		},
	}
	if reg.Name == "" {
		reg.Name = name
	}
	if reg.ApplicableSystems == nil {
		reg.ApplicableSystems = []string{}
	}

	reg.KeyRequirements = make([]model.Requirement, 0, len(p.KeyRequirements))
	for _, req := range p.KeyRequirements {
		category := types.Category(req.Category)
		if !category.IsValid() {
			category = types.CategoryAudit
		}
		severity := types.Severity(req.Severity)
		if !severity.IsValid() {
			severity = types.SeverityLow
		}
		reg.KeyRequirements = append(reg.KeyRequirements, model.Requirement{
			ID:       req.ID,
			Text:     req.Text,
			Category: category,
			Severity: severity,
		})
	}

	return reg
}
