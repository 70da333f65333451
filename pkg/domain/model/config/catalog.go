// Package config holds configuration data models shared between the
// CLI layer and the controllers.
package config

import "github.com/m-mizutani/goerr/v2"

// RegulationInfo is the human-facing metadata served for a supported
// regulation. It is presentation data, not the requirement catalog used
// for audits.
type RegulationInfo struct {
	Name            string   `json:"name" toml:"name"`
	Region          string   `json:"region" toml:"region"`
	EnforcedSince   string   `json:"enforced_since,omitempty" toml:"enforced_since,omitempty"`
	Status          string   `json:"status,omitempty" toml:"status,omitempty"`
	MaxFine         string   `json:"max_fine" toml:"max_fine"`
	KeyRequirements []string `json:"key_requirements" toml:"key_requirements"`
}

// CatalogConfig is the supported-regulation metadata table, keyed by
// regulation code.
type CatalogConfig struct {
	Regulations map[string]RegulationInfo `json:"regulations" toml:"regulations"`
}

func (c *CatalogConfig) Validate() error {
	for code, info := range c.Regulations {
		if code == "" {
			return goerr.New("regulation code must not be empty")
		}
		if info.Name == "" {
			return goerr.New("regulation name is required", goerr.V("code", code))
		}
	}
	return nil
}

// DefaultCatalog returns the builtin metadata table.
func DefaultCatalog() *CatalogConfig {
	return &CatalogConfig{
		Regulations: map[string]RegulationInfo{
			"GDPR": {
				Name:          "General Data Protection Regulation",
				Region:        "European Union",
				EnforcedSince: "2018",
				MaxFine:       "4% of global revenue or €20M",
				KeyRequirements: []string{
					"Data minimization",
					"Purpose limitation",
					"Right to erasure",
					"Data protection by design",
				},
			},
			"CCPA": {
				Name:          "California Consumer Privacy Act",
				Region:        "California, USA",
				EnforcedSince: "2020",
				MaxFine:       "$7,500 per intentional violation",
				KeyRequirements: []string{
					"Right to know",
					"Right to delete",
					"Right to opt-out",
					"Non-discrimination",
				},
			},
			"AI_ACT": {
				Name:    "EU Artificial Intelligence Act",
				Region:  "European Union",
				Status:  "Upcoming",
				MaxFine: "6% of global revenue",
				KeyRequirements: []string{
					"Risk-based classification",
					"Prohibited AI practices",
					"High-risk AI requirements",
					"Transparency obligations",
				},
			},
		},
	}
}
