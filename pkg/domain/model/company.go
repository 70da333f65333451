package model

import "github.com/m-mizutani/goerr/v2"

// CompanyProfile is the immutable input to the compliance pipeline.
// Field names follow the public API wire format.
type CompanyProfile struct {
	Name               string   `json:"company_name"`
	DataCollected      []string `json:"data_collected"`
	StorageLocation    string   `json:"data_storage_location"`
	AIModelsUsed       []string `json:"ai_models_used"`
	UserCount          int      `json:"user_count"`
	Revenue            float64  `json:"revenue,omitempty"`
	ProcessingPurposes []string `json:"processing_purposes,omitempty"`
	Industry           string   `json:"industry,omitempty"`
}

// Validate checks the required fields of a company profile.
func (c *CompanyProfile) Validate() error {
	if c.Name == "" {
		return goerr.New("company_name is required")
	}
	if c.DataCollected == nil {
		return goerr.New("data_collected is required", goerr.V("company", c.Name))
	}
	if c.AIModelsUsed == nil {
		return goerr.New("ai_models_used is required", goerr.V("company", c.Name))
	}
	if c.UserCount < 0 {
		return goerr.New("user_count must be non-negative", goerr.V("user_count", c.UserCount))
	}
	if c.Revenue < 0 {
		return goerr.New("revenue must be non-negative", goerr.V("revenue", c.Revenue))
	}
	return nil
}
