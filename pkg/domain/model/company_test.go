package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
)

func TestCompanyProfileValidate(t *testing.T) {
	valid := func() *model.CompanyProfile {
		return &model.CompanyProfile{
			Name:          "Acme",
			DataCollected: []string{"email", "name"},
			AIModelsUsed:  []string{},
			UserCount:     1000,
		}
	}

	t.Run("valid profile", func(t *testing.T) {
		gt.NoError(t, valid().Validate())
	})

	t.Run("empty AI model list is valid", func(t *testing.T) {
		c := valid()
		c.AIModelsUsed = []string{}
		gt.NoError(t, c.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		c := valid()
		c.Name = ""
		gt.Error(t, c.Validate())
	})

	t.Run("nil data_collected", func(t *testing.T) {
		c := valid()
		c.DataCollected = nil
		gt.Error(t, c.Validate())
	})

	t.Run("nil ai_models_used", func(t *testing.T) {
		c := valid()
		c.AIModelsUsed = nil
		gt.Error(t, c.Validate())
	})

	t.Run("negative user count", func(t *testing.T) {
		c := valid()
		c.UserCount = -1
		gt.Error(t, c.Validate())
	})

	t.Run("negative revenue", func(t *testing.T) {
		c := valid()
		c.Revenue = -100
		gt.Error(t, c.Validate())
	})
}
