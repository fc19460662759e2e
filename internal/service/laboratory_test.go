package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solhub/admin-api/internal/model"
)

func validLab() *model.Laboratory {
	return &model.Laboratory{
		Name:   "Central Lab",
		Slug:   "central-lab",
		Status: model.StatusActive,
		Config: model.LabConfig{
			Timezone:     "America/Caracas",
			ExchangeRate: 36.5,
		},
	}
}

func TestValidateLaboratory(t *testing.T) {
	assert.NoError(t, validateLaboratory(validLab()))

	lab := validLab()
	lab.Name = ""
	assert.EqualError(t, validateLaboratory(lab), "name is required")

	lab = validLab()
	lab.Slug = ""
	assert.EqualError(t, validateLaboratory(lab), "slug is required")

	lab = validLab()
	lab.Status = "archived"
	assert.EqualError(t, validateLaboratory(lab), "invalid status")

	lab = validLab()
	lab.Config.ExchangeRate = -1
	assert.EqualError(t, validateLaboratory(lab), "exchange rate must not be negative")

	lab = validLab()
	lab.Config.Timezone = "Mars/Olympus"
	assert.EqualError(t, validateLaboratory(lab), "invalid timezone")
}

func TestValidateLaboratory_ErrorsAreValidation(t *testing.T) {
	lab := validLab()
	lab.Name = ""

	err := validateLaboratory(lab)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidateFeature(t *testing.T) {
	entry := &model.FeatureCatalogEntry{
		Key:          "online_results",
		Name:         "Online Results",
		Category:     model.CategoryPremium,
		RequiredPlan: model.PlanPro,
	}
	assert.NoError(t, validateFeature(entry))

	bad := *entry
	bad.Key = "Online-Results"
	assert.EqualError(t, validateFeature(&bad), "invalid key format")

	bad = *entry
	bad.Key = "9starts_with_digit"
	assert.EqualError(t, validateFeature(&bad), "invalid key format")

	bad = *entry
	bad.Category = "beta"
	assert.EqualError(t, validateFeature(&bad), "invalid category")

	bad = *entry
	bad.RequiredPlan = "platinum"
	assert.EqualError(t, validateFeature(&bad), "invalid required plan")
}

func TestIsValidFeatureKey(t *testing.T) {
	assert.True(t, isValidFeatureKey("orders"))
	assert.True(t, isValidFeatureKey("online_results_v2"))
	assert.False(t, isValidFeatureKey(""))
	assert.False(t, isValidFeatureKey("_orders"))
	assert.False(t, isValidFeatureKey("orders-v2"))
}
