package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solhub/admin-api/internal/model"
)

func TestResolveFeatures_DefaultsToFalse(t *testing.T) {
	catalog := []model.FeatureCatalogEntry{
		{Key: "orders", IsActive: true},
		{Key: "billing", IsActive: true},
		{Key: "legacy_reports", IsActive: false},
	}
	flags := map[string]bool{"orders": true}

	resolved := ResolveFeatures(catalog, flags)

	assert.Len(t, resolved, 2)
	assert.True(t, resolved["orders"])
	assert.False(t, resolved["billing"])
	_, ok := resolved["legacy_reports"]
	assert.False(t, ok, "inactive catalog entries must not be resolved")
}

func TestResolveFeatures_NilFlagMap(t *testing.T) {
	catalog := []model.FeatureCatalogEntry{{Key: "orders", IsActive: true}}

	resolved := ResolveFeatures(catalog, nil)

	assert.Equal(t, map[string]bool{"orders": false}, resolved)
}

func testModuleEntry() model.ModuleCatalogEntry {
	return model.ModuleCatalogEntry{
		Name:       "orders",
		FeatureKey: "orders",
		Fields: map[string]model.FieldTemplate{
			"patient_name": {Label: "Patient", DefaultEnabled: true, DefaultRequired: true},
			"notes":        {Label: "Notes", DefaultEnabled: false, DefaultRequired: false},
		},
		Actions: map[string]model.ActionTemplate{
			"print": {Label: "Print", DefaultEnabled: true},
			"email": {Label: "Email", DefaultEnabled: false},
		},
	}
}

func TestResolveModuleConfig_TemplateDefaults(t *testing.T) {
	resolved := ResolveModuleConfig(testModuleEntry(), model.ModuleConfig{})

	assert.Equal(t, FieldConfig{Label: "Patient", Enabled: true, Required: true}, resolved.Fields["patient_name"])
	assert.Equal(t, FieldConfig{Label: "Notes", Enabled: false, Required: false}, resolved.Fields["notes"])
	assert.True(t, resolved.Actions["print"].Enabled)
	assert.False(t, resolved.Actions["email"].Enabled)
}

func TestResolveModuleConfig_StoredObjectWins(t *testing.T) {
	stored := model.ModuleConfig{
		Fields: map[string]model.FieldSetting{
			"patient_name": {Enabled: true, Required: false},
		},
		Actions: map[string]bool{"email": true},
	}

	resolved := ResolveModuleConfig(testModuleEntry(), stored)

	assert.Equal(t, FieldConfig{Label: "Patient", Enabled: true, Required: false}, resolved.Fields["patient_name"])
	assert.True(t, resolved.Actions["email"].Enabled)
}

func TestResolveModuleConfig_LegacyShorthand(t *testing.T) {
	// A bare boolean only carries enabled; required keeps the template default.
	stored := model.ModuleConfig{
		Fields: map[string]model.FieldSetting{
			"patient_name": {Enabled: true, Legacy: true},
			"notes":        {Enabled: true, Legacy: true},
		},
	}

	resolved := ResolveModuleConfig(testModuleEntry(), stored)

	assert.Equal(t, FieldConfig{Label: "Patient", Enabled: true, Required: true}, resolved.Fields["patient_name"])
	assert.Equal(t, FieldConfig{Label: "Notes", Enabled: true, Required: false}, resolved.Fields["notes"])
}

func TestResolveModuleConfig_IgnoresUnknownFields(t *testing.T) {
	stored := model.ModuleConfig{
		Fields: map[string]model.FieldSetting{
			"removed_field": {Enabled: true},
		},
	}

	resolved := ResolveModuleConfig(testModuleEntry(), stored)

	_, ok := resolved.Fields["removed_field"]
	assert.False(t, ok)
}

func TestResolveModules_FiltersByFeature(t *testing.T) {
	catalog := []model.ModuleCatalogEntry{
		testModuleEntry(),
		{Name: "billing", FeatureKey: "billing", Fields: map[string]model.FieldTemplate{"amount": {}}},
	}
	lab := &model.Laboratory{
		Features: map[string]bool{"orders": true, "billing": false},
		Config: model.LabConfig{
			Modules: map[string]model.ModuleConfig{
				// Orphaned config for a disabled feature stays stored but
				// must never be surfaced.
				"billing": {Actions: map[string]bool{"charge": true}},
			},
		},
	}

	resolved := ResolveModules(catalog, lab)

	assert.Len(t, resolved, 1)
	assert.Equal(t, "orders", resolved[0].Name)
}

func TestNormalizeModuleConfig_DisabledClearsRequired(t *testing.T) {
	cfg := model.ModuleConfig{
		Fields: map[string]model.FieldSetting{
			"notes":        {Enabled: false, Required: true},
			"patient_name": {Enabled: true, Required: true, Legacy: true},
		},
	}

	normalized := NormalizeModuleConfig(cfg)

	assert.Equal(t, model.FieldSetting{Enabled: false, Required: false}, normalized.Fields["notes"])
	assert.Equal(t, model.FieldSetting{Enabled: true, Required: true}, normalized.Fields["patient_name"])
}
