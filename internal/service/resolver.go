package service

import (
	"github.com/solhub/admin-api/internal/model"
)

// ResolveFeatures merges the active feature catalog with one laboratory's
// feature map. Every active catalog key gets a boolean; keys absent from
// the laboratory map resolve to false.
func ResolveFeatures(catalog []model.FeatureCatalogEntry, features map[string]bool) map[string]bool {
	resolved := make(map[string]bool, len(catalog))
	for _, entry := range catalog {
		if !entry.IsActive {
			continue
		}
		resolved[entry.Key] = features[entry.Key]
	}
	return resolved
}

// FieldConfig is the effective configuration of one module field.
type FieldConfig struct {
	Label    string `json:"label"`
	Enabled  bool   `json:"enabled"`
	Required bool   `json:"required"`
}

// ActionConfig is the effective configuration of one module action.
type ActionConfig struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// ResolvedModule is a module template merged with a laboratory's overrides.
type ResolvedModule struct {
	Name       string                  `json:"name"`
	FeatureKey string                  `json:"feature_key"`
	Fields     map[string]FieldConfig  `json:"fields"`
	Actions    map[string]ActionConfig `json:"actions"`
	Settings   map[string]any          `json:"settings,omitempty"`
}

// ResolveModuleConfig computes the effective field and action configuration
// for one module. A stored object wins outright; the legacy bare-boolean
// shorthand sets enabled and keeps the template's default for required;
// anything absent falls back to the template defaults. Fields and actions
// outside the template are ignored.
func ResolveModuleConfig(entry model.ModuleCatalogEntry, stored model.ModuleConfig) ResolvedModule {
	m := ResolvedModule{
		Name:       entry.Name,
		FeatureKey: entry.FeatureKey,
		Fields:     make(map[string]FieldConfig, len(entry.Fields)),
		Actions:    make(map[string]ActionConfig, len(entry.Actions)),
		Settings:   entry.Settings,
	}
	for name, tpl := range entry.Fields {
		fc := FieldConfig{Label: tpl.Label, Enabled: tpl.DefaultEnabled, Required: tpl.DefaultRequired}
		if s, ok := stored.Fields[name]; ok {
			fc.Enabled = s.Enabled
			if s.Legacy {
				fc.Required = tpl.DefaultRequired
			} else {
				fc.Required = s.Required
			}
		}
		m.Fields[name] = fc
	}
	for name, tpl := range entry.Actions {
		ac := ActionConfig{Label: tpl.Label, Enabled: tpl.DefaultEnabled}
		if v, ok := stored.Actions[name]; ok {
			ac.Enabled = v
		}
		m.Actions[name] = ac
	}
	return m
}

// ResolveModules resolves every catalog module whose owning feature is
// enabled for the laboratory. Stored configuration for disabled features is
// preserved in the record but never surfaced.
func ResolveModules(catalog []model.ModuleCatalogEntry, lab *model.Laboratory) []ResolvedModule {
	var resolved []ResolvedModule
	for _, entry := range catalog {
		if !lab.Features[entry.FeatureKey] {
			continue
		}
		resolved = append(resolved, ResolveModuleConfig(entry, lab.Config.Modules[entry.Name]))
	}
	return resolved
}

// NormalizeModuleConfig rewrites a stored override so that a disabled field
// never stays marked required, and the legacy shorthand is dropped.
func NormalizeModuleConfig(cfg model.ModuleConfig) model.ModuleConfig {
	for name, s := range cfg.Fields {
		if !s.Enabled {
			s.Required = false
		}
		s.Legacy = false
		cfg.Fields[name] = s
	}
	return cfg
}
