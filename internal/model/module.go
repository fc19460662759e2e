package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FieldTemplate is the catalog-side definition of a module form field.
type FieldTemplate struct {
	Label           string `json:"label"`
	DefaultEnabled  bool   `json:"default_enabled"`
	DefaultRequired bool   `json:"default_required"`
}

// ActionTemplate is the catalog-side definition of a module action.
type ActionTemplate struct {
	Label          string `json:"label"`
	DefaultEnabled bool   `json:"default_enabled"`
}

// ModuleCatalogEntry represents the module_catalog table. A module is only
// meaningful for laboratories whose feature map has FeatureKey set true.
type ModuleCatalogEntry struct {
	ID         uuid.UUID                 `json:"id"`
	FeatureKey string                    `json:"feature_key"`
	Name       string                    `json:"name"`
	Fields     map[string]FieldTemplate  `json:"fields"`
	Actions    map[string]ActionTemplate `json:"actions"`
	Settings   map[string]any            `json:"settings,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// ModuleConfig is a laboratory's stored override for one module. Either
// map may be partial or nil; the resolver fills the gaps from the template.
type ModuleConfig struct {
	Fields  map[string]FieldSetting `json:"fields,omitempty"`
	Actions map[string]bool         `json:"actions,omitempty"`
}

// FieldSetting is one stored field override. Older records store a bare
// boolean meaning "enabled", with required falling back to the template
// default; Legacy marks values decoded from that shorthand.
type FieldSetting struct {
	Enabled  bool `json:"enabled"`
	Required bool `json:"required"`
	Legacy   bool `json:"-"`
}

func (f *FieldSetting) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FieldSetting{Enabled: b, Legacy: true}
		return nil
	}
	var obj struct {
		Enabled  bool `json:"enabled"`
		Required bool `json:"required"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = FieldSetting{Enabled: obj.Enabled, Required: obj.Required}
	return nil
}

// MarshalJSON always writes the object form, so the shorthand disappears
// on the next write of the record.
func (f FieldSetting) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Enabled  bool `json:"enabled"`
		Required bool `json:"required"`
	}{Enabled: f.Enabled, Required: f.Required})
}
