package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSetting_UnmarshalObject(t *testing.T) {
	var s FieldSetting
	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"required":false}`), &s))

	assert.Equal(t, FieldSetting{Enabled: true, Required: false}, s)
	assert.False(t, s.Legacy)
}

func TestFieldSetting_UnmarshalLegacyBoolean(t *testing.T) {
	var s FieldSetting
	require.NoError(t, json.Unmarshal([]byte(`true`), &s))
	assert.Equal(t, FieldSetting{Enabled: true, Legacy: true}, s)

	require.NoError(t, json.Unmarshal([]byte(`false`), &s))
	assert.Equal(t, FieldSetting{Enabled: false, Legacy: true}, s)
}

func TestFieldSetting_MarshalDropsShorthand(t *testing.T) {
	out, err := json.Marshal(FieldSetting{Enabled: true, Required: true, Legacy: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"enabled":true,"required":true}`, string(out))
}

func TestModuleConfig_UnmarshalMixed(t *testing.T) {
	raw := `{"fields":{"patient_name":true,"notes":{"enabled":false,"required":false}},"actions":{"print":false}}`

	var cfg ModuleConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	assert.Equal(t, FieldSetting{Enabled: true, Legacy: true}, cfg.Fields["patient_name"])
	assert.Equal(t, FieldSetting{Enabled: false, Required: false}, cfg.Fields["notes"])
	assert.False(t, cfg.Actions["print"])
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("central-lab"))
	assert.True(t, ValidSlug("lab01"))
	assert.True(t, ValidSlug("a"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("-lab"))
	assert.False(t, ValidSlug("lab-"))
	assert.False(t, ValidSlug("Lab"))
	assert.False(t, ValidSlug("central lab"))
}
