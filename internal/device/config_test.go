package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esensor/internal/model"
)

func mustDef(t *testing.T, name string) *model.Definition {
	t.Helper()
	def, err := model.Resolve(name)
	require.NoError(t, err)
	return def
}

func TestResolveFilterExplicitName(t *testing.T) {
	def := mustDef(t, "G366PDG0")
	name, code, err := resolveFilter(def, 125, "MV_AVG128")
	require.NoError(t, err)
	assert.Equal(t, "MV_AVG128", name)
	assert.Equal(t, def.FilterSel["MV_AVG128"], code)
}

func TestResolveFilterRecommendationTable(t *testing.T) {
	def := mustDef(t, "G366PDG0")
	name, code, err := resolveFilter(def, 200, "")
	require.NoError(t, err)
	assert.Equal(t, "K32_FC50", name)
	assert.Equal(t, def.FilterSel["K32_FC50"], code)
}

func TestResolveFilterLadderFallback(t *testing.T) {
	// G370 carries no recommendation table, so the moving average ladder
	// decides.
	def := mustDef(t, "G370PDF1")
	name, code, err := resolveFilter(def, 250, "")
	require.NoError(t, err)
	assert.Equal(t, "MV_AVG8", name)
	assert.Equal(t, def.FilterSel["MV_AVG8"], code)
}

func TestResolveFilterAltTable(t *testing.T) {
	def := mustDef(t, "G370PDF1")

	// 400 sps is an alternate-table rate: same name, different code.
	name, code, err := resolveFilter(def, 400, "K32_FC50")
	require.NoError(t, err)
	assert.Equal(t, "K32_FC50", name)
	assert.Equal(t, def.FilterSelAlt["K32_FC50"], code)
	assert.NotEqual(t, def.FilterSel["K32_FC50"], code)

	// K32_FC25 exists in the normal table only.
	_, _, err = resolveFilter(def, 2000, "K32_FC25")
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "filter", cerr.Setting)

	_, code, err = resolveFilter(def, 250, "K32_FC25")
	require.NoError(t, err)
	assert.Equal(t, def.FilterSel["K32_FC25"], code)
}

func TestResolveFilterUnknownRate(t *testing.T) {
	def := mustDef(t, "G370PDF1")
	_, _, err := resolveFilter(def, 123, "")
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "filter", cerr.Setting)
}

func TestIMUValidateDomains(t *testing.T) {
	def := mustDef(t, "G366PDG0")

	for _, tc := range []struct {
		setting string
		mutate  func(*IMUConfig)
	}{
		{"dout_rate", func(c *IMUConfig) { c.DoutRate = 123 }},
		{"counter", func(c *IMUConfig) { c.Counter = "bogus" }},
		{"counter", func(c *IMUConfig) { c.Counter = "reset"; c.ExtTrigger = true }},
		{"dlta_sf_range", func(c *IMUConfig) { c.DltaSFRange = 16 }},
		{"dltv_sf_range", func(c *IMUConfig) { c.DltvSFRange = -1 }},
		{"atti_mode", func(c *IMUConfig) { c.Atti = true; c.AttiMode = "sideways" }},
		{"atti_conv", func(c *IMUConfig) { c.Atti = true; c.AttiConv = 24 }},
		{"atti_profile", func(c *IMUConfig) { c.Atti = true; c.AttiProfile = "moded" }},
	} {
		cfg := DefaultIMUConfig()
		tc.mutate(&cfg)
		_, _, err := cfg.validate(def)
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr, tc.setting)
		assert.Equal(t, tc.setting, cerr.Setting)
	}
}

func TestIMUValidateBypassesUnsupported(t *testing.T) {
	// G370PDF1 lacks the attitude engine and range switching.
	def := mustDef(t, "G370PDF1")
	cfg := DefaultIMUConfig()
	cfg.ARange = true
	cfg.Atti = true
	cfg.Qtn = true

	eff, bypassed, err := cfg.validate(def)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a_range", "atti", "qtn"}, bypassed)
	assert.False(t, eff.ARange)
	assert.False(t, eff.Atti)
	assert.False(t, eff.Qtn)
	// delta output is supported and stays on
	cfg2 := DefaultIMUConfig()
	cfg2.DltA = true
	eff, bypassed, err = cfg2.validate(def)
	require.NoError(t, err)
	assert.Empty(t, bypassed)
	assert.True(t, eff.DltA)
}

func TestIMUSchemaScaling(t *testing.T) {
	def := mustDef(t, "G366PDG0")
	cfg := DefaultIMUConfig()
	cfg.DltA = true
	cfg.DltV = true
	cfg.Counter = "sample"
	cfg.Chksm = true

	sc := imuSchema(def, cfg)
	assert.Equal(t, []string{
		"ndflags", "tempC",
		"gyro_X", "gyro_Y", "gyro_Z",
		"accl_X", "accl_Y", "accl_Z",
		"dlta_X", "dlta_Y", "dlta_Z",
		"dltv_X", "dltv_Y", "dltv_Z",
		"counter", "chksm",
	}, sc.Names())

	byName := map[string]FieldSpec{}
	for _, f := range sc.Fields {
		byName[f.Name] = f
	}
	assert.Equal(t, 32, byName["gyro_X"].Bits)
	assert.InDelta(t, def.Scale.Gyro/65536, byName["gyro_X"].Scale, 1e-15)
	assert.InDelta(t, def.Scale.Dlta*4096/65536, byName["dlta_Z"].Scale, 1e-15)
	assert.Equal(t, 16, byName["counter"].Bits)
	assert.True(t, sc.Chksm)

	// temperature slope and 25degC offset track the 32-bit width
	assert.InDelta(t, def.Scale.TempC/65536, byName["tempC"].Scale, 1e-15)
	assert.InDelta(t, def.Scale.TempC25C*65536, byName["tempC"].Offset, 1e-6)
	assert.InDelta(t, 25, byName["tempC"].Bias, 0)
}

func TestIMUSchemaMinimal(t *testing.T) {
	def := mustDef(t, "G366PDG0")
	cfg := DefaultIMUConfig()
	cfg.NDFlags = false
	cfg.TempC = false

	sc := imuSchema(def, cfg)
	assert.Equal(t, []string{
		"gyro_X", "gyro_Y", "gyro_Z",
		"accl_X", "accl_Y", "accl_Z",
	}, sc.Names())
	assert.Equal(t, 6*4+2, sc.FrameSize())
	assert.False(t, sc.Chksm)
}

func TestIMUSchemaARangeDoublesAccl(t *testing.T) {
	def := mustDef(t, "G366PDG0")
	cfg := DefaultIMUConfig()
	base := imuSchema(def, cfg)
	cfg.ARange = true
	wide := imuSchema(def, cfg)

	find := func(sc Schema, name string) FieldSpec {
		for _, f := range sc.Fields {
			if f.Name == name {
				return f
			}
		}
		t.Fatalf("field %s not in schema", name)
		return FieldSpec{}
	}
	assert.InDelta(t, find(base, "accl_X").Scale*2, find(wide, "accl_X").Scale, 1e-15)
	assert.InDelta(t, find(base, "gyro_X").Scale, find(wide, "gyro_X").Scale, 1e-15)
}

func TestACCLValidate(t *testing.T) {
	def := mustDef(t, "A352AD10")

	cfg := DefaultACCLConfig()
	cfg.DoutRate = 12345
	_, _, err := cfg.validate(def)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "dout_rate", cerr.Setting)

	cfg = DefaultACCLConfig()
	cfg.TiltMask = 8
	_, _, err = cfg.validate(def)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "tilt", cerr.Setting)

	cfg = DefaultACCLConfig()
	cfg.Filter = "NOPE"
	_, _, err = cfg.validate(def)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "filter", cerr.Setting)
}

func TestVIBEValidate(t *testing.T) {
	def := mustDef(t, "A342VD10")

	// output name is case-insensitive
	cfg := DefaultVIBEConfig()
	cfg.OutputSel = "disp_rms"
	eff, _, err := cfg.validate(def)
	require.NoError(t, err)
	assert.Equal(t, "DISP_RMS", eff.OutputSel)

	cfg = DefaultVIBEConfig()
	cfg.OutputSel = "ACCELERATION_RMS"
	_, _, err = cfg.validate(def)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "output_sel", cerr.Setting)

	cfg = DefaultVIBEConfig()
	cfg.SensX, cfg.SensY, cfg.SensZ = false, false, false
	_, _, err = cfg.validate(def)
	require.ErrorAs(t, err, &cerr)

	cfg = DefaultVIBEConfig()
	cfg.DoutRateRMSPP = 256
	_, _, err = cfg.validate(def)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "dout_rate_rmspp", cerr.Setting)

	// RAW output bypasses the RMS/PP rates instead of rejecting them
	cfg = DefaultVIBEConfig()
	cfg.OutputSel = "VELOCITY_RAW"
	cfg.DoutRateRMSPP = 256
	_, bypassed, err := cfg.validate(def)
	require.NoError(t, err)
	assert.Contains(t, bypassed, "dout_rate_rmspp")
}

func TestVIBESchemaTempCFormats(t *testing.T) {
	def := mustDef(t, "A342VD10")

	cfg := DefaultVIBEConfig()
	sc := vibeSchema(def, cfg)
	assert.Equal(t, []string{"ndflags", "tempC", "vel_X", "vel_Y", "vel_Z"}, sc.Names())
	assert.Equal(t, 16, sc.Fields[1].Bits)
	assert.False(t, sc.Fields[1].Signed)

	cfg.TempC16 = false
	sc = vibeSchema(def, cfg)
	assert.Equal(t, []string{"ndflags", "tempC8", "exi-alrm-cnt", "vel_X", "vel_Y", "vel_Z"}, sc.Names())
	assert.Equal(t, 8, sc.Fields[1].Bits)
	assert.True(t, sc.Fields[1].Signed)
	assert.False(t, sc.Fields[2].Signed)

	cfg = DefaultVIBEConfig()
	cfg.OutputSel = "DISP_PP"
	cfg.SensY = false
	sc = vibeSchema(def, cfg)
	assert.Equal(t, []string{"ndflags", "tempC", "disp_X", "disp_Z"}, sc.Names())
	for _, f := range sc.Fields[2:] {
		assert.Equal(t, 24, f.Bits)
		assert.InDelta(t, def.Scale.Disp, f.Scale, 1e-15)
	}
}
