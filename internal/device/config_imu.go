package device

import (
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"esensor/internal/model"
	"esensor/internal/regif"
)

// IMUConfig holds every tunable of the inertial measurement models. Zero
// values are meaningful, so callers start from DefaultIMUConfig and override.
type IMUConfig struct {
	DoutRate float64 `yaml:"dout_rate" mapstructure:"dout_rate"`
	Filter   string  `yaml:"filter" mapstructure:"filter"` // empty selects per the rate table

	NDFlags   bool   `yaml:"ndflags" mapstructure:"ndflags"`
	TempC     bool   `yaml:"tempc" mapstructure:"tempc"`
	Counter   string `yaml:"counter" mapstructure:"counter"` // "", "sample", "reset"
	Chksm     bool   `yaml:"chksm" mapstructure:"chksm"`
	AutoStart bool   `yaml:"auto_start" mapstructure:"auto_start"`
	UartAuto  bool   `yaml:"uart_auto" mapstructure:"uart_auto"`
	Is32Bit   bool   `yaml:"is_32bit" mapstructure:"is_32bit"`

	ARange     bool `yaml:"a_range" mapstructure:"a_range"`
	ExtTrigger bool `yaml:"ext_trigger" mapstructure:"ext_trigger"`
	DrdyPol    bool `yaml:"drdy_pol" mapstructure:"drdy_pol"`

	DltA        bool `yaml:"dlta" mapstructure:"dlta"`
	DltV        bool `yaml:"dltv" mapstructure:"dltv"`
	DltaSFRange int  `yaml:"dlta_sf_range" mapstructure:"dlta_sf_range"`
	DltvSFRange int  `yaml:"dltv_sf_range" mapstructure:"dltv_sf_range"`

	Atti        bool   `yaml:"atti" mapstructure:"atti"`
	Qtn         bool   `yaml:"qtn" mapstructure:"qtn"`
	AttiMode    string `yaml:"atti_mode" mapstructure:"atti_mode"` // "euler" or "incl"
	AttiConv    int    `yaml:"atti_conv" mapstructure:"atti_conv"` // axis mapping 0..23
	AttiProfile string `yaml:"atti_profile" mapstructure:"atti_profile"`
}

// DefaultIMUConfig is the configuration applied when the caller supplies
// nothing: 200 sps, auto-selected filter, temperature and flag words on,
// 32-bit output, samples streamed without a host trigger.
func DefaultIMUConfig() IMUConfig {
	return IMUConfig{
		DoutRate:    200,
		NDFlags:     true,
		TempC:       true,
		UartAuto:    true,
		Is32Bit:     true,
		DrdyPol:     true,
		DltaSFRange: 12,
		DltvSFRange: 12,
		AttiMode:    "euler",
		AttiProfile: "modea",
	}
}

// attitude motion profile codes written to GLOB_CMD2.
var attiProfiles = map[string]uint8{
	"modea": 0,
	"modeb": 1,
	"modec": 2,
}

// mvAvgLadder is the fallback filter per output rate for models without a
// documented recommendation table.
var mvAvgLadder = map[float64]string{
	2000: "MV_AVG0", 1000: "MV_AVG2", 500: "MV_AVG4",
	400: "MV_AVG8", 250: "MV_AVG8",
	200: "MV_AVG16", 125: "MV_AVG16",
	100: "MV_AVG32", 80: "MV_AVG32", 62.5: "MV_AVG32",
	50: "MV_AVG64", 40: "MV_AVG64", 31.25: "MV_AVG64",
	25: "MV_AVG128", 20: "MV_AVG128", 15.625: "MV_AVG128",
}

// filterTable picks which FILTER_SEL code map applies at the given rate.
// G370 models swap in an alternate table at 2000/400/80 sps.
func filterTable(def *model.Definition, rate float64) map[string]uint8 {
	for _, r := range def.FilterAltRates {
		if r == rate {
			return def.FilterSelAlt
		}
	}
	return def.FilterSel
}

// resolveFilter returns the filter name and code to program. An explicit
// name wins; otherwise the model's recommendation table, then the moving
// average ladder.
func resolveFilter(def *model.Definition, rate float64, name string) (string, uint8, error) {
	table := filterTable(def, rate)
	if name == "" {
		if n, ok := def.AutoFilter[rate]; ok {
			name = n
		} else if n, ok := mvAvgLadder[rate]; ok {
			name = n
		} else {
			return "", 0, &ConfigError{Setting: "filter", Reason: fmt.Sprintf("no filter recommendation for %g sps", rate)}
		}
	}
	code, ok := table[name]
	if !ok {
		return "", 0, &ConfigError{Setting: "filter", Reason: fmt.Sprintf("%q not available at %g sps", name, rate)}
	}
	return name, code, nil
}

// validate checks option domains and support, returning the effective config
// with unsupported options bypassed and the names of the bypassed options.
func (c IMUConfig) validate(def *model.Definition) (IMUConfig, []string, error) {
	if (c.DltA || c.DltV) && (c.Atti || c.Qtn) {
		return c, nil, &ConfigError{
			Setting: "dlta/dltv",
			Reason:  "delta angle/velocity and attitude/quaternion output cannot be enabled together",
		}
	}
	if _, ok := def.DoutRate[c.DoutRate]; !ok {
		return c, nil, &ConfigError{Setting: "dout_rate", Reason: fmt.Sprintf("%g sps not supported by %s", c.DoutRate, def.Name)}
	}
	switch c.Counter {
	case "", "sample", "reset":
	default:
		return c, nil, &ConfigError{Setting: "counter", Reason: fmt.Sprintf("%q is not one of sample, reset", c.Counter)}
	}
	if c.DltaSFRange < 0 || c.DltaSFRange > 15 {
		return c, nil, &ConfigError{Setting: "dlta_sf_range", Reason: "must be 0..15"}
	}
	if c.DltvSFRange < 0 || c.DltvSFRange > 15 {
		return c, nil, &ConfigError{Setting: "dltv_sf_range", Reason: "must be 0..15"}
	}
	if c.Atti || c.Qtn {
		if c.AttiMode != "euler" && c.AttiMode != "incl" {
			return c, nil, &ConfigError{Setting: "atti_mode", Reason: fmt.Sprintf("%q is not one of euler, incl", c.AttiMode)}
		}
		if c.AttiConv < 0 || c.AttiConv > 23 {
			return c, nil, &ConfigError{Setting: "atti_conv", Reason: "must be 0..23"}
		}
		if _, ok := attiProfiles[c.AttiProfile]; !ok {
			return c, nil, &ConfigError{Setting: "atti_profile", Reason: fmt.Sprintf("%q is not one of modea, modeb, modec", c.AttiProfile)}
		}
	}
	if c.Counter == "reset" && !def.Flags.HasExtSel {
		return c, nil, &ConfigError{Setting: "counter", Reason: fmt.Sprintf("%s has no external counter reset input", def.Name)}
	}
	if c.Counter == "reset" && c.ExtTrigger {
		return c, nil, &ConfigError{
			Setting: "counter",
			Reason:  "counter reset and external trigger both claim the EXT pin",
		}
	}

	var bypassed []string
	bypass := func(name string, on *bool) {
		if *on {
			log.Warnf("%s does not support %s, ignoring", def.Name, name)
			*on = false
			bypassed = append(bypassed, name)
		}
	}
	if !def.Flags.HasARange {
		bypass("a_range", &c.ARange)
	}
	if !def.Flags.HasDltOutput {
		bypass("dlta", &c.DltA)
		bypass("dltv", &c.DltV)
	}
	if !def.Flags.HasAttiOutput {
		bypass("atti", &c.Atti)
		bypass("qtn", &c.Qtn)
	}
	if !def.Flags.HasExtSel {
		bypass("ext_trigger", &c.ExtTrigger)
	}
	return c, bypassed, nil
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// apply programs the validated configuration, mirroring the register write
// order the datasheets prescribe: signal routing first, then rates and
// filters, then the burst layout, then the optional delta and attitude
// blocks.
func applyIMU(rif *regif.Interface, def *model.Definition, c IMUConfig, filterCode uint8) error {
	reg := &def.Reg

	if def.Flags.HasExtSel {
		extName := "GPIO"
		switch {
		case c.ExtTrigger:
			extName = "TYPEB"
		case c.Counter == "reset":
			extName = "RESET"
		}
		extCode, ok := def.ExtSel[extName]
		if !ok {
			return &ConfigError{Setting: "ext_trigger", Reason: fmt.Sprintf("%s has no %s function on the EXT pin", def.Name, extName)}
		}
		tmp, err := rif.Get(reg.MscCtrl)
		if err != nil {
			return err
		}
		if err := rif.Set(reg.MscCtrl, uint8(tmp)&0x06|extCode<<6); err != nil {
			return err
		}
	}

	tmp, err := rif.Get(reg.MscCtrl)
	if err != nil {
		return err
	}
	if err := rif.Set(reg.MscCtrl, uint8(tmp)&0xFD|b2u8(c.DrdyPol)<<1); err != nil {
		return err
	}

	if err := rif.SetHigh(reg.SmplCtrl, def.DoutRate[c.DoutRate]); err != nil {
		return err
	}
	if err := rif.Set(reg.FilterCtrl, filterCode); err != nil {
		return err
	}
	time.Sleep(def.FilterDelay)
	if _, err := rif.WaitCleared(reg.FilterCtrl, 0x0020); err != nil {
		return err
	}

	if err := rif.Set(reg.UartCtrl, b2u8(c.AutoStart)<<1|b2u8(c.UartAuto)); err != nil {
		return err
	}
	if def.Flags.HasARange {
		if err := rif.SetHigh(reg.DltCtrl, b2u8(c.ARange)); err != nil {
			return err
		}
	}

	counterOn := c.Counter != ""
	if err := rif.SetHigh(reg.BurstCtrl1,
		b2u8(c.NDFlags)<<7|b2u8(c.TempC)<<6|1<<5|1<<4); err != nil {
		return err
	}
	if err := rif.Set(reg.BurstCtrl1, b2u8(counterOn)<<1|b2u8(c.Chksm)); err != nil {
		return err
	}
	var wide uint8
	if c.Is32Bit {
		wide = 0x7F
	}
	if err := rif.SetHigh(reg.BurstCtrl2, wide); err != nil {
		return err
	}
	if def.Flags.HasAttiCtrl {
		if err := rif.SetHigh(reg.AttiCtrl, 0x00); err != nil {
			return err
		}
	}
	// In manual trigger mode the device needs the measured channels armed in
	// SIG_CTRL; streaming mode derives them from BURST_CTRL.
	if !c.UartAuto {
		if err := rif.SetHigh(reg.SigCtrl, b2u8(c.TempC)<<7|7<<4|7<<1); err != nil {
			return err
		}
	}

	if c.DltA || c.DltV {
		if err := applyIMUDelta(rif, def, c); err != nil {
			return err
		}
	}
	if c.Atti || c.Qtn {
		if err := applyIMUAtti(rif, def, c); err != nil {
			return err
		}
	}
	return nil
}

func applyIMUDelta(rif *regif.Interface, def *model.Definition, c IMUConfig) error {
	reg := &def.Reg
	if err := rif.Set(reg.DltCtrl,
		uint8(c.DltaSFRange&0xF)<<4|uint8(c.DltvSFRange&0xF)); err != nil {
		return err
	}
	tmp, err := rif.Get(reg.BurstCtrl1)
	if err != nil {
		return err
	}
	if err := rif.SetHigh(reg.BurstCtrl1,
		uint8(tmp>>8)&0xF3|b2u8(c.DltA)<<3|b2u8(c.DltV)<<2); err != nil {
		return err
	}
	if def.Flags.HasAttiCtrl {
		tmp, err = rif.Get(reg.AttiCtrl)
		if err != nil {
			return err
		}
		if err := rif.SetHigh(reg.AttiCtrl, uint8(tmp>>8)&0xF9|0x01<<1); err != nil {
			return err
		}
	}
	if !c.UartAuto {
		if err := rif.Set(reg.SigCtrl, 7<<5|7<<2); err != nil {
			return err
		}
	}
	return nil
}

func applyIMUAtti(rif *regif.Interface, def *model.Definition, c IMUConfig) error {
	reg := &def.Reg
	tmp, err := rif.Get(reg.BurstCtrl1)
	if err != nil {
		return err
	}
	if err := rif.SetHigh(reg.BurstCtrl1,
		uint8(tmp>>8)&0xFC|b2u8(c.Qtn)<<1|b2u8(c.Atti)); err != nil {
		return err
	}
	tmp, err = rif.Get(reg.AttiCtrl)
	if err != nil {
		return err
	}
	euler := c.AttiMode == "euler"
	if err := rif.SetHigh(reg.AttiCtrl,
		uint8(tmp>>8)&0xF1|b2u8(euler)<<3|0x02<<1); err != nil {
		return err
	}
	if err := rif.Set(reg.AttiCtrl, uint8(c.AttiConv)); err != nil {
		return err
	}
	if err := rif.Set(reg.GlobCmd2, attiProfiles[c.AttiProfile]<<4); err != nil {
		return err
	}
	time.Sleep(def.AttiMotionDelay)
	return nil
}

// imuSchema builds the burst frame layout for the configuration. Field order
// follows the fixed on-wire order regardless of which options are enabled.
func imuSchema(def *model.Definition, c IMUConfig) Schema {
	sc := def.Scale
	bits := 16
	div := 1.0
	if c.Is32Bit {
		bits = 32
		div = 65536
	}
	acclSF := sc.Accl
	dltvSF := sc.Dltv * math.Pow(2, float64(c.DltvSFRange))
	if c.ARange {
		acclSF *= 2
		dltvSF *= 2
	}
	dltaSF := sc.Dlta * math.Pow(2, float64(c.DltaSFRange))

	var fields []FieldSpec
	if c.NDFlags {
		fields = append(fields, passthrough("ndflags", 16))
	}
	if c.TempC {
		fields = append(fields, FieldSpec{
			Name: "tempC", Bits: bits, Signed: true,
			Scale:  sc.TempC / div,
			Offset: sc.TempC25C * div,
			Bias:   25,
		})
	}
	fields = axes(fields, "gyro", xyz, bits, sc.Gyro/div, 0, 0)
	fields = axes(fields, "accl", xyz, bits, acclSF/div, 0, 0)
	if c.DltA {
		fields = axes(fields, "dlta", xyz, bits, dltaSF/div, 0, 0)
	}
	if c.DltV {
		fields = axes(fields, "dltv", xyz, bits, dltvSF/div, 0, 0)
	}
	if c.Qtn {
		fields = axes(fields, "qtn", quat, bits, sc.Qtn/div, 0, 0)
	}
	if c.Atti {
		fields = axes(fields, "atti", xyz, bits, sc.Atti/div, 0, 0)
	}
	if c.Counter != "" {
		fields = append(fields, passthrough("counter", 16))
	}
	if c.Chksm {
		fields = append(fields, passthrough("chksm", 16))
	}
	return Schema{Fields: fields, Chksm: c.Chksm}
}
