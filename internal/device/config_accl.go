package device

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"esensor/internal/model"
	"esensor/internal/regif"
)

// ACCLConfig holds the tunables of the accelerometer models. Acceleration on
// all three axes is always streamed; the tilt mask swaps individual axes to
// tilt angle output.
type ACCLConfig struct {
	DoutRate float64 `yaml:"dout_rate" mapstructure:"dout_rate"`
	Filter   string  `yaml:"filter" mapstructure:"filter"`

	NDFlags   bool `yaml:"ndflags" mapstructure:"ndflags"`
	TempC     bool `yaml:"tempc" mapstructure:"tempc"`
	Counter   bool `yaml:"counter" mapstructure:"counter"`
	Chksm     bool `yaml:"chksm" mapstructure:"chksm"`
	AutoStart bool `yaml:"auto_start" mapstructure:"auto_start"`
	UartAuto  bool `yaml:"uart_auto" mapstructure:"uart_auto"`

	ExtTrigger bool `yaml:"ext_trigger" mapstructure:"ext_trigger"`
	DrdyPol    bool `yaml:"drdy_pol" mapstructure:"drdy_pol"`

	// TiltMask selects per-axis tilt output: bit2 = X, bit1 = Y, bit0 = Z.
	TiltMask uint8 `yaml:"tilt" mapstructure:"tilt"`
}

// DefaultACCLConfig matches the device power-on conventions: 200 sps,
// auto-selected filter, host-triggered reads.
func DefaultACCLConfig() ACCLConfig {
	return ACCLConfig{
		DoutRate: 200,
		NDFlags:  true,
		TempC:    true,
		DrdyPol:  true,
	}
}

func (c ACCLConfig) validate(def *model.Definition) (ACCLConfig, []string, error) {
	if _, ok := def.DoutRate[c.DoutRate]; !ok {
		return c, nil, &ConfigError{Setting: "dout_rate", Reason: fmt.Sprintf("%g sps not supported by %s", c.DoutRate, def.Name)}
	}
	if c.Filter != "" {
		if _, ok := def.FilterSel[c.Filter]; !ok {
			return c, nil, &ConfigError{Setting: "filter", Reason: fmt.Sprintf("%q not supported by %s", c.Filter, def.Name)}
		}
	} else if _, ok := def.AutoFilter[c.DoutRate]; !ok {
		return c, nil, &ConfigError{Setting: "filter", Reason: fmt.Sprintf("no filter recommendation for %g sps", c.DoutRate)}
	}
	if c.TiltMask > 0b111 {
		return c, nil, &ConfigError{Setting: "tilt", Reason: "mask must be 0..7"}
	}
	var bypassed []string
	if c.ExtTrigger && !def.Flags.HasExtSel {
		log.Warnf("%s does not support ext_trigger, ignoring", def.Name)
		c.ExtTrigger = false
		bypassed = append(bypassed, "ext_trigger")
	}
	return c, bypassed, nil
}

func applyACCL(rif *regif.Interface, def *model.Definition, c ACCLConfig) error {
	reg := &def.Reg

	tmp, err := rif.Get(reg.MscCtrl)
	if err != nil {
		return err
	}
	if err := rif.Set(reg.MscCtrl, uint8(tmp)&0x06|b2u8(c.ExtTrigger)<<6); err != nil {
		return err
	}
	tmp, err = rif.Get(reg.MscCtrl)
	if err != nil {
		return err
	}
	if err := rif.Set(reg.MscCtrl, uint8(tmp)&0xFD|b2u8(c.DrdyPol)<<1); err != nil {
		return err
	}

	tmp, err = rif.Get(reg.SigCtrl)
	if err != nil {
		return err
	}
	if err := rif.Set(reg.SigCtrl, uint8(tmp)&0x1F|c.TiltMask<<5); err != nil {
		return err
	}

	if err := rif.SetHigh(reg.SmplCtrl, def.DoutRate[c.DoutRate]); err != nil {
		return err
	}
	filter := c.Filter
	if filter == "" {
		filter = def.AutoFilter[c.DoutRate]
	}
	if err := rif.Set(reg.FilterCtrl, def.FilterSel[filter]); err != nil {
		return err
	}
	time.Sleep(def.FilterDelay)
	if _, err := rif.WaitCleared(reg.FilterCtrl, 0x0020); err != nil {
		return err
	}

	if err := rif.Set(reg.UartCtrl, b2u8(c.AutoStart)<<1|b2u8(c.UartAuto)); err != nil {
		return err
	}

	// Acceleration channels are always in the burst frame.
	if err := rif.SetHigh(reg.BurstCtrl1,
		b2u8(c.NDFlags)<<7|b2u8(c.TempC)<<6|1<<2|1<<1|1); err != nil {
		return err
	}
	if err := rif.Set(reg.BurstCtrl1, b2u8(c.Counter)<<1|b2u8(c.Chksm)); err != nil {
		return err
	}
	if !c.UartAuto {
		if err := rif.SetHigh(reg.SigCtrl, b2u8(c.TempC)<<7|7<<1); err != nil {
			return err
		}
	}
	return nil
}

// acclSchema builds the burst layout. All accelerometer fields are 32-bit
// with the scale factor applied to the full-width count. Axes with the tilt
// bit set are renamed and carry the tilt scale instead.
func acclSchema(def *model.Definition, c ACCLConfig) Schema {
	sc := def.Scale

	var fields []FieldSpec
	if c.NDFlags {
		fields = append(fields, passthrough("ndflags", 16))
	}
	if c.TempC {
		fields = append(fields, FieldSpec{
			Name: "tempC", Bits: 32, Signed: true,
			Scale: sc.TempC, Bias: 34.987,
		})
	}
	tiltBits := []uint8{0b100, 0b010, 0b001}
	for i, sfx := range xyz {
		f := FieldSpec{Name: "accl" + sfx, Bits: 32, Signed: true, Scale: sc.Accl}
		if c.TiltMask&tiltBits[i] != 0 {
			f.Name = "tilt" + sfx
			f.Scale = sc.Tilt
		}
		fields = append(fields, f)
	}
	if c.Counter {
		fields = append(fields, passthrough("counter", 16))
	}
	if c.Chksm {
		fields = append(fields, passthrough("chksm", 16))
	}
	return Schema{Fields: fields, Chksm: c.Chksm}
}
