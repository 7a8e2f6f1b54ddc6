package device

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"esensor/internal/model"
	"esensor/internal/regif"
)

// VIBEConfig holds the tunables of the vibration sensing models. The output
// function selects what the sens channels carry: instantaneous (RAW), RMS, or
// peak-to-peak velocity or displacement.
type VIBEConfig struct {
	OutputSel string `yaml:"output_sel" mapstructure:"output_sel"`
	// DoutRateRMSPP and UpdateRateRMSPP apply to RMS and peak-to-peak
	// output only; RAW output streams at the fixed internal rate.
	DoutRateRMSPP   int `yaml:"dout_rate_rmspp" mapstructure:"dout_rate_rmspp"`
	UpdateRateRMSPP int `yaml:"update_rate_rmspp" mapstructure:"update_rate_rmspp"`

	NDFlags   bool `yaml:"ndflags" mapstructure:"ndflags"`
	TempC     bool `yaml:"tempc" mapstructure:"tempc"`
	TempC16   bool `yaml:"tempc16" mapstructure:"tempc16"`
	SensX     bool `yaml:"sensx" mapstructure:"sensx"`
	SensY     bool `yaml:"sensy" mapstructure:"sensy"`
	SensZ     bool `yaml:"sensz" mapstructure:"sensz"`
	Counter   bool `yaml:"counter" mapstructure:"counter"`
	Chksm     bool `yaml:"chksm" mapstructure:"chksm"`
	AutoStart bool `yaml:"auto_start" mapstructure:"auto_start"`
	UartAuto  bool `yaml:"uart_auto" mapstructure:"uart_auto"`
	// ExtPol true makes the EXT input active low.
	ExtPol bool `yaml:"ext_pol" mapstructure:"ext_pol"`
}

// DefaultVIBEConfig streams RMS velocity on all three axes.
func DefaultVIBEConfig() VIBEConfig {
	return VIBEConfig{
		OutputSel:       "VELOCITY_RMS",
		DoutRateRMSPP:   1,
		UpdateRateRMSPP: 4,
		NDFlags:         true,
		TempC:           true,
		TempC16:         true,
		SensX:           true,
		SensY:           true,
		SensZ:           true,
		UartAuto:        true,
	}
}

func (c VIBEConfig) rawOutput() bool {
	return strings.HasSuffix(c.OutputSel, "_RAW")
}

func (c VIBEConfig) validate(def *model.Definition) (VIBEConfig, []string, error) {
	c.OutputSel = strings.ToUpper(c.OutputSel)
	if _, ok := def.OutputSel[c.OutputSel]; !ok {
		return c, nil, &ConfigError{Setting: "output_sel", Reason: fmt.Sprintf("%q not supported by %s", c.OutputSel, def.Name)}
	}
	if !c.SensX && !c.SensY && !c.SensZ {
		return c, nil, &ConfigError{Setting: "sensx/sensy/sensz", Reason: "at least one axis must be enabled"}
	}

	var bypassed []string
	if c.rawOutput() {
		if c.DoutRateRMSPP != 0 {
			log.Warnf("RAW output selected, ignoring dout_rate_rmspp")
			bypassed = append(bypassed, "dout_rate_rmspp")
		}
		if c.UpdateRateRMSPP != 0 {
			log.Warnf("RAW output selected, ignoring update_rate_rmspp")
			bypassed = append(bypassed, "update_rate_rmspp")
		}
		return c, bypassed, nil
	}
	if c.DoutRateRMSPP < 1 || c.DoutRateRMSPP > 255 {
		return c, nil, &ConfigError{Setting: "dout_rate_rmspp", Reason: "must be 1..255"}
	}
	if c.UpdateRateRMSPP < 0 || c.UpdateRateRMSPP > 15 {
		return c, nil, &ConfigError{Setting: "update_rate_rmspp", Reason: "must be 0..15"}
	}
	return c, bypassed, nil
}

func applyVIBE(rif *regif.Interface, def *model.Definition, c VIBEConfig) error {
	reg := &def.Reg

	tmp, err := rif.Get(reg.MscCtrl)
	if err != nil {
		return err
	}
	if err := rif.Set(reg.MscCtrl, uint8(tmp)&0xDF|b2u8(c.ExtPol)<<5); err != nil {
		return err
	}
	tmp, err = rif.Get(reg.MscCtrl)
	if err != nil {
		return err
	}
	if err := rif.Set(reg.MscCtrl, uint8(tmp)&0xFD|1<<1); err != nil {
		return err
	}

	if c.TempC {
		tmp, err = rif.Get(reg.SigCtrl)
		if err != nil {
			return err
		}
		if err := rif.Set(reg.SigCtrl, uint8(tmp)&0xFD|b2u8(c.TempC16)<<1); err != nil {
			return err
		}
	}

	// The output function switch restarts the signal chain; the device
	// reports readiness in SIG_CTRL bit 0 and flags failure in DIAG_STAT1.
	tmp, err = rif.Get(reg.SigCtrl)
	if err != nil {
		return err
	}
	if err := rif.Set(reg.SigCtrl, uint8(tmp)&0x0F|def.OutputSel[c.OutputSel]<<4); err != nil {
		return err
	}
	time.Sleep(def.FilterDelay)
	if _, err := rif.WaitCleared(reg.SigCtrl, 0x0001); err != nil {
		return err
	}
	if err := rif.CheckDiag(0x00E0, regif.HardErr); err != nil {
		return err
	}

	if !c.rawOutput() {
		if err := rif.SetHigh(reg.SmplCtrl, uint8(c.DoutRateRMSPP)); err != nil {
			return err
		}
		if err := rif.Set(reg.SmplCtrl, uint8(c.UpdateRateRMSPP)); err != nil {
			return err
		}
	}

	if err := rif.Set(reg.UartCtrl, b2u8(c.AutoStart)<<1|b2u8(c.UartAuto)); err != nil {
		return err
	}

	if err := rif.SetHigh(reg.BurstCtrl1,
		b2u8(c.NDFlags)<<7|b2u8(c.TempC)<<6|b2u8(c.SensX)<<2|b2u8(c.SensY)<<1|b2u8(c.SensZ)); err != nil {
		return err
	}
	if err := rif.Set(reg.BurstCtrl1, b2u8(c.Counter)<<1|b2u8(c.Chksm)); err != nil {
		return err
	}
	if !c.UartAuto {
		if err := rif.SetHigh(reg.SigCtrl,
			b2u8(c.TempC)<<7|b2u8(c.SensX)<<3|b2u8(c.SensY)<<2|b2u8(c.SensZ)<<1); err != nil {
			return err
		}
	}
	return nil
}

// vibeSchema builds the burst layout. Sens channels are 24-bit signed; their
// names carry the vel or disp prefix per the output function. With 8-bit
// temperature format the tempc word splits into a signed temperature byte and
// the EXI/alarm counter byte.
func vibeSchema(def *model.Definition, c VIBEConfig) Schema {
	sc := def.Scale
	prefix, sensSF := "disp", sc.Disp
	if strings.HasPrefix(c.OutputSel, "VELOCITY") {
		prefix, sensSF = "vel", sc.Vel
	}

	var fields []FieldSpec
	if c.NDFlags {
		fields = append(fields, passthrough("ndflags", 16))
	}
	if c.TempC {
		if c.TempC16 {
			fields = append(fields, FieldSpec{
				Name: "tempC", Bits: 16,
				Scale: sc.TempC, Bias: 34.987,
			})
		} else {
			fields = append(fields,
				FieldSpec{
					Name: "tempC8", Bits: 8, Signed: true,
					Scale: sc.TempC * 256, Bias: 34.987,
				},
				passthrough("exi-alrm-cnt", 8))
		}
	}
	sens := []struct {
		on  bool
		sfx string
	}{{c.SensX, "_X"}, {c.SensY, "_Y"}, {c.SensZ, "_Z"}}
	for _, s := range sens {
		if s.on {
			fields = append(fields, FieldSpec{
				Name: prefix + s.sfx, Bits: 24, Signed: true, Scale: sensSF,
			})
		}
	}
	if c.Counter {
		fields = append(fields, passthrough("counter", 16))
	}
	if c.Chksm {
		fields = append(fields, passthrough("chksm", 16))
	}
	return Schema{Fields: fields, Chksm: c.Chksm}
}
