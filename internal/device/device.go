// Package device is the high level driver for Epson sensing devices: it owns
// the CONFIG/SAMPLING mode state machine, applies per-class configuration,
// and decodes burst sample frames into scaled physical values.
package device

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"esensor/internal/model"
	"esensor/internal/regif"
	"esensor/internal/transport"
)

// delimiter search gives up after this many stray bytes.
const resyncTries = 512

// modeSettle is the wait after a mode command before the device accepts
// register traffic again.
const modeSettle = 500 * time.Millisecond

// Options controls device bring-up.
type Options struct {
	// Model forces a model definition instead of reading PROD_ID.
	// Empty or "auto" detects from the device.
	Model string
	// SyncRetries bounds the link synchronization handshake.
	SyncRetries int
	// NoInitCheck skips the power-on hardware error check, for bench
	// setups where the device is mid-stream when the port opens.
	NoInitCheck bool
}

// Device drives one sensing device over a transport. Not safe for concurrent
// use.
type Device struct {
	rif  *regif.Interface
	def  *model.Definition
	info regif.Info

	mode   Mode
	cfgOK  bool
	schema Schema
	state  Snapshot
}

// RegValue is one row of a register dump.
type RegValue struct {
	Name  string
	Value uint16
}

// Open synchronizes the link, identifies the device, and leaves it checked
// and in CONFIG mode.
func Open(port transport.Transport, opts Options) (*Device, error) {
	rif := regif.New(port, nil)
	retries := opts.SyncRetries
	if retries <= 0 {
		retries = 5
	}
	if err := rif.Sync(retries); err != nil {
		return nil, err
	}

	info, err := rif.DeviceInfo()
	if err != nil {
		return nil, err
	}
	var def *model.Definition
	if opts.Model == "" || opts.Model == "auto" {
		d, ok := model.Match(info.ProdID)
		if !ok {
			return nil, fmt.Errorf("device: unsupported product %q", info.ProdID)
		}
		def = d
	} else {
		d, err := model.Resolve(opts.Model)
		if err != nil {
			return nil, err
		}
		def = d
	}
	rif.Rebind(def)
	log.Infof("opened %s: %s", def.Name, info)

	dev := &Device{rif: rif, def: def, info: info, mode: Config}
	if opts.NoInitCheck {
		log.Warn("skipping startup hardware check")
		return dev, nil
	}
	if err := dev.initCheck(); err != nil {
		return nil, err
	}
	return dev, nil
}

// initCheck waits out the power-on NOT_READY window and verifies no hardware
// error bit is latched.
func (d *Device) initCheck() error {
	if _, err := d.rif.WaitCleared(d.def.Reg.GlobCmd, 0x0400); err != nil {
		return err
	}
	mask := uint16(0x0060)
	if d.def.Class == model.ClassVIBE {
		mask = 0x00E0
	}
	return d.rif.CheckDiag(mask, regif.HardErr)
}

// Info returns the product identification read at open.
func (d *Device) Info() regif.Info { return d.info }

// Model returns the bound model definition.
func (d *Device) Model() *model.Definition { return d.def }

// Mode returns the driver's view of the device mode. It is updated by Goto
// and GetMode.
func (d *Device) Mode() Mode { return d.mode }

// GetMode reads the mode back from the device, waiting out any pending mode
// transition first.
func (d *Device) GetMode() (Mode, error) {
	reg := d.def.Reg.ModeCtrl
	if _, err := d.rif.WaitCleared(reg, 0x0300); err != nil {
		return d.mode, err
	}
	val, err := d.rif.Get(reg)
	if err != nil {
		return d.mode, err
	}
	mask := uint16(0x0C00)
	if d.def.Class == model.ClassIMU {
		mask = 0x0400
	}
	if val&mask == 0 {
		d.mode = Sampling
	} else {
		d.mode = Config
	}
	return d.mode, nil
}

// Goto commands a mode transition and waits for the device to settle. On
// return to CONFIG mode any streamed burst data still in flight is discarded.
func (d *Device) Goto(mode Mode) error {
	var cmd uint8
	switch mode {
	case Sampling:
		if !d.cfgOK {
			return &ModeError{Op: "goto sampling", Mode: d.mode}
		}
		cmd = model.ModeCmdSampling
	case Config:
		cmd = model.ModeCmdConfig
	default:
		return fmt.Errorf("device: unknown mode %d", mode)
	}
	if err := d.rif.SetHigh(d.def.Reg.ModeCtrl, cmd); err != nil {
		return err
	}
	time.Sleep(modeSettle)
	if mode == Config {
		if err := d.rif.Port().ResetInput(); err != nil {
			return err
		}
	}
	d.mode = mode
	log.Debugf("mode -> %s", mode)
	return nil
}

// configGuard rejects configuration and maintenance commands outside CONFIG
// mode and enforces the model class.
func (d *Device) configGuard(op string, class model.Class) error {
	if d.mode != Config {
		return &ModeError{Op: op, Mode: d.mode}
	}
	if d.def.Class != class {
		return &ConfigError{
			Setting: op,
			Reason:  fmt.Sprintf("%s is a %s device", d.def.Name, d.def.Class),
		}
	}
	return nil
}

func (d *Device) commit(schema Schema, state Snapshot) {
	state.Model = d.def.Name
	state.Class = d.def.Class.String()
	state.Mode = d.mode
	state.Fields = schema.Names()
	d.schema = schema
	d.state = state
	d.cfgOK = true
	log.Infof("configured %s: fields %v", d.def.Name, state.Fields)
}

// SetIMUConfig validates and applies an inertial measurement configuration.
func (d *Device) SetIMUConfig(cfg IMUConfig) error { return d.setIMU(cfg, true) }

func (d *Device) setIMU(cfg IMUConfig, write bool) error {
	if err := d.configGuard("set_config", model.ClassIMU); err != nil {
		return err
	}
	eff, bypassed, err := cfg.validate(d.def)
	if err != nil {
		return err
	}
	filter, filterCode, err := resolveFilter(d.def, eff.DoutRate, eff.Filter)
	if err != nil {
		return err
	}
	if write {
		if err := applyIMU(d.rif, d.def, eff, filterCode); err != nil {
			return err
		}
	} else {
		log.Warnf("no-init: keeping %s register state, configuration writes skipped", d.def.Name)
	}
	d.commit(imuSchema(d.def, eff), Snapshot{
		NDFlags: eff.NDFlags, TempC: eff.TempC, Counter: eff.Counter,
		Chksm: eff.Chksm, AutoStart: eff.AutoStart, UartAuto: eff.UartAuto,
		DoutRate: eff.DoutRate, Filter: filter, Is32Bit: eff.Is32Bit,
		ARange: eff.ARange, ExtTrigger: eff.ExtTrigger,
		DltA: eff.DltA, DltV: eff.DltV,
		DltaSFRange: eff.DltaSFRange, DltvSFRange: eff.DltvSFRange,
		Atti: eff.Atti, Qtn: eff.Qtn,
		AttiMode: eff.AttiMode, AttiConv: eff.AttiConv, AttiProfile: eff.AttiProfile,
		Bypassed: bypassed,
	})
	return nil
}

// SetACCLConfig validates and applies an accelerometer configuration.
func (d *Device) SetACCLConfig(cfg ACCLConfig) error { return d.setACCL(cfg, true) }

func (d *Device) setACCL(cfg ACCLConfig, write bool) error {
	if err := d.configGuard("set_config", model.ClassACCL); err != nil {
		return err
	}
	eff, bypassed, err := cfg.validate(d.def)
	if err != nil {
		return err
	}
	if write {
		if err := applyACCL(d.rif, d.def, eff); err != nil {
			return err
		}
	} else {
		log.Warnf("no-init: keeping %s register state, configuration writes skipped", d.def.Name)
	}
	filter := eff.Filter
	if filter == "" {
		filter = d.def.AutoFilter[eff.DoutRate]
	}
	counter := ""
	if eff.Counter {
		counter = "sample"
	}
	d.commit(acclSchema(d.def, eff), Snapshot{
		NDFlags: eff.NDFlags, TempC: eff.TempC, Counter: counter,
		Chksm: eff.Chksm, AutoStart: eff.AutoStart, UartAuto: eff.UartAuto,
		DoutRate: eff.DoutRate, Filter: filter,
		ExtTrigger: eff.ExtTrigger, TiltMask: eff.TiltMask,
		Bypassed: bypassed,
	})
	return nil
}

// SetVIBEConfig validates and applies a vibration sensor configuration.
func (d *Device) SetVIBEConfig(cfg VIBEConfig) error { return d.setVIBE(cfg, true) }

func (d *Device) setVIBE(cfg VIBEConfig, write bool) error {
	if err := d.configGuard("set_config", model.ClassVIBE); err != nil {
		return err
	}
	eff, bypassed, err := cfg.validate(d.def)
	if err != nil {
		return err
	}
	if write {
		if err := applyVIBE(d.rif, d.def, eff); err != nil {
			return err
		}
	} else {
		log.Warnf("no-init: keeping %s register state, configuration writes skipped", d.def.Name)
	}
	counter := ""
	if eff.Counter {
		counter = "sample"
	}
	d.commit(vibeSchema(d.def, eff), Snapshot{
		NDFlags: eff.NDFlags, TempC: eff.TempC, Counter: counter,
		Chksm: eff.Chksm, AutoStart: eff.AutoStart, UartAuto: eff.UartAuto,
		OutputSel: eff.OutputSel, DoutRateRMSPP: eff.DoutRateRMSPP,
		UpdateRateRMSPP: eff.UpdateRateRMSPP,
		TempC16:         eff.TempC16, ExtPol: eff.ExtPol,
		Bypassed: bypassed,
	})
	return nil
}

// Settings is one class's settings block. SetConfig dispatches on the
// concrete type; passing a block of the wrong class for the open device fails
// with a ConfigError.
type Settings interface {
	applyTo(d *Device, write bool) error
}

func (c IMUConfig) applyTo(d *Device, write bool) error  { return d.setIMU(c, write) }
func (c ACCLConfig) applyTo(d *Device, write bool) error { return d.setACCL(c, write) }
func (c VIBEConfig) applyTo(d *Device, write bool) error { return d.setVIBE(c, write) }

// SetConfig validates and applies a settings block of any class.
func (d *Device) SetConfig(cfg Settings) error { return cfg.applyTo(d, true) }

// AdoptConfig records settings a flash-backed AUTO_START device already
// carries: validation and the burst schema commit run, but no configuration
// register is written. The skipped programming is logged so a mismatch
// between the adopted settings and the device's real state is traceable.
func (d *Device) AdoptConfig(cfg Settings) error { return cfg.applyTo(d, false) }

// Status returns the applied configuration. The snapshot is a value copy;
// mutating it does not touch the device state.
func (d *Device) Status() Snapshot {
	s := d.state.clone()
	s.Mode = d.mode
	return s
}

// BurstFields returns the ordered field names of the configured burst frame.
func (d *Device) BurstFields() []string { return d.schema.Names() }

// ReadSample reads and decodes one burst frame. The device must be
// configured and in SAMPLING mode. On a checksum mismatch the decoded sample
// is returned together with a *ChecksumError; on a framing failure the stream
// is resynchronized to the next delimiter and the error returned.
func (d *Device) ReadSample() (Sample, error) {
	if !d.cfgOK {
		return Sample{}, &ModeError{Op: "read_sample", Mode: d.mode}
	}
	if d.mode != Sampling {
		return Sample{}, &ModeError{Op: "read_sample", Mode: d.mode}
	}
	if !d.state.UartAuto {
		if err := d.rif.TriggerBurst(); err != nil {
			return Sample{}, err
		}
	}
	frame, err := d.rif.Port().Read(d.schema.FrameSize())
	if err != nil {
		return Sample{}, err
	}
	sample, err := decodeFrame(frame, d.schema)
	if _, ok := err.(*ProtocolError); ok {
		if ferr := transport.FindDelimiter(d.rif.Port(), model.Delimiter, resyncTries); ferr != nil {
			log.Warnf("resync failed: %v", ferr)
		}
	}
	return sample, err
}

// ReadSampleUnscaled reads one burst frame and returns the raw counts only.
func (d *Device) ReadSampleUnscaled() (Sample, error) {
	sample, err := d.ReadSample()
	sample.Scaled = nil
	return sample, err
}

// DoSelfTest runs the model's self test sequence. The sequence differs per
// class: inertial models run one combined test, accelerometers add a long
// sensitivity test per axis, vibration sensors add resonance and flash
// phases and report through both diagnostic registers.
func (d *Device) DoSelfTest() error {
	if d.mode != Config {
		return &ModeError{Op: "selftest", Mode: d.mode}
	}
	reg := &d.def.Reg
	switch d.def.Class {
	case model.ClassIMU:
		if err := d.rif.Exec(reg.MscCtrl.Window, reg.MscCtrl.AddrH, 0x04,
			d.def.SelfTestDelay, reg.MscCtrl, 0x0400); err != nil {
			return err
		}
		return d.rif.CheckDiag(0x7800, regif.SelfTestErr)

	case model.ClassACCL:
		phases := []struct {
			cmd    uint8
			settle time.Duration
			busy   uint16
		}{
			{0x07, d.def.SelfTestDelay, 0x0700},
			{0x10, d.def.SelfTestAxisDelay, 0x0100},
			{0x20, d.def.SelfTestAxisDelay, 0x0200},
			{0x40, d.def.SelfTestAxisDelay, 0x0400},
		}
		for _, p := range phases {
			if err := d.rif.Exec(reg.MscCtrl.Window, reg.MscCtrl.AddrH, p.cmd,
				p.settle, reg.MscCtrl, p.busy); err != nil {
				return err
			}
		}
		return d.rif.CheckDiag(0xFFFF, regif.SelfTestErr)

	case model.ClassVIBE:
		phases := []struct {
			cmd    uint8
			settle time.Duration
			busy   uint16
		}{
			{0x80, d.def.SelfTestExiDelay, 0x8000},
			{0x08, d.def.FlashTestDelay, 0x0800},
			{0x07, d.def.SelfTestDelay, 0x0700},
		}
		for _, p := range phases {
			if err := d.rif.Exec(reg.MscCtrl.Window, reg.MscCtrl.AddrH, p.cmd,
				p.settle, reg.MscCtrl, p.busy); err != nil {
				return err
			}
		}
		if err := d.rif.CheckDiag(0xFFFF, regif.SelfTestErr); err != nil {
			return err
		}
		diag2, err := d.rif.Get(reg.DiagStat2)
		if err != nil {
			return err
		}
		if diag2 != 0 {
			return &regif.DeviceError{Kind: regif.SelfTestErr, Diag: diag2}
		}
		return nil
	}
	return fmt.Errorf("device: unknown class %v", d.def.Class)
}

// DoFlashTest verifies the flash checksum.
func (d *Device) DoFlashTest() error {
	if d.mode != Config {
		return &ModeError{Op: "flashtest", Mode: d.mode}
	}
	reg := &d.def.Reg
	if err := d.rif.Exec(reg.MscCtrl.Window, reg.MscCtrl.AddrH, 0x08,
		d.def.FlashTestDelay, reg.MscCtrl, 0x0800); err != nil {
		return err
	}
	return d.rif.CheckDiag(0x0004, regif.FlashErr)
}

// BackupFlash saves the volatile configuration registers to flash.
func (d *Device) BackupFlash() error {
	if d.mode != Config {
		return &ModeError{Op: "flash backup", Mode: d.mode}
	}
	reg := &d.def.Reg
	if err := d.rif.Exec(reg.GlobCmd.Window, reg.GlobCmd.Addr, 0x08,
		d.def.FlashBackupDelay, reg.GlobCmd, 0x0008); err != nil {
		return err
	}
	return d.rif.CheckDiag(0x0001, regif.FlashBackupErr)
}

// InitBackup restores the flash backup registers to factory defaults.
func (d *Device) InitBackup() error {
	if d.mode != Config {
		return &ModeError{Op: "initial backup", Mode: d.mode}
	}
	if !d.def.Flags.HasInitBackup {
		return &ConfigError{Setting: "initial backup", Reason: fmt.Sprintf("not supported by %s", d.def.Name)}
	}
	reg := &d.def.Reg
	return d.rif.Exec(reg.GlobCmd.Window, reg.GlobCmd.Addr, 0x10,
		d.def.FlashBackupDelay, reg.GlobCmd, 0x0010)
}

// DoSoftReset restarts the device. All volatile configuration is lost; the
// driver returns to the unconfigured CONFIG state.
func (d *Device) DoSoftReset() error {
	if d.mode != Config {
		return &ModeError{Op: "softreset", Mode: d.mode}
	}
	reg := &d.def.Reg
	if err := d.rif.SetReg(reg.GlobCmd.Window, reg.GlobCmd.Addr, 0x80); err != nil {
		return err
	}
	time.Sleep(d.def.ResetDelay)
	d.cfgOK = false
	d.schema = Schema{}
	d.state = Snapshot{}
	return nil
}

// SetBaudRate reprograms the device UART speed. The change takes effect
// immediately; the caller must reopen the port at the new rate.
func (d *Device) SetBaudRate(baud int) error {
	if d.mode != Config {
		return &ModeError{Op: "set baudrate", Mode: d.mode}
	}
	code, ok := d.def.BaudRate[baud]
	if !ok {
		return &ConfigError{Setting: "baudrate", Reason: fmt.Sprintf("%d not supported by %s", baud, d.def.Name)}
	}
	return d.rif.SetHigh(d.def.Reg.UartCtrl, code)
}

// RegDump reads every register in the model's dump list.
func (d *Device) RegDump() ([]RegValue, error) {
	if d.mode != Config {
		return nil, &ModeError{Op: "register dump", Mode: d.mode}
	}
	out := make([]RegValue, 0, len(d.def.Registers))
	for _, nr := range d.def.Registers {
		val, err := d.rif.Get(nr.Reg)
		if err != nil {
			return out, err
		}
		out = append(out, RegValue{Name: nr.Name, Value: val})
	}
	return out, nil
}

// GetReg reads a raw register for diagnostics.
func (d *Device) GetReg(win, addr uint8) (uint16, error) { return d.rif.GetReg(win, addr) }

// SetReg writes a raw register byte for diagnostics.
func (d *Device) SetReg(win, addr, val uint8) error { return d.rif.SetReg(win, addr, val) }

// Close releases the underlying port.
func (d *Device) Close() error { return d.rif.Port().Close() }
