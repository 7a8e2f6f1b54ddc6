// Package model holds the per-model definition tables for Epson sensing
// devices: register maps, scale constants, capability flags, and timing.
// Definitions are built once at package init and never mutated afterwards;
// the device engine treats them as read-only data.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Class selects which configuration engine drives the device.
type Class int

const (
	ClassIMU Class = iota
	ClassACCL
	ClassVIBE
)

func (c Class) String() string {
	switch c {
	case ClassIMU:
		return "imu"
	case ClassACCL:
		return "accl"
	case ClassVIBE:
		return "vibe"
	}
	return "unknown"
}

// Low-level UART framing bytes, shared by every known model.
const (
	BurstMarker = 0x80
	Delimiter   = 0x0D
)

// Window select register, present at the same address on all models.
const WinCtrlAddr = 0x7E

// Mode commands written to MODE_CTRL high byte.
const (
	ModeCmdSampling = 0x01
	ModeCmdConfig   = 0x02
)

// Command pacing on the UART link. A register access must not follow the
// previous one sooner than TWriteRate; a read response begins after TStall.
const (
	TStall     = 70 * time.Microsecond
	TWriteRate = 350 * time.Microsecond
)

// Reg is a register location: addressing window, even 16-bit read address,
// and the odd high-byte write address.
type Reg struct {
	Window uint8
	Addr   uint8
	AddrH  uint8
}

// Zero reports whether the register is absent from the model's map.
func (r Reg) Zero() bool { return r.Addr == 0 && r.AddrH == 0 && r.Window == 0 }

// NamedReg pairs a register with its datasheet name for register dumps.
type NamedReg struct {
	Name string
	Reg  Reg
}

// RegisterMap names every register the engine touches. Models leave entries
// zero when the hardware does not implement them.
type RegisterMap struct {
	Burst      Reg
	ModeCtrl   Reg
	DiagStat   Reg
	DiagStat2  Reg
	Flag       Reg
	Gpio       Reg
	Count      Reg
	ID         Reg
	SigCtrl    Reg
	MscCtrl    Reg
	SmplCtrl   Reg
	FilterCtrl Reg
	UartCtrl   Reg
	GlobCmd    Reg
	BurstCtrl1 Reg
	BurstCtrl2 Reg
	DltCtrl    Reg
	AttiCtrl   Reg
	GlobCmd2   Reg
	ProdID1    Reg
	ProdID2    Reg
	ProdID3    Reg
	ProdID4    Reg
	Version    Reg
	SerialNum1 Reg
	SerialNum2 Reg
	SerialNum3 Reg
	SerialNum4 Reg
	WinCtrl    Reg
}

// Scale holds the model's physical conversion constants. Each constant is
// the 16-bit scale factor; 32-bit burst fields divide by 2^16 at decode.
type Scale struct {
	Gyro     float64 // (deg/s)/bit
	Accl     float64 // mg/bit
	TempC    float64 // degC/bit
	TempC25C float64 // raw offset at 25 degC
	Dlta     float64 // deg/bit before 2^sf_range exponent
	Dltv     float64 // (m/s)/bit before 2^sf_range exponent
	Atti     float64 // deg/bit
	Qtn      float64 // 1/bit
	Vel      float64 // (mm/s)/bit, vibration models
	Disp     float64 // mm/bit, vibration models
	Tilt     float64 // rad/bit, accelerometer models
}

// Flags is the capability table consulted by the configuration engines.
// Options a model does not support are bypassed with a warning, never
// written to the device.
type Flags struct {
	HasDltOutput  bool
	HasAttiOutput bool
	HasAttiCtrl   bool
	HasARange     bool
	HasExtSel     bool
	HasGpio       bool
	HasRangeOver  bool
	HasInitBackup bool
}

// Definition is one model's complete constant table.
type Definition struct {
	Name  string
	Class Class
	Reg   RegisterMap
	Scale Scale
	Flags Flags

	// DoutRate maps output rate in Hz to the SMPL_CTRL code.
	DoutRate map[float64]uint8
	// FilterSel maps filter names to FILTER_CTRL codes.
	FilterSel map[string]uint8
	// FilterSelAlt replaces FilterSel at the rates in FilterAltRates
	// (G370 family quirk at 2000/400/80 sps).
	FilterSelAlt   map[string]uint8
	FilterAltRates []float64
	// AutoFilter is the documented recommended filter per output rate,
	// used when the caller does not specify one.
	AutoFilter map[float64]string
	// BaudRate maps supported UART speeds to UART_CTRL codes.
	BaudRate map[int]uint8
	// ExtSel maps EXT pin function names to MSC_CTRL codes.
	ExtSel map[string]uint8
	// OutputSel maps vibration output function names to SIG_CTRL codes.
	OutputSel map[string]uint8

	// Delays the device needs after the corresponding operation.
	PowerOnDelay      time.Duration
	ResetDelay        time.Duration
	SelfTestDelay     time.Duration
	SelfTestAxisDelay time.Duration // accelerometer per-axis sensitivity test
	SelfTestExiDelay  time.Duration // vibration sensor resonance test
	FlashTestDelay    time.Duration
	FlashBackupDelay  time.Duration
	FilterDelay       time.Duration
	AttiMotionDelay   time.Duration

	// Registers in dump order.
	Registers []NamedReg
}

// registry of canonical model names. Populated by the per-model files.
var registry = map[string]*Definition{}

func register(d *Definition) *Definition {
	registry[d.Name] = d
	return d
}

// canonical collapses product-ID variants onto the definition that covers
// them: G330/G366 variants share G366PDG0, G370PDS0 shares G370PDF1, and
// G354 variants match on the 4-letter prefix.
func canonical(prodID string) string {
	id := strings.ToUpper(strings.TrimSpace(prodID))
	switch {
	case strings.HasPrefix(id, "G330"), strings.HasPrefix(id, "G366"):
		return "G366PDG0"
	case strings.HasPrefix(id, "G370PDS0"), strings.HasPrefix(id, "G370PDF1"):
		return "G370PDF1"
	case strings.HasPrefix(id, "G354"):
		return "G354"
	case strings.HasPrefix(id, "G570"):
		return "G570PR20"
	case strings.HasPrefix(id, "A352"):
		return "A352AD10"
	case strings.HasPrefix(id, "A342"):
		return "A342VD10"
	}
	return id
}

// Match returns the definition covering the given product ID string, as read
// from the device's PROD_ID registers. It is a pure lookup so auto-detection
// can be tested without I/O.
func Match(prodID string) (*Definition, bool) {
	d, ok := registry[canonical(prodID)]
	return d, ok
}

// Resolve returns the definition for an explicitly named model.
func Resolve(name string) (*Definition, error) {
	if d, ok := Match(name); ok {
		return d, nil
	}
	return nil, fmt.Errorf("model: unknown device model %q", name)
}

// Known lists the canonical model names in the registry.
func Known() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
