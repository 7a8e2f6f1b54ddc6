package device

// Snapshot is the applied configuration as of the last successful SetConfig,
// returned by value so callers cannot alias internal state. Class-specific
// fields are zero for the other classes.
type Snapshot struct {
	Model string
	Class string
	Mode  Mode

	NDFlags   bool
	TempC     bool
	Counter   string
	Chksm     bool
	AutoStart bool
	UartAuto  bool

	// IMU
	DoutRate    float64
	Filter      string
	Is32Bit     bool
	ARange      bool
	ExtTrigger  bool
	DltA        bool
	DltV        bool
	DltaSFRange int
	DltvSFRange int
	Atti        bool
	Qtn         bool
	AttiMode    string
	AttiConv    int
	AttiProfile string

	// ACCL
	TiltMask uint8

	// VIBE
	OutputSel       string
	DoutRateRMSPP   int
	UpdateRateRMSPP int
	TempC16         bool
	ExtPol          bool

	// Bypassed lists option names that were requested but not supported by
	// the model, accepted with a warning instead of an error.
	Bypassed []string
	// Fields is the ordered burst field layout in effect.
	Fields []string
}

// clone deep-copies the slices so the returned value shares nothing.
func (s Snapshot) clone() Snapshot {
	out := s
	out.Bypassed = append([]string(nil), s.Bypassed...)
	out.Fields = append([]string(nil), s.Fields...)
	return out
}
