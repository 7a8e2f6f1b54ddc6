package device

// Mode is the device's command state. Register configuration is only legal
// in Config; burst reads are only legal in Sampling.
type Mode int

const (
	Config Mode = iota
	Sampling
)

func (m Mode) String() string {
	switch m {
	case Config:
		return "CONFIG"
	case Sampling:
		return "SAMPLING"
	}
	return "UNKNOWN"
}
