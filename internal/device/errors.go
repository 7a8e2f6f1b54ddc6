package device

import "fmt"

// ConfigError rejects a settings value or combination before any register
// write happens.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("device: invalid config %q: %s", e.Setting, e.Reason)
}

// ModeError reports an operation called in the wrong device mode.
type ModeError struct {
	Op   string
	Mode Mode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("device: %s not allowed in %s mode", e.Op, e.Mode)
}

// ProtocolError reports a malformed burst frame: wrong header, wrong
// delimiter, or a length the current schema cannot explain.
type ProtocolError struct {
	Reason string
	Frame  []byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("device: bad burst frame: %s", e.Reason)
}

// ChecksumError accompanies a decoded sample whose transmitted checksum does
// not match the sum of the preceding frame words. The sample is still
// returned so callers can log or discard it.
type ChecksumError struct {
	Want uint16
	Got  uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("device: burst checksum mismatch: computed 0x%04X, frame carries 0x%04X",
		e.Want, e.Got)
}
