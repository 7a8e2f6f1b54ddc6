package regif

import "fmt"

// ErrKind classifies a failure reported by the device itself through
// DIAG_STAT after a triggered operation.
type ErrKind int

const (
	HardErr ErrKind = iota
	SelfTestErr
	FlashErr
	FlashBackupErr
)

func (k ErrKind) String() string {
	switch k {
	case HardErr:
		return "HARD_ERR"
	case SelfTestErr:
		return "ST_ERR"
	case FlashErr:
		return "FLASH_ERR"
	case FlashBackupErr:
		return "FLASH_BU_ERR"
	}
	return "UNKNOWN_ERR"
}

// DeviceError reports nonzero error bits in DIAG_STAT.
type DeviceError struct {
	Kind ErrKind
	Diag uint16
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("regif: device reported %s (DIAG_STAT=0x%04X)", e.Kind, e.Diag)
}

// ProtocolError reports a malformed register read response: the address echo
// or the trailing delimiter did not match the command sent.
type ProtocolError struct {
	Addr uint8
	Resp []byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("regif: unexpected response to REG[0x%02X] read: % X", e.Addr, e.Resp)
}
