// Package regif implements the byte-level register protocol spoken by Epson
// sensing devices over UART: 3-byte read/write commands against a
// window-banked register map, with the pacing delays the devices require
// between consecutive commands.
package regif

import (
	"encoding/binary"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"esensor/internal/model"
	"esensor/internal/transport"
)

// Register reads poll at most this many times while waiting for a busy bit
// to clear. The devices clear their busy bits within the documented settle
// delays, so hitting the bound means the device is wedged.
const maxPoll = 1000

// Interface drives register access for one device. Not safe for concurrent
// use; callers serialize.
type Interface struct {
	port transport.Transport
	def  *model.Definition
}

// New returns an Interface over port. def may be nil before the model is
// known; the core register subset is used until Rebind.
func New(port transport.Transport, def *model.Definition) *Interface {
	if def == nil {
		def = model.Core()
	}
	return &Interface{port: port, def: def}
}

// Rebind swaps the model definition after product detection.
func (r *Interface) Rebind(def *model.Definition) { r.def = def }

// Definition returns the bound model definition.
func (r *Interface) Definition() *model.Definition { return r.def }

// Port exposes the underlying transport for burst reads.
func (r *Interface) Port() transport.Transport { return r.port }

// raw16 sends a 16-bit read command for the even register address and
// returns the data word. The response echoes the address and ends with the
// delimiter; anything else is a ProtocolError.
func (r *Interface) raw16(addr uint8) (uint16, error) {
	addr &= 0xFE
	if err := r.port.Write([]byte{addr, 0x00, model.Delimiter}); err != nil {
		return 0, err
	}
	time.Sleep(model.TStall)
	resp, err := r.port.Read(4)
	if err != nil {
		return 0, err
	}
	time.Sleep(model.TWriteRate - model.TStall)
	if resp[0] != addr || resp[3] != model.Delimiter {
		return 0, &ProtocolError{Addr: addr, Resp: resp}
	}
	return binary.BigEndian.Uint16(resp[1:3]), nil
}

// raw8 writes one byte to the register address (odd or even).
func (r *Interface) raw8(addr, val uint8) error {
	if err := r.port.Write([]byte{addr | 0x80, val, model.Delimiter}); err != nil {
		return err
	}
	time.Sleep(model.TWriteRate)
	return nil
}

// TriggerBurst requests one burst frame when UART auto streaming is off.
func (r *Interface) TriggerBurst() error {
	return r.raw8(model.BurstMarker, 0x00)
}

// GetReg selects the window and reads the 16-bit register.
func (r *Interface) GetReg(win, addr uint8) (uint16, error) {
	if err := r.raw8(model.WinCtrlAddr, win); err != nil {
		return 0, err
	}
	val, err := r.raw16(addr)
	if err != nil {
		return 0, err
	}
	log.Debugf("REG[0x%02X, W(%d)] -> 0x%04X", addr&0xFE, win, val)
	return val, nil
}

// SetReg selects the window and writes one byte to the register.
func (r *Interface) SetReg(win, addr, val uint8) error {
	if err := r.raw8(model.WinCtrlAddr, win); err != nil {
		return err
	}
	if err := r.raw8(addr, val); err != nil {
		return err
	}
	log.Debugf("REG[0x%02X, W(%d)] <- 0x%02X", addr, win, val)
	return nil
}

// Get reads the 16-bit register named in the model definition.
func (r *Interface) Get(reg model.Reg) (uint16, error) {
	return r.GetReg(reg.Window, reg.Addr)
}

// Set writes one byte to the low byte of the named register.
func (r *Interface) Set(reg model.Reg, val uint8) error {
	return r.SetReg(reg.Window, reg.Addr, val)
}

// SetHigh writes one byte to the high byte of the named register.
func (r *Interface) SetHigh(reg model.Reg, val uint8) error {
	return r.SetReg(reg.Window, reg.AddrH, val)
}

// WaitCleared polls reg until the masked bits read back zero, returning the
// final register value.
func (r *Interface) WaitCleared(reg model.Reg, mask uint16) (uint16, error) {
	for i := 0; i < maxPoll; i++ {
		val, err := r.Get(reg)
		if err != nil {
			return 0, err
		}
		if val&mask == 0 {
			return val, nil
		}
	}
	return 0, fmt.Errorf("regif: REG[0x%02X] bits 0x%04X stuck after %d polls",
		reg.Addr, mask, maxPoll)
}

// Exec triggers a device operation: write cmd to the register byte, sleep
// the settle delay, then poll until the busy mask clears.
func (r *Interface) Exec(win, addr uint8, cmd uint8, settle time.Duration, poll model.Reg, busy uint16) error {
	if err := r.SetReg(win, addr, cmd); err != nil {
		return err
	}
	time.Sleep(settle)
	_, err := r.WaitCleared(poll, busy)
	return err
}

// CheckDiag reads DIAG_STAT and reports a DeviceError of the given kind when
// any masked error bit is set.
func (r *Interface) CheckDiag(mask uint16, kind ErrKind) error {
	diag, err := r.Get(r.def.Reg.DiagStat)
	if err != nil {
		return err
	}
	if diag&mask != 0 {
		return &DeviceError{Kind: kind, Diag: diag}
	}
	return nil
}
