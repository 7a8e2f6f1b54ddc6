package device

import (
	"encoding/binary"
	"fmt"

	"esensor/internal/model"
	"esensor/internal/transport"
)

// simPort emulates the device side of the register protocol over an
// in-memory register file: window-banked byte writes, 16-bit reads with
// address echo, and queued burst frames released by the BURST command.
type simPort struct {
	regs   map[uint16]uint16
	win    uint8
	out    []byte
	bursts [][]byte
	closed bool
}

func newSimPort() *simPort {
	return &simPort{regs: map[uint16]uint16{}}
}

func regKey(win, addr uint8) uint16 { return uint16(win)<<8 | uint16(addr&0xFE) }

func (s *simPort) setReg(win, addr uint8, val uint16) {
	s.regs[regKey(win, addr)] = val
}

func (s *simPort) getReg(win, addr uint8) uint16 {
	return s.regs[regKey(win, addr)]
}

// setASCII stores a string across consecutive 16-bit registers, low byte
// first, the way the identity registers hold it.
func (s *simPort) setASCII(win, addr uint8, text string) {
	for i := 0; i+1 < len(text); i += 2 {
		s.setReg(win, addr+uint8(i), uint16(text[i+1])<<8|uint16(text[i]))
	}
}

func (s *simPort) queueBurst(frame []byte) { s.bursts = append(s.bursts, frame) }

// pushBurst releases the next queued frame into the read buffer, standing in
// for UART auto streaming.
func (s *simPort) pushBurst() {
	if len(s.bursts) == 0 {
		return
	}
	s.out = append(s.out, s.bursts[0]...)
	s.bursts = s.bursts[1:]
}

func (s *simPort) Write(p []byte) error {
	if len(p) == 1 && p[0] == model.Delimiter {
		return nil
	}
	if len(p) != 3 || p[2] != model.Delimiter {
		return fmt.Errorf("sim: malformed command % X", p)
	}
	b0, val := p[0], p[1]
	if b0&0x80 == 0 {
		// 16-bit read
		addr := b0 & 0xFE
		word := s.getReg(s.win, addr)
		s.out = append(s.out, addr, byte(word>>8), byte(word&0xFF), model.Delimiter)
		return nil
	}
	addr := b0 & 0x7F
	switch {
	case b0 == model.BurstMarker:
		s.pushBurst()
	case addr == model.WinCtrlAddr:
		s.win = val
	default:
		// MSC_CTRL test bits and GLOB_CMD command bits self-clear on the
		// real device; complete them instantly.
		if s.win == 1 && (addr == 0x03 || addr == 0x0A) {
			return nil
		}
		word := s.getReg(s.win, addr)
		if addr&0x01 == 0 {
			word = word&0xFF00 | uint16(val)
		} else {
			word = word&0x00FF | uint16(val)<<8
		}
		s.setReg(s.win, addr, word)
		// mode commands flip the MODE_STAT bit
		if s.win == 0 && addr == 0x03 {
			if val == model.ModeCmdSampling {
				s.setReg(0, 0x02, 0x0000)
			} else {
				s.setReg(0, 0x02, 0x0400)
			}
		}
	}
	return nil
}

func (s *simPort) Read(n int) ([]byte, error) {
	if len(s.out) < n {
		return nil, &transport.Error{Op: "read", Timeout: true,
			Err: fmt.Errorf("sim delivered %d of %d bytes", len(s.out), n)}
	}
	p := s.out[:n]
	s.out = append([]byte(nil), s.out[n:]...)
	return p, nil
}

func (s *simPort) InWaiting() (int, error) { return len(s.out), nil }

func (s *simPort) ResetInput() error {
	s.out = nil
	return nil
}

func (s *simPort) Close() error {
	s.closed = true
	return nil
}

// seedIdentity programs the registers Open touches during bring-up.
func (s *simPort) seedIdentity(prodID string) {
	s.setReg(0, 0x4C, model.IDRetVal)
	s.setASCII(1, 0x6A, prodID)
	s.setReg(1, 0x72, 0x0205)
	s.setASCII(1, 0x74, "T1000012")
	s.setReg(0, 0x02, 0x0400) // CONFIG
}

// buildFrame assembles an on-wire burst frame from raw field values,
// computing the trailing checksum when the schema carries one.
func buildFrame(sc Schema, raw []int64) []byte {
	frame := []byte{model.BurstMarker}
	for i, f := range sc.Fields {
		if sc.Chksm && i == len(sc.Fields)-1 {
			break
		}
		frame = appendField(frame, f.Bits, raw[i])
	}
	if sc.Chksm {
		sum := frameChecksum(frame[1:])
		frame = binary.BigEndian.AppendUint16(frame, sum)
	}
	return append(frame, model.Delimiter)
}

func appendField(dst []byte, bits int, v int64) []byte {
	switch bits {
	case 8:
		return append(dst, byte(v))
	case 16:
		return binary.BigEndian.AppendUint16(dst, uint16(v))
	case 24:
		return append(dst, byte(v>>16), byte(v>>8), byte(v))
	default:
		return binary.BigEndian.AppendUint32(dst, uint32(v))
	}
}

// openSim brings up a Device against a simulated G366PDG0 unless another
// product is given.
func openSim(prodID string) (*Device, *simPort, error) {
	sim := newSimPort()
	sim.seedIdentity(prodID)
	dev, err := Open(sim, Options{SyncRetries: 1})
	return dev, sim, err
}
