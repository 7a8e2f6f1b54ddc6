package regif

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esensor/internal/model"
	"esensor/internal/transport"
)

// mockPort is a register-file transport: write commands update a register
// map, read commands queue the 4-byte response. failProbes corrupts the echo
// byte of that many upcoming read responses.
type mockPort struct {
	regs       map[uint16]uint16
	win        uint8
	out        []byte
	writes     [][]byte
	resets     int
	failProbes int
	shortResp  bool

	busyKey   uint16
	busyVal   uint16
	busyReads int
	transient map[uint16]bool
}

func newMockPort() *mockPort {
	return &mockPort{
		regs:      map[uint16]uint16{},
		transient: map[uint16]bool{},
	}
}

func key(win, addr uint8) uint16 { return uint16(win)<<8 | uint16(addr&0xFE) }

func (m *mockPort) get(k uint16) uint16 {
	if k == m.busyKey && m.busyReads > 0 {
		m.busyReads--
		return m.busyVal
	}
	return m.regs[k]
}

func (m *mockPort) Write(p []byte) error {
	cp := append([]byte(nil), p...)
	m.writes = append(m.writes, cp)
	if len(p) == 1 && p[0] == model.Delimiter {
		return nil
	}
	if p[0]&0x80 == 0 {
		// read command
		addr := p[0] & 0xFE
		val := m.get(key(m.win, addr))
		echo := addr
		if m.failProbes > 0 {
			m.failProbes--
			echo ^= 0xFF
		}
		m.out = append(m.out, echo, byte(val>>8), byte(val), model.Delimiter)
		if m.shortResp {
			m.out = m.out[:len(m.out)-2]
		}
		return nil
	}
	addr := p[0] & 0x7F
	if addr == model.WinCtrlAddr {
		m.win = p[1]
		return nil
	}
	k := key(m.win, addr)
	if m.transient[k] {
		return nil
	}
	old := m.regs[k]
	if addr&1 == 0 {
		m.regs[k] = old&0xFF00 | uint16(p[1])
	} else {
		m.regs[k] = old&0x00FF | uint16(p[1])<<8
	}
	return nil
}

func (m *mockPort) Read(n int) ([]byte, error) {
	if len(m.out) < n {
		return nil, &transport.Error{Op: "read", Timeout: true, Err: errors.New("short")}
	}
	p := m.out[:n]
	m.out = m.out[n:]
	return append([]byte(nil), p...), nil
}

func (m *mockPort) InWaiting() (int, error) { return len(m.out), nil }

func (m *mockPort) ResetInput() error {
	m.out = nil
	m.resets++
	return nil
}

func (m *mockPort) Close() error { return nil }

// setWord stores a 16-bit value directly, bypassing the command path.
func (m *mockPort) setWord(win, addr uint8, val uint16) {
	m.regs[key(win, addr)] = val
}

func (m *mockPort) setASCII(win, addr uint8, s string) {
	for i := 0; i+1 < len(s); i += 2 {
		m.setWord(win, addr+uint8(i), uint16(s[i])|uint16(s[i+1])<<8)
	}
}

func g366Interface(m *mockPort) *Interface {
	def, err := model.Resolve("G366PDG0")
	if err != nil {
		panic(err)
	}
	return New(m, def)
}

func TestGetRegRoundTrip(t *testing.T) {
	m := newMockPort()
	m.setWord(1, 0x0C, 0xF003)
	rif := g366Interface(m)

	val, err := rif.GetReg(1, 0x0C)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xF003), val)

	// odd address reads the same word
	val, err = rif.GetReg(1, 0x0D)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xF003), val)
}

func TestSetRegLowAndHighBytes(t *testing.T) {
	m := newMockPort()
	rif := g366Interface(m)

	require.NoError(t, rif.SetReg(1, 0x0C, 0x03))
	require.NoError(t, rif.SetReg(1, 0x0D, 0xF0))
	assert.Equal(t, uint16(0xF003), m.regs[key(1, 0x0C)])

	// write commands carry the address marker bit
	var last [][]byte
	for _, w := range m.writes {
		if len(w) == 3 && w[0]&0x80 != 0 {
			last = append(last, w)
		}
	}
	require.NotEmpty(t, last)
	assert.Equal(t, byte(model.Delimiter), last[len(last)-1][2])
}

func TestGetRegBadEcho(t *testing.T) {
	m := newMockPort()
	m.failProbes = 1
	rif := g366Interface(m)

	_, err := rif.GetReg(0, 0x4C)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, uint8(0x4C), perr.Addr)
}

func TestGetRegTimeout(t *testing.T) {
	m := newMockPort()
	m.shortResp = true
	rif := g366Interface(m)

	_, err := rif.GetReg(0, 0x4C)
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.Timeout)
}

func TestWaitClearedPollsUntilClear(t *testing.T) {
	m := newMockPort()
	rif := g366Interface(m)
	def := rif.Definition()

	m.busyKey = key(def.Reg.GlobCmd.Window, def.Reg.GlobCmd.Addr)
	m.busyVal = 0x0008
	m.busyReads = 3
	m.setWord(def.Reg.GlobCmd.Window, def.Reg.GlobCmd.Addr, 0x0000)

	val, err := rif.WaitCleared(def.Reg.GlobCmd, 0x0008)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), val)
	assert.Equal(t, 0, m.busyReads)
}

func TestWaitClearedGivesUp(t *testing.T) {
	m := newMockPort()
	rif := g366Interface(m)
	def := rif.Definition()

	m.setWord(def.Reg.DiagStat.Window, def.Reg.DiagStat.Addr, 0x0400)
	_, err := rif.WaitCleared(def.Reg.DiagStat, 0x0400)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stuck")
}

func TestExecRunsCommandAndPolls(t *testing.T) {
	m := newMockPort()
	rif := g366Interface(m)
	def := rif.Definition()

	mc := def.Reg.MscCtrl
	m.transient[key(mc.Window, mc.AddrH)] = true
	m.busyKey = key(mc.Window, mc.Addr)
	m.busyVal = 0x0800
	m.busyReads = 2

	err := rif.Exec(mc.Window, mc.AddrH, 0x08, 0, mc, 0x0800)
	require.NoError(t, err)
	assert.Equal(t, 0, m.busyReads)
}

func TestCheckDiag(t *testing.T) {
	m := newMockPort()
	rif := g366Interface(m)
	def := rif.Definition()

	m.setWord(def.Reg.DiagStat.Window, def.Reg.DiagStat.Addr, 0x0040)
	err := rif.CheckDiag(0x0060, HardErr)
	var derr *DeviceError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, HardErr, derr.Kind)
	assert.Equal(t, uint16(0x0040), derr.Diag)
	assert.Contains(t, derr.Error(), "HARD_ERR")

	require.NoError(t, rif.CheckDiag(0x0F00, HardErr))
}

func TestDeviceInfoAssemblesASCII(t *testing.T) {
	m := newMockPort()
	m.setASCII(1, 0x6A, "G366PDG0")
	m.setWord(1, 0x72, 0x0205)
	m.setASCII(1, 0x74, "T1000012")
	rif := g366Interface(m)

	info, err := rif.DeviceInfo()
	require.NoError(t, err)
	assert.Equal(t, "G366PDG0", info.ProdID)
	assert.Equal(t, "25", info.Version)
	assert.Equal(t, "T1000012", info.Serial)
	assert.Equal(t, "G366PDG0 v25 (s/n T1000012)", info.String())
}

func TestSyncRecoversAfterBadProbes(t *testing.T) {
	m := newMockPort()
	m.setWord(0, 0x4C, model.IDRetVal)
	m.failProbes = 2
	rif := New(m, nil)

	require.NoError(t, rif.Sync(5))
	// each failed probe terminates the partial command and flushes
	assert.GreaterOrEqual(t, m.resets, 2)
}

func TestSyncExhaustsRetries(t *testing.T) {
	m := newMockPort()
	m.setWord(0, 0x4C, 0xBEEF) // wrong signature
	rif := New(m, nil)

	err := rif.Sync(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync")
}
