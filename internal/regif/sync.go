package regif

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"esensor/internal/model"
)

// drainDelay covers one sample period at the slowest output rate so a device
// still streaming has refilled the buffer before the next check.
const drainDelay = 100 * time.Millisecond

// Sync establishes command/response framing with a device in an unknown
// state, typically one left streaming in SAMPLING mode by a previous run.
// Each attempt forces CONFIG mode, drains the receive buffer, and probes the
// ID register for its fixed signature. Between attempts a lone delimiter
// byte is sent to terminate any half-received command.
func (r *Interface) Sync(retries int) error {
	core := model.Core()
	for attempt := 0; attempt < retries; attempt++ {
		if err := r.raw8(model.WinCtrlAddr, 0); err != nil {
			return err
		}
		if err := r.raw8(core.Reg.ModeCtrl.AddrH, model.ModeCmdConfig); err != nil {
			return err
		}
		if err := r.port.ResetInput(); err != nil {
			return err
		}
		time.Sleep(drainDelay)

		id, err := r.GetReg(core.Reg.ID.Window, core.Reg.ID.Addr)
		if err == nil && id == model.IDRetVal {
			return nil
		}
		log.Debugf("sync attempt %d: ID probe failed: %v", attempt+1, err)

		// Terminate any partial command the device may be holding.
		if err := r.port.Write([]byte{model.Delimiter}); err != nil {
			return err
		}
		if err := r.port.ResetInput(); err != nil {
			return err
		}
	}
	return fmt.Errorf("regif: no response from device after %d sync attempts", retries)
}
