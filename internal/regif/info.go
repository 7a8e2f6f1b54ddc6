package regif

import (
	"fmt"

	"esensor/internal/model"
)

// Info identifies the connected device.
type Info struct {
	ProdID  string `json:"prod_id" yaml:"prod_id"`
	Version string `json:"version_id" yaml:"version_id"`
	Serial  string `json:"serial_id" yaml:"serial_id"`
}

func (i Info) String() string {
	return fmt.Sprintf("%s v%s (s/n %s)", i.ProdID, i.Version, i.Serial)
}

// ascii16 appends the low then high byte of a register word as characters.
func ascii16(dst []byte, word uint16) []byte {
	return append(dst, byte(word&0xFF), byte(word>>8))
}

// DeviceInfo reads the product ID, firmware version, and serial number
// registers. The ID and serial registers hold ASCII two bytes at a time,
// low byte first.
func (r *Interface) DeviceInfo() (Info, error) {
	var info Info

	prodRegs := [...]model.Reg{
		r.def.Reg.ProdID1, r.def.Reg.ProdID2, r.def.Reg.ProdID3, r.def.Reg.ProdID4,
	}
	var prod []byte
	for _, reg := range prodRegs {
		word, err := r.Get(reg)
		if err != nil {
			return info, err
		}
		prod = ascii16(prod, word)
	}
	info.ProdID = string(prod)

	ver, err := r.Get(r.def.Reg.Version)
	if err != nil {
		return info, err
	}
	info.Version = fmt.Sprintf("%X%X", ver>>8, ver&0xFF)

	serialRegs := [...]model.Reg{
		r.def.Reg.SerialNum1, r.def.Reg.SerialNum2, r.def.Reg.SerialNum3, r.def.Reg.SerialNum4,
	}
	var serial []byte
	for _, reg := range serialRegs {
		word, err := r.Get(reg)
		if err != nil {
			return info, err
		}
		serial = ascii16(serial, word)
	}
	info.Serial = string(serial)

	return info, nil
}
