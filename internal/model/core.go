package model

// coreDef carries only the registers shared by every Epson sensing device.
// It backs communication before the model has been identified, which is all
// auto-detection needs: MODE_CTRL to force CONFIG mode and the identity
// registers to read the product ID.
var coreDef = &Definition{
	Name:  "CORE",
	Class: ClassIMU,
	Reg: RegisterMap{
		ModeCtrl:   Reg{0, 0x02, 0x03},
		ID:         Reg{0, 0x4C, 0x4D},
		ProdID1:    Reg{1, 0x6A, 0x6B},
		ProdID2:    Reg{1, 0x6C, 0x6D},
		ProdID3:    Reg{1, 0x6E, 0x6F},
		ProdID4:    Reg{1, 0x70, 0x71},
		Version:    Reg{1, 0x72, 0x73},
		SerialNum1: Reg{1, 0x74, 0x75},
		SerialNum2: Reg{1, 0x76, 0x77},
		SerialNum3: Reg{1, 0x78, 0x79},
		SerialNum4: Reg{1, 0x7A, 0x7B},
		WinCtrl:    Reg{0, 0x7E, 0x7F},
	},
}

// Core returns the pre-detection definition. The ID register of every Epson
// sensing device reads back IDRetVal once the device is responsive.
func Core() *Definition { return coreDef }

// IDRetVal is the fixed value of the ID register ("SE" in ASCII).
const IDRetVal = 0x5345
