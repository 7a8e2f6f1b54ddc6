package model

import "time"

// M-A342VD10 three-axis vibration sensor. Burst carries 24-bit velocity or
// displacement per axis, an 8-bit temperature, and a combined EXI/ALARM/COUNT
// word. Output function is selected in SIG_CTRL, there is no FILTER_CTRL.
var a342vd10 = register(&Definition{
	Name:  "A342VD10",
	Class: ClassVIBE,
	Reg: RegisterMap{
		Burst:      Reg{0, 0x00, 0x01},
		ModeCtrl:   Reg{0, 0x02, 0x03},
		DiagStat:   Reg{0, 0x04, 0x05},
		DiagStat2:  Reg{0, 0x0C, 0x0D},
		Flag:       Reg{0, 0x06, 0x07},
		Count:      Reg{0, 0x0A, 0x0B},
		ID:         Reg{0, 0x4C, 0x4D},
		SigCtrl:    Reg{1, 0x00, 0x01},
		MscCtrl:    Reg{1, 0x02, 0x03},
		SmplCtrl:   Reg{1, 0x04, 0x05},
		UartCtrl:   Reg{1, 0x08, 0x09},
		GlobCmd:    Reg{1, 0x0A, 0x0B},
		BurstCtrl1: Reg{1, 0x0C, 0x0D},
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
	Scale: Scale{
		TempC: -0.0037918, // degC/bit, bias 34.987 applied at decode
		Vel:   2.38e-4,    // (mm/s)/bit
		Disp:  2.38e-4,    // mm/bit
	},
	OutputSel: map[string]uint8{
		"VELOCITY_RAW": 0x00, "VELOCITY_RMS": 0x01, "VELOCITY_PP": 0x02,
		"DISP_RAW": 0x04, "DISP_RMS": 0x05, "DISP_PP": 0x06,
	},
	BaudRate: map[int]uint8{
		921600: 0x00, 460800: 0x01, 230400: 0x02, 115200: 0x03,
	},

	PowerOnDelay:     900 * time.Millisecond,
	ResetDelay:       970 * time.Millisecond,
	SelfTestDelay:    300 * time.Millisecond,
	SelfTestExiDelay: 820 * time.Millisecond,
	FlashTestDelay:   5 * time.Millisecond,
	FlashBackupDelay: 310 * time.Millisecond,
	FilterDelay:      118 * time.Millisecond,

	Registers: []NamedReg{
		{"BURST", Reg{0, 0x00, 0x01}},
		{"MODE_CTRL", Reg{0, 0x02, 0x03}},
		{"DIAG_STAT1", Reg{0, 0x04, 0x05}},
		{"FLAG", Reg{0, 0x06, 0x07}},
		{"COUNT", Reg{0, 0x0A, 0x0B}},
		{"DIAG_STAT2", Reg{0, 0x0C, 0x0D}},
		{"TEMP1", Reg{0, 0x10, 0x11}},
		{"ACC_SELFTEST_DATA1", Reg{0, 0x2A, 0x2B}},
		{"ACC_SELFTEST_DATA2", Reg{0, 0x2C, 0x2D}},
		{"TEMP2", Reg{0, 0x2E, 0x2F}},
		{"XVELC_HIGH", Reg{0, 0x30, 0x31}},
		{"XVELC_LOW", Reg{0, 0x32, 0x33}},
		{"YVELC_HIGH", Reg{0, 0x34, 0x35}},
		{"YVELC_LOW", Reg{0, 0x36, 0x37}},
		{"ZVELC_HIGH", Reg{0, 0x38, 0x39}},
		{"ZVELC_LOW", Reg{0, 0x3A, 0x3B}},
		{"ID", Reg{0, 0x4C, 0x4D}},
		{"SIG_CTRL", Reg{1, 0x00, 0x01}},
		{"MSC_CTRL", Reg{1, 0x02, 0x03}},
		{"SMPL_CTRL", Reg{1, 0x04, 0x05}},
		{"UART_CTRL", Reg{1, 0x08, 0x09}},
		{"GLOB_CMD", Reg{1, 0x0A, 0x0B}},
		{"BURST_CTRL", Reg{1, 0x0C, 0x0D}},
		{"ALIGNMENT_COEF_CMD", Reg{1, 0x38, 0x39}},
		{"ALIGNMENT_COEF_DATA", Reg{1, 0x3A, 0x3B}},
		{"ALIGNMENT_COEF_ADDR", Reg{1, 0x3C, 0x3D}},
		{"XALARM", Reg{1, 0x46, 0x47}},
		{"YALARM", Reg{1, 0x48, 0x49}},
		{"ZALARM", Reg{1, 0x4A, 0x4B}},
		{"PROD_ID1", Reg{1, 0x6A, 0x6B}},
		{"PROD_ID2", Reg{1, 0x6C, 0x6D}},
		{"PROD_ID3", Reg{1, 0x6E, 0x6F}},
		{"PROD_ID4", Reg{1, 0x70, 0x71}},
		{"VERSION", Reg{1, 0x72, 0x73}},
		{"SERIAL_NUM1", Reg{1, 0x74, 0x75}},
		{"SERIAL_NUM2", Reg{1, 0x76, 0x77}},
		{"SERIAL_NUM3", Reg{1, 0x78, 0x79}},
		{"SERIAL_NUM4", Reg{1, 0x7A, 0x7B}},
		{"WIN_CTRL", Reg{0, 0x7E, 0x7F}},
	},
})
