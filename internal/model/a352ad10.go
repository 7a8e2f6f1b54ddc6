package model

import "time"

// M-A352AD10 three-axis accelerometer. Single BURST_CTRL register, no burst
// width selection, and per-axis tilt output selectable in SIG_CTRL.
var a352ad10 = register(&Definition{
	Name:  "A352AD10",
	Class: ClassACCL,
	Reg: RegisterMap{
		Burst:      Reg{0, 0x00, 0x01},
		ModeCtrl:   Reg{0, 0x02, 0x03},
		DiagStat:   Reg{0, 0x04, 0x05},
		Flag:       Reg{0, 0x06, 0x07},
		Count:      Reg{0, 0x0A, 0x0B},
		ID:         Reg{0, 0x4C, 0x4D},
		SigCtrl:    Reg{1, 0x00, 0x01},
		MscCtrl:    Reg{1, 0x02, 0x03},
		SmplCtrl:   Reg{1, 0x04, 0x05},
		FilterCtrl: Reg{1, 0x06, 0x07},
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
		Accl:  0.06e-3,    // mg/bit
		TempC: -0.0037918, // degC/bit, bias 34.987 applied at decode
		Tilt:  0.002e-6,   // rad/bit
	},
	Flags: Flags{
		HasExtSel: true,
	},
	DoutRate: map[float64]uint8{
		1000: 0x02, 500: 0x03, 200: 0x04, 100: 0x05, 50: 0x06,
	},
	FilterSel: map[string]uint8{
		"K64_FC83": 0x01, "K64_FC220": 0x02, "K128_FC36": 0x03,
		"K128_FC110": 0x04, "K128_FC350": 0x05, "K512_FC9": 0x06,
		"K512_FC16": 0x07, "K512_FC60": 0x08, "K512_FC210": 0x09,
		"K512_FC460": 0x0A, "UDF4": 0x0B, "UDF64": 0x0C,
		"UDF128": 0x0D, "UDF512": 0x0E,
	},
	AutoFilter: map[float64]string{
		1000: "K512_FC460",
		500:  "K512_FC210",
		200:  "K512_FC60",
		100:  "K512_FC16",
		50:   "K512_FC9",
	},
	BaudRate: map[int]uint8{460800: 0x01, 230400: 0x02, 115200: 0x03},
	ExtSel:   map[string]uint8{"DISABLED": 0x00, "TRIG_POS_EDGE": 0x10, "TRIG_NEG_EDGE": 0x11},

	PowerOnDelay:      900 * time.Millisecond,
	ResetDelay:        970 * time.Millisecond,
	SelfTestDelay:     200 * time.Millisecond,
	SelfTestAxisDelay: 40 * time.Second,
	FlashTestDelay:    5 * time.Millisecond,
	FlashBackupDelay:  310 * time.Millisecond,
	FilterDelay:       100 * time.Millisecond,

	Registers: []NamedReg{
		{"BURST", Reg{0, 0x00, 0x01}},
		{"MODE_CTRL", Reg{0, 0x02, 0x03}},
		{"DIAG_STAT", Reg{0, 0x04, 0x05}},
		{"FLAG", Reg{0, 0x06, 0x07}},
		{"COUNT", Reg{0, 0x0A, 0x0B}},
		{"TEMP_HIGH", Reg{0, 0x0E, 0x0F}},
		{"TEMP_LOW", Reg{0, 0x10, 0x11}},
		{"XACCL_HIGH", Reg{0, 0x30, 0x31}},
		{"XACCL_LOW", Reg{0, 0x32, 0x33}},
		{"YACCL_HIGH", Reg{0, 0x34, 0x35}},
		{"YACCL_LOW", Reg{0, 0x36, 0x37}},
		{"ZACCL_HIGH", Reg{0, 0x38, 0x39}},
		{"ZACCL_LOW", Reg{0, 0x3A, 0x3B}},
		{"XTILT_HIGH", Reg{0, 0x3C, 0x3D}},
		{"XTILT_LOW", Reg{0, 0x3E, 0x3F}},
		{"YTILT_HIGH", Reg{0, 0x40, 0x41}},
		{"YTILT_LOW", Reg{0, 0x42, 0x43}},
		{"ZTILT_HIGH", Reg{0, 0x44, 0x45}},
		{"ZTILT_LOW", Reg{0, 0x46, 0x47}},
		{"ID", Reg{0, 0x4C, 0x4D}},
		{"SIG_CTRL", Reg{1, 0x00, 0x01}},
		{"MSC_CTRL", Reg{1, 0x02, 0x03}},
		{"SMPL_CTRL", Reg{1, 0x04, 0x05}},
		{"FILTER_CTRL", Reg{1, 0x06, 0x07}},
		{"UART_CTRL", Reg{1, 0x08, 0x09}},
		{"GLOB_CMD", Reg{1, 0x0A, 0x0B}},
		{"BURST_CTRL", Reg{1, 0x0C, 0x0D}},
		{"FIR_UCMD", Reg{1, 0x16, 0x17}},
		{"FIR_UDATA", Reg{1, 0x18, 0x19}},
		{"FIR_UADDR", Reg{1, 0x1A, 0x1B}},
		{"LONGFILT_CTRL", Reg{1, 0x1C, 0x1D}},
		{"LONGFILT_TAP", Reg{1, 0x1E, 0x1F}},
		{"OFFSET_XA_HIGH", Reg{1, 0x2C, 0x2D}},
		{"OFFSET_XA_LOW", Reg{1, 0x2E, 0x2F}},
		{"OFFSET_YA_HIGH", Reg{1, 0x30, 0x31}},
		{"OFFSET_YA_LOW", Reg{1, 0x32, 0x33}},
		{"OFFSET_ZA_HIGH", Reg{1, 0x34, 0x35}},
		{"OFFSET_ZA_LOW", Reg{1, 0x36, 0x37}},
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
