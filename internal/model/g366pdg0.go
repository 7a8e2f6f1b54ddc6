package model

import "time"

// M-G366PDG0 six-axis IMU. Also covers G330PDG0/G330PDE0/G366PDE0, which
// share the register map and constants.
var g366pdg0 = register(&Definition{
	Name:  "G366PDG0",
	Class: ClassIMU,
	Reg: RegisterMap{
		Burst:      Reg{0, 0x00, 0x01},
		ModeCtrl:   Reg{0, 0x02, 0x03},
		DiagStat:   Reg{0, 0x04, 0x05},
		Flag:       Reg{0, 0x06, 0x07},
		Gpio:       Reg{0, 0x08, 0x09},
		Count:      Reg{0, 0x0A, 0x0B},
		ID:         Reg{0, 0x4C, 0x4D},
		SigCtrl:    Reg{1, 0x00, 0x01},
		MscCtrl:    Reg{1, 0x02, 0x03},
		SmplCtrl:   Reg{1, 0x04, 0x05},
		FilterCtrl: Reg{1, 0x06, 0x07},
		UartCtrl:   Reg{1, 0x08, 0x09},
		GlobCmd:    Reg{1, 0x0A, 0x0B},
		BurstCtrl1: Reg{1, 0x0C, 0x0D},
		BurstCtrl2: Reg{1, 0x0E, 0x0F},
		DltCtrl:    Reg{1, 0x12, 0x13},
		AttiCtrl:   Reg{1, 0x14, 0x15},
		GlobCmd2:   Reg{1, 0x16, 0x17},
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
		Gyro:     1.0 / 66,                        // (deg/s)/bit
		Accl:     1.0 / 4,                         // mg/bit
		TempC:    0.00390625,                      // degC/bit
		TempC25C: 0,                               // offset at 25 degC
		Dlta:     1.0 / 66 / 2000,                 // deg/bit
		Dltv:     1.0 / 4 / 1000 / 2000 * 9.80665, // (m/s)/bit
		Atti:     0.00699411,                      // deg/bit
		Qtn:      1.0 / 16384,                     // 1/2^14
	},
	Flags: Flags{
		HasDltOutput:  true,
		HasAttiOutput: true,
		HasAttiCtrl:   true,
		HasARange:     true,
		HasExtSel:     true,
		HasGpio:       true,
		HasRangeOver:  true,
		HasInitBackup: true,
	},
	DoutRate: map[float64]uint8{
		2000: 0x00, 1000: 0x01, 500: 0x02, 250: 0x03, 125: 0x04,
		62.5: 0x05, 31.25: 0x06, 15.625: 0x07, 400: 0x08, 200: 0x09,
		100: 0x0A, 80: 0x0B, 50: 0x0C, 40: 0x0D, 25: 0x0E, 20: 0x0F,
	},
	FilterSel: map[string]uint8{
		"MV_AVG0": 0x00, "MV_AVG2": 0x01, "MV_AVG4": 0x02, "MV_AVG8": 0x03,
		"MV_AVG16": 0x04, "MV_AVG32": 0x05, "MV_AVG64": 0x06, "MV_AVG128": 0x07,
		"K32_FC50": 0x08, "K32_FC100": 0x09, "K32_FC200": 0x0A, "K32_FC400": 0x0B,
		"K64_FC50": 0x0C, "K64_FC100": 0x0D, "K64_FC200": 0x0E, "K64_FC400": 0x0F,
		"K128_FC50": 0x10, "K128_FC100": 0x11, "K128_FC200": 0x12, "K128_FC400": 0x13,
	},
	AutoFilter: map[float64]string{
		2000: "K32_FC400",
		1000: "K32_FC200",
		500:  "K32_FC100",
		400:  "K32_FC100",
		250:  "K32_FC50",
		200:  "K32_FC50",
	},
	BaudRate: map[int]uint8{460800: 0, 230400: 1, 921600: 2},
	ExtSel:   map[string]uint8{"GPIO": 0x00, "RESET": 0x01, "TYPEB": 0x03},

	PowerOnDelay:     800 * time.Millisecond,
	ResetDelay:       800 * time.Millisecond,
	SelfTestDelay:    80 * time.Millisecond,
	FlashTestDelay:   30 * time.Millisecond,
	FlashBackupDelay: 200 * time.Millisecond,
	FilterDelay:      time.Millisecond,
	AttiMotionDelay:  time.Millisecond,

	Registers: []NamedReg{
		{"BURST", Reg{0, 0x00, 0x01}},
		{"MODE_CTRL", Reg{0, 0x02, 0x03}},
		{"DIAG_STAT", Reg{0, 0x04, 0x05}},
		{"FLAG", Reg{0, 0x06, 0x07}},
		{"GPIO", Reg{0, 0x08, 0x09}},
		{"COUNT", Reg{0, 0x0A, 0x0B}},
		{"RANGE_OVER", Reg{0, 0x0C, 0x0D}},
		{"TEMP_HIGH", Reg{0, 0x0E, 0x0F}},
		{"TEMP_LOW", Reg{0, 0x10, 0x11}},
		{"XGYRO_HIGH", Reg{0, 0x12, 0x13}},
		{"XGYRO_LOW", Reg{0, 0x14, 0x15}},
		{"YGYRO_HIGH", Reg{0, 0x16, 0x17}},
		{"YGYRO_LOW", Reg{0, 0x18, 0x19}},
		{"ZGYRO_HIGH", Reg{0, 0x1A, 0x1B}},
		{"ZGYRO_LOW", Reg{0, 0x1C, 0x1D}},
		{"XACCL_HIGH", Reg{0, 0x1E, 0x1F}},
		{"XACCL_LOW", Reg{0, 0x20, 0x21}},
		{"YACCL_HIGH", Reg{0, 0x22, 0x23}},
		{"YACCL_LOW", Reg{0, 0x24, 0x25}},
		{"ZACCL_HIGH", Reg{0, 0x26, 0x27}},
		{"ZACCL_LOW", Reg{0, 0x28, 0x29}},
		{"ID", Reg{0, 0x4C, 0x4D}},
		{"QTN0_HIGH", Reg{0, 0x50, 0x51}},
		{"QTN0_LOW", Reg{0, 0x52, 0x53}},
		{"QTN1_HIGH", Reg{0, 0x54, 0x55}},
		{"QTN1_LOW", Reg{0, 0x56, 0x57}},
		{"QTN2_HIGH", Reg{0, 0x58, 0x59}},
		{"QTN2_LOW", Reg{0, 0x5A, 0x5B}},
		{"QTN3_HIGH", Reg{0, 0x5C, 0x5D}},
		{"QTN3_LOW", Reg{0, 0x5E, 0x5F}},
		{"XDLTA_HIGH", Reg{0, 0x64, 0x65}},
		{"XDLTA_LOW", Reg{0, 0x66, 0x67}},
		{"YDLTA_HIGH", Reg{0, 0x68, 0x69}},
		{"YDLTA_LOW", Reg{0, 0x6A, 0x6B}},
		{"ZDLTA_HIGH", Reg{0, 0x6C, 0x6D}},
		{"ZDLTA_LOW", Reg{0, 0x6E, 0x6F}},
		{"XDLTV_HIGH", Reg{0, 0x70, 0x71}},
		{"XDLTV_LOW", Reg{0, 0x72, 0x73}},
		{"YDLTV_HIGH", Reg{0, 0x74, 0x75}},
		{"YDLTV_LOW", Reg{0, 0x76, 0x77}},
		{"ZDLTV_HIGH", Reg{0, 0x78, 0x79}},
		{"ZDLTV_LOW", Reg{0, 0x7A, 0x7B}},
		{"SIG_CTRL", Reg{1, 0x00, 0x01}},
		{"MSC_CTRL", Reg{1, 0x02, 0x03}},
		{"SMPL_CTRL", Reg{1, 0x04, 0x05}},
		{"FILTER_CTRL", Reg{1, 0x06, 0x07}},
		{"UART_CTRL", Reg{1, 0x08, 0x09}},
		{"GLOB_CMD", Reg{1, 0x0A, 0x0B}},
		{"BURST_CTRL1", Reg{1, 0x0C, 0x0D}},
		{"BURST_CTRL2", Reg{1, 0x0E, 0x0F}},
		{"POL_CTRL", Reg{1, 0x10, 0x11}},
		{"DLT_CTRL", Reg{1, 0x12, 0x13}},
		{"ATTI_CTRL", Reg{1, 0x14, 0x15}},
		{"GLOB_CMD2", Reg{1, 0x16, 0x17}},
		{"R_MATRIX_G_M11", Reg{1, 0x38, 0x39}},
		{"R_MATRIX_G_M12", Reg{1, 0x3A, 0x3B}},
		{"R_MATRIX_G_M13", Reg{1, 0x3C, 0x3D}},
		{"R_MATRIX_G_M21", Reg{1, 0x3E, 0x3F}},
		{"R_MATRIX_G_M22", Reg{1, 0x40, 0x41}},
		{"R_MATRIX_G_M23", Reg{1, 0x42, 0x43}},
		{"R_MATRIX_G_M31", Reg{1, 0x44, 0x45}},
		{"R_MATRIX_G_M32", Reg{1, 0x46, 0x47}},
		{"R_MATRIX_G_M33", Reg{1, 0x48, 0x49}},
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
