package model

import "time"

// M-G370PDF1 six-axis IMU, also covering the G370PDS0 variant. Delta
// angle/velocity output is present but there is no attitude or quaternion
// engine, and FILTER_CTRL uses an alternate code table at 2000/400/80 sps.
var g370pdf1 = register(&Definition{
	Name:  "G370PDF1",
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
		Gyro:     1.0 / 66,
		Accl:     1.0 / 2.5,
		TempC:    -0.0037918,
		TempC25C: 2634,
		Dlta:     1.0 / 66 / 1000,
		Dltv:     1.0 / 2.5 / 1000 / 1000 * 9.80665,
	},
	Flags: Flags{
		HasDltOutput:  true,
		HasAttiCtrl:   true,
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
		"K32_FC25": 0x08, "K32_FC50": 0x09, "K32_FC100": 0x0A, "K32_FC200": 0x0B,
		"K64_FC25": 0x0C, "K64_FC50": 0x0D, "K64_FC100": 0x0E, "K64_FC200": 0x0F,
		"K128_FC25": 0x10, "K128_FC50": 0x11, "K128_FC100": 0x12, "K128_FC200": 0x13,
	},
	FilterSelAlt: map[string]uint8{
		"MV_AVG0": 0x00, "MV_AVG2": 0x01, "MV_AVG4": 0x02, "MV_AVG8": 0x03,
		"MV_AVG16": 0x04, "MV_AVG32": 0x05, "MV_AVG64": 0x06, "MV_AVG128": 0x07,
		"K32_FC50": 0x08, "K32_FC100": 0x09, "K32_FC200": 0x0A, "K32_FC400": 0x0B,
		"K64_FC50": 0x0C, "K64_FC100": 0x0D, "K64_FC200": 0x0E, "K64_FC400": 0x0F,
		"K128_FC50": 0x10, "K128_FC100": 0x11, "K128_FC200": 0x12, "K128_FC400": 0x13,
	},
	FilterAltRates: []float64{2000, 400, 80},
	BaudRate:       map[int]uint8{460800: 0, 230400: 1, 921600: 2},
	ExtSel:         map[string]uint8{"GPIO": 0x00, "RESET": 0x01, "TYPEA": 0x02, "TYPEB": 0x03},

	PowerOnDelay:     800 * time.Millisecond,
	ResetDelay:       800 * time.Millisecond,
	SelfTestDelay:    150 * time.Millisecond,
	FlashTestDelay:   5 * time.Millisecond,
	FlashBackupDelay: 200 * time.Millisecond,
	FilterDelay:      time.Millisecond,

	Registers: []NamedReg{
		{"MODE_CTRL", Reg{0, 0x02, 0x03}},
		{"DIAG_STAT", Reg{0, 0x04, 0}},
		{"FLAG", Reg{0, 0x06, 0}},
		{"GPIO", Reg{0, 0x08, 0x09}},
		{"COUNT", Reg{0, 0x0A, 0}},
		{"RANGE_OVER", Reg{0, 0x0C, 0}},
		{"TEMP_HIGH", Reg{0, 0x0E, 0}},
		{"TEMP_LOW", Reg{0, 0x10, 0}},
		{"XGYRO_HIGH", Reg{0, 0x12, 0}},
		{"XGYRO_LOW", Reg{0, 0x14, 0}},
		{"YGYRO_HIGH", Reg{0, 0x16, 0}},
		{"YGYRO_LOW", Reg{0, 0x18, 0}},
		{"ZGYRO_HIGH", Reg{0, 0x1A, 0}},
		{"ZGYRO_LOW", Reg{0, 0x1C, 0}},
		{"XACCL_HIGH", Reg{0, 0x1E, 0}},
		{"XACCL_LOW", Reg{0, 0x20, 0}},
		{"YACCL_HIGH", Reg{0, 0x22, 0}},
		{"YACCL_LOW", Reg{0, 0x24, 0}},
		{"ZACCL_HIGH", Reg{0, 0x26, 0}},
		{"ZACCL_LOW", Reg{0, 0x28, 0}},
		{"RT_DIAG", Reg{0, 0x2A, 0}},
		{"ID", Reg{0, 0x4C, 0}},
		{"XDLTA_HIGH", Reg{0, 0x64, 0}},
		{"XDLTA_LOW", Reg{0, 0x66, 0}},
		{"YDLTA_HIGH", Reg{0, 0x68, 0}},
		{"YDLTA_LOW", Reg{0, 0x6A, 0}},
		{"ZDLTA_HIGH", Reg{0, 0x6C, 0}},
		{"ZDLTA_LOW", Reg{0, 0x6E, 0}},
		{"XDLTV_HIGH", Reg{0, 0x70, 0}},
		{"XDLTV_LOW", Reg{0, 0x72, 0}},
		{"YDLTV_HIGH", Reg{0, 0x74, 0}},
		{"YDLTV_LOW", Reg{0, 0x76, 0}},
		{"ZDLTV_HIGH", Reg{0, 0x78, 0}},
		{"ZDLTV_LOW", Reg{0, 0x7A, 0}},
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
		{"R_MATRIX_A_M11", Reg{1, 0x4A, 0x4B}},
		{"R_MATRIX_A_M12", Reg{1, 0x4C, 0x4D}},
		{"R_MATRIX_A_M13", Reg{1, 0x4E, 0x4F}},
		{"R_MATRIX_A_M21", Reg{1, 0x50, 0x51}},
		{"R_MATRIX_A_M22", Reg{1, 0x52, 0x53}},
		{"R_MATRIX_A_M23", Reg{1, 0x54, 0x55}},
		{"R_MATRIX_A_M31", Reg{1, 0x56, 0x57}},
		{"R_MATRIX_A_M32", Reg{1, 0x58, 0x59}},
		{"R_MATRIX_A_M33", Reg{1, 0x5A, 0x5B}},
		{"PROD_ID1", Reg{1, 0x6A, 0}},
		{"PROD_ID2", Reg{1, 0x6C, 0}},
		{"PROD_ID3", Reg{1, 0x6E, 0}},
		{"PROD_ID4", Reg{1, 0x70, 0}},
		{"VERSION", Reg{1, 0x72, 0}},
		{"SERIAL_NUM1", Reg{1, 0x74, 0}},
		{"SERIAL_NUM2", Reg{1, 0x76, 0}},
		{"SERIAL_NUM3", Reg{1, 0x78, 0}},
		{"SERIAL_NUM4", Reg{1, 0x7A, 0}},
		{"WIN_CTRL", Reg{0, 0x7E, 0x7F}},
	},
})
