package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esensor/internal/device"
	"esensor/internal/regif"
)

var testInfo = regif.Info{ProdID: "G366PDG0", Version: "25", Serial: "T1000012"}

func testSnapshot() device.Snapshot {
	return device.Snapshot{
		Model:  "G366PDG0",
		Class:  "imu",
		Fields: []string{"ndflags", "tempC", "counter", "chksm"},
	}
}

func testSample() device.Sample {
	return device.Sample{
		Fields: []string{"ndflags", "tempC", "counter", "chksm"},
		Raw:    []int64{0x8001, 2560, 7, 0x0D0A},
		Scaled: []float64{float64(0x8001), 35, 7, float64(0x0D0A)},
	}
}

func TestFormatScaled(t *testing.T) {
	assert.Equal(t, "8001", formatScaled("ndflags", 0x8001, 0))
	assert.Equal(t, "0D0A", formatScaled("chksm", 0x0D0A, 0))
	assert.Equal(t, "7", formatScaled("counter", 7, 7))
	assert.Equal(t, "42", formatScaled("exi-alrm-cnt", 42, 42))
	assert.Equal(t, "35.00000000", formatScaled("tempC", 2560, 35))
	assert.Equal(t, "-0.12500000", formatScaled("gyro_X", -8, -0.125))
}

func TestFormatRaw(t *testing.T) {
	assert.Equal(t, "8001", formatRaw("ndflags", 0x8001))
	assert.Equal(t, "-660", formatRaw("gyro_Y", -660))
}

func TestCSVWriterSession(t *testing.T) {
	var buf strings.Builder
	w := NewCSVWriter(&buf, false)
	w.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	require.NoError(t, w.WriteHeader(testInfo, testSnapshot()))
	require.NoError(t, w.Write(testSample()))
	require.NoError(t, w.Write(testSample()))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "#Log created 2024-03-01T12:00:00Z", lines[0])
	assert.Equal(t, "#PROD_ID=G366PDG0,#VERSION=25,#SERIAL_NUM=T1000012", lines[1])
	assert.Equal(t, "#MODEL=G366PDG0,#CLASS=imu", lines[2])
	assert.Equal(t, "sample,ndflags,tempC,counter,chksm", lines[3])
	assert.Equal(t, "0,8001,35.00000000,7,0D0A", lines[4])
	assert.Equal(t, "1,8001,35.00000000,7,0D0A", lines[5])
	assert.Equal(t, "#Log end 2024-03-01T12:00:00Z", lines[6])
	assert.Equal(t, "#Sample count,2", lines[7])
}

func TestCSVWriterUnscaled(t *testing.T) {
	var buf strings.Builder
	w := NewCSVWriter(&buf, true)
	w.now = func() time.Time { return time.Unix(0, 0).UTC() }

	require.NoError(t, w.WriteHeader(testInfo, testSnapshot()))
	require.NoError(t, w.Write(testSample()))
	require.NoError(t, w.Close())

	out := buf.String()
	assert.Contains(t, out, "#Raw counts, no scale factor applied")
	assert.Contains(t, out, "0,8001,2560,7,0D0A")
}

func TestConsoleWriterColumns(t *testing.T) {
	var buf strings.Builder
	w := NewConsoleWriter(&buf, false)

	require.NoError(t, w.WriteHeader(testInfo, testSnapshot()))
	require.NoError(t, w.Write(testSample()))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "G366PDG0 v25 (s/n T1000012)")
	assert.Contains(t, lines[1], "sample")
	assert.Contains(t, lines[1], "tempC")
	assert.Contains(t, lines[2], "35.00000000")
	assert.Equal(t, "1 samples", lines[3])
}
