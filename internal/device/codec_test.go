package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaSizes(t *testing.T) {
	sc := Schema{Fields: []FieldSpec{
		passthrough("ndflags", 16),
		{Name: "gyro_X", Bits: 32, Signed: true, Scale: 1},
		{Name: "vel_X", Bits: 24, Signed: true, Scale: 1},
		passthrough("exi-alrm-cnt", 8),
	}}
	assert.Equal(t, 10, sc.PayloadSize())
	assert.Equal(t, 12, sc.FrameSize())
	assert.Equal(t, []string{"ndflags", "gyro_X", "vel_X", "exi-alrm-cnt"}, sc.Names())
}

func TestExtractSignExtension(t *testing.T) {
	assert.Equal(t, int64(-1), extract([]byte{0xFF}, 8, true))
	assert.Equal(t, int64(255), extract([]byte{0xFF}, 8, false))
	assert.Equal(t, int64(-2), extract([]byte{0xFF, 0xFE}, 16, true))
	assert.Equal(t, int64(0xFFFE), extract([]byte{0xFF, 0xFE}, 16, false))
	assert.Equal(t, int64(-3), extract([]byte{0xFF, 0xFF, 0xFD}, 24, true))
	assert.Equal(t, int64(0xFFFFFD), extract([]byte{0xFF, 0xFF, 0xFD}, 24, false))
	assert.Equal(t, int64(-4), extract([]byte{0xFF, 0xFF, 0xFF, 0xFC}, 32, true))
	assert.Equal(t, int64(0xFFFFFFFC), extract([]byte{0xFF, 0xFF, 0xFF, 0xFC}, 32, false))
}

func TestFrameChecksumOddLength(t *testing.T) {
	// even: 0x0102 + 0x0304
	assert.Equal(t, uint16(0x0406), frameChecksum([]byte{0x01, 0x02, 0x03, 0x04}))
	// odd: trailing byte pads as the high byte of a zero word
	assert.Equal(t, uint16(0x0406+0x0500), frameChecksum([]byte{0x01, 0x02, 0x03, 0x04, 0x05}))
	// wraps modulo 2^16
	assert.Equal(t, uint16(0xFFFE), frameChecksum([]byte{0xFF, 0xFF, 0xFF, 0xFF}))
}

func TestDecodeFrameConversions(t *testing.T) {
	sc := Schema{Fields: []FieldSpec{
		{Name: "tempC", Bits: 16, Signed: true, Scale: 0.5, Offset: 10, Bias: 25},
		passthrough("count", 16),
	}}
	frame := []byte{0x80, 0x00, 0x14, 0x00, 0x07, 0x0D}
	smp, err := decodeFrame(frame, sc)
	require.NoError(t, err)
	assert.Equal(t, int64(20), smp.Raw[0])
	assert.InDelta(t, (20.0-10)*0.5+25, smp.Scaled[0], 1e-12)
	assert.Equal(t, int64(7), smp.Raw[1])
	assert.InDelta(t, 7.0, smp.Scaled[1], 1e-12)
}

func TestDecodeFrameRejectsMalformed(t *testing.T) {
	sc := Schema{Fields: []FieldSpec{passthrough("ndflags", 16)}}

	var perr *ProtocolError
	_, err := decodeFrame([]byte{0x80, 0x00, 0x0D}, sc)
	require.ErrorAs(t, err, &perr)

	_, err = decodeFrame([]byte{0x55, 0x00, 0x00, 0x0D}, sc)
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "header")

	_, err = decodeFrame([]byte{0x80, 0x00, 0x00, 0x55}, sc)
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "delimiter")
}

func TestDecodeFrameChecksumStillDecodes(t *testing.T) {
	sc := Schema{
		Fields: []FieldSpec{
			passthrough("count", 16),
			passthrough("chksm", 16),
		},
		Chksm: true,
	}
	frame := []byte{0x80, 0x00, 0x09, 0xBE, 0xEF, 0x0D}
	smp, err := decodeFrame(frame, sc)
	var cerr *ChecksumError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, uint16(0x0009), cerr.Want)
	assert.Equal(t, uint16(0xBEEF), cerr.Got)
	assert.Equal(t, int64(9), smp.Raw[0])
}
