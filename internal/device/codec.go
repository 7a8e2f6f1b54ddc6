package device

import (
	"encoding/binary"
	"fmt"

	"esensor/internal/model"
)

// Sample is one decoded burst frame. Fields, Raw, and Scaled are parallel:
// Raw holds the sign-extended integer counts, Scaled the physical-unit
// conversion per the schema. Both projections always decode from the same
// frame bytes.
type Sample struct {
	Fields []string
	Raw    []int64
	Scaled []float64
}

// decodeFrame parses a full on-wire burst frame against the schema. A frame
// whose checksum word mismatches still decodes; the ChecksumError is
// returned alongside the sample so the caller chooses whether to keep it.
func decodeFrame(frame []byte, sc Schema) (Sample, error) {
	var smp Sample
	if len(frame) != sc.FrameSize() {
		return smp, &ProtocolError{
			Reason: fmt.Sprintf("got %d bytes, schema needs %d", len(frame), sc.FrameSize()),
			Frame:  frame,
		}
	}
	if frame[0] != model.BurstMarker {
		return smp, &ProtocolError{Reason: "missing header byte", Frame: frame}
	}
	if frame[len(frame)-1] != model.Delimiter {
		return smp, &ProtocolError{Reason: "missing delimiter byte", Frame: frame}
	}
	payload := frame[1 : len(frame)-1]

	smp.Fields = sc.Names()
	smp.Raw = make([]int64, len(sc.Fields))
	smp.Scaled = make([]float64, len(sc.Fields))

	off := 0
	for i, f := range sc.Fields {
		raw := extract(payload[off:], f.Bits, f.Signed)
		off += f.Bits / 8
		smp.Raw[i] = raw
		smp.Scaled[i] = (float64(raw)-f.Offset)*f.Scale + f.Bias
	}

	if sc.Chksm {
		want := frameChecksum(payload[:len(payload)-2])
		got := uint16(smp.Raw[len(smp.Raw)-1])
		if want != got {
			return smp, &ChecksumError{Want: want, Got: got}
		}
	}
	return smp, nil
}

// extract reads one big-endian field of the given width and sign-extends it.
func extract(p []byte, bits int, signed bool) int64 {
	switch bits {
	case 8:
		if signed {
			return int64(int8(p[0]))
		}
		return int64(p[0])
	case 16:
		v := binary.BigEndian.Uint16(p)
		if signed {
			return int64(int16(v))
		}
		return int64(v)
	case 24:
		v := uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
		if signed {
			// sign-extend from bit 23
			return int64(int32(v<<8) >> 8)
		}
		return int64(v)
	case 32:
		v := binary.BigEndian.Uint32(p)
		if signed {
			return int64(int32(v))
		}
		return int64(v)
	}
	return 0
}

// frameChecksum is the modulo-2^16 sum of the payload taken as big-endian
// 16-bit words. An odd final byte counts as the high byte of a zero-padded
// word.
func frameChecksum(p []byte) uint16 {
	var sum uint16
	for len(p) >= 2 {
		sum += binary.BigEndian.Uint16(p)
		p = p[2:]
	}
	if len(p) == 1 {
		sum += uint16(p[0]) << 8
	}
	return sum
}
