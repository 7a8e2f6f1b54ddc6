package device

// FieldSpec describes one field of the burst frame. Raw counts convert to
// physical units as (raw - Offset) * Scale + Bias; status words pass through
// with the identity conversion.
type FieldSpec struct {
	Name   string
	Bits   int // 8, 16, 24, or 32
	Signed bool
	Scale  float64
	Offset float64
	Bias   float64
}

// passthrough is the spec for flag, counter, and checksum words.
func passthrough(name string, bits int) FieldSpec {
	return FieldSpec{Name: name, Bits: bits, Scale: 1}
}

// Schema is the ordered burst frame layout for one configuration. Field
// order is fixed by the device protocol, never by the order options were
// supplied. Chksm marks the final field as the frame checksum word.
type Schema struct {
	Fields []FieldSpec
	Chksm  bool
}

// Names returns the ordered field names. The returned slice is a copy.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// PayloadSize is the byte length of all fields between the header and
// delimiter bytes.
func (s Schema) PayloadSize() int {
	n := 0
	for _, f := range s.Fields {
		n += f.Bits / 8
	}
	return n
}

// FrameSize is the full on-wire frame length: header byte, payload,
// delimiter byte.
func (s Schema) FrameSize() int { return s.PayloadSize() + 2 }

// axes appends one spec per axis suffix with shared width and scaling.
func axes(fields []FieldSpec, name string, suffixes []string, bits int, scale, offset, bias float64) []FieldSpec {
	for _, sfx := range suffixes {
		fields = append(fields, FieldSpec{
			Name:   name + sfx,
			Bits:   bits,
			Signed: true,
			Scale:  scale,
			Offset: offset,
			Bias:   bias,
		})
	}
	return fields
}

var (
	xyz  = []string{"_X", "_Y", "_Z"}
	quat = []string{"_0", "_1", "_2", "_3"}
)
