package binary

import (
	"errors"
	"testing"

	"github.com/ausocean/cgm/context"
)

func TestByteShortRead(t *testing.T) {
	r := NewReader(nil, context.New())
	if _, err := r.Byte(); err != ErrShortRead {
		t.Fatalf("got %v, want ErrShortRead", err)
	}
}

func TestUintSubByte(t *testing.T) {
	// 0xB4 = 1011 0100: two 4-bit fields 0xB, 0x4.
	r := NewReader([]byte{0xB4}, context.New())
	hi, err := r.Uint(4)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := r.Uint(4)
	if err != nil {
		t.Fatal(err)
	}
	if hi != 0xB || lo != 0x4 {
		t.Fatalf("got hi=%#x lo=%#x, want hi=0xb lo=0x4", hi, lo)
	}
}

func TestUintSubByteTwoBit(t *testing.T) {
	// 0xE4 = 11 10 01 00
	r := NewReader([]byte{0xE4}, context.New())
	want := []uint32{0b11, 0b10, 0b01, 0b00}
	for i, w := range want {
		got, err := r.Uint(2)
		if err != nil {
			t.Fatalf("field %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("field %d: got %d, want %d", i, got, w)
		}
	}
}

func TestAlignWordAfterSubByte(t *testing.T) {
	r := NewReader([]byte{0xF0, 0xAB}, context.New())
	if _, err := r.Uint(4); err != nil {
		t.Fatal(err)
	}
	// A byte-oriented read must align past the remaining 4 bits of the
	// first byte before reading the second byte.
	b, err := r.Byte()
	if err != nil {
		t.Fatal(err)
	}
	if b != 0xAB {
		t.Fatalf("got %#x, want 0xab", b)
	}
}

func TestSigned24SignExtend(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFF}, context.New())
	v, err := r.Signed(24)
	if err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Fatalf("got %d, want -1", v)
	}
}

func TestSigned16(t *testing.T) {
	r := NewReader([]byte{0x80, 0x00}, context.New())
	v, err := r.Signed(16)
	if err != nil {
		t.Fatal(err)
	}
	if v != -32768 {
		t.Fatalf("got %d, want -32768", v)
	}
}

func TestIntUsesContextPrecision(t *testing.T) {
	ctx := context.New()
	ctx.IntegerPrecision = 8
	r := NewReader([]byte{0xFF}, ctx)
	v, err := r.Int()
	if err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Fatalf("got %d, want -1", v)
	}
}

func TestStringShortForm(t *testing.T) {
	r := NewReader(append([]byte{5}, []byte("hello")...), context.New())
	s, err := r.String()
	if err != nil {
		t.Fatal(err)
	}
	if s != "hello" {
		t.Fatalf("got %q, want %q", s, "hello")
	}
}

func TestStringExtendedLength(t *testing.T) {
	// 255, then a 16-bit word with its top bit set, so two more octets
	// extend the length to 32 bits: (0x0000 << 16) | 0x0005 = 5.
	buf := append([]byte{255, 0x80, 0x00, 0x00, 0x05}, []byte("hello")...)
	r := NewReader(buf, context.New())
	s, err := r.String()
	if err != nil {
		t.Fatal(err)
	}
	if s != "hello" {
		t.Fatalf("got %q, want %q", s, "hello")
	}
}

func TestRealFixedPoint32(t *testing.T) {
	// whole=2, frac=0x8000 (0.5) -> 2.5
	r := NewReader([]byte{0x00, 0x02, 0x80, 0x00}, context.New())
	v, err := r.Real()
	if err != nil {
		t.Fatal(err)
	}
	if v != 2.5 {
		t.Fatalf("got %v, want 2.5", v)
	}
}

func TestVDCIntegerDefault(t *testing.T) {
	ctx := context.New()
	r := NewReader([]byte{0x00, 0x0A}, ctx)
	v, err := r.VDC()
	if err != nil {
		t.Fatal(err)
	}
	if v != 10 {
		t.Fatalf("got %v, want 10", v)
	}
}

func TestPointListDiscardsTrailingFragment(t *testing.T) {
	ctx := context.New() // VDC integer 16: point = 4 bytes.
	buf := []byte{0, 1, 0, 2, 0, 3} // one full point plus 2 trailing bytes.
	r := NewReader(buf, ctx)
	pts, discarded, err := r.PointList()
	if err != nil {
		t.Fatal(err)
	}
	if !discarded {
		t.Fatal("expected discarded=true")
	}
	if len(pts) != 1 || pts[0].X != 1 || pts[0].Y != 2 {
		t.Fatalf("got %+v, want one point {1,2}", pts)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected cursor at end, remaining=%d", r.Remaining())
	}
}

func TestDirectColourRGB(t *testing.T) {
	ctx := context.New()
	ctx.ColourSelectionMode = context.ColourDirect
	r := NewReader([]byte{255, 128, 0}, ctx)
	c, unsupported, err := r.Colour(0)
	if err != nil {
		t.Fatal(err)
	}
	if unsupported {
		t.Fatal("expected supported")
	}
	if c.RGB.R != 255 || c.RGB.B != 0 {
		t.Fatalf("got %+v", c.RGB)
	}
}

func TestDirectColourUnsupportedModelSentinel(t *testing.T) {
	ctx := context.New()
	ctx.ColourSelectionMode = context.ColourDirect
	ctx.ColourModel = context.ColourModelCIELab
	r := NewReader([]byte{1, 2, 3}, ctx)
	c, unsupported, err := r.DirectColour()
	if err != nil {
		t.Fatal(err)
	}
	if !unsupported {
		t.Fatal("expected unsupported")
	}
	if c.R != 0 || c.G != 255 || c.B != 255 {
		t.Fatalf("got %+v, want cyan sentinel", c)
	}
}

func TestColourIndexLocalPrecisionOverride(t *testing.T) {
	ctx := context.New()
	r := NewReader([]byte{0x2A}, ctx)
	v, err := r.ColourIndex(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x2A {
		t.Fatalf("got %#x, want 0x2a", v)
	}
}

// sdrMemberUnknownType encodes one SDR member with a type tag (0) that
// is not one of the canonical SDRType values, and a count of 1.
func sdrMemberUnknownType() []byte {
	return []byte{0x00, 0x00, 0x00, 0x01} // type=0, count=1 (signed16 index fields).
}

func TestSDRBestEffortStopsAtUnknownType(t *testing.T) {
	r := NewReader(sdrMemberUnknownType(), context.New())
	sdr, err := r.SDR()
	if err != nil {
		t.Fatalf("best-effort SDR must not error, got %v", err)
	}
	if len(sdr.Members) != 0 {
		t.Fatalf("got %d members, want 0 (unknown-type member should be dropped)", len(sdr.Members))
	}
}

func TestSDRStrictRejectsUnknownType(t *testing.T) {
	r := NewReader(sdrMemberUnknownType(), context.New())
	r.SetStrictSDR(true)
	if _, err := r.SDR(); !errors.Is(err, ErrUnsupportedSDRType) {
		t.Fatalf("got %v, want ErrUnsupportedSDRType", err)
	}
}
