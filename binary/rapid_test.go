package binary

import (
	"encoding/binary"
	"testing"

	"pgregory.net/rapid"

	"github.com/ausocean/cgm/context"
)

// writeSigned writes v as a big-endian two's-complement value of the
// given bit width, mirroring what a binary CGM producer would emit.
func writeSigned(v int32, width int) []byte {
	switch width {
	case 8:
		return []byte{byte(v)}
	case 16:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(v))
		return b
	case 24:
		b := make([]byte, 3)
		u := uint32(v) & 0xFFFFFF
		b[0] = byte(u >> 16)
		b[1] = byte(u >> 8)
		b[2] = byte(u)
		return b
	case 32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(v))
		return b
	default:
		panic("bad width")
	}
}

// TestSignedRoundTrips checks the quantified property that for every
// supported integer precision, a value written as a two's-complement
// integer of that width reads back unchanged.
func TestSignedRoundTrips(t *testing.T) {
	widths := []int{8, 16, 24, 32}
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.SampledFrom(widths).Draw(t, "width")
		var lo, hi int64
		switch width {
		case 8:
			lo, hi = -128, 127
		case 16:
			lo, hi = -32768, 32767
		case 24:
			lo, hi = -8388608, 8388607
		case 32:
			lo, hi = -2147483648, 2147483647
		}
		v := int32(rapid.Int64Range(lo, hi).Draw(t, "value"))

		r := NewReader(writeSigned(v, width), context.New())
		got, err := r.Signed(width)
		if err != nil {
			t.Fatalf("Signed(%d): %v", width, err)
		}
		if got != v {
			t.Fatalf("width %d: wrote %d, read back %d", width, v, got)
		}
	})
}

// TestUintSubByteRoundTrips checks that a run of sub-byte fields packed
// MSB-first into a byte reads back in the order they were packed, for
// every precision that evenly divides a byte.
func TestUintSubByteRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.SampledFrom([]int{1, 2, 4}).Draw(t, "width")
		n := 8 / width
		values := make([]uint32, n)
		var b byte
		for i := 0; i < n; i++ {
			v := uint32(rapid.IntRange(0, (1<<uint(width))-1).Draw(t, "value"))
			values[i] = v
			b |= byte(v) << uint(8-width*(i+1))
		}
		r := NewReader([]byte{b}, context.New())
		for i, want := range values {
			got, err := r.Uint(width)
			if err != nil {
				t.Fatalf("field %d: %v", i, err)
			}
			if got != want {
				t.Fatalf("field %d: got %d, want %d", i, got, want)
			}
		}
	})
}

// TestIntUsesCurrentPrecision checks that Int always reads at whatever
// integer precision is current on the context, independent of any
// other field.
func TestIntUsesCurrentPrecision(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.SampledFrom([]int{8, 16, 24, 32}).Draw(t, "width")
		var lo, hi int64
		switch width {
		case 8:
			lo, hi = -128, 127
		case 16:
			lo, hi = -32768, 32767
		case 24:
			lo, hi = -8388608, 8388607
		case 32:
			lo, hi = -2147483648, 2147483647
		}
		v := int32(rapid.Int64Range(lo, hi).Draw(t, "value"))

		ctx := context.New()
		ctx.IntegerPrecision = width
		r := NewReader(writeSigned(v, width), ctx)
		got, err := r.Int()
		if err != nil {
			t.Fatalf("Int() at precision %d: %v", width, err)
		}
		if got != v {
			t.Fatalf("precision %d: wrote %d, read back %d", width, v, got)
		}
	})
}

// TestDirectColourRGBScaleBounded drives DirectColour's RGB clamp and
// ScaleToDisplay path under the default colour value extent with
// arbitrary 8-bit components, checking that the read succeeds and the
// RGB model is reported as supported.
func TestDirectColourRGBScaleBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rVal := rapid.IntRange(0, 255).Draw(t, "r")
		gVal := rapid.IntRange(0, 255).Draw(t, "g")
		bVal := rapid.IntRange(0, 255).Draw(t, "b")

		ctx := context.New()
		r := NewReader([]byte{byte(rVal), byte(gVal), byte(bVal)}, ctx)
		c, unsupported, err := r.DirectColour()
		if err != nil {
			t.Fatal(err)
		}
		if unsupported {
			t.Fatal("RGB model must be supported")
		}
		// uint8 fields are bounded by their type; this exercises the
		// scale arithmetic for panics/overflow rather than re-asserting
		// the type system.
		_ = c
	})
}
