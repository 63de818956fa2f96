/*
NAME
  reader.go

DESCRIPTION
  reader.go implements the typed primitive reader (component B): it
  extracts integers, reals, VDC values, points, colours, strings and
  structured data records from a command's argument buffer, using the
  precisions and modes recorded in a context.Context to decide the
  size and numeric interpretation of every field.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package binary implements the typed primitive reader over a CGM
// command's argument buffer. Every read is context-dependent: the
// caller supplies the context.Context that earlier descriptor
// elements in the same stream have mutated, and the size or numeric
// interpretation of a field follows from it.
//
// Reader never logs and never aborts a whole stream; every method
// returns an error local to the current command, following the error
// domains in the driver package's contract. Sentinel errors such as
// ErrShortRead are meant to be wrapped by the caller with the field
// that was being read, then turned into a diag.Diagnostic by the
// decode package.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
)

// Errors returned by Reader methods. Each is meant to be wrapped with
// field-specific context by the caller, following the
// fmt.Errorf("...: %w", err) convention used throughout this module.
var (
	ErrShortRead            = errors.New("binary: read past end of argument buffer")
	ErrUnsupportedPrecision = errors.New("binary: unsupported precision")
	ErrUnsupportedSDRType   = errors.New("binary: unsupported structured data record type")
)

// Reader reads typed CGM primitives from an immutable argument buffer.
// It carries two cursors: byte position and a sub-byte bit position,
// the latter used only while consuming packed sub-byte colour-index
// precisions (1, 2 or 4 bits). Every byte-oriented read first aligns
// past a partial sub-byte position.
type Reader struct {
	buf []byte
	pos int
	bit int // 0..7: bits already consumed from buf[pos], MSB-first.

	ctx *context.Context

	// strictSDR controls SDR's behaviour on an unrecognised member type
	// tag: false (the default) stops reading the record at that member
	// and returns what was read so far, with no error; true reports
	// ErrUnsupportedSDRType. Set via SetStrictSDR.
	strictSDR bool
}

// NewReader returns a Reader over buf, bound to ctx for every
// context-dependent read.
func NewReader(buf []byte, ctx *context.Context) *Reader {
	return &Reader{buf: buf, ctx: ctx}
}

// SetStrictSDR configures whether SDR rejects an unrecognised member
// type tag outright (true) or best-effort stops at that member and
// keeps what it already decoded (false, the default). Callers that
// want a caller-wide policy set this once per Reader, mirroring
// driver.Options.StrictSDR.
func (r *Reader) SetStrictSDR(strict bool) {
	r.strictSDR = strict
}

// Remaining reports the number of whole bytes left to read, not
// counting a partially consumed sub-byte position.
func (r *Reader) Remaining() int {
	n := len(r.buf) - r.pos
	if n < 0 {
		return 0
	}
	return n
}

// AlignWord advances past a partially consumed sub-byte position, the
// alignment step every byte-oriented read performs automatically
// before consuming.
func (r *Reader) AlignWord() {
	if r.bit != 0 {
		r.bit = 0
		r.pos++
	}
}

// Byte reads one unsigned octet, aligning past any partial sub-byte
// position first.
func (r *Reader) Byte() (byte, error) {
	r.AlignWord()
	if r.pos >= len(r.buf) {
		return 0, ErrShortRead
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) bytesN(n int) ([]byte, error) {
	r.AlignWord()
	if r.pos+n > len(r.buf) {
		return nil, ErrShortRead
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Signed reads a big-endian two's-complement signed integer of the
// requested bit width (8, 16, 24 or 32). A 24-bit value sign-extends
// from bit 23.
func (r *Reader) Signed(width int) (int32, error) {
	switch width {
	case 8:
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		return int32(int8(b)), nil
	case 16:
		b, err := r.bytesN(2)
		if err != nil {
			return 0, err
		}
		return int32(int16(binary.BigEndian.Uint16(b))), nil
	case 24:
		b, err := r.bytesN(3)
		if err != nil {
			return 0, err
		}
		v := int32(b[0])<<16 | int32(b[1])<<8 | int32(b[2])
		if v&0x800000 != 0 {
			v -= 0x1000000
		}
		return v, nil
	case 32:
		b, err := r.bytesN(4)
		if err != nil {
			return 0, err
		}
		return int32(binary.BigEndian.Uint32(b)), nil
	default:
		return 0, fmt.Errorf("signed width %d: %w", width, ErrUnsupportedPrecision)
	}
}

// uintSubByte reads an n-bit (1, 2 or 4) unsigned field packed within
// the current byte, MSB-first, without crossing a byte boundary.
func (r *Reader) uintSubByte(n int) (uint32, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrShortRead
	}
	shift := 8 - n - r.bit
	mask := byte((1 << uint(n)) - 1)
	v := (r.buf[r.pos] >> uint(shift)) & mask
	r.bit += n
	if r.bit%8 == 0 {
		r.bit = 0
		r.pos++
	}
	return uint32(v), nil
}

// Uint reads an unsigned integer at the given precision (1, 2, 4, 8,
// 16, 24 or 32 bits). Precisions 1, 2 and 4 pack within a byte
// starting from the MSB; 16 and above advance by whole bytes.
func (r *Reader) Uint(precision int) (uint32, error) {
	switch precision {
	case 1, 2, 4:
		return r.uintSubByte(precision)
	case 8:
		b, err := r.Byte()
		return uint32(b), err
	case 16:
		b, err := r.bytesN(2)
		if err != nil {
			return 0, err
		}
		return uint32(binary.BigEndian.Uint16(b)), nil
	case 24:
		b, err := r.bytesN(3)
		if err != nil {
			return 0, err
		}
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
	case 32:
		b, err := r.bytesN(4)
		if err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint32(b), nil
	default:
		return 0, fmt.Errorf("uint precision %d: %w", precision, ErrUnsupportedPrecision)
	}
}

// Int reads a signed integer at the context's current integer
// precision.
func (r *Reader) Int() (int32, error) {
	return r.Signed(r.ctx.IntegerPrecision)
}

// Index reads a signed integer at the context's current index
// precision.
func (r *Reader) Index() (int32, error) {
	return r.Signed(r.ctx.IndexPrecision)
}

// Name reads a signed integer at the context's current name
// precision.
func (r *Reader) Name() (int32, error) {
	return r.Signed(r.ctx.NamePrecision)
}

// Enum reads a signed 16-bit enumeration value.
func (r *Reader) Enum() (int16, error) {
	v, err := r.Signed(16)
	return int16(v), err
}

// Bool reads an enumeration value and reports whether it is nonzero.
func (r *Reader) Bool() (bool, error) {
	v, err := r.Enum()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// String reads a length-prefixed byte string. The first octet is the
// length; the value 255 means the next two octets carry a 16-bit
// length, and if bit 16 of that word is set, two further octets
// extend the length to 32 bits.
func (r *Reader) String() (string, error) {
	n, err := r.stringLength()
	if err != nil {
		return "", err
	}
	b, err := r.bytesN(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Reader) stringLength() (int, error) {
	b, err := r.Byte()
	if err != nil {
		return 0, err
	}
	if b != 255 {
		return int(b), nil
	}
	ext, err := r.Uint(16)
	if err != nil {
		return 0, err
	}
	if ext&(1<<15) == 0 {
		return int(ext), nil
	}
	// Bit 16 (the sign/extension bit of the 16-bit word) set: two more
	// octets extend the length to 32 bits.
	ext2, err := r.Uint(16)
	if err != nil {
		return 0, err
	}
	length := (int(ext&^(1<<15)) << 16) | int(ext2)
	return length, nil
}

// Real reads a real number per the context's current real precision.
func (r *Reader) Real() (float64, error) {
	return r.realAt(r.ctx.RealPrecision)
}

func (r *Reader) realAt(p context.RealPrecision) (float64, error) {
	switch p {
	case context.FixedPoint32:
		whole, err := r.Signed(16)
		if err != nil {
			return 0, err
		}
		frac, err := r.Uint(16)
		if err != nil {
			return 0, err
		}
		return float64(whole) + float64(frac)/65536.0, nil
	case context.FixedPoint64:
		whole, err := r.Signed(32)
		if err != nil {
			return 0, err
		}
		frac, err := r.Uint(32)
		if err != nil {
			return 0, err
		}
		return float64(whole) + float64(frac)/4294967296.0, nil
	case context.FloatingPoint32:
		b, err := r.bytesN(4)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case context.FloatingPoint64:
		b, err := r.bytesN(8)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	default:
		return 0, fmt.Errorf("real precision %v: %w", p, ErrUnsupportedPrecision)
	}
}

// VDC reads a virtual device coordinate: a real (at the context's VDC
// real precision) when the context's VDC type is real, otherwise a
// signed integer at the context's VDC integer precision.
func (r *Reader) VDC() (float64, error) {
	if r.ctx.VDCType == context.VDCReal {
		return r.realAt(r.ctx.VDCRealPrecision)
	}
	switch r.ctx.VDCIntegerPrecision {
	case 16, 24, 32:
		v, err := r.Signed(r.ctx.VDCIntegerPrecision)
		return float64(v), err
	default:
		return 0, fmt.Errorf("VDC integer precision %d: %w", r.ctx.VDCIntegerPrecision, ErrUnsupportedPrecision)
	}
}

// Point reads two VDCs as a Point.
func (r *Reader) Point() (command.Point, error) {
	x, err := r.VDC()
	if err != nil {
		return command.Point{}, fmt.Errorf("point.x: %w", err)
	}
	y, err := r.VDC()
	if err != nil {
		return command.Point{}, fmt.Errorf("point.y: %w", err)
	}
	return command.Point{X: x, Y: y}, nil
}

// vdcByteWidth reports the byte width of a single VDC value under the
// current context, used by PointList to decide how many whole points
// remain in the buffer.
func (r *Reader) vdcByteWidth() int {
	if r.ctx.VDCType == context.VDCReal {
		switch r.ctx.VDCRealPrecision {
		case context.FixedPoint64, context.FloatingPoint64:
			return 8
		default:
			return 4
		}
	}
	switch r.ctx.VDCIntegerPrecision {
	case 24:
		return 3
	case 32:
		return 4
	default:
		return 2
	}
}

// PointList greedily consumes the remaining bytes of the argument
// buffer as a sequence of points. A trailing fragment shorter than one
// point is discarded; the second return value reports whether that
// happened so the caller can record an unsupported diagnostic.
func (r *Reader) PointList() ([]command.Point, bool, error) {
	pointSize := 2 * r.vdcByteWidth()
	if pointSize <= 0 {
		return nil, false, nil
	}
	n := r.Remaining() / pointSize
	discarded := r.Remaining()%pointSize != 0
	points := make([]command.Point, 0, n)
	for i := 0; i < n; i++ {
		p, err := r.Point()
		if err != nil {
			return points, discarded, fmt.Errorf("point %d of point list: %w", i, err)
		}
		points = append(points, p)
	}
	if discarded {
		// Consume the short fragment so the cursor lands at the end of
		// the buffer, per the "advance cursor to end" failure contract.
		r.pos = len(r.buf)
		r.bit = 0
	}
	return points, discarded, nil
}

// ColourIndex reads an index at the given local precision, or at the
// context's colour index precision when localPrecision is 0.
func (r *Reader) ColourIndex(localPrecision int) (uint32, error) {
	p := localPrecision
	if p == 0 {
		p = r.ctx.ColourIndexPrecision
	}
	return r.Uint(p)
}

// DirectColour reads a direct colour's components per the context's
// colour model. RGB maps straight through (after clamp/scale); CMYK is
// converted to RGB via the standard (1-c)(1-k), (1-m)(1-k), (1-y)(1-k)
// mapping on a 0-255 scale. Any other declared model is read for size
// (so the argument cursor stays synchronised) but yields the cyan
// sentinel and reports unsupported via the second return value.
func (r *Reader) DirectColour() (command.RGB, bool, error) {
	precision := r.ctx.ColourPrecision
	switch r.ctx.ColourModel {
	case context.ColourModelRGB, context.ColourModelRGBRelated:
		rv, err := r.Uint(precision)
		if err != nil {
			return command.RGB{}, false, fmt.Errorf("direct colour r: %w", err)
		}
		gv, err := r.Uint(precision)
		if err != nil {
			return command.RGB{}, false, fmt.Errorf("direct colour g: %w", err)
		}
		bv, err := r.Uint(precision)
		if err != nil {
			return command.RGB{}, false, fmt.Errorf("direct colour b: %w", err)
		}
		cr, cg, cb := r.ctx.ClampRGB(int(rv), int(gv), int(bv))
		return command.RGB{
			R: context.ScaleToDisplay(cr, r.ctx.ColourValueExtentMin.R, r.ctx.ColourValueExtentMax.R),
			G: context.ScaleToDisplay(cg, r.ctx.ColourValueExtentMin.G, r.ctx.ColourValueExtentMax.G),
			B: context.ScaleToDisplay(cb, r.ctx.ColourValueExtentMin.B, r.ctx.ColourValueExtentMax.B),
		}, false, nil
	case context.ColourModelCMYK:
		cv, err := r.Uint(precision)
		if err != nil {
			return command.RGB{}, false, fmt.Errorf("direct colour c: %w", err)
		}
		mv, err := r.Uint(precision)
		if err != nil {
			return command.RGB{}, false, fmt.Errorf("direct colour m: %w", err)
		}
		yv, err := r.Uint(precision)
		if err != nil {
			return command.RGB{}, false, fmt.Errorf("direct colour y: %w", err)
		}
		kv, err := r.Uint(precision)
		if err != nil {
			return command.RGB{}, false, fmt.Errorf("direct colour k: %w", err)
		}
		c, m, y, k := float64(cv)/255, float64(mv)/255, float64(yv)/255, float64(kv)/255
		return command.RGB{
			R: uint8(255 * (1 - c) * (1 - k)),
			G: uint8(255 * (1 - m) * (1 - k)),
			B: uint8(255 * (1 - y) * (1 - k)),
		}, false, nil
	default:
		for i := 0; i < 3; i++ {
			if _, err := r.Uint(precision); err != nil {
				return command.RGB{}, true, fmt.Errorf("discarding unsupported colour model component %d: %w", i, err)
			}
		}
		return command.RGB{R: 0, G: 255, B: 255}, true, nil
	}
}

// Colour reads an indexed or direct colour per the context's colour
// selection mode.
func (r *Reader) Colour(localIndexPrecision int) (command.Colour, bool, error) {
	if r.ctx.ColourSelectionMode == context.ColourDirect {
		rgb, unsupported, err := r.DirectColour()
		if err != nil {
			return command.Colour{}, unsupported, err
		}
		return command.Colour{RGB: rgb}, unsupported, nil
	}
	idx, err := r.ColourIndex(localIndexPrecision)
	if err != nil {
		return command.Colour{}, false, err
	}
	return command.Colour{Indexed: true, Index: idx}, false, nil
}

// SizeSpecification reads a VDC when mode is abs, or a real when mode
// is scaled.
func (r *Reader) SizeSpecification(mode context.SpecMode) (float64, error) {
	if mode == context.SpecAbs {
		return r.VDC()
	}
	return r.Real()
}

// ViewportCoord reads one viewport coordinate: an integer device
// coordinate in mm/physical-device modes, or a real fractional
// coordinate in fraction mode.
func (r *Reader) ViewportCoord() (command.ViewportCoord, error) {
	switch r.ctx.DeviceViewportMode {
	case context.ViewportMM, context.ViewportPhysicalDeviceCoord:
		v, err := r.Int()
		if err != nil {
			return command.ViewportCoord{}, err
		}
		return command.ViewportCoord{Int: int64(v)}, nil
	default:
		v, err := r.Real()
		if err != nil {
			return command.ViewportCoord{}, err
		}
		return command.ViewportCoord{IsReal: true, Real: v}, nil
	}
}

// ViewportPoint reads a pair of viewport coordinates.
func (r *Reader) ViewportPoint() (command.ViewportPoint, error) {
	x, err := r.ViewportCoord()
	if err != nil {
		return command.ViewportPoint{}, fmt.Errorf("viewport point.x: %w", err)
	}
	y, err := r.ViewportCoord()
	if err != nil {
		return command.ViewportPoint{}, fmt.Errorf("viewport point.y: %w", err)
	}
	return command.ViewportPoint{X: x, Y: y}, nil
}

// SDR reads one Structured Data Record: a sequence of members, each a
// (type, count) pair followed by count values of that type. A member
// of SDRTypeSDR recurses. Reading stops, without error, once the
// argument buffer is exhausted, since an SDR always occupies the rest
// of its containing command's arguments.
func (r *Reader) SDR() (command.SDR, error) {
	var sdr command.SDR
	for r.Remaining() > 0 {
		m, err := r.sdrMember()
		if err != nil {
			if !r.strictSDR && errors.Is(err, ErrUnsupportedSDRType) {
				return sdr, nil
			}
			return sdr, err
		}
		sdr.Members = append(sdr.Members, m)
	}
	return sdr, nil
}

func (r *Reader) sdrMember() (command.SDRMember, error) {
	typeTag, err := r.Index()
	if err != nil {
		return command.SDRMember{}, fmt.Errorf("sdr member type: %w", err)
	}
	count, err := r.Index()
	if err != nil {
		return command.SDRMember{}, fmt.Errorf("sdr member count: %w", err)
	}
	typ := command.SDRType(typeTag)
	values := make([]interface{}, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := r.sdrValue(typ)
		if err != nil {
			return command.SDRMember{Type: typ, Count: int(count), Values: values}, fmt.Errorf("sdr member value %d of type %v: %w", i, typ, err)
		}
		values = append(values, v)
	}
	return command.SDRMember{Type: typ, Count: int(count), Values: values}, nil
}

func (r *Reader) sdrValue(typ command.SDRType) (interface{}, error) {
	switch typ {
	case command.SDRTypeSDR:
		return r.SDR()
	case command.SDRTypeColourIndex:
		return r.ColourIndex(0)
	case command.SDRTypeColourDirect:
		rgb, _, err := r.DirectColour()
		return rgb, err
	case command.SDRTypeName:
		v, err := r.Name()
		return int64(v), err
	case command.SDRTypeEnum:
		return r.Enum()
	case command.SDRTypeInteger, command.SDRTypeIndex:
		v, err := r.Int()
		return int64(v), err
	case command.SDRTypeInt8:
		v, err := r.Signed(8)
		return int64(v), err
	case command.SDRTypeInt16:
		v, err := r.Signed(16)
		return int64(v), err
	case command.SDRTypeInt32:
		v, err := r.Signed(32)
		return int64(v), err
	case command.SDRTypeReal, command.SDRTypeVDC:
		return r.Real()
	case command.SDRTypeString, command.SDRTypeStringFixed, command.SDRTypeCharacterList:
		return r.String()
	case command.SDRTypeVC:
		return r.ViewportCoord()
	case command.SDRTypeColourComponent, command.SDRTypeUInt8:
		v, err := r.Uint(8)
		return uint8(v), err
	case command.SDRTypeUInt16:
		v, err := r.Uint(16)
		return uint16(v), err
	case command.SDRTypeUInt32:
		return r.Uint(32)
	case command.SDRTypeBitStream:
		b, err := r.Byte()
		return []byte{b}, err
	default:
		return nil, fmt.Errorf("type %v: %w", typ, ErrUnsupportedSDRType)
	}
}
