/*
NAME
  context.go

DESCRIPTION
  context.go defines the mutable decoding/encoding context threaded
  through the CGM binary reader, decoder dispatch and clear-text
  emitter. Every precision, colour model and specification mode field
  a later element in the stream depends on lives here.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package context provides the mutable CGM decoding context: the set
// of precisions, colour model and specification-mode fields that the
// meaning of a binary CGM stream's fields depend upon. A Context is
// created once per decode, reset to its defaults at each BEGIN
// METAFILE, and mutated in place by descriptor-class decoders; the primitive reader and the clear-text emitter both read
// from the same Context so that a field declared earlier in the
// stream governs every later primitive of the same kind.
package context

// RealPrecision identifies the bit layout used to encode a real number
// (either a REAL PRECISION or a VDC REAL PRECISION declaration).
type RealPrecision int

const (
	FixedPoint32 RealPrecision = iota
	FixedPoint64
	FloatingPoint32
	FloatingPoint64
)

func (p RealPrecision) String() string {
	switch p {
	case FixedPoint32:
		return "fixed32"
	case FixedPoint64:
		return "fixed64"
	case FloatingPoint32:
		return "floating32"
	case FloatingPoint64:
		return "floating64"
	default:
		return "unknown"
	}
}

// VDCType selects whether virtual device coordinates are parsed as
// integers or as reals.
type VDCType int

const (
	VDCInteger VDCType = iota
	VDCReal
)

func (t VDCType) String() string {
	if t == VDCReal {
		return "real"
	}
	return "integer"
}

// ColourModel is the colour space that direct colour components are
// expressed in.
type ColourModel int

const (
	ColourModelRGB ColourModel = iota
	ColourModelCMYK
	ColourModelCIELab
	ColourModelCIELuv
	ColourModelRGBRelated
)

func (m ColourModel) String() string {
	switch m {
	case ColourModelRGB:
		return "rgb"
	case ColourModelCMYK:
		return "cmyk"
	case ColourModelCIELab:
		return "cielab"
	case ColourModelCIELuv:
		return "cieluv"
	case ColourModelRGBRelated:
		return "rgb_related"
	default:
		return "unknown"
	}
}

// ColourSelectionMode selects between palette-indexed and direct
// (component-valued) colours.
type ColourSelectionMode int

const (
	ColourIndexed ColourSelectionMode = iota
	ColourDirect
)

func (m ColourSelectionMode) String() string {
	if m == ColourDirect {
		return "direct"
	}
	return "indexed"
}

// SpecMode is the specification mode for a width or size quantity:
// either an absolute VDC value or a value scaled by an abstract real
// factor.
type SpecMode int

const (
	SpecAbs SpecMode = iota
	SpecScaled
)

func (m SpecMode) String() string {
	if m == SpecScaled {
		return "scaled"
	}
	return "abs"
}

// ViewportMode is the device viewport specification mode.
type ViewportMode int

const (
	ViewportFraction ViewportMode = iota
	ViewportMM
	ViewportPhysicalDeviceCoord
)

func (m ViewportMode) String() string {
	switch m {
	case ViewportMM:
		return "mm"
	case ViewportPhysicalDeviceCoord:
		return "phydevcoord"
	default:
		return "fraction"
	}
}

// RestrictedTextType is one of the six restricted text variants.
type RestrictedTextType int

const (
	RestrictedTextBasic RestrictedTextType = iota
	RestrictedTextBoxedCap
	RestrictedTextBoxedAll
	RestrictedTextIsotropicCap
	RestrictedTextIsotropicAll
	RestrictedTextJustified
)

func (t RestrictedTextType) String() string {
	switch t {
	case RestrictedTextBoxedCap:
		return "boxedcap"
	case RestrictedTextBoxedAll:
		return "boxedall"
	case RestrictedTextIsotropicCap:
		return "isotropiccap"
	case RestrictedTextIsotropicAll:
		return "isotropicall"
	case RestrictedTextJustified:
		return "justified"
	default:
		return "basic"
	}
}

// RGBExtent is a component triple used to clamp and scale direct
// colour values into an 8-bit display range.
type RGBExtent struct {
	R, G, B int
}

// Context holds every piece of state that the interpretation of a
// subsequent binary CGM field depends on. It is not safe for
// concurrent use: a host decoding multiple streams concurrently must
// give each its own Context, following the single-threaded model in
// which each decode owns one Context.
type Context struct {
	IntegerPrecision     int
	IndexPrecision       int
	NamePrecision        int
	ColourPrecision      int
	ColourIndexPrecision int

	RealPrecision    RealPrecision
	VDCRealPrecision RealPrecision

	VDCType             VDCType
	VDCIntegerPrecision int

	ColourModel         ColourModel
	ColourSelectionMode ColourSelectionMode

	ColourValueExtentMin RGBExtent
	ColourValueExtentMax RGBExtent

	LineWidthMode      SpecMode
	MarkerSizeMode     SpecMode
	EdgeWidthMode      SpecMode
	InteriorStyleMode  SpecMode
	DeviceViewportMode ViewportMode

	RestrictedTextType RestrictedTextType
}

// New returns a Context initialised to the ISO 8632-3 defaults.
func New() *Context {
	c := &Context{}
	c.ResetDefaults()
	return c
}

// ResetDefaults restores every field to the value it must hold at the
// start of a new metafile. Descriptor elements mutate fields away from
// these defaults monotonically within a metafile; ResetDefaults is the
// only operation that moves a field backwards.
func (c *Context) ResetDefaults() {
	c.IntegerPrecision = 16
	c.IndexPrecision = 16
	c.NamePrecision = 16
	c.ColourPrecision = 8
	c.ColourIndexPrecision = 8

	c.RealPrecision = FixedPoint32
	c.VDCRealPrecision = FixedPoint32

	c.VDCType = VDCInteger
	c.VDCIntegerPrecision = 16

	c.ColourModel = ColourModelRGB
	c.ColourSelectionMode = ColourIndexed

	c.ColourValueExtentMin = RGBExtent{0, 0, 0}
	c.ColourValueExtentMax = RGBExtent{255, 255, 255}

	c.LineWidthMode = SpecAbs
	c.MarkerSizeMode = SpecAbs
	c.EdgeWidthMode = SpecAbs
	c.InteriorStyleMode = SpecAbs
	c.DeviceViewportMode = ViewportFraction

	c.RestrictedTextType = RestrictedTextBasic
}

// ClampRGB clamps a raw direct-colour component triple into the
// declared colour value extent, per component.
func (c *Context) ClampRGB(r, g, b int) (int, int, int) {
	clamp := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return clamp(r, c.ColourValueExtentMin.R, c.ColourValueExtentMax.R),
		clamp(g, c.ColourValueExtentMin.G, c.ColourValueExtentMax.G),
		clamp(b, c.ColourValueExtentMin.B, c.ColourValueExtentMax.B)
}

// RealPrecisionFor maps a (representation, mantissa-width,
// exponent-width) tuple - as carried by the real-precision and VDC
// real-precision setter elements - to the RealPrecision it selects:
// fixed (16,16)->fixed32, fixed (32,32)->fixed64, floating
// (9,23)->floating32, floating (12,52)->floating64. Any other tuple is
// not one of the four supported precisions.
func RealPrecisionFor(representation, mantissa, exponent int) (RealPrecision, bool) {
	switch {
	case representation == 1 && mantissa == 16 && exponent == 16:
		return FixedPoint32, true
	case representation == 1 && mantissa == 32 && exponent == 32:
		return FixedPoint64, true
	case representation == 0 && mantissa == 9 && exponent == 23:
		return FloatingPoint32, true
	case representation == 0 && mantissa == 12 && exponent == 52:
		return FloatingPoint64, true
	default:
		return 0, false
	}
}

// ScaleToDisplay scales a clamped component into the 0-255 display
// range given the extent's min/max for that component. A degenerate
// extent (min == max) scales to 0, following the source reader's
// convention rather than dividing by zero.
func ScaleToDisplay(v, min, max int) uint8 {
	if min == max {
		return 0
	}
	return uint8(255 * (v - min) / (max - min))
}
