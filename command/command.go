/*
NAME
  command.go

DESCRIPTION
  command.go defines the tagged union of decoded CGM elements. Each
  Command carries a (Class, ID) pair identifying the ISO 8632-3
  element it was decoded from, plus a Kind discriminating which of the
  typed field sets below is populated.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package command defines the decoded representation of CGM elements:
// a tagged union (Command) over every (class, id) pair this decoder
// recognises, plus the point, colour and structured-data-record types
// those elements carry.
package command

import "fmt"

// Kind discriminates which field set of a Command is populated.
type Kind int

const (
	KindUnknown Kind = iota

	// Class 0: delimiter elements.
	KindNoOp
	KindBeginMetafile
	KindEndMetafile
	KindBeginPicture
	KindBeginPictureBody
	KindEndPicture
	KindBeginFigure
	KindEndFigure
	KindBeginApplicationStructure
	KindBeginApplicationStructureBody
	KindEndApplicationStructure
	KindMessage0 // producer-specific class-0 id-23 message; see decode/class0.go.

	// Class 1: metafile descriptor elements.
	KindMetafileVersion
	KindMetafileDescription
	KindVDCType
	KindIntegerPrecision
	KindRealPrecision
	KindIndexPrecision
	KindColourPrecision
	KindColourIndexPrecision
	KindMaximumColourIndex
	KindColourValueExtent
	KindMetafileElementList
	KindFontList
	KindCharacterSetList
	KindCharacterCodingAnnouncer
	KindMaximumVDCExtent
	KindFontProperties

	// Class 2: picture descriptor elements.
	KindScalingMode
	KindColourSelectionMode
	KindLineWidthSpecificationMode
	KindMarkerSizeSpecificationMode
	KindEdgeWidthSpecificationMode
	KindVDCExtent
	KindBackgroundColour
	KindLineAndEdgeTypeDefinition

	// Class 3: control elements.
	KindVDCIntegerPrecision
	KindVDCRealPrecision
	KindTransparency
	KindClipIndicator
	KindLineTypeContinuation

	// Class 4: graphical primitives.
	KindPolyline
	KindDisjointPolyline
	KindText
	KindRestrictedText
	KindPolygon
	KindCircle
	KindCircularArcCentre
	KindEllipse
	KindEllipticalArc
	KindPolybezier

	// Class 5: attribute elements.
	KindLineType
	KindLineWidth
	KindLineColour
	KindTextFontIndex
	KindCharacterExpansionFactor
	KindTextColour
	KindCharacterHeight
	KindCharacterOrientation
	KindTextAlignment
	KindCharacterSetIndex
	KindAlternateCharacterSetIndex
	KindInteriorStyle
	KindFillColour
	KindEdgeType
	KindEdgeWidth
	KindEdgeColour
	KindEdgeVisibility
	KindColourTable
	KindLineCap
	KindLineJoin
	KindRestrictedTextType
	KindEdgeCap
	KindEdgeJoin
	KindGeometricPatternDefinition

	// Class 7: external elements.
	KindMessage

	// Class 9: application structure descriptor elements.
	KindApplicationStructureAttribute
)

// Command is a decoded CGM element. Exactly one of the typed field
// groups below is meaningful, selected by Kind; the rest are zero
// values. This mirrors a tagged union without the overhead of an
// interface-per-element hierarchy: decoders populate a Command value
// directly and the emitter switches on Kind.
type Command struct {
	Class int
	ID    int
	Kind  Kind

	// Raw holds the as-decoded argument bytes for KindUnknown
	// commands (escape class, segment class, reserved classes, and
	// any recognised-class id this decoder does not implement).
	Raw []byte

	Str    string // filenames, descriptions, text content, messages.
	Int    int64  // single integer-valued fields (precisions, version, indices...).
	Int2   int64  // second integer field, when a command carries two.
	Bool   bool   // final/notfinal, visibility flags, clip indicator...
	Real   float64
	Point  Point
	Point2 Point
	Point3 Point
	Point4 Point
	Point5 Point
	Points []Point

	Colour  Colour
	Colours []Colour

	Mode int // interpretation depends on Kind: a SpecMode, ColourSelectionMode, etc.

	ElementListEntries []ElementListEntry
	ColourTableEntries []RGB
	SDR                SDR
	PatternCells       []RGB

	FontNames       []string
	CharSetNames    []string
	CharacterSetIDs []int

	// StartIndex holds the starting index of a colour table's run of
	// entries; the real-precision and VDC-real-precision setters also
	// store their second bit-width field here.
	StartIndex int
}

func (c Command) String() string {
	if c.Kind == KindUnknown {
		return fmt.Sprintf("Unknown(class=%d, id=%d)", c.Class, c.ID)
	}
	return fmt.Sprintf("Command(class=%d, id=%d, kind=%d)", c.Class, c.ID, c.Kind)
}

// Point is a 2D point in virtual device coordinates. Both integer and
// real VDCs are stored as float64; which representation a value
// originated from, and which it is re-emitted as, is governed by the
// Context in force at read or write time, not by the Point itself.
type Point struct {
	X, Y float64
}

// RGB is a direct colour already clamped and scaled to an 8-bit
// display range, per context.ScaleToDisplay.
type RGB struct {
	R, G, B uint8
}

// Colour is either a palette index or a direct (scaled) RGB value.
type Colour struct {
	Indexed bool
	Index   uint32
	RGB     RGB
}

// ElementListEntry is one (index, class) pair of a METAFILE ELEMENT
// LIST command. A sentinel index of -1 names a documented profile
// rather than a specific element.
type ElementListEntry struct {
	Index int
	Class int
}

// Profile names the documented (-1, k) sentinel pairs a metafile
// element list may declare in place of an explicit element.
type Profile int

const (
	ProfileNone Profile = iota
	ProfileDrawingSet
	ProfileDrawingPlus
	ProfileVersion2
	ProfileExtDPrim
	ProfileVersion2GKSM
	ProfileVersion3
	ProfileVersion4
)

// ProfileFor maps the documented sentinel second-values to their named
// profile, returning ProfileNone for any other pair.
func ProfileFor(index, k int) Profile {
	if index != -1 {
		return ProfileNone
	}
	switch k {
	case 1:
		return ProfileDrawingSet
	case 2:
		return ProfileDrawingPlus
	case 3:
		return ProfileVersion2
	case 4:
		return ProfileExtDPrim
	case 5:
		return ProfileVersion2GKSM
	case 6:
		return ProfileVersion3
	case 7:
		return ProfileVersion4
	default:
		return ProfileNone
	}
}

func (p Profile) String() string {
	switch p {
	case ProfileDrawingSet:
		return "DRAWINGSET"
	case ProfileDrawingPlus:
		return "DRAWINGPLUS"
	case ProfileVersion2:
		return "VERSION2"
	case ProfileExtDPrim:
		return "EXTDPRIM"
	case ProfileVersion2GKSM:
		return "VERSION2GKSM"
	case ProfileVersion3:
		return "VERSION3"
	case ProfileVersion4:
		return "VERSION4"
	default:
		return ""
	}
}
