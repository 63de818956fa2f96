/*
NAME
  enums.go

DESCRIPTION
  enums.go defines the small closed enumerations carried by class-5
  attribute elements (line/edge cap and join styles) and the
  structured-data-record member type tags, each with the String()
  method the emitter uses to print the ISO keyword rather than the
  raw integer.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package command

// CapIndicator is the line/edge cap style (ISO 8632-3 cap indicator
// enumeration, shared between LINE CAP and EDGE CAP).
type CapIndicator int16

const (
	CapUnspecified CapIndicator = iota + 1
	CapButt
	CapRound
	CapProjectingSquare
	CapTriangle
)

func (c CapIndicator) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapProjectingSquare:
		return "projsquare"
	case CapTriangle:
		return "triangle"
	default:
		return "unspecified"
	}
}

// JoinIndicator is the line/edge join style (shared between LINE JOIN
// and EDGE JOIN).
type JoinIndicator int16

const (
	JoinUnspecified JoinIndicator = iota + 1
	JoinMitre
	JoinRound
	JoinBevel
)

func (j JoinIndicator) String() string {
	switch j {
	case JoinMitre:
		return "mitre"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "unspecified"
	}
}

// InteriorStyleKind is the fill interior style enumeration.
type InteriorStyleKind int16

const (
	InteriorHollow InteriorStyleKind = iota
	InteriorSolid
	InteriorPattern
	InteriorHatch
	InteriorEmpty
	InteriorGeometricPattern
	InteriorInterpolated
)

func (s InteriorStyleKind) String() string {
	switch s {
	case InteriorSolid:
		return "solid"
	case InteriorPattern:
		return "pat"
	case InteriorHatch:
		return "hatch"
	case InteriorEmpty:
		return "empty"
	case InteriorGeometricPattern:
		return "geopat"
	case InteriorInterpolated:
		return "interpolated"
	default:
		return "hollow"
	}
}

// SDRType is the canonical Structured Data Record member type tag.
// ISO 8632-3 Annex lists two historical numberings for these tags;
// this enumeration follows the later, non-conflicting one.
type SDRType int

const (
	SDRTypeSDR SDRType = iota + 1
	SDRTypeColourIndex
	SDRTypeColourDirect
	SDRTypeName
	SDRTypeEnum
	SDRTypeInteger
	sdrTypeReserved7
	SDRTypeInt8
	SDRTypeInt16
	SDRTypeInt32
	SDRTypeIndex
	SDRTypeReal
	SDRTypeString
	SDRTypeStringFixed
	SDRTypeVC
	SDRTypeVDC
	SDRTypeColourComponent
	SDRTypeUInt8
	SDRTypeUInt32
	SDRTypeBitStream
	SDRTypeCharacterList
	SDRTypeUInt16
)

func (t SDRType) String() string {
	switch t {
	case SDRTypeSDR:
		return "SDR"
	case SDRTypeColourIndex:
		return "CI"
	case SDRTypeColourDirect:
		return "CD"
	case SDRTypeName:
		return "N"
	case SDRTypeEnum:
		return "E"
	case SDRTypeInteger:
		return "I"
	case SDRTypeInt8:
		return "IF8"
	case SDRTypeInt16:
		return "IF16"
	case SDRTypeInt32:
		return "IF32"
	case SDRTypeIndex:
		return "IX"
	case SDRTypeReal:
		return "R"
	case SDRTypeString:
		return "S"
	case SDRTypeStringFixed:
		return "SF"
	case SDRTypeVC:
		return "VC"
	case SDRTypeVDC:
		return "VDC"
	case SDRTypeColourComponent:
		return "CCO"
	case SDRTypeUInt8:
		return "UI8"
	case SDRTypeUInt32:
		return "UI32"
	case SDRTypeBitStream:
		return "BS"
	case SDRTypeCharacterList:
		return "CL"
	case SDRTypeUInt16:
		return "UI16"
	default:
		return "RESERVED"
	}
}

// SDR is a Structured Data Record: an ordered sequence of typed,
// counted members. A member's Values holds Count entries whose
// concrete Go type depends on Type:
//
//	SDRTypeSDR             SDR
//	SDRTypeColourIndex     uint32
//	SDRTypeColourDirect    RGB
//	SDRTypeName, SDRTypeInteger, SDRTypeIndex, SDRTypeInt8/16/32  int64
//	SDRTypeEnum            int16
//	SDRTypeReal, SDRTypeVDC  float64
//	SDRTypeString, SDRTypeStringFixed, SDRTypeCharacterList  string
//	SDRTypeVC              ViewportCoord
//	SDRTypeColourComponent, SDRTypeUInt8  uint8
//	SDRTypeUInt16          uint16
//	SDRTypeUInt32          uint32
//	SDRTypeBitStream       []byte
type SDR struct {
	Members []SDRMember
}

// SDRMember is one (type, count, values) entry of a Structured Data
// Record.
type SDRMember struct {
	Type   SDRType
	Count  int
	Values []interface{}
}

// ViewportCoord is a single viewport coordinate value: either an
// integer device coordinate (mm / physical device modes) or a real
// fractional coordinate (fraction mode), per the context's device
// viewport specification mode at read time.
type ViewportCoord struct {
	IsReal bool
	Int    int64
	Real   float64
}

// ViewportPoint is a pair of viewport coordinates.
type ViewportPoint struct {
	X, Y ViewportCoord
}
