package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(1, 1, decodeMetafileVersion)
	register(1, 2, decodeMetafileDescription)
	register(1, 3, decodeVDCType)
	register(1, 4, decodeIntegerPrecision)
	register(1, 5, decodeRealPrecision)
	register(1, 6, decodeIndexPrecision)
	register(1, 7, decodeColourPrecision)
	register(1, 8, decodeColourIndexPrecision)
	register(1, 9, decodeMaximumColourIndex)
	register(1, 10, decodeColourValueExtent)
	register(1, 11, decodeMetafileElementList)
	register(1, 13, decodeFontList)
	register(1, 14, decodeCharacterSetList)
	register(1, 15, decodeCharacterCodingAnnouncer)
	register(1, 17, decodeMaximumVDCExtent)
	register(1, 21, decodeFontProperties)
}

func decodeMetafileVersion(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindMetafileVersion), "version", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindMetafileVersion, Int: int64(v)}
}

func decodeMetafileDescription(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	s, err := rd.String()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindMetafileDescription), "description", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindMetafileDescription, Str: s}
}

// decodeVDCType toggles context.Context.VDCType, affecting how every
// subsequent VDC and point is parsed.
func decodeVDCType(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindVDCType), "vdc type", err)
		return command.Command{Class: class, ID: id, Kind: command.KindVDCType}
	}
	typ := context.VDCInteger
	if v == 1 {
		typ = context.VDCReal
	} else if v != 0 {
		unsupported(diags, class, id, kindLabel(command.KindVDCType), "vdc type enum value %d not recognised, defaulting to integer", v)
	}
	ctx.VDCType = typ
	return command.Command{Class: class, ID: id, Kind: command.KindVDCType, Mode: int(typ)}
}

// decodeIntegerPrecisionLike implements the shared rule for the four
// integer-precision-like setters: read one signed integer at the
// current integer precision, then overwrite the target field.
func decodeIntegerPrecisionLike(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int, kind command.Kind, set func(v int)) command.Command {
	v, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, kindLabel(kind), "precision value", err)
		return command.Command{Class: class, ID: id, Kind: kind}
	}
	set(int(v))
	return command.Command{Class: class, ID: id, Kind: kind, Int: int64(v)}
}

func decodeIntegerPrecision(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIntegerPrecisionLike(rd, ctx, diags, class, id, command.KindIntegerPrecision, func(v int) { ctx.IntegerPrecision = v })
}

func decodeIndexPrecision(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIntegerPrecisionLike(rd, ctx, diags, class, id, command.KindIndexPrecision, func(v int) { ctx.IndexPrecision = v })
}

func decodeColourPrecision(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIntegerPrecisionLike(rd, ctx, diags, class, id, command.KindColourPrecision, func(v int) { ctx.ColourPrecision = v })
}

func decodeColourIndexPrecision(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIntegerPrecisionLike(rd, ctx, diags, class, id, command.KindColourIndexPrecision, func(v int) { ctx.ColourIndexPrecision = v })
}

// decodeRealPrecision implements the real-precision-setter special
// rule: a representation enum (0=floating, 1=fixed) plus two bit-width
// fields select one of the four supported context.RealPrecision
// values; any other tuple is unsupported and leaves the field
// unchanged.
func decodeRealPrecision(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	repr, mantissa, exponent, ok := readRealPrecisionTuple(rd, diags, class, id, kindLabel(command.KindRealPrecision))
	cmd := command.Command{Class: class, ID: id, Kind: command.KindRealPrecision, Int: int64(repr), Int2: int64(mantissa), StartIndex: exponent}
	if !ok {
		return cmd
	}
	p, ok := context.RealPrecisionFor(repr, mantissa, exponent)
	if !ok {
		unsupported(diags, class, id, kindLabel(command.KindRealPrecision), "unsupported (representation=%d, mantissa=%d, exponent=%d) tuple", repr, mantissa, exponent)
		return cmd
	}
	ctx.RealPrecision = p
	return cmd
}

func readRealPrecisionTuple(rd *binary.Reader, diags *diag.List, class, id int, label string) (repr, a, b int, ok bool) {
	reprV, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "representation", err)
		return 0, 0, 0, false
	}
	aV, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, label, "first bit-width field", err)
		return 0, 0, 0, false
	}
	bV, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, label, "second bit-width field", err)
		return 0, 0, 0, false
	}
	return int(reprV), int(aV), int(bV), true
}

func decodeMaximumColourIndex(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.ColourIndex(0)
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindMaximumColourIndex), "maximum colour index", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindMaximumColourIndex, Int: int64(v)}
}

// decodeColourValueExtent stores the min/max RGB triples used by the
// primitive reader's direct-colour clamp/scale step. Under a direct
// colour model other than RGB, the three component pairs are read as
// plain integers per ISO 8632-3, but only the RGB interpretation is
// used for scaling (any other model already yields the unsupported
// cyan sentinel in binary.Reader.DirectColour).
func decodeColourValueExtent(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindColourValueExtent)
	read3 := func(field string) (context.RGBExtent, bool) {
		a, err := rd.Int()
		if err != nil {
			fatal(diags, class, id, label, field+" component 1", err)
			return context.RGBExtent{}, false
		}
		b, err := rd.Int()
		if err != nil {
			fatal(diags, class, id, label, field+" component 2", err)
			return context.RGBExtent{}, false
		}
		c, err := rd.Int()
		if err != nil {
			fatal(diags, class, id, label, field+" component 3", err)
			return context.RGBExtent{}, false
		}
		return context.RGBExtent{R: int(a), G: int(b), B: int(c)}, true
	}
	min, ok := read3("minimum")
	if !ok {
		return command.Command{Class: class, ID: id, Kind: command.KindColourValueExtent}
	}
	max, ok := read3("maximum")
	if !ok {
		return command.Command{Class: class, ID: id, Kind: command.KindColourValueExtent}
	}
	ctx.ColourValueExtentMin = min
	ctx.ColourValueExtentMax = max
	return command.Command{
		Class: class, ID: id, Kind: command.KindColourValueExtent,
		Point:  command.Point{X: float64(min.R), Y: float64(min.G)},
		Point2: command.Point{X: float64(max.R), Y: float64(max.G)},
		Int:    int64(min.B), Int2: int64(max.B),
	}
}

// decodeMetafileElementList reads a count, then 2*count index-precision
// integers forming (index, class) pairs; the sentinel pair (-1, k)
// names a documented profile rather than a specific element.
func decodeMetafileElementList(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindMetafileElementList)
	count, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, label, "element count", err)
		return command.Command{Class: class, ID: id, Kind: command.KindMetafileElementList}
	}
	entries := make([]command.ElementListEntry, 0, count)
	for i := 0; i < int(count); i++ {
		idx, err := rd.Index()
		if err != nil {
			fatal(diags, class, id, label, "element index", err)
			break
		}
		k, err := rd.Index()
		if err != nil {
			fatal(diags, class, id, label, "element class", err)
			break
		}
		entries = append(entries, command.ElementListEntry{Index: int(idx), Class: int(k)})
	}
	return command.Command{Class: class, ID: id, Kind: command.KindMetafileElementList, ElementListEntries: entries}
}

func decodeFontList(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindFontList)
	var names []string
	for rd.Remaining() > 0 {
		s, err := rd.String()
		if err != nil {
			fatal(diags, class, id, label, "font name", err)
			break
		}
		names = append(names, s)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindFontList, FontNames: names}
}

func decodeCharacterSetList(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindCharacterSetList)
	var ids []int
	var names []string
	for rd.Remaining() > 0 {
		typ, err := rd.Enum()
		if err != nil {
			fatal(diags, class, id, label, "character set type", err)
			break
		}
		s, err := rd.String()
		if err != nil {
			fatal(diags, class, id, label, "character set designation", err)
			break
		}
		ids = append(ids, int(typ))
		names = append(names, s)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindCharacterSetList, CharacterSetIDs: ids, CharSetNames: names}
}

func decodeCharacterCodingAnnouncer(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindCharacterCodingAnnouncer), "character coding announcer", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindCharacterCodingAnnouncer, Int: int64(v)}
}

func decodeMaximumVDCExtent(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindMaximumVDCExtent)
	p1, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "first corner", err)
		return command.Command{Class: class, ID: id, Kind: command.KindMaximumVDCExtent}
	}
	p2, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "second corner", err)
		return command.Command{Class: class, ID: id, Kind: command.KindMaximumVDCExtent, Point: p1}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindMaximumVDCExtent, Point: p1, Point2: p2}
}

// decodeFontProperties reads a single structured data record whose
// members are (name-index, SDR) property pairs, per spec's SDR
// reading rule.
func decodeFontProperties(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	sdr, err := rd.SDR()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindFontProperties), "font properties record", err)
		return command.Command{Class: class, ID: id, Kind: command.KindFontProperties}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindFontProperties, SDR: sdr}
}
