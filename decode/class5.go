package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(5, 2, decodeLineType)
	register(5, 3, decodeLineWidth)
	register(5, 4, decodeLineColour)
	register(5, 10, decodeTextFontIndex)
	register(5, 12, decodeCharacterExpansionFactor)
	register(5, 14, decodeTextColour)
	register(5, 15, decodeCharacterHeight)
	register(5, 16, decodeCharacterOrientation)
	register(5, 18, decodeTextAlignment)
	register(5, 19, decodeCharacterSetIndex)
	register(5, 20, decodeAlternateCharacterSetIndex)
	register(5, 22, decodeInteriorStyle)
	register(5, 23, decodeFillColour)
	register(5, 27, decodeEdgeType)
	register(5, 28, decodeEdgeWidth)
	register(5, 29, decodeEdgeColour)
	register(5, 30, decodeEdgeVisibility)
	register(5, 34, decodeColourTable)
	register(5, 37, decodeLineCap)
	register(5, 38, decodeLineJoin)
	register(5, 42, decodeRestrictedTextType)
	register(5, 44, decodeEdgeCap)
	register(5, 45, decodeEdgeJoin)
	register(5, 46, decodeGeometricPatternDefinition)
}

func decodeIndexValued(rd *binary.Reader, diags *diag.List, class, id int, kind command.Kind) command.Command {
	v, err := rd.Index()
	if err != nil {
		fatal(diags, class, id, kindLabel(kind), "index", err)
	}
	return command.Command{Class: class, ID: id, Kind: kind, Int: int64(v)}
}

func decodeColourValued(rd *binary.Reader, diags *diag.List, class, id int, kind command.Kind) command.Command {
	c, unsup, err := rd.Colour(0)
	if err != nil {
		fatal(diags, class, id, kindLabel(kind), "colour", err)
		return command.Command{Class: class, ID: id, Kind: kind}
	}
	if unsup {
		unsupported(diags, class, id, kindLabel(kind), "direct colour model not supported")
	}
	return command.Command{Class: class, ID: id, Kind: kind, Colour: c}
}

func decodeSizeValued(rd *binary.Reader, diags *diag.List, class, id int, kind command.Kind, mode context.SpecMode) command.Command {
	v, err := rd.SizeSpecification(mode)
	if err != nil {
		fatal(diags, class, id, kindLabel(kind), "size", err)
		return command.Command{Class: class, ID: id, Kind: kind}
	}
	return command.Command{Class: class, ID: id, Kind: kind, Real: v}
}

func decodeEnumValued(rd *binary.Reader, diags *diag.List, class, id int, kind command.Kind) command.Command {
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, kindLabel(kind), "enumeration", err)
	}
	return command.Command{Class: class, ID: id, Kind: kind, Int: int64(v)}
}

func decodeLineType(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIndexValued(rd, diags, class, id, command.KindLineType)
}

func decodeLineWidth(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeSizeValued(rd, diags, class, id, command.KindLineWidth, ctx.LineWidthMode)
}

func decodeLineColour(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeColourValued(rd, diags, class, id, command.KindLineColour)
}

func decodeTextFontIndex(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIndexValued(rd, diags, class, id, command.KindTextFontIndex)
}

func decodeCharacterExpansionFactor(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Real()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindCharacterExpansionFactor), "expansion factor", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindCharacterExpansionFactor, Real: v}
}

func decodeTextColour(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeColourValued(rd, diags, class, id, command.KindTextColour)
}

func decodeCharacterHeight(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.VDC()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindCharacterHeight), "character height", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindCharacterHeight, Real: v}
}

func decodeCharacterOrientation(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindCharacterOrientation)
	up, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "up vector", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCharacterOrientation}
	}
	base, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "base vector", err)
		return command.Command{Class: class, ID: id, Kind: command.KindCharacterOrientation, Point: up}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindCharacterOrientation, Point: up, Point2: base}
}

func decodeTextAlignment(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindTextAlignment)
	h, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "horizontal alignment", err)
		return command.Command{Class: class, ID: id, Kind: command.KindTextAlignment}
	}
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "vertical alignment", err)
		return command.Command{Class: class, ID: id, Kind: command.KindTextAlignment, Int: int64(h)}
	}
	contH, err := rd.Real()
	if err != nil {
		fatal(diags, class, id, label, "continuous horizontal alignment", err)
		return command.Command{Class: class, ID: id, Kind: command.KindTextAlignment, Int: int64(h), Int2: int64(v)}
	}
	contV, err := rd.Real()
	if err != nil {
		fatal(diags, class, id, label, "continuous vertical alignment", err)
		return command.Command{Class: class, ID: id, Kind: command.KindTextAlignment, Int: int64(h), Int2: int64(v), Point: command.Point{X: contH}}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindTextAlignment, Int: int64(h), Int2: int64(v), Point: command.Point{X: contH, Y: contV}}
}

func decodeCharacterSetIndex(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIndexValued(rd, diags, class, id, command.KindCharacterSetIndex)
}

func decodeAlternateCharacterSetIndex(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIndexValued(rd, diags, class, id, command.KindAlternateCharacterSetIndex)
}

// decodeInteriorStyle reads the fill interior style enumeration and
// records the raw value in Mode; the context is not changed.
func decodeInteriorStyle(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindInteriorStyle), "interior style", err)
		return command.Command{Class: class, ID: id, Kind: command.KindInteriorStyle}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindInteriorStyle, Mode: int(v)}
}

func decodeFillColour(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeColourValued(rd, diags, class, id, command.KindFillColour)
}

func decodeEdgeType(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeIndexValued(rd, diags, class, id, command.KindEdgeType)
}

func decodeEdgeWidth(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeSizeValued(rd, diags, class, id, command.KindEdgeWidth, ctx.EdgeWidthMode)
}

func decodeEdgeColour(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeColourValued(rd, diags, class, id, command.KindEdgeColour)
}

func decodeEdgeVisibility(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	b, err := rd.Bool()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindEdgeVisibility), "edge visibility", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindEdgeVisibility, Bool: b}
}

// decodeColourTable reads a starting index and a greedy run of direct
// RGB triples (one colour-precision octet triple per entry, under the
// context's colour precision, regardless of the picture's colour
// selection mode - a colour table always supplies direct values).
func decodeColourTable(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindColourTable)
	start, err := rd.ColourIndex(0)
	if err != nil {
		fatal(diags, class, id, label, "starting colour index", err)
		return command.Command{Class: class, ID: id, Kind: command.KindColourTable}
	}
	var entries []command.RGB
	for rd.Remaining() >= 3 {
		rgb, unsup, err := rd.DirectColour()
		if err != nil {
			fatal(diags, class, id, label, "colour table entry", err)
			break
		}
		if unsup {
			unsupported(diags, class, id, label, "colour model %v not supported for colour table entries", ctx.ColourModel)
		}
		entries = append(entries, rgb)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindColourTable, StartIndex: int(start), ColourTableEntries: entries}
}

func decodeLineCap(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindLineCap)
	cap, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "line cap", err)
		return command.Command{Class: class, ID: id, Kind: command.KindLineCap}
	}
	join, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "line join", err)
		return command.Command{Class: class, ID: id, Kind: command.KindLineCap, Int: int64(cap)}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindLineCap, Int: int64(cap), Int2: int64(join)}
}

func decodeLineJoin(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeEnumValued(rd, diags, class, id, command.KindLineJoin)
}

func decodeRestrictedTextType(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindRestrictedTextType), "restricted text type", err)
		return command.Command{Class: class, ID: id, Kind: command.KindRestrictedTextType}
	}
	if int(v) >= 0 && int(v) <= 5 {
		ctx.RestrictedTextType = context.RestrictedTextType(v)
	} else {
		unsupported(diags, class, id, kindLabel(command.KindRestrictedTextType), "restricted text type %d not in {0..5}", v)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindRestrictedTextType, Int: int64(v)}
}

func decodeEdgeCap(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeEnumValued(rd, diags, class, id, command.KindEdgeCap)
}

func decodeEdgeJoin(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return decodeEnumValued(rd, diags, class, id, command.KindEdgeJoin)
}

// decodeGeometricPatternDefinition reads a pattern index, the pattern
// cell dimensions as a point pair, then a greedy run of direct RGB
// cell values, mirroring the colour table's entry format.
func decodeGeometricPatternDefinition(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindGeometricPatternDefinition)
	idx, err := rd.Index()
	if err != nil {
		fatal(diags, class, id, label, "pattern index", err)
		return command.Command{Class: class, ID: id, Kind: command.KindGeometricPatternDefinition}
	}
	nx, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, label, "pattern size in x", err)
		return command.Command{Class: class, ID: id, Kind: command.KindGeometricPatternDefinition, Int: int64(idx)}
	}
	ny, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, label, "pattern size in y", err)
		return command.Command{Class: class, ID: id, Kind: command.KindGeometricPatternDefinition, Int: int64(idx), Point: command.Point{X: float64(nx)}}
	}
	var cells []command.RGB
	for rd.Remaining() >= 3 {
		rgb, unsup, err := rd.DirectColour()
		if err != nil {
			fatal(diags, class, id, label, "pattern cell", err)
			break
		}
		if unsup {
			unsupported(diags, class, id, label, "colour model %v not supported for pattern cells", ctx.ColourModel)
		}
		cells = append(cells, rgb)
	}
	return command.Command{
		Class: class, ID: id, Kind: command.KindGeometricPatternDefinition,
		Int: int64(idx), Point: command.Point{X: float64(nx), Y: float64(ny)}, PatternCells: cells,
	}
}
