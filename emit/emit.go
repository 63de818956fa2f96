/*
NAME
  emit.go

DESCRIPTION
  emit.go is the clear-text emitter's main dispatch: it walks a
  decoded command sequence in order, mutating the same style of
  context.Context the decoder mutated, and writes each command's
  ISO/IEC 8632-4:1999 clear-text form through the soft-wrap writer.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package emit

import (
	"fmt"
	"strings"

	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

// Emit formats commands in order as clear-text CGM, threading ctx
// through exactly the same mutations the decoder applied (derived
// from each Command's stored fields, not by re-reading binary), so
// that a VDC-type toggle or colour-selection-mode change partway
// through the sequence affects formatting of everything after it.
// ctx should be freshly reset (context.New()) to mirror the state the
// decoder began with.
func Emit(commands []command.Command, ctx *context.Context) ([]byte, *diag.List) {
	w := newWriter()
	var diags diag.List
	for _, cmd := range commands {
		emitOne(w, ctx, &diags, cmd)
	}
	return w.Bytes(), &diags
}

func emitOne(w *writer, ctx *context.Context, diags *diag.List, cmd command.Command) {
	if cmd.Kind == command.KindUnknown {
		w.writeLine(fmt.Sprintf("%% unsupported element class=%d id=%d, %d raw bytes %%", cmd.Class, cmd.ID, len(cmd.Raw)))
		return
	}

	line, ok := format(w, ctx, diags, cmd)
	if !ok {
		w.writeLine(fmt.Sprintf("%% could not format element class=%d id=%d %%", cmd.Class, cmd.ID))
		return
	}
	if cmd.Class == 4 {
		line = "  " + line
	}
	w.writeLine(line)
}

// format builds one command's clear-text line and applies any Context
// mutation the corresponding descriptor element performs. It returns
// ok=false only for a value that cannot be formatted at all (none of
// the cases here produce that today; reserved for future emitter
// errors per the three-domain error model).
func format(w *writer, ctx *context.Context, diags *diag.List, cmd command.Command) (string, bool) {
	switch cmd.Kind {

	// Class 0: delimiters.
	case command.KindNoOp:
		return "NOOP;", true
	case command.KindBeginMetafile:
		ctx.ResetDefaults()
		return fmt.Sprintf("BEGMF %s;", formatString(cmd.Str)), true
	case command.KindEndMetafile:
		return "ENDMF;", true
	case command.KindBeginPicture:
		return fmt.Sprintf("BEGPIC %s;", formatString(cmd.Str)), true
	case command.KindBeginPictureBody:
		return "BEGPICBODY;", true
	case command.KindEndPicture:
		return "ENDPIC;", true
	case command.KindBeginFigure:
		return "BEGFIGURE;", true
	case command.KindEndFigure:
		return "ENDFIGURE;", true
	case command.KindBeginApplicationStructure:
		typ := ""
		if len(cmd.FontNames) > 0 {
			typ = cmd.FontNames[0]
		}
		return fmt.Sprintf("BEGAPS %s %s;", formatString(typ), formatString(cmd.Str)), true
	case command.KindBeginApplicationStructureBody:
		return "BEGAPSBODY;", true
	case command.KindEndApplicationStructure:
		return "ENDAPS;", true
	case command.KindMessage0:
		return fmt.Sprintf("MESSAGE %s %s;", formatEnum(cmd.Int, "noaction", "action"), formatString(cmd.Str)), true

	// Class 1: metafile descriptor.
	case command.KindMetafileVersion:
		return fmt.Sprintf("mfversion %d;", cmd.Int), true
	case command.KindMetafileDescription:
		return fmt.Sprintf("mfdesc %s;", formatString(cmd.Str)), true
	case command.KindVDCType:
		return formatVDCType(ctx, diags, cmd)
	case command.KindIntegerPrecision:
		ctx.IntegerPrecision = int(cmd.Int)
		return formatPrecisionSetter("integerprec", int(cmd.Int)), true
	case command.KindIndexPrecision:
		ctx.IndexPrecision = int(cmd.Int)
		return formatPrecisionSetter("indexprec", int(cmd.Int)), true
	case command.KindColourPrecision:
		ctx.ColourPrecision = int(cmd.Int)
		return formatPrecisionSetter("colrprec", int(cmd.Int)), true
	case command.KindColourIndexPrecision:
		ctx.ColourIndexPrecision = int(cmd.Int)
		return formatPrecisionSetter("colrindexprec", int(cmd.Int)), true
	case command.KindRealPrecision:
		if p, ok := context.RealPrecisionFor(int(cmd.Int), int(cmd.Int2), cmd.StartIndex); ok {
			ctx.RealPrecision = p
		}
		return fmt.Sprintf("realprec %d,%d,%d;", cmd.Int, cmd.Int2, cmd.StartIndex), true
	case command.KindMaximumColourIndex:
		return fmt.Sprintf("maxcolrindex %d;", cmd.Int), true
	case command.KindColourValueExtent:
		ctx.ColourValueExtentMin = context.RGBExtent{R: int(cmd.Point.X), G: int(cmd.Point.Y), B: int(cmd.Int)}
		ctx.ColourValueExtentMax = context.RGBExtent{R: int(cmd.Point2.X), G: int(cmd.Point2.Y), B: int(cmd.Int2)}
		return fmt.Sprintf("colrvalueext %d %d %d %d %d %d;",
			int(cmd.Point.X), int(cmd.Point.Y), cmd.Int,
			int(cmd.Point2.X), int(cmd.Point2.Y), cmd.Int2), true
	case command.KindMetafileElementList:
		return formatMetafileElementList(cmd), true
	case command.KindFontList:
		return fmt.Sprintf("fontlist %s;", formatStringList(cmd.FontNames)), true
	case command.KindCharacterSetList:
		return formatCharacterSetList(cmd), true
	case command.KindCharacterCodingAnnouncer:
		return fmt.Sprintf("charcoding %d;", cmd.Int), true
	case command.KindMaximumVDCExtent:
		return fmt.Sprintf("maxvdcext %s %s;", formatPoint(ctx, cmd.Point), formatPoint(ctx, cmd.Point2)), true
	case command.KindFontProperties:
		return fmt.Sprintf("fontprop %s;", formatSDR(cmd.SDR)), true

	// Class 2: picture descriptor.
	case command.KindScalingMode:
		return fmt.Sprintf("scalemode %s %s;", formatEnum(int64(cmd.Mode), "abstract", "metric"), formatReal(cmd.Real)), true
	case command.KindColourSelectionMode:
		ctx.ColourSelectionMode = context.ColourSelectionMode(cmd.Mode)
		return fmt.Sprintf("colrmode %v;", ctx.ColourSelectionMode), true
	case command.KindLineWidthSpecificationMode:
		ctx.LineWidthMode = context.SpecMode(cmd.Mode)
		return fmt.Sprintf("linewidthmode %v;", ctx.LineWidthMode), true
	case command.KindMarkerSizeSpecificationMode:
		ctx.MarkerSizeMode = context.SpecMode(cmd.Mode)
		return fmt.Sprintf("markersizemode %v;", ctx.MarkerSizeMode), true
	case command.KindEdgeWidthSpecificationMode:
		ctx.EdgeWidthMode = context.SpecMode(cmd.Mode)
		return fmt.Sprintf("edgewidthmode %v;", ctx.EdgeWidthMode), true
	case command.KindVDCExtent:
		return fmt.Sprintf("vdcext %s %s;", formatPoint(ctx, cmd.Point), formatPoint(ctx, cmd.Point2)), true
	case command.KindBackgroundColour:
		return fmt.Sprintf("backcolr %d %d %d;", cmd.Colour.RGB.R, cmd.Colour.RGB.G, cmd.Colour.RGB.B), true
	case command.KindLineAndEdgeTypeDefinition:
		return formatLineEdgeTypeDefinition(cmd), true

	// Class 3: control.
	case command.KindVDCIntegerPrecision:
		if cmd.Int == 16 || cmd.Int == 24 || cmd.Int == 32 {
			ctx.VDCIntegerPrecision = int(cmd.Int)
		}
		return formatPrecisionSetter("vdcintegerprec", int(cmd.Int)), true
	case command.KindVDCRealPrecision:
		if p, ok := context.RealPrecisionFor(int(cmd.Int), int(cmd.Int2), cmd.StartIndex); ok {
			ctx.VDCRealPrecision = p
		}
		return fmt.Sprintf("vdcrealprec %d,%d,%d;", cmd.Int, cmd.Int2, cmd.StartIndex), true
	case command.KindTransparency:
		return fmt.Sprintf("transparency %s;", formatBool(cmd.Bool)), true
	case command.KindClipIndicator:
		return fmt.Sprintf("clip %s;", formatBool(cmd.Bool)), true
	case command.KindLineTypeContinuation:
		return fmt.Sprintf("linetypecont %d;", cmd.Int), true

	// Class 4: graphical primitives.
	case command.KindPolyline:
		return fmt.Sprintf("LINE %s;", formatPoints(ctx, cmd.Points)), true
	case command.KindDisjointPolyline:
		return fmt.Sprintf("DISJTLINE %s;", formatPoints(ctx, cmd.Points)), true
	case command.KindText:
		final := "final"
		if !cmd.Bool {
			final = "notfinal"
		}
		return fmt.Sprintf("TEXT %s %s %s;", formatPoint(ctx, cmd.Point), final, formatString(cmd.Str)), true
	case command.KindRestrictedText:
		final := "final"
		if !cmd.Bool {
			final = "notfinal"
		}
		return fmt.Sprintf("RESTRTEXT %s %s %s %s %s;",
			formatVDC(ctx, cmd.Point2.X), formatVDC(ctx, cmd.Point2.Y),
			formatPoint(ctx, cmd.Point), final, formatString(cmd.Str)), true
	case command.KindPolygon:
		return fmt.Sprintf("POLYGON %s;", formatPoints(ctx, cmd.Points)), true
	case command.KindCircle:
		return fmt.Sprintf("CIRCLE %s %s;", formatPoint(ctx, cmd.Point), formatVDC(ctx, cmd.Real)), true
	case command.KindCircularArcCentre:
		return fmt.Sprintf("ARCCTR %s %s %s %s;",
			formatPoint(ctx, cmd.Point), formatPoint(ctx, cmd.Point2), formatPoint(ctx, cmd.Point3), formatVDC(ctx, cmd.Real)), true
	case command.KindEllipse:
		return fmt.Sprintf("ELLIPSE %s %s %s;", formatPoint(ctx, cmd.Point), formatPoint(ctx, cmd.Point2), formatPoint(ctx, cmd.Point3)), true
	case command.KindEllipticalArc:
		return fmt.Sprintf("ELLIPARC %s %s %s %s %s;",
			formatPoint(ctx, cmd.Point), formatPoint(ctx, cmd.Point2), formatPoint(ctx, cmd.Point3),
			formatPoint(ctx, cmd.Point4), formatPoint(ctx, cmd.Point5)), true
	case command.KindPolybezier:
		return fmt.Sprintf("POLYBEZIER %s;", formatPoints(ctx, cmd.Points)), true

	// Class 5: attributes.
	case command.KindLineType:
		return fmt.Sprintf("linetype %d;", cmd.Int), true
	case command.KindLineWidth:
		return fmt.Sprintf("linewidth %s;", formatSizeSpec(ctx, ctx.LineWidthMode, cmd.Real)), true
	case command.KindLineColour:
		return fmt.Sprintf("linecolr %s;", formatColour(ctx, cmd.Colour)), true
	case command.KindTextFontIndex:
		return fmt.Sprintf("textfontindex %d;", cmd.Int), true
	case command.KindCharacterExpansionFactor:
		return fmt.Sprintf("charexpfac %s;", formatReal(cmd.Real)), true
	case command.KindTextColour:
		return fmt.Sprintf("textcolr %s;", formatColour(ctx, cmd.Colour)), true
	case command.KindCharacterHeight:
		return fmt.Sprintf("charheight %s;", formatVDC(ctx, cmd.Real)), true
	case command.KindCharacterOrientation:
		return fmt.Sprintf("charori %s %s;", formatPoint(ctx, cmd.Point), formatPoint(ctx, cmd.Point2)), true
	case command.KindTextAlignment:
		return fmt.Sprintf("textalign %d %d %s %s;", cmd.Int, cmd.Int2, formatReal(cmd.Point.X), formatReal(cmd.Point.Y)), true
	case command.KindCharacterSetIndex:
		return fmt.Sprintf("charsetindex %d;", cmd.Int), true
	case command.KindAlternateCharacterSetIndex:
		return fmt.Sprintf("altcharsetindex %d;", cmd.Int), true
	case command.KindInteriorStyle:
		return fmt.Sprintf("intstyle %v;", command.InteriorStyleKind(cmd.Mode)), true
	case command.KindFillColour:
		return fmt.Sprintf("fillcolr %s;", formatColour(ctx, cmd.Colour)), true
	case command.KindEdgeType:
		return fmt.Sprintf("edgetype %d;", cmd.Int), true
	case command.KindEdgeWidth:
		return fmt.Sprintf("edgewidth %s;", formatSizeSpec(ctx, ctx.EdgeWidthMode, cmd.Real)), true
	case command.KindEdgeColour:
		return fmt.Sprintf("edgecolr %s;", formatColour(ctx, cmd.Colour)), true
	case command.KindEdgeVisibility:
		return fmt.Sprintf("edgevis %s;", formatBool(cmd.Bool)), true
	case command.KindColourTable:
		return formatColourTable(cmd), true
	case command.KindLineCap:
		return fmt.Sprintf("linecap %v %v;", command.CapIndicator(cmd.Int), command.JoinIndicator(cmd.Int2)), true
	case command.KindLineJoin:
		return fmt.Sprintf("linejoin %v;", command.JoinIndicator(cmd.Int)), true
	case command.KindRestrictedTextType:
		return fmt.Sprintf("restrtexttype %v;", context.RestrictedTextType(cmd.Int)), true
	case command.KindEdgeCap:
		return fmt.Sprintf("edgecap %v;", command.CapIndicator(cmd.Int)), true
	case command.KindEdgeJoin:
		return fmt.Sprintf("edgejoin %v;", command.JoinIndicator(cmd.Int)), true
	case command.KindGeometricPatternDefinition:
		return formatGeometricPatternDefinition(cmd), true

	// Class 7: external elements.
	case command.KindMessage:
		return fmt.Sprintf("MESSAGE %s %s;", formatEnum(cmd.Int, "noaction", "action"), formatString(cmd.Str)), true

	// Class 9: application structure descriptor.
	case command.KindApplicationStructureAttribute:
		return fmt.Sprintf("appstructattr %s %s;", formatString(cmd.Str), formatSDR(cmd.SDR)), true
	}
	return "", false
}

// formatVDCType implements the documented intentional divergence: a
// binary vdc_type=integer declaration is re-emitted as "vdctype real;"
// with a companion info diagnostic, and ctx is mutated to real so
// subsequent VDC formatting in this emission follows the divergence
// rather than the source's own declared type.
func formatVDCType(ctx *context.Context, diags *diag.List, cmd command.Command) (string, bool) {
	if context.VDCType(cmd.Mode) == context.VDCInteger {
		diags.Info(cmd.Class, cmd.ID, "vdctype", "binary stream declared vdctype integer; re-emitted as vdctype real to work around downstream clear-text consumer defects")
	}
	ctx.VDCType = context.VDCReal
	return "vdctype real;", true
}

// formatPrecisionSetter reproduces the literal clear-text shape of the
// integer-precision-like setters: the signed min/max representable at
// the given bit width, followed by a bit-count comment.
func formatPrecisionSetter(keyword string, bits int) string {
	if bits <= 0 || bits > 63 {
		return fmt.Sprintf("%s 0, 0 %% %d binary bits %%;", keyword, bits)
	}
	max := int64(1)<<uint(bits-1) - 1
	min := -max - 1
	return fmt.Sprintf("%s %d, %d %% %d binary bits %%;", keyword, min, max, bits)
}

func formatSizeSpec(ctx *context.Context, mode context.SpecMode, v float64) string {
	if mode == context.SpecAbs {
		return formatVDC(ctx, v)
	}
	return formatReal(v)
}

func formatStringList(ss []string) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = formatString(s)
	}
	return strings.Join(parts, " ")
}

func formatMetafileElementList(cmd command.Command) string {
	parts := make([]string, 0, len(cmd.ElementListEntries))
	for _, e := range cmd.ElementListEntries {
		if p := command.ProfileFor(e.Index, e.Class); p != command.ProfileNone {
			parts = append(parts, p.String())
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %d", e.Index, e.Class))
	}
	return fmt.Sprintf("mfelemlist %s;", strings.Join(parts, " "))
}

func formatCharacterSetList(cmd command.Command) string {
	parts := make([]string, 0, len(cmd.CharacterSetIDs))
	for i, id := range cmd.CharacterSetIDs {
		name := ""
		if i < len(cmd.CharSetNames) {
			name = cmd.CharSetNames[i]
		}
		parts = append(parts, fmt.Sprintf("%d %s", id, formatString(name)))
	}
	return fmt.Sprintf("charsetlist %s;", strings.Join(parts, " "))
}

func formatLineEdgeTypeDefinition(cmd command.Command) string {
	parts := make([]string, len(cmd.Points))
	for i, p := range cmd.Points {
		parts[i] = formatReal(p.X)
	}
	return fmt.Sprintf("lineedgetypedef %d %s;", cmd.Int, strings.Join(parts, " "))
}

func formatColourTable(cmd command.Command) string {
	parts := make([]string, len(cmd.ColourTableEntries))
	for i, c := range cmd.ColourTableEntries {
		parts[i] = fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
	}
	return fmt.Sprintf("colrtable %d %s;", cmd.StartIndex, strings.Join(parts, " "))
}

func formatGeometricPatternDefinition(cmd command.Command) string {
	parts := make([]string, len(cmd.PatternCells))
	for i, c := range cmd.PatternCells {
		parts[i] = fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
	}
	return fmt.Sprintf("pattable %d %d %d %s;", cmd.Int, int(cmd.Point.X), int(cmd.Point.Y), strings.Join(parts, " "))
}

func formatSDR(sdr command.SDR) string {
	parts := make([]string, len(sdr.Members))
	for i, m := range sdr.Members {
		valParts := make([]string, len(m.Values))
		for j, v := range m.Values {
			valParts[j] = formatSDRValue(v)
		}
		parts[i] = fmt.Sprintf("%v %d %s", m.Type, m.Count, strings.Join(valParts, " "))
	}
	return strings.Join(parts, ", ")
}

func formatSDRValue(v interface{}) string {
	switch t := v.(type) {
	case command.SDR:
		return "[" + formatSDR(t) + "]"
	case string:
		return formatString(t)
	case float64:
		return formatReal(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
