package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(3, 1, decodeVDCIntegerPrecision)
	register(3, 2, decodeVDCRealPrecision)
	register(3, 4, decodeTransparency)
	register(3, 6, decodeClipIndicator)
	register(3, 19, decodeLineTypeContinuation)
}

// decodeVDCIntegerPrecision follows the integer-precision-like setter
// rule, restricted to the three widths VDCs actually support.
func decodeVDCIntegerPrecision(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindVDCIntegerPrecision)
	v, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, label, "vdc integer precision", err)
		return command.Command{Class: class, ID: id, Kind: command.KindVDCIntegerPrecision}
	}
	switch v {
	case 16, 24, 32:
		ctx.VDCIntegerPrecision = int(v)
	default:
		unsupported(diags, class, id, label, "vdc integer precision %d not in {16,24,32}", v)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindVDCIntegerPrecision, Int: int64(v)}
}

func decodeVDCRealPrecision(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindVDCRealPrecision)
	repr, mantissa, exponent, ok := readRealPrecisionTuple(rd, diags, class, id, label)
	cmd := command.Command{Class: class, ID: id, Kind: command.KindVDCRealPrecision, Int: int64(repr), Int2: int64(mantissa), StartIndex: exponent}
	if !ok {
		return cmd
	}
	p, ok := context.RealPrecisionFor(repr, mantissa, exponent)
	if !ok {
		unsupported(diags, class, id, label, "unsupported (representation=%d, mantissa=%d, exponent=%d) tuple", repr, mantissa, exponent)
		return cmd
	}
	ctx.VDCRealPrecision = p
	return cmd
}

func decodeTransparency(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	b, err := rd.Bool()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindTransparency), "transparency", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindTransparency, Bool: b}
}

func decodeClipIndicator(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	b, err := rd.Bool()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindClipIndicator), "clip indicator", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindClipIndicator, Bool: b}
}

func decodeLineTypeContinuation(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Int()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindLineTypeContinuation), "line type continuation", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindLineTypeContinuation, Int: int64(v)}
}
