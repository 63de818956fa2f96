package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(2, 1, decodeScalingMode)
	register(2, 2, decodeColourSelectionMode)
	register(2, 3, decodeLineWidthSpecificationMode)
	register(2, 4, decodeMarkerSizeSpecificationMode)
	register(2, 5, decodeEdgeWidthSpecificationMode)
	register(2, 6, decodeVDCExtent)
	register(2, 7, decodeBackgroundColour)
	register(2, 17, decodeLineAndEdgeTypeDefinition)
}

func decodeScalingMode(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindScalingMode)
	mode, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "scaling mode", err)
		return command.Command{Class: class, ID: id, Kind: command.KindScalingMode}
	}
	factor, err := rd.Real()
	if err != nil {
		fatal(diags, class, id, label, "scaling factor", err)
		return command.Command{Class: class, ID: id, Kind: command.KindScalingMode, Mode: int(mode)}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindScalingMode, Mode: int(mode), Real: factor}
}

// decodeColourSelectionMode toggles context.Context.ColourSelectionMode,
// affecting how every subsequent colour is parsed.
func decodeColourSelectionMode(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindColourSelectionMode), "colour selection mode", err)
		return command.Command{Class: class, ID: id, Kind: command.KindColourSelectionMode}
	}
	mode := context.ColourIndexed
	if v == 1 {
		mode = context.ColourDirect
	} else if v != 0 {
		unsupported(diags, class, id, kindLabel(command.KindColourSelectionMode), "colour selection mode enum value %d not recognised, defaulting to indexed", v)
	}
	ctx.ColourSelectionMode = mode
	return command.Command{Class: class, ID: id, Kind: command.KindColourSelectionMode, Mode: int(mode)}
}

func decodeSpecMode(rd *binary.Reader, diags *diag.List, class, id int, label string) (context.SpecMode, bool) {
	v, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "specification mode", err)
		return context.SpecAbs, false
	}
	mode := context.SpecAbs
	if v == 1 {
		mode = context.SpecScaled
	} else if v != 0 {
		unsupported(diags, class, id, label, "specification mode enum value %d not recognised, defaulting to abs", v)
	}
	return mode, true
}

func decodeLineWidthSpecificationMode(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	mode, ok := decodeSpecMode(rd, diags, class, id, kindLabel(command.KindLineWidthSpecificationMode))
	if !ok {
		return command.Command{Class: class, ID: id, Kind: command.KindLineWidthSpecificationMode}
	}
	ctx.LineWidthMode = mode
	return command.Command{Class: class, ID: id, Kind: command.KindLineWidthSpecificationMode, Mode: int(mode)}
}

func decodeMarkerSizeSpecificationMode(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	mode, ok := decodeSpecMode(rd, diags, class, id, kindLabel(command.KindMarkerSizeSpecificationMode))
	if !ok {
		return command.Command{Class: class, ID: id, Kind: command.KindMarkerSizeSpecificationMode}
	}
	ctx.MarkerSizeMode = mode
	return command.Command{Class: class, ID: id, Kind: command.KindMarkerSizeSpecificationMode, Mode: int(mode)}
}

func decodeEdgeWidthSpecificationMode(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	mode, ok := decodeSpecMode(rd, diags, class, id, kindLabel(command.KindEdgeWidthSpecificationMode))
	if !ok {
		return command.Command{Class: class, ID: id, Kind: command.KindEdgeWidthSpecificationMode}
	}
	ctx.EdgeWidthMode = mode
	return command.Command{Class: class, ID: id, Kind: command.KindEdgeWidthSpecificationMode, Mode: int(mode)}
}

func decodeVDCExtent(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindVDCExtent)
	p1, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "first corner", err)
		return command.Command{Class: class, ID: id, Kind: command.KindVDCExtent}
	}
	p2, err := rd.Point()
	if err != nil {
		fatal(diags, class, id, label, "second corner", err)
		return command.Command{Class: class, ID: id, Kind: command.KindVDCExtent, Point: p1}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindVDCExtent, Point: p1, Point2: p2}
}

func decodeBackgroundColour(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	rgb, unsup, err := rd.DirectColour()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindBackgroundColour), "background colour", err)
		return command.Command{Class: class, ID: id, Kind: command.KindBackgroundColour}
	}
	if unsup {
		unsupported(diags, class, id, kindLabel(command.KindBackgroundColour), "colour model %v not supported for direct colour", ctx.ColourModel)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindBackgroundColour, Colour: command.Colour{RGB: rgb}}
}

// decodeLineAndEdgeTypeDefinition reads a user-defined line/edge type:
// an index followed by a greedy dash-pattern list of reals (the
// lengths of the on/off segments). Recorded but not interpreted
// further; the emitter reproduces it verbatim.
func decodeLineAndEdgeTypeDefinition(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindLineAndEdgeTypeDefinition)
	idx, err := rd.Index()
	if err != nil {
		fatal(diags, class, id, label, "line/edge type index", err)
		return command.Command{Class: class, ID: id, Kind: command.KindLineAndEdgeTypeDefinition}
	}
	var segments []command.Point // X holds each dash-segment length; Y unused.
	for rd.Remaining() > 0 {
		v, err := rd.Real()
		if err != nil {
			fatal(diags, class, id, label, "dash segment length", err)
			break
		}
		segments = append(segments, command.Point{X: v})
	}
	return command.Command{Class: class, ID: id, Kind: command.KindLineAndEdgeTypeDefinition, Int: int64(idx), Points: segments}
}
