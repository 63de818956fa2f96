package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(0, 0, decodeNoOp)
	register(0, 1, decodeBeginMetafile)
	register(0, 2, decodeEndMetafile)
	register(0, 3, decodeBeginPicture)
	register(0, 4, decodeBeginPictureBody)
	register(0, 5, decodeEndPicture)
	register(0, 8, decodeBeginFigure)
	register(0, 9, decodeEndFigure)
	register(0, 18, decodeBeginApplicationStructure)
	register(0, 19, decodeBeginApplicationStructureBody)
	register(0, 20, decodeEndApplicationStructure)
	// Message0 is a producer-specific (class 0, id 23) variant some
	// generators emit in place of the canonical MESSAGE assignment
	// (class 7, id 1), which is registered separately in class7.go.
	register(0, 23, decodeMessage0)
}

func decodeNoOp(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindNoOp}
}

func decodeBeginMetafile(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	ctx.ResetDefaults()
	if rd.Remaining() == 0 {
		// No argument bytes at all: an unnamed metafile, not a short read.
		return command.Command{Class: class, ID: id, Kind: command.KindBeginMetafile}
	}
	name, err := rd.String()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindBeginMetafile), "metafile name", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindBeginMetafile, Str: name}
}

func decodeEndMetafile(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindEndMetafile}
}

func decodeBeginPicture(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	name, err := rd.String()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindBeginPicture), "picture name", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindBeginPicture, Str: name}
}

func decodeBeginPictureBody(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindBeginPictureBody}
}

func decodeEndPicture(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindEndPicture}
}

func decodeBeginFigure(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindBeginFigure}
}

func decodeEndFigure(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindEndFigure}
}

func decodeBeginApplicationStructure(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	typ, err := rd.String()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindBeginApplicationStructure), "structure type", err)
	}
	ident, err := rd.String()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindBeginApplicationStructure), "structure identifier", err)
	}
	// Str: structure identifier. FontNames[0]: structure type.
	return command.Command{Class: class, ID: id, Kind: command.KindBeginApplicationStructure, Str: ident, FontNames: []string{typ}}
}

func decodeBeginApplicationStructureBody(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindBeginApplicationStructureBody}
}

func decodeEndApplicationStructure(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindEndApplicationStructure}
}

func decodeMessage0(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	action, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindMessage0), "action", err)
	}
	text, err := rd.String()
	if err != nil {
		fatal(diags, class, id, kindLabel(command.KindMessage0), "message text", err)
	}
	return command.Command{Class: class, ID: id, Kind: command.KindMessage0, Int: int64(action), Str: text}
}
