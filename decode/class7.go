package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(7, 1, decodeMessage)
}

// decodeMessage is the canonical Message element (class 7, id 1),
// ISO 8632-3's external element assignment, preferred over the
// producer-specific class-0 id-23 path handled in class0.go.
func decodeMessage(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindMessage)
	action, err := rd.Enum()
	if err != nil {
		fatal(diags, class, id, label, "action", err)
		return command.Command{Class: class, ID: id, Kind: command.KindMessage}
	}
	text, err := rd.String()
	if err != nil {
		fatal(diags, class, id, label, "message text", err)
		return command.Command{Class: class, ID: id, Kind: command.KindMessage, Int: int64(action)}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindMessage, Int: int64(action), Str: text}
}
