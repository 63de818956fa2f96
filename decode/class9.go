package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func init() {
	register(9, 1, decodeApplicationStructureAttribute)
}

// decodeApplicationStructureAttribute reads an attribute type
// identifier followed by a single structured data record, per the SDR
// reading rule shared with font properties.
func decodeApplicationStructureAttribute(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command {
	label := kindLabel(command.KindApplicationStructureAttribute)
	name, err := rd.String()
	if err != nil {
		fatal(diags, class, id, label, "attribute type", err)
		return command.Command{Class: class, ID: id, Kind: command.KindApplicationStructureAttribute}
	}
	sdr, err := rd.SDR()
	if err != nil {
		fatal(diags, class, id, label, "attribute data record", err)
		return command.Command{Class: class, ID: id, Kind: command.KindApplicationStructureAttribute, Str: name}
	}
	return command.Command{Class: class, ID: id, Kind: command.KindApplicationStructureAttribute, Str: name, SDR: sdr}
}
