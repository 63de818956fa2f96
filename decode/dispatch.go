/*
NAME
  dispatch.go

DESCRIPTION
  dispatch.go is the decoder dispatch table (component E): a flat
  (class, id) -> decoder function map built once at package init, plus
  the Dispatch entry point the driver calls once per framed element.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package decode maps a framed CGM element's (class, id) pair to the
// routine that consumes its argument bytes through a binary.Reader,
// builds a command.Command, and - for descriptor elements - mutates
// the shared context.Context in place. Decoding never aborts the
// containing stream: a decoder records a diag.Diagnostic and returns
// whatever partial command it managed to build rather than returning
// a Go error, matching the read-errors-never-propagate rule the
// driver relies on.
package decode

import (
	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

// Decoder consumes a command's argument bytes and returns the decoded
// Command, mutating ctx in place when the element is a descriptor.
// Any recoverable failure is recorded on diags; Decoder itself never
// returns an error.
type Decoder func(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int) command.Command

// classID is the dispatch table's key.
type classID struct{ class, id int }

var table = map[classID]Decoder{}

// register is called from each class's init to populate the dispatch
// table; it panics on a duplicate (class, id) registration, which is a
// programmer error, not a stream condition.
func register(class, id int, fn Decoder) {
	key := classID{class, id}
	if _, exists := table[key]; exists {
		panic("decode: duplicate registration for class, id")
	}
	table[key] = fn
}

// Lookup returns the registered decoder for (class, id), or (nil,
// false) when none is registered - the caller should fall back to
// Unknown.
func Lookup(class, id int) (Decoder, bool) {
	fn, ok := table[classID{class, id}]
	return fn, ok
}

// Dispatch decodes one element: classes 10-15 are reserved and always
// unknown; anything else with no registered decoder is also unknown.
// This is the single entry point the driver calls per framed element.
func Dispatch(rd *binary.Reader, ctx *context.Context, diags *diag.List, class, id int, raw []byte) command.Command {
	if class < 0 || class > 9 {
		return Unknown(class, id, raw)
	}
	fn, ok := Lookup(class, id)
	if !ok {
		return Unknown(class, id, raw)
	}
	return fn(rd, ctx, diags, class, id)
}

// Unknown builds the passthrough variant for any (class, id) this
// decoder does not recognise, including reserved classes 10-15.
func Unknown(class, id int, raw []byte) command.Command {
	return command.Command{Class: class, ID: id, Kind: command.KindUnknown, Raw: raw}
}
