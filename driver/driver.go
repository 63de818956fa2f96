/*
NAME
  driver.go

DESCRIPTION
  driver.go wires components A-G (context, binary, frame, command,
  decode, emit, diag) into the read-then-emit pipeline described by
  the driver contract: decode an entire binary CGM stream into an
  ordered Command sequence, then emit that sequence as clear text,
  merging diagnostics from both phases in encounter order.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package driver wires the CGM decoder pipeline end to end: it drives
// the frame reader across an entire binary stream, dispatches each
// framed element through decode.Dispatch, then hands the resulting
// Command sequence to emit.Emit to produce ISO/IEC 8632-4:1999 clear
// text. It is the only package in this module that owns a Context for
// the lifetime of a whole decode, and the only place a caller's
// logging hook is threaded through.
package driver

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/ausocean/utils/logging"

	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/decode"
	"github.com/ausocean/cgm/diag"
	"github.com/ausocean/cgm/emit"
	"github.com/ausocean/cgm/frame"
)

// Logging levels passed to a Driver's Log function, aliased directly
// from logging's own severities so callers can pass either name
// interchangeably.
const (
	LogDebug   = logging.Debug
	LogInfo    = logging.Info
	LogWarning = logging.Warning
	LogError   = logging.Error
	LogFatal   = logging.Fatal
)

// Options configures a Driver. The zero value is a ready-to-use
// configuration: no logging, default diagnostic capacity, and
// best-effort (non-strict) SDR member decoding.
type Options struct {
	// Log receives debug-level messages on every framed element and
	// info-level messages on every metafile boundary. A nil Log is a
	// no-op, following the nil-safe narrow-function-type convention
	// used by protocol/rtcp's Client.
	Log func(lvl int8, msg string, args ...interface{})

	// DiagCapacity pre-sizes the returned diagnostic list's backing
	// array as a hint; it does not bound the number of diagnostics
	// that can be recorded.
	DiagCapacity int

	// StrictSDR, when true, makes an unrecognised structured-data-record
	// member type tag a fatal-for-command diagnostic instead of the
	// default best-effort behaviour of skipping the member and
	// continuing decoding with whatever members were already read.
	StrictSDR bool
}

// Driver decodes and emits CGM streams according to Options.
type Driver struct {
	opts Options
}

// New returns a Driver configured by opts.
func New(opts Options) *Driver {
	return &Driver{opts: opts}
}

func (d *Driver) logf(lvl int8, format string, args ...interface{}) {
	if d.opts.Log == nil {
		return
	}
	d.opts.Log(lvl, format, args...)
}

// Decode reads an entire binary CGM stream from r and returns its
// decoded Command sequence, the Context as left after the last
// command (a snapshot callers may inspect but must not mutate and
// reuse across decodes), and the diagnostics accumulated while
// reading. Decode never returns a non-nil error for a malformed
// stream: framing and per-command failures are recorded as
// diagnostics so decoding can continue past them. A non-nil error
// return is reserved for an I/O failure underneath r itself.
func (d *Driver) Decode(r io.Reader) ([]command.Command, *context.Context, *diag.List, error) {
	ctx := context.New()
	diags := diag.NewList(d.opts.DiagCapacity)

	fr := frame.NewReader(r)
	var commands []command.Command
	for {
		el, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags.Fatal(-1, -1, "frame", "stream framing: %v", err)
			break
		}

		d.logf(LogDebug, "decode: class=%d id=%d %d argument bytes", el.Class, el.ID, len(el.Args))

		rd := binary.NewReader(el.Args, ctx)
		rd.SetStrictSDR(d.opts.StrictSDR)
		cmd := decode.Dispatch(rd, ctx, diags, el.Class, el.ID, el.Args)
		commands = append(commands, cmd)

		switch cmd.Kind {
		case command.KindBeginMetafile:
			d.logf(LogInfo, "decode: begin metafile %q", cmd.Str)
		case command.KindEndMetafile:
			d.logf(LogInfo, "decode: end metafile")
		}
	}
	return commands, ctx, diags, nil
}

// Emit formats commands as ISO/IEC 8632-4:1999 clear text. ctxReset
// should be a freshly reset Context (context.New()) so that emission
// begins from the same defaults decoding began from; Emit mutates it
// in place as it walks descriptor elements, exactly as Decode mutated
// its own Context.
func (d *Driver) Emit(commands []command.Command, ctxReset *context.Context) ([]byte, *diag.List) {
	return emit.Emit(commands, ctxReset)
}

// DecodeAndEmit runs the full read-then-emit pipeline: it decodes
// binary from r, then immediately emits the resulting commands against
// a fresh Context, merging decode- and emit-phase diagnostics in
// encounter order.
func (d *Driver) DecodeAndEmit(r io.Reader) ([]byte, *diag.List, error) {
	commands, _, decodeDiags, err := d.Decode(r)
	if err != nil {
		return nil, decodeDiags, errors.Wrap(err, "driver: decode failed")
	}

	cleartext, emitDiags := d.Emit(commands, context.New())

	merged := &diag.List{}
	merged.Merge(decodeDiags)
	merged.Merge(emitDiags)

	d.logf(LogDebug, "driver: decoded %d commands, %d diagnostics", len(commands), merged.Len())

	return cleartext, merged, nil
}

// DecodeAndEmit is a package-level convenience wrapping a zero-value
// Driver, for callers that have no need of Options.
func DecodeAndEmit(data []byte) ([]byte, *diag.List, error) {
	return New(Options{}).DecodeAndEmit(bytes.NewReader(data))
}

// Decode is the package-level convenience form of Driver.Decode.
func Decode(binaryBytes []byte) ([]command.Command, *context.Context, *diag.List, error) {
	return New(Options{}).Decode(bytes.NewReader(binaryBytes))
}

// Emit is the package-level convenience form of Driver.Emit.
func Emit(commands []command.Command, ctxReset *context.Context) ([]byte, *diag.List) {
	return New(Options{}).Emit(commands, ctxReset)
}
