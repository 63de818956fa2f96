/*
NAME
  diag.go

DESCRIPTION
  diag.go implements the append-only, severity-tagged diagnostic list
  that the decoder and emitter use to surface recoverable problems
  without aborting the stream.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package diag implements the diagnostic accumulator used by the CGM
// decoder and emitter to record non-fatal (and per-command fatal)
// problems without aborting the containing stream.
package diag

import "fmt"

// Severity orders the four diagnostic levels a Diagnostic can carry.
// The ordering matches spec: Info < Unsupported < Unimplemented <
// Fatal, so callers can filter with a simple comparison.
type Severity int

const (
	Info Severity = iota
	Unsupported
	Unimplemented
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Unsupported:
		return "unsupported"
	case Unimplemented:
		return "unimplemented"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one recorded problem, scoped to the (class, id)
// command that produced it.
type Diagnostic struct {
	Severity Severity
	Class    int
	ID       int
	Text     string

	// Label is a short human-readable identifier for the command that
	// produced this diagnostic (e.g. its Kind name), used only for
	// reporting; it carries no decoding semantics.
	Label string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] class=%d id=%d: %s (%s)", d.Severity, d.Class, d.ID, d.Text, d.Label)
}

// List is an append-only sequence of Diagnostics. The zero value is
// ready to use.
type List struct {
	entries []Diagnostic
}

// NewList returns a List whose backing array is pre-sized to capacity
// as a hint; it does not bound the number of diagnostics the List can
// hold.
func NewList(capacity int) *List {
	return &List{entries: make([]Diagnostic, 0, capacity)}
}

// Add appends a Diagnostic built from its constituent fields.
func (l *List) Add(sev Severity, class, id int, label, format string, args ...interface{}) {
	l.entries = append(l.entries, Diagnostic{
		Severity: sev,
		Class:    class,
		ID:       id,
		Label:    label,
		Text:     fmt.Sprintf(format, args...),
	})
}

// Info records an info-level diagnostic, used for intentional
// divergences between the binary source and the emitted clear text.
func (l *List) Info(class, id int, label, format string, args ...interface{}) {
	l.Add(Info, class, id, label, format, args...)
}

// Unsupported records a spec-defined but unimplemented enum value or
// combination.
func (l *List) Unsupported(class, id int, label, format string, args ...interface{}) {
	l.Add(Unsupported, class, id, label, format, args...)
}

// Unimplemented records a recognised command whose body is not yet
// decoded.
func (l *List) Unimplemented(class, id int, label, format string, args ...interface{}) {
	l.Add(Unimplemented, class, id, label, format, args...)
}

// Fatal records a per-command read or format failure. A Fatal
// diagnostic never aborts the containing stream; it only means the
// one command it is attached to was not (fully) decoded or emitted.
func (l *List) Fatal(class, id int, label, format string, args ...interface{}) {
	l.Add(Fatal, class, id, label, format, args...)
}

// Entries returns the accumulated diagnostics in encounter order. The
// returned slice is owned by the caller; List keeps its own internal
// slice unmodified by mutations to the returned one's contents beyond
// its length.
func (l *List) Entries() []Diagnostic {
	return append([]Diagnostic(nil), l.entries...)
}

// Len returns the number of accumulated diagnostics.
func (l *List) Len() int { return len(l.entries) }

// Merge appends another List's entries, preserving relative order.
// Used by the driver to combine decode-phase and emit-phase
// diagnostics in encounter order.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.entries = append(l.entries, other.entries...)
}

// MaxSeverity returns the highest severity recorded, or Info if the
// list is empty.
func (l *List) MaxSeverity() Severity {
	max := Info
	for _, e := range l.entries {
		if e.Severity > max {
			max = e.Severity
		}
	}
	return max
}
