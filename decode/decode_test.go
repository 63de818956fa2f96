package decode

import (
	"testing"

	"github.com/ausocean/cgm/binary"
	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

func TestDispatchUnknownReservedClass(t *testing.T) {
	var diags diag.List
	cmd := Dispatch(nil, context.New(), &diags, 12, 3, []byte{1, 2, 3})
	if cmd.Kind != command.KindUnknown {
		t.Fatalf("got kind %v, want KindUnknown", cmd.Kind)
	}
	if cmd.Class != 12 || cmd.ID != 3 {
		t.Fatalf("got class=%d id=%d", cmd.Class, cmd.ID)
	}
}

func TestDispatchUnregisteredID(t *testing.T) {
	var diags diag.List
	cmd := Dispatch(nil, context.New(), &diags, 6, 1, []byte{0xAA})
	if cmd.Kind != command.KindUnknown {
		t.Fatalf("got kind %v, want KindUnknown", cmd.Kind)
	}
}

func TestDecodeBeginMetafileResetsContext(t *testing.T) {
	ctx := context.New()
	ctx.IntegerPrecision = 32
	var diags diag.List
	rd := binary.NewReader([]byte{3, 'f', 'o', 'o'}, ctx)
	cmd := Dispatch(rd, ctx, &diags, 0, 1, nil)
	if cmd.Kind != command.KindBeginMetafile || cmd.Str != "foo" {
		t.Fatalf("got %+v", cmd)
	}
	if ctx.IntegerPrecision != 16 {
		t.Fatalf("expected reset integer precision 16, got %d", ctx.IntegerPrecision)
	}
}

func TestDecodeIntegerPrecisionMutatesContext(t *testing.T) {
	ctx := context.New()
	var diags diag.List
	rd := binary.NewReader([]byte{0x00, 0x20}, ctx) // 32, read at the current (default 16-bit) integer precision.
	cmd := Dispatch(rd, ctx, &diags, 1, 4, nil)
	if cmd.Kind != command.KindIntegerPrecision || cmd.Int != 32 {
		t.Fatalf("got %+v", cmd)
	}
	if ctx.IntegerPrecision != 32 {
		t.Fatalf("expected context integer precision 32, got %d", ctx.IntegerPrecision)
	}
	if diags.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags.Entries())
	}
}

func TestDecodeRealPrecisionUnsupportedTuple(t *testing.T) {
	ctx := context.New()
	var diags diag.List
	// representation=1 (fixed), widths (8, 8) at the default 16-bit
	// integer precision - not an allowed tuple.
	buf := []byte{0x00, 0x01, 0x00, 0x08, 0x00, 0x08}
	rd := binary.NewReader(buf, ctx)
	before := ctx.RealPrecision
	Dispatch(rd, ctx, &diags, 1, 5, nil)
	if ctx.RealPrecision != before {
		t.Fatalf("real precision should not change on unsupported tuple")
	}
	if diags.MaxSeverity() != diag.Unsupported {
		t.Fatalf("expected unsupported diagnostic, got severity %v", diags.MaxSeverity())
	}
}

func TestDecodeVDCTypeTogglesParsing(t *testing.T) {
	ctx := context.New()
	var diags diag.List
	rd := binary.NewReader([]byte{0x00, 0x01}, ctx) // enum 1 = real.
	Dispatch(rd, ctx, &diags, 1, 3, nil)
	if ctx.VDCType != context.VDCReal {
		t.Fatalf("expected VDCType real after toggle")
	}
}

func TestDecodePolylineGreedyPointList(t *testing.T) {
	ctx := context.New() // VDC integer 16: each point is 4 bytes.
	var diags diag.List
	buf := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x0A, 0x00, 0x0A,
	}
	rd := binary.NewReader(buf, ctx)
	cmd := Dispatch(rd, ctx, &diags, 4, 1, nil)
	if cmd.Kind != command.KindPolyline {
		t.Fatalf("got kind %v", cmd.Kind)
	}
	if len(cmd.Points) != 2 || cmd.Points[1].X != 10 || cmd.Points[1].Y != 10 {
		t.Fatalf("got points %+v", cmd.Points)
	}
}

func TestDecodeMetafileElementListSentinelProfile(t *testing.T) {
	ctx := context.New()
	var diags diag.List
	// count=1, then (-1, 1) -> DRAWINGSET profile, index precision 16.
	buf := []byte{0x00, 0x01, 0xFF, 0xFF, 0x00, 0x01}
	rd := binary.NewReader(buf, ctx)
	cmd := Dispatch(rd, ctx, &diags, 1, 11, nil)
	if len(cmd.ElementListEntries) != 1 {
		t.Fatalf("got %+v", cmd.ElementListEntries)
	}
	e := cmd.ElementListEntries[0]
	if command.ProfileFor(e.Index, e.Class) != command.ProfileDrawingSet {
		t.Fatalf("got entry %+v, want DRAWINGSET sentinel", e)
	}
}

func TestDecodeColourSelectionModeTogglesDirect(t *testing.T) {
	ctx := context.New()
	var diags diag.List
	rd := binary.NewReader([]byte{0x00, 0x01}, ctx)
	Dispatch(rd, ctx, &diags, 2, 2, nil)
	if ctx.ColourSelectionMode != context.ColourDirect {
		t.Fatalf("expected direct colour selection mode")
	}
}
