package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/natefinch/lumberjack.v2"
	"pgregory.net/rapid"

	"github.com/ausocean/cgm/command"
	"github.com/ausocean/cgm/context"
	"github.com/ausocean/cgm/diag"
)

// header builds a 16-bit short-form element header: class in bits
// 15-12, id in bits 11-5, argument length (0-30) in bits 4-0.
func header(class, id, length int) []byte {
	h := uint16(class&0xF)<<12 | uint16(id&0x7F)<<5 | uint16(length&0x1F)
	return []byte{byte(h >> 8), byte(h)}
}

// be16 writes v as a big-endian signed 16-bit value.
func be16(v int16) []byte {
	return []byte{byte(uint16(v) >> 8), byte(uint16(v))}
}

// be32 writes v as a big-endian signed 32-bit value.
func be32(v int32) []byte {
	return []byte{byte(uint32(v) >> 24), byte(uint32(v) >> 16), byte(uint32(v) >> 8), byte(uint32(v))}
}

// TestMinimumViableStream is scenario 1 from spec.md §8: an empty
// BEGMF followed by ENDMF, with no picture in between.
func TestMinimumViableStream(t *testing.T) {
	var in bytes.Buffer
	in.Write(header(0, 1, 0)) // BEGMF, empty name.
	in.Write(header(0, 2, 0)) // ENDMF.

	out, _, err := DecodeAndEmit(in.Bytes())
	if err != nil {
		t.Fatalf("DecodeAndEmit: %v", err)
	}
	want := "BEGMF '';\nENDMF;\n"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

// TestIntegerPrecisionOverride is scenario 2 from spec.md §8: an
// INTEGER PRECISION element set to 32 changes the width of the very
// next signed-integer field it governs.
func TestIntegerPrecisionOverride(t *testing.T) {
	var in bytes.Buffer
	in.Write(header(0, 1, 0)) // BEGMF.

	var args bytes.Buffer
	args.Write(be16(16)) // current integer precision is 16 by default.
	in.Write(header(1, 4, 2))
	in.Write(be16(32)) // INTEGER PRECISION 32, read at the *current* (16-bit) precision.

	in.Write(header(1, 1, 4))
	in.Write(be32(32)) // MF VERSION, now read at the new 32-bit precision.

	in.Write(header(0, 2, 0)) // ENDMF.

	commands, _, diags, err := Decode(in.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diags.MaxSeverity() >= diag.Fatal {
		t.Fatalf("unexpected fatal diagnostics: %v", diags.Entries())
	}

	var version *command.Command
	for i := range commands {
		if commands[i].Kind == command.KindMetafileVersion {
			version = &commands[i]
		}
	}
	if version == nil {
		t.Fatal("no MF VERSION command decoded")
	}
	if version.Int != 32 {
		t.Fatalf("version decoded as %d, want 32 (precision override did not take effect)", version.Int)
	}

	out, _ := Emit(commands, newResetContext())
	want := "integerprec -2147483648, 2147483647 % 32 binary bits %;\n"
	if !bytes.Contains(out, []byte(want)) {
		t.Fatalf("emitted output missing %q, got:\n%s", want, out)
	}
}

// TestVDCTypeDivergence is scenario 3 from spec.md §8: a stream
// declaring vdctype integer is re-emitted as "vdctype real;" with an
// info diagnostic, and the Context governing subsequent point
// formatting flips to real for the rest of the emission.
func TestVDCTypeDivergence(t *testing.T) {
	var in bytes.Buffer
	in.Write(header(0, 1, 0)) // BEGMF.
	in.Write(header(1, 3, 2)) // VDC TYPE.
	in.Write(be16(0))         // 0 = integer.
	in.Write(header(0, 2, 0)) // ENDMF.

	out, diags, err := DecodeAndEmit(in.Bytes())
	if err != nil {
		t.Fatalf("DecodeAndEmit: %v", err)
	}
	if !bytes.Contains(out, []byte("vdctype real;")) {
		t.Fatalf("expected emitted \"vdctype real;\", got:\n%s", out)
	}
	found := false
	for _, e := range diags.Entries() {
		if e.Severity == diag.Info && e.Text != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a non-empty info diagnostic for the vdctype divergence")
	}
}

// TestPolyline is scenario 4 from spec.md §8: four points under the
// default VDC integer-16 precision.
func TestPolyline(t *testing.T) {
	var pts bytes.Buffer
	for _, xy := range [][2]int16{{0, 0}, {10, 10}, {20, 0}, {30, -10}} {
		pts.Write(be16(xy[0]))
		pts.Write(be16(xy[1]))
	}

	var in bytes.Buffer
	in.Write(header(0, 1, 0))
	in.Write(header(4, 1, pts.Len()))
	in.Write(pts.Bytes())
	in.Write(header(0, 2, 0))

	out, _, err := DecodeAndEmit(in.Bytes())
	if err != nil {
		t.Fatalf("DecodeAndEmit: %v", err)
	}
	want := "  LINE (0,0) (10,10) (20,0) (30,-10);\n"
	if !bytes.Contains(out, []byte(want)) {
		t.Fatalf("got:\n%s\nwant substring:\n%s", out, want)
	}
}

// TestUnknownPassthrough is scenario 5 from spec.md §8: an escape
// (class 6) element decodes as Unknown and is emitted as a comment,
// without halting the stream.
func TestUnknownPassthrough(t *testing.T) {
	var in bytes.Buffer
	in.Write(header(0, 1, 0))
	in.Write(header(6, 1, 2))
	in.Write([]byte{0xAB, 0xCD})
	in.Write(header(0, 2, 0))

	commands, _, _, err := Decode(in.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var unknown *command.Command
	for i := range commands {
		if commands[i].Class == 6 {
			unknown = &commands[i]
		}
	}
	if unknown == nil || unknown.Kind != command.KindUnknown {
		t.Fatal("expected class 6 id 1 to decode as Unknown")
	}

	out, _ := Emit(commands, newResetContext())
	if !bytes.Contains(out, []byte("%")) {
		t.Fatalf("expected a %%-prefixed comment line for the unknown element, got:\n%s", out)
	}

	// Decoding must continue past the unknown element.
	found := false
	for _, c := range commands {
		if c.Kind == command.KindEndMetafile {
			found = true
		}
	}
	if !found {
		t.Fatal("ENDMF missing: decoding stopped at the unknown element")
	}
}

// TestPartitionedLongForm is scenario 6 from spec.md §8: a long-form
// argument length (31) followed by two 200-byte partitions, the first
// with its continuation bit set, concatenated into one 400-byte
// polyline argument buffer.
func TestPartitionedLongForm(t *testing.T) {
	part := func(n int16, point []byte) []byte {
		return append(be16(n), point...)
	}

	mkPoints := func(n int) []byte {
		var b bytes.Buffer
		for i := 0; i < n; i++ {
			b.Write(be16(int16(i)))
			b.Write(be16(int16(-i)))
		}
		return b.Bytes()
	}

	p1 := mkPoints(50) // 50 points * 4 bytes = 200 bytes.
	p2 := mkPoints(50)

	var in bytes.Buffer
	in.Write(header(0, 1, 0))
	in.Write(header(4, 1, 31)) // long form.
	in.Write(part(int16(0x8000|len(p1)), p1))
	in.Write(part(int16(len(p2)), p2))
	in.Write(header(0, 2, 0))

	commands, _, diags, err := Decode(in.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diags.MaxSeverity() >= diag.Fatal {
		t.Fatalf("unexpected fatal diagnostics: %v", diags.Entries())
	}

	var line *command.Command
	for i := range commands {
		if commands[i].Kind == command.KindPolyline {
			line = &commands[i]
		}
	}
	if line == nil {
		t.Fatal("no polyline decoded")
	}
	wantPoints := make([]command.Point, 100)
	for i := range wantPoints {
		wantPoints[i] = command.Point{X: float64(i % 50), Y: float64(-(i % 50))}
	}
	if diff := cmp.Diff(wantPoints, line.Points); diff != "" {
		t.Fatalf("partitioned polyline points mismatch (-want +got):\n%s", diff)
	}
}

// TestDriverFrameCountMatchesCommandCount exercises the quantified
// invariant from spec.md §8: the number of emitted top-level commands
// equals the number of successfully framed elements plus Unknown
// placeholders, for arbitrary well-formed short-form streams.
func TestDriverFrameCountMatchesCommandCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		var in bytes.Buffer
		frameCount := 0
		for i := 0; i < n; i++ {
			class := rapid.IntRange(0, 15).Draw(t, "class")
			id := rapid.IntRange(0, 30).Draw(t, "id")
			length := rapid.IntRange(0, 30).Draw(t, "length")
			in.Write(header(class, id, length))
			in.Write(bytes.Repeat([]byte{0}, length))
			if length%2 != 0 {
				in.Write([]byte{0})
			}
			frameCount++
		}

		commands, _, _, err := Decode(in.Bytes())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(commands) != frameCount {
			t.Fatalf("framed %d elements, decoded %d commands", frameCount, len(commands))
		}
	})
}

// TestDriverLoggingWithLumberjack demonstrates the file-backed logging
// pattern described in SPEC_FULL.md §8: a Driver's Log hook backed by
// a rotated lumberjack.Logger, the same composition cmd/rv and
// cmd/looper use for their own loggers.
func TestDriverLoggingWithLumberjack(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "cgm-decode.log")
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1, // Megabytes.
		MaxBackups: 1,
		MaxAge:     1, // Days.
	}
	defer fileLog.Close()

	var lines int
	d := New(Options{
		Log: func(lvl int8, msg string, args ...interface{}) {
			lines++
			fmt.Fprintf(fileLog, msg+"\n", args...)
		},
	})

	var in bytes.Buffer
	in.Write(header(0, 1, 0))
	in.Write(header(0, 2, 0))

	if _, _, err := d.DecodeAndEmit(&in); err != nil {
		t.Fatalf("DecodeAndEmit: %v", err)
	}
	if lines == 0 {
		t.Fatal("Log hook was never called")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("log file is empty")
	}
}

// TestOptionsStrictSDRControlsApplicationStructureAttribute exercises
// Options.StrictSDR end to end through an APPLICATION STRUCTURE
// ATTRIBUTE element carrying one SDR member whose type tag is not one
// of the canonical values: non-strict (the default) decodes the
// attribute with an empty record and no fatal diagnostic; strict
// reports it as fatal-for-command.
func TestOptionsStrictSDRControlsApplicationStructureAttribute(t *testing.T) {
	var sdrArgs bytes.Buffer
	sdrArgs.Write([]byte{3}) // string length.
	sdrArgs.WriteString("abc")
	sdrArgs.Write(be16(0)) // SDR member type tag 0 (unrecognised).
	sdrArgs.Write(be16(1)) // count 1.

	var in bytes.Buffer
	in.Write(header(0, 1, 0))
	in.Write(header(9, 1, sdrArgs.Len()))
	in.Write(sdrArgs.Bytes())
	in.Write(header(0, 2, 0))

	nonStrict := New(Options{StrictSDR: false})
	commands, _, diags, err := nonStrict.Decode(bytes.NewReader(in.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diags.MaxSeverity() >= diag.Fatal {
		t.Fatalf("non-strict mode should not report fatal, got: %v", diags.Entries())
	}
	var attr *command.Command
	for i := range commands {
		if commands[i].Kind == command.KindApplicationStructureAttribute {
			attr = &commands[i]
		}
	}
	if attr == nil {
		t.Fatal("no application structure attribute decoded")
	}
	if len(attr.SDR.Members) != 0 {
		t.Fatalf("got %d SDR members, want 0", len(attr.SDR.Members))
	}

	strict := New(Options{StrictSDR: true})
	_, _, strictDiags, err := strict.Decode(bytes.NewReader(in.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if strictDiags.MaxSeverity() != diag.Fatal {
		t.Fatalf("strict mode should report fatal for the unrecognised SDR type, got: %v", strictDiags.Entries())
	}
}

func newResetContext() *context.Context { return context.New() }
