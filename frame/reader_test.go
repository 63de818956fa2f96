package frame

import (
	"bytes"
	"io"
	"testing"
)

func header(class, id, length int) []byte {
	h := uint16(class&0xF)<<12 | uint16(id&0x7F)<<5 | uint16(length&0x1F)
	return []byte{byte(h >> 8), byte(h)}
}

func TestNextShortFormEven(t *testing.T) {
	buf := append(header(1, 1, 4), []byte{1, 2, 3, 4}...)
	r := NewReader(bytes.NewReader(buf))
	e, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Class != 1 || e.ID != 1 {
		t.Fatalf("got class=%d id=%d", e.Class, e.ID)
	}
	if !bytes.Equal(e.Args, []byte{1, 2, 3, 4}) {
		t.Fatalf("got args %v", e.Args)
	}
}

func TestNextShortFormOddPad(t *testing.T) {
	// Odd length 3, one pad byte 0xAA must be consumed, not returned.
	buf := append(header(4, 1, 3), []byte{1, 2, 3, 0xAA}...)
	r := NewReader(bytes.NewReader(buf))
	e, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(e.Args, []byte{1, 2, 3}) {
		t.Fatalf("got args %v", e.Args)
	}
}

func TestNextLongFormTwoPartitions(t *testing.T) {
	// First partition: more=1, length=2, data {1,2} (even, no pad).
	p1 := []byte{0x80, 0x02, 1, 2}
	// Second partition: more=0, length=3, data {3,4,5} + pad.
	p2 := []byte{0x00, 0x03, 3, 4, 5, 0xFF}
	buf := append(header(4, 1, longFormLength), p1...)
	buf = append(buf, p2...)
	r := NewReader(bytes.NewReader(buf))
	e, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 5}
	if !bytes.Equal(e.Args, want) {
		t.Fatalf("got args %v, want %v", e.Args, want)
	}
}

func TestNextCleanEOF(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	if err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestNextTruncatedHeader(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x10}))
	_, err := r.Next()
	if err != ErrTruncatedHeader {
		t.Fatalf("got %v, want ErrTruncatedHeader", err)
	}
}

func TestNextTruncatedShortFormPartition(t *testing.T) {
	buf := header(4, 1, 10) // claims 10 bytes but stream ends.
	r := NewReader(bytes.NewReader(buf))
	_, err := r.Next()
	if err != ErrTruncatedPartition {
		t.Fatalf("got %v, want ErrTruncatedPartition", err)
	}
}

func TestNextSequentialElements(t *testing.T) {
	buf := append(header(0, 1, 0), header(0, 2, 0)...)
	r := NewReader(bytes.NewReader(buf))
	e1, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	e2, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if e1.ID != 1 || e2.ID != 2 {
		t.Fatalf("got ids %d, %d", e1.ID, e2.ID)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}
