/*
NAME
  reader.go

DESCRIPTION
  reader.go implements the frame reader (component C): it pulls the
  16-bit element header and the accompanying short- or long-form
  argument bytes off a CGM binary stream, leaving word alignment and
  partition reassembly to the caller's single Next call.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package frame reads the element-level framing of a binary CGM
// stream: the 16-bit class/id/length header, the short-form argument
// block, and the long-form partitioned form with its continuation bit
// and per-partition word alignment. It knows nothing about what a
// command's arguments mean; it only hands the caller a (class, id,
// argument-bytes) triple per call to Next.
package frame

import (
	"bufio"
	"errors"
	"io"
)

// Errors returned by Next. ErrTruncatedHeader and ErrTruncatedPartition
// are command-scoped: the caller should record a fatal diagnostic for
// the element in progress and continue reading the next header, per
// the framing error domain.
var (
	ErrTruncatedHeader    = errors.New("frame: truncated element header")
	ErrTruncatedPartition = errors.New("frame: truncated long-form partition")
)

// longFormLength is the header length field value (31) that signals
// the long (partitioned) argument form.
const longFormLength = 31

// Element is one decoded frame: a class/id header plus its fully
// reassembled argument bytes.
type Element struct {
	Class int
	ID    int
	Args  []byte
}

// Reader reads successive Elements from an underlying byte stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader pulling frames from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next reads the next element header and its argument bytes. It
// returns io.EOF, unwrapped, only when the stream ends cleanly between
// elements (the only clean termination point). Any other read failure
// is wrapped in ErrTruncatedHeader or ErrTruncatedPartition and is
// scoped to the element in progress; the caller may keep calling Next
// once it has recorded a diagnostic, though in practice a truncated
// header leaves the stream unsynchronised and decoding should stop.
func (r *Reader) Next() (Element, error) {
	header, err := r.readUint16()
	if err != nil {
		if err == io.EOF {
			return Element{}, io.EOF
		}
		return Element{}, ErrTruncatedHeader
	}

	class := int(header>>12) & 0xF
	id := int(header>>5) & 0x7F
	length := int(header) & 0x1F

	var args []byte
	if length == longFormLength {
		args, err = r.readLongForm()
	} else {
		args, err = r.readShortForm(length)
	}
	if err != nil {
		return Element{}, err
	}
	return Element{Class: class, ID: id, Args: args}, nil
}

func (r *Reader) readUint16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// readShortForm reads exactly n argument bytes, then one pad byte if n
// is odd, per the word-alignment rule.
func (r *Reader) readShortForm(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, ErrTruncatedPartition
	}
	if n%2 != 0 {
		if _, err := r.r.Discard(1); err != nil {
			return nil, ErrTruncatedPartition
		}
	}
	return buf, nil
}

// readLongForm reads successive 16-bit partition headers: bit 15 set
// means more partitions follow; the low 15 bits are this partition's
// length. Each partition's bytes (plus odd-length pad byte) are
// concatenated into one argument buffer.
func (r *Reader) readLongForm() ([]byte, error) {
	var args []byte
	for {
		p, err := r.readUint16()
		if err != nil {
			return nil, ErrTruncatedPartition
		}
		more := p&0x8000 != 0
		n := int(p & 0x7FFF)

		buf := make([]byte, n)
		if _, err := io.ReadFull(r.r, buf); err != nil {
			return nil, ErrTruncatedPartition
		}
		args = append(args, buf...)

		if n%2 != 0 {
			if _, err := r.r.Discard(1); err != nil {
				return nil, ErrTruncatedPartition
			}
		}
		if !more {
			break
		}
	}
	return args, nil
}
