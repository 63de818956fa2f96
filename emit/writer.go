/*
NAME
  writer.go

DESCRIPTION
  writer.go implements the soft 80-column line-wrapping writer that
  every clear-text CGM command is written through.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package emit implements the clear-text CGM emitter (component F): it
// formats each decoded command.Command as ISO/IEC 8632-4:1999 syntax,
// using the same context.Context the decoder mutated, and writes it
// through an 80-column soft-wrapping line writer.
package emit

import (
	"bytes"
	"strings"
)

// maxCharsPerLine is the soft wrap target column.
const maxCharsPerLine = 80

const lineFeed = "\n"

// writer accumulates clear-text output with the same soft-wrap
// behaviour as a human-edited CGM source file: a token that would
// cross the 80-column boundary is pushed to the next line at the last
// preceding space, except immediately after a command keyword and
// before a following quoted string, where a split would separate the
// keyword from its argument.
type writer struct {
	buf         bytes.Buffer
	charsOnLine int
}

func newWriter() *writer {
	return &writer{}
}

// writeLine writes text followed by a line feed and resets the
// column counter.
func (w *writer) writeLine(text string) {
	w.write(text)
	w.write(lineFeed)
	w.charsOnLine = 0
}

// write appends text, wrapping at the last available space once the
// running line would exceed maxCharsPerLine.
func (w *writer) write(text string) {
	if text == "" {
		return
	}
	if strings.Contains(text, lineFeed) && len(text) > 1 {
		w.writeLineFeeds(text)
		return
	}
	if w.charsOnLine+len(text) > maxCharsPerLine {
		if text == lineFeed || text == ";" || len(text) == 1 {
			w.buf.WriteString(text)
			if text == lineFeed {
				w.charsOnLine = 0
			} else {
				w.charsOnLine++
			}
			return
		}
		w.writeSplit(text)
		return
	}
	w.buf.WriteString(text)
	w.charsOnLine += len(text)
}

// writeSplit breaks text across lines at the last whitespace before
// the column budget, never splitting a command keyword away from a
// following quoted-string argument.
func (w *writer) writeSplit(text string) {
	for w.charsOnLine+len(text) > maxCharsPerLine && text != "" {
		maxPos := maxCharsPerLine - w.charsOnLine
		if maxPos > len(text) {
			maxPos = len(text)
		}
		sep := strings.LastIndexByte(text[:maxPos], ' ')

		if sep > 0 && sep+1 < len(text) && text[sep+1] == '\'' {
			sep = -1
		}
		if sep == -1 {
			sep = strings.LastIndex(text[:maxPos], lineFeed)
		}
		if sep == -1 {
			sep = strings.IndexByte(text, ' ')
		}
		if sep == -1 {
			sep = strings.Index(text, lineFeed)
		}

		if sep > 0 {
			line := text[:sep]
			text = text[sep:]
			w.writeLine(line)
			continue
		}
		w.buf.WriteString(text)
		w.charsOnLine = 0
		text = ""
	}
	w.write(text)
}

func (w *writer) writeLineFeeds(text string) {
	lines := strings.Split(text, lineFeed)
	for i := 0; i < len(lines)-1; i++ {
		w.writeLine(lines[i])
	}
	w.write(lines[len(lines)-1])
}

func (w *writer) Bytes() []byte { return w.buf.Bytes() }
