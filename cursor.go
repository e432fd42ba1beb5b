// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

import (
	"go/token"

	mtoken "modernc.org/token"
)

// source represents a single input, its name and its position information.
type source struct {
	buf  []byte
	file *mtoken.File
	name string

	base int32
}

// 'buf' becomes owned by the result and must not be modified afterwards.
func newSource(name string, buf []byte) *source {
	file := mtoken.NewFile(name, len(buf))
	return &source{
		buf:  buf,
		file: file,
		name: name,
		base: int32(file.Base()),
	}
}

func (s *source) position(off int) token.Position {
	return token.Position(s.file.PositionFor(mtoken.Pos(int(s.base)+off), true))
}

// Cursor is a position within an input. Cursors are values, copying one never
// copies the input it refers to. The zero Cursor is positioned at the end of
// an empty input.
type Cursor struct { // 16 bytes on 64 bit arch
	src *source
	off int32
}

// NewCursor returns a Cursor at the start of buf. Positions are reported as
// if buf is coming from a file named name. The buffer becomes owned by the
// Cursor and must not be modified afterwards.
func NewCursor(name string, buf []byte) Cursor {
	return Cursor{src: newSource(name, buf)}
}

// Advance consumes one byte. It returns the byte and a cursor positioned after
// it, or ok == false if c is at the end of input. c itself is not changed.
func (c Cursor) Advance() (ch byte, next Cursor, ok bool) {
	if c.src == nil || int(c.off) >= len(c.src.buf) {
		return 0, c, false
	}

	return c.src.buf[c.off], Cursor{c.src, c.off + 1}, true
}

// Offset returns the number of bytes before c.
func (c Cursor) Offset() int { return int(c.off) }

// Len returns the length of the input c refers to.
func (c Cursor) Len() int {
	if c.src == nil {
		return 0
	}

	return len(c.src.buf)
}

// EOF reports whether c is at the end of input.
func (c Cursor) EOF() bool { return c.Offset() == c.Len() }

// Rest returns the input not yet consumed.
func (c Cursor) Rest() string {
	if c.src == nil {
		return ""
	}

	return string(c.src.buf[c.off:])
}

// Position returns the position of c.
func (c Cursor) Position() (r token.Position) {
	if c.src == nil {
		return r
	}

	return c.src.position(int(c.off))
}

// seek returns a cursor at off in the same input.
func (c Cursor) seek(off int32) Cursor {
	if off < 0 || int(off) > c.Len() {
		panic(todo("seek out of range: %v, len %v", off, c.Len()))
	}

	return Cursor{c.src, off}
}
