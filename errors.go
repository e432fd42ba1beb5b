// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

import (
	"errors"
	"fmt"
	"go/token"
)

var (
	// ErrNoParse is the only way the grammar fails. Every *SyntaxError
	// matches it with errors.Is.
	ErrNoParse = errors.New("no parse")

	// ErrResources is returned when a parse exceeds its budget or its
	// nesting limit, or when the input is too large.
	ErrResources = errors.New("resources exhausted")
)

// SyntaxError reports a failed parse. Offset is the furthest offset the
// parser examined.
type SyntaxError struct {
	Name   string
	Offset int
	Pos    token.Position
}

func newSyntaxError(c Cursor, off int) *SyntaxError {
	c = c.seek(int32(off))
	return &SyntaxError{Name: c.src.name, Offset: off, Pos: c.Position()}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: syntax error", e.Pos)
}

// Unwrap returns ErrNoParse.
func (e *SyntaxError) Unwrap() error { return ErrNoParse }
