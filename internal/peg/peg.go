// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package peg interprets an EBNF grammar as a parsing expression grammar over
// bytes. It is slow and keeps no memo table, which makes it a reference for
// checking hand written parsers of the same grammar.
//
// Alternatives are ordered choices, repetitions and options are greedy. A
// sequence that matched its first item is committed: if a later item does
// not match, the failure propagates through every enclosing alternative,
// option and repetition.
package peg // modernc.org/packrat/internal/peg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/ebnf"
	"modernc.org/mathutil"
)

const defaultBudget = 1e7

var (
	// ErrNoMatch is returned when the input does not match.
	ErrNoMatch = errors.New("no match")
	// ErrResources is returned when the budget is exhausted.
	ErrResources = errors.New("resources exhausted")
)

type outcome int

const (
	matched outcome = iota
	noMatch         // nothing consumed, alternatives may be tried
	failed          // a committed sequence failed
)

// Recognizer matches inputs against a grammar.
type Recognizer struct {
	g      ebnf.Grammar
	trace  io.Writer
	budget int
}

// New returns a Recognizer of g. g should be verified by ebnf.Verify.
func New(g ebnf.Grammar) *Recognizer {
	return &Recognizer{g: g, budget: defaultBudget}
}

// SetTrace makes r write ACCEPTED/REJECTED lines for every production to w.
func (r *Recognizer) SetTrace(w io.Writer) { r.trace = w }

// SetBudget sets the maximum number of production expansions per Match.
func (r *Recognizer) SetBudget(n int) { r.budget = n }

// Match matches a prefix of src against the production start. It returns the
// length of the prefix.
func (r *Recognizer) Match(start string, src []byte) (end int, err error) {
	p := r.g[start]
	if p == nil {
		return 0, fmt.Errorf("undefined production %s", start)
	}

	m := &matcher{
		g:      r.g,
		src:    src,
		trace:  r.trace,
		budget: r.budget,
	}
	end, o := m.match(0, p.Name)
	switch {
	case m.budget < 0:
		return 0, ErrResources
	case o != matched:
		return 0, fmt.Errorf("%d: %w", m.maxIndex, ErrNoMatch)
	}

	return end, nil
}

type matcher struct {
	g     ebnf.Grammar
	src   []byte
	trace io.Writer

	budget   int
	indentN  int
	maxIndex int
}

func (m *matcher) indent() (r string) {
	m.indentN++
	return strings.Repeat("· ", m.indentN-1)
}

func (m *matcher) undent() string {
	m.indentN--
	return strings.Repeat("· ", m.indentN)
}

func (m *matcher) at(ix int) { m.maxIndex = mathutil.Max(m.maxIndex, ix) }

func (m *matcher) match(ix int, e ebnf.Expression) (r int, o outcome) {
	r = ix
	switch x := e.(type) {
	case ebnf.Sequence:
		for i, v := range x {
			n, o := m.match(ix, v)
			switch {
			case o == matched:
				ix = n
			case i == 0:
				return r, o
			default:
				return r, failed
			}
		}
		return ix, matched
	case *ebnf.Name:
		p := m.g[x.String]
		if p == nil {
			panic(fmt.Sprintf("undefined production %s", x.String))
		}

		if m.budget--; m.budget < 0 {
			return r, failed
		}

		if m.trace != nil {
			m.indent()
			defer func() {
				switch o {
				case matched:
					fmt.Fprintf(m.trace, "%sACCEPTED %s at %d-%d\n", m.undent(), x.String, ix, r)
				default:
					fmt.Fprintf(m.trace, "%sREJECTED %s at %d\n", m.undent(), x.String, ix)
				}
			}()
		}
		if p.Expr == nil {
			return ix, matched
		}

		return m.match(ix, p.Expr)
	case *ebnf.Token:
		m.at(ix)
		if bytes.HasPrefix(m.src[ix:], []byte(x.String)) {
			return ix + len(x.String), matched
		}

		return r, noMatch
	case *ebnf.Range:
		m.at(ix)
		if ix < len(m.src) {
			if c := m.src[ix]; c >= x.Begin.String[0] && c <= x.End.String[0] {
				return ix + 1, matched
			}
		}

		return r, noMatch
	case *ebnf.Repetition:
		for {
			n, o := m.match(ix, x.Body)
			switch {
			case o == failed:
				return r, failed
			case o == noMatch || n == ix:
				return ix, matched
			}

			ix = n
		}
	case *ebnf.Group:
		return m.match(ix, x.Body)
	case ebnf.Alternative:
		for _, v := range x {
			switch n, o := m.match(ix, v); o {
			case matched:
				return n, matched
			case failed:
				return r, failed
			}
		}
		return r, noMatch
	case *ebnf.Option:
		switch n, o := m.match(ix, x.Body); o {
		case matched:
			return n, matched
		case failed:
			return r, failed
		}

		return ix, matched
	case nil:
		return ix, matched
	default:
		panic(fmt.Sprintf("unexpected expression %T", x))
	}
}
