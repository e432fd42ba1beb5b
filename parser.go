// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

import (
	"fmt"
	"io"
	"math"
	"strings"

	"modernc.org/mathutil"
)

const (
	parserBudget   = 1e7
	parserMaxDepth = 1e5
)

// parser is the state of one top-level parse. It is never shared between
// goroutines.
type parser struct {
	memo  memoTable // nil if memoization is disabled
	start Cursor
	stats Stats
	trace io.Writer

	budget   int
	budget0  int
	depth    int
	maxDepth int
	maxOff   int

	exhausted bool
	tooDeep   bool
}

func newParser(start Cursor, memoize bool, budget, maxDepth int, trace io.Writer) *parser {
	p := &parser{
		start:    start,
		trace:    trace,
		budget:   budget,
		budget0:  budget,
		maxDepth: maxDepth,
	}
	if memoize {
		p.memo = newMemoTable(start.Len())
	}
	return p
}

func (p *parser) parse() (e Expr, end Cursor, err error) {
	e, end, ok := p.additive(p.start)
	p.stats.Budget = p.budget0 - p.budget
	switch {
	case p.tooDeep:
		return nil, p.start, fmt.Errorf("%v: nesting deeper than %v: %w", p.start.Position(), h(p.maxDepth), ErrResources)
	case p.exhausted:
		return nil, p.start, fmt.Errorf("%v: %w", p.start.Position(), ErrResources)
	}

	if !ok {
		return nil, p.start, newSyntaxError(p.start, p.maxOff)
	}

	return e, end, nil
}

func (p *parser) advance(c Cursor) (byte, Cursor, bool) {
	p.maxOff = mathutil.Max(p.maxOff, c.Offset())
	return c.Advance()
}

func (p *parser) indent() string { return strings.Repeat("· ", p.depth) }

// recall returns the memoized match of r at c, if any.
func (p *parser) recall(r Rule, c Cursor) (rec *memoRecord, end Cursor, ok bool) {
	if p.memo == nil {
		return nil, c, false
	}

	rec, off, ok := p.memo.lookup(r, c.off)
	if !ok {
		return nil, c, false
	}

	p.stats.Hits[r]++
	if p.trace != nil {
		fmt.Fprintf(p.trace, "%sMEMO %v at %d-%d\n", p.indent(), r, c.off, off)
	}
	return rec, c.seek(off), true
}

// memorize records a successful match of r spanning [c, end). It returns nil
// if memoization is disabled.
func (p *parser) memorize(r Rule, c, end Cursor) *memoRecord {
	if p.memo == nil {
		return nil
	}

	p.stats.Stores++
	return p.memo.store(r, c.off, end.off)
}

// enter accounts for the execution of the body of r. It returns false if the
// budget is exhausted or the nesting limit is reached.
func (p *parser) enter(r Rule) bool {
	if p.exhausted {
		return false
	}

	if p.budget == 0 {
		p.exhausted = true
		return false
	}

	if p.depth >= p.maxDepth {
		p.exhausted = true
		p.tooDeep = true
		return false
	}

	p.budget--
	p.stats.Bodies[r]++
	p.depth++
	p.stats.MaxDepth = mathutil.Max(p.stats.MaxDepth, p.depth)
	return true
}

func (p *parser) exit(r Rule, c, end Cursor, ok bool) {
	p.depth--
	if p.trace == nil {
		return
	}

	switch {
	case ok:
		fmt.Fprintf(p.trace, "%sACCEPTED %v at %d-%d\n", p.indent(), r, c.off, end.off)
	default:
		fmt.Fprintf(p.trace, "%sREJECTED %v at %d\n", p.indent(), r, c.off)
	}
}

//	digit = "0" … "9" .
func (p *parser) digit(c Cursor) (ch byte, end Cursor, ok bool) {
	if rec, end, ok := p.recall(RuleDigit, c); ok {
		return rec.digit, end, true
	}

	if !p.enter(RuleDigit) {
		return 0, c, false
	}

	if ch, end, ok = p.advance(c); !ok || ch < '0' || ch > '9' {
		ch, end, ok = 0, c, false
	}
	p.exit(RuleDigit, c, end, ok)
	if ok {
		if rec := p.memorize(RuleDigit, c, end); rec != nil {
			rec.digit = ch
		}
	}
	return ch, end, ok
}

//	number = digit { digit } .
func (p *parser) number(c Cursor) (v uint64, end Cursor, ok bool) {
	if rec, end, ok := p.recall(RuleNumber, c); ok {
		return rec.number, end, true
	}

	if !p.enter(RuleNumber) {
		return 0, c, false
	}

	v, end, ok = p.number0(c)
	p.exit(RuleNumber, c, end, ok)
	if ok {
		if rec := p.memorize(RuleNumber, c, end); rec != nil {
			rec.number = v
		}
	}
	return v, end, ok
}

func (p *parser) number0(c Cursor) (v uint64, end Cursor, ok bool) {
	ch, end, ok := p.digit(c)
	if !ok {
		return 0, c, false
	}

	v = uint64(ch - '0')
	for {
		ch, next, ok := p.digit(end)
		if !ok {
			return v, end, true
		}

		d := uint64(ch - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, c, false
		}

		v = 10*v + d
		end = next
	}
}

//	Primary = "(" Additive ")" | number .
func (p *parser) primary(c Cursor) (e Expr, end Cursor, ok bool) {
	if rec, end, ok := p.recall(RulePrimary, c); ok {
		return rec.primary, end, true
	}

	if !p.enter(RulePrimary) {
		return nil, c, false
	}

	e, end, ok = p.primary0(c)
	p.exit(RulePrimary, c, end, ok)
	if ok {
		if rec := p.memorize(RulePrimary, c, end); rec != nil {
			rec.primary = e
		}
	}
	return e, end, ok
}

func (p *parser) primary0(c Cursor) (Expr, Cursor, bool) {
	if ch, next, ok := p.advance(c); ok && ch == '(' {
		// Committed, there is no fallback to number.
		e, next, ok := p.additive(next)
		if !ok {
			return nil, c, false
		}

		if ch, next, ok := p.advance(next); ok && ch == ')' {
			return e, next, true
		}

		return nil, c, false
	}

	v, end, ok := p.number(c)
	if !ok {
		return nil, c, false
	}

	return NewNumber(v), end, true
}

//	Multitive = Primary [ ( "*" | "/" ) Multitive ] .
func (p *parser) multitive(c Cursor) (e Expr, end Cursor, ok bool) {
	if rec, end, ok := p.recall(RuleMultitive, c); ok {
		return rec.multitive, end, true
	}

	if !p.enter(RuleMultitive) {
		return nil, c, false
	}

	e, end, ok = p.multitive0(c)
	p.exit(RuleMultitive, c, end, ok)
	if ok {
		if rec := p.memorize(RuleMultitive, c, end); rec != nil {
			rec.multitive = e
		}
	}
	return e, end, ok
}

func (p *parser) multitive0(c Cursor) (Expr, Cursor, bool) {
	left, end, ok := p.primary(c)
	if !ok {
		return nil, c, false
	}

	var op Kind
	ch, next, ok := p.advance(end)
	switch {
	case ok && ch == '*':
		op = Multiply
	case ok && ch == '/':
		op = Divide
	default:
		return left, end, true
	}

	right, end, ok := p.multitive(next)
	if !ok {
		return nil, c, false
	}

	return NewBinary(op, left, right), end, true
}

//	Additive = Multitive [ ( "+" | "-" ) Additive ] .
func (p *parser) additive(c Cursor) (e Expr, end Cursor, ok bool) {
	if rec, end, ok := p.recall(RuleAdditive, c); ok {
		return rec.additive, end, true
	}

	if !p.enter(RuleAdditive) {
		return nil, c, false
	}

	e, end, ok = p.additive0(c)
	p.exit(RuleAdditive, c, end, ok)
	if ok {
		if rec := p.memorize(RuleAdditive, c, end); rec != nil {
			rec.additive = e
		}
	}
	return e, end, ok
}

func (p *parser) additive0(c Cursor) (Expr, Cursor, bool) {
	left, end, ok := p.multitive(c)
	if !ok {
		return nil, c, false
	}

	var op Kind
	ch, next, ok := p.advance(end)
	switch {
	case ok && ch == '+':
		op = Add
	case ok && ch == '-':
		op = Subtract
	default:
		return left, end, true
	}

	right, end, ok := p.additive(next)
	if !ok {
		return nil, c, false
	}

	return NewBinary(op, left, right), end, true
}
