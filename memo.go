// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

// Rule identifies a grammar rule.
type Rule int

// Values of type Rule.
const (
	RuleDigit Rule = iota
	RuleNumber
	RulePrimary
	RuleMultitive
	RuleAdditive

	NumRules = iota
)

var ruleNames = [...]string{
	RuleDigit:     "digit",
	RuleNumber:    "number",
	RulePrimary:   "Primary",
	RuleMultitive: "Multitive",
	RuleAdditive:  "Additive",
}

func (r Rule) String() string {
	if r >= 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}

	return "Rule(?)"
}

// memoRecord holds the successful matches of every rule starting at one
// offset.
type memoRecord struct {
	digit     byte
	number    uint64
	primary   Expr
	multitive Expr
	additive  Expr

	ends  [NumRules]int32
	valid uint8
}

// memoTable is indexed by offset, len(input)+1 records. Slots are write once.
type memoTable []memoRecord

func newMemoTable(n int) memoTable { return make(memoTable, n+1) }

// lookup returns the record at off and the end offset of the match of r, if
// any.
func (t memoTable) lookup(r Rule, off int32) (rec *memoRecord, end int32, ok bool) {
	rec = &t[off]
	if rec.valid&(1<<r) == 0 {
		return rec, 0, false
	}

	return rec, rec.ends[r], true
}

// store marks the slot of r at off as populated with a match ending at end.
// The caller sets the value field of the returned record.
func (t memoTable) store(r Rule, off, end int32) *memoRecord {
	rec := &t[off]
	if rec.valid&(1<<r) != 0 {
		panic(todo("memo slot %v at %v written twice", r, off))
	}

	rec.valid |= 1 << r
	rec.ends[r] = end
	return rec
}
