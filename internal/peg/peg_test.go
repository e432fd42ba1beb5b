// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peg // modernc.org/packrat/internal/peg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

func grammar(t *testing.T, src, start string) ebnf.Grammar {
	g, err := ebnf.Parse("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if err := ebnf.Verify(g, start); err != nil {
		t.Fatal(err)
	}

	return g
}

const expr = `
Additive  = Multitive [ ( "+" | "-" ) Additive ] .
Multitive = Primary [ ( "*" | "/" ) Multitive ] .
Primary   = "(" Additive ")" | number .
number    = digit { digit } .
digit     = "0" … "9" .
`

func TestMatch(t *testing.T) {
	r := New(grammar(t, expr, "Additive"))
	for _, test := range []struct {
		src string
		end int
	}{
		{"1", 1},
		{"123", 3},
		{"1+2*3-4", 7},
		{"(12+34)*56-78", 13},
		{"1)", 1},
		{"(1)2", 3},
		{"", -1},
		{"1+", -1},
		{"1*", -1},
		{"(1+2", -1},
		{"()", -1},
		{"+", -1},
	} {
		end, err := r.Match("Additive", []byte(test.src))
		switch {
		case test.end < 0:
			if !errors.Is(err, ErrNoMatch) {
				t.Errorf("%q: got %v, %v, expected %v", test.src, end, err, ErrNoMatch)
			}
		case err != nil:
			t.Errorf("%q: %v", test.src, err)
		case end != test.end:
			t.Errorf("%q: got %v, expected %v", test.src, end, test.end)
		}
	}
}

// A committed sequence does not fall back to a later alternative.
func TestCommit(t *testing.T) {
	for _, test := range []struct {
		grammar string
		src     string
		end     int
	}{
		{`S = "a" "b" | "a" .`, "ab", 2},
		{`S = "a" "b" | "a" .`, "a", -1},
		{`S = "a" "b" | "a" .`, "ac", -1},
		{`S = [ "x" "y" ] "x" .`, "xyx", 3},
		{`S = [ "x" "y" ] "x" .`, "x", -1},
		{`S = { "p" "q" } .`, "pqpq", 4},
		{`S = { "p" "q" } .`, "", 0},
		{`S = { "p" "q" } .`, "r", 0},
		{`S = { "p" "q" } .`, "pqp", -1},
	} {
		r := New(grammar(t, test.grammar, "S"))
		end, err := r.Match("S", []byte(test.src))
		switch {
		case test.end < 0:
			if !errors.Is(err, ErrNoMatch) {
				t.Errorf("%s %q: got %v, %v, expected %v", test.grammar, test.src, end, err, ErrNoMatch)
			}
		case err != nil:
			t.Errorf("%s %q: %v", test.grammar, test.src, err)
		case end != test.end:
			t.Errorf("%s %q: got %v, expected %v", test.grammar, test.src, end, test.end)
		}
	}
}

func TestBudget(t *testing.T) {
	r := New(grammar(t, expr, "Additive"))
	r.SetBudget(2)
	if _, err := r.Match("Additive", []byte("1+2")); !errors.Is(err, ErrResources) {
		t.Fatalf("got %v, expected %v", err, ErrResources)
	}
}

func TestUndefined(t *testing.T) {
	r := New(grammar(t, expr, "Additive"))
	if _, err := r.Match("Nope", []byte("1")); err == nil {
		t.Fatal("expected error")
	}
}

func TestTrace(t *testing.T) {
	r := New(grammar(t, expr, "Additive"))
	var b bytes.Buffer
	r.SetTrace(&b)
	if _, err := r.Match("Additive", []byte("7")); err != nil {
		t.Fatal(err)
	}

	a := strings.Split(strings.TrimSpace(b.String()), "\n")
	if g, e := a[len(a)-1], "ACCEPTED Additive at 0-1"; g != e {
		t.Fatalf("got %q, expected %q", g, e)
	}
}
