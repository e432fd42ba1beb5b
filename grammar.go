// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the name of the production Parse starts with.
const StartProduction = "Additive"

// EBNF is the grammar accepted by Parse. Productions are ordered choices and
// a sequence is committed once its first item matched.
const EBNF = `
Additive  = Multitive [ ( "+" | "-" ) Additive ] .
Multitive = Primary [ ( "*" | "/" ) Multitive ] .
Primary   = "(" Additive ")" | number .
number    = digit { digit } .
digit     = "0" … "9" .
`

// Grammar returns EBNF parsed and verified.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("packrat.ebnf", strings.NewReader(EBNF))
	if err != nil {
		return nil, err
	}

	if err = ebnf.Verify(g, StartProduction); err != nil {
		return nil, err
	}

	return g, nil
}

// PrintEBNF writes g to w, one production per line, sorted by name.
func PrintEBNF(w io.Writer, g ebnf.Grammar) {
	var a []string
	for k := range g {
		a = append(a, k)
	}
	sort.Strings(a)
	for _, k := range a {
		p := g[k]
		fmt.Fprintf(w, "%s = ", p.Name.String)
		if p.Expr != nil {
			printEBNFExpression(w, p.Expr)
		}
		fmt.Fprintf(w, " .\n")
	}
}

func printEBNFExpression(w io.Writer, e ebnf.Expression) {
	switch x := e.(type) {
	case ebnf.Sequence:
		for i, v := range x {
			if i != 0 {
				fmt.Fprintf(w, " ")
			}
			printEBNFExpression(w, v)
		}
	case *ebnf.Name:
		fmt.Fprintf(w, "%s", x.String)
	case *ebnf.Token:
		fmt.Fprintf(w, "%q", x.String)
	case *ebnf.Option:
		fmt.Fprintf(w, "[ ")
		printEBNFExpression(w, x.Body)
		fmt.Fprintf(w, " ]")
	case *ebnf.Group:
		fmt.Fprintf(w, "( ")
		printEBNFExpression(w, x.Body)
		fmt.Fprintf(w, " )")
	case ebnf.Alternative:
		for i, v := range x {
			if i != 0 {
				fmt.Fprintf(w, " | ")
			}
			printEBNFExpression(w, v)
		}
	case *ebnf.Repetition:
		fmt.Fprintf(w, "{ ")
		printEBNFExpression(w, x.Body)
		fmt.Fprintf(w, " }")
	case *ebnf.Range:
		printEBNFExpression(w, x.Begin)
		fmt.Fprintf(w, " … ")
		printEBNFExpression(w, x.End)
	case nil:
		// ok
	default:
		panic(todo("%T", x))
	}
}
