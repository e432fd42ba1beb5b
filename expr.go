// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packrat // modernc.org/packrat

import (
	"fmt"
	"io"
	"strings"

	"modernc.org/strutil"
)

var (
	_ Expr = (*BinaryNode)(nil)
	_ Expr = (*NumberNode)(nil)
)

// Kind is the variant of an Expr.
type Kind int

// Values of type Kind.
const (
	Number Kind = iota
	Multiply
	Divide
	Add
	Subtract
)

var kindNames = [...]string{
	Number:   "Number",
	Multiply: "Multiply",
	Divide:   "Divide",
	Add:      "Add",
	Subtract: "Subtract",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Expr is a node of the expression tree. Expr values are immutable once
// constructed and can be shared freely.
type Expr interface {
	// Kind returns the variant of the node.
	Kind() Kind
	// String returns the functional form of the tree rooted at the node,
	// for example "Add(Number(1), Number(2))".
	String() string

	isExpr()
}

// NumberNode represents an integer literal.
type NumberNode struct {
	Value uint64
}

// NewNumber returns a NumberNode for v.
func NewNumber(v uint64) *NumberNode { return &NumberNode{Value: v} }

// Kind implements Expr.
func (n *NumberNode) Kind() Kind { return Number }

// String implements Expr.
func (n *NumberNode) String() string { return fmt.Sprintf("Number(%d)", n.Value) }

func (n *NumberNode) isExpr() {}

// BinaryNode represents one of Multiply, Divide, Add or Subtract.
type BinaryNode struct {
	Op    Kind
	Left  Expr
	Right Expr
}

// NewBinary returns a BinaryNode. NewBinary panics if op is not one of
// Multiply, Divide, Add or Subtract.
func NewBinary(op Kind, left, right Expr) *BinaryNode {
	switch op {
	case Multiply, Divide, Add, Subtract:
		return &BinaryNode{Op: op, Left: left, Right: right}
	default:
		panic(todo("invalid operator %v", op))
	}
}

// Kind implements Expr.
func (n *BinaryNode) Kind() Kind { return n.Op }

// String implements Expr.
func (n *BinaryNode) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *BinaryNode) format(b *strings.Builder) {
	b.WriteString(n.Op.String())
	b.WriteByte('(')
	format(b, n.Left)
	b.WriteString(", ")
	format(b, n.Right)
	b.WriteByte(')')
}

func (n *BinaryNode) isExpr() {}

func format(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case *BinaryNode:
		x.format(b)
	case nil:
		b.WriteString("<nil>")
	default:
		b.WriteString(x.String())
	}
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *NumberNode:
		y, ok := b.(*NumberNode)
		return ok && x.Value == y.Value
	case *BinaryNode:
		y, ok := b.(*BinaryNode)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case nil:
		return b == nil
	default:
		return false
	}
}

// Dump writes e to w, one node per line, children indented below their
// parent.
func Dump(w io.Writer, e Expr) error {
	f := strutil.IndentFormatter(w, "· ")
	return dump(f, e)
}

func dump(f strutil.Formatter, e Expr) (err error) {
	switch x := e.(type) {
	case *NumberNode:
		_, err = f.Format("%v %d\n", x.Kind(), x.Value)
	case *BinaryNode:
		if _, err = f.Format("%v%i\n", x.Op); err != nil {
			return err
		}

		if err = dump(f, x.Left); err != nil {
			return err
		}

		if err = dump(f, x.Right); err != nil {
			return err
		}

		_, err = f.Format("%u")
	default:
		panic(todo("%T", x))
	}
	return err
}
