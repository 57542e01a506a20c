package expr

import "bigcalc/bignum"

// Node is an expression tree node. Pos is the byte offset of the node's
// first token in the normalized input.
type Node interface {
	Pos() int
}

// IntLit is an integer literal.
type IntLit struct {
	At    int
	Value bignum.BigInt
}

// Ident references a variable.
type Ident struct {
	At   int
	Name string
}

// Unary is a prefix sign: -x or +x.
type Unary struct {
	At int
	Op Kind
	X  Node
}

// Binary is x op y for + - * / % ^.
type Binary struct {
	At int
	Op Kind
	X  Node
	Y  Node
}

// Factorial is x!.
type Factorial struct {
	At int
	X  Node
}

// IncDec is ++x, --x, x++ or x--.
type IncDec struct {
	At     int
	Op     Kind
	Name   string
	Prefix bool
}

// AssignStmt is name = value.
type AssignStmt struct {
	At    int
	Name  string
	Value Node
}

func (n *IntLit) Pos() int     { return n.At }
func (n *Ident) Pos() int      { return n.At }
func (n *Unary) Pos() int      { return n.At }
func (n *Binary) Pos() int     { return n.At }
func (n *Factorial) Pos() int  { return n.At }
func (n *IncDec) Pos() int     { return n.At }
func (n *AssignStmt) Pos() int { return n.At }
