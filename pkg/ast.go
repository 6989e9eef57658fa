package kaleido

import (
	"strconv"
	"strings"
)

// Expr is one of *NumberExpr, *VariableExpr, *BinaryExpr or *CallExpr.
type Expr interface {
	String() string
	exprNode()
}

type NumberExpr struct {
	Value float64
}

type VariableExpr struct {
	Name string
}

type BinaryExpr struct {
	Op  rune
	LHS Expr
	RHS Expr
}

type CallExpr struct {
	Callee string
	Args   []Expr
}

func (*NumberExpr) exprNode()   {}
func (*VariableExpr) exprNode() {}
func (*BinaryExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}

func (e *NumberExpr) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

func (e *VariableExpr) String() string {
	return e.Name
}

func (e *BinaryExpr) String() string {
	return "(" + string(e.Op) + " " + e.LHS.String() + " " + e.RHS.String() + ")"
}

func (e *CallExpr) String() string {
	var str strings.Builder
	str.WriteString("(call ")
	str.WriteString(e.Callee)

	for _, arg := range e.Args {
		str.WriteString(" ")
		str.WriteString(arg.String())
	}
	str.WriteString(")")

	return str.String()
}

// AnonymousName is the prototype name of a wrapped top level expression.
const AnonymousName = ""

// Prototype is a function signature: its name and positional parameter names.
type Prototype struct {
	Name   string
	Params []string
}

func (p *Prototype) IsAnonymous() bool {
	return p.Name == AnonymousName
}

func (p *Prototype) String() string {
	return p.Name + " (" + strings.Join(p.Params, " ") + ")"
}

// Function is a prototype with its body. The body expression is the
// function's return value.
type Function struct {
	Proto *Prototype
	Body  Expr
}

func (f *Function) String() string {
	return "(def " + f.Proto.String() + " " + f.Body.String() + ")"
}

// NoPrecedence marks a character that is not a binary operator.
const NoPrecedence = -1

var precedenceTable = map[rune]int{
	'<': 10,
	'+': 20,
	'-': 20,
	'*': 40,
}

// BinaryPrecedence returns the binding strength of op. Higher binds tighter.
func BinaryPrecedence(op rune) int {
	if prec, ok := precedenceTable[op]; ok {
		return prec
	}

	return NoPrecedence
}
