package kaleido

import "fmt"

type ParseError struct {
	Msg string
	Tok Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s, found %s", e.Msg, e.Tok)
}

type SymbolKind string

const (
	SymbolVariable SymbolKind = "variable"
	SymbolFunction SymbolKind = "function"
)

type UndefinedError struct {
	Kind SymbolKind
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined %s: %s", e.Kind, e.Name)
}

type ArityError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong number of arguments for %s: expected %d, got %d", e.Name, e.Expected, e.Got)
}

type RedefinitionError struct {
	Name string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("function body already defined: %s", e.Name)
}

type InvalidOperatorError struct {
	Op rune
}

func (e *InvalidOperatorError) Error() string {
	return fmt.Sprintf("invalid binary operator '%c'", e.Op)
}

type VerificationError struct {
	Func   string
	Reason string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("function %s failed verification: %s", e.Func, e.Reason)
}

type EvalError struct {
	Func   string
	Reason string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("cannot evaluate %s: %s", e.Func, e.Reason)
}
