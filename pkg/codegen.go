package kaleido

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// CodeGen lowers AST nodes to backend operations.
type CodeGen struct {
	backend Backend
	values  *ValueLookup
}

func NewCodeGen(backend Backend) *CodeGen {
	return &CodeGen{
		backend: backend,
		values:  NewValueLookup(),
	}
}

func (g *CodeGen) Expr(expr Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *NumberExpr:
		return g.backend.Const(e.Value), nil
	case *VariableExpr:
		return g.variable(e)
	case *BinaryExpr:
		return g.binaryExpression(e)
	case *CallExpr:
		return g.functionCall(e)
	default:
		return nil, fmt.Errorf("unknown expression %T", expr)
	}
}

func (g *CodeGen) variable(expr *VariableExpr) (value.Value, error) {
	v, ok := g.values.Get(expr.Name)
	if !ok {
		return nil, &UndefinedError{Kind: SymbolVariable, Name: expr.Name}
	}

	return v, nil
}

func (g *CodeGen) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	lhs, err := g.Expr(expr.LHS)
	if err != nil {
		return nil, err
	}

	rhs, err := g.Expr(expr.RHS)
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case '+':
		return g.backend.Add(lhs, rhs), nil
	case '-':
		return g.backend.Sub(lhs, rhs), nil
	case '*':
		return g.backend.Mul(lhs, rhs), nil
	case '<':
		return g.backend.LessThan(lhs, rhs), nil
	default:
		return nil, &InvalidOperatorError{Op: expr.Op}
	}
}

func (g *CodeGen) functionCall(expr *CallExpr) (value.Value, error) {
	callee := g.backend.LookupFunc(expr.Callee)
	if callee == nil {
		return nil, &UndefinedError{Kind: SymbolFunction, Name: expr.Callee}
	}

	if len(callee.Params) != len(expr.Args) {
		return nil, &ArityError{Name: expr.Callee, Expected: len(callee.Params), Got: len(expr.Args)}
	}

	args := make([]value.Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := g.Expr(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	return g.backend.Call(callee, args), nil
}

// Prototype declares proto, or returns the function already declared under
// its name.
func (g *CodeGen) Prototype(proto *Prototype) (*ir.Func, error) {
	f := g.backend.DeclareFunc(proto)
	if len(f.Params) != len(proto.Params) {
		return nil, &ArityError{Name: proto.Name, Expected: len(f.Params), Got: len(proto.Params)}
	}

	return f, nil
}

// Function lowers a definition. A declaration made by an earlier extern is
// reused; a body can be attached only once. If lowering fails the function is
// returned to the state it had before.
func (g *CodeGen) Function(fn *Function) (*ir.Func, error) {
	existed := !fn.Proto.IsAnonymous() && g.backend.LookupFunc(fn.Proto.Name) != nil

	f, err := g.Prototype(fn.Proto)
	if err != nil {
		return nil, err
	}

	if len(f.Blocks) != 0 {
		return nil, &RedefinitionError{Name: fn.Proto.Name}
	}

	for i, name := range fn.Proto.Params {
		f.Params[i].SetName(name)
	}

	g.backend.OpenBody(f)

	g.values.Reset()
	for _, p := range f.Params {
		g.values.Set(p.Name(), p)
	}

	if err := g.body(f, fn.Body); err != nil {
		if existed {
			g.backend.Discard(f)
		} else {
			g.backend.Erase(f)
		}

		return nil, err
	}

	return f, nil
}

func (g *CodeGen) body(f *ir.Func, body Expr) error {
	ret, err := g.Expr(body)
	if err != nil {
		return err
	}

	g.backend.SetReturn(ret)
	return g.backend.Finalize(f)
}
