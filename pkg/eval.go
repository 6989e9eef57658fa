package kaleido

import (
	"fmt"
	"io"
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

const maxCallDepth = 1024

// Evaluator runs generated functions by interpreting their instructions.
// Calls to functions without a body go to the builtin table.
type Evaluator struct {
	out      io.Writer
	builtins map[string]Builtin
}

func NewEvaluator(out io.Writer) *Evaluator {
	return &Evaluator{
		out:      out,
		builtins: defaultBuiltins(),
	}
}

func (e *Evaluator) Call(f *ir.Func, args ...float64) (float64, error) {
	return e.call(f, args, 0)
}

func (e *Evaluator) call(f *ir.Func, args []float64, depth int) (float64, error) {
	fail := func(format string, a ...interface{}) (float64, error) {
		return 0, &EvalError{Func: f.Name(), Reason: fmt.Sprintf(format, a...)}
	}

	if depth >= maxCallDepth {
		return fail("call depth exceeds %d", maxCallDepth)
	}

	if len(args) != len(f.Params) {
		return fail("expected %d arguments, got %d", len(f.Params), len(args))
	}

	if len(f.Blocks) == 0 {
		b, ok := e.builtins[f.Name()]
		if !ok {
			return 0, &UndefinedError{Kind: SymbolFunction, Name: f.Name()}
		}

		if b.Arity != len(args) {
			return fail("builtin takes %d arguments, got %d", b.Arity, len(args))
		}

		return b.Fn(e.out, args), nil
	}

	env := make(map[value.Value]float64, len(f.Params))
	for i, p := range f.Params {
		env[p] = args[i]
	}

	operand := func(v value.Value) (float64, error) {
		if c, ok := v.(*constant.Float); ok {
			if c.X == nil {
				return math.NaN(), nil
			}

			x, _ := c.X.Float64()
			return x, nil
		}

		x, ok := env[v]
		if !ok {
			return fail("unknown operand %s", v.Ident())
		}

		return x, nil
	}

	binary := func(x, y value.Value) (float64, float64, error) {
		a, err := operand(x)
		if err != nil {
			return 0, 0, err
		}

		b, err := operand(y)
		return a, b, err
	}

	// The language has no control flow, so the entry block is the whole body.
	block := f.Blocks[0]
	for _, inst := range block.Insts {
		switch i := inst.(type) {
		case *ir.InstFAdd:
			a, b, err := binary(i.X, i.Y)
			if err != nil {
				return 0, err
			}
			env[i] = a + b
		case *ir.InstFSub:
			a, b, err := binary(i.X, i.Y)
			if err != nil {
				return 0, err
			}
			env[i] = a - b
		case *ir.InstFMul:
			a, b, err := binary(i.X, i.Y)
			if err != nil {
				return 0, err
			}
			env[i] = a * b
		case *ir.InstFCmp:
			if i.Pred != enum.FPredULT {
				return fail("unsupported predicate %s", i.Pred)
			}

			a, b, err := binary(i.X, i.Y)
			if err != nil {
				return 0, err
			}

			// ult is true when unordered.
			env[i] = 0
			if a < b || math.IsNaN(a) || math.IsNaN(b) {
				env[i] = 1
			}
		case *ir.InstUIToFP:
			x, err := operand(i.From)
			if err != nil {
				return 0, err
			}
			env[i] = x
		case *ir.InstCall:
			callee, ok := i.Callee.(*ir.Func)
			if !ok {
				return fail("indirect call")
			}

			callArgs := make([]float64, len(i.Args))
			for n, arg := range i.Args {
				x, err := operand(arg)
				if err != nil {
					return 0, err
				}
				callArgs[n] = x
			}

			x, err := e.call(callee, callArgs, depth+1)
			if err != nil {
				return 0, err
			}
			env[i] = x
		default:
			return fail("unsupported instruction %T", inst)
		}
	}

	ret, ok := block.Term.(*ir.TermRet)
	if !ok || ret.X == nil {
		return fail("missing return")
	}

	return operand(ret.X)
}
