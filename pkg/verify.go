package kaleido

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Verify checks the structural consistency of a generated function.
func Verify(f *ir.Func) error {
	fail := func(format string, args ...interface{}) error {
		return &VerificationError{Func: f.Name(), Reason: fmt.Sprintf(format, args...)}
	}

	if len(f.Blocks) == 0 {
		return fail("no body")
	}

	if !types.Equal(f.Sig.RetType, types.Double) {
		return fail("return type is %s, not double", f.Sig.RetType)
	}

	seen := make(map[string]bool)
	for _, p := range f.Params {
		if seen[p.Name()] {
			return fail("duplicate parameter %s", p.Name())
		}
		seen[p.Name()] = true
	}

	for _, block := range f.Blocks {
		if block.Term == nil {
			return fail("block %s has no terminator", block.Name())
		}

		for _, inst := range block.Insts {
			if err := verifyInst(inst); err != "" {
				return fail("%s", err)
			}
		}

		if ret, ok := block.Term.(*ir.TermRet); ok {
			if ret.X == nil {
				return fail("missing return value")
			}

			if !isDouble(ret.X) {
				return fail("return value has type %s", ret.X.Type())
			}
		}
	}

	return nil
}

func verifyInst(inst ir.Instruction) string {
	switch i := inst.(type) {
	case *ir.InstFAdd:
		return checkOperands("fadd", i.X, i.Y)
	case *ir.InstFSub:
		return checkOperands("fsub", i.X, i.Y)
	case *ir.InstFMul:
		return checkOperands("fmul", i.X, i.Y)
	case *ir.InstFCmp:
		return checkOperands("fcmp", i.X, i.Y)
	case *ir.InstUIToFP:
		if !types.Equal(i.To, types.Double) {
			return fmt.Sprintf("uitofp to %s", i.To)
		}
	case *ir.InstCall:
		callee, ok := i.Callee.(*ir.Func)
		if !ok {
			return "indirect call"
		}

		if len(callee.Params) != len(i.Args) {
			return fmt.Sprintf("call to %s with %d arguments, expected %d", callee.Name(), len(i.Args), len(callee.Params))
		}

		return checkOperands("call", i.Args...)
	default:
		return fmt.Sprintf("unexpected instruction %T", inst)
	}

	return ""
}

func checkOperands(op string, vals ...value.Value) string {
	for _, v := range vals {
		if v == nil {
			return op + " operand missing"
		}

		if !isDouble(v) {
			return fmt.Sprintf("%s operand has type %s", op, v.Type())
		}
	}

	return ""
}

func isDouble(v value.Value) bool {
	return v != nil && types.Equal(v.Type(), types.Double)
}
