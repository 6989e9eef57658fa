package kaleido

import (
	"fmt"
	"io"
	"math"
)

// Builtin is a host function that bodiless declarations resolve to during
// evaluation.
type Builtin struct {
	Arity int
	Fn    func(out io.Writer, args []float64) float64
}

func unary(fn func(float64) float64) Builtin {
	return Builtin{
		Arity: 1,
		Fn: func(_ io.Writer, args []float64) float64 {
			return fn(args[0])
		},
	}
}

func defaultBuiltins() map[string]Builtin {
	return map[string]Builtin{
		"sin":   unary(math.Sin),
		"cos":   unary(math.Cos),
		"tan":   unary(math.Tan),
		"sqrt":  unary(math.Sqrt),
		"exp":   unary(math.Exp),
		"log":   unary(math.Log),
		"fabs":  unary(math.Abs),
		"floor": unary(math.Floor),
		"ceil":  unary(math.Ceil),
		"pow": {
			Arity: 2,
			Fn: func(_ io.Writer, args []float64) float64 {
				return math.Pow(args[0], args[1])
			},
		},
		"printd": {
			Arity: 1,
			Fn: func(out io.Writer, args []float64) float64 {
				fmt.Fprintf(out, "%f\n", args[0])
				return 0
			},
		},
		"putchard": {
			Arity: 1,
			Fn: func(out io.Writer, args []float64) float64 {
				fmt.Fprintf(out, "%c", rune(args[0]))
				return 0
			},
		},
	}
}
