package kaleido

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatorBuiltins(t *testing.T) {
	f := newCodegenFixture()

	_, err := f.extern(t, "extern sqrt(x)")
	require.NoError(t, err)
	_, err = f.extern(t, "extern pow(b e)")
	require.NoError(t, err)

	assert.Equal(t, 3.0, f.run(t, "sqrt(9)"))
	assert.Equal(t, 1024.0, f.run(t, "pow(2, 10)"))
}

func TestEvaluatorPrintd(t *testing.T) {
	var out strings.Builder
	f := newCodegenFixture()
	f.eval = NewEvaluator(&out)

	_, err := f.extern(t, "extern printd(x)")
	require.NoError(t, err)

	assert.Equal(t, 0.0, f.run(t, "printd(1.5)"))
	assert.Equal(t, "1.500000\n", out.String())
}

func TestEvaluatorUnresolvedExtern(t *testing.T) {
	f := newCodegenFixture()

	_, err := f.extern(t, "extern mystery(x)")
	require.NoError(t, err)

	fn, err := f.topLevel(t, "mystery(1)")
	require.NoError(t, err)

	_, err = f.eval.Call(fn)
	var undef *UndefinedError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "mystery", undef.Name)
}

func TestEvaluatorBuiltinArity(t *testing.T) {
	f := newCodegenFixture()

	_, err := f.extern(t, "extern sin(a b)")
	require.NoError(t, err)

	fn, err := f.topLevel(t, "sin(1, 2)")
	require.NoError(t, err)

	_, err = f.eval.Call(fn)
	var evalErr *EvalError
	assert.ErrorAs(t, err, &evalErr)
}

func TestEvaluatorRecursionLimit(t *testing.T) {
	f := newCodegenFixture()

	_, err := f.extern(t, "extern loop(x)")
	require.NoError(t, err)
	_, err = f.define(t, "def loop(x) loop(x+1)")
	require.NoError(t, err)

	fn, err := f.topLevel(t, "loop(0)")
	require.NoError(t, err)

	_, err = f.eval.Call(fn)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, evalErr.Reason, "call depth")
}

func TestEvaluatorWrongArgumentCount(t *testing.T) {
	f := newCodegenFixture()

	fn, err := f.define(t, "def id(x) x")
	require.NoError(t, err)

	_, err = f.eval.Call(fn)
	assert.Error(t, err)

	v, err := f.eval.Call(fn, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestEvaluatorUnorderedCompare(t *testing.T) {
	f := newCodegenFixture()

	fn, err := f.define(t, "def lt(a b) a<b")
	require.NoError(t, err)

	v, err := f.eval.Call(fn, math.NaN(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = f.eval.Call(fn, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}
