package kaleido

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// ValueLookup maps the parameter names of the function being generated to
// their IR values. It is replaced wholesale on every function entry.
type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Reset() {
	l.vals = make(map[string]value.Value)
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// Backend is the instruction set the code generator lowers to. Every value
// is a double.
type Backend interface {
	Const(v float64) value.Value
	Add(lhs, rhs value.Value) value.Value
	Sub(lhs, rhs value.Value) value.Value
	Mul(lhs, rhs value.Value) value.Value
	// LessThan compares and widens the result back to 0.0 or 1.0.
	LessThan(lhs, rhs value.Value) value.Value

	// DeclareFunc returns the existing declaration of proto.Name, or declares
	// a new one. Anonymous prototypes always get a fresh function.
	DeclareFunc(proto *Prototype) *ir.Func
	LookupFunc(name string) *ir.Func
	Call(f *ir.Func, args []value.Value) value.Value

	OpenBody(f *ir.Func)
	SetReturn(v value.Value)
	Finalize(f *ir.Func) error
	// Discard drops the body of f and leaves it as a declaration.
	Discard(f *ir.Func)
	// Erase removes f from the module entirely.
	Erase(f *ir.Func)
}

const anonFuncName = "__anon_expr"

type LLVMBackend struct {
	mod   *ir.Module
	block *ir.Block
	funcs map[string]*ir.Func
	anon  int

	// Local names already used in the function being generated.
	locals map[string]int
}

func NewLLVMBackend() *LLVMBackend {
	return &LLVMBackend{
		mod:    ir.NewModule(),
		funcs:  make(map[string]*ir.Func),
		locals: make(map[string]int),
	}
}

func (b *LLVMBackend) Module() *ir.Module {
	return b.mod
}

func (b *LLVMBackend) String() string {
	return b.mod.String()
}

func (b *LLVMBackend) Const(v float64) value.Value {
	return constant.NewFloat(types.Double, v)
}

func (b *LLVMBackend) Add(lhs, rhs value.Value) value.Value {
	inst := b.block.NewFAdd(lhs, rhs)
	inst.SetName(b.localName("addtmp"))

	return inst
}

func (b *LLVMBackend) Sub(lhs, rhs value.Value) value.Value {
	inst := b.block.NewFSub(lhs, rhs)
	inst.SetName(b.localName("subtmp"))

	return inst
}

func (b *LLVMBackend) Mul(lhs, rhs value.Value) value.Value {
	inst := b.block.NewFMul(lhs, rhs)
	inst.SetName(b.localName("multmp"))

	return inst
}

func (b *LLVMBackend) LessThan(lhs, rhs value.Value) value.Value {
	cmp := b.block.NewFCmp(enum.FPredULT, lhs, rhs)
	cmp.SetName(b.localName("cmptmp"))

	inst := b.block.NewUIToFP(cmp, types.Double)
	inst.SetName(b.localName("booltmp"))

	return inst
}

func (b *LLVMBackend) DeclareFunc(proto *Prototype) *ir.Func {
	if proto.IsAnonymous() {
		return b.newFunc(b.anonName(), proto.Params)
	}

	if f, ok := b.funcs[proto.Name]; ok {
		return f
	}

	f := b.newFunc(proto.Name, proto.Params)
	b.funcs[proto.Name] = f

	return f
}

func (b *LLVMBackend) newFunc(name string, params []string) *ir.Func {
	irParams := make([]*ir.Param, len(params))
	for i, p := range params {
		irParams[i] = ir.NewParam(p, types.Double)
	}

	return b.mod.NewFunc(name, types.Double, irParams...)
}

func (b *LLVMBackend) anonName() string {
	name := anonFuncName
	if b.anon > 0 {
		name += "." + strconv.Itoa(b.anon)
	}
	b.anon++

	return name
}

func (b *LLVMBackend) LookupFunc(name string) *ir.Func {
	return b.funcs[name]
}

func (b *LLVMBackend) Call(f *ir.Func, args []value.Value) value.Value {
	inst := b.block.NewCall(f, args...)
	inst.SetName(b.localName("calltmp"))

	return inst
}

func (b *LLVMBackend) OpenBody(f *ir.Func) {
	b.locals = make(map[string]int)
	for _, p := range f.Params {
		b.locals[p.Name()]++
	}

	b.block = f.NewBlock(b.localName("entry"))
}

func (b *LLVMBackend) SetReturn(v value.Value) {
	b.block.NewRet(v)
}

func (b *LLVMBackend) Finalize(f *ir.Func) error {
	b.block = nil
	return Verify(f)
}

func (b *LLVMBackend) Discard(f *ir.Func) {
	f.Blocks = nil
	b.block = nil
}

func (b *LLVMBackend) Erase(f *ir.Func) {
	b.Discard(f)

	for i, g := range b.mod.Funcs {
		if g == f {
			b.mod.Funcs = append(b.mod.Funcs[:i], b.mod.Funcs[i+1:]...)
			break
		}
	}

	if b.funcs[f.Name()] == f {
		delete(b.funcs, f.Name())
	}
}

// localName returns base, or base with a numeric suffix when base is
// already taken in the current function.
func (b *LLVMBackend) localName(base string) string {
	n := b.locals[base]
	b.locals[base]++

	if n == 0 {
		return base
	}

	name := base + strconv.Itoa(n)
	if _, taken := b.locals[name]; taken {
		return b.localName(base)
	}
	b.locals[name]++

	return name
}
