// Package interp is the tree-walking evaluator. It runs a linted
// program top to bottom, then invokes the genesis entry point.
// Miracle functions get deep-copied arguments and per-run memoization;
// sins and runtime faults unwind to the nearest confess/forgive guard.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// DefaultMaxDepth bounds call nesting before a stack-overflow fault.
const DefaultMaxDepth = 1000

// RuntimeError is an uncaught sin or fault surfaced from Run.
type RuntimeError struct {
	Code     diag.Code
	TypeName string
	Message  string
	Sp       source.Span
}

func (e *RuntimeError) Error() string {
	return e.TypeName + ": " + e.Message
}

// Interp evaluates one program. The miracle memo cache lives for the
// lifetime of the Interp, so repeated Runs start cold.
type Interp struct {
	out      io.Writer
	maxDepth int
	memo     map[memoKeyT]Value
	depth    int
}

// Option tweaks an Interp.
type Option func(*Interp)

// WithStdout redirects revelation output.
func WithStdout(w io.Writer) Option {
	return func(in *Interp) { in.out = w }
}

// WithMaxDepth overrides the call-depth bound.
func WithMaxDepth(n int) Option {
	return func(in *Interp) { in.maxDepth = n }
}

// New returns an interpreter writing revelation output to stdout
// unless redirected.
func New(opts ...Option) *Interp {
	in := &Interp{
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
		memo:     make(map[memoKeyT]Value),
	}
	for _, o := range opts {
		o(in)
	}
	return in
}

// Run executes a program: hoist functions and containers, bind
// top-level lets in source order, run the remaining top-level
// statements, then call genesis. The returned value is whatever
// genesis returned; salvation means success.
func (in *Interp) Run(prog *ast.Program) (Value, error) {
	globals := NewEnv(nil)
	globals.Define(token.IdentSalvation, Salvation{}, false)

	v, err := in.run(prog, globals)
	if err != nil {
		if sig, ok := err.(*sinSignal); ok {
			return nil, &RuntimeError{
				Code:     sig.code,
				TypeName: sig.sin.TypeName,
				Message:  sig.sin.Message,
				Sp:       sig.sp,
			}
		}
		return nil, err
	}
	return v, nil
}

func (in *Interp) run(prog *ast.Program, globals *Env) (Value, error) {
	for _, item := range prog.Items {
		switch d := item.(type) {
		case *ast.FnDecl:
			globals.Define(d.Name, in.makeFunction(d, globals), false)
		case *ast.ContainerDecl:
			globals.Define(d.Name, in.makeContainer(d, globals), false)
		}
	}

	for _, item := range prog.Items {
		if d, ok := item.(*ast.LetDecl); ok {
			if err := in.execStmt(d, globals); err != nil {
				return nil, err
			}
		}
	}

	for _, item := range prog.Items {
		switch item.(type) {
		case *ast.ImportDecl, *ast.LetDecl, *ast.FnDecl, *ast.ContainerDecl:
			continue
		}
		s, ok := item.(ast.Stmt)
		if !ok {
			continue
		}
		if err := in.execStmt(s, globals); err != nil {
			return nil, err
		}
	}

	entries := prog.EntryPoints()
	if len(entries) == 0 {
		return nil, &RuntimeError{
			Code:     diag.RunNoGenesis,
			TypeName: "GenesisError",
			Message:  "program has no genesis() entry point",
			Sp:       prog.Sp,
		}
	}
	env := NewEnv(globals)
	err := in.execBlock(entries[0].Body, env)
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return Undefined{}, nil
}

func (in *Interp) makeFunction(d *ast.FnDecl, env *Env) *Function {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.Name
	}
	return &Function{
		Name:   d.Name,
		Params: params,
		Body:   d.Body,
		Env:    env,
		FnKind: d.Kind,
	}
}

// makeContainer materializes a container as an object whose entries
// are its methods. The genesis entry point is not a member; it is only
// callable by the runtime itself.
func (in *Interp) makeContainer(d *ast.ContainerDecl, env *Env) *Object {
	obj := NewObject()
	for _, m := range d.Members {
		if fn, ok := m.(*ast.FnDecl); ok {
			obj.Set(fn.Name, in.makeFunction(fn, env))
		}
	}
	return obj
}

// IsSalvation reports whether a genesis result is the success
// sentinel.
func IsSalvation(v Value) bool {
	_, ok := v.(Salvation)
	return ok
}

// callValue invokes any callable value.
func (in *Interp) callValue(callee Value, args []Value, sp source.Span) (Value, error) {
	switch callee := callee.(type) {
	case *Builtin:
		res, err := callee.Fn(in, args)
		if sig, ok := err.(*sinSignal); ok && sig.sp.Empty() {
			sig.sp = sp
		}
		return res, err
	case *Function:
		if callee.FnKind == ast.FnMiracle {
			return in.callMiracle(callee, args, sp)
		}
		return in.callFunction(callee, args, sp)
	default:
		return nil, fault(diag.RunNotCallable, "TypeError",
			fmt.Sprintf("%s is not callable", callee.Kind()), sp)
	}
}

// callMiracle deep-copies the arguments and consults the memo cache
// before running the body. Unencodable arguments skip the cache.
func (in *Interp) callMiracle(fn *Function, args []Value, sp source.Span) (Value, error) {
	copied := make([]Value, len(args))
	for i, a := range args {
		copied[i] = deepCopy(a)
	}
	key, ok := memoKey(fn, copied)
	if ok {
		if cached, hit := in.memo[key]; hit {
			return cached, nil
		}
	}
	res, err := in.callFunction(fn, copied, sp)
	if err == nil && ok {
		in.memo[key] = res
	}
	return res, err
}

func (in *Interp) callFunction(fn *Function, args []Value, sp source.Span) (Value, error) {
	if in.depth >= in.maxDepth {
		return nil, fault(diag.RunStackOverflow, "DepthError",
			"call stack exhausted", sp)
	}
	in.depth++
	defer func() { in.depth-- }()

	env := NewEnv(fn.Env)
	for i, name := range fn.Params {
		if i < len(args) {
			env.Define(name, args[i], true)
		} else {
			env.Define(name, Undefined{}, true)
		}
	}

	if fn.Expr != nil {
		return in.eval(fn.Expr, env)
	}
	err := in.execBlock(fn.Body, env)
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return Undefined{}, nil
}
