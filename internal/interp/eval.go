package interp

import (
	"fmt"
	"math"
	"strings"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
)

// execBlock runs the statements of a block in the given scope. The
// caller decides whether the scope is fresh.
func (in *Interp) execBlock(b *ast.Block, env *Env) error {
	for _, s := range b.Stmts {
		if err := in.execStmt(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execStmt(s ast.Stmt, env *Env) error {
	switch s := s.(type) {
	case *ast.Block:
		return in.execBlock(s, NewEnv(env))
	case *ast.LetDecl:
		v, err := in.eval(s.Init, env)
		if err != nil {
			return err
		}
		env.Define(s.Name, v, s.Mutable)
		return nil
	case *ast.FnDecl:
		env.Define(s.Name, in.makeFunction(s, env), false)
		return nil
	case *ast.IfStmt:
		cond, err := in.eval(s.Cond, env)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return in.execBlock(s.Then, NewEnv(env))
		}
		if s.Else != nil {
			return in.execStmt(s.Else, env)
		}
		return nil
	case *ast.WhileStmt:
		for {
			cond, err := in.eval(s.Cond, env)
			if err != nil {
				return err
			}
			if !truthy(cond) {
				return nil
			}
			if err := in.execBlock(s.Body, NewEnv(env)); err != nil {
				return err
			}
		}
	case *ast.ForStmt:
		scope := NewEnv(env)
		if s.Init != nil {
			if err := in.execStmt(s.Init, scope); err != nil {
				return err
			}
		}
		for {
			if s.Cond != nil {
				cond, err := in.eval(s.Cond, scope)
				if err != nil {
					return err
				}
				if !truthy(cond) {
					return nil
				}
			}
			if err := in.execBlock(s.Body, NewEnv(scope)); err != nil {
				return err
			}
			if s.Post != nil {
				if _, err := in.eval(s.Post, scope); err != nil {
					return err
				}
			}
		}
	case *ast.ReturnStmt:
		var v Value = Undefined{}
		if s.Value != nil {
			var err error
			v, err = in.eval(s.Value, env)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: v}
	case *ast.GuardStmt:
		err := in.execBlock(s.Body, NewEnv(env))
		sig, ok := err.(*sinSignal)
		if !ok {
			return err
		}
		scope := NewEnv(env)
		scope.Define(s.HandlerName, sig.sin, false)
		return in.execBlock(s.Handler, scope)
	case *ast.ThrowStmt:
		v, err := in.eval(s.Value, env)
		if err != nil {
			return err
		}
		if sin, ok := v.(*Sin); ok {
			return throwSin(sin, s.Sp)
		}
		return throwSin(&Sin{TypeName: s.TypeName, Message: v.Inspect()}, s.Sp)
	case *ast.LogStmt:
		v, err := in.eval(s.Value, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, v.Inspect())
		return nil
	case *ast.ExprStmt:
		_, err := in.eval(s.X, env)
		return err
	default:
		return fault(diag.RunInfo, "InternalError",
			fmt.Sprintf("unhandled statement %T", s), s.Span())
	}
}

func (in *Interp) eval(e ast.Expr, env *Env) (Value, error) {
	switch e := e.(type) {
	case *ast.NumberLit:
		return Number{Value: e.Value}, nil
	case *ast.StringLit:
		return String{Value: e.Value}, nil
	case *ast.BoolLit:
		return Boolean{Value: e.Value}, nil
	case *ast.NullLit:
		return Null{}, nil
	case *ast.UndefinedLit:
		return Undefined{}, nil
	case *ast.Ident:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		if b, ok := builtins[e.Name]; ok {
			return b, nil
		}
		return nil, fault(diag.RunUnknownName, "NameError",
			fmt.Sprintf("'%s' is not defined", e.Name), e.Sp)
	case *ast.TemplateString:
		var sb strings.Builder
		for _, part := range e.Parts {
			if part.Expr == nil {
				sb.WriteString(part.Chunk)
				continue
			}
			v, err := in.eval(part.Expr, env)
			if err != nil {
				return nil, err
			}
			sb.WriteString(v.Inspect())
		}
		return String{Value: sb.String()}, nil
	case *ast.ArrayLit:
		arr := &Array{Elems: make([]Value, 0, len(e.Elems))}
		for _, el := range e.Elems {
			v, err := in.eval(el, env)
			if err != nil {
				return nil, err
			}
			arr.Elems = append(arr.Elems, v)
		}
		return arr, nil
	case *ast.ObjectLit:
		obj := NewObject()
		for _, entry := range e.Entries {
			v, err := in.eval(entry.Value, env)
			if err != nil {
				return nil, err
			}
			obj.Set(entry.Key, v)
		}
		return obj, nil
	case *ast.UnaryExpr:
		return in.evalUnary(e, env)
	case *ast.BinaryExpr:
		return in.evalBinary(e, env)
	case *ast.AssignExpr:
		return in.evalAssign(e, env)
	case *ast.CallExpr:
		callee, err := in.eval(e.Callee, env)
		if err != nil {
			return nil, err
		}
		args := make([]Value, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := in.eval(a, env)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return in.callValue(callee, args, e.Sp)
	case *ast.MemberExpr:
		return in.evalMember(e, env)
	case *ast.IndexExpr:
		return in.evalIndex(e, env)
	case *ast.NewExpr:
		msg := ""
		if len(e.Args) > 0 {
			v, err := in.eval(e.Args[0], env)
			if err != nil {
				return nil, err
			}
			msg = v.Inspect()
		}
		return &Sin{TypeName: e.TypeName, Message: msg}, nil
	case *ast.ArrowFn:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.Name
		}
		return &Function{
			Params: params,
			Body:   e.BlockBody,
			Expr:   e.ExprBody,
			Env:    env,
			FnKind: ast.FnBlessed,
		}, nil
	default:
		return nil, fault(diag.RunInfo, "InternalError",
			fmt.Sprintf("unhandled expression %T", e), e.Span())
	}
}

func (in *Interp) evalUnary(e *ast.UnaryExpr, env *Env) (Value, error) {
	v, err := in.eval(e.X, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpNeg:
		n, ok := v.(Number)
		if !ok {
			return nil, fault(diag.RunBadOperand, "TypeError",
				fmt.Sprintf("cannot negate %s", v.Kind()), e.Sp)
		}
		return Number{Value: -n.Value}, nil
	case ast.OpNot:
		return Boolean{Value: !truthy(v)}, nil
	default:
		return nil, fault(diag.RunBadOperand, "TypeError",
			fmt.Sprintf("unknown unary operator %q", e.Op), e.Sp)
	}
}

func (in *Interp) evalBinary(e *ast.BinaryExpr, env *Env) (Value, error) {
	// && and || short-circuit and yield the deciding operand.
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		l, err := in.eval(e.L, env)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.OpAnd && !truthy(l) {
			return l, nil
		}
		if e.Op == ast.OpOr && truthy(l) {
			return l, nil
		}
		return in.eval(e.R, env)
	}

	l, err := in.eval(e.L, env)
	if err != nil {
		return nil, err
	}
	r, err := in.eval(e.R, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpEq:
		return Boolean{Value: valuesEqual(l, r)}, nil
	case ast.OpNe:
		return Boolean{Value: !valuesEqual(l, r)}, nil
	}

	// + concatenates when either side is a string.
	if e.Op == ast.OpAdd {
		if _, ok := l.(String); ok {
			return String{Value: l.Inspect() + r.Inspect()}, nil
		}
		if _, ok := r.(String); ok {
			return String{Value: l.Inspect() + r.Inspect()}, nil
		}
	}

	if ls, ok := l.(String); ok {
		if rs, ok := r.(String); ok {
			switch e.Op {
			case ast.OpLt:
				return Boolean{Value: ls.Value < rs.Value}, nil
			case ast.OpLe:
				return Boolean{Value: ls.Value <= rs.Value}, nil
			case ast.OpGt:
				return Boolean{Value: ls.Value > rs.Value}, nil
			case ast.OpGe:
				return Boolean{Value: ls.Value >= rs.Value}, nil
			}
		}
	}

	ln, lok := l.(Number)
	rn, rok := r.(Number)
	if !lok || !rok {
		return nil, fault(diag.RunBadOperand, "TypeError",
			fmt.Sprintf("operator %s needs numbers, got %s and %s", e.Op, l.Kind(), r.Kind()), e.Sp)
	}

	switch e.Op {
	case ast.OpAdd:
		return Number{Value: ln.Value + rn.Value}, nil
	case ast.OpSub:
		return Number{Value: ln.Value - rn.Value}, nil
	case ast.OpMul:
		return Number{Value: ln.Value * rn.Value}, nil
	case ast.OpDiv:
		if rn.Value == 0 {
			return nil, fault(diag.RunZeroDivision, "MathError", "division by zero", e.Sp)
		}
		return Number{Value: ln.Value / rn.Value}, nil
	case ast.OpMod:
		if rn.Value == 0 {
			return nil, fault(diag.RunZeroDivision, "MathError", "modulo by zero", e.Sp)
		}
		return Number{Value: math.Mod(ln.Value, rn.Value)}, nil
	case ast.OpLt:
		return Boolean{Value: ln.Value < rn.Value}, nil
	case ast.OpLe:
		return Boolean{Value: ln.Value <= rn.Value}, nil
	case ast.OpGt:
		return Boolean{Value: ln.Value > rn.Value}, nil
	case ast.OpGe:
		return Boolean{Value: ln.Value >= rn.Value}, nil
	default:
		return nil, fault(diag.RunBadOperand, "TypeError",
			fmt.Sprintf("unknown operator %q", e.Op), e.Sp)
	}
}

func (in *Interp) evalAssign(e *ast.AssignExpr, env *Env) (Value, error) {
	v, err := in.eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	switch target := e.Target.(type) {
	case *ast.Ident:
		found, allowed := env.Assign(target.Name, v)
		if !found {
			return nil, fault(diag.RunUnknownName, "NameError",
				fmt.Sprintf("'%s' is not defined", target.Name), target.Sp)
		}
		if !allowed {
			return nil, fault(diag.RunCovenantViolated, "CovenantError",
				fmt.Sprintf("covenant violated: cannot reassign '%s'", target.Name), target.Sp)
		}
		return v, nil
	case *ast.MemberExpr:
		obj, err := in.eval(target.Obj, env)
		if err != nil {
			return nil, err
		}
		o, ok := obj.(*Object)
		if !ok {
			return nil, fault(diag.RunBadMember, "TypeError",
				fmt.Sprintf("cannot set member on %s", obj.Kind()), target.Sp)
		}
		o.Set(target.Name, v)
		return v, nil
	case *ast.IndexExpr:
		obj, err := in.eval(target.Obj, env)
		if err != nil {
			return nil, err
		}
		idx, err := in.eval(target.Index, env)
		if err != nil {
			return nil, err
		}
		switch obj := obj.(type) {
		case *Array:
			i, err := arrayIndex(idx, len(obj.Elems), target.Sp)
			if err != nil {
				return nil, err
			}
			obj.Elems[i] = v
			return v, nil
		case *Object:
			key, ok := idx.(String)
			if !ok {
				return nil, fault(diag.RunBadMember, "TypeError",
					fmt.Sprintf("object keys are strings, got %s", idx.Kind()), target.Sp)
			}
			obj.Set(key.Value, v)
			return v, nil
		default:
			return nil, fault(diag.RunBadMember, "TypeError",
				fmt.Sprintf("cannot index %s", obj.Kind()), target.Sp)
		}
	default:
		return nil, fault(diag.RunBadOperand, "TypeError",
			"cannot assign to this expression", e.Sp)
	}
}

func (in *Interp) evalMember(e *ast.MemberExpr, env *Env) (Value, error) {
	obj, err := in.eval(e.Obj, env)
	if err != nil {
		return nil, err
	}
	switch obj := obj.(type) {
	case *Object:
		if v, ok := obj.Get(e.Name); ok {
			return v, nil
		}
		return Undefined{}, nil
	case *Array:
		if e.Name == "length" {
			return Number{Value: float64(len(obj.Elems))}, nil
		}
	case String:
		if e.Name == "length" {
			return Number{Value: float64(len([]rune(obj.Value)))}, nil
		}
	case *Sin:
		switch e.Name {
		case "message":
			return String{Value: obj.Message}, nil
		case "name":
			return String{Value: obj.TypeName}, nil
		}
	}
	return nil, fault(diag.RunBadMember, "TypeError",
		fmt.Sprintf("%s has no member '%s'", obj.Kind(), e.Name), e.Sp)
}

func (in *Interp) evalIndex(e *ast.IndexExpr, env *Env) (Value, error) {
	obj, err := in.eval(e.Obj, env)
	if err != nil {
		return nil, err
	}
	idx, err := in.eval(e.Index, env)
	if err != nil {
		return nil, err
	}
	switch obj := obj.(type) {
	case *Array:
		i, err := arrayIndex(idx, len(obj.Elems), e.Sp)
		if err != nil {
			return nil, err
		}
		return obj.Elems[i], nil
	case *Object:
		key, ok := idx.(String)
		if !ok {
			return nil, fault(diag.RunBadMember, "TypeError",
				fmt.Sprintf("object keys are strings, got %s", idx.Kind()), e.Sp)
		}
		if v, ok := obj.Get(key.Value); ok {
			return v, nil
		}
		return Undefined{}, nil
	case String:
		runes := []rune(obj.Value)
		i, err := arrayIndex(idx, len(runes), e.Sp)
		if err != nil {
			return nil, err
		}
		return String{Value: string(runes[i])}, nil
	default:
		return nil, fault(diag.RunBadMember, "TypeError",
			fmt.Sprintf("cannot index %s", obj.Kind()), e.Sp)
	}
}

// arrayIndex validates a numeric index against a length.
func arrayIndex(idx Value, length int, sp source.Span) (int, error) {
	n, ok := idx.(Number)
	if !ok {
		return 0, fault(diag.RunBadMember, "TypeError",
			fmt.Sprintf("index must be a number, got %s", idx.Kind()), sp)
	}
	i := int(n.Value)
	if float64(i) != n.Value || i < 0 || i >= length {
		return 0, fault(diag.RunBadMember, "RangeError",
			fmt.Sprintf("index %s out of range", n.Inspect()), sp)
	}
	return i, nil
}
