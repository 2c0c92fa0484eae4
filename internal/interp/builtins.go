package interp

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func builtinFault(code diag.Code, typeName, format string, args ...any) error {
	return fault(code, typeName, fmt.Sprintf(format, args...), source.Span{})
}

func argError(name string, format string, args ...any) error {
	return builtinFault(diag.RunBadOperand, "TypeError", name+": "+format, args...)
}

func wantNumber(name string, v Value) (float64, error) {
	n, ok := v.(Number)
	if !ok {
		return 0, argError(name, "expected a number, got %s", v.Kind())
	}
	return n.Value, nil
}

var builtins = map[string]*Builtin{
	"min": {Name: "min", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, argError("min", "needs at least one argument")
		}
		best := math.Inf(1)
		for _, a := range args {
			n, err := wantNumber("min", a)
			if err != nil {
				return nil, err
			}
			best = math.Min(best, n)
		}
		return Number{Value: best}, nil
	}},
	"max": {Name: "max", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, argError("max", "needs at least one argument")
		}
		best := math.Inf(-1)
		for _, a := range args {
			n, err := wantNumber("max", a)
			if err != nil {
				return nil, err
			}
			best = math.Max(best, n)
		}
		return Number{Value: best}, nil
	}},
	"abs": {Name: "abs", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("abs", "takes exactly one argument")
		}
		n, err := wantNumber("abs", args[0])
		if err != nil {
			return nil, err
		}
		return Number{Value: math.Abs(n)}, nil
	}},
	"floor": {Name: "floor", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("floor", "takes exactly one argument")
		}
		n, err := wantNumber("floor", args[0])
		if err != nil {
			return nil, err
		}
		return Number{Value: math.Floor(n)}, nil
	}},
	"ceil": {Name: "ceil", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("ceil", "takes exactly one argument")
		}
		n, err := wantNumber("ceil", args[0])
		if err != nil {
			return nil, err
		}
		return Number{Value: math.Ceil(n)}, nil
	}},
	"len": {Name: "len", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("len", "takes exactly one argument")
		}
		switch v := args[0].(type) {
		case String:
			return Number{Value: float64(len([]rune(v.Value)))}, nil
		case *Array:
			return Number{Value: float64(len(v.Elems))}, nil
		case *Object:
			return Number{Value: float64(len(v.Keys()))}, nil
		default:
			return nil, argError("len", "expected a string, array, or object, got %s", v.Kind())
		}
	}},
	"exalt": {Name: "exalt", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("exalt", "takes exactly one argument")
		}
		s, ok := args[0].(String)
		if !ok {
			return nil, argError("exalt", "expected a string, got %s", args[0].Kind())
		}
		return String{Value: upperCaser.String(s.Value)}, nil
	}},
	"humble": {Name: "humble", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("humble", "takes exactly one argument")
		}
		s, ok := args[0].(String)
		if !ok {
			return nil, argError("humble", "expected a string, got %s", args[0].Kind())
		}
		return String{Value: lowerCaser.String(s.Value)}, nil
	}},
	"keys": {Name: "keys", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, argError("keys", "takes exactly one argument")
		}
		obj, ok := args[0].(*Object)
		if !ok {
			return nil, argError("keys", "expected an object, got %s", args[0].Kind())
		}
		out := &Array{}
		for _, k := range obj.Keys() {
			out.Elems = append(out.Elems, String{Value: k})
		}
		return out, nil
	}},
	"push": {Name: "push", Fn: func(_ *Interp, args []Value) (Value, error) {
		if len(args) < 2 {
			return nil, argError("push", "takes an array and at least one value")
		}
		arr, ok := args[0].(*Array)
		if !ok {
			return nil, argError("push", "expected an array, got %s", args[0].Kind())
		}
		arr.Elems = append(arr.Elems, args[1:]...)
		return Number{Value: float64(len(arr.Elems))}, nil
	}},
}
