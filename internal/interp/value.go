package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/tristanpoland/DivinePL/internal/ast"
)

// Kind classifies a runtime value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunction
	KindBuiltin
	KindSin
	KindSalvation
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindSin:
		return "sin"
	case KindSalvation:
		return "salvation"
	default:
		return "value"
	}
}

// Value is a DivinePL runtime value. Inspect renders it the way
// revelation prints it.
type Value interface {
	Kind() Kind
	Inspect() string
}

// Undefined is the absent value.
type Undefined struct{}

func (Undefined) Kind() Kind      { return KindUndefined }
func (Undefined) Inspect() string { return "undefined" }

// Null is the deliberate empty value.
type Null struct{}

func (Null) Kind() Kind      { return KindNull }
func (Null) Inspect() string { return "null" }

// Boolean is true or false.
type Boolean struct {
	Value bool
}

func (b Boolean) Kind() Kind { return KindBool }
func (b Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Number is the single numeric type. Integral values print without a
// decimal point.
type Number struct {
	Value float64
}

func (n Number) Kind() Kind { return KindNumber }
func (n Number) Inspect() string {
	v := n.Value
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String is an immutable text value.
type String struct {
	Value string
}

func (s String) Kind() Kind      { return KindString }
func (s String) Inspect() string { return s.Value }

// Array is a mutable ordered list. Arrays compare by identity.
type Array struct {
	Elems []Value
}

func (a *Array) Kind() Kind { return KindArray }
func (a *Array) Inspect() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, el := range a.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteIfString(el))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Object is a mutable keyed record preserving insertion order.
type Object struct {
	keys    []string
	entries map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{entries: make(map[string]Value)}
}

// Get looks up a key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.entries[key]
	return v, ok
}

// Set writes a key, appending it to the order on first insertion.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.entries[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.entries[key] = v
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string { return o.keys }

func (o *Object) Kind() Kind { return KindObject }
func (o *Object) Inspect() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(quoteIfString(o.entries[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Function is a user-declared function closed over its environment.
// Arrow functions with an expression body set Expr instead of Body.
type Function struct {
	Name   string
	Params []string
	Body   *ast.Block
	Expr   ast.Expr
	Env    *Env
	FnKind ast.FnKind
}

func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) Inspect() string {
	if f.Name == "" {
		return "<fn>"
	}
	return "<fn " + f.Name + ">"
}

// Builtin is a function implemented by the interpreter.
type Builtin struct {
	Name string
	Fn   func(in *Interp, args []Value) (Value, error)
}

func (b *Builtin) Kind() Kind      { return KindBuiltin }
func (b *Builtin) Inspect() string { return "<builtin " + b.Name + ">" }

// Sin is a raised error value: `new Sin("message")` or a runtime
// fault surfaced into the forgive handler.
type Sin struct {
	TypeName string
	Message  string
}

func (s *Sin) Kind() Kind      { return KindSin }
func (s *Sin) Inspect() string { return s.TypeName + ": " + s.Message }

// Salvation is the success sentinel returned from genesis.
type Salvation struct{}

func (Salvation) Kind() Kind      { return KindSalvation }
func (Salvation) Inspect() string { return "salvation" }

// quoteIfString renders nested strings with quotes so container dumps
// stay readable.
func quoteIfString(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(s.Value)
	}
	return v.Inspect()
}

// truthy implements the condition test: false, null, undefined, 0,
// NaN, and "" are falsy.
func truthy(v Value) bool {
	switch v := v.(type) {
	case Undefined, Null:
		return false
	case Boolean:
		return v.Value
	case Number:
		return v.Value != 0 && !math.IsNaN(v.Value)
	case String:
		return v.Value != ""
	default:
		return true
	}
}

// valuesEqual implements ==. Scalars compare by value, containers and
// functions by identity.
func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Boolean:
		bb, ok := b.(Boolean)
		return ok && a.Value == bb.Value
	case Number:
		bb, ok := b.(Number)
		return ok && a.Value == bb.Value
	case String:
		bb, ok := b.(String)
		return ok && a.Value == bb.Value
	case Salvation:
		_, ok := b.(Salvation)
		return ok
	default:
		return a == b
	}
}
