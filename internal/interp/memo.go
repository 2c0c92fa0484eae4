package interp

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"
)

// memoKey derives a cache key for a miracle invocation: the *Function
// identity plus a hash of a canonical encoding of its arguments, so
// distinct functions sharing a name never collide. Values without a
// stable encoding (functions, sins) report ok=false and the call runs
// unmemoized.
type memoKeyT struct {
	fn   *Function
	args string
}

func memoKey(fn *Function, args []Value) (memoKeyT, bool) {
	enc := make([]any, 0, len(args))
	for _, a := range args {
		c, ok := canonical(a)
		if !ok {
			return memoKeyT{}, false
		}
		enc = append(enc, c)
	}
	raw, err := msgpack.Marshal(enc)
	if err != nil {
		return memoKeyT{}, false
	}
	sum := sha256.Sum256(raw)
	return memoKeyT{fn: fn, args: hex.EncodeToString(sum[:])}, true
}

// canonical lowers a value to a deterministic encodable shape. Each
// composite is tagged with its kind so "1" and 1 and [1] never
// collide.
func canonical(v Value) (any, bool) {
	switch v := v.(type) {
	case Undefined:
		return []any{"undef"}, true
	case Null:
		return []any{"null"}, true
	case Boolean:
		return []any{"bool", v.Value}, true
	case Number:
		return []any{"num", v.Value}, true
	case String:
		return []any{"str", v.Value}, true
	case Salvation:
		return []any{"salvation"}, true
	case *Array:
		out := make([]any, 0, len(v.Elems)+1)
		out = append(out, "arr")
		for _, el := range v.Elems {
			c, ok := canonical(el)
			if !ok {
				return nil, false
			}
			out = append(out, c)
		}
		return out, true
	case *Object:
		out := make([]any, 0, 2*len(v.Keys())+1)
		out = append(out, "obj")
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			c, ok := canonical(val)
			if !ok {
				return nil, false
			}
			out = append(out, k, c)
		}
		return out, true
	default:
		return nil, false
	}
}
