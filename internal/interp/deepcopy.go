package interp

// deepCopy clones a value so miracle callees cannot mutate the
// caller's data. Scalars are immutable and pass through; functions and
// builtins keep their identity.
func deepCopy(v Value) Value {
	switch v := v.(type) {
	case *Array:
		out := &Array{Elems: make([]Value, len(v.Elems))}
		for i, el := range v.Elems {
			out.Elems[i] = deepCopy(el)
		}
		return out
	case *Object:
		out := NewObject()
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			out.Set(k, deepCopy(val))
		}
		return out
	default:
		return v
	}
}
