package interp

// binding pairs a value with its mutability. Covenant bindings are
// immutable for their whole lifetime.
type binding struct {
	value   Value
	mutable bool
}

// Env is one lexical scope. Lookups walk the parent chain.
type Env struct {
	vars   map[string]binding
	parent *Env
}

// NewEnv returns a scope nested in parent; parent may be nil for the
// global scope.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]binding), parent: parent}
}

// Get resolves a name through the scope chain.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Define creates a binding in this scope, shadowing any outer one.
func (e *Env) Define(name string, v Value, mutable bool) {
	e.vars[name] = binding{value: v, mutable: mutable}
}

// Assign rewrites the nearest existing binding. It reports whether the
// name was found and, if found, whether the binding allowed the write.
func (e *Env) Assign(name string, v Value) (found, allowed bool) {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			if !b.mutable {
				return true, false
			}
			s.vars[name] = binding{value: v, mutable: true}
			return true, true
		}
	}
	return false, false
}
