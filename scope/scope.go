// Package scope implements Quetite's runtime environment model: a chain
// of name-to-value frames, generalized from the teacher's Scope.LookUp /
// Assign shape with the distance-indexed access the resolver's output
// requires.
package scope

import "github.com/qewer33/quetite/objects"

// Scope is a single lexical frame: a binding table plus an optional
// enclosing frame. A closure retains a reference to the Scope it was
// created in; mutating a binding through Assign is visible to every value
// that shares the reference (§3: "mutation of that environment is
// visible to the closure").
type Scope struct {
	Values    map[string]objects.Value
	Enclosing *Scope
}

// New creates a scope enclosed by parent (nil for the global scope).
func New(parent *Scope) *Scope {
	return &Scope{Values: make(map[string]objects.Value), Enclosing: parent}
}

// Define binds name in this scope, overwriting any prior binding with the
// same name (the only ordering guarantee the spec's Environment makes).
func (s *Scope) Define(name string, value objects.Value) {
	s.Values[name] = value
}

// Get walks the enclosing chain looking for name, used for unresolved
// (global) reads per §4.4.
func (s *Scope) Get(name string) (objects.Value, bool) {
	for sc := s; sc != nil; sc = sc.Enclosing {
		if v, ok := sc.Values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign walks the enclosing chain to find name's defining scope and
// mutates it in place there; it does not create a new binding. Returns
// false if name is not defined anywhere in the chain.
func (s *Scope) Assign(name string, value objects.Value) bool {
	for sc := s; sc != nil; sc = sc.Enclosing {
		if _, ok := sc.Values[name]; ok {
			sc.Values[name] = value
			return true
		}
	}
	return false
}

// At walks exactly distance enclosing links outward from s. The resolver
// guarantees this always succeeds for nodes it has annotated (§4.4,
// Testable Property 2).
func (s *Scope) At(distance int) *Scope {
	sc := s
	for i := 0; i < distance; i++ {
		sc = sc.Enclosing
	}
	return sc
}

// GetAt fetches name directly from the frame distance steps outward,
// the resolved-distance fast path of §4.4's "Environment access via
// resolved distance".
func (s *Scope) GetAt(distance int, name string) (objects.Value, bool) {
	v, ok := s.At(distance).Values[name]
	return v, ok
}

// AssignAt mutates name directly in the frame distance steps outward.
func (s *Scope) AssignAt(distance int, name string, value objects.Value) {
	s.At(distance).Values[name] = value
}
