// Package objects implements Quetite's runtime value representations: the
// Value variant, object descriptors, instances, prototypes, callables, and
// the evaluator's non-local control-flow signal.
package objects

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the tagged variant every runtime value satisfies: null, boolean,
// number, string, list, dict, callable, object, or object-instance.
type Value interface {
	// Kind returns the stable, lower-case name of the value's variant, used
	// in diagnostics and type_of().
	Kind() string
	// Display renders the value the way print() and to_string() do.
	Display() string
	// Truthy implements the language's truthiness rule: false, Null, and
	// numeric zero are falsy; everything else is truthy.
	Truthy() bool
}

// Null is the language's singleton null value.
type Null struct{}

var NullValue Value = Null{}

func (Null) Kind() string    { return "null" }
func (Null) Display() string { return "Null" }
func (Null) Truthy() bool    { return false }

// Boolean is a plain value type; booleans compare and copy by value.
type Boolean bool

func (b Boolean) Kind() string    { return "boolean" }
func (b Boolean) Display() string { return strconv.FormatBool(bool(b)) }
func (b Boolean) Truthy() bool    { return bool(b) }

// Number is Quetite's sole numeric kind: a 64-bit IEEE float compared
// with ordinary float equality (see eval's valuesEqual).
type Number float64

func (n Number) Kind() string { return "number" }

func (n Number) Display() string {
	f := float64(n)
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (n Number) Truthy() bool { return float64(n) != 0 }

// String is a mutable, shared string container: index-assignment mutates
// Value in place, and every reference to the same *String observes the
// change. Equality, unlike list/dict/instance, still compares by content
// (see eval's valuesEqual) — only the storage is shared-mutable.
type String struct {
	Value string
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) Kind() string    { return "string" }
func (s *String) Display() string { return s.Value }
func (s *String) Truthy() bool    { return true }

// Runes returns the string's logical Unicode characters, used by for-in
// iteration and indexing.
func (s *String) Runes() []rune { return []rune(s.Value) }

// List is a mutable, shared, ordered sequence.
type List struct {
	Elements []Value
}

func NewList(elements ...Value) *List { return &List{Elements: elements} }

func (l *List) Kind() string { return "list" }

func (l *List) Display() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		if s, ok := e.(*String); ok {
			parts[i] = fmt.Sprintf("%q", s.Value)
		} else {
			parts[i] = e.Display()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Truthy() bool { return true }

// Dict is a mutable, shared, insertion-ordered mapping. Keys are restricted
// to hashable kinds (null, boolean, number, string); Keys preserves
// insertion order alongside the Pairs lookup table.
type Dict struct {
	Pairs map[string]Value
	Keys  []Value
}

func NewDict() *Dict {
	return &Dict{Pairs: make(map[string]Value)}
}

func (d *Dict) Kind() string { return "dict" }

func (d *Dict) Display() string {
	parts := make([]string, 0, len(d.Keys))
	for _, k := range d.Keys {
		key, _ := HashKey(k)
		v := d.Pairs[key]
		var vs string
		if s, ok := v.(*String); ok {
			vs = fmt.Sprintf("%q", s.Value)
		} else {
			vs = v.Display()
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k.Display(), vs))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *Dict) Truthy() bool { return true }

// Get looks up key, returning the stored value and whether it was present.
func (d *Dict) Get(key Value) (Value, bool) {
	hk, ok := HashKey(key)
	if !ok {
		return nil, false
	}
	v, found := d.Pairs[hk]
	return v, found
}

// Set inserts or overwrites key -> value, tracking insertion order for new
// keys only.
func (d *Dict) Set(key, value Value) bool {
	hk, ok := HashKey(key)
	if !ok {
		return false
	}
	if _, existed := d.Pairs[hk]; !existed {
		d.Keys = append(d.Keys, key)
	}
	d.Pairs[hk] = value
	return true
}

// HashKey converts a hashable value into a stable map key. Lists, dicts,
// callables, objects and instances are not hashable.
func HashKey(v Value) (string, bool) {
	switch val := v.(type) {
	case Null:
		return "null", true
	case Boolean:
		return "bool:" + strconv.FormatBool(bool(val)), true
	case Number:
		return "num:" + strconv.FormatFloat(float64(val), 'g', -1, 64), true
	case *String:
		return "str:" + val.Value, true
	default:
		return "", false
	}
}
