package std

import "github.com/qewer33/quetite/objects"

// installBooleanProto wires the boolean prototype. Booleans need no
// methods of their own beyond what the shared value prototype already
// gives every kind (to_string, type_of); this table exists mainly so
// the prototype-dispatch path has a concrete, non-nil table to consult
// for booleans rather than special-casing them as prototype-less.
func installBooleanProto(p *objects.Prototype) {
	p.Define("negate", 0, func(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		b, ok := recv.(objects.Boolean)
		if !ok {
			return nil, objects.NewError(objects.ErrKindType, zeroCursor, "expected a boolean receiver, got %s", recv.Kind())
		}
		return objects.Boolean(!b), nil
	})
}
