package std

import (
	"strings"

	"github.com/qewer33/quetite/objects"
)

// newStringsModule builds the strings module's free functions
// (split/join/trim/upper/lower/replace/contains/index_of), the
// module-call-syntax counterpart to the string prototype's receiver
// methods in stringproto.go — both wrap the same stdlib strings calls,
// grounded on the teacher's std/strings.go.
func newStringsModule() *objects.Object {
	b := newModuleBuilder("strings")

	b.define("join", 2, strJoin)
	b.define("split", 2, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		return strSplit(rt, args[0], args[1:])
	})
	b.define("trim", 1, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		return strTrim(rt, args[0], nil)
	})
	b.define("upper", 1, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		return strUpper(rt, args[0], nil)
	})
	b.define("lower", 1, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		return strLower(rt, args[0], nil)
	})
	b.define("replace", 3, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		return strReplace(rt, args[0], args[1:])
	})
	b.define("contains", 2, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		return strContains(rt, args[0], args[1:])
	})
	b.define("index_of", 2, func(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		return strIndexOf(rt, args[0], args[1:])
	})

	return b.obj
}

// strJoin concatenates a list of strings with sep, the inverse of
// String.split.
func strJoin(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	list, ok := args[0].(*objects.List)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "join() first argument must be a list")
	}
	sep, ok := args[1].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "join() separator must be a string")
	}
	parts := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		s, ok := e.(*objects.String)
		if !ok {
			return nil, objects.NewError(objects.ErrKindType, zeroCursor, "join() requires a list of strings, found %s", e.Kind())
		}
		parts[i] = s.Value
	}
	return objects.NewString(strings.Join(parts, sep.Value)), nil
}
