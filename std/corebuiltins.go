package std

import (
	"fmt"
	"strconv"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/scope"
)

// installCoreBuiltins defines the small set of bare-global natives
// every Quetite program gets without a `use`: print (the language's
// only output mechanism, per spec.md's seed scenarios), len, type_of,
// to_string, to_number, and to_bool. Grounded on the teacher's
// commonMethods table in std/common.go (print/length/to_string/typeof),
// renamed to Quetite's snake_case identifier convention.
func installCoreBuiltins(globals *scope.Scope) {
	globals.Define("print", objects.NewNative("print", 1, false, builtinPrint))
	globals.Define("len", objects.NewNative("len", 1, false, builtinLen))
	globals.Define("type_of", objects.NewNative("type_of", 1, false, builtinTypeOf))
	globals.Define("to_string", objects.NewNative("to_string", 1, false, builtinToString))
	globals.Define("to_number", objects.NewNative("to_number", 1, false, builtinToNumber))
	globals.Define("to_bool", objects.NewNative("to_bool", 1, false, builtinToBool))
}

func builtinPrint(rt objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	fmt.Fprintln(rt.Output(), args[0].Display())
	return objects.NullValue, nil
}

func builtinLen(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	switch v := args[0].(type) {
	case *objects.String:
		return objects.Number(len(v.Runes())), nil
	case *objects.List:
		return objects.Number(len(v.Elements)), nil
	case *objects.Dict:
		return objects.Number(len(v.Keys)), nil
	default:
		return nil, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "len() has no meaning for %s", v.Kind())
	}
}

func builtinTypeOf(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	return objects.NewString(args[0].Kind()), nil
}

func builtinToString(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	return objects.NewString(args[0].Display()), nil
}

func builtinToNumber(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	switch v := args[0].(type) {
	case objects.Number:
		return v, nil
	case *objects.String:
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, objects.NewError(objects.ErrKindValue, lexer.Cursor{}, "cannot parse %q as a number", v.Value)
		}
		return objects.Number(f), nil
	case objects.Boolean:
		if v {
			return objects.Number(1), nil
		}
		return objects.Number(0), nil
	default:
		return nil, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "cannot convert %s to a number", v.Kind())
	}
}

func builtinToBool(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	return objects.Boolean(args[0].Truthy()), nil
}
