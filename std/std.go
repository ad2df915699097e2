// Package std installs Quetite's native extension surface: the handful
// of core builtins every program gets for free (print, len, type_of,
// to_string, to_number, to_bool), a representative set of domain
// modules exposed as plain global Objects (math, rand, time, os, io,
// strings, regex, json), and the five primitive prototypes (list,
// string, number, boolean, dict) consulted by property access on
// values that aren't objects or instances.
//
// Grounded on the teacher's std package shape (one file per concern,
// a registration list per file) but rebuilt around objects.NativeFunc
// rather than the teacher's io.Writer-threading Callback signature,
// which Quetite's Runtime/Signal-based evaluator has no use for. Only
// the Go standard library backs every module here: no third-party
// numeric, string, or serialization library appears anywhere in the
// example pack, so reaching for one would be inventing a dependency
// rather than learning one (see DESIGN.md).
package std

import (
	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/scope"
)

// zeroCursor is used by natives, which have no source position of
// their own to attach to an error.
var zeroCursor = lexer.Cursor{}

// Install seeds globals with the core builtins and domain module
// objects, and populates protos with the primitive prototype method
// tables. Its signature matches eval.Seeder so cmd/quetite can hand it
// straight to eval.NewLoader and to the root Evaluator's own globals.
func Install(globals *scope.Scope, protos *objects.Prototypes) {
	installCoreBuiltins(globals)

	globals.Define("math", newMathModule())
	globals.Define("rand", newRandModule())
	globals.Define("time", newTimeModule())
	globals.Define("os", newOSModule())
	globals.Define("io", newIOModule())
	globals.Define("strings", newStringsModule())
	globals.Define("regex", newRegexModule())
	globals.Define("json", newJSONModule())

	// The same *Prototypes struct is shared by every Evaluator the
	// Loader spawns for a `use`d file (see eval/loader.go). Each one
	// calls Install on its own fresh globals, so the prototype tables
	// themselves — identical across every call — are built exactly
	// once and left alone afterward.
	if protos.Value == nil {
		installPrototypes(protos)
	}
}

// newModule creates a plain namespace Object: calling math.sqrt(x)
// reads the "math" global (an Object), looks up its "sqrt" method
// (an unbound Native, per propertyGet's Object case which returns the
// method as-is rather than wrapping it in a BoundMethod), and calls it
// directly — the same capability record shape §6 describes for every
// native, just grouped under a name instead of installed bare.
func newModule(name string) *objects.Object {
	return objects.NewObject(name)
}

func (m *moduleBuilder) define(name string, arity int, fn objects.NativeFunc) {
	m.obj.Methods[name] = objects.NewNative(name, arity, false, fn)
}

// moduleBuilder is a thin convenience wrapper so each *mod.go file can
// register its functions in one expression per builtin, mirroring the
// teacher's declarative Builtins-slice style without needing the
// teacher's separate init()-time registration pass.
type moduleBuilder struct {
	obj *objects.Object
}

func newModuleBuilder(name string) *moduleBuilder {
	return &moduleBuilder{obj: newModule(name)}
}
