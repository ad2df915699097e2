package std

import (
	"os"
	"runtime"

	"github.com/qewer33/quetite/objects"
)

// newOSModule builds the os module, generalized from the teacher's
// std/os.go native set (getenv/args/platform), narrowed to the
// environment and argument surface SPEC_FULL.md §6 names.
func newOSModule() *objects.Object {
	b := newModuleBuilder("os")

	b.define("args", 0, func(_ objects.Runtime, _ objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		elems := make([]objects.Value, len(os.Args))
		for i, a := range os.Args {
			elems[i] = objects.NewString(a)
		}
		return objects.NewList(elems...), nil
	})
	b.define("env", 1, osEnv)
	b.define("exists", 1, osExists)
	b.define("platform", 0, func(_ objects.Runtime, _ objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		return objects.NewString(runtime.GOOS), nil
	})

	return b.obj
}

func osEnv(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	name, ok := args[0].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "env() name must be a string")
	}
	v, ok := os.LookupEnv(name.Value)
	if !ok {
		return objects.NullValue, nil
	}
	return objects.NewString(v), nil
}

func osExists(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	path, ok := args[0].(*objects.String)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, zeroCursor, "exists() path must be a string")
	}
	_, err := os.Stat(path.Value)
	return objects.Boolean(err == nil), nil
}
