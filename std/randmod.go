package std

import (
	"math/rand/v2"

	"github.com/qewer33/quetite/objects"
)

// newRandModule builds the rand module object over math/rand/v2's
// top-level generator, grounded on the teacher's std/math.go rand/
// rand_int natives but split into its own module per SPEC_FULL.md §6.
func newRandModule() *objects.Object {
	b := newModuleBuilder("rand")

	b.define("float", 0, func(_ objects.Runtime, _ objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		return objects.Number(rand.Float64()), nil
	})
	b.define("int", 2, randInt)

	return b.obj
}

func randInt(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	lo, sig := mathArg(args[0], "lower bound")
	if sig != nil {
		return nil, sig
	}
	hi, sig := mathArg(args[1], "upper bound")
	if sig != nil {
		return nil, sig
	}
	if hi <= lo {
		return nil, objects.NewError(objects.ErrKindValue, zeroCursor, "rand.int() requires lower < upper")
	}
	n := int64(hi) - int64(lo)
	return objects.Number(int64(lo) + rand.Int64N(n)), nil
}
