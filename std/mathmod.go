package std

import (
	"math"

	"github.com/qewer33/quetite/objects"
)

// newMathModule builds the math module object, grounded on the
// teacher's std/math.go function table (abs/floor/ceil/round/sqrt/pow/
// min/max plus the trig family), wrapping Go's standard math package
// since no third-party numeric library appears anywhere in the example
// pack.
func newMathModule() *objects.Object {
	b := newModuleBuilder("math")

	b.define("sqrt", 1, mathUnary(math.Sqrt))
	b.define("abs", 1, mathUnary(math.Abs))
	b.define("floor", 1, mathUnary(math.Floor))
	b.define("ceil", 1, mathUnary(math.Ceil))
	b.define("round", 1, mathUnary(math.Round))
	b.define("sin", 1, mathUnary(math.Sin))
	b.define("cos", 1, mathUnary(math.Cos))
	b.define("tan", 1, mathUnary(math.Tan))
	b.define("log", 1, mathUnary(math.Log))
	b.define("log10", 1, mathUnary(math.Log10))
	b.define("exp", 1, mathUnary(math.Exp))
	b.define("pow", 2, mathPow)
	b.define("min", 2, mathMin)
	b.define("max", 2, mathMax)
	b.define("pi", 0, mathConst(math.Pi))
	b.define("e", 0, mathConst(math.E))

	return b.obj
}

func mathArg(v objects.Value, what string) (float64, *objects.Signal) {
	n, ok := v.(objects.Number)
	if !ok {
		return 0, objects.NewError(objects.ErrKindType, zeroCursor, "%s must be a number, got %s", what, v.Kind())
	}
	return float64(n), nil
}

func mathUnary(fn func(float64) float64) objects.NativeFunc {
	return func(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
		x, sig := mathArg(args[0], "argument")
		if sig != nil {
			return nil, sig
		}
		return objects.Number(fn(x)), nil
	}
}

func mathConst(v float64) objects.NativeFunc {
	return func(_ objects.Runtime, _ objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		return objects.Number(v), nil
	}
}

func mathPow(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	x, sig := mathArg(args[0], "base")
	if sig != nil {
		return nil, sig
	}
	y, sig := mathArg(args[1], "exponent")
	if sig != nil {
		return nil, sig
	}
	return objects.Number(math.Pow(x, y)), nil
}

func mathMin(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	x, sig := mathArg(args[0], "first argument")
	if sig != nil {
		return nil, sig
	}
	y, sig := mathArg(args[1], "second argument")
	if sig != nil {
		return nil, sig
	}
	return objects.Number(math.Min(x, y)), nil
}

func mathMax(_ objects.Runtime, _ objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	x, sig := mathArg(args[0], "first argument")
	if sig != nil {
		return nil, sig
	}
	y, sig := mathArg(args[1], "second argument")
	if sig != nil {
		return nil, sig
	}
	return objects.Number(math.Max(x, y)), nil
}
