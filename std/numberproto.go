package std

import (
	"math"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
)

// installNumberProto wires the number prototype's methods over Go's
// standard math package, grounded on the teacher's std/math.go
// function set (abs/floor/ceil/round/sqrt/pow), offered here as
// receiver methods in addition to the math module's free functions.
func installNumberProto(p *objects.Prototype) {
	p.Define("abs", 0, numUnary(math.Abs))
	p.Define("floor", 0, numUnary(math.Floor))
	p.Define("ceil", 0, numUnary(math.Ceil))
	p.Define("round", 0, numUnary(math.Round))
	p.Define("sqrt", 0, numUnary(math.Sqrt))
	p.Define("pow", 1, numPow)
}

func asNumber(recv objects.Value, cursor lexer.Cursor) (objects.Number, *objects.Signal) {
	n, ok := recv.(objects.Number)
	if !ok {
		return 0, objects.NewError(objects.ErrKindType, cursor, "expected a number receiver, got %s", recv.Kind())
	}
	return n, nil
}

func numUnary(fn func(float64) float64) objects.NativeFunc {
	return func(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
		n, sig := asNumber(recv, lexer.Cursor{})
		if sig != nil {
			return nil, sig
		}
		return objects.Number(fn(float64(n))), nil
	}
}

func numPow(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	n, sig := asNumber(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	e, ok := args[0].(objects.Number)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "pow() exponent must be a number")
	}
	return objects.Number(math.Pow(float64(n), float64(e))), nil
}
