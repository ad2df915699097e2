package eval

import (
	"math"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/parser"
)

// evalBinaryOp implements §4.4's arithmetic/comparison/equality table.
// `+` alone tolerates mismatched non-numeric operands (evaluates to
// null); every other arithmetic operator reports a type error on
// anything but two numbers, per §7's "arithmetic on unexpected types".
func evalBinaryOp(op parser.BinaryOp, left, right objects.Value, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	switch op {
	case parser.OpAdd:
		if ln, ok := left.(objects.Number); ok {
			if rn, ok := right.(objects.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(*objects.String); ok {
			if rs, ok := right.(*objects.String); ok {
				return objects.NewString(ls.Value + rs.Value), nil
			}
		}
		return objects.NullValue, nil
	case parser.OpSub:
		return numericOp(left, right, cursor, func(a, b float64) float64 { return a - b })
	case parser.OpMul:
		return numericOp(left, right, cursor, func(a, b float64) float64 { return a * b })
	case parser.OpDiv:
		return numericOp(left, right, cursor, func(a, b float64) float64 { return a / b })
	case parser.OpMod:
		return numericOp(left, right, cursor, math.Mod)
	case parser.OpPow:
		return numericOp(left, right, cursor, math.Pow)
	case parser.OpEq:
		return objects.Boolean(valuesEqual(left, right)), nil
	case parser.OpNe:
		return objects.Boolean(!valuesEqual(left, right)), nil
	case parser.OpLt:
		return comparisonOp(left, right, cursor, func(a, b float64) bool { return a < b })
	case parser.OpLe:
		return comparisonOp(left, right, cursor, func(a, b float64) bool { return a <= b })
	case parser.OpGt:
		return comparisonOp(left, right, cursor, func(a, b float64) bool { return a > b })
	case parser.OpGe:
		return comparisonOp(left, right, cursor, func(a, b float64) bool { return a >= b })
	default:
		return nil, objects.NewError(objects.ErrKindNative, cursor, "unhandled binary operator")
	}
}

func numericOp(left, right objects.Value, cursor lexer.Cursor, fn func(a, b float64) float64) (objects.Value, *objects.Signal) {
	ln, lok := left.(objects.Number)
	rn, rok := right.(objects.Number)
	if !lok || !rok {
		return nil, objects.NewError(objects.ErrKindType, cursor, "arithmetic requires two numbers, got %s and %s", kindOf(left), kindOf(right))
	}
	return objects.Number(fn(float64(ln), float64(rn))), nil
}

func comparisonOp(left, right objects.Value, cursor lexer.Cursor, fn func(a, b float64) bool) (objects.Value, *objects.Signal) {
	ln, lok := left.(objects.Number)
	rn, rok := right.(objects.Number)
	if !lok || !rok {
		return nil, objects.NewError(objects.ErrKindType, cursor, "comparison requires two numbers, got %s and %s", kindOf(left), kindOf(right))
	}
	return objects.Boolean(fn(float64(ln), float64(rn))), nil
}

// valuesEqual implements §4.4's equality rule: compare by tag and
// value; numbers use plain IEEE float equality (so NaN != NaN — the resolved
// Open Question in DESIGN.md); lists, dicts, instances, and objects
// compare by reference identity; callables compare by name; null
// equals null.
func valuesEqual(left, right objects.Value) bool {
	switch l := left.(type) {
	case objects.Null:
		_, ok := right.(objects.Null)
		return ok
	case objects.Boolean:
		r, ok := right.(objects.Boolean)
		return ok && l == r
	case objects.Number:
		r, ok := right.(objects.Number)
		return ok && float64(l) == float64(r)
	case *objects.String:
		r, ok := right.(*objects.String)
		return ok && l.Value == r.Value
	case *objects.List:
		r, ok := right.(*objects.List)
		return ok && l == r
	case *objects.Dict:
		r, ok := right.(*objects.Dict)
		return ok && l == r
	case *objects.Instance:
		r, ok := right.(*objects.Instance)
		return ok && l == r
	case *objects.Object:
		r, ok := right.(*objects.Object)
		return ok && l == r
	case objects.Callable:
		r, ok := right.(objects.Callable)
		return ok && l.CallableName() == r.CallableName()
	default:
		return false
	}
}
