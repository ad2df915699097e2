package std

import "github.com/qewer33/quetite/objects"

// valuesEqual mirrors eval's value-equality rule (tag plus value for
// primitives, reference identity for lists/dicts/instances/objects) so
// prototype methods like list.contains/index_of and dict.has don't need
// the eval package, whose own valuesEqual is unexported.
func valuesEqual(a, b objects.Value) bool {
	switch av := a.(type) {
	case objects.Null:
		_, ok := b.(objects.Null)
		return ok
	case objects.Boolean:
		bv, ok := b.(objects.Boolean)
		return ok && av == bv
	case objects.Number:
		bv, ok := b.(objects.Number)
		return ok && av == bv
	case *objects.String:
		bv, ok := b.(*objects.String)
		return ok && av.Value == bv.Value
	case *objects.List:
		bv, ok := b.(*objects.List)
		return ok && av == bv
	case *objects.Dict:
		bv, ok := b.(*objects.Dict)
		return ok && av == bv
	case *objects.Instance:
		bv, ok := b.(*objects.Instance)
		return ok && av == bv
	case *objects.Object:
		bv, ok := b.(*objects.Object)
		return ok && av == bv
	default:
		return false
	}
}
