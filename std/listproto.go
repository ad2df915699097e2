package std

import (
	"sort"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
)

// installListProto wires the list prototype's methods, grounded on the
// teacher's array-method table in std/common.go/std/arrays.go
// (push/pop/shift/unshift/sort/reverse/contains/index/find/some/every),
// adapted to mutate or read an *objects.List receiver directly rather
// than the teacher's GoMixObject-returning Callback shape.
func installListProto(p *objects.Prototype) {
	p.Define("push", 1, listPush)
	p.Define("pop", 0, listPop)
	p.Define("shift", 0, listShift)
	p.Define("unshift", 1, listUnshift)
	p.Define("reverse", 0, listReverse)
	p.Define("sort", 0, listSort)
	p.Define("contains", 1, listContains)
	p.Define("index_of", 1, listIndexOf)
	p.Define("slice", 2, listSlice)
	p.Define("each", 1, listEach)
	p.Define("map", 1, listMap)
	p.Define("filter", 1, listFilter)
	p.Define("reduce", 2, listReduce)
}

func asList(recv objects.Value, cursor lexer.Cursor) (*objects.List, *objects.Signal) {
	l, ok := recv.(*objects.List)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, cursor, "expected a list receiver, got %s", recv.Kind())
	}
	return l, nil
}

func listPush(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	l.Elements = append(l.Elements, args[0])
	return l, nil
}

func listPop(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	if len(l.Elements) == 0 {
		return nil, objects.NewError(objects.ErrKindValue, lexer.Cursor{}, "pop() on an empty list")
	}
	last := l.Elements[len(l.Elements)-1]
	l.Elements = l.Elements[:len(l.Elements)-1]
	return last, nil
}

func listShift(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	if len(l.Elements) == 0 {
		return nil, objects.NewError(objects.ErrKindValue, lexer.Cursor{}, "shift() on an empty list")
	}
	first := l.Elements[0]
	l.Elements = l.Elements[1:]
	return first, nil
}

func listUnshift(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	l.Elements = append([]objects.Value{args[0]}, l.Elements...)
	return l, nil
}

func listReverse(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	out := make([]objects.Value, len(l.Elements))
	for i, v := range l.Elements {
		out[len(l.Elements)-1-i] = v
	}
	return objects.NewList(out...), nil
}

func listSort(_ objects.Runtime, recv objects.Value, _ []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	var sortErr *objects.Signal
	sort.SliceStable(l.Elements, func(i, j int) bool {
		less, err := lessValues(l.Elements[i], l.Elements[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return l, nil
}

// lessValues orders numbers and strings natively; any other pairing is
// a type error since the language defines no total order for lists,
// dicts, objects, or callables.
func lessValues(a, b objects.Value) (bool, *objects.Signal) {
	switch av := a.(type) {
	case objects.Number:
		bv, ok := b.(objects.Number)
		if !ok {
			return false, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "cannot compare number with %s", b.Kind())
		}
		return av < bv, nil
	case *objects.String:
		bv, ok := b.(*objects.String)
		if !ok {
			return false, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "cannot compare string with %s", b.Kind())
		}
		return av.Value < bv.Value, nil
	default:
		return false, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "%s has no natural ordering", a.Kind())
	}
}

func listContains(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	for _, v := range l.Elements {
		if valuesEqual(v, args[0]) {
			return objects.Boolean(true), nil
		}
	}
	return objects.Boolean(false), nil
}

func listIndexOf(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	for i, v := range l.Elements {
		if valuesEqual(v, args[0]) {
			return objects.Number(i), nil
		}
	}
	return objects.Number(-1), nil
}

func listSlice(_ objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	start, ok1 := args[0].(objects.Number)
	end, ok2 := args[1].(objects.Number)
	if !ok1 || !ok2 {
		return nil, objects.NewError(objects.ErrKindType, lexer.Cursor{}, "slice(start, end) requires two numbers")
	}
	n := len(l.Elements)
	lo, hi := clampRange(int(start), int(end), n)
	out := make([]objects.Value, hi-lo)
	copy(out, l.Elements[lo:hi])
	return objects.NewList(out...), nil
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func listEach(rt objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	for _, v := range l.Elements {
		if _, sig := rt.Call(args[0], []objects.Value{v}); sig != nil {
			return nil, sig
		}
	}
	return objects.NullValue, nil
}

func listMap(rt objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	out := make([]objects.Value, len(l.Elements))
	for i, v := range l.Elements {
		res, sig := rt.Call(args[0], []objects.Value{v})
		if sig != nil {
			return nil, sig
		}
		out[i] = res
	}
	return objects.NewList(out...), nil
}

func listFilter(rt objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	out := make([]objects.Value, 0, len(l.Elements))
	for _, v := range l.Elements {
		res, sig := rt.Call(args[0], []objects.Value{v})
		if sig != nil {
			return nil, sig
		}
		if res.Truthy() {
			out = append(out, v)
		}
	}
	return objects.NewList(out...), nil
}

func listReduce(rt objects.Runtime, recv objects.Value, args []objects.Value) (objects.Value, *objects.Signal) {
	l, sig := asList(recv, lexer.Cursor{})
	if sig != nil {
		return nil, sig
	}
	acc := args[1]
	for _, v := range l.Elements {
		res, sig := rt.Call(args[0], []objects.Value{acc, v})
		if sig != nil {
			return nil, sig
		}
		acc = res
	}
	return acc, nil
}
