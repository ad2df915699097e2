package eval

import (
	"math"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/parser"
)

// evalExpr dispatches on the expression's concrete type and returns
// either a value or a Signal to propagate (always a failure signal —
// expressions never themselves produce return/break/continue, though
// evaluating a call's body can surface one that must bubble past the
// call site as a failure if it is not a return).
func (e *Evaluator) evalExpr(expr parser.Expr) (objects.Value, *objects.Signal) {
	switch x := expr.(type) {
	case *parser.NullLiteral:
		return objects.NullValue, nil
	case *parser.NumberLiteral:
		return objects.Number(x.Value), nil
	case *parser.StringLiteral:
		return objects.NewString(x.Value), nil
	case *parser.BooleanLiteral:
		return objects.Boolean(x.Value), nil
	case *parser.ListExpr:
		return e.evalList(x)
	case *parser.DictExpr:
		return e.evalDict(x)
	case *parser.RangeExpr:
		return e.evalRange(x)
	case *parser.IdentifierExpr:
		return e.evalIdentifier(x)
	case *parser.SelfExpr:
		return e.evalSelf(x)
	case *parser.AssignExpr:
		return e.evalAssign(x)
	case *parser.BinaryExpr:
		return e.evalBinary(x)
	case *parser.UnaryExpr:
		return e.evalUnary(x)
	case *parser.LogicalExpr:
		return e.evalLogical(x)
	case *parser.GroupingExpr:
		return e.evalExpr(x.Inner)
	case *parser.TernaryExpr:
		return e.evalTernary(x)
	case *parser.CallExpr:
		return e.evalCall(x)
	case *parser.IndexExpr:
		return e.evalIndex(x)
	case *parser.IndexSetExpr:
		return e.evalIndexSet(x)
	case *parser.PropertyExpr:
		return e.evalProperty(x)
	case *parser.PropertySetExpr:
		return e.evalPropertySet(x)
	default:
		return nil, objects.NewError(objects.ErrKindNative, expr.Cursor(), "unhandled expression type %T", expr)
	}
}

func (e *Evaluator) evalList(x *parser.ListExpr) (objects.Value, *objects.Signal) {
	elems := make([]objects.Value, 0, len(x.Elements))
	for _, el := range x.Elements {
		v, sig := e.evalExpr(el)
		if sig != nil {
			return nil, sig
		}
		elems = append(elems, v)
	}
	return objects.NewList(elems...), nil
}

func (e *Evaluator) evalDict(x *parser.DictExpr) (objects.Value, *objects.Signal) {
	d := objects.NewDict()
	for i := range x.Keys {
		k, sig := e.evalExpr(x.Keys[i])
		if sig != nil {
			return nil, sig
		}
		v, sig := e.evalExpr(x.Values[i])
		if sig != nil {
			return nil, sig
		}
		if !d.Set(k, v) {
			return nil, objects.NewError(objects.ErrKindType, x.Cursor(), "%s is not a valid dict key", kindOf(k))
		}
	}
	return d, nil
}

// evalRange implements §4.4's range construction: direction is always
// inferred from sign(end-start), so only a literal step of 0 diverges
// (resolved Open Question — see DESIGN.md).
func (e *Evaluator) evalRange(x *parser.RangeExpr) (objects.Value, *objects.Signal) {
	startV, sig := e.evalExpr(x.Start)
	if sig != nil {
		return nil, sig
	}
	endV, sig := e.evalExpr(x.End)
	if sig != nil {
		return nil, sig
	}
	start, ok := startV.(objects.Number)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, x.Cursor(), "range bounds must be numbers, got %s", kindOf(startV))
	}
	end, ok := endV.(objects.Number)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, x.Cursor(), "range bounds must be numbers, got %s", kindOf(endV))
	}

	step := 1.0
	if x.Step != nil {
		stepV, sig := e.evalExpr(x.Step)
		if sig != nil {
			return nil, sig
		}
		stepN, ok := stepV.(objects.Number)
		if !ok {
			return nil, objects.NewError(objects.ErrKindType, x.Cursor(), "range step must be a number, got %s", kindOf(stepV))
		}
		step = float64(stepN)
		if step == 0 {
			return nil, objects.NewError(objects.ErrKindValue, x.Cursor(), "range step must not be 0")
		}
	}
	step = math.Abs(step)
	if float64(end) < float64(start) {
		step = -step
	}

	var elems []objects.Value
	if step > 0 {
		for v := float64(start); v < float64(end) || (x.Inclusive && v == float64(end)); v += step {
			elems = append(elems, objects.Number(v))
		}
	} else {
		for v := float64(start); v > float64(end) || (x.Inclusive && v == float64(end)); v += step {
			elems = append(elems, objects.Number(v))
		}
	}
	return objects.NewList(elems...), nil
}

// evalIdentifier implements §4.4's "Environment access via resolved
// distance": a non-nil ResolvedDistance fetches directly from that
// frame; nil falls back to a global lookup.
func (e *Evaluator) evalIdentifier(x *parser.IdentifierExpr) (objects.Value, *objects.Signal) {
	if x.ResolvedDistance != nil {
		if v, ok := e.Env.GetAt(*x.ResolvedDistance, x.Name); ok {
			return v, nil
		}
	} else if v, ok := e.Globals.Get(x.Name); ok {
		return v, nil
	}
	return nil, objects.NewError(objects.ErrKindName, x.Cursor(), "undefined name %q", x.Name)
}

func (e *Evaluator) evalSelf(x *parser.SelfExpr) (objects.Value, *objects.Signal) {
	if x.ResolvedDistance != nil {
		if v, ok := e.Env.GetAt(*x.ResolvedDistance, "self"); ok {
			return v, nil
		}
	}
	return nil, objects.NewError(objects.ErrKindName, x.Cursor(), "self used outside a bound method")
}

func (e *Evaluator) evalAssign(x *parser.AssignExpr) (objects.Value, *objects.Signal) {
	rhs, sig := e.evalExpr(x.Value)
	if sig != nil {
		return nil, sig
	}

	if x.Op != parser.OpAssign {
		var current objects.Value
		var ok bool
		if x.ResolvedDistance != nil {
			current, ok = e.Env.GetAt(*x.ResolvedDistance, x.Name)
		} else {
			current, ok = e.Globals.Get(x.Name)
		}
		if !ok {
			return nil, objects.NewError(objects.ErrKindName, x.Cursor(), "undefined name %q", x.Name)
		}
		v, sig := applyCompound(x.Op, current, rhs, x.Cursor())
		if sig != nil {
			return nil, sig
		}
		rhs = v
	}

	if x.ResolvedDistance != nil {
		e.Env.AssignAt(*x.ResolvedDistance, x.Name, rhs)
	} else if !e.Globals.Assign(x.Name, rhs) {
		return nil, objects.NewError(objects.ErrKindName, x.Cursor(), "undefined name %q", x.Name)
	}
	return rhs, nil
}

// applyCompound implements the `+=`/`-=` compound-assignment operators
// (post-inc/dec already desugared to these by the parser) in terms of
// the same arithmetic rules as binary `+`/`-`.
func applyCompound(op parser.AssignOp, current, rhs objects.Value, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	switch op {
	case parser.OpAddAssign:
		return evalBinaryOp(parser.OpAdd, current, rhs, cursor)
	case parser.OpSubAssign:
		return evalBinaryOp(parser.OpSub, current, rhs, cursor)
	default:
		return nil, objects.NewError(objects.ErrKindNative, cursor, "unhandled compound assignment operator")
	}
}

func (e *Evaluator) evalBinary(x *parser.BinaryExpr) (objects.Value, *objects.Signal) {
	left, sig := e.evalExpr(x.Left)
	if sig != nil {
		return nil, sig
	}
	// `??` short-circuits (§4.4): the right operand is never evaluated
	// when the left one is not null.
	if x.Op == parser.OpNullCoalesce {
		if _, isNull := left.(objects.Null); !isNull {
			return left, nil
		}
		return e.evalExpr(x.Right)
	}
	right, sig := e.evalExpr(x.Right)
	if sig != nil {
		return nil, sig
	}
	return evalBinaryOp(x.Op, left, right, x.Cursor())
}

func (e *Evaluator) evalUnary(x *parser.UnaryExpr) (objects.Value, *objects.Signal) {
	right, sig := e.evalExpr(x.Right)
	if sig != nil {
		return nil, sig
	}
	switch x.Op {
	case parser.OpNot:
		return objects.Boolean(!truthy(right)), nil
	case parser.OpNegate:
		n, ok := right.(objects.Number)
		if !ok {
			return nil, objects.NewError(objects.ErrKindType, x.Cursor(), "cannot negate %s", kindOf(right))
		}
		return objects.Number(-float64(n)), nil
	default:
		return nil, objects.NewError(objects.ErrKindNative, x.Cursor(), "unhandled unary operator")
	}
}

func (e *Evaluator) evalLogical(x *parser.LogicalExpr) (objects.Value, *objects.Signal) {
	left, sig := e.evalExpr(x.Left)
	if sig != nil {
		return nil, sig
	}
	if x.Op == parser.OpOr {
		if truthy(left) {
			return left, nil
		}
		return e.evalExpr(x.Right)
	}
	// OpAnd
	if !truthy(left) {
		return left, nil
	}
	return e.evalExpr(x.Right)
}

func (e *Evaluator) evalTernary(x *parser.TernaryExpr) (objects.Value, *objects.Signal) {
	cond, sig := e.evalExpr(x.Cond)
	if sig != nil {
		return nil, sig
	}
	if truthy(cond) {
		return e.evalExpr(x.Then)
	}
	return e.evalExpr(x.Else)
}

func (e *Evaluator) evalCall(x *parser.CallExpr) (objects.Value, *objects.Signal) {
	callee, sig := e.evalExpr(x.Callee)
	if sig != nil {
		return nil, sig
	}
	args := make([]objects.Value, 0, len(x.Args))
	for _, a := range x.Args {
		v, sig := e.evalExpr(a)
		if sig != nil {
			return nil, sig
		}
		args = append(args, v)
	}
	return e.callValue(callee, args, x.Cursor())
}

func (e *Evaluator) evalIndex(x *parser.IndexExpr) (objects.Value, *objects.Signal) {
	obj, sig := e.evalExpr(x.Object)
	if sig != nil {
		return nil, sig
	}
	idx, sig := e.evalExpr(x.Index)
	if sig != nil {
		return nil, sig
	}
	return indexGet(obj, idx, x.Cursor())
}

func (e *Evaluator) evalIndexSet(x *parser.IndexSetExpr) (objects.Value, *objects.Signal) {
	obj, sig := e.evalExpr(x.Object)
	if sig != nil {
		return nil, sig
	}
	idx, sig := e.evalExpr(x.Index)
	if sig != nil {
		return nil, sig
	}
	rhs, sig := e.evalExpr(x.Value)
	if sig != nil {
		return nil, sig
	}
	if x.Op != parser.OpAssign {
		current, sig := indexGet(obj, idx, x.Cursor())
		if sig != nil {
			return nil, sig
		}
		v, sig := applyCompound(x.Op, current, rhs, x.Cursor())
		if sig != nil {
			return nil, sig
		}
		rhs = v
	}
	return rhs, indexSet(obj, idx, rhs, x.Cursor())
}

func (e *Evaluator) evalProperty(x *parser.PropertyExpr) (objects.Value, *objects.Signal) {
	obj, sig := e.evalExpr(x.Object)
	if sig != nil {
		return nil, sig
	}
	return e.propertyGet(obj, x.Name, x.Cursor())
}

func (e *Evaluator) evalPropertySet(x *parser.PropertySetExpr) (objects.Value, *objects.Signal) {
	obj, sig := e.evalExpr(x.Object)
	if sig != nil {
		return nil, sig
	}
	rhs, sig := e.evalExpr(x.Value)
	if sig != nil {
		return nil, sig
	}
	if x.Op != parser.OpAssign {
		current, sig := e.propertyGet(obj, x.Name, x.Cursor())
		if sig != nil {
			return nil, sig
		}
		v, sig := applyCompound(x.Op, current, rhs, x.Cursor())
		if sig != nil {
			return nil, sig
		}
		rhs = v
	}
	inst, ok := obj.(*objects.Instance)
	if !ok {
		return nil, objects.NewError(objects.ErrKindType, x.Cursor(), "cannot set a property on %s", kindOf(obj))
	}
	inst.Fields[x.Name] = rhs
	return rhs, nil
}
