package eval

import (
	"github.com/qewer33/quetite/function"
	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/scope"
)

// indexGet implements §4.4's indexing rule for list, string, and (as a
// natural extension the spec never excludes) dict.
func indexGet(obj, idx objects.Value, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	switch o := obj.(type) {
	case *objects.List:
		i, sig := indexAsInt(idx, len(o.Elements), cursor)
		if sig != nil {
			return nil, sig
		}
		return o.Elements[i], nil
	case *objects.String:
		runes := o.Runes()
		i, sig := indexAsInt(idx, len(runes), cursor)
		if sig != nil {
			return nil, sig
		}
		return objects.NewString(string(runes[i])), nil
	case *objects.Dict:
		v, ok := o.Get(idx)
		if !ok {
			return nil, objects.NewError(objects.ErrKindValue, cursor, "key %s not found", idx.Display())
		}
		return v, nil
	default:
		return nil, objects.NewError(objects.ErrKindType, cursor, "cannot index into %s", kindOf(obj))
	}
}

// indexSet implements §4.4's index-assignment rule: list writes
// overwrite in place, string writes replace a single character (any
// non-string or non-single-character RHS is an error), dict writes
// insert or overwrite a key.
func indexSet(obj, idx, value objects.Value, cursor lexer.Cursor) *objects.Signal {
	switch o := obj.(type) {
	case *objects.List:
		i, sig := indexAsInt(idx, len(o.Elements), cursor)
		if sig != nil {
			return sig
		}
		o.Elements[i] = value
		return nil
	case *objects.String:
		runes := o.Runes()
		i, sig := indexAsInt(idx, len(runes), cursor)
		if sig != nil {
			return sig
		}
		rs, ok := value.(*objects.String)
		if !ok {
			return objects.NewError(objects.ErrKindType, cursor, "string index assignment requires a string, got %s", kindOf(value))
		}
		rv := rs.Runes()
		if len(rv) != 1 {
			return objects.NewError(objects.ErrKindValue, cursor, "string index assignment requires a one-character string")
		}
		runes[i] = rv[0]
		o.Value = string(runes)
		return nil
	case *objects.Dict:
		if !o.Set(idx, value) {
			return objects.NewError(objects.ErrKindType, cursor, "%s is not a valid dict key", kindOf(idx))
		}
		return nil
	default:
		return objects.NewError(objects.ErrKindType, cursor, "cannot index-assign into %s", kindOf(obj))
	}
}

func indexAsInt(idx objects.Value, length int, cursor lexer.Cursor) (int, *objects.Signal) {
	n, ok := idx.(objects.Number)
	if !ok {
		return 0, objects.NewError(objects.ErrKindType, cursor, "index must be a number, got %s", kindOf(idx))
	}
	i := int(n)
	if i < 0 || i >= length {
		return 0, objects.NewError(objects.ErrKindValue, cursor, "index %d out of range (length %d)", i, length)
	}
	return i, nil
}

// propertyGet implements §4.4's "Method binding" (instance field, then
// class method) and "Prototype dispatch" (primitive kinds) rules.
func (e *Evaluator) propertyGet(obj objects.Value, name string, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	switch o := obj.(type) {
	case *objects.Instance:
		if v, ok := o.Fields[name]; ok {
			return v, nil
		}
		if m, ok := o.Class.Method(name); ok {
			if m.Bound() {
				return objects.NewBoundMethod(o, m), nil
			}
			return m, nil
		}
		return nil, objects.NewError(objects.ErrKindName, cursor, "%q has no property %q", o.Class.Name, name)
	case *objects.Object:
		if m, ok := o.Method(name); ok {
			if m.Bound() {
				return nil, objects.NewError(objects.ErrKindValue, cursor, "bound method requires an instance")
			}
			return m, nil
		}
		return nil, objects.NewError(objects.ErrKindName, cursor, "object %q has no method %q", o.Name, name)
	default:
		proto := e.Prototypes.ForKind(obj)
		if proto == nil {
			return nil, objects.NewError(objects.ErrKindType, cursor, "%s has no properties", kindOf(obj))
		}
		native, ok := proto.Lookup(name)
		if !ok {
			return nil, objects.NewError(objects.ErrKindName, cursor, "no method %q on %s prototype", name, proto.Name)
		}
		return objects.NewBoundMethod(obj, native), nil
	}
}

// callValue implements §4.4's "Dispatch on calls": plain callables
// invoke directly, bound methods prepend their receiver, and calling
// an Object descriptor constructs an instance.
func (e *Evaluator) callValue(callee objects.Value, args []objects.Value, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	switch c := callee.(type) {
	case *objects.Native:
		if len(args) != c.Arity() {
			return nil, arityError(c.CallableName(), c.Arity(), len(args), cursor)
		}
		return c.Invoke(e, nil, args)
	case *function.Function:
		if len(args) != c.Arity() {
			return nil, arityError(c.CallableName(), c.Arity(), len(args), cursor)
		}
		return e.callUserFunction(c, args, cursor)
	case *objects.BoundMethod:
		return e.invokeMethodBound(c.Underlying, c.Receiver, args, cursor)
	case *objects.Object:
		return e.construct(c, args, cursor)
	default:
		return nil, objects.NewError(objects.ErrKindType, cursor, "%s is not callable", kindOf(callee))
	}
}

// invokeMethodBound calls a Method with an explicit receiver. A
// *objects.Native keeps the receiver out of its Arity/argument list
// (Invoke takes it separately); a *function.Function that is Bound()
// declares its receiver as an ordinary leading parameter (conventionally
// named "self" in source), so the receiver is prepended to args before
// positional binding and the arity check subtracts one for it. This
// split is what makes native-bound and user-bound methods interoperate
// under one BoundMethod wrapper (see DESIGN.md).
func (e *Evaluator) invokeMethodBound(m objects.Method, receiver objects.Value, args []objects.Value, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	if len(args) != m.EffectiveArity() {
		return nil, arityError(m.CallableName(), m.EffectiveArity(), len(args), cursor)
	}
	switch fn := m.(type) {
	case *objects.Native:
		return fn.Invoke(e, receiver, args)
	case *function.Function:
		fullArgs := args
		if fn.Bound() {
			fullArgs = make([]objects.Value, 0, len(args)+1)
			fullArgs = append(fullArgs, receiver)
			fullArgs = append(fullArgs, args...)
		}
		return e.callUserFunction(fn, fullArgs, cursor)
	default:
		return nil, objects.NewError(objects.ErrKindNative, cursor, "unbindable method type %T", m)
	}
}

// callUserFunction runs fn's body in a fresh scope enclosing its
// closure, binding fullArgs positionally to fn.Params. The body's
// statements run directly in that scope rather than through execStmt's
// *BlockStmt case, matching the resolver's "the immediate body of a
// function does not open a further nested scope" rule.
func (e *Evaluator) callUserFunction(fn *function.Function, fullArgs []objects.Value, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	callEnv := scope.New(fn.Closure)
	for i, p := range fn.Params {
		callEnv.Define(p, fullArgs[i])
	}

	old := e.Env
	e.Env = callEnv
	defer func() { e.Env = old }()

	for _, stmt := range fn.Body.Statements {
		if sig := e.execStmt(stmt); sig != nil {
			return reifyCallSignal(sig)
		}
	}
	return objects.NullValue, nil
}

// reifyCallSignal implements a function call's control-flow boundary:
// return unwraps to its value, a stray break/continue becomes a
// native error (mirroring the top-level boundary), and errors/
// user-errors propagate unchanged.
func reifyCallSignal(sig *objects.Signal) (objects.Value, *objects.Signal) {
	switch sig.Kind {
	case objects.SigReturn:
		return sig.Value, nil
	case objects.SigBreak:
		return nil, objects.NewError(objects.ErrKindNative, sig.Cursor, "break outside a loop")
	case objects.SigContinue:
		return nil, objects.NewError(objects.ErrKindNative, sig.Cursor, "continue outside a loop")
	default:
		return nil, sig
	}
}

// construct implements §4.4's "calling an Object descriptor"
// constructor rule: build a fresh Instance, bind and invoke `init` (if
// present) with the instance as receiver, discard init's own return
// value, and hand back the instance.
func (e *Evaluator) construct(obj *objects.Object, args []objects.Value, cursor lexer.Cursor) (objects.Value, *objects.Signal) {
	inst := objects.NewInstance(obj)
	ctor, ok := obj.Constructor()
	if !ok {
		if len(args) != 0 {
			return nil, arityError(obj.Name, 0, len(args), cursor)
		}
		return inst, nil
	}
	if _, sig := e.invokeMethodBound(ctor, inst, args, cursor); sig != nil {
		return nil, sig
	}
	return inst, nil
}

func arityError(name string, want, got int, cursor lexer.Cursor) *objects.Signal {
	return objects.NewError(objects.ErrKindArity, cursor, "%s expects %d argument(s), got %d", name, want, got)
}
