package eval

import (
	"github.com/qewer33/quetite/function"
	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/parser"
	"github.com/qewer33/quetite/scope"
)

// execStmt dispatches on the statement's concrete type — the "single
// large match on kind" shape §9 recommends — and returns nil for
// normal completion or the non-local Signal that should propagate.
func (e *Evaluator) execStmt(stmt parser.Stmt) *objects.Signal {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		_, sig := e.evalExpr(s.Expr)
		return sig
	case *parser.VarStmt:
		return e.execVar(s)
	case *parser.BlockStmt:
		return e.execBlock(s)
	case *parser.IfStmt:
		return e.execIf(s)
	case *parser.WhileStmt:
		return e.execWhile(s)
	case *parser.ForInStmt:
		return e.execForIn(s)
	case *parser.TryStmt:
		return e.execTry(s)
	case *parser.ThrowStmt:
		return e.execThrow(s)
	case *parser.ReturnStmt:
		return e.execReturn(s)
	case *parser.BreakStmt:
		return objects.NewBreak(s.Cursor())
	case *parser.ContinueStmt:
		return objects.NewContinue(s.Cursor())
	case *parser.FuncDeclStmt:
		return e.execFuncDecl(s)
	case *parser.ObjDeclStmt:
		return e.execObjDecl(s)
	case *parser.UseStmt:
		return e.execUse(s)
	default:
		return objects.NewError(objects.ErrKindNative, stmt.Cursor(), "unhandled statement type %T", stmt)
	}
}

func (e *Evaluator) execVar(s *parser.VarStmt) *objects.Signal {
	value := objects.Value(objects.NullValue)
	if s.Init != nil {
		v, sig := e.evalExpr(s.Init)
		if sig != nil {
			return sig
		}
		value = v
	}
	e.Env.Define(s.Name, value)
	return nil
}

func (e *Evaluator) execBlock(s *parser.BlockStmt) *objects.Signal {
	old := e.Env
	e.Env = scope.New(old)
	defer func() { e.Env = old }()
	for _, stmt := range s.Statements {
		if sig := e.execStmt(stmt); sig != nil {
			return sig
		}
	}
	return nil
}

func (e *Evaluator) execIf(s *parser.IfStmt) *objects.Signal {
	cond, sig := e.evalExpr(s.Cond)
	if sig != nil {
		return sig
	}
	if truthy(cond) {
		return e.execStmt(s.Then)
	}
	if s.Else != nil {
		return e.execStmt(s.Else)
	}
	return nil
}

// execWhile implements §4.4's while-loop semantics: an optional
// pre-declaration scoped around the whole loop, break exiting before
// the step, continue and normal completion both running the step.
func (e *Evaluator) execWhile(s *parser.WhileStmt) *objects.Signal {
	if s.PreDecl != nil {
		old := e.Env
		e.Env = scope.New(old)
		defer func() { e.Env = old }()
		if sig := e.execStmt(s.PreDecl); sig != nil {
			return sig
		}
	}
	for {
		cond, sig := e.evalExpr(s.Cond)
		if sig != nil {
			return sig
		}
		if !truthy(cond) {
			return nil
		}
		bodySig := e.execStmt(s.Body)
		if bodySig != nil {
			switch bodySig.Kind {
			case objects.SigBreak:
				return nil
			case objects.SigContinue:
				if s.Step != nil {
					if _, sig := e.evalExpr(s.Step); sig != nil {
						return sig
					}
				}
				continue
			default:
				return bodySig
			}
		}
		if s.Step != nil {
			if _, sig := e.evalExpr(s.Step); sig != nil {
				return sig
			}
		}
	}
}

// execForIn implements §4.4's for-in semantics over a list or string.
// Each iteration opens a fresh environment enclosing the loop's own
// environment and binds the element (and optional index) there.
func (e *Evaluator) execForIn(s *parser.ForInStmt) *objects.Signal {
	iterable, sig := e.evalExpr(s.Iterable)
	if sig != nil {
		return sig
	}

	loopEnv := e.Env
	bindAndRun := func(elem objects.Value, index int) *objects.Signal {
		old := e.Env
		e.Env = scope.New(loopEnv)
		e.Env.Define(s.ElemName, elem)
		if s.IndexName != "" {
			e.Env.Define(s.IndexName, objects.Number(index))
		}
		sig := e.execStmt(s.Body)
		e.Env = old
		return sig
	}

	switch it := iterable.(type) {
	case *objects.List:
		n := len(it.Elements)
		for i := 0; i < n; i++ {
			if i >= len(it.Elements) {
				break
			}
			bodySig := bindAndRun(it.Elements[i], i)
			if bodySig != nil {
				switch bodySig.Kind {
				case objects.SigBreak:
					return nil
				case objects.SigContinue:
					continue
				default:
					return bodySig
				}
			}
		}
		return nil
	case *objects.String:
		runes := it.Runes()
		for i, r := range runes {
			bodySig := bindAndRun(objects.NewString(string(r)), i)
			if bodySig != nil {
				switch bodySig.Kind {
				case objects.SigBreak:
					return nil
				case objects.SigContinue:
					continue
				default:
					return bodySig
				}
			}
		}
		return nil
	default:
		return objects.NewError(objects.ErrKindType, s.Cursor(), "for-in requires a list or string, got %s", kindOf(iterable))
	}
}

// execTry implements §4.4's try/catch/ensure protocol: catch only
// intercepts error/user-error signals; ensure runs on every exit path
// and, if it itself fails, that failure replaces whatever was in
// flight.
func (e *Evaluator) execTry(s *parser.TryStmt) *objects.Signal {
	result := e.execStmt(s.Body)

	if result.IsFailure() && s.Catch != nil {
		old := e.Env
		e.Env = scope.New(old)
		if s.KindName != "" {
			e.Env.Define(s.KindName, objects.NewString(result.CatchKindName()))
		}
		if s.ValueName != "" {
			e.Env.Define(s.ValueName, result.CatchValue())
		}
		result = e.execStmt(s.Catch)
		e.Env = old
	}

	if s.Ensure != nil {
		if ensureSig := e.execStmt(s.Ensure); ensureSig != nil {
			return ensureSig
		}
	}
	return result
}

func (e *Evaluator) execThrow(s *parser.ThrowStmt) *objects.Signal {
	value, sig := e.evalExpr(s.Value)
	if sig != nil {
		return sig
	}
	return objects.NewThrow(value, s.Cursor())
}

func (e *Evaluator) execReturn(s *parser.ReturnStmt) *objects.Signal {
	value := objects.Value(objects.NullValue)
	if s.Value != nil {
		v, sig := e.evalExpr(s.Value)
		if sig != nil {
			return sig
		}
		value = v
	}
	return objects.NewReturn(value)
}

func (e *Evaluator) execFuncDecl(s *parser.FuncDeclStmt) *objects.Signal {
	fn := function.New(s.Name, s.Params, s.Body, e.Env, s.Bound)
	e.Env.Define(s.Name, fn)
	return nil
}

// execObjDecl implements §4.4's "An obj declaration first defines the
// name to null in the current env ... then constructs an object
// descriptor with all methods ... then assigns the descriptor back to
// the name" — so a method body referencing the object's own name by
// distance finds a binding that exists throughout (null, then the
// descriptor). Methods close over one extra, empty frame that stands for
// the resolver's per-object scope, so resolved distances from inside a
// method body count the same frames at run time.
func (e *Evaluator) execObjDecl(s *parser.ObjDeclStmt) *objects.Signal {
	e.Env.Define(s.Name, objects.NullValue)
	obj := objects.NewObject(s.Name)
	methodEnv := scope.New(e.Env)
	for _, m := range s.Methods {
		obj.Methods[m.Name] = function.New(m.Name, m.Params, m.Body, methodEnv, m.Bound)
	}
	e.Env.Define(s.Name, obj)
	return nil
}

func (e *Evaluator) execUse(s *parser.UseStmt) *objects.Signal {
	pathVal, sig := e.evalExpr(s.Path)
	if sig != nil {
		return sig
	}
	pathStr, ok := pathVal.(*objects.String)
	if !ok {
		return objects.NewError(objects.ErrKindType, s.Cursor(), "use path must be a string, got %s", kindOf(pathVal))
	}
	moduleGlobals, lsig := e.Loader.Load(pathStr.Value, e.Dir)
	if lsig != nil {
		lsig.Cursor = s.Cursor()
		return lsig
	}
	for name, value := range moduleGlobals.Values {
		e.Globals.Define(name, value)
	}
	return nil
}
