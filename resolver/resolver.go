// Package resolver implements Quetite's static scope-distance pass: a
// second walk over the AST, between parsing and evaluation, that
// annotates every variable reference with the number of lexical scopes
// to skip outward to reach its binding — so the evaluator never has to
// walk a chain by name at runtime. Grounded on the teacher's
// scope-chain shape (scope/scope.go), generalized with the bookkeeping
// a distance-computing pass needs that a pure name-lookup interpreter
// never required.
package resolver

import (
	"fmt"

	"github.com/qewer33/quetite/lexer"
	"github.com/qewer33/quetite/parser"
)

// ResolveError is a resolver-time error pinned to a cursor (an
// initializer self-reference, for instance).
type ResolveError struct {
	Message string
	Cursor  lexer.Cursor
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("[%s] resolve error: %s", e.Cursor, e.Message)
}

// ResolveWarning is a non-fatal diagnostic: a local binding that was
// declared but never read.
type ResolveWarning struct {
	Message string
	Cursor  lexer.Cursor
}

// binding is the per-name bookkeeping a scope tracks while open.
type binding struct {
	defined bool
	used    bool
	cursor  lexer.Cursor
}

// scope is one lexical frame on the resolver's scope stack.
type scope map[string]*binding

// Resolver walks a Program, mutating ResolvedDistance on every
// IdentifierExpr, SelfExpr, and AssignExpr it visits, and collecting
// errors/warnings along the way.
type Resolver struct {
	scopes []scope

	errors   []error
	warnings []ResolveWarning
}

// New creates a Resolver with an empty scope stack (an unresolved
// reference means "look up in globals" per §4.4).
func New() *Resolver {
	return &Resolver{}
}

// Resolve runs the pass over prog and returns the (possibly mutated in
// place) program, the accumulated errors, and warnings — the
// `{ast?, errors?, error_count, warning_count}` contract of §4.3.
func Resolve(prog *parser.Program) (*parser.Program, []error, []ResolveWarning) {
	r := New()
	for _, stmt := range prog.Statements {
		r.resolveStmt(stmt)
	}
	if len(r.errors) > 0 {
		return nil, r.errors, r.warnings
	}
	return prog, nil, r.warnings
}

func (r *Resolver) errorf(cursor lexer.Cursor, format string, a ...interface{}) {
	r.errors = append(r.errors, &ResolveError{Message: fmt.Sprintf(format, a...), Cursor: cursor})
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

// endScope pops the innermost scope, warning on any binding that was
// declared but never read — `self` is exempt since most methods never
// need to read it explicitly.
func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	for name, b := range top {
		if !b.used && name != "self" {
			r.warnings = append(r.warnings, ResolveWarning{
				Message: fmt.Sprintf("local %q is never used", name),
				Cursor:  b.cursor,
			})
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string, cursor lexer.Cursor) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = &binding{defined: false, cursor: cursor}
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	if b, ok := r.scopes[len(r.scopes)-1][name]; ok {
		b.defined = true
	}
}

// resolveLocal walks the scope stack from innermost outward looking for
// name, returning the distance (scopes skipped) and whether it was
// found. It does not mutate the node; callers attach the distance.
func (r *Resolver) resolveLocal(name string, cursor lexer.Cursor) (*int, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		b, ok := r.scopes[i][name]
		if !ok {
			continue
		}
		if !b.defined && i == len(r.scopes)-1 {
			r.errorf(cursor, "cannot read local %q in its own initializer", name)
		}
		b.used = true
		distance := len(r.scopes) - 1 - i
		return &distance, true
	}
	return nil, false
}

func (r *Resolver) resolveStmt(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		r.resolveExpr(s.Expr)
	case *parser.VarStmt:
		r.declare(s.Name, s.Cursor())
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)
	case *parser.BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *parser.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *parser.WhileStmt:
		if s.PreDecl != nil {
			r.beginScope()
			r.resolveStmt(s.PreDecl)
			r.resolveExpr(s.Cond)
			if s.Step != nil {
				r.resolveExpr(s.Step)
			}
			r.resolveStmt(s.Body)
			r.endScope()
			return
		}
		r.resolveExpr(s.Cond)
		if s.Step != nil {
			r.resolveExpr(s.Step)
		}
		r.resolveStmt(s.Body)
	case *parser.ForInStmt:
		r.resolveExpr(s.Iterable)
		r.beginScope()
		r.declare(s.ElemName, s.Cursor())
		r.define(s.ElemName)
		if s.IndexName != "" {
			r.declare(s.IndexName, s.Cursor())
			r.define(s.IndexName)
		}
		r.resolveStmt(s.Body)
		r.endScope()
	case *parser.TryStmt:
		r.resolveStmt(s.Body)
		if s.Catch != nil {
			r.beginScope()
			if s.KindName != "" {
				r.declare(s.KindName, s.Cursor())
				r.define(s.KindName)
			}
			if s.ValueName != "" {
				r.declare(s.ValueName, s.Cursor())
				r.define(s.ValueName)
			}
			r.resolveStmt(s.Catch)
			r.endScope()
		}
		if s.Ensure != nil {
			r.resolveStmt(s.Ensure)
		}
	case *parser.ThrowStmt:
		r.resolveExpr(s.Value)
	case *parser.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *parser.BreakStmt, *parser.ContinueStmt:
		// leaf nodes, nothing to resolve
	case *parser.FuncDeclStmt:
		r.declare(s.Name, s.Cursor())
		r.define(s.Name)
		r.resolveFunction(s)
	case *parser.ObjDeclStmt:
		// "An obj declaration first defines the name to null in the
		// current env ... so methods can refer to the object by name
		// within its body" (§4.4) — declare+define before resolving
		// methods, mirroring that evaluation order.
		r.declare(s.Name, s.Cursor())
		r.define(s.Name)
		r.beginScope()
		for _, m := range s.Methods {
			if m.Bound {
				r.scopes[len(r.scopes)-1]["self"] = &binding{defined: true, used: true, cursor: s.Cursor()}
			}
			r.resolveFunction(m)
		}
		r.endScope()
	case *parser.UseStmt:
		r.resolveExpr(s.Path)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", stmt))
	}
}

func (r *Resolver) resolveStatements(stmts []parser.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

// resolveFunction opens a scope with the function's parameters
// pre-defined, then resolves its body's statements directly in that
// same scope rather than opening a further nested block scope — "Blocks
// open their own scope unless they are the immediate body of a
// function" (§4.3).
func (r *Resolver) resolveFunction(fn *parser.FuncDeclStmt) {
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param, fn.Cursor())
		r.define(param)
	}
	r.resolveStatements(fn.Body.Statements)
	r.endScope()
}

func (r *Resolver) resolveExpr(expr parser.Expr) {
	switch e := expr.(type) {
	case *parser.NullLiteral, *parser.NumberLiteral, *parser.StringLiteral, *parser.BooleanLiteral:
		// leaf nodes
	case *parser.ListExpr:
		for _, el := range e.Elements {
			r.resolveExpr(el)
		}
	case *parser.DictExpr:
		for i := range e.Keys {
			r.resolveExpr(e.Keys[i])
			r.resolveExpr(e.Values[i])
		}
	case *parser.RangeExpr:
		r.resolveExpr(e.Start)
		r.resolveExpr(e.End)
		if e.Step != nil {
			r.resolveExpr(e.Step)
		}
	case *parser.IdentifierExpr:
		dist, _ := r.resolveLocal(e.Name, e.Cursor())
		e.ResolvedDistance = dist
	case *parser.SelfExpr:
		dist, _ := r.resolveLocal("self", e.Cursor())
		e.ResolvedDistance = dist
	case *parser.AssignExpr:
		r.resolveExpr(e.Value)
		dist, _ := r.resolveLocal(e.Name, e.Cursor())
		e.ResolvedDistance = dist
	case *parser.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.UnaryExpr:
		r.resolveExpr(e.Right)
	case *parser.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.GroupingExpr:
		r.resolveExpr(e.Inner)
	case *parser.TernaryExpr:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)
	case *parser.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *parser.IndexExpr:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Index)
	case *parser.IndexSetExpr:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Index)
		r.resolveExpr(e.Value)
	case *parser.PropertyExpr:
		r.resolveExpr(e.Object)
	case *parser.PropertySetExpr:
		r.resolveExpr(e.Object)
		r.resolveExpr(e.Value)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", expr))
	}
}
