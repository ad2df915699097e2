// Package function implements Quetite's user-defined function value: an
// AST body paired with the environment it closed over. Grounded on the
// teacher's function/function.go (a Name/Params/Body/Scp struct), with
// two additions the teacher never needed: a Bound flag (object methods
// whose declaration marked them as taking an implicit receiver) and
// EffectiveArity, the arity a caller sees once that receiver is supplied.
package function

import (
	"fmt"

	"github.com/qewer33/quetite/objects"
	"github.com/qewer33/quetite/parser"
	"github.com/qewer33/quetite/scope"
)

// Function is a user-defined callable: it implements objects.Method so
// it can sit directly in an Object's method table or be called bare as
// a global function value.
type Function struct {
	Name      string
	Params    []string
	Body      *parser.BlockStmt
	Closure   *scope.Scope
	BoundFlag bool
}

func New(name string, params []string, body *parser.BlockStmt, closure *scope.Scope, bound bool) *Function {
	return &Function{Name: name, Params: params, Body: body, Closure: closure, BoundFlag: bound}
}

func (f *Function) Kind() string { return "function" }

func (f *Function) Display() string {
	return fmt.Sprintf("<fn %s>", f.Name)
}

func (f *Function) Truthy() bool { return true }

func (f *Function) CallableName() string { return f.Name }

func (f *Function) Arity() int { return len(f.Params) }

func (f *Function) Bound() bool { return f.BoundFlag }

// EffectiveArity excludes the implicit receiver parameter (conventionally
// named "self") that a bound method declares as an ordinary leading
// parameter in source.
func (f *Function) EffectiveArity() int {
	if f.BoundFlag {
		return len(f.Params) - 1
	}
	return len(f.Params)
}

var _ objects.Method = (*Function)(nil)
