package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qewer33/quetite/parser"
)

func parseAndResolve(t *testing.T, src string) (*parser.Program, []error, []ResolveWarning) {
	t.Helper()
	prog, perrs, _ := parser.NewParser(src).Parse()
	require.Empty(t, perrs)
	require.NotNil(t, prog)
	return Resolve(prog)
}

func TestGlobalReferenceIsUnresolved(t *testing.T) {
	_, errs, _ := parseAndResolve(t, "print(x)\n")
	require.Empty(t, errs)
}

func TestLocalVariableGetsZeroDistanceInSameBlock(t *testing.T) {
	prog, errs, _ := parseAndResolve(t, "do\n  var x = 1\n  x\nend\n")
	require.Empty(t, errs)
	block := prog.Statements[0].(*parser.BlockStmt)
	ref := block.Statements[1].(*parser.ExprStmt).Expr.(*parser.IdentifierExpr)
	require.NotNil(t, ref.ResolvedDistance)
	assert.Equal(t, 0, *ref.ResolvedDistance)
}

func TestNestedBlockComputesDistance(t *testing.T) {
	prog, errs, _ := parseAndResolve(t, "do\n  var x = 1\n  do\n    x\n  end\nend\n")
	require.Empty(t, errs)
	outer := prog.Statements[0].(*parser.BlockStmt)
	inner := outer.Statements[1].(*parser.BlockStmt)
	ref := inner.Statements[0].(*parser.ExprStmt).Expr.(*parser.IdentifierExpr)
	require.NotNil(t, ref.ResolvedDistance)
	assert.Equal(t, 1, *ref.ResolvedDistance)
}

func TestSelfInitializerIsError(t *testing.T) {
	_, errs, _ := parseAndResolve(t, "do\n  var x = x\nend\n")
	require.NotEmpty(t, errs)
}

func TestUnusedLocalProducesWarning(t *testing.T) {
	_, _, warnings := parseAndResolve(t, "do\n  var unused = 1\nend\n")
	require.NotEmpty(t, warnings)
}

func TestFunctionParamsPreDefined(t *testing.T) {
	prog, errs, warnings := parseAndResolve(t, "fn f(a) do\n  return a\nend\n")
	require.Empty(t, errs)
	require.Empty(t, warnings)
	fn := prog.Statements[0].(*parser.FuncDeclStmt)
	ret := fn.Body.Statements[0].(*parser.ReturnStmt)
	ref := ret.Value.(*parser.IdentifierExpr)
	require.NotNil(t, ref.ResolvedDistance)
	assert.Equal(t, 0, *ref.ResolvedDistance)
}

func TestFunctionBodyDoesNotOpenSpuriousExtraScope(t *testing.T) {
	prog, errs, _ := parseAndResolve(t, "fn f(a) do\n  a\nend\n")
	require.Empty(t, errs)
	fn := prog.Statements[0].(*parser.FuncDeclStmt)
	ref := fn.Body.Statements[0].(*parser.ExprStmt).Expr.(*parser.IdentifierExpr)
	assert.Equal(t, 0, *ref.ResolvedDistance)
}

func TestBoundMethodSelfPreDefined(t *testing.T) {
	prog, errs, _ := parseAndResolve(t, "obj P do\n  fn init(self, x) do\n    self.x = x\n  end\nend\n")
	require.Empty(t, errs)
	obj := prog.Statements[0].(*parser.ObjDeclStmt)
	body := obj.Methods[0].Body.Statements[0].(*parser.ExprStmt).Expr.(*parser.PropertySetExpr)
	self := body.Object.(*parser.SelfExpr)
	require.NotNil(t, self.ResolvedDistance)
}

func TestForInBindersResolveInLoopBody(t *testing.T) {
	prog, errs, _ := parseAndResolve(t, "for v, i in list do\n  v\n  i\nend\n")
	require.Empty(t, errs)
	loop := prog.Statements[0].(*parser.ForInStmt)
	body := loop.Body.(*parser.BlockStmt)
	vRef := body.Statements[0].(*parser.ExprStmt).Expr.(*parser.IdentifierExpr)
	iRef := body.Statements[1].(*parser.ExprStmt).Expr.(*parser.IdentifierExpr)
	require.NotNil(t, vRef.ResolvedDistance)
	require.NotNil(t, iRef.ResolvedDistance)
}

func TestWhilePreDeclScopesConditionAndBody(t *testing.T) {
	prog, errs, _ := parseAndResolve(t, "var i = 0 while i < 3 step i = i + 1 do\n  i\nend\n")
	require.Empty(t, errs)
	w := prog.Statements[0].(*parser.WhileStmt)
	require.NotNil(t, w.PreDecl)
	cond := w.Cond.(*parser.BinaryExpr)
	ref := cond.Left.(*parser.IdentifierExpr)
	require.NotNil(t, ref.ResolvedDistance)
}
