package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *Program {
	t.Helper()
	prog, errs, _ := NewParser(src).Parse()
	require.Empty(t, errs)
	require.NotNil(t, prog)
	return prog
}

func TestParseVarDeclWithInit(t *testing.T) {
	prog := parseOK(t, "var x = 1 + 2\n")
	require.Len(t, prog.Statements, 1)
	v := prog.Statements[0].(*VarStmt)
	assert.Equal(t, "x", v.Name)
	bin := v.Init.(*BinaryExpr)
	assert.Equal(t, OpAdd, bin.Op)
}

func TestParseVarDeclNoInit(t *testing.T) {
	prog := parseOK(t, "var x\n")
	v := prog.Statements[0].(*VarStmt)
	assert.Nil(t, v.Init)
}

func TestAssignmentDesugarPlainIdentifier(t *testing.T) {
	prog := parseOK(t, "x = 5\n")
	expr := prog.Statements[0].(*ExprStmt).Expr.(*AssignExpr)
	assert.Equal(t, "x", expr.Name)
	assert.Equal(t, OpAssign, expr.Op)
}

func TestAssignmentDesugarCompoundOnProperty(t *testing.T) {
	prog := parseOK(t, "a.b += 1\n")
	expr := prog.Statements[0].(*ExprStmt).Expr.(*PropertySetExpr)
	assert.Equal(t, "b", expr.Name)
	assert.Equal(t, OpAddAssign, expr.Op)
}

func TestAssignmentDesugarCompoundOnIndex(t *testing.T) {
	prog := parseOK(t, "a[0] -= 2\n")
	expr := prog.Statements[0].(*ExprStmt).Expr.(*IndexSetExpr)
	assert.Equal(t, OpSubAssign, expr.Op)
}

func TestPostIncrementDesugarsToAddAssignOne(t *testing.T) {
	prog := parseOK(t, "x++\n")
	expr := prog.Statements[0].(*ExprStmt).Expr.(*AssignExpr)
	assert.Equal(t, OpAddAssign, expr.Op)
	lit := expr.Value.(*NumberLiteral)
	assert.Equal(t, 1.0, lit.Value)
}

func TestPostDecrementOnPropertyDesugarsToPropertySetSub(t *testing.T) {
	prog := parseOK(t, "a.count--\n")
	expr := prog.Statements[0].(*ExprStmt).Expr.(*PropertySetExpr)
	assert.Equal(t, OpSubAssign, expr.Op)
	lit := expr.Value.(*NumberLiteral)
	assert.Equal(t, 1.0, lit.Value)
}

func TestInvalidAssignmentTargetIsParseError(t *testing.T) {
	_, errs, _ := NewParser("1 + 2 = 3\n").Parse()
	require.NotEmpty(t, errs)
}

func TestPrecedenceMultiplyBeforeAdd(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3\n")
	bin := prog.Statements[0].(*ExprStmt).Expr.(*BinaryExpr)
	assert.Equal(t, OpAdd, bin.Op)
	_, isLitLeft := bin.Left.(*NumberLiteral)
	assert.True(t, isLitLeft)
	rightBin := bin.Right.(*BinaryExpr)
	assert.Equal(t, OpMul, rightBin.Op)
}

func TestPrecedenceComparisonBelowRange(t *testing.T) {
	prog := parseOK(t, "1..5 > 2\n")
	bin := prog.Statements[0].(*ExprStmt).Expr.(*BinaryExpr)
	assert.Equal(t, OpGt, bin.Op)
	_, isRange := bin.Left.(*RangeExpr)
	assert.True(t, isRange)
}

func TestRangeWithStep(t *testing.T) {
	prog := parseOK(t, "0..=10 step 2\n")
	r := prog.Statements[0].(*ExprStmt).Expr.(*RangeExpr)
	assert.True(t, r.Inclusive)
	require.NotNil(t, r.Step)
}

func TestTernaryRightAssociative(t *testing.T) {
	prog := parseOK(t, "a ? b : c ? d : e\n")
	outer := prog.Statements[0].(*ExprStmt).Expr.(*TernaryExpr)
	_, elseIsTernary := outer.Else.(*TernaryExpr)
	assert.True(t, elseIsTernary)
}

func TestLogicalAndOrPrecedence(t *testing.T) {
	prog := parseOK(t, "a and b or c\n")
	top := prog.Statements[0].(*ExprStmt).Expr.(*LogicalExpr)
	assert.Equal(t, OpOr, top.Op)
	left := top.Left.(*LogicalExpr)
	assert.Equal(t, OpAnd, left.Op)
}

func TestNullCoalesceAtFactorLevel(t *testing.T) {
	prog := parseOK(t, "a ?? b + 1\n")
	bin := prog.Statements[0].(*ExprStmt).Expr.(*BinaryExpr)
	assert.Equal(t, OpAdd, bin.Op)
	left := bin.Left.(*BinaryExpr)
	assert.Equal(t, OpNullCoalesce, left.Op)
}

func TestCallIndexPropertyChain(t *testing.T) {
	prog := parseOK(t, "a.b(1, 2)[0]\n")
	idx := prog.Statements[0].(*ExprStmt).Expr.(*IndexExpr)
	call := idx.Object.(*CallExpr)
	prop := call.Callee.(*PropertyExpr)
	assert.Equal(t, "b", prop.Name)
	assert.Len(t, call.Args, 2)
}

func TestListAndDictLiterals(t *testing.T) {
	prog := parseOK(t, "[1, 2, {\"a\": 1}]\n")
	list := prog.Statements[0].(*ExprStmt).Expr.(*ListExpr)
	require.Len(t, list.Elements, 3)
	dict := list.Elements[2].(*DictExpr)
	require.Len(t, dict.Keys, 1)
}

func TestIfElseStatement(t *testing.T) {
	prog := parseOK(t, "if x do\n  return 1\nend else do\n  return 2\nend\n")
	ifStmt := prog.Statements[0].(*IfStmt)
	require.NotNil(t, ifStmt.Else)
}

func TestWhileWithStep(t *testing.T) {
	prog := parseOK(t, "while i < 10 step i = i + 1 do\nend\n")
	w := prog.Statements[0].(*WhileStmt)
	require.NotNil(t, w.Step)
}

func TestForInWithIndexBinder(t *testing.T) {
	prog := parseOK(t, "for v, i in list do\nend\n")
	f := prog.Statements[0].(*ForInStmt)
	assert.Equal(t, "v", f.ElemName)
	assert.Equal(t, "i", f.IndexName)
}

func TestTryCatchEnsure(t *testing.T) {
	prog := parseOK(t, "try do\n  throw 1\nend catch kind value do\nend ensure do\nend\n")
	tr := prog.Statements[0].(*TryStmt)
	assert.Equal(t, "kind", tr.KindName)
	assert.Equal(t, "value", tr.ValueName)
	require.NotNil(t, tr.Catch)
	require.NotNil(t, tr.Ensure)
}

func TestFuncDeclAndObjDecl(t *testing.T) {
	prog := parseOK(t, "obj P do\n  fn init(self, x) do\n    self.x = x\n  end\nend\n")
	obj := prog.Statements[0].(*ObjDeclStmt)
	assert.Equal(t, "P", obj.Name)
	require.Len(t, obj.Methods, 1)
	assert.True(t, obj.Methods[0].Bound)
	assert.Equal(t, "init", obj.Methods[0].Name)
}

func TestMoreThan255ArgumentsIsWarningNotError(t *testing.T) {
	src := "f("
	for i := 0; i < 300; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ")\n"
	prog, errs, warnings := NewParser(src).Parse()
	assert.Empty(t, errs)
	require.NotNil(t, prog)
	assert.NotEmpty(t, warnings)
}

func TestSynchronizationAfterErrorContinuesToNextStatement(t *testing.T) {
	_, errs, _ := NewParser("1 + 2 = 3\nvar y = 4\n").Parse()
	require.NotEmpty(t, errs)
}

func TestUseStatement(t *testing.T) {
	prog := parseOK(t, "use \"math.qt\"\n")
	u := prog.Statements[0].(*UseStmt)
	str := u.Path.(*StringLiteral)
	assert.Equal(t, "math.qt", str.Value)
}
