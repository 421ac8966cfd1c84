package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox-lang/lox/ast"
	"github.com/lox-lang/lox/lexer"
)

func scan(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, errs := lexer.New(src).ScanTokens()
	require.Empty(t, errs)
	return toks
}

func TestParseProgramArithmeticPrecedence(t *testing.T) {
	stmts, errs := New(scan(t, "print 1 + 2 * 3;")).ParseProgram()
	require.Empty(t, errs)
	require.Len(t, stmts, 1)

	print := stmts[0].(*ast.PrintStmt)
	bin := print.Expression.(*ast.BinaryExpr)
	require.Equal(t, lexer.PLUS, bin.Operator.Type)
	require.Equal(t, 1.0, bin.Left.(*ast.LiteralExpr).Value)

	rhs := bin.Right.(*ast.BinaryExpr)
	require.Equal(t, lexer.STAR, rhs.Operator.Type)
}

func TestParseProgramAssignmentTarget(t *testing.T) {
	stmts, errs := New(scan(t, "a = 1;")).ParseProgram()
	require.Empty(t, errs)
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	assign := exprStmt.Expression.(*ast.AssignExpr)
	require.Equal(t, "a", assign.Name.Lexeme)
}

func TestParseProgramInvalidAssignmentTarget(t *testing.T) {
	_, errs := New(scan(t, "1 = 2;")).ParseProgram()
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, "Invalid assignment target")
}

func TestParseProgramForDesugarsToWhile(t *testing.T) {
	stmts, errs := New(scan(t, "for (var i = 0; i < 3; i = i + 1) print i;")).ParseProgram()
	require.Empty(t, errs)
	require.Len(t, stmts, 1)

	outer := stmts[0].(*ast.BlockStmt)
	require.Len(t, outer.Statements, 2)
	_, isVar := outer.Statements[0].(*ast.VarStmt)
	require.True(t, isVar)

	loop := outer.Statements[1].(*ast.WhileStmt)
	require.NotNil(t, loop.Condition)

	body := loop.Body.(*ast.BlockStmt)
	require.Len(t, body.Statements, 2)
	_, isPrint := body.Statements[0].(*ast.PrintStmt)
	require.True(t, isPrint)
	_, isIncrement := body.Statements[1].(*ast.ExpressionStmt)
	require.True(t, isIncrement)
}

func TestParseProgramForOmittedClauses(t *testing.T) {
	stmts, errs := New(scan(t, "for (;;) print 1;")).ParseProgram()
	require.Empty(t, errs)
	loop := stmts[0].(*ast.WhileStmt)
	lit := loop.Condition.(*ast.LiteralExpr)
	require.Equal(t, true, lit.Value)
}

func TestParseProgramClassWithSuperclass(t *testing.T) {
	src := `class B < A {
		method() { return 1; }
	}`
	stmts, errs := New(scan(t, src)).ParseProgram()
	require.Empty(t, errs)
	class := stmts[0].(*ast.ClassStmt)
	require.Equal(t, "B", class.Name.Lexeme)
	require.Equal(t, "A", class.Superclass.Name.Lexeme)
	require.Len(t, class.Methods, 1)
	require.Equal(t, "method", class.Methods[0].Name.Lexeme)
}

func TestParseProgramCallAndGetChain(t *testing.T) {
	stmts, errs := New(scan(t, "a.b(c).d;")).ParseProgram()
	require.Empty(t, errs)
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	get := exprStmt.Expression.(*ast.GetExpr)
	require.Equal(t, "d", get.Name.Lexeme)
	call := get.Object.(*ast.CallExpr)
	require.Len(t, call.Args, 1)
}

func TestParseProgramSuperRequiresMethodName(t *testing.T) {
	_, errs := New(scan(t, "class B < A { m() { return super; } }")).ParseProgram()
	require.NotEmpty(t, errs)
}

func TestParseProgramSynchronizeRecoversAfterError(t *testing.T) {
	stmts, errs := New(scan(t, "var ; var b = 2;")).ParseProgram()
	require.Len(t, errs, 1)
	require.Len(t, stmts, 1)
	v := stmts[0].(*ast.VarStmt)
	require.Equal(t, "b", v.Name.Lexeme)
}

func TestParseProgramTooManyArgumentsIsReportedButParses(t *testing.T) {
	args := strings.TrimSuffix(strings.Repeat("1,", 256), ",")
	stmts, errs := New(scan(t, "f("+args+");")).ParseProgram()
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, "more than 255 arguments")

	exprStmt := stmts[0].(*ast.ExpressionStmt)
	call := exprStmt.Expression.(*ast.CallExpr)
	require.Len(t, call.Args, 256)
}

func TestParseProgramLogicalKeepsDistinctNodeKind(t *testing.T) {
	stmts, errs := New(scan(t, "a or b == c;")).ParseProgram()
	require.Empty(t, errs)
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	logical := exprStmt.Expression.(*ast.LogicalExpr)
	require.Equal(t, lexer.OR, logical.Operator.Type)
	_, isBinary := logical.Right.(*ast.BinaryExpr)
	require.True(t, isBinary)
}

func TestParseProgramMissingSemicolonIsReported(t *testing.T) {
	_, errs := New(scan(t, "print 1")).ParseProgram()
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, "Expect ';'")
}
