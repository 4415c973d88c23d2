package parser

import (
	"testing"

	"github.com/mekotech/mathscript/internal/ast"
	"github.com/mekotech/mathscript/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(lexer.New(src), src, "test.ms")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := mustParse(t, "let a = 1;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if decl.Kind != "let" || len(decl.Declarators) != 1 {
		t.Fatalf("unexpected decl shape: %+v", decl)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := mustParse(t, "let a = 1 + 2 * 3;")
	decl := prog.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Declarators[0].Initializer.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected top-level BinaryExpression, got %T", decl.Declarators[0].Initializer)
	}
	if bin.Operator != "+" {
		t.Fatalf("expected '+' at the top, got %q (multiplication should bind tighter)", bin.Operator)
	}
	right, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || right.Operator != "*" {
		t.Fatalf("expected right side to be a '*' BinaryExpression, got %+v", bin.Right)
	}
}

func TestParseMathematicalFunctionShorthand(t *testing.T) {
	prog := mustParse(t, "f(x) = x * x;")
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Statements[0])
	}
	if !fn.IsMathematical {
		t.Fatal("expected IsMathematical = true")
	}
	if len(fn.Params) != 1 || fn.Params[0].Name.Name != "x" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected a synthesized ReturnStatement body, got %T", fn.Body.Statements[0])
	}
	if _, ok := ret.Value.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected BinaryExpression return value, got %T", ret.Value)
	}
}

func TestParseAssignmentIsNotMathematicalFunction(t *testing.T) {
	prog := mustParse(t, "a = 5;")
	stmt, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", prog.Statements[0])
	}
	if _, ok := stmt.Expression.(*ast.AssignExpression); !ok {
		t.Fatalf("expected AssignExpression, got %T", stmt.Expression)
	}
}

func TestParseCallIsNotMathematicalFunction(t *testing.T) {
	prog := mustParse(t, "f(x);")
	stmt, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", prog.Statements[0])
	}
	if _, ok := stmt.Expression.(*ast.CallExpression); !ok {
		t.Fatalf("expected CallExpression, got %T", stmt.Expression)
	}
}

func TestParseArrowFunction(t *testing.T) {
	prog := mustParse(t, "let add = (a, b) => a + b;")
	decl := prog.Statements[0].(*ast.VarDecl)
	arrow, ok := decl.Declarators[0].Initializer.(*ast.ArrowFunction)
	if !ok {
		t.Fatalf("expected *ast.ArrowFunction, got %T", decl.Declarators[0].Initializer)
	}
	if len(arrow.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(arrow.Params))
	}
	if arrow.Expr == nil {
		t.Fatal("expected an expression body")
	}
}

func TestParseParenthesizedExpressionIsNotArrow(t *testing.T) {
	prog := mustParse(t, "let a = (1 + 2) * 3;")
	decl := prog.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Declarators[0].Initializer.(*ast.BinaryExpression)
	if !ok || bin.Operator != "*" {
		t.Fatalf("expected top-level '*' BinaryExpression, got %+v", decl.Declarators[0].Initializer)
	}
	if _, ok := bin.Left.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected grouped '+' on the left, got %T", bin.Left)
	}
}

func TestParseForOf(t *testing.T) {
	prog := mustParse(t, "for (let x of xs) { print(x); }")
	forOf, ok := prog.Statements[0].(*ast.ForOfStatement)
	if !ok {
		t.Fatalf("expected *ast.ForOfStatement, got %T", prog.Statements[0])
	}
	if forOf.Variable.Name != "x" {
		t.Fatalf("unexpected loop variable: %+v", forOf.Variable)
	}
}

func TestParseCStyleFor(t *testing.T) {
	prog := mustParse(t, "for (let i = 0; i < 10; i++) { sum += i; }")
	forStmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", prog.Statements[0])
	}
	if forStmt.Init == nil || forStmt.Test == nil || forStmt.Update == nil {
		t.Fatalf("expected all three for-clause parts present: %+v", forStmt)
	}
}

func TestParseClassWithConstructorAndMethod(t *testing.T) {
	src := `
class Point {
  constructor(x, y) {
    this.x = x;
    this.y = y;
  }
  length() {
    return √(this.x ** 2 + this.y ** 2);
  }
}`
	prog := mustParse(t, src)
	class, ok := prog.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", prog.Statements[0])
	}
	if len(class.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(class.Members))
	}
	if class.Members[0].Kind != ast.MethodConstructor {
		t.Fatalf("expected first member to be the constructor, got kind %v", class.Members[0].Kind)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := mustParse(t, `
try {
  risky();
} catch (e) {
  log(e);
} finally {
  cleanup();
}`)
	stmt, ok := prog.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected *ast.TryStatement, got %T", prog.Statements[0])
	}
	if stmt.Catch == nil || stmt.Catch.Param.Name != "e" {
		t.Fatalf("unexpected catch clause: %+v", stmt.Catch)
	}
	if stmt.Finally == nil {
		t.Fatal("expected a finally block")
	}
}

func TestParseTemplateLiteralInterpolation(t *testing.T) {
	prog := mustParse(t, "let s = `hi ${name}!`;")
	decl := prog.Statements[0].(*ast.VarDecl)
	tmpl, ok := decl.Declarators[0].Initializer.(*ast.TemplateLiteral)
	if !ok {
		t.Fatalf("expected *ast.TemplateLiteral, got %T", decl.Declarators[0].Initializer)
	}
	if len(tmpl.Exprs) != 1 {
		t.Fatalf("expected 1 interpolated expression, got %d", len(tmpl.Exprs))
	}
	if _, ok := tmpl.Exprs[0].(*ast.Identifier); !ok {
		t.Fatalf("expected Identifier inside interpolation, got %T", tmpl.Exprs[0])
	}
}

func TestParseDestructuringArrayPattern(t *testing.T) {
	prog := mustParse(t, "let [a, , c] = xs;")
	decl := prog.Statements[0].(*ast.VarDecl)
	pat, ok := decl.Declarators[0].Target.(*ast.ArrayPattern)
	if !ok {
		t.Fatalf("expected *ast.ArrayPattern, got %T", decl.Declarators[0].Target)
	}
	if len(pat.Elements) != 3 || pat.Elements[1] != nil {
		t.Fatalf("expected a hole in the middle slot: %+v", pat.Elements)
	}
}

func TestParseBreakOutsideLoopIsError(t *testing.T) {
	_, err := ParseProgram(lexer.New("break;"), "break;", "test.ms")
	if err == nil {
		t.Fatal("expected a ParseError for break outside of a loop")
	}
}

func TestParseReturnOutsideFunctionIsError(t *testing.T) {
	_, err := ParseProgram(lexer.New("return 1;"), "return 1;", "test.ms")
	if err == nil {
		t.Fatal("expected a ParseError for return outside of a function")
	}
}

func TestParseReturnInsideFunctionIsFine(t *testing.T) {
	mustParse(t, "function f() { return 1; }")
}

func TestParseConditionalExpression(t *testing.T) {
	prog := mustParse(t, "let a = x > 0 ? 1 : -1;")
	decl := prog.Statements[0].(*ast.VarDecl)
	if _, ok := decl.Declarators[0].Initializer.(*ast.ConditionalExpression); !ok {
		t.Fatalf("expected *ast.ConditionalExpression, got %T", decl.Declarators[0].Initializer)
	}
}
