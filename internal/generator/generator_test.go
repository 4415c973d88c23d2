package generator_test

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/mekotech/mathscript/internal/generator"
	"github.com/mekotech/mathscript/internal/lexer"
	"github.com/mekotech/mathscript/internal/parser"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src)
	prog, err := parser.ParseProgram(l, src, "test.ls")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	out, err := generator.Generate(prog, src, "test.ls")
	if err != nil {
		t.Fatalf("unexpected generation error: %v", err)
	}
	return out
}

func compileErr(t *testing.T, src string) error {
	t.Helper()
	l := lexer.New(src)
	_, err := parser.ParseProgram(l, src, "test.ls")
	if err == nil {
		t.Fatalf("expected a compile error for %q, got none", src)
	}
	return err
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestMathematicalLiteral(t *testing.T) {
	out := compile(t, "let a = π × 2² + √9;")
	want := "local a = ((math.pi * (2 ^ 2)) + math.sqrt(9))"
	if got := normalize(out); !strings.Contains(got, want) {
		t.Fatalf("got %q, want substring %q", got, want)
	}
}

func TestArrayMethodChain(t *testing.T) {
	out := compile(t, "let s = [1,2,3].map(x => x × 2).reduce((a,b) => a + b, 0);")
	want := "_LS.reduce(_LS.map(_LS.array({1, 2, 3}), function(x) return (x * 2) end), function(a, b) return (a + b) end, 0)"
	if got := normalize(out); !strings.Contains(got, want) {
		t.Fatalf("got %q, want substring %q", got, want)
	}
}

func TestTemplateLiteralInterpolation(t *testing.T) {
	out := compile(t, "let g = `Hi ${name}, area=${r²}`;")
	if !strings.Contains(out, "string.format(") {
		t.Fatalf("expected string.format call, got %q", out)
	}
	if !strings.Contains(out, "Hi %s, area=%s") {
		t.Fatalf("expected formatted template, got %q", out)
	}
	if !strings.Contains(out, "name") {
		t.Fatalf("expected interpolated identifier in output, got %q", out)
	}
}

func TestClassWithConstructorAndMethod(t *testing.T) {
	src := "class V { constructor(x,y){ this.x=x; this.y=y; } mag(){ return √(this.x² + this.y²); } }\n" +
		"let v = new V(3,4);"
	out := compile(t, src)
	for _, want := range []string{
		"local V = {}",
		"V.__index = V",
		"function V.new(x, y)",
		"self.x = x",
		"self.y = y",
		"return self",
		"function V:mag()",
		"return math.sqrt(((self.x ^ 2) + (self.y ^ 2)))",
		"local v = V.new(3, 4)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestForOfLoop(t *testing.T) {
	out := compile(t, "for (let n of xs) { console.log(n); }")
	want := "for _, n in ipairs(xs) do print(n) end"
	if got := normalize(out); !strings.Contains(got, want) {
		t.Fatalf("got %q, want substring %q", got, want)
	}
}

func TestPreambleImportAndBanner(t *testing.T) {
	out := compile(t, "let a = 1;")
	wantImport := `local _LS = require("runtime/core/enhanced_runtime")`
	if !strings.Contains(out, wantImport) {
		t.Fatalf("expected output to contain %q, got:\n%s", wantImport, out)
	}
	if !strings.Contains(out, "-- Generated by") {
		t.Fatalf("expected a comment banner after the import, got:\n%s", out)
	}
}

func TestNestedBlockUsesTwoSpaceIndent(t *testing.T) {
	out := compile(t, "if (true) { let a = 1; }")
	if !strings.Contains(out, "  local a = 1") {
		t.Fatalf("expected a two-space-indented body line, got:\n%s", out)
	}
	if strings.Contains(out, "    local a = 1") {
		t.Fatalf("body line is indented with four spaces, want two:\n%s", out)
	}
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	err := compileErr(t, "return 1;")
	msg := err.Error()
	if !strings.Contains(msg, "return") || !strings.Contains(msg, "function") {
		t.Fatalf("expected message to mention return and function, got %q", msg)
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	err := compileErr(t, "break;")
	msg := err.Error()
	if !strings.Contains(msg, "break") || !strings.Contains(msg, "loop") {
		t.Fatalf("expected message to mention break and loop, got %q", msg)
	}
}

func TestCStyleForWithContinueAndBreak(t *testing.T) {
	out := compile(t, "for (let i=0; i<10; i++) { if (i === 5) { continue; } if (i === 8) { break; } console.log(i); }")
	for _, want := range []string{"while (i < 10) do", "goto continue", "::continue::", "break", "i = i + 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTryCatchFinally(t *testing.T) {
	out := compile(t, "try { throw \"boom\"; } catch (e) { console.log(e); } finally { console.log(\"done\"); }")
	for _, want := range []string{"pcall(function()", "error(", "if not __ms_ok then", "print("} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDestructuringArrayPattern(t *testing.T) {
	out := compile(t, "let [a, , c] = xs;")
	for _, want := range []string{"local __ms_destructure = xs", "local a = __ms_destructure[1]", "local c = __ms_destructure[3]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGeneratorSnapshots(t *testing.T) {
	scenarios := map[string]string{
		"mathematical_function":  "f(x) = x² + 1;",
		"class_inheritance":      "class Animal { constructor(name){ this.name=name; } speak(){ return this.name; } }\nclass Dog extends Animal { speak(){ return this.name; } }",
		"conditional_expression": "let r = (a > b) ? a : b;",
		"object_literal":         "let o = { x: 1, y: 2, sum(){ return this.x + this.y; } };",
	}
	for name, src := range scenarios {
		out := compile(t, src)
		snaps.MatchSnapshot(t, name+"_output", out)
	}
}
