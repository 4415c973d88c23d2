package mathscript_test

import (
	"strings"
	"testing"

	"github.com/mekotech/mathscript/internal/lexer"
	"github.com/mekotech/mathscript/pkg/mathscript"
)

func TestTokenizeEndsWithEOF(t *testing.T) {
	tokens, err := mathscript.Tokenize("let a = 1;", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		t.Fatalf("expected token stream to end with EOF, got %v", tokens)
	}
}

func TestTokenizeReportsLexError(t *testing.T) {
	_, err := mathscript.Tokenize(`let s = "unterminated`, "main.ls")
	if err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func TestCompileProducesLuaWithRuntimePreamble(t *testing.T) {
	out, err := mathscript.Compile("let a = 1 + 2;", "main.ls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, `local _LS = require(`) {
		t.Fatalf("expected runtime preamble, got %q", out)
	}
	if !strings.Contains(out, "local a = ") {
		t.Fatalf("expected variable declaration in output, got %q", out)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	src := "let a = π × 2² + √9;"
	out1, err := mathscript.Compile(src, "main.ls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out2, err := mathscript.Compile(src, "main.ls")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out1 != out2 {
		t.Fatalf("expected identical output for identical input, got %q vs %q", out1, out2)
	}
}

func TestCompileSurfacesParseError(t *testing.T) {
	_, err := mathscript.Compile("return 1;", "main.ls")
	if err == nil {
		t.Fatal("expected a parse error for a top-level return")
	}
}
