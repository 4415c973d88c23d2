package lexer

import "testing"

func TestNextTokenBasic(t *testing.T) {
	input := `let a = π × 2² + √9;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LET, "let"},
		{IDENT, "a"},
		{ASSIGN, "="},
		{MATH_PI, "π"},
		{TIMES, "×"},
		{NUMBER, "2"},
		{SUPERSCRIPT_DIGIT, "2"},
		{PLUS, "+"},
		{SQRT, "√"},
		{NUMBER, "9"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("test %d: expected type %s, got %s (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("test %d: expected literal %q, got %q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTemplateLiteralNoInterpolation(t *testing.T) {
	l := New("`hello world`")
	tok := l.NextToken()
	if tok.Type != TEMPLATE_STRING {
		t.Fatalf("expected TEMPLATE_STRING, got %s", tok.Type)
	}
	if tok.Literal != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", tok.Literal)
	}
	if eof := l.NextToken(); eof.Type != EOF {
		t.Fatalf("expected EOF, got %s", eof.Type)
	}
}

func TestTemplateLiteralWithInterpolation(t *testing.T) {
	l := New("`a${x}b${y}c`")
	want := []struct {
		typ TokenType
		lit string
	}{
		{TEMPLATE_START, "a"},
		{TEMPLATE_EXPR, "x"},
		{TEMPLATE_MIDDLE, "b"},
		{TEMPLATE_EXPR, "y"},
		{TEMPLATE_END, "c"},
		{EOF, ""},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Literal != w.lit {
			t.Fatalf("piece %d: expected (%s, %q), got (%s, %q)", i, w.typ, w.lit, tok.Type, tok.Literal)
		}
	}
}

func TestNewlineToken(t *testing.T) {
	l := New("let a = 1\nlet b = 2")
	var kinds []TokenType
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	foundNewline := false
	for _, k := range kinds {
		if k == NEWLINE {
			foundNewline = true
		}
	}
	if !foundNewline {
		t.Fatal("expected a NEWLINE token between the two statements")
	}
}

func TestSubscriptIdentifier(t *testing.T) {
	l := New("x₂")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "x" {
		t.Fatalf("expected IDENT 'x', got %s %q", tok.Type, tok.Literal)
	}
	sub := l.NextToken()
	if sub.Type != SUBSCRIPT_DIGIT || sub.Literal != "2" {
		t.Fatalf("expected SUBSCRIPT_DIGIT '2', got %s %q", sub.Type, sub.Literal)
	}
}

func TestBarePipeIsRejected(t *testing.T) {
	l := New("a | b")
	l.NextToken() // a
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for bare '|', got %s", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected a LexError for bare '|'")
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a LexError for an unterminated string")
	}
}

func TestMultiCharOperators(t *testing.T) {
	cases := []struct {
		src string
		typ TokenType
	}{
		{"===", EQ_EQ_EQ},
		{"!==", BANG_EQ_EQ},
		{"==", EQ_EQ},
		{"!=", BANG_EQ},
		{"<=", LT_EQ},
		{">=", GT_EQ},
		{"&&", AND_AND},
		{"||", OR_OR},
		{"|>", PIPE_GT},
		{"<|", LT_PIPE},
		{"=>", FAT_ARROW},
		{"++", PLUS_PLUS},
		{"--", MINUS_MINUS},
		{"+=", PLUS_EQ},
		{"-=", MINUS_EQ},
		{"*=", STAR_EQ},
		{"/=", SLASH_EQ},
		{"**", STAR_STAR},
		{"..", DOTDOT},
		{"...", DOTDOTDOT},
	}
	for _, c := range cases {
		l := New(c.src)
		tok := l.NextToken()
		if tok.Type != c.typ {
			t.Errorf("%q: expected %s, got %s", c.src, c.typ, tok.Type)
		}
	}
}

func TestNumberWithExponent(t *testing.T) {
	l := New("1.5e10 2e-3 3.")
	tok := l.NextToken()
	if tok.Literal != "1.5e10" {
		t.Fatalf("expected 1.5e10, got %q", tok.Literal)
	}
	tok = l.NextToken()
	if tok.Literal != "2e-3" {
		t.Fatalf("expected 2e-3, got %q", tok.Literal)
	}
	// "3." has no trailing digit after the dot, so the dot is returned
	// to the stream as its own token.
	tok = l.NextToken()
	if tok.Literal != "3" {
		t.Fatalf("expected 3, got %q", tok.Literal)
	}
	dot := l.NextToken()
	if dot.Type != DOT {
		t.Fatalf("expected DOT, got %s", dot.Type)
	}
}
