// Package parser implements a recursive-descent/Pratt parser that
// turns a MathScript token stream into an internal/ast.Program. Three
// ambiguities require bounded lookahead with backtracking: arrow
// function vs. parenthesized expression, mathematical function
// shorthand vs. assignment-looking expression statement, and
// `for (init;...)` vs. `for (x of ...)`. Each lookahead routine saves
// the cursor and restores it unconditionally on the path not taken.
package parser

import (
	"fmt"

	"github.com/mekotech/mathscript/internal/ast"
	"github.com/mekotech/mathscript/internal/errors"
	"github.com/mekotech/mathscript/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN
	CONDITIONAL // ?:
	LOGICAL_OR
	LOGICAL_AND
	EQUALITY
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POSTFIX
	CALL
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:      ASSIGN,
	lexer.PLUS_EQ:     ASSIGN,
	lexer.MINUS_EQ:    ASSIGN,
	lexer.STAR_EQ:     ASSIGN,
	lexer.SLASH_EQ:    ASSIGN,
	lexer.QUESTION:    CONDITIONAL,
	lexer.OR_OR:       LOGICAL_OR,
	lexer.AND_AND:     LOGICAL_AND,
	lexer.EQ_EQ:       EQUALITY,
	lexer.EQ_EQ_EQ:    EQUALITY,
	lexer.BANG_EQ:     EQUALITY,
	lexer.BANG_EQ_EQ:  EQUALITY,
	lexer.NE:          EQUALITY,
	lexer.LT:          RELATIONAL,
	lexer.GT:          RELATIONAL,
	lexer.LT_EQ:       RELATIONAL,
	lexer.GT_EQ:       RELATIONAL,
	lexer.LE:          RELATIONAL,
	lexer.GE:          RELATIONAL,
	lexer.PLUS:        ADDITIVE,
	lexer.MINUS:       ADDITIVE,
	lexer.UMINUS:      ADDITIVE,
	lexer.STAR:        MULTIPLICATIVE,
	lexer.SLASH:       MULTIPLICATIVE,
	lexer.PERCENT:     MULTIPLICATIVE,
	lexer.TIMES:       MULTIPLICATIVE,
	lexer.DIVIDE:      MULTIPLICATIVE,
	lexer.STAR_STAR:   UNARY + 1, // ** binds tighter than unary, right-assoc
	lexer.CARET:       UNARY + 1,
	lexer.LPAREN:      CALL,
	lexer.LBRACKET:    CALL,
	lexer.DOT:         CALL,
	lexer.PLUS_PLUS:   POSTFIX,
	lexer.MINUS_MINUS: POSTFIX,
}

func precedenceOf(t lexer.TokenType) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// ParserError is returned by Errors() after a failed parse.
type ParserError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParserError) Error() string { return e.Message }

// cursorState is a snapshot used to backtrack a speculative lookahead.
type cursorState struct {
	index int
}

// Parser consumes a pre-tokenized buffer (built once from the lexer)
// so that positional lookahead and backtracking are simple index
// manipulations rather than lexer replay.
type Parser struct {
	tokens []lexer.Token
	index  int

	source string
	file   string

	errors []*ParserError

	loopDepth     int
	functionDepth int
	classDepth    int

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser over the given lexer. The entire token stream is
// drained up front (the token list may be indexed with
// arbitrary positive lookahead").
func New(l *lexer.Lexer, source, file string) (*Parser, error) {
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		if len(l.Errors()) > 0 {
			e := l.Errors()[0]
			return nil, errors.LexError(e.Pos, e.Message, source, file)
		}
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	p := &Parser{tokens: tokens, source: source, file: file}
	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	p.registerParseFns()
	return p, nil
}

func (p *Parser) Errors() []*ParserError { return p.errors }

func (p *Parser) cur() lexer.Token {
	return p.tokens[p.index]
}

func (p *Parser) peek(n int) lexer.Token {
	idx := p.index + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

func (p *Parser) peekTok() lexer.Token { return p.peek(1) }

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if tok.Type != lexer.EOF {
		p.index++
	}
	return tok
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekTok().Type == t }

// skipNewlines consumes NEWLINE tokens; most grammar positions treat
// them as insignificant whitespace (statement terminators are the
// exception — see consumeTerminator).
func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) {
		p.advance()
	}
}

// expect advances past tok if the current token matches, else records
// a ParseError naming the expected and received kinds.
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if p.curIs(t) {
		return p.advance()
	}
	p.errorf("expected %s, got %s (%q)", t, p.cur().Type, p.cur().Literal)
	return p.cur()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.cur().Pos,
	})
}

// asCompilerError converts the first recorded ParserError into the
// shared errors.CompilerError type the host sees.
func (p *Parser) asCompilerError() error {
	if len(p.errors) == 0 {
		return nil
	}
	e := p.errors[0]
	return errors.ParseError(e.Pos, e.Message, p.source, p.file)
}

func (p *Parser) save() cursorState {
	return cursorState{index: p.index}
}

func (p *Parser) restore(s cursorState) {
	p.index = s.index
}

func (p *Parser) registerPrefix(t lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[t] = fn
}

func (p *Parser) registerInfix(t lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[t] = fn
}

// consumeTerminator consumes one opportunistic statement terminator:
// ';', NEWLINE, or EOF are interchangeable.
func (p *Parser) consumeTerminator() {
	if p.curIs(lexer.SEMICOLON) || p.curIs(lexer.NEWLINE) {
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a Program. The first
// ParseError aborts and is returned; no partial program is returned on
// error. Compile also surfaces any leading LexError through New().
func ParseProgram(l *lexer.Lexer, source, file string) (*ast.Program, error) {
	p, err := New(l, source, file)
	if err != nil {
		return nil, err
	}
	prog := p.parseProgram()
	if err := p.asCompilerError(); err != nil {
		return nil, err
	}
	return prog, nil
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(lexer.EOF) && len(p.errors) == 0 {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog
}
