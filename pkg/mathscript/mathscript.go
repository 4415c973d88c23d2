// Package mathscript is the public entry point for the MathScript
// compiler: tokenize source for inspection tooling, or compile it
// straight through to Lua 5.1/5.2-compatible source text.
package mathscript

import (
	"github.com/mekotech/mathscript/internal/errors"
	"github.com/mekotech/mathscript/internal/generator"
	"github.com/mekotech/mathscript/internal/lexer"
	"github.com/mekotech/mathscript/internal/parser"
)

// Tokenize scans source into its token stream without parsing or
// generating anything. Intended for debug/inspection tools; the host
// is responsible for formatting the result.
func Tokenize(source, filename string) ([]lexer.Token, error) {
	l := lexer.New(source)
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		if errs := l.Errors(); len(errs) > 0 {
			e := errs[0]
			return nil, errors.LexError(e.Pos, e.Message, source, filename)
		}
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return tokens, nil
}

// Compile runs the full lex -> parse -> generate pipeline and returns
// Lua source text. filename is used only to annotate diagnostics; it
// may be empty. The returned error, when non-nil, is always a
// *errors.CompilerError carrying (kind, line, column, message).
func Compile(source, filename string) (string, error) {
	l := lexer.New(source)
	prog, err := parser.ParseProgram(l, source, filename)
	if err != nil {
		return "", err
	}
	return generator.Generate(prog, source, filename)
}
