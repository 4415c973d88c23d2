// Package errors formats MathScript compiler diagnostics with source
// context, line/column information, and a caret pointing at the
// offending position.
package errors

import (
	"fmt"
	"strings"

	"github.com/mekotech/mathscript/internal/lexer"
)

// Kind distinguishes the three error kinds a stage can raise.
type Kind string

const (
	KindLex   Kind = "LexError"
	KindParse Kind = "ParseError"
	KindGen   Kind = "GenError"
)

// CompilerError is the single error type returned by every stage: the
// first error aborts compilation and is handed back unchanged.
type CompilerError struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	Source  string
	File    string
}

func New(kind Kind, pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Pos: pos, Source: source, File: file}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders `<Kind> at line L, column C: <message>` (with
// ` in <file>` after the kind when File is set) followed by a source
// excerpt with a caret. If color is true, ANSI codes highlight the
// caret.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s at line %d, column %d: %s\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column, e.Message))
	} else {
		sb.WriteString(fmt.Sprintf("%s at line %d, column %d: %s\n", e.Kind, e.Pos.Line, e.Pos.Column, e.Message))
	}

	line := e.sourceLine(e.Pos.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// LexError, ParseError, and GenError are thin constructors over
// CompilerError for each of the three error kinds.
func LexError(pos lexer.Position, message, source, file string) *CompilerError {
	return New(KindLex, pos, message, source, file)
}

func ParseError(pos lexer.Position, message, source, file string) *CompilerError {
	return New(KindParse, pos, message, source, file)
}

func GenError(pos lexer.Position, message, source, file string) *CompilerError {
	return New(KindGen, pos, message, source, file)
}
