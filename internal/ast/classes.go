package ast

import "github.com/mekotech/mathscript/internal/lexer"

// MethodKind distinguishes constructor/method/getter/setter bodies
// inside a class declaration.
type MethodKind int

const (
	MethodRegular MethodKind = iota
	MethodConstructor
	MethodGetter
	MethodSetter
)

// MethodDef is one member of a ClassDecl.
type MethodDef struct {
	Name   *Identifier
	Kind   MethodKind
	Static bool
	Params []*Parameter
	Body   *BlockStatement
}

// ClassDecl is `class Name [extends Super] { ... }`.
type ClassDecl struct {
	Token      lexer.Token
	Name       *Identifier
	Superclass *Identifier // nil if no `extends`
	Members    []*MethodDef
}

func (c *ClassDecl) Pos() lexer.Position { return c.Token.Pos }
func (c *ClassDecl) statementNode()      {}
