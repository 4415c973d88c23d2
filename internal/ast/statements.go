package ast

import "github.com/mekotech/mathscript/internal/lexer"

// Pattern is the left-hand side of a VarDecl declarator: a plain name
// or a destructuring shape.
type Pattern interface {
	Node
	patternNode()
}

type IdentifierPattern struct {
	Token lexer.Token
	Name  *Identifier
}

func (p *IdentifierPattern) Pos() lexer.Position { return p.Token.Pos }
func (p *IdentifierPattern) patternNode()        {}

// ArrayPattern destructures an array/table. A nil entry represents a
// hole left by a consecutive comma (`let [a, , c] = xs`).
type ArrayPattern struct {
	Token    lexer.Token
	Elements []Pattern
}

func (p *ArrayPattern) Pos() lexer.Position { return p.Token.Pos }
func (p *ArrayPattern) patternNode()        {}

type ObjectPatternProperty struct {
	Key   string
	Value Pattern // usually *IdentifierPattern, possibly *AssignmentPattern
}

type ObjectPattern struct {
	Token      lexer.Token
	Properties []*ObjectPatternProperty
}

func (p *ObjectPattern) Pos() lexer.Position { return p.Token.Pos }
func (p *ObjectPattern) patternNode()        {}

// RestElement must appear last in an ArrayPattern/ObjectPattern.
type RestElement struct {
	Token lexer.Token
	Name  *Identifier
}

func (p *RestElement) Pos() lexer.Position { return p.Token.Pos }
func (p *RestElement) patternNode()        {}

// AssignmentPattern gives a destructured binding a default value:
// `let {x = 1} = obj` or `let [a = 1] = xs`.
type AssignmentPattern struct {
	Token   lexer.Token
	Target  Pattern
	Default Expression
}

func (p *AssignmentPattern) Pos() lexer.Position { return p.Token.Pos }
func (p *AssignmentPattern) patternNode()        {}

// Declarator is one `target = initializer` entry of a VarDecl.
type Declarator struct {
	Target      Pattern
	Initializer Expression // may be nil except when Kind == "const"
	TypeAnn     string
}

// VarDecl is a `let`/`const`/`var` statement, possibly with several
// comma-separated declarators.
type VarDecl struct {
	Token       lexer.Token
	Kind        string // "let", "const", "var"
	Declarators []*Declarator
}

func (v *VarDecl) Pos() lexer.Position { return v.Token.Pos }
func (v *VarDecl) statementNode()      {}

// FunctionDecl covers both `function name(...) { ... }` and the
// mathematical shorthand `name(params) = expr;`, distinguished by
// IsMathematical. A mathematical function's Body is always a single
// `return expr` statement.
type FunctionDecl struct {
	Token          lexer.Token
	Name           *Identifier
	Params         []*Parameter
	Body           *BlockStatement
	ReturnType     string
	IsMathematical bool
	IsFast         bool // `fast` modifier: parsed, semantics unspecified
}

func (f *FunctionDecl) Pos() lexer.Position { return f.Token.Pos }
func (f *FunctionDecl) statementNode()      {}

type IfStatement struct {
	Token       lexer.Token
	Test        Expression
	Consequent  *BlockStatement
	Alternate   Statement // *BlockStatement or *IfStatement (else-if chain), or nil
}

func (i *IfStatement) Pos() lexer.Position { return i.Token.Pos }
func (i *IfStatement) statementNode()      {}

type ForStatement struct {
	Token  lexer.Token
	Init   Statement // VarDecl or ExprStmt, may be nil
	Test   Expression
	Update Expression
	Body   *BlockStatement
}

func (f *ForStatement) Pos() lexer.Position { return f.Token.Pos }
func (f *ForStatement) statementNode()      {}

type ForOfStatement struct {
	Token    lexer.Token
	VarKind  string // "let", "const", "var"
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (f *ForOfStatement) Pos() lexer.Position { return f.Token.Pos }
func (f *ForOfStatement) statementNode()      {}

type WhileStatement struct {
	Token lexer.Token
	Test  Expression
	Body  *BlockStatement
}

func (w *WhileStatement) Pos() lexer.Position { return w.Token.Pos }
func (w *WhileStatement) statementNode()      {}

type CatchClause struct {
	Param *Identifier // may be nil: `catch { ... }`
	Body  *BlockStatement
}

type TryStatement struct {
	Token    lexer.Token
	Block    *BlockStatement
	Catch    *CatchClause // nil if no catch
	Finally  *BlockStatement // nil if no finally
}

func (t *TryStatement) Pos() lexer.Position { return t.Token.Pos }
func (t *TryStatement) statementNode()      {}

type ReturnStatement struct {
	Token lexer.Token
	Value Expression // nil for bare `return;`
}

func (r *ReturnStatement) Pos() lexer.Position { return r.Token.Pos }
func (r *ReturnStatement) statementNode()      {}

type BreakStatement struct {
	Token lexer.Token
}

func (b *BreakStatement) Pos() lexer.Position { return b.Token.Pos }
func (b *BreakStatement) statementNode()      {}

type ContinueStatement struct {
	Token lexer.Token
}

func (c *ContinueStatement) Pos() lexer.Position { return c.Token.Pos }
func (c *ContinueStatement) statementNode()      {}

type ThrowStatement struct {
	Token lexer.Token
	Value Expression
}

func (t *ThrowStatement) Pos() lexer.Position { return t.Token.Pos }
func (t *ThrowStatement) statementNode()      {}

// ExprStmt wraps an expression used in statement position (calls,
// assignments, and bare postfix update expressions).
type ExprStmt struct {
	Token      lexer.Token
	Expression Expression
}

func (e *ExprStmt) Pos() lexer.Position { return e.Token.Pos }
func (e *ExprStmt) statementNode()      {}
