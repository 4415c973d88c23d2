package parser

import (
	"github.com/mekotech/mathscript/internal/ast"
	"github.com/mekotech/mathscript/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.LET, lexer.CONST, lexer.VAR:
		return p.parseVarDecl()
	case lexer.FUNCTION:
		return p.parseFunctionDecl()
	case lexer.FAST:
		return p.parseFastFunctionDecl()
	case lexer.CLASS:
		return p.parseClassDecl()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.FOR:
		return p.parseForOrForOf()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.BREAK:
		return p.parseBreakStatement()
	case lexer.CONTINUE:
		return p.parseContinueStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IDENT:
		if fn := p.tryParseMathematicalFunction(); fn != nil {
			return fn
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	tok := p.expect(lexer.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	p.skipNewlines()
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) && len(p.errors) == 0 {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipNewlines()
	}
	p.expect(lexer.RBRACE)
	return block
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.advance()
	decl := &ast.VarDecl{Token: tok, Kind: tok.Literal}
	for {
		target := p.parseBindingPattern()
		d := &ast.Declarator{Target: target}
		if p.curIs(lexer.COLON) {
			p.advance()
			d.TypeAnn = p.advance().Literal
		}
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			d.Initializer = p.parseExpression(ASSIGN)
		} else if decl.Kind == "const" {
			p.errorf("const declaration %q requires an initializer", bindingName(target))
		}
		decl.Declarators = append(decl.Declarators, d)
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.consumeTerminator()
	return decl
}

func bindingName(pat ast.Pattern) string {
	if id, ok := pat.(*ast.IdentifierPattern); ok {
		return id.Name.Name
	}
	return "<pattern>"
}

// parseBindingPattern parses the left-hand side of a declarator: a
// plain identifier, an array-destructuring pattern, or an
// object-destructuring pattern.
func (p *Parser) parseBindingPattern() ast.Pattern {
	switch p.cur().Type {
	case lexer.LBRACKET:
		return p.parseArrayPattern()
	case lexer.LBRACE:
		return p.parseObjectPattern()
	default:
		tok := p.expect(lexer.IDENT)
		return &ast.IdentifierPattern{Token: tok, Name: &ast.Identifier{Token: tok, Name: tok.Literal}}
	}
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	tok := p.advance() // [
	pat := &ast.ArrayPattern{Token: tok}
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		switch {
		case p.curIs(lexer.COMMA):
			pat.Elements = append(pat.Elements, nil)
		case p.curIs(lexer.DOTDOTDOT):
			restTok := p.advance()
			nameTok := p.expect(lexer.IDENT)
			pat.Elements = append(pat.Elements, &ast.RestElement{Token: restTok, Name: &ast.Identifier{Token: nameTok, Name: nameTok.Literal}})
		default:
			pat.Elements = append(pat.Elements, p.parsePatternWithDefault())
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return pat
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	tok := p.advance() // {
	pat := &ast.ObjectPattern{Token: tok}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.DOTDOTDOT) {
			restTok := p.advance()
			nameTok := p.expect(lexer.IDENT)
			pat.Properties = append(pat.Properties, &ast.ObjectPatternProperty{
				Key:   nameTok.Literal,
				Value: &ast.RestElement{Token: restTok, Name: &ast.Identifier{Token: nameTok, Name: nameTok.Literal}},
			})
		} else {
			keyTok := p.expect(lexer.IDENT)
			prop := &ast.ObjectPatternProperty{Key: keyTok.Literal}
			if p.curIs(lexer.COLON) {
				p.advance()
				prop.Value = p.parsePatternWithDefault()
			} else {
				target := &ast.IdentifierPattern{Token: keyTok, Name: &ast.Identifier{Token: keyTok, Name: keyTok.Literal}}
				prop.Value = p.attachDefault(target)
			}
			pat.Properties = append(pat.Properties, prop)
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return pat
}

func (p *Parser) parsePatternWithDefault() ast.Pattern {
	target := p.parseBindingPattern()
	return p.attachDefault(target)
}

func (p *Parser) attachDefault(target ast.Pattern) ast.Pattern {
	if p.curIs(lexer.ASSIGN) {
		tok := p.advance()
		def := p.parseExpression(ASSIGN)
		return &ast.AssignmentPattern{Token: tok, Target: target, Default: def}
	}
	return target
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.advance() // function
	nameTok := p.expect(lexer.IDENT)
	decl := &ast.FunctionDecl{Token: tok, Name: &ast.Identifier{Token: nameTok, Name: nameTok.Literal}}
	decl.Params = p.parseParamList()
	if p.curIs(lexer.COLON) {
		p.advance()
		decl.ReturnType = p.advance().Literal
	}
	p.functionDepth++
	decl.Body = p.parseBlock()
	p.functionDepth--
	return decl
}

// parseFastFunctionDecl handles the `fast function name(...) { ... }`
// modifier: parsed for forward compatibility, the generator emits it
// identically to a regular function.
func (p *Parser) parseFastFunctionDecl() *ast.FunctionDecl {
	p.advance() // fast
	p.expect(lexer.FUNCTION)
	fn := p.parseFunctionDecl()
	fn.IsFast = true
	return fn
}

// tryParseMathematicalFunction resolves the mathematical-shorthand
// ambiguity: `name(params) = expr;` looks like an assignment to a call
// expression until the `=` is reached. Speculatively parse a call-like
// head and commit only once `=` (not `==`) follows a plain parameter
// list; anything else restores the cursor for normal expression
// parsing to retry.
func (p *Parser) tryParseMathematicalFunction() *ast.FunctionDecl {
	start := p.save()
	savedErrCount := len(p.errors)

	if !p.peekIs(lexer.LPAREN) {
		return nil
	}
	nameTok := p.advance()
	params, ok := p.tryParseArrowParamList()
	if !ok || !p.curIs(lexer.ASSIGN) {
		p.errors = p.errors[:savedErrCount]
		p.restore(start)
		return nil
	}
	p.advance() // =
	body := p.parseExpression(ASSIGN)
	p.consumeTerminator()

	return &ast.FunctionDecl{
		Token:          nameTok,
		Name:           &ast.Identifier{Token: nameTok, Name: nameTok.Literal},
		Params:         params,
		IsMathematical: true,
		Body: &ast.BlockStatement{
			Token:      nameTok,
			Statements: []ast.Statement{&ast.ReturnStatement{Token: nameTok, Value: body}},
		},
	}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.advance() // if
	p.expect(lexer.LPAREN)
	test := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	stmt := &ast.IfStatement{Token: tok, Test: test, Consequent: p.parseBlock()}
	p.skipNewlines()
	if p.curIs(lexer.ELSE) {
		p.advance()
		if p.curIs(lexer.IF) {
			stmt.Alternate = p.parseIfStatement()
		} else {
			stmt.Alternate = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.advance()
	p.expect(lexer.LPAREN)
	test := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

// parseForOrForOf resolves `for (` vs `for (x of ...)`: both start
// identically, so speculatively parse a binding + `of` and only commit
// to ForOfStatement once the `of` keyword is actually seen.
func (p *Parser) parseForOrForOf() ast.Statement {
	if forOf := p.tryParseForOf(); forOf != nil {
		return forOf
	}
	return p.parseCStyleFor()
}

func (p *Parser) tryParseForOf() *ast.ForOfStatement {
	start := p.save()
	savedErrCount := len(p.errors)

	tok := p.advance() // for
	p.expect(lexer.LPAREN)

	var varKind string
	switch p.cur().Type {
	case lexer.LET, lexer.CONST, lexer.VAR:
		varKind = p.advance().Literal
	}
	if !p.curIs(lexer.IDENT) {
		p.errors = p.errors[:savedErrCount]
		p.restore(start)
		return nil
	}
	nameTok := p.advance()
	if !p.curIs(lexer.OF) {
		p.errors = p.errors[:savedErrCount]
		p.restore(start)
		return nil
	}
	p.advance() // of
	iterable := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--

	return &ast.ForOfStatement{
		Token: tok, VarKind: varKind,
		Variable: &ast.Identifier{Token: nameTok, Name: nameTok.Literal},
		Iterable: iterable, Body: body,
	}
}

func (p *Parser) parseCStyleFor() *ast.ForStatement {
	tok := p.advance() // for
	p.expect(lexer.LPAREN)

	stmt := &ast.ForStatement{Token: tok}
	if !p.curIs(lexer.SEMICOLON) {
		switch p.cur().Type {
		case lexer.LET, lexer.CONST, lexer.VAR:
			stmt.Init = p.parseVarDeclNoTerminator()
		default:
			stmt.Init = &ast.ExprStmt{Token: p.cur(), Expression: p.parseExpression(LOWEST)}
		}
	}
	p.expect(lexer.SEMICOLON)

	if !p.curIs(lexer.SEMICOLON) {
		stmt.Test = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMICOLON)

	if !p.curIs(lexer.RPAREN) {
		stmt.Update = p.parseExpression(LOWEST)
	}
	p.expect(lexer.RPAREN)

	p.loopDepth++
	stmt.Body = p.parseBlock()
	p.loopDepth--
	return stmt
}

// parseVarDeclNoTerminator parses a VarDecl without consuming a
// trailing terminator, for use inside a for(;;) header.
func (p *Parser) parseVarDeclNoTerminator() *ast.VarDecl {
	tok := p.advance()
	decl := &ast.VarDecl{Token: tok, Kind: tok.Literal}
	for {
		target := p.parseBindingPattern()
		d := &ast.Declarator{Target: target}
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			d.Initializer = p.parseExpression(ASSIGN)
		}
		decl.Declarators = append(decl.Declarators, d)
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return decl
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	tok := p.advance() // try
	stmt := &ast.TryStatement{Token: tok, Block: p.parseBlock()}
	p.skipNewlines()
	if p.curIs(lexer.CATCH) {
		p.advance()
		clause := &ast.CatchClause{}
		if p.curIs(lexer.LPAREN) {
			p.advance()
			nameTok := p.expect(lexer.IDENT)
			clause.Param = &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
			p.expect(lexer.RPAREN)
		}
		clause.Body = p.parseBlock()
		stmt.Catch = clause
	}
	p.skipNewlines()
	if p.curIs(lexer.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		p.errorf("try statement requires a catch or finally clause")
	}
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.advance()
	if p.functionDepth == 0 {
		p.errorf("return outside of a function")
	}
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	p.consumeTerminator()
	return stmt
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	tok := p.advance()
	if p.loopDepth == 0 {
		p.errorf("break outside of a loop")
	}
	p.consumeTerminator()
	return &ast.BreakStatement{Token: tok}
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	tok := p.advance()
	if p.loopDepth == 0 {
		p.errorf("continue outside of a loop")
	}
	p.consumeTerminator()
	return &ast.ContinueStatement{Token: tok}
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	tok := p.advance()
	value := p.parseExpression(LOWEST)
	p.consumeTerminator()
	return &ast.ThrowStatement{Token: tok, Value: value}
}

func (p *Parser) parseExprStatement() *ast.ExprStmt {
	tok := p.cur()
	expr := p.parseExpression(LOWEST)
	stmt := &ast.ExprStmt{Token: tok, Expression: expr}
	p.consumeTerminator()
	return stmt
}
