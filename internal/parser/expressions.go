package parser

import (
	"github.com/mekotech/mathscript/internal/ast"
	"github.com/mekotech/mathscript/internal/lexer"
)

// mathConstantKinds lists the token types parsePrimary recognizes as
// MathConstant literals.
var mathConstantKinds = map[lexer.TokenType]bool{
	lexer.MATH_PI: true, lexer.MATH_E: true, lexer.MATH_PHI: true, lexer.MATH_INFINITY: true,
}

// unaryOperatorText gives the canonical operator text for each prefix
// unary token, since SQRT's literal is the Unicode glyph itself.
var unaryOperatorText = map[lexer.TokenType]string{
	lexer.SQRT:   "√",
	lexer.BANG:   "!",
	lexer.MINUS:  "-",
	lexer.UMINUS: "-",
	lexer.PLUS:   "+",
}

func (p *Parser) registerParseFns() {
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.TEMPLATE_STRING, p.parseTemplateLiteral)
	p.registerPrefix(lexer.TEMPLATE_START, p.parseTemplateLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.UNDEFINED, p.parseNullLiteral)
	p.registerPrefix(lexer.THIS, p.parseThis)
	p.registerPrefix(lexer.MATH_PI, p.parseMathConstant)
	p.registerPrefix(lexer.MATH_E, p.parseMathConstant)
	p.registerPrefix(lexer.MATH_PHI, p.parseMathConstant)
	p.registerPrefix(lexer.MATH_INFINITY, p.parseMathConstant)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(lexer.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedOrArrow)
	p.registerPrefix(lexer.NEW, p.parseNewExpression)
	p.registerPrefix(lexer.BANG, p.parseUnaryExpression)
	p.registerPrefix(lexer.MINUS, p.parseUnaryExpression)
	p.registerPrefix(lexer.UMINUS, p.parseUnaryExpression)
	p.registerPrefix(lexer.PLUS, p.parseUnaryExpression)
	p.registerPrefix(lexer.SQRT, p.parseUnaryExpression)
	p.registerPrefix(lexer.PLUS_PLUS, p.parsePrefixUpdate)
	p.registerPrefix(lexer.MINUS_MINUS, p.parsePrefixUpdate)

	infixOps := []lexer.TokenType{
		lexer.PLUS, lexer.MINUS, lexer.UMINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.TIMES, lexer.DIVIDE, lexer.STAR_STAR, lexer.CARET,
		lexer.EQ_EQ, lexer.EQ_EQ_EQ, lexer.BANG_EQ, lexer.BANG_EQ_EQ, lexer.NE,
		lexer.LT, lexer.GT, lexer.LT_EQ, lexer.GT_EQ, lexer.LE, lexer.GE,
		lexer.AND_AND, lexer.OR_OR,
	}
	for _, t := range infixOps {
		p.registerInfix(t, p.parseBinaryExpression)
	}
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseComputedMember)
	p.registerInfix(lexer.DOT, p.parseDotMember)
	p.registerInfix(lexer.QUESTION, p.parseConditionalExpression)
	p.registerInfix(lexer.ASSIGN, p.parseAssignExpression)
	p.registerInfix(lexer.PLUS_EQ, p.parseAssignExpression)
	p.registerInfix(lexer.MINUS_EQ, p.parseAssignExpression)
	p.registerInfix(lexer.STAR_EQ, p.parseAssignExpression)
	p.registerInfix(lexer.SLASH_EQ, p.parseAssignExpression)
	p.registerInfix(lexer.PLUS_PLUS, p.parsePostfixUpdate)
	p.registerInfix(lexer.MINUS_MINUS, p.parsePostfixUpdate)
}

// parseExpression is the Pratt loop: parse a prefix production, then
// keep absorbing infix/postfix productions whose precedence exceeds
// the caller's floor.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		p.errorf("unexpected token %s (%q) in expression position", p.cur().Type, p.cur().Literal)
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.NEWLINE) {
		// A trailing superscript digit is postfix exponentiation: x² -> x^2.
		if p.curIs(lexer.SUPERSCRIPT_DIGIT) && precedence < POSTFIX {
			exp := p.advance()
			left = &ast.BinaryExpression{Token: exp, Left: left, Operator: "^", Right: &ast.NumberLiteral{Token: exp, Value: exp.Literal}}
			continue
		}
		if precedence >= precedenceOf(p.cur().Type) {
			break
		}
		infix, ok := p.infixParseFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	// A bare identifier followed by `=>` is a one-parameter arrow function.
	if p.peekIs(lexer.FAT_ARROW) {
		if arrow := p.tryParseArrow(); arrow != nil {
			return arrow
		}
	}
	tok := p.advance()
	id := &ast.Identifier{Token: tok, Name: tok.Literal}
	if p.curIs(lexer.SUBSCRIPT_DIGIT) {
		id.Subscript = p.advance().Literal
	}
	return id
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.advance()
	lit := &ast.NumberLiteral{Token: tok, Value: tok.Literal}
	// A trailing superscript digit is exponentiation sugar: 2² -> 2^2.
	if p.curIs(lexer.SUPERSCRIPT_DIGIT) {
		exp := p.advance()
		return &ast.BinaryExpression{
			Token:    tok,
			Left:     lit,
			Operator: "^",
			Right:    &ast.NumberLiteral{Token: exp, Value: exp.Literal},
		}
	}
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.advance()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == lexer.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.advance()
	return &ast.NullLiteral{Token: tok}
}

func (p *Parser) parseThis() ast.Expression {
	tok := p.advance()
	return &ast.Identifier{Token: tok, Name: "this"}
}

func (p *Parser) parseMathConstant() ast.Expression {
	tok := p.advance()
	return &ast.MathConstant{Token: tok, Kind: tok.Type}
}

// parseTemplateLiteral re-lexes each TEMPLATE_EXPR chunk's text through
// a fresh lexer+parser so interpolations get a real expression AST
// instead of being spliced in as raw text.
func (p *Parser) parseTemplateLiteral() ast.Expression {
	tok := p.cur()
	tmpl := &ast.TemplateLiteral{Token: tok}

	if tok.Type == lexer.TEMPLATE_STRING {
		p.advance()
		tmpl.Strings = []string{tok.Literal}
		return tmpl
	}

	tmpl.Strings = append(tmpl.Strings, p.advance().Literal) // TEMPLATE_START
	for {
		exprTok := p.expect(lexer.TEMPLATE_EXPR)
		exprAST := parseSubExpression(exprTok.Literal, p.source, p.file)
		tmpl.Exprs = append(tmpl.Exprs, exprAST)

		switch p.cur().Type {
		case lexer.TEMPLATE_MIDDLE:
			tmpl.Strings = append(tmpl.Strings, p.advance().Literal)
		case lexer.TEMPLATE_END:
			tmpl.Strings = append(tmpl.Strings, p.advance().Literal)
			return tmpl
		default:
			p.errorf("unterminated template literal")
			return tmpl
		}
	}
}

// parseSubExpression parses a standalone expression fragment (the text
// inside a `${...}` interpolation) using its own lexer/parser pair.
func parseSubExpression(src, outerSource, file string) ast.Expression {
	l := lexer.New(src)
	sub, err := New(l, outerSource, file)
	if err != nil {
		return &ast.NullLiteral{}
	}
	expr := sub.parseExpression(LOWEST)
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // [
	arr := &ast.ArrayLiteral{Token: tok}
	p.skipNewlines()
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.COMMA) {
			arr.Elements = append(arr.Elements, nil) // hole
			p.advance()
			p.skipNewlines()
			continue
		}
		if p.curIs(lexer.DOTDOTDOT) {
			spreadTok := p.advance()
			arr.Elements = append(arr.Elements, &ast.SpreadElement{Token: spreadTok, Argument: p.parseExpression(ASSIGN)})
		} else {
			arr.Elements = append(arr.Elements, p.parseExpression(ASSIGN))
		}
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	p.skipNewlines()
	p.expect(lexer.RBRACKET)
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.advance() // {
	obj := &ast.ObjectLiteral{Token: tok}
	p.skipNewlines()
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		prop := p.parseObjectProperty()
		obj.Properties = append(obj.Properties, prop)
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	p.skipNewlines()
	p.expect(lexer.RBRACE)
	return obj
}

func (p *Parser) parseObjectProperty() *ast.ObjectProperty {
	prop := &ast.ObjectProperty{}

	if p.curIs(lexer.LBRACKET) {
		p.advance()
		prop.Computed = true
		prop.KeyExpr = p.parseExpression(LOWEST)
		p.expect(lexer.RBRACKET)
	} else {
		nameTok := p.advance()
		prop.KeyName = nameTok.Literal
	}

	if p.curIs(lexer.LPAREN) {
		// Shorthand method: `key(params) { ... }`.
		prop.IsMethod = true
		prop.MethodParams = p.parseParamList()
		p.functionDepth++
		prop.MethodBody = p.parseBlock()
		p.functionDepth--
		return prop
	}

	p.expect(lexer.COLON)
	prop.Value = p.parseExpression(ASSIGN)
	return prop
}

// parseGroupedOrArrow resolves the arrow-function-vs-parenthesized-
// expression ambiguity: speculatively parse `(params)` and check for a
// following `=>`; on failure (syntax error, or no `=>`), restore the
// cursor and fall back to a normal parenthesized expression.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	if arrow := p.tryParseArrow(); arrow != nil {
		return arrow
	}

	p.advance() // (
	expr := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return expr
}

func (p *Parser) tryParseArrow() ast.Expression {
	start := p.save()
	savedErrCount := len(p.errors)

	tok := p.cur()
	params, ok := p.tryParseArrowParamList()
	if !ok || !p.curIs(lexer.FAT_ARROW) {
		p.errors = p.errors[:savedErrCount]
		p.restore(start)
		return nil
	}
	p.advance() // =>

	arrow := &ast.ArrowFunction{Token: tok, Params: params}
	p.functionDepth++
	if p.curIs(lexer.LBRACE) {
		arrow.Body = p.parseBlock()
	} else {
		arrow.Expr = p.parseExpression(ASSIGN)
	}
	p.functionDepth--
	return arrow
}

// tryParseArrowParamList accepts either a bare identifier (`x => ...`)
// or a fully parenthesized parameter list. It reports ok=false on any
// malformed input instead of recording a ParseError, since the caller
// may still fall back to a grouped expression.
func (p *Parser) tryParseArrowParamList() ([]*ast.Parameter, bool) {
	if p.curIs(lexer.IDENT) {
		tok := p.advance()
		return []*ast.Parameter{{Name: &ast.Identifier{Token: tok, Name: tok.Literal}}}, true
	}
	if !p.curIs(lexer.LPAREN) {
		return nil, false
	}
	p.advance() // (
	var params []*ast.Parameter
	for !p.curIs(lexer.RPAREN) {
		if !p.curIs(lexer.IDENT) {
			return nil, false
		}
		nameTok := p.advance()
		param := &ast.Parameter{Name: &ast.Identifier{Token: nameTok, Name: nameTok.Literal}}
		if p.curIs(lexer.COLON) {
			p.advance()
			if !p.curIs(lexer.IDENT) {
				return nil, false
			}
			param.TypeAnn = p.advance().Literal
		}
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			param.DefaultValue = p.parseExpression(ASSIGN)
		}
		params = append(params, param)
		if p.curIs(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.curIs(lexer.RPAREN) {
		return nil, false
	}
	p.advance() // )
	return params, true
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.advance() // new
	callee := p.parseNewCallee()
	n := &ast.NewExpression{Token: tok, Callee: callee}
	if p.curIs(lexer.LPAREN) {
		p.advance()
		n.Args = p.parseArgList()
	}
	return n
}

// parseNewCallee parses the constructor name and any `.member` chain,
// deliberately stopping before `(` so the caller (not the general Pratt
// loop) decides whether a following parenthesized list is the
// constructor's argument list.
func (p *Parser) parseNewCallee() ast.Expression {
	prefix, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		p.errorf("unexpected token %s (%q) after 'new'", p.cur().Type, p.cur().Literal)
		return nil
	}
	expr := prefix()
	for p.curIs(lexer.DOT) {
		expr = p.parseDotMember(expr)
	}
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.advance()
	op, ok := unaryOperatorText[tok.Type]
	if !ok {
		op = tok.Literal
	}
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpression{Token: tok, Operator: op, Operand: operand}
}

func (p *Parser) parsePrefixUpdate() ast.Expression {
	tok := p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Operand: operand, Prefix: true}
}

func (p *Parser) parsePostfixUpdate(left ast.Expression) ast.Expression {
	tok := p.advance()
	return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Operand: left, Prefix: false}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := precedenceOf(tok.Type)
	if tok.Type == lexer.STAR_STAR || tok.Type == lexer.CARET {
		prec-- // right-associative: a ** b ** c is a ** (b ** c)
	}
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseConditionalExpression(test ast.Expression) ast.Expression {
	tok := p.advance() // ?
	then := p.parseExpression(ASSIGN)
	p.expect(lexer.COLON)
	elseExpr := p.parseExpression(ASSIGN)
	return &ast.ConditionalExpression{Token: tok, Test: test, Then: then, Else: elseExpr}
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	value := p.parseExpression(ASSIGN - 1) // right-associative
	return &ast.AssignExpression{Token: tok, Target: left, Operator: tok.Literal, Value: value}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.advance() // (
	call := &ast.CallExpression{Token: tok, Callee: callee}
	call.Args = p.parseArgList()
	return call
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	p.skipNewlines()
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.DOTDOTDOT) {
			spreadTok := p.advance()
			args = append(args, &ast.SpreadElement{Token: spreadTok, Argument: p.parseExpression(ASSIGN)})
		} else {
			args = append(args, p.parseExpression(ASSIGN))
		}
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	p.skipNewlines()
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseComputedMember(obj ast.Expression) ast.Expression {
	tok := p.advance() // [
	prop := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACKET)
	return &ast.MemberExpression{Token: tok, Object: obj, Property: prop, Computed: true}
}

func (p *Parser) parseDotMember(obj ast.Expression) ast.Expression {
	tok := p.advance() // .
	nameTok := p.expect(lexer.IDENT)
	prop := &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
	return &ast.MemberExpression{Token: tok, Object: obj, Property: prop}
}

// parseParamList parses a `(p1, p2 = default, ...rest)` parameter list
// shared by function declarations and class methods.
func (p *Parser) parseParamList() []*ast.Parameter {
	p.expect(lexer.LPAREN)
	var params []*ast.Parameter
	p.skipNewlines()
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		param := &ast.Parameter{}
		if p.curIs(lexer.DOTDOTDOT) {
			p.advance()
			param.Rest = true
		}
		nameTok := p.expect(lexer.IDENT)
		param.Name = &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
		if p.curIs(lexer.COLON) {
			p.advance()
			param.TypeAnn = p.advance().Literal
		}
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			param.DefaultValue = p.parseExpression(ASSIGN)
		}
		params = append(params, param)
		p.skipNewlines()
		if p.curIs(lexer.COMMA) {
			p.advance()
			p.skipNewlines()
		} else {
			break
		}
	}
	p.skipNewlines()
	p.expect(lexer.RPAREN)
	return params
}
