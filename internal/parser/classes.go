package parser

import (
	"github.com/mekotech/mathscript/internal/ast"
	"github.com/mekotech/mathscript/internal/lexer"
)

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	tok := p.advance() // class
	nameTok := p.expect(lexer.IDENT)
	decl := &ast.ClassDecl{Token: tok, Name: &ast.Identifier{Token: nameTok, Name: nameTok.Literal}}

	if p.curIs(lexer.EXTENDS) {
		p.advance()
		superTok := p.expect(lexer.IDENT)
		decl.Superclass = &ast.Identifier{Token: superTok, Name: superTok.Literal}
	}

	p.expect(lexer.LBRACE)
	p.classDepth++
	p.skipNewlines()
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) && len(p.errors) == 0 {
		decl.Members = append(decl.Members, p.parseMethodDef())
		p.skipNewlines()
	}
	p.classDepth--
	p.expect(lexer.RBRACE)
	return decl
}

func (p *Parser) parseMethodDef() *ast.MethodDef {
	m := &ast.MethodDef{}

	if p.curIs(lexer.STATIC) {
		p.advance()
		m.Static = true
	}

	if p.curIs(lexer.IDENT) && (p.cur().Literal == "get" || p.cur().Literal == "set") && p.peekIs(lexer.IDENT) {
		if p.cur().Literal == "get" {
			m.Kind = ast.MethodGetter
		} else {
			m.Kind = ast.MethodSetter
		}
		p.advance() // get/set
	}

	nameTok := p.expect(lexer.IDENT)
	m.Name = &ast.Identifier{Token: nameTok, Name: nameTok.Literal}
	if nameTok.Literal == "constructor" && m.Kind == ast.MethodRegular {
		m.Kind = ast.MethodConstructor
	}

	m.Params = p.parseParamList()
	if p.curIs(lexer.COLON) {
		p.advance()
		p.advance() // discard return type annotation
	}
	p.functionDepth++
	m.Body = p.parseBlock()
	p.functionDepth--
	return m
}
