package parser

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/lexer"
)

// parseFnOrMethod dispatches `fn` at the statement level to one of: a plain
// function definition, a pattern-matching function definition, or an
// Owner.method definition (spec.md §4.3).
func (p *Parser) parseFnOrMethod() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'fn'
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if p.match(lexer.Dot) {
		methodNameTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		return p.parseMethodDefBody(ast.At(pos), nameTok.Lexeme, methodNameTok.Lexeme)
	}
	if p.check(lexer.Pipe) {
		clauses, err := p.parsePatternFnClauses()
		if err != nil {
			return nil, err
		}
		return &ast.FnDef{Base: ast.At(pos), Name: nameTok.Lexeme, Clauses: clauses}, nil
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FnDef{Base: ast.At(pos), Name: nameTok.Lexeme, Params: params, Body: body}, nil
}

// parseMethodDef parses `fn name...` for a method defined inside a graph
// literal's braces, where the owner is the enclosing graph rather than a
// qualified `Owner.name`.
func (p *Parser) parseMethodDef(owner string) (*ast.MethodDef, error) {
	pos := p.advance().Position // consume 'fn'
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	return p.parseMethodDefBody(ast.At(pos), owner, nameTok.Lexeme)
}

// parseMethodDefBody parses the parameter list/setter-arrow/getter body,
// optional `when` guard, and body shared by both method-definition forms
// (spec.md §4.3 "Methods").
func (p *Parser) parseMethodDefBody(base ast.Base, owner, name string) (*ast.MethodDef, error) {
	md := &ast.MethodDef{Base: base, Owner: owner, Name: name}
	switch {
	case p.check(lexer.Assign):
		p.advance()
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		md.IsSetter = true
		md.Params = params
	case p.check(lexer.LParen):
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		md.Params = params
	case p.check(lexer.LBrace):
		md.IsGetter = true
	default:
		return nil, p.errorf("expected method parameter list, setter '=', or getter body")
	}
	if p.match(lexer.KwWhen) {
		guard, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		md.Guard = guard
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	md.Body = body
	return md, nil
}
