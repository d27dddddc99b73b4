package parser

import (
	"strings"

	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/lexer"
)

func (p *Parser) parseListLiteral() (ast.Expr, error) {
	pos := p.advance().Position // consume '['
	var elems []ast.Expr
	for !p.check(lexer.RBracket) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Base: ast.At(pos), Elements: elems}, nil
}

func (p *Parser) parseMapLiteral() (ast.Expr, error) {
	pos := p.advance().Position // consume '{'
	var entries []ast.MapEntry
	p.skipSemis()
	for !p.check(lexer.RBrace) {
		key, err := p.parseMapKey()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
		if !p.match(lexer.Comma) {
			break
		}
		p.skipSemis()
	}
	p.skipSemis()
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.MapLiteral{Base: ast.At(pos), Entries: entries}, nil
}

func (p *Parser) parseMapKey() (string, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Identifier:
		p.advance()
		return tok.Lexeme, nil
	case lexer.String:
		p.advance()
		return tok.Lexeme, nil
	case lexer.Symbol:
		p.advance()
		return strings.TrimPrefix(tok.Lexeme, ":"), nil
	default:
		return "", p.errorf("expected map key, got %s %q", tok.Kind, tok.Lexeme)
	}
}

// parseGraphLiteral parses `graph { ... }` or `graph from Parent { ... }`.
func (p *Parser) parseGraphLiteral() (ast.Expr, error) {
	pos := p.advance().Position // consume 'graph'
	var parent ast.Expr
	if p.match(lexer.KwFrom) {
		e, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		parent = e
	}
	entries, err := p.parseGraphEntries()
	if err != nil {
		return nil, err
	}
	return &ast.GraphLiteral{Base: ast.At(pos), Parent: parent, Entries: entries}, nil
}

// parseTreeLiteral desugars `tree{ ... }` into a GraphLiteral carrying
// TypeTag "tree" and an implicit with_ruleset(:tree) invoke entry, per
// ast.GraphLiteral's doc comment.
func (p *Parser) parseTreeLiteral() (ast.Expr, error) {
	pos := p.advance().Position // consume 'tree'
	entries, err := p.parseGraphEntries()
	if err != nil {
		return nil, err
	}
	implicit := ast.GraphEntry{
		Kind: ast.GraphEntryInvoke,
		Invoke: &ast.Call{
			Base:   ast.At(pos),
			Callee: &ast.Identifier{Base: ast.At(pos), Name: "with_ruleset"},
			Args:   []ast.Expr{&ast.SymbolLit{Base: ast.At(pos), Name: "tree"}},
		},
	}
	entries = append([]ast.GraphEntry{implicit}, entries...)
	return &ast.GraphLiteral{Base: ast.At(pos), TypeTag: "tree", Entries: entries}, nil
}

func (p *Parser) parseGraphEntries() ([]ast.GraphEntry, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	var entries []ast.GraphEntry
	p.skipSemis()
	for !p.check(lexer.RBrace) {
		entry, err := p.parseGraphEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		if !p.match(lexer.Comma) {
			p.skipSemis()
		}
		p.skipSemis()
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return entries, nil
}

func (p *Parser) parseGraphEntry() (ast.GraphEntry, error) {
	if p.check(lexer.KwFn) {
		m, err := p.parseMethodDef("")
		if err != nil {
			return ast.GraphEntry{}, err
		}
		return ast.GraphEntry{Kind: ast.GraphEntryMethod, Method: m}, nil
	}
	if p.check(lexer.Identifier) && p.peekAt(1).Kind == lexer.Colon {
		keyTok := p.advance()
		p.advance() // colon
		val, err := p.parseExpr()
		if err != nil {
			return ast.GraphEntry{}, err
		}
		return ast.GraphEntry{Kind: ast.GraphEntryData, DataKey: keyTok.Lexeme, DataValue: val}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return ast.GraphEntry{}, err
	}
	call, ok := e.(*ast.Call)
	if !ok {
		return ast.GraphEntry{}, p.errorf("graph literal entries must be a rule/behavior call or key: value pair")
	}
	return ast.GraphEntry{Kind: ast.GraphEntryInvoke, Invoke: call}, nil
}

// parseLambda parses an anonymous function literal: `fn(params) { body }`
// or the pattern-matching form `fn |pat| => body ...`.
func (p *Parser) parseLambda() (ast.Expr, error) {
	pos := p.advance().Position // consume 'fn'
	if p.check(lexer.Pipe) {
		clauses, err := p.parsePatternFnClauses()
		if err != nil {
			return nil, err
		}
		return &ast.PatternFn{Base: ast.At(pos), Clauses: clauses}, nil
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Base: ast.At(pos), Params: params, Body: body}, nil
}

func (p *Parser) parseParamList() ([]string, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var params []string
	for !p.check(lexer.RParen) {
		tok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Lexeme)
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return params, nil
}
