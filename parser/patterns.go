package parser

import (
	"strings"

	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/lexer"
)

// parsePattern parses one pattern used by `match` clauses and pattern-
// matching function clauses (spec.md §4.3 "Pattern matching"). It never
// produces PatNode/PatEdge/PatPath: those graph-query pattern shapes are
// built at evaluation time from node(...)/edge(...)/path(...) calls instead
// (see DESIGN.md).
func (p *Parser) parsePattern() (ast.Pattern, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Identifier:
		p.advance()
		if tok.Lexeme == "_" {
			return &ast.PatWildcard{Base: ast.At(tok.Position)}, nil
		}
		return &ast.PatVariable{Base: ast.At(tok.Position), Name: tok.Lexeme}, nil
	case lexer.LBracket:
		return p.parseListOrTaggedPattern()
	case lexer.LParen:
		return p.parseTuplePattern()
	default:
		e, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &ast.PatLiteral{Base: ast.At(tok.Position), Value: e}, nil
	}
}

// parseListOrTaggedPattern parses `[a, b, ...rest]` or, when the first
// element is a bare symbol literal, the tagged-list sugar `[:ok, x]`.
func (p *Parser) parseListOrTaggedPattern() (ast.Pattern, error) {
	pos := p.advance().Position // consume '['
	var elements []ast.Pattern
	var rest *string
	var tag string
	first := true
	for !p.check(lexer.RBracket) {
		if p.isRestMarker() {
			p.consumeRestMarker()
			nameTok, err := p.expect(lexer.Identifier)
			if err != nil {
				return nil, err
			}
			name := nameTok.Lexeme
			rest = &name
			break
		}
		if first && p.check(lexer.Symbol) {
			tagTok := p.advance()
			tag = strings.TrimPrefix(tagTok.Lexeme, ":")
		} else {
			elem, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
		}
		first = false
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	if tag != "" {
		return &ast.PatTagged{Base: ast.At(pos), Tag: tag, Inner: elements}, nil
	}
	return &ast.PatList{Base: ast.At(pos), Elements: elements, Rest: rest}, nil
}

func (p *Parser) parseTuplePattern() (ast.Pattern, error) {
	pos := p.advance().Position // consume '('
	var elements []ast.Pattern
	for !p.check(lexer.RParen) {
		elem, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return &ast.PatTuple{Base: ast.At(pos), Elements: elements}, nil
}

// isRestMarker reports whether the cursor sits at three consecutive Dot
// tokens (the lexer has no single "..." token, so a rest-capture marker
// lexes as Dot Dot Dot).
func (p *Parser) isRestMarker() bool {
	return p.check(lexer.Dot) && p.peekAt(1).Kind == lexer.Dot && p.peekAt(2).Kind == lexer.Dot
}

func (p *Parser) consumeRestMarker() {
	p.advance()
	p.advance()
	p.advance()
}

// parsePatternFnClauses parses a `|pat| => body` clause sequence used by
// both pattern-matching function definitions and anonymous pattern-fn
// literals (spec.md §4.3 "Pattern-matching function").
func (p *Parser) parsePatternFnClauses() ([]ast.PatternFnClause, error) {
	var clauses []ast.PatternFnClause
	for p.check(lexer.Pipe) {
		p.advance()
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Pipe); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Arrow); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.PatternFnClause{Pattern: pat, Body: body})
		p.skipSemis()
	}
	return clauses, nil
}

// parseMatchExpr parses `match scrutinee { clauses }`.
func (p *Parser) parseMatchExpr() (ast.Expr, error) {
	pos := p.advance().Position // consume 'match'
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	var clauses []ast.MatchClause
	p.skipSemis()
	for !p.check(lexer.RBrace) {
		var pat ast.Pattern
		if p.check(lexer.Pipe) {
			p.advance()
			pat, err = p.parsePattern()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Pipe); err != nil {
				return nil, err
			}
		} else {
			pat, err = p.parsePattern()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.Arrow); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.MatchClause{Pattern: pat, Body: body})
		if !p.match(lexer.Comma) {
			p.skipSemis()
		}
		p.skipSemis()
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return &ast.Match{Base: ast.At(pos), Scrutinee: scrutinee, Clauses: clauses}, nil
}
