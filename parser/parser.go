// Package parser implements Graphoid's recursive-descent, precedence-climbing
// parser (spec.md §4.3): token stream in, position-annotated ast.Stmt tree
// out. The structural approach — a cursor over a pre-lexed token slice with
// current()/peek()/advance()/expect() helpers and one parse method per
// grammar production — follows mgmt's lang/parser (itself goyacc-generated,
// but reached for the same primitives its hand-written helper layer uses
// around the generated core) and the lvlath-adjacent attractor-parser
// reference sketch from the wider retrieval pack for the recursive-descent
// shape; Graphoid's grammar has no LALR ambiguity that would justify a
// generated parser, so it's written directly.
package parser

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/lexer"
	"github.com/xvandervort/graphoid-sub001/position"
)

// Parser holds the token cursor for one source file.
type Parser struct {
	file   string
	tokens []lexer.Token
	pos    int
}

// New builds a Parser over an already-tokenized source.
func New(file string, tokens []lexer.Token) *Parser {
	return &Parser{file: file, tokens: tokens}
}

// Parse tokenizes and parses src in one step, the convenience entry point
// most callers (the module manager, tests) use.
func Parse(file, src string) ([]ast.Stmt, error) {
	tokens, err := lexer.Tokenize(file, src)
	if err != nil {
		return nil, err
	}
	return New(file, tokens).ParseProgram()
}

// ParseProgram parses every top-level statement until EOF.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(lexer.EOF) {
		p.skipSemis()
		if p.check(lexer.EOF) {
			break
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		p.skipSemis()
	}
	return stmts, nil
}

// --- cursor helpers ----------------------------------------------------

func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if t.Kind != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(k lexer.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if !p.check(k) {
		return lexer.Token{}, p.errorf("expected %s, got %s %q", k, p.cur().Kind, p.cur().Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return errs.New(position.KindParseError, format, args...).WithPos(p.cur().Position)
}

func (p *Parser) skipSemis() {
	for p.check(lexer.Semi) {
		p.advance()
	}
}

// --- blocks --------------------------------------------------------------

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	p.skipSemis()
	for !p.check(lexer.RBrace) && !p.check(lexer.EOF) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		p.skipSemis()
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}
