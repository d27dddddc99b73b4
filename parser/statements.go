package parser

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/lexer"
)

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.KwImport:
		return p.parseImport()
	case lexer.KwFn:
		return p.parseFnOrMethod()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.KwBreak:
		tok := p.advance()
		return &ast.BreakStmt{Base: ast.At(tok.Position)}, nil
	case lexer.KwContinue:
		tok := p.advance()
		return &ast.ContinueStmt{Base: ast.At(tok.Position)}, nil
	case lexer.KwTry:
		return p.parseTry()
	case lexer.KwThrow:
		return p.parseThrow()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwConfigure:
		return p.parseConfigure()
	case lexer.KwPrecision:
		return p.parsePrecision()
	default:
		return p.parseExprOrAssignStmt()
	}
}
