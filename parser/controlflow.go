package parser

import (
	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/lexer"
	"github.com/xvandervort/graphoid-sub001/position"
)

func (p *Parser) parseIf() (ast.Stmt, error) {
	tok := p.advance() // consume 'if'
	return p.parseIfBody(tok.Position)
}

// parseIfBody parses the condition, then-block, and an optional elif/else
// tail. An elif chains by nesting: Else holds a single IfStmt built by a
// recursive call starting at the elif token (ast/stmt.go's IfStmt doc).
func (p *Parser) parseIfBody(pos position.Position) (*ast.IfStmt, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseStmts []ast.Stmt
	switch {
	case p.check(lexer.KwElif):
		elifTok := p.advance()
		nested, err := p.parseIfBody(elifTok.Position)
		if err != nil {
			return nil, err
		}
		elseStmts = []ast.Stmt{nested}
	case p.match(lexer.KwElse):
		elseStmts, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Base: ast.At(pos), Cond: cond, Then: then, Else: elseStmts}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'while'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Base: ast.At(pos), Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'for'
	varTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwIn); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Base: ast.At(pos), Var: varTok.Lexeme, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'try'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catches []ast.CatchClause
	for p.check(lexer.KwCatch) {
		p.advance()
		var varName string
		if p.check(lexer.Identifier) {
			varName = p.advance().Lexeme
		}
		cbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catches = append(catches, ast.CatchClause{Var: varName, Body: cbody})
	}
	var finallyBody []ast.Stmt
	if p.match(lexer.KwFinally) {
		finallyBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.TryStmt{Base: ast.At(pos), Body: body, Catches: catches, Finally: finallyBody}, nil
}

func (p *Parser) parseThrow() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'throw'
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{Base: ast.At(pos), Value: val}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'return'
	if p.isStmtEnd() {
		return &ast.ReturnStmt{Base: ast.At(pos)}, nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Base: ast.At(pos), Value: val}, nil
}

func (p *Parser) isStmtEnd() bool {
	switch p.cur().Kind {
	case lexer.Semi, lexer.RBrace, lexer.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseOptionEntries() ([]ast.MapEntry, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	var entries []ast.MapEntry
	p.skipSemis()
	for !p.check(lexer.RBrace) {
		tok := p.cur()
		key, err := p.parseMapKey()
		if err != nil {
			return nil, err
		}
		if p.check(lexer.Colon) {
			p.advance()
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.MapEntry{Key: key, Value: val})
		} else {
			// Bare flag option, e.g. `precision { :integer } { ... }`:
			// the symbol names the option directly instead of a key:
			// value pair.
			entries = append(entries, ast.MapEntry{Key: key, Value: &ast.BoolLit{Base: ast.At(tok.Position), Value: true}})
		}
		if !p.match(lexer.Comma) {
			break
		}
		p.skipSemis()
	}
	p.skipSemis()
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseConfigure parses `configure { opts } { body }` or the bodyless form
// that applies to the remainder of the enclosing scope (spec.md §4.3).
func (p *Parser) parseConfigure() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'configure'
	options, err := p.parseOptionEntries()
	if err != nil {
		return nil, err
	}
	var body []ast.Stmt
	if p.check(lexer.LBrace) {
		body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.ConfigureStmt{Base: ast.At(pos), Options: options, Body: body}, nil
}

func (p *Parser) parsePrecision() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'precision'
	options, err := p.parseOptionEntries()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.PrecisionStmt{Base: ast.At(pos), Options: options, Body: body}, nil
}

func (p *Parser) parseImport() (ast.Stmt, error) {
	pos := p.advance().Position // consume 'import'
	pathTok, err := p.expect(lexer.String)
	if err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Base: ast.At(pos), Path: pathTok.Lexeme}, nil
}

// parseExprOrAssignStmt parses a bare expression statement or an assignment,
// including the `Name = graph from Parent {...}` sugar that produces a
// GraphDef instead of a plain AssignStmt (ast/stmt.go's GraphDef doc).
func (p *Parser) parseExprOrAssignStmt() (ast.Stmt, error) {
	pos := p.cur().Position
	lhs, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.Assign) {
		p.advance()
		target, err := p.exprToAssignTarget(lhs)
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if target.Kind == ast.TargetIdentifier {
			if gl, ok := value.(*ast.GraphLiteral); ok && gl.Parent != nil {
				return &ast.GraphDef{Base: ast.At(pos), Name: target.Name, Literal: gl}, nil
			}
		}
		return &ast.AssignStmt{Base: ast.At(pos), Target: target, Value: value}, nil
	}
	lhs, err = p.parseTrailingInlineIf(lhs)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Base: ast.At(pos), X: lhs}, nil
}

func (p *Parser) exprToAssignTarget(e ast.Expr) (ast.AssignTarget, error) {
	switch v := e.(type) {
	case *ast.Identifier:
		return ast.AssignTarget{Kind: ast.TargetIdentifier, Name: v.Name}, nil
	case *ast.Index:
		return ast.AssignTarget{Kind: ast.TargetIndex, Object: v.Object, Key: v.Key}, nil
	case *ast.Property:
		return ast.AssignTarget{Kind: ast.TargetProperty, Object: v.Object, Property: v.Name}, nil
	default:
		return ast.AssignTarget{}, p.errorf("invalid assignment target")
	}
}
