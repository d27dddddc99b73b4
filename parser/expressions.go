package parser

import (
	"strconv"
	"strings"

	"github.com/xvandervort/graphoid-sub001/ast"
	"github.com/xvandervort/graphoid-sub001/lexer"
)

// parseExpr is the entry point for expression parsing, starting at the
// lowest-precedence level (`or`), per spec.md §4.3's nine-level table.
func (p *Parser) parseExpr() (ast.Expr, error) {
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return p.parseTrailingInlineIf(e)
}

// parseTrailingInlineIf wraps e in an InlineIf if followed by a trailing
// `if cond` / `unless cond` modifier (spec.md §4.3 "Inline if").
func (p *Parser) parseTrailingInlineIf(e ast.Expr) (ast.Expr, error) {
	switch p.cur().Kind {
	case lexer.KwIf:
		pos := p.advance().Position
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return &ast.InlineIf{Base: ast.At(pos), Cond: cond, Then: e}, nil
	case lexer.KwUnless:
		pos := p.advance().Position
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return &ast.InlineIf{Base: ast.At(pos), Cond: cond, Then: e, Unless: true}, nil
	default:
		return e, nil
	}
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.KwOr) || p.check(lexer.OrOr) {
		pos := p.advance().Position
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Base: ast.At(pos), Op: ast.BinOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.KwAnd) || p.check(lexer.AndAnd) {
		pos := p.advance().Position
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Base: ast.At(pos), Op: ast.BinAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.check(lexer.KwNot) || p.check(lexer.Bang) {
		pos := p.advance().Position
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Base: ast.At(pos), Op: ast.UnaryNot, X: operand}, nil
	}
	return p.parseComparison()
}

func comparisonOp(k lexer.Kind) (ast.BinaryOp, bool) {
	switch k {
	case lexer.Eq:
		return ast.BinEq, true
	case lexer.NotEq:
		return ast.BinNotEq, true
	case lexer.Lt:
		return ast.BinLt, true
	case lexer.LtEq:
		return ast.BinLtEq, true
	case lexer.Gt:
		return ast.BinGt, true
	case lexer.GtEq:
		return ast.BinGtEq, true
	default:
		return 0, false
	}
}

// parseComparison parses at most one comparison operator; a second one
// immediately following is a parse error, implementing spec.md §4.3's
// "chained comparisons... are rejected" rule.
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOp(p.cur().Kind)
	if !ok {
		return left, nil
	}
	pos := p.advance().Position
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if _, chained := comparisonOp(p.cur().Kind); chained {
		return nil, p.errorf("chained comparisons are not allowed")
	}
	return &ast.Binary{Base: ast.At(pos), Op: op, Left: left, Right: right}, nil
}

func additiveOp(k lexer.Kind) (ast.BinaryOp, bool) {
	switch k {
	case lexer.Plus:
		return ast.BinAdd, true
	case lexer.Minus:
		return ast.BinSub, true
	case lexer.EPlus:
		return ast.BinEAdd, true
	case lexer.EMinus:
		return ast.BinESub, true
	default:
		return 0, false
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := additiveOp(p.cur().Kind)
		if !ok {
			return left, nil
		}
		pos := p.advance().Position
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Base: ast.At(pos), Op: op, Left: left, Right: right}
	}
}

func multiplicativeOp(k lexer.Kind) (ast.BinaryOp, bool) {
	switch k {
	case lexer.Star:
		return ast.BinMul, true
	case lexer.Slash:
		return ast.BinDiv, true
	case lexer.SlashSlash:
		return ast.BinFloorDiv, true
	case lexer.Percent:
		return ast.BinMod, true
	case lexer.EStar:
		return ast.BinEMul, true
	case lexer.ESlash:
		return ast.BinEDiv, true
	case lexer.ESlashSlash:
		return ast.BinEFloorDiv, true
	case lexer.EPercent:
		return ast.BinEMod, true
	default:
		return 0, false
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := multiplicativeOp(p.cur().Kind)
		if !ok {
			return left, nil
		}
		pos := p.advance().Position
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Base: ast.At(pos), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(lexer.Minus) {
		pos := p.advance().Position
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Base: ast.At(pos), Op: ast.UnaryNeg, X: operand}, nil
	}
	if p.check(lexer.KwNot) || p.check(lexer.Bang) {
		pos := p.advance().Position
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Base: ast.At(pos), Op: ast.UnaryNot, X: operand}, nil
	}
	return p.parseExponent()
}

func exponentOp(k lexer.Kind) (ast.BinaryOp, bool) {
	switch k {
	case lexer.Caret:
		return ast.BinPow, true
	case lexer.ECaret:
		return ast.BinEPow, true
	default:
		return 0, false
	}
}

// parseExponent is right-associative (spec.md §4.3, level 8).
func (p *Parser) parseExponent() (ast.Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	op, ok := exponentOp(p.cur().Kind)
	if !ok {
		return left, nil
	}
	pos := p.advance().Position
	right, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Base: ast.At(pos), Op: op, Left: left, Right: right}, nil
}

// parsePostfix handles left-associative chains of calls, indexing, property
// access, and (bang-)method calls (spec.md §4.3, level 9).
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case lexer.LParen:
			pos := p.cur().Position
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Base: ast.At(pos), Callee: expr, Args: args}
		case lexer.LBracket:
			pos := p.advance().Position
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBracket); err != nil {
				return nil, err
			}
			expr = &ast.Index{Base: ast.At(pos), Object: expr, Key: key}
		case lexer.Dot:
			pos := p.advance().Position
			nameTok, err := p.expect(lexer.Identifier)
			if err != nil {
				return nil, err
			}
			name := nameTok.Lexeme
			bang := strings.HasSuffix(name, "!")
			name = strings.TrimSuffix(name, "!")
			if p.check(lexer.LParen) {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				expr = &ast.MethodCall{Base: ast.At(pos), Receiver: expr, Name: name, Bang: bang, Args: args}
			} else {
				expr = &ast.Property{Base: ast.At(pos), Object: expr, Name: name}
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.check(lexer.RParen) {
		e, err := p.parseCallArg()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseCallArg parses one entry of a call's argument list, recognizing the
// `name: value` keyword-argument form (spec.md §4.4's `node("u", type:
// "User")`) ahead of an ordinary positional expression. An identifier
// followed by `:` is unambiguous here: `:` never starts or continues an
// expression at this position (symbols use `:name`, not `name:`).
func (p *Parser) parseCallArg() (ast.Expr, error) {
	if p.check(lexer.Identifier) && p.peekAt(1).Kind == lexer.Colon {
		nameTok := p.advance()
		pos := p.advance().Position // consumes the colon
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.KeywordArg{Base: ast.At(pos), Name: nameTok.Lexeme, Value: val}, nil
	}
	return p.parseExpr()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Integer:
		p.advance()
		n, err := parseIntegerLexeme(tok.Lexeme)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Lexeme)
		}
		return &ast.NumberLit{Base: ast.At(tok.Position), Value: n, IntegerFlagged: true}, nil
	case lexer.Float:
		p.advance()
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Lexeme)
		}
		return &ast.NumberLit{Base: ast.At(tok.Position), Value: n}, nil
	case lexer.String:
		p.advance()
		return &ast.StringLit{Base: ast.At(tok.Position), Value: tok.Lexeme}, nil
	case lexer.Symbol:
		p.advance()
		return &ast.SymbolLit{Base: ast.At(tok.Position), Name: strings.TrimPrefix(tok.Lexeme, ":")}, nil
	case lexer.KwTrue:
		p.advance()
		return &ast.BoolLit{Base: ast.At(tok.Position), Value: true}, nil
	case lexer.KwFalse:
		p.advance()
		return &ast.BoolLit{Base: ast.At(tok.Position), Value: false}, nil
	case lexer.KwNone:
		p.advance()
		return &ast.NoneLit{Base: ast.At(tok.Position)}, nil
	case lexer.KwSelf:
		p.advance()
		return &ast.Self{Base: ast.At(tok.Position)}, nil
	case lexer.KwSuper:
		return p.parseSuper()
	case lexer.Identifier:
		p.advance()
		return &ast.Identifier{Base: ast.At(tok.Position), Name: tok.Lexeme}, nil
	case lexer.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.LBracket:
		return p.parseListLiteral()
	case lexer.LBrace:
		return p.parseMapLiteral()
	case lexer.KwGraph:
		return p.parseGraphLiteral()
	case lexer.KwTree:
		return p.parseTreeLiteral()
	case lexer.KwFn:
		return p.parseLambda()
	case lexer.KwMatch:
		return p.parseMatchExpr()
	default:
		return nil, p.errorf("unexpected token %s %q", tok.Kind, tok.Lexeme)
	}
}

// parseIntegerLexeme normalizes a lexed integer, radix-prefixed (0x/0b/0o)
// or plain decimal, into an f64 (spec.md §4.1).
func parseIntegerLexeme(lexeme string) (float64, error) {
	if len(lexeme) > 1 && lexeme[0] == '0' {
		switch lexeme[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			n, err := strconv.ParseInt(lexeme, 0, 64)
			if err != nil {
				return 0, err
			}
			return float64(n), nil
		}
	}
	return strconv.ParseFloat(lexeme, 64)
}

func (p *Parser) parseSuper() (ast.Expr, error) {
	pos := p.advance().Position
	if _, err := p.expect(lexer.Dot); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.Super{Base: ast.At(pos), Name: nameTok.Lexeme, Args: args}, nil
}
