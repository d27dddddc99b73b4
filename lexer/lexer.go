package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xvandervort/graphoid-sub001/errs"
	"github.com/xvandervort/graphoid-sub001/position"
)

// Lexer scans Graphoid source text into a Token stream. It holds no state
// beyond the cursor into src, so a fresh Lexer per file is cheap, matching
// the "finite, restartable sequence" contract of spec.md §4.1.
type Lexer struct {
	file string
	src  string

	offset int // byte offset of the rune at pos
	pos    position.Position

	// ch/width track the rune currently "under the cursor" so peek()
	// and advance() agree on what they're looking at.
	ch    rune
	width int
}

// New builds a Lexer over src, attributing all positions to file (used in
// error messages and AST node positions; pass "" for anonymous input).
func New(file, src string) *Lexer {
	l := &Lexer{
		file: file,
		src:  src,
		pos:  position.Position{File: file, Line: 1, Column: 1},
	}
	l.readRune()
	// A shebang on the first line is a comment (spec.md §6.1).
	if strings.HasPrefix(src, "#!") {
		l.skipLine()
	}
	return l
}

func (l *Lexer) readRune() {
	if l.offset >= len(l.src) {
		l.ch = 0
		l.width = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.src[l.offset:])
	l.ch = r
	l.width = w
}

// advance consumes the current rune, moving the cursor and position forward.
func (l *Lexer) advance() rune {
	ch := l.ch
	l.offset += l.width
	l.pos = l.pos.Advance(ch)
	l.readRune()
	return ch
}

func (l *Lexer) peekAt(offset int) rune {
	idx := l.offset + l.width
	for i := 0; i < offset; i++ {
		if idx >= len(l.src) {
			return 0
		}
		_, w := utf8.DecodeRuneInString(l.src[idx:])
		idx += w
	}
	if idx >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[idx:])
	return r
}

func (l *Lexer) skipLine() {
	for l.ch != 0 && l.ch != '\n' {
		l.advance()
	}
}

// Next scans and returns the next token, or a LexError on malformed input.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespaceAndComments()

	start := l.pos
	if l.ch == 0 {
		return Token{Kind: EOF, Position: start}, nil
	}

	switch {
	case isIdentStart(l.ch):
		return l.lexIdentOrKeyword(start), nil
	case unicode.IsDigit(l.ch):
		return l.lexNumber(start)
	case l.ch == '"':
		return l.lexString(start)
	case l.ch == ':':
		if isIdentStart(l.peekAt(0)) {
			return l.lexSymbol(start), nil
		}
		l.advance()
		return Token{Kind: Colon, Lexeme: ":", Position: start}, nil
	}

	return l.lexOperator(start)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '#':
			l.skipLine()
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) lexIdentOrKeyword(start position.Position) Token {
	var sb strings.Builder
	for isIdentCont(l.ch) {
		sb.WriteRune(l.advance())
	}
	// A bang immediately following an identifier is part of the method-name
	// lexeme (spec.md §4.1, "Mutation suffix `!`"), but only when it isn't
	// itself a `!=` comparison (no identifier precedes those contextually,
	// so this only ever fires for bare trailing `!`).
	if l.ch == '!' && l.peekAt(0) != '=' {
		sb.WriteRune(l.advance())
	}
	lexeme := sb.String()
	if kw, ok := keywords[lexeme]; ok {
		return Token{Kind: kw, Lexeme: lexeme, Position: start}
	}
	return Token{Kind: Identifier, Lexeme: lexeme, Position: start}
}

func (l *Lexer) lexSymbol(start position.Position) Token {
	var sb strings.Builder
	sb.WriteRune(l.advance()) // consume ':'
	for isIdentCont(l.ch) {
		sb.WriteRune(l.advance())
	}
	return Token{Kind: Symbol, Lexeme: sb.String(), Position: start}
}

func (l *Lexer) lexNumber(start position.Position) (Token, error) {
	var sb strings.Builder

	// 0x / 0b / 0o prefixed literals (spec.md §4.1) lex as Integer tokens
	// that keep their prefix; the parser normalizes them to f64.
	if l.ch == '0' {
		switch l.peekAt(0) {
		case 'x', 'X':
			return l.lexRadix(start, 16, isHexDigit)
		case 'b', 'B':
			return l.lexRadix(start, 2, isBinDigit)
		case 'o', 'O':
			return l.lexRadix(start, 8, isOctDigit)
		}
	}

	for unicode.IsDigit(l.ch) {
		sb.WriteRune(l.advance())
	}
	isFloat := false
	if l.ch == '.' && unicode.IsDigit(l.peekAt(0)) {
		isFloat = true
		sb.WriteRune(l.advance())
		for unicode.IsDigit(l.ch) {
			sb.WriteRune(l.advance())
		}
	}
	kind := Integer
	if isFloat {
		kind = Float
	}
	return Token{Kind: kind, Lexeme: sb.String(), Position: start}, nil
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func isBinDigit(r rune) bool { return r == '0' || r == '1' }
func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }

func (l *Lexer) lexRadix(start position.Position, base int, valid func(rune) bool) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(l.advance()) // '0'
	sb.WriteRune(l.advance()) // 'x'/'b'/'o'
	digits := 0
	for valid(l.ch) {
		sb.WriteRune(l.advance())
		digits++
	}
	if digits == 0 {
		return Token{}, errs.New(position.KindLexError, "malformed numeric literal %q", sb.String()).WithPos(start)
	}
	// Lexeme keeps the original radix-prefixed text; the parser normalizes
	// it to an f64 literal value (spec.md §4.1, "normalized into f64").
	return Token{Kind: Integer, Lexeme: sb.String(), Position: start}, nil
}

func (l *Lexer) lexString(start position.Position) (Token, error) {
	l.advance() // consume opening quote
	var sb strings.Builder
	for {
		switch l.ch {
		case 0, '\n':
			return Token{}, errs.New(position.KindLexError, "unterminated string literal").WithPos(start)
		case '"':
			l.advance()
			return Token{Kind: String, Lexeme: sb.String(), Position: start}, nil
		case '\\':
			l.advance()
			esc, err := l.lexEscape(start)
			if err != nil {
				return Token{}, err
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(l.advance())
		}
	}
}

func (l *Lexer) lexEscape(start position.Position) (rune, error) {
	switch l.ch {
	case 'n':
		l.advance()
		return '\n', nil
	case 't':
		l.advance()
		return '\t', nil
	case '"':
		l.advance()
		return '"', nil
	case '\\':
		l.advance()
		return '\\', nil
	default:
		return 0, errs.New(position.KindLexError, "string: bad escaping `\\%c`", l.ch).WithPos(start)
	}
}

// operators is tried longest-match-first so e.g. "//" doesn't lex as two
// "/" tokens and ".//" doesn't lex as "." followed by "//".
var operators = []struct {
	lexeme string
	kind   Kind
}{
	{".//", ESlashSlash}, {"//", SlashSlash},
	{".+", EPlus}, {".-", EMinus}, {".*", EStar}, {"./", ESlash}, {".%", EPercent}, {".^", ECaret},
	{"==", Eq}, {"!=", NotEq}, {"<=", LtEq}, {">=", GtEq},
	{"&&", AndAnd}, {"||", OrOr}, {"=>", Arrow},
	{"+", Plus}, {"-", Minus}, {"*", Star}, {"/", Slash}, {"%", Percent}, {"^", Caret},
	{"<", Lt}, {">", Gt}, {"=", Assign}, {"!", Bang}, {"|", Pipe},
	{"(", LParen}, {")", RParen}, {"[", LBracket}, {"]", RBracket},
	{"{", LBrace}, {"}", RBrace}, {",", Comma}, {";", Semi}, {":", Colon}, {".", Dot},
}

func (l *Lexer) lexOperator(start position.Position) (Token, error) {
	for _, op := range operators {
		if l.matchesAt(op.lexeme) {
			for range op.lexeme {
				l.advance()
			}
			return Token{Kind: op.kind, Lexeme: op.lexeme, Position: start}, nil
		}
	}
	bad := l.ch
	l.advance()
	return Token{}, errs.New(position.KindLexError, "unrecognized character %q", bad).WithPos(start)
}

func (l *Lexer) matchesAt(lexeme string) bool {
	if l.ch != rune(lexeme[0]) {
		return false
	}
	for i := 1; i < len(lexeme); i++ {
		if l.peekAt(i-1) != rune(lexeme[i]) {
			return false
		}
	}
	return true
}

// Tokenize drains the Lexer into a slice, appending a trailing EOF token.
// Most of the parser works off of this rather than pull-based Next calls,
// since Graphoid grammar production rarely needs more than one token of
// lookahead but benefits from a stable index for error messages.
func Tokenize(file, src string) ([]Token, error) {
	l := New(file, src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}
