package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Kind
	}{
		{"empty", "", []Kind{EOF}},
		{"ident", "xs", []Kind{Identifier, EOF}},
		{"bang method", "xs.append!", []Kind{Identifier, Dot, Identifier, EOF}},
		{"keywords", "fn return if else", []Kind{KwFn, KwReturn, KwIf, KwElse, EOF}},
		{"number", "3.14", []Kind{Float, EOF}},
		{"integer", "42", []Kind{Integer, EOF}},
		{"hex", "0xFF", []Kind{Integer, EOF}},
		{"symbol", ":positive", []Kind{Symbol, EOF}},
		{"string", `"hi\n"`, []Kind{String, EOF}},
		{"elementwise", "a .+ b", []Kind{Identifier, EPlus, Identifier, EOF}},
		{"floordiv", "a // b", []Kind{Identifier, SlashSlash, Identifier, EOF}},
		{"comment", "x = 1 # trailing\ny = 2", []Kind{Identifier, Assign, Integer, Identifier, Assign, Integer, EOF}},
		{"arrow pattern", `|x| => x`, []Kind{Pipe, Identifier, Pipe, Arrow, Identifier, EOF}},
		{"shebang", "#!/usr/bin/env graphoid\nx = 1", []Kind{Identifier, Assign, Integer, EOF}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize("test.gr", c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, kinds(toks))
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	_, err := Tokenize("test.gr", `"unterminated`)
	assert.Error(t, err)

	_, err = Tokenize("test.gr", `$`)
	assert.Error(t, err)
}

func TestTokenPositions(t *testing.T) {
	toks, err := Tokenize("test.gr", "x\ny")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Position.Line)
	assert.Equal(t, 2, toks[1].Position.Line)
}

func TestMethodBangNotConfusedWithNotEqual(t *testing.T) {
	toks, err := Tokenize("test.gr", "a != b")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Identifier, NotEq, Identifier, EOF}, kinds(toks))
}
