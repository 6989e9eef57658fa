package kaleido

import (
	"errors"
	"strings"
	"testing"

	"go.kaleido.dev/internal/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexAll returns every token up to, but not including, TokenEOF.
func lexAll(l *Lexer) []Token {
	var tokens []Token
	for tok := l.Next(); tok.Typ != TokenEOF; tok = l.Next() {
		tokens = append(tokens, tok)
	}

	return tokens
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		expect []Token
	}{
		{
			"def foo(x y) x+y",
			[]Token{
				{TokenDef, "def", 0},
				{TokenIdentifier, "foo", 0},
				{TokenChar, "(", 0},
				{TokenIdentifier, "x", 0},
				{TokenIdentifier, "y", 0},
				{TokenChar, ")", 0},
				{TokenIdentifier, "x", 0},
				{TokenChar, "+", 0},
				{TokenIdentifier, "y", 0},
			},
		},
		{
			"extern sin(a);",
			[]Token{
				{TokenExtern, "extern", 0},
				{TokenIdentifier, "sin", 0},
				{TokenChar, "(", 0},
				{TokenIdentifier, "a", 0},
				{TokenChar, ")", 0},
				{TokenChar, ";", 0},
			},
		},
		{
			"x1 define externs",
			[]Token{
				{TokenIdentifier, "x1", 0},
				{TokenIdentifier, "define", 0},
				{TokenIdentifier, "externs", 0},
			},
		},
		{
			"4.5 < 10",
			[]Token{
				{TokenNumber, "4.5", 4.5},
				{TokenChar, "<", 0},
				{TokenNumber, "10", 10},
			},
		},
		{
			"1.2.3 1..5",
			[]Token{
				{TokenNumber, "1.2.3", 1.2},
				{TokenNumber, "1..5", 1},
			},
		},
		{
			"2x",
			[]Token{
				{TokenNumber, "2", 2},
				{TokenIdentifier, "x", 0},
			},
		},
		{
			"# comment only\n42",
			[]Token{
				{TokenNumber, "42", 42},
			},
		},
		{
			"a # trailing\r\nb",
			[]Token{
				{TokenIdentifier, "a", 0},
				{TokenIdentifier, "b", 0},
			},
		},
		{
			"# comment without newline",
			nil,
		},
		{
			"@ = !",
			[]Token{
				{TokenChar, "@", 0},
				{TokenChar, "=", 0},
				{TokenChar, "!", 0},
			},
		},
		{
			"   \t\n",
			nil,
		},
		{
			"é1",
			[]Token{
				{TokenChar, "é", 0},
				{TokenNumber, "1", 1},
			},
		},
		{
			"aé",
			[]Token{
				{TokenIdentifier, "a", 0},
				{TokenChar, "é", 0},
			},
		},
	}

	for _, c := range cases {
		l := NewLexer(strings.NewReader(c.data))

		assert.Equal(t, c.expect, lexAll(l), c.data)
		assert.NoError(t, l.Err())
	}
}

func TestLexerCommentEqualsNoComment(t *testing.T) {
	commented := lexAll(NewLexer(strings.NewReader("# comment only\n42")))
	plain := lexAll(NewLexer(strings.NewReader("42")))

	assert.Equal(t, plain, commented)
}

func TestLexerRepeatsEOF(t *testing.T) {
	l := NewLexer(strings.NewReader("x # no newline"))

	assert.Equal(t, TokenIdentifier, l.Next().Typ)
	for i := 0; i < 3; i++ {
		assert.Equal(t, TokenEOF, l.Next().Typ)
	}
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}

	n := copy(p, r.data)
	r.data = r.data[n:]

	return n, nil
}

func TestLexerReadError(t *testing.T) {
	readErr := errors.New("device gone")
	l := NewLexer(&failingReader{data: "foo ", err: readErr})

	assert.Equal(t, Token{TokenIdentifier, "foo", 0}, l.Next())
	assert.Equal(t, TokenEOF, l.Next().Typ)
	require.Error(t, l.Err())
	assert.ErrorIs(t, l.Err(), readErr)
}

func TestTokenChar(t *testing.T) {
	assert.Equal(t, '+', Token{Typ: TokenChar, Value: "+"}.Char())
	assert.Equal(t, EOF, Token{Typ: TokenIdentifier, Value: "x"}.Char())
	assert.True(t, Token{Typ: TokenChar, Value: ";"}.Is(';'))
	assert.False(t, Token{Typ: TokenIdentifier, Value: ";"}.Is(';'))
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"0":      0,
		"42":     42,
		"3.25":   3.25,
		"7.":     7,
		"1.2.3":  1.2,
		"10..2":  10,
		"0.5.25": 0.5,
	}

	for text, expect := range cases {
		assert.Equal(t, expect, parseNumber(text), text)
	}
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)
		l := NewLexer(strings.NewReader(data))
		b.StartTimer()

		benchResult = lexAll(l)
		if err := l.Err(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
