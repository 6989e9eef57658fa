package kaleido

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type TokenType uint64

const (
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenDef
	TokenExtern
	TokenIdentifier
	TokenNumber
	// TokenChar is any other single character. The character itself is the
	// token's Value, whether or not it has a binary precedence.
	TokenChar
)

var keywordTable = map[string]TokenType{
	"def":    TokenDef,
	"extern": TokenExtern,
}

type Token struct {
	Typ   TokenType
	Value string
	Num   float64
}

// Is reports whether the token is the single character r.
func (t Token) Is(r rune) bool {
	return t.Typ == TokenChar && t.Value == string(r)
}

// Char returns the character of a TokenChar, or EOF for any other token.
func (t Token) Char() rune {
	if t.Typ != TokenChar {
		return EOF
	}

	for _, r := range t.Value {
		return r
	}

	return EOF
}

func (t Token) String() string {
	switch t.Typ {
	case TokenEOF:
		return "end of input"
	case TokenDef, TokenExtern:
		return "keyword '" + t.Value + "'"
	case TokenIdentifier:
		return "identifier '" + t.Value + "'"
	case TokenNumber:
		return "number " + t.Value
	default:
		return fmt.Sprintf("'%s'", t.Value)
	}
}

// Tokenizer produces one token per call. There is no lookahead and no pushback.
type Tokenizer interface {
	Next() Token
}

type Lexer struct {
	reader *bufio.Reader
	err    error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
	}
}

// Err returns the first read error other than io.EOF seen by the lexer.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) Next() Token {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return Token{Typ: TokenEOF}
		case unicode.IsSpace(r):
			l.next()
		case r == '#':
			l.lineCommentState()
		case isDigit(r):
			return l.numberState()
		case isLetter(r):
			return l.identifierState()
		default:
			l.next()
			return Token{Typ: TokenChar, Value: string(r)}
		}
	}
}

func (l *Lexer) identifierState() Token {
	var id strings.Builder
	for r := l.peek(); isLetter(r) || isDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return Token{Typ: t, Value: id.String()}
	}

	return Token{Typ: TokenIdentifier, Value: id.String()}
}

// numberState accepts any run of digits and dots. Malformed literals such as
// "1.2.3" are not rejected; see parseNumber.
func (l *Lexer) numberState() Token {
	var num strings.Builder
	for r := l.peek(); isDigit(r) || r == '.'; r = l.peek() {
		num.WriteRune(l.next())
	}

	return Token{
		Typ:   TokenNumber,
		Value: num.String(),
		Num:   parseNumber(num.String()),
	}
}

// lineCommentState skips a comment up to the end of the line. A comment that
// runs into the end of input leaves EOF as the next character, so the caller
// still gets TokenEOF.
func (l *Lexer) lineCommentState() {
	l.next() // Skip the '#'

	for r := l.peek(); r != '\n' && r != '\r' && r != EOF; r = l.peek() {
		l.next()
	}
}

// parseNumber converts the longest prefix of text that is a valid float, the
// way strtod does. "1.2.3" is 1.2 and "1..5" is 1.
func parseNumber(text string) float64 {
	for end := len(text); end > 0; end-- {
		v, err := strconv.ParseFloat(text[:end], 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return v
		}
	}

	return 0
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r != EOF {
		_ = l.reader.UnreadRune()
	}

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = err
		}

		return EOF
	}

	return r
}
