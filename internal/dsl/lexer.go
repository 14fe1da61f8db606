package dsl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal
	TokenIdent  // col, address, _file
	TokenString // "name" or 'name'
	TokenNumber // 3, -1
	TokenAnd    // and
	TokenLParen
	TokenRParen
	TokenComma
	TokenDot
)

var tokenNames = map[TokenType]string{
	TokenEOF:     "end of input",
	TokenIllegal: "illegal character",
	TokenIdent:   "identifier",
	TokenString:  "string",
	TokenNumber:  "number",
	TokenAnd:     "'and'",
	TokenLParen:  "'('",
	TokenRParen:  "')'",
	TokenComma:   "','",
	TokenDot:     "'.'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical unit with its byte offset in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes selector expressions
type Lexer struct {
	input string
	pos   int // offset of ch
	next  int // offset after ch
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += width
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a quoted string. ok is false when the closing quote is
// missing.
func (l *Lexer) readString(quote rune) (s string, ok bool) {
	var result strings.Builder
	l.readChar() // opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case 0:
				return result.String(), false
			default:
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch != quote {
		return result.String(), false
	}
	l.readChar() // closing quote
	return result.String(), true
}

func (l *Lexer) readNumber() string {
	var result strings.Builder
	if l.ch == '-' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	for unicode.IsDigit(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	start := l.pos

	single := func(t TokenType) Token {
		tok := Token{Type: t, Value: string(l.ch), Pos: start}
		l.readChar()
		return tok
	}

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Pos: start}
	case l.ch == '(':
		return single(TokenLParen)
	case l.ch == ')':
		return single(TokenRParen)
	case l.ch == ',':
		return single(TokenComma)
	case l.ch == '.':
		return single(TokenDot)
	case l.ch == '"' || l.ch == '\'':
		s, ok := l.readString(l.ch)
		if !ok {
			return Token{Type: TokenIllegal, Value: "unterminated string", Pos: start}
		}
		return Token{Type: TokenString, Value: s, Pos: start}
	case unicode.IsDigit(l.ch) || l.ch == '-':
		n := l.readNumber()
		if n == "-" {
			return Token{Type: TokenIllegal, Value: "-", Pos: start}
		}
		return Token{Type: TokenNumber, Value: n, Pos: start}
	case unicode.IsLetter(l.ch) || l.ch == '_':
		ident := l.readIdentifier()
		if strings.EqualFold(ident, "and") {
			return Token{Type: TokenAnd, Value: ident, Pos: start}
		}
		return Token{Type: TokenIdent, Value: ident, Pos: start}
	default:
		return single(TokenIllegal)
	}
}

// Tokenize splits input into tokens, ending with TokenEOF or the first
// TokenIllegal.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenIllegal {
			return tokens
		}
	}
}
