package where

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes condition strings
type Lexer struct {
	input string
	start int // offset of ch
	next  int // offset after ch
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.start = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += w
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readString reads a quoted string. The bool result is false when the
// closing quote is missing.
func (l *Lexer) readString(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

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
	l.readChar() // skip closing quote
	return result.String(), true
}

// readNumber reads an optionally negative decimal number
func (l *Lexer) readNumber() string {
	var result strings.Builder
	if l.ch == '-' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	for unicode.IsDigit(l.ch) || l.ch == '.' || l.ch == 'e' || l.ch == 'E' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// readIdentifier reads a keyword or a dotted column path
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.start
	tok := func(t TokenType, v string) Token { return Token{Type: t, Value: v, Pos: pos} }

	switch l.ch {
	case 0:
		return tok(TokenEOF, "")
	case '(':
		l.readChar()
		return tok(TokenLParen, "(")
	case ')':
		l.readChar()
		return tok(TokenRParen, ")")
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
		}
		return tok(TokenEqual, "=")
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return tok(TokenNotEqual, "!=")
		}
		l.readChar()
		return tok(TokenError, "!")
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			l.readChar()
			return tok(TokenLessEqual, "<=")
		case '>':
			l.readChar()
			l.readChar()
			return tok(TokenNotEqual, "<>")
		}
		l.readChar()
		return tok(TokenLess, "<")
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return tok(TokenGreaterEqual, ">=")
		}
		l.readChar()
		return tok(TokenGreater, ">")
	case '\'', '"':
		s, ok := l.readString(l.ch)
		if !ok {
			return tok(TokenError, "unterminated string")
		}
		return tok(TokenString, s)
	case '`':
		s, ok := l.readString('`')
		if !ok || s == "" {
			return tok(TokenError, "bad quoted column")
		}
		return tok(TokenQuotedIdent, s)
	}

	if unicode.IsDigit(l.ch) || (l.ch == '-' && unicode.IsDigit(l.peekChar())) {
		return tok(TokenNumber, l.readNumber())
	}
	if unicode.IsLetter(l.ch) || l.ch == '_' {
		value := l.readIdentifier()
		return tok(identifierType(value), value)
	}
	ch := l.ch
	l.readChar()
	return tok(TokenError, string(ch))
}

var keywords = map[string]TokenType{
	"and":   TokenAnd,
	"or":    TokenOr,
	"not":   TokenNot,
	"is":    TokenIs,
	"null":  TokenNull,
	"true":  TokenBool,
	"false": TokenBool,
}

// identifierType determines if an identifier is a keyword
func identifierType(ident string) TokenType {
	if tokType, ok := keywords[strings.ToLower(ident)]; ok {
		return tokType
	}
	return TokenIdent
}

// Tokenize returns all tokens from the input
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
