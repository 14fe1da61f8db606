package where

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/parframe/schema"
)

// SyntaxError reports a malformed condition.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Parser parses conditions into expression trees
type Parser struct {
	tokens  []Token
	pos     int
	nesting int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: p.current().Pos, Msg: fmt.Sprintf(format, args...)}
}

// Parse parses a condition such as "age > 30 and name != 'Bob'".
func Parse(cond string) (Expression, error) {
	if err := checkLimit(ErrConditionTooLong, len(cond), MaxConditionLength); err != nil {
		return nil, err
	}

	tokens := Tokenize(cond)
	if err := checkLimit(ErrTooManyTokens, len(tokens), MaxTokens); err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	if parser.current().Type == TokenEOF {
		return nil, parser.errorf("empty condition")
	}
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := parser.current(); tok.Type != TokenEOF {
		return nil, parser.errorf("unexpected %v %q", tok.Type, tok.Value)
	}
	return expr, nil
}

// parseOr parses OR expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	leave, err := p.nest()
	if err != nil {
		return nil, err
	}
	defer leave()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenOr, Right: right}
	}

	return left, nil
}

// parseAnd parses AND expressions (higher precedence than OR)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: TokenAnd, Right: right}
	}

	return left, nil
}

func (p *Parser) parseNot() (Expression, error) {
	if p.current().Type != TokenNot {
		return p.parsePrimary()
	}
	leave, err := p.nest()
	if err != nil {
		return nil, err
	}
	defer leave()

	p.advance()
	expr, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return &NotExpr{Expr: expr}, nil
}

func (p *Parser) parsePrimary() (Expression, error) {
	if p.current().Type != TokenLParen {
		return p.parseComparison()
	}
	p.advance()
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Type != TokenRParen {
		return nil, p.errorf("expected ), got %v", p.current().Type)
	}
	p.advance()
	return expr, nil
}

// parseComparison parses "operand op operand" and "operand IS [NOT] NULL"
func (p *Parser) parseComparison() (Expression, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	if p.current().Type == TokenIs {
		p.advance()
		check := &NullCheck{Operand: left}
		if p.current().Type == TokenNot {
			check.Not = true
			p.advance()
		}
		if p.current().Type != TokenNull {
			return nil, p.errorf("expected NULL after IS, got %v", p.current().Type)
		}
		p.advance()
		return check, nil
	}

	operator := p.current().Type
	switch operator {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return nil, p.errorf("expected comparison operator, got %v", operator)
	}

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &ComparisonExpr{Left: left, Operator: operator, Right: right}, nil
}

func (p *Parser) parseOperand() (Operand, error) {
	tok := p.current()
	switch tok.Type {
	case TokenIdent:
		if err := checkLimit(ErrColumnNameTooLong, len(tok.Value), MaxColumnNameLength); err != nil {
			return nil, err
		}
		path := schema.ParsePath(tok.Value)
		for _, segment := range path {
			if segment == "" {
				return nil, p.errorf("invalid column path %q", tok.Value)
			}
		}
		p.advance()
		return &Column{Path: path}, nil
	case TokenQuotedIdent:
		if err := checkLimit(ErrColumnNameTooLong, len(tok.Value), MaxColumnNameLength); err != nil {
			return nil, err
		}
		p.advance()
		return &Column{Path: schema.Path{tok.Value}, Quoted: true}, nil
	case TokenString:
		p.advance()
		return &Literal{Value: tok.Value}, nil
	case TokenNumber:
		// Try to parse as int first, then float
		var value any
		if intVal, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
			value = intVal
		} else if floatVal, err := strconv.ParseFloat(tok.Value, 64); err == nil {
			value = floatVal
		} else {
			return nil, p.errorf("invalid number %s", tok.Value)
		}
		p.advance()
		return &Literal{Value: value}, nil
	case TokenBool:
		p.advance()
		return &Literal{Value: strings.EqualFold(tok.Value, "true")}, nil
	case TokenNull:
		p.advance()
		return &Literal{Value: nil}, nil
	case TokenError:
		return nil, p.errorf("%s", tok.Value)
	default:
		return nil, p.errorf("expected column or value, got %v", tok.Type)
	}
}
