// Package where parses and evaluates boolean row conditions such as
//
//	score >= 80 and (address.city = 'Oslo' or tags is null)
//
// Column references are dotted paths into the column tree. Inside a join
// condition a leading "left." or "right." picks the side:
//
//	left.id = right.person and right.score > 50
//
// Example usage:
//
//	expr, err := where.Parse("age > 30")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	filtered, err := where.Filter(f, expr)
package where

import (
	"fmt"
	"strconv"

	"github.com/vegasq/parframe/schema"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenAnd TokenType = iota
	TokenOr
	TokenNot
	TokenIs
	TokenNull

	// Operators
	TokenEqual        // =
	TokenNotEqual     // != or <>
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString
	TokenNumber
	TokenIdent
	TokenQuotedIdent // `first name`
	TokenBool

	// Special
	TokenLParen
	TokenRParen
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenIs:           "IS",
	TokenNull:         "NULL",
	TokenEqual:        "=",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "column",
	TokenQuotedIdent:  "column",
	TokenBool:         "boolean",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenEOF:          "end of input",
	TokenError:        "invalid character",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Env supplies column values to an expression.
type Env interface {
	// Lookup returns the cell at path. The second result is false when no
	// such column exists.
	Lookup(path schema.Path) (any, bool)
}

// Expression represents a boolean condition.
type Expression interface {
	Evaluate(env Env) (bool, error)
	String() string
}

// Operand is one side of a comparison.
type Operand interface {
	value(env Env) any
	String() string
}

// Column references a cell by path. Missing columns read as null.
type Column struct {
	Path   schema.Path
	Quoted bool
}

func (c *Column) value(env Env) any {
	v, _ := env.Lookup(c.Path)
	return v
}

func (c *Column) String() string {
	if c.Quoted {
		return "`" + c.Path.Name() + "`"
	}
	return c.Path.String()
}

// Literal is a constant operand.
type Literal struct {
	Value any
}

func (l *Literal) value(Env) any { return l.Value }

func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

// BinaryExpr represents a binary expression (AND/OR)
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// Evaluate evaluates a binary expression. The right side is skipped when the
// left side decides the result.
func (b *BinaryExpr) Evaluate(env Env) (bool, error) {
	left, err := b.Left.Evaluate(env)
	if err != nil {
		return false, err
	}
	switch b.Operator {
	case TokenAnd:
		if !left {
			return false, nil
		}
	case TokenOr:
		if left {
			return true, nil
		}
	default:
		return false, fmt.Errorf("unexpected boolean operator %v", b.Operator)
	}
	return b.Right.Evaluate(env)
}

func (b *BinaryExpr) String() string {
	op := "and"
	if b.Operator == TokenOr {
		op = "or"
	}
	return "(" + b.Left.String() + " " + op + " " + b.Right.String() + ")"
}

// NotExpr negates an expression.
type NotExpr struct {
	Expr Expression
}

// Evaluate evaluates a negation
func (n *NotExpr) Evaluate(env Env) (bool, error) {
	v, err := n.Expr.Evaluate(env)
	return !v && err == nil, err
}

func (n *NotExpr) String() string { return "not " + n.Expr.String() }

// ComparisonExpr represents a comparison expression
type ComparisonExpr struct {
	Left     Operand
	Operator TokenType
	Right    Operand
}

// Evaluate evaluates a comparison expression
func (c *ComparisonExpr) Evaluate(env Env) (bool, error) {
	return compare(c.Left.value(env), c.Operator, c.Right.value(env))
}

func (c *ComparisonExpr) String() string {
	return c.Left.String() + " " + c.Operator.String() + " " + c.Right.String()
}

// NullCheck represents "x IS NULL" and "x IS NOT NULL".
type NullCheck struct {
	Operand Operand
	Not     bool
}

// Evaluate evaluates a null check
func (n *NullCheck) Evaluate(env Env) (bool, error) {
	isNull := n.Operand.value(env) == nil
	return isNull != n.Not, nil
}

func (n *NullCheck) String() string {
	if n.Not {
		return n.Operand.String() + " is not null"
	}
	return n.Operand.String() + " is null"
}
