package where

import (
	"errors"
	"fmt"
)

// Size limits for a condition. Parse rejects anything past them with a
// *LimitError before evaluating a single row.
const (
	MaxConditionLength  = 64 * 1024
	MaxTokens           = 1000
	MaxExpressionDepth  = 100
	MaxColumnNameLength = 256
)

// Sentinels wrapped by *LimitError, one per limit.
var (
	ErrConditionTooLong  = errors.New("condition too long")
	ErrTooManyTokens     = errors.New("too many tokens in condition")
	ErrExpressionTooDeep = errors.New("expression nesting too deep")
	ErrColumnNameTooLong = errors.New("column name too long")
)

// LimitError reports a condition that outgrew one of the size limits.
type LimitError struct {
	Err error
	Got int
	Max int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%v: %d, limit is %d", e.Err, e.Got, e.Max)
}

func (e *LimitError) Unwrap() error {
	return e.Err
}

func checkLimit(err error, got, max int) error {
	if got <= max {
		return nil
	}
	return &LimitError{Err: err, Got: got, Max: max}
}

// nest enters one level of grouping. The caller defers the returned func.
func (p *Parser) nest() (func(), error) {
	if err := checkLimit(ErrExpressionTooDeep, p.nesting+1, MaxExpressionDepth); err != nil {
		return nil, err
	}
	p.nesting++
	return func() { p.nesting-- }, nil
}
