package join

import (
	"errors"
	"fmt"

	"github.com/vegasq/parframe/schema"
	"github.com/vegasq/parframe/selector"
)

var (
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("join key types are not comparable")
	// ErrNoKeys is returned when a key-based join has no key columns.
	ErrNoKeys = errors.New("no join key columns")
)

// TypeMismatchError reports a key pair whose values can never be equal.
// It is raised before any row is looked at.
type TypeMismatchError struct {
	Left  selector.ColumnWithPath
	Right selector.ColumnWithPath
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("join key %q (%s) cannot be compared with %q (%s)",
		e.Left.Path.String(), describe(e.Left), e.Right.Path.String(), describe(e.Right))
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func describe(c selector.ColumnWithPath) string {
	if c.Node == nil {
		return "unknown"
	}
	if c.Node.Kind() == schema.KindValue {
		return c.Type().String()
	}
	return c.Node.Kind().String()
}
