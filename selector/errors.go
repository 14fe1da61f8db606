package selector

import (
	"errors"
	"fmt"

	"github.com/vegasq/parframe/schema"
)

var (
	// ErrColumnNotFound matches every *ResolutionError.
	ErrColumnNotFound = errors.New("column not found")
	// ErrKindMismatch matches every *KindMismatchError.
	ErrKindMismatch = errors.New("column kind mismatch")
	// ErrIndexOutOfRange matches every *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("column index out of range")
	// ErrMatchOutsideJoin is returned when Match is resolved against a single schema.
	ErrMatchOutsideJoin = errors.New("match can only be resolved as a join key")
	// ErrInvalidArgument reports a malformed combinator argument, such as a
	// negative count.
	ErrInvalidArgument = errors.New("invalid selector argument")
)

// ResolutionError reports a reference that matched no column.
type ResolutionError struct {
	Ref   string      // rendered reference, e.g. `"name"` or `address.city`
	Scope schema.Path // scope the reference was resolved in; nil for the root
	Side  string      // "left" or "right" when resolving join keys
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("column %s not found", e.Ref)
	if len(e.Scope) > 0 {
		msg += fmt.Sprintf(" in group %q", e.Scope.String())
	}
	if e.Side != "" {
		msg += fmt.Sprintf(" (%s side)", e.Side)
	}
	return msg
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// KindMismatchError reports a column that exists but is of the wrong kind.
type KindMismatchError struct {
	Path schema.Path
	Want schema.Kind
	Got  schema.Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("column %q is a %s, expected a %s", e.Path.String(), e.Got, e.Want)
}

func (e *KindMismatchError) Is(target error) bool {
	return target == ErrKindMismatch
}

// IndexOutOfRangeError reports a positional lookup outside the scope.
type IndexOutOfRangeError struct {
	Index int
	Len   int
	Scope schema.Path
}

func (e *IndexOutOfRangeError) Error() string {
	where := "root"
	if len(e.Scope) > 0 {
		where = fmt.Sprintf("group %q", e.Scope.String())
	}
	return fmt.Sprintf("column index %d out of range for %s with %d columns", e.Index, where, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
