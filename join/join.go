package join

import (
	"fmt"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/selector"
)

// Join resolves the key columns of left and right with ResolveKeys and runs
// Execute with mode.
func Join(left, right *frame.Frame, mode Mode, keys ...selector.Columns) (*frame.Frame, error) {
	pairs, err := ResolveKeys(left.Schema(), right.Schema(), keys...)
	if err != nil {
		return nil, fmt.Errorf("%s join: %w", mode, err)
	}
	return Execute(left, right, mode, pairs)
}

// InnerJoin keeps the rows that match on both sides.
func InnerJoin(left, right *frame.Frame, keys ...selector.Columns) (*frame.Frame, error) {
	return Join(left, right, Inner, keys...)
}

// LeftJoin keeps every left row.
func LeftJoin(left, right *frame.Frame, keys ...selector.Columns) (*frame.Frame, error) {
	return Join(left, right, Left, keys...)
}

// RightJoin keeps every right row.
func RightJoin(left, right *frame.Frame, keys ...selector.Columns) (*frame.Frame, error) {
	return Join(left, right, Right, keys...)
}

// FullJoin keeps every row of both sides.
func FullJoin(left, right *frame.Frame, keys ...selector.Columns) (*frame.Frame, error) {
	return Join(left, right, Full, keys...)
}

// FilterJoin returns the left rows that have a match.
func FilterJoin(left, right *frame.Frame, keys ...selector.Columns) (*frame.Frame, error) {
	return Join(left, right, Filter, keys...)
}

// ExcludeJoin returns the left rows that have no match.
func ExcludeJoin(left, right *frame.Frame, keys ...selector.Columns) (*frame.Frame, error) {
	return Join(left, right, Exclude, keys...)
}
