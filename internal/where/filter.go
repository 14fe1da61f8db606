package where

import (
	"fmt"
	"time"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/join"
	"github.com/vegasq/parframe/schema"
)

// compare compares two values using the given operator. Null equals only
// null and is never ordered.
func compare(left any, operator TokenType, right any) (bool, error) {
	// Handle nil values
	if left == nil || right == nil {
		switch operator {
		case TokenEqual:
			return left == right, nil
		case TokenNotEqual:
			return left != right, nil
		default:
			return false, nil
		}
	}

	// Try numeric comparison
	leftNum, leftIsNum := toFloat64(left)
	rightNum, rightIsNum := toFloat64(right)
	if leftIsNum && rightIsNum {
		return compareOrdered(leftNum, operator, rightNum), nil
	}

	// Try string comparison
	leftStr, leftIsStr := toString(left)
	rightStr, rightIsStr := toString(right)
	if leftIsStr && rightIsStr {
		return compareOrdered(leftStr, operator, rightStr), nil
	}

	// Timestamps compare with each other and with RFC 3339 strings
	leftTime, leftIsTime := toTime(left)
	rightTime, rightIsTime := toTime(right)
	if leftIsTime && rightIsTime {
		return compareOrdered(leftTime.UnixNano(), operator, rightTime.UnixNano()), nil
	}

	// Try boolean comparison
	leftBool, leftIsBool := left.(bool)
	rightBool, rightIsBool := right.(bool)
	if leftIsBool && rightIsBool {
		switch operator {
		case TokenEqual:
			return leftBool == rightBool, nil
		case TokenNotEqual:
			return leftBool != rightBool, nil
		default:
			return false, fmt.Errorf("booleans support only = and !=, got %v", operator)
		}
	}

	// Type mismatch
	return false, fmt.Errorf("cannot compare %T with %T", left, right)
}

// toFloat64 converts a value to float64 if possible
func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toString converts a value to string if possible
func toString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	default:
		return "", false
	}
}

func toTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := time.Parse(time.RFC3339, val)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}

type ordered interface {
	~int64 | ~float64 | ~string
}

func compareOrdered[T ordered](left T, operator TokenType, right T) bool {
	switch operator {
	case TokenEqual:
		return left == right
	case TokenNotEqual:
		return left != right
	case TokenLess:
		return left < right
	case TokenGreater:
		return left > right
	case TokenLessEqual:
		return left <= right
	case TokenGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// RowEnv evaluates expressions against a single row.
type RowEnv frame.Row

// Lookup implements Env.
func (r RowEnv) Lookup(path schema.Path) (any, bool) {
	return frame.Row(r).Value(path)
}

// PairEnv evaluates expressions against a left and a right row. Paths
// starting with "left" or "right" pick that side; other paths are looked up
// on the left first.
type PairEnv struct {
	Left, Right frame.Row
}

// Lookup implements Env.
func (e PairEnv) Lookup(path schema.Path) (any, bool) {
	if len(path) > 1 {
		switch path[0] {
		case "left":
			return e.Left.Value(path[1:])
		case "right":
			return e.Right.Value(path[1:])
		}
	}
	if v, ok := e.Left.Value(path); ok {
		return v, true
	}
	return e.Right.Value(path)
}

// Filter returns the rows of f for which expr holds.
func Filter(f *frame.Frame, expr Expression) (*frame.Frame, error) {
	if expr == nil {
		return f, nil
	}

	rows := make([]int, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		match, err := expr.Evaluate(RowEnv(f.Row(i)))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if match {
			rows = append(rows, i)
		}
	}
	return f.Gather(rows), nil
}

// Join joins left and right on expr, evaluated for every pair of rows with
// a PairEnv. The first evaluation error aborts the join.
func Join(left, right *frame.Frame, mode join.Mode, expr Expression) (*frame.Frame, error) {
	var evalErr error
	pred := func(l, r frame.Row) bool {
		if evalErr != nil {
			return false
		}
		match, err := expr.Evaluate(PairEnv{Left: l, Right: r})
		if err != nil {
			evalErr = fmt.Errorf("rows %d and %d: %w", l.Index(), r.Index(), err)
			return false
		}
		return match
	}

	joined, err := join.ExecuteWith(left, right, mode, pred)
	if err != nil {
		return nil, err
	}
	if evalErr != nil {
		return nil, evalErr
	}
	return joined, nil
}
