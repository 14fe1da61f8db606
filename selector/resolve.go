package selector

import (
	"fmt"

	"github.com/vegasq/parframe/schema"
)

// Policy decides what happens when a lookup matches nothing.
type Policy int

const (
	// Fail returns a *ResolutionError. Joins and Select always use it.
	Fail Policy = iota
	// Skip resolves the lookup to no columns.
	Skip
)

func (p Policy) String() string {
	switch p {
	case Fail:
		return "fail"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts "fail" or "skip" into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "fail":
		return Fail, nil
	case "skip":
		return Skip, nil
	default:
		return Fail, fmt.Errorf("unknown unresolved column policy %q (expected fail or skip)", s)
	}
}

// scope is the group atomic lookups are relative to.
type scope struct {
	group *schema.Group
	path  schema.Path
}

type env struct {
	policy Policy
	root   scope
	side   string
}

func (e *env) notFound(ref string, s scope) error {
	if e.policy == Skip {
		return nil
	}
	return &ResolutionError{Ref: ref, Scope: s.path, Side: e.side}
}

// Resolve evaluates cols against root and returns the selected columns in
// order. Resolving the same selection against the same schema always yields
// the same result.
func Resolve(root *schema.Group, cols Columns, policy Policy) ([]ColumnWithPath, error) {
	return ResolveIn(root, nil, cols, policy)
}

// ResolveIn is like Resolve but uses the group at scopePath as the scope for
// atomic lookups. Returned paths are still absolute.
func ResolveIn(root *schema.Group, scopePath schema.Path, cols Columns, policy Policy) ([]ColumnWithPath, error) {
	node, ok := root.Find(scopePath)
	if !ok {
		return nil, &ResolutionError{Ref: scopePath.String()}
	}
	group, ok := node.(*schema.Group)
	if !ok {
		return nil, &KindMismatchError{Path: scopePath, Want: schema.KindGroup, Got: node.Kind()}
	}
	e := &env{policy: policy, root: scope{group: root}}
	return cols.eval(e, scope{group: group, path: append(schema.Path(nil), scopePath...)})
}

// Pair is one matched left and right key column.
type Pair struct {
	Left  ColumnWithPath
	Right ColumnWithPath
}

// ResolvePairs evaluates a join key selection. Top-level operands joined with
// And are handled one by one: Match contributes its explicit pairs, any other
// selection is resolved on the left and paired with the right column at the
// same path. The Fail policy is always used.
func ResolvePairs(left, right *schema.Group, cols Columns) ([]Pair, error) {
	le := &env{policy: Fail, root: scope{group: left}, side: "left"}
	re := &env{policy: Fail, root: scope{group: right}, side: "right"}

	var pairs []Pair
	for _, part := range flattenAnd(cols.node()) {
		if m, ok := part.(*matchNode); ok {
			ls, err := m.left.eval(le, le.root)
			if err != nil {
				return nil, err
			}
			rs, err := m.right.eval(re, re.root)
			if err != nil {
				return nil, err
			}
			if len(ls) != len(rs) {
				return nil, fmt.Errorf("%w: match pairs %d left columns with %d right columns", ErrInvalidArgument, len(ls), len(rs))
			}
			for i := range ls {
				pairs = append(pairs, Pair{Left: ls[i], Right: rs[i]})
			}
			continue
		}

		ls, err := part.eval(le, le.root)
		if err != nil {
			return nil, err
		}
		for _, l := range ls {
			r, ok, _ := ByPath{Path: l.Path}.lookup(re, re.root)
			if !ok {
				return nil, &ResolutionError{Ref: l.Path.String(), Side: "right"}
			}
			pairs = append(pairs, Pair{Left: l, Right: r})
		}
	}
	return pairs, nil
}

func flattenAnd(n node) []node {
	if a, ok := n.(*andNode); ok {
		var parts []node
		for _, operand := range a.operands {
			parts = append(parts, flattenAnd(operand.node())...)
		}
		return parts
	}
	return []node{n}
}
