package join

import (
	log "github.com/sirupsen/logrus"

	"github.com/vegasq/parframe/schema"
	"github.com/vegasq/parframe/selector"
)

// ResolveKeys finds the key column pairs for joining a frame described by
// left with one described by right.
//
// Without keys, every top-level column name of left that also occurs in right
// becomes a key, in left's order. Pairs of frame columns and pairs whose kinds
// differ are not used as implicit keys.
//
// With keys, the selections are combined with selector.And and resolved with
// selector.ResolvePairs: Match operands pair explicit columns, any other
// selection is paired with the column at the same path in right. Every key must
// resolve on both sides.
//
// Group keys expand into pairs of their value columns by relative path. Under
// explicit keys every such path must exist on both sides.
func ResolveKeys(left, right *schema.Group, keys ...selector.Columns) ([]selector.Pair, error) {
	var (
		pairs  []selector.Pair
		strict = len(keys) > 0
	)
	if strict {
		var err error
		pairs, err = selector.ResolvePairs(left, right, selector.And(keys...))
		if err != nil {
			return nil, err
		}
	} else {
		pairs = commonColumns(left, right)
	}

	var expanded []selector.Pair
	for _, p := range pairs {
		ps, err := expandPair(left, right, p, strict)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, ps...)
	}
	if err := checkTypes(expanded); err != nil {
		return nil, err
	}

	log.Debugf("join keys: %s", formatPairs(expanded))
	return expanded, nil
}

func commonColumns(left, right *schema.Group) []selector.Pair {
	var pairs []selector.Pair
	for _, l := range left.Children() {
		r, ok := right.ChildByName(l.Name())
		if !ok {
			continue
		}
		if l.Kind() != r.Kind() {
			log.Debugf("join keys: skipping %s, %s on the left and %s on the right", l.Name(), l.Kind(), r.Kind())
			continue
		}
		if l.Kind() == schema.KindFrame {
			log.Debugf("join keys: skipping %s, frame columns are never implicit keys", l.Name())
			continue
		}
		pairs = append(pairs, selector.Pair{
			Left:  selector.ColumnWithPath{Path: schema.Path{l.Name()}, Node: l},
			Right: selector.ColumnWithPath{Path: schema.Path{r.Name()}, Node: r},
		})
	}
	return pairs
}

func expandPair(left, right *schema.Group, p selector.Pair, strict bool) ([]selector.Pair, error) {
	lk, rk := p.Left.Kind(), p.Right.Kind()
	if lk != schema.KindGroup && rk != schema.KindGroup {
		return []selector.Pair{p}, nil
	}
	if lk != rk {
		return nil, &selector.KindMismatchError{Path: p.Right.Path, Want: lk, Got: rk}
	}

	var pairs []selector.Pair
	for _, lp := range left.DescendantLeaves(p.Left.Path) {
		rel := lp[len(p.Left.Path):]
		rp := p.Right.Path.Join(rel)
		rn, ok := right.Find(rp)
		if !ok {
			if strict {
				return nil, &selector.ResolutionError{Ref: rp.String(), Side: "right"}
			}
			continue
		}
		ln, _ := left.Find(lp)
		if !strict && (ln.Kind() != schema.KindValue || rn.Kind() != schema.KindValue) {
			continue
		}
		pairs = append(pairs, selector.Pair{
			Left:  selector.ColumnWithPath{Path: lp, Node: ln},
			Right: selector.ColumnWithPath{Path: rp, Node: rn},
		})
	}
	return pairs, nil
}

// checkTypes fails on the first pair whose values can never compare equal.
func checkTypes(pairs []selector.Pair) error {
	for _, p := range pairs {
		if p.Left.Kind() != schema.KindValue || p.Right.Kind() != schema.KindValue {
			return &TypeMismatchError{Left: p.Left, Right: p.Right}
		}
		if !p.Left.Type().ComparableWith(p.Right.Type()) {
			return &TypeMismatchError{Left: p.Left, Right: p.Right}
		}
	}
	return nil
}

func formatPairs(pairs []selector.Pair) string {
	s := ""
	for i, p := range pairs {
		if i > 0 {
			s += ", "
		}
		s += p.Left.Path.String() + "=" + p.Right.Path.String()
	}
	if s == "" {
		return "none"
	}
	return s
}
