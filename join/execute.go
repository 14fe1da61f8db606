package join

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/schema"
	"github.com/vegasq/parframe/selector"
)

// Predicate decides whether a left row and a right row belong together.
type Predicate func(left, right frame.Row) bool

// Execute joins left and right on the key pairs, usually obtained from
// ResolveKeys. Key types are checked before any row is processed.
func Execute(left, right *frame.Frame, mode Mode, keys []selector.Pair) (*frame.Frame, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%s join: %w", mode, ErrNoKeys)
	}
	if err := checkTypes(keys); err != nil {
		return nil, err
	}
	lk, err := keyColumnsOf(left, keys, "left")
	if err != nil {
		return nil, err
	}
	rk, err := keyColumnsOf(right, keys, "right")
	if err != nil {
		return nil, err
	}

	// Buckets keep right rows in their original order.
	var sb strings.Builder
	index := make(map[string][]int, right.NumRows())
	for r := 0; r < right.NumRows(); r++ {
		k := rk.encode(r, &sb)
		index[k] = append(index[k], r)
	}

	p := newPlan(mode, right.NumRows())
	for l := 0; l < left.NumRows(); l++ {
		p.probe(l, index[lk.encode(l, &sb)])
	}
	p.finish()

	log.Debugf("%s join on %s: %d x %d rows -> %d rows", mode, formatPairs(keys), left.NumRows(), right.NumRows(), len(p.left))
	return p.assemble(left, right, keys)
}

// ExecuteWith joins left and right on an arbitrary row predicate, testing
// every pair of rows. Merging modes append all right columns, keys included.
func ExecuteWith(left, right *frame.Frame, mode Mode, pred Predicate) (*frame.Frame, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	if pred == nil {
		return nil, fmt.Errorf("%s join: nil predicate", mode)
	}

	p := newPlan(mode, right.NumRows())
	var matches []int
	for l := 0; l < left.NumRows(); l++ {
		matches = matches[:0]
		lrow := left.Row(l)
		for r := 0; r < right.NumRows(); r++ {
			if pred(lrow, right.Row(r)) {
				matches = append(matches, r)
			}
		}
		p.probe(l, matches)
	}
	p.finish()

	log.Debugf("%s join on predicate: %d x %d rows -> %d rows", mode, left.NumRows(), right.NumRows(), len(p.left))
	return p.assemble(left, right, nil)
}

func checkMode(mode Mode) error {
	if mode < Inner || mode > Exclude {
		return fmt.Errorf("unsupported join mode: %v", mode)
	}
	return nil
}

func keyColumnsOf(f *frame.Frame, keys []selector.Pair, side string) (keyColumns, error) {
	cols := make(keyColumns, len(keys))
	for i, k := range keys {
		path := k.Left.Path
		if side == "right" {
			path = k.Right.Path
		}
		col, ok := f.Column(path)
		if !ok {
			return nil, &selector.ResolutionError{Ref: path.String(), Side: side}
		}
		vc, ok := col.(*frame.ValueColumn)
		if !ok {
			return nil, &selector.KindMismatchError{Path: path, Want: schema.KindValue, Got: col.Kind()}
		}
		cols[i] = vc
	}
	return cols, nil
}

// plan lists the output rows as pairs of source row indices; -1 stands for a
// side that contributes nulls.
type plan struct {
	mode         Mode
	left         []int
	right        []int
	rightMatched []bool
}

func newPlan(mode Mode, nright int) *plan {
	return &plan{mode: mode, rightMatched: make([]bool, nright)}
}

// probe records the output rows for left row l given its matching right rows.
func (p *plan) probe(l int, matches []int) {
	switch {
	case !p.mode.Merging():
		if (len(matches) > 0) == (p.mode == Filter) {
			p.left = append(p.left, l)
		}
	case len(matches) > 0:
		for _, r := range matches {
			p.left = append(p.left, l)
			p.right = append(p.right, r)
			p.rightMatched[r] = true
		}
	case p.mode.keepsUnmatchedLeft():
		p.left = append(p.left, l)
		p.right = append(p.right, -1)
	}
}

// finish appends the right rows that matched nothing.
func (p *plan) finish() {
	if !p.mode.keepsUnmatchedRight() {
		return
	}
	for r, matched := range p.rightMatched {
		if !matched {
			p.left = append(p.left, -1)
			p.right = append(p.right, r)
		}
	}
}

// assemble builds the output frame. Left columns come first at their own
// paths; right columns follow, minus the right key columns, renamed where
// their names are taken.
func (p *plan) assemble(left, right *frame.Frame, keys []selector.Pair) (*frame.Frame, error) {
	lg := left.Gather(p.left)
	if !p.mode.Merging() {
		return lg, nil
	}
	rg := right.Gather(p.right)

	filled := make(map[string]frame.Column, len(keys))
	rightKeys := make(map[string]bool, len(keys))
	for _, k := range keys {
		rightKeys[k.Right.Path.Key()] = true
		lc, _ := lg.Column(k.Left.Path)
		rc, _ := rg.Column(k.Right.Path)
		filled[k.Left.Path.Key()] = fillKey(lc.(*frame.ValueColumn), rc.(*frame.ValueColumn), p.left)
	}

	b := frame.NewBuilder(len(p.left))
	for _, path := range lg.Schema().DescendantLeaves(nil) {
		col, ok := filled[path.Key()]
		if !ok {
			col, _ = lg.Column(path)
		}
		if _, err := b.Add(path, col); err != nil {
			return nil, fmt.Errorf("%s join: %w", p.mode, err)
		}
	}
	for _, path := range rg.Schema().DescendantLeaves(nil) {
		if rightKeys[path.Key()] {
			continue
		}
		col, _ := rg.Column(path)
		actual, err := b.Add(path, col)
		if err != nil {
			return nil, fmt.Errorf("%s join: %w", p.mode, err)
		}
		if !actual.Equal(path) {
			log.Debugf("%s join: right column %s renamed to %s", p.mode, path, actual)
		}
	}
	return b.Build(), nil
}

// fillKey returns the left key column with the right key values copied into
// the rows that exist on the right side only.
func fillKey(lc, rc *frame.ValueColumn, leftRows []int) frame.Column {
	values := lc.Values()
	for i, l := range leftRows {
		if l < 0 {
			values[i] = rc.ValueAt(i)
		}
	}
	return frame.NewValueColumn(lc.Name(), lc.Type(), values)
}
