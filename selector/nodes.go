package selector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/parframe/schema"
)

type refNode struct {
	ref  Reference
	want *schema.Kind
}

func (n *refNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	col, ok, err := n.ref.lookup(e, s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, e.notFound(n.ref.String(), s)
	}
	if n.want != nil && col.Kind() != *n.want {
		return nil, &KindMismatchError{Path: col.Path, Want: *n.want, Got: col.Kind()}
	}
	return []ColumnWithPath{col}, nil
}

func (n *refNode) String() string {
	fn := "col"
	if n.want != nil {
		switch *n.want {
		case schema.KindValue:
			fn = "valueCol"
		case schema.KindGroup:
			fn = "colGroup"
		case schema.KindFrame:
			fn = "frameCol"
		}
	}
	switch r := n.ref.(type) {
	case ByIndex:
		return "col(" + strconv.Itoa(r.Index) + ")"
	case ByPath:
		quoted := make([]string, len(r.Path))
		for i, segment := range r.Path {
			quoted[i] = strconv.Quote(segment)
		}
		return "path(" + strings.Join(quoted, ", ") + ")"
	default:
		return fn + "(" + n.ref.String() + ")"
	}
}

type allNode struct{}

func (allNode) eval(_ *env, s scope) ([]ColumnWithPath, error) {
	children := s.group.Children()
	cols := make([]ColumnWithPath, len(children))
	for i, child := range children {
		cols[i] = columnAt(s.path, child)
	}
	return cols, nil
}

func (allNode) String() string { return "all()" }

type noneNode struct{}

func (noneNode) eval(*env, scope) ([]ColumnWithPath, error) { return nil, nil }
func (noneNode) String() string                             { return "none()" }

type andNode struct {
	operands []Columns
}

func (n *andNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	var out []ColumnWithPath
	for _, operand := range n.operands {
		cols, err := operand.eval(e, s)
		if err != nil {
			return nil, err
		}
		out = append(out, cols...)
	}
	return out, nil
}

func (n *andNode) String() string {
	parts := make([]string, len(n.operands))
	for i, operand := range n.operands {
		parts[i] = operand.String()
	}
	if len(parts) == 0 {
		return "none()"
	}
	return "(" + strings.Join(parts, " and ") + ")"
}

type exceptNode struct {
	base    Columns
	removed []Columns
}

func (n *exceptNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.base.eval(e, s)
	if err != nil {
		return nil, err
	}
	drop := make(map[string]bool)
	for _, removed := range n.removed {
		rs, err := removed.eval(e, s)
		if err != nil {
			return nil, err
		}
		for _, r := range rs {
			drop[r.Path.Key()] = true
		}
	}
	out := make([]ColumnWithPath, 0, len(cols))
	for _, c := range cols {
		if !drop[c.Path.Key()] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (n *exceptNode) String() string {
	parts := make([]string, len(n.removed))
	for i, removed := range n.removed {
		parts[i] = removed.String()
	}
	return n.base.String() + ".except(" + strings.Join(parts, ", ") + ")"
}

type distinctNode struct {
	operand Columns
}

func (n *distinctNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(cols))
	out := make([]ColumnWithPath, 0, len(cols))
	for _, c := range cols {
		key := c.Path.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out, nil
}

func (n *distinctNode) String() string { return n.operand.String() + ".distinct()" }

type filterNode struct {
	operand Columns
	pred    Predicate
	desc    string
}

func (n *filterNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	out := make([]ColumnWithPath, 0, len(cols))
	for _, c := range cols {
		if n.pred(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (n *filterNode) String() string { return n.operand.String() + "." + n.desc }

type windowKind int

const (
	windowTake windowKind = iota
	windowTakeLast
	windowDrop
	windowDropLast
	windowTakeWhile
	windowTakeLastWhile
	windowDropWhile
	windowDropLastWhile
)

var windowNames = map[windowKind]string{
	windowTake:          "take",
	windowTakeLast:      "takeLast",
	windowDrop:          "drop",
	windowDropLast:      "dropLast",
	windowTakeWhile:     "takeWhile",
	windowTakeLastWhile: "takeLastWhile",
	windowDropWhile:     "dropWhile",
	windowDropLastWhile: "dropLastWhile",
}

type windowNode struct {
	operand Columns
	kind    windowKind
	n       int
	pred    Predicate
}

func (n *windowNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	if n.kind < windowTakeWhile && n.n < 0 {
		return nil, fmt.Errorf("%w: %s requires a non-negative count, got %d", ErrInvalidArgument, windowNames[n.kind], n.n)
	}

	size := len(cols)
	count := min(n.n, size)
	// prefix and suffix hold the lengths of the longest runs satisfying pred.
	var prefix, suffix int
	if n.pred != nil {
		for prefix < size && n.pred(cols[prefix]) {
			prefix++
		}
		for suffix < size && n.pred(cols[size-1-suffix]) {
			suffix++
		}
	}

	switch n.kind {
	case windowTake:
		return cols[:count], nil
	case windowTakeLast:
		return cols[size-count:], nil
	case windowDrop:
		return cols[count:], nil
	case windowDropLast:
		return cols[:size-count], nil
	case windowTakeWhile:
		return cols[:prefix], nil
	case windowTakeLastWhile:
		return cols[size-suffix:], nil
	case windowDropWhile:
		return cols[prefix:], nil
	case windowDropLastWhile:
		return cols[:size-suffix], nil
	default:
		return nil, fmt.Errorf("unknown window kind %d", n.kind)
	}
}

func (n *windowNode) String() string {
	if n.pred != nil {
		return n.operand.String() + "." + windowNames[n.kind] + "(<func>)"
	}
	return n.operand.String() + "." + windowNames[n.kind] + "(" + strconv.Itoa(n.n) + ")"
}

type childrenNode struct {
	operand Columns
}

func (n *childrenNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	var out []ColumnWithPath
	for _, c := range cols {
		group, ok := c.Group()
		if !ok {
			return nil, &KindMismatchError{Path: c.Path, Want: schema.KindGroup, Got: c.Kind()}
		}
		for _, child := range group.Children() {
			out = append(out, columnAt(c.Path, child))
		}
	}
	return out, nil
}

func (n *childrenNode) String() string { return n.operand.String() + ".children()" }

type anyDepthNode struct {
	operand       Columns
	includeGroups bool
	// belowOperand walks the children of the single referenced group
	// instead of the operand columns themselves.
	belowOperand  bool
}

func (n *anyDepthNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	var out []ColumnWithPath
	var walk func(c ColumnWithPath)
	walk = func(c ColumnWithPath) {
		group, ok := c.Group()
		if !ok {
			out = append(out, c)
			return
		}
		if n.includeGroups {
			out = append(out, c)
		}
		for _, child := range group.Children() {
			walk(columnAt(c.Path, child))
		}
	}
	for _, c := range cols {
		if !n.belowOperand {
			walk(c)
			continue
		}
		group, ok := c.Group()
		if !ok {
			return nil, &KindMismatchError{Path: c.Path, Want: schema.KindGroup, Got: c.Kind()}
		}
		for _, child := range group.Children() {
			walk(columnAt(c.Path, child))
		}
	}
	return out, nil
}

func (n *anyDepthNode) String() string {
	if n.includeGroups {
		return n.operand.String() + ".colsAtAnyDepth(groups)"
	}
	return n.operand.String() + ".colsAtAnyDepth()"
}

type inGroupsNode struct {
	operand Columns
}

func (n *inGroupsNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	var out []ColumnWithPath
	for _, c := range cols {
		group, ok := c.Group()
		if !ok {
			continue
		}
		for _, child := range group.Children() {
			out = append(out, columnAt(c.Path, child))
		}
	}
	return out, nil
}

func (n *inGroupsNode) String() string { return n.operand.String() + ".colsInGroups()" }

type selectNode struct {
	operand Columns
	inner   Columns
}

func (n *selectNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	var out []ColumnWithPath
	for _, c := range cols {
		group, ok := c.Group()
		if !ok {
			return nil, &KindMismatchError{Path: c.Path, Want: schema.KindGroup, Got: c.Kind()}
		}
		inner, err := n.inner.eval(e, scope{group: group, path: c.Path})
		if err != nil {
			return nil, err
		}
		out = append(out, inner...)
	}
	return out, nil
}

func (n *selectNode) String() string {
	return n.operand.String() + ".select(" + n.inner.String() + ")"
}

type renameNode struct {
	operand Columns
	name    string
}

func (n *renameNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	if len(cols) > 1 {
		return nil, fmt.Errorf("%w: named(%q) applies to a single column, got %d", ErrInvalidArgument, n.name, len(cols))
	}
	out := make([]ColumnWithPath, len(cols))
	for i, c := range cols {
		c.DisplayName = n.name
		out[i] = c
	}
	return out, nil
}

func (n *renameNode) String() string {
	return n.operand.String() + ".named(" + strconv.Quote(n.name) + ")"
}

type simplifyNode struct {
	operand Columns
}

func (n *simplifyNode) eval(e *env, s scope) ([]ColumnWithPath, error) {
	cols, err := n.operand.eval(e, s)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c.Path.Key()] = true
	}
	out := make([]ColumnWithPath, 0, len(cols))
	for _, c := range cols {
		covered := false
		for depth := 1; depth < len(c.Path); depth++ {
			if present[c.Path[:depth].Key()] {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, c)
		}
	}
	return out, nil
}

func (n *simplifyNode) String() string { return n.operand.String() + ".simplify()" }

type matchNode struct {
	left  Columns
	right Columns
}

func (n *matchNode) eval(*env, scope) ([]ColumnWithPath, error) {
	return nil, ErrMatchOutsideJoin
}

func (n *matchNode) String() string {
	return "match(" + n.left.String() + ", " + n.right.String() + ")"
}
