package selector

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vegasq/parframe/schema"
)

// Predicate tests a single resolved column.
type Predicate func(ColumnWithPath) bool

// Columns is an unevaluated column selection. The zero value selects nothing.
// Columns values are immutable; every method returns a new selection.
type Columns struct {
	n node
}

type node interface {
	eval(e *env, s scope) ([]ColumnWithPath, error)
	String() string
}

func (c Columns) node() node {
	if c.n == nil {
		return noneNode{}
	}
	return c.n
}

func (c Columns) eval(e *env, s scope) ([]ColumnWithPath, error) {
	return c.node().eval(e, s)
}

// String renders the selection in the textual selector syntax.
func (c Columns) String() string {
	return c.node().String()
}

// Ref selects the column identified by r.
func Ref(r Reference) Columns {
	return Columns{&refNode{ref: r}}
}

// Col selects the direct child of the scope named name.
func Col(name string) Columns {
	return Ref(ByName{Name: name})
}

// Cols selects the named direct children of the scope in the given order.
func Cols(names ...string) Columns {
	refs := make([]Columns, len(names))
	for i, name := range names {
		refs[i] = Col(name)
	}
	return And(refs...)
}

// ColPath selects the node at the path given by segments, relative to the scope.
func ColPath(segments ...string) Columns {
	return Ref(ByPath{Path: schema.Path(segments)})
}

// At selects the node at path, relative to the scope.
func At(path schema.Path) Columns {
	return Ref(ByPath{Path: append(schema.Path(nil), path...)})
}

// ColIndex selects the direct child of the scope at position i (0-based).
func ColIndex(i int) Columns {
	return Ref(ByIndex{Index: i})
}

// ColsAt selects direct children of the scope by position.
func ColsAt(indices ...int) Columns {
	refs := make([]Columns, len(indices))
	for i, idx := range indices {
		refs[i] = ColIndex(idx)
	}
	return And(refs...)
}

// Resolved selects columns that were resolved before, keeping their display names.
func Resolved(cols ...ColumnWithPath) Columns {
	refs := make([]Columns, len(cols))
	for i, c := range cols {
		refs[i] = Ref(Direct{Column: c})
	}
	return And(refs...)
}

// ValueCol is like Col but fails with a *KindMismatchError unless the
// column is a value column.
func ValueCol(name string) Columns {
	return Columns{&refNode{ref: ByName{Name: name}, want: kindPtr(schema.KindValue)}}
}

// ColGroup is like Col but requires a column group.
func ColGroup(name string) Columns {
	return Columns{&refNode{ref: ByName{Name: name}, want: kindPtr(schema.KindGroup)}}
}

// FrameCol is like Col but requires a frame column.
func FrameCol(name string) Columns {
	return Columns{&refNode{ref: ByName{Name: name}, want: kindPtr(schema.KindFrame)}}
}

// All selects every direct child of the scope.
func All() Columns {
	return Columns{allNode{}}
}

// None selects nothing.
func None() Columns {
	return Columns{noneNode{}}
}

// And concatenates selections. All operands are resolved against the same
// scope; duplicates are kept.
func And(operands ...Columns) Columns {
	if len(operands) == 1 {
		return operands[0]
	}
	return Columns{&andNode{operands: operands}}
}

// AllExcept selects every direct child of the scope except the given columns.
func AllExcept(removed ...Columns) Columns {
	return All().Except(removed...)
}

// NameContains selects direct children of the scope whose name contains sub.
func NameContains(sub string) Columns { return All().NameContains(sub) }

// NameStartsWith selects direct children of the scope whose name starts with prefix.
func NameStartsWith(prefix string) Columns { return All().NameStartsWith(prefix) }

// NameEndsWith selects direct children of the scope whose name ends with suffix.
func NameEndsWith(suffix string) Columns { return All().NameEndsWith(suffix) }

// NameMatches selects direct children of the scope whose name matches re.
func NameMatches(re *regexp.Regexp) Columns { return All().NameMatches(re) }

// ColsAtAnyDepth selects every column below the scope, depth-first.
func ColsAtAnyDepth(opts ...DepthOption) Columns { return All().ColsAtAnyDepth(opts...) }

// ColsInGroups selects the children of every column group directly in the scope.
func ColsInGroups() Columns { return All().ColsInGroups() }

// Match pairs the columns of left, resolved against the left schema, with the
// columns of right, resolved against the right schema. It is only meaningful
// as a join key.
func Match(left, right Columns) Columns {
	return Columns{&matchNode{left: left, right: right}}
}

// And appends other selections to c.
func (c Columns) And(others ...Columns) Columns {
	return And(append([]Columns{c}, others...)...)
}

// Except removes every column of the removed selections from c, comparing
// by path. The order of c is kept.
func (c Columns) Except(removed ...Columns) Columns {
	return Columns{&exceptNode{base: c, removed: removed}}
}

// AllColsExcept selects the children of each group in c, except the removed
// columns, which are resolved relative to that group.
func (c Columns) AllColsExcept(removed ...Columns) Columns {
	return c.Select(AllExcept(removed...))
}

// Distinct removes repeated columns, keeping the first occurrence.
func (c Columns) Distinct() Columns {
	return Columns{&distinctNode{operand: c}}
}

// Match pairs c with right. See Match.
func (c Columns) Match(right Columns) Columns {
	return Match(c, right)
}

// Filter keeps the columns satisfying p.
func (c Columns) Filter(p Predicate) Columns {
	return Columns{&filterNode{operand: c, pred: p, desc: "filter(<func>)"}}
}

// ColsOf keeps value columns of type t. TypeAny keeps every value column.
func (c Columns) ColsOf(t schema.ValueType) Columns {
	return Columns{&filterNode{
		operand: c,
		pred: func(col ColumnWithPath) bool {
			leaf, ok := col.Node.(*schema.Leaf)
			return ok && (t == schema.TypeAny || leaf.Type() == t)
		},
		desc: "colsOf(" + strconv.Quote(string(t)) + ")",
	}}
}

// ValueCols keeps value columns.
func (c Columns) ValueCols() Columns { return c.ofKind(schema.KindValue, "valueCols()") }

// ColGroups keeps column groups.
func (c Columns) ColGroups() Columns { return c.ofKind(schema.KindGroup, "colGroups()") }

// FrameCols keeps frame columns.
func (c Columns) FrameCols() Columns { return c.ofKind(schema.KindFrame, "frameCols()") }

func (c Columns) ofKind(k schema.Kind, desc string) Columns {
	return Columns{&filterNode{
		operand: c,
		pred:    func(col ColumnWithPath) bool { return col.Kind() == k },
		desc:    desc,
	}}
}

// NameContains keeps columns whose name contains sub.
func (c Columns) NameContains(sub string) Columns {
	return c.nameFilter("nameContains", sub, func(name string) bool { return strings.Contains(name, sub) })
}

// NameStartsWith keeps columns whose name starts with prefix.
func (c Columns) NameStartsWith(prefix string) Columns {
	return c.nameFilter("nameStartsWith", prefix, func(name string) bool { return strings.HasPrefix(name, prefix) })
}

// NameEndsWith keeps columns whose name ends with suffix.
func (c Columns) NameEndsWith(suffix string) Columns {
	return c.nameFilter("nameEndsWith", suffix, func(name string) bool { return strings.HasSuffix(name, suffix) })
}

// NameMatches keeps columns whose name matches re.
func (c Columns) NameMatches(re *regexp.Regexp) Columns {
	return c.nameFilter("nameMatches", re.String(), re.MatchString)
}

func (c Columns) nameFilter(fn, arg string, match func(string) bool) Columns {
	return Columns{&filterNode{
		operand: c,
		pred:    func(col ColumnWithPath) bool { return match(col.Name()) },
		desc:    fn + "(" + strconv.Quote(arg) + ")",
	}}
}

// Take keeps the first n columns.
func (c Columns) Take(n int) Columns { return c.window(windowTake, n, nil) }

// TakeLast keeps the last n columns.
func (c Columns) TakeLast(n int) Columns { return c.window(windowTakeLast, n, nil) }

// Drop removes the first n columns.
func (c Columns) Drop(n int) Columns { return c.window(windowDrop, n, nil) }

// DropLast removes the last n columns.
func (c Columns) DropLast(n int) Columns { return c.window(windowDropLast, n, nil) }

// TakeWhile keeps the longest prefix whose columns all satisfy p.
func (c Columns) TakeWhile(p Predicate) Columns { return c.window(windowTakeWhile, 0, p) }

// TakeLastWhile keeps the longest suffix whose columns all satisfy p.
func (c Columns) TakeLastWhile(p Predicate) Columns { return c.window(windowTakeLastWhile, 0, p) }

// DropWhile removes the longest prefix whose columns all satisfy p.
func (c Columns) DropWhile(p Predicate) Columns { return c.window(windowDropWhile, 0, p) }

// DropLastWhile removes the longest suffix whose columns all satisfy p.
func (c Columns) DropLastWhile(p Predicate) Columns { return c.window(windowDropLastWhile, 0, p) }

func (c Columns) window(kind windowKind, n int, p Predicate) Columns {
	return Columns{&windowNode{operand: c, kind: kind, n: n, pred: p}}
}

// Children selects the direct children of every column in c. Every column
// of c must be a group.
func (c Columns) Children() Columns {
	return Columns{&childrenNode{operand: c}}
}

// DepthOption configures ColsAtAnyDepth.
type DepthOption func(*anyDepthNode)

// IncludeGroups makes ColsAtAnyDepth also return the groups it descends
// into, each one before its children.
func IncludeGroups() DepthOption {
	return func(n *anyDepthNode) { n.includeGroups = true }
}

// ColsAtAnyDepth flattens c: every group is replaced by all columns below
// it, depth-first in declaration order. Value and frame columns are kept
// as they are; frame columns are not entered.
//
// When c references a single column, as in Col("address").ColsAtAnyDepth(),
// the result is the columns below that column, which must be a group. It
// matches resolving ColsAtAnyDepth() with the group as scope.
func (c Columns) ColsAtAnyDepth(opts ...DepthOption) Columns {
	_, single := c.n.(*refNode)
	n := &anyDepthNode{operand: c, belowOperand: single}
	for _, opt := range opts {
		opt(n)
	}
	return Columns{n}
}

// ColsInGroups selects the children of every group in c. Columns of c that
// are not groups contribute nothing.
func (c Columns) ColsInGroups() Columns {
	return Columns{&inGroupsNode{operand: c}}
}

// Select resolves inner once for every group in c, with that group as the
// scope, and concatenates the results.
func (c Columns) Select(inner Columns) Columns {
	return Columns{&selectNode{operand: c, inner: inner}}
}

// Col selects the child called name of every group in c.
func (c Columns) Col(name string) Columns {
	return c.Select(Col(name))
}

// Named gives the single column of c a new display name. The path, and so
// the identity used by Except and Distinct, does not change.
func (c Columns) Named(name string) Columns {
	return Columns{&renameNode{operand: c, name: name}}
}

// Into is an alias for Named.
func (c Columns) Into(name string) Columns {
	return c.Named(name)
}

// Simplify removes every column whose ancestor group is also part of c.
func (c Columns) Simplify() Columns {
	return Columns{&simplifyNode{operand: c}}
}

func kindPtr(k schema.Kind) *schema.Kind {
	return &k
}
